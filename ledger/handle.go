// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// PoolHandle - the structure for a pool
type PoolHandle struct {
	prefix byte
	limit  []byte
	store  *Store
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair
//
// outside a transaction the write is committed immediately
func (p *PoolHandle) Put(key []byte, value []byte) error {
	s := p.store
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fault.ErrDatabaseIsClosed
	}
	s.access.put(p.prefixKey(key), value)
	if s.inTransaction {
		return nil
	}
	return s.access.write()
}

// PutN - store a uint64 as an 8 byte big endian value
func (p *PoolHandle) PutN(key []byte, value uint64) error {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return p.Put(key, buffer)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) error {
	s := p.store
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fault.ErrDatabaseIsClosed
	}
	s.access.delete(p.prefixKey(key))
	if s.inTransaction {
		return nil
	}
	return s.access.write()
}

// Get - read a value for a given key
//
// this returns the actual element in the buffer not a copy; nil if
// the key does not exist
func (p *PoolHandle) Get(key []byte) []byte {
	s := p.store
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return nil
	}
	value, err := s.access.get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode the first 8 bytes as big endian uint64
//
// the second parameter is false if the key does not exist
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	s := p.store
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return false
	}
	value, err := s.access.has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return value
}

// Map - call a function for every committed element of the pool in key order
//
// the key passed has the prefix stripped; iteration stops at the
// first error returned by the function
func (p *PoolHandle) Map(f func(key []byte, value []byte) error) error {
	s := p.store
	s.Lock()
	if nil == s.db {
		s.Unlock()
		return fault.ErrDatabaseIsClosed
	}
	iter := s.access.iterator(&ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	})
	s.Unlock()

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
