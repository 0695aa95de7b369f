// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Contracts  *PoolHandle `prefix:"C"`
	Proofs     *PoolHandle `prefix:"P"`
	Validators *PoolHandle `prefix:"V"`
	Chain      *PoolHandle `prefix:"S"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentVersion = 0x100

// Store - the ledger database
type Store struct {
	sync.Mutex

	log           *logger.L
	db            *leveldb.DB
	access        *dataAccess
	pool          pools
	readOnly      bool
	inTransaction bool
}

// Open - open or create the database
//
// the file is <database>-ledger.leveldb
func Open(database string, readOnly bool) (*Store, error) {
	log := logger.New("ledger")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	name := database + "-ledger.leveldb"
	db, version, err := getDB(name, readOnly)
	if nil != err {
		log.Criticalf("open: %q  error: %s", name, err)
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentVersion {
		log.Criticalf("ledger database version: %d > current version: %d", version, currentVersion)
		return nil, fault.ErrIncompatibleVersion
	}
	if 0 == version {
		if readOnly {
			return nil, fault.ErrIncompatibleVersion
		}
		err = putVersion(db, currentVersion)
		if nil != err {
			return nil, err
		}
	}

	s := &Store{
		log:      log,
		db:       db,
		access:   newDataAccess(db),
		readOnly: readOnly,
	}

	err = s.setupPools()
	if nil != err {
		return nil, err
	}

	ok = true // prevent db close
	log.Infof("opened: %q  version: %d  read only: %v", name, version, readOnly)
	return s, nil
}

// scan the pools struct and give each field a handle for its prefix
func (s *Store) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(s.pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			store:  s,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - abandon any open transaction and close the database
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return
	}
	if s.inTransaction {
		s.log.Warn("close with open transaction: discarded")
		s.access.reset()
		s.inTransaction = false
	}
	s.db.Close()
	s.db = nil
	s.log.Info("closed")
}

// Begin - start buffering writes
func (s *Store) Begin() error {
	s.Lock()
	defer s.Unlock()

	if s.inTransaction {
		return fault.ErrTransactionInProgress
	}
	s.inTransaction = true
	return nil
}

// Commit - write the buffered batch
func (s *Store) Commit() error {
	s.Lock()
	defer s.Unlock()

	if !s.inTransaction {
		return fault.ErrNotInTransaction
	}
	s.inTransaction = false
	return s.access.write()
}

// Abort - drop the buffered batch
func (s *Store) Abort() error {
	s.Lock()
	defer s.Unlock()

	if !s.inTransaction {
		return fault.ErrNotInTransaction
	}
	s.inTransaction = false
	s.access.reset()
	return nil
}

// return:
//
//	database handle
//	version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
