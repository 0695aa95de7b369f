// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sector - value storage in append-only data files
//
// the keychain records where each value lives:
//
//	<directory>/<name>-<N>.data
//
// a value of the same size as its existing sector is rewritten in
// place, any other value is appended.  The sector checksum is the
// CRC32 of the value.
//
// transactions stage writes in the cache pool as PENDING_TX.  Commit
// appends every value to a fresh sector first, recording new keys in
// the TRANSACTION state and leaving the READY record and old sector of
// an existing key untouched, then points every key at its new sector
// as READY.  A crash in the first phase leaves new keys unindexed and
// existing keys at their previous values on the next load.
package sector

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/cachepool"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/keychain"
	"github.com/bitmark-inc/logger"
)

// MaximumSectorSize - a value must fit the uint16 sector size field
const MaximumSectorSize = 0xffff

// DefaultFlushInterval - write-back flush period
const DefaultFlushInterval = 5 * time.Second

// Options - data layer configuration
type Options struct {
	MaximumFileSize uint64
	WriteBack       bool
	FlushInterval   time.Duration
	Cache           cachepool.Options
}

// Stats - summary of a sector database
type Stats struct {
	Keychain keychain.Info
	Cache    cachepool.Stats
}

// Database - keyed values in sector files
type Database struct {
	sync.Mutex

	log       *logger.L
	directory string
	name      string
	options   Options

	keychain *keychain.KeyDatabase
	pool     *cachepool.Pool

	currentFile uint16
	currentSize uint64

	inTransaction bool
	erased        map[string]struct{}

	background *background.T
	closed     bool
}

// Open - attach to the named keychain from the registry and locate the
// current data file
func Open(registry *keychain.Registry, directory string, name string, options Options) (*Database, error) {
	if 0 == options.MaximumFileSize {
		options.MaximumFileSize = keychain.MaximumFileSize
	}
	if 0 == options.FlushInterval {
		options.FlushInterval = DefaultFlushInterval
	}

	log := logger.New("sector")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	kc, err := registry.Open(name)
	if nil != err {
		return nil, err
	}

	db := &Database{
		log:       log,
		directory: directory,
		name:      name,
		options:   options,
		keychain:  kc,
	}

	err = db.locate()
	if nil != err {
		return nil, err
	}

	db.pool, err = cachepool.New(options.Cache)
	if nil != err {
		return nil, err
	}

	if options.WriteBack {
		db.background = background.Start(background.Processes{
			&background.Periodic{
				Interval: options.FlushInterval,
				Tick:     db.flushTick,
			},
		}, nil)
	}

	log.Infof("%s: data file: %d  size: %d  write-back: %v", name, db.currentFile, db.currentSize, options.WriteBack)
	return db, nil
}

// DataFileName - path of the N'th data file
func DataFileName(directory string, name string, n uint16) string {
	return filepath.Join(directory, fmt.Sprintf("%s-%d.data", name, n))
}

// find the last existing data file
func (db *Database) locate() error {
	for n := uint16(0); n < 0xffff; n += 1 {
		info, err := os.Stat(DataFileName(db.directory, db.name, n))
		if os.IsNotExist(err) {
			return nil
		} else if nil != err {
			db.log.Criticalf("stat data file: %q  error: %s", DataFileName(db.directory, db.name, n), err)
			return err
		}
		db.currentFile = n
		db.currentSize = uint64(info.Size())
	}
	return nil
}

// Put - store a value
func (db *Database) Put(key []byte, value []byte) error {
	if len(value) > MaximumSectorSize {
		return fault.ErrValueTooLarge
	}

	db.Lock()
	defer db.Unlock()

	if db.closed {
		return fault.ErrDatabaseIsClosed
	}

	if db.inTransaction {
		delete(db.erased, string(key))
		db.pool.Put(key, value, cachepool.PendingTx)
		return nil
	}

	if db.options.WriteBack {
		db.pool.Put(key, value, cachepool.PendingWrite)
		return nil
	}

	err := db.write(key, value, keychain.StateReady)
	if nil != err {
		return err
	}
	db.pool.Put(key, value, cachepool.MemoryOnly)
	return nil
}

// Get - read a value, from the cache pool when possible
func (db *Database) Get(key []byte) ([]byte, error) {
	db.Lock()
	defer db.Unlock()

	if db.closed {
		return nil, fault.ErrDatabaseIsClosed
	}

	if state, ok := db.pool.GetState(key); ok && cachepool.PendingErase == state {
		return nil, fault.ErrKeyNotFound
	}
	if data, ok := db.pool.Get(key); ok {
		return data, nil
	}

	k, err := db.keychain.Get(key)
	if nil != err {
		return nil, err
	}

	data, err := db.read(k)
	if nil != err {
		return nil, err
	}
	db.pool.Put(key, data, cachepool.MemoryOnly)
	return data, nil
}

// Has - check if a key is present
func (db *Database) Has(key []byte) bool {
	db.Lock()
	defer db.Unlock()

	if state, ok := db.pool.GetState(key); ok {
		return cachepool.PendingErase != state
	}
	return db.keychain.HasKey(key)
}

// Erase - remove a key
func (db *Database) Erase(key []byte) error {
	db.Lock()
	defer db.Unlock()

	if db.closed {
		return fault.ErrDatabaseIsClosed
	}

	if db.inTransaction {
		db.erased[string(key)] = struct{}{}
		db.pool.Put(key, nil, cachepool.PendingErase)
		return nil
	}

	pending := false
	if state, ok := db.pool.GetState(key); ok && cachepool.PendingWrite == state {
		pending = true
	}
	db.pool.Remove(key)

	err := db.keychain.Erase(key)
	if fault.ErrKeyNotFound == err && pending {
		return nil
	}
	return err
}

// TxnBegin - start staging writes
func (db *Database) TxnBegin() error {
	db.Lock()
	defer db.Unlock()

	if db.inTransaction {
		return fault.ErrTransactionInProgress
	}
	db.inTransaction = true
	db.erased = make(map[string]struct{})
	return nil
}

// TxnCommit - write every staged value then mark the keys ready
func (db *Database) TxnCommit() error {
	db.Lock()
	defer db.Unlock()

	if !db.inTransaction {
		return fault.ErrNotInTransaction
	}
	db.inTransaction = false

	written, err := db.prepare()
	if nil != err {
		return err
	}

	for _, k := range written {
		k.State = keychain.StateReady
		err := db.keychain.Put(k)
		if nil != err {
			db.log.Criticalf("%s: commit ready key: %x  error: %s", db.name, k.Key, err)
			return err
		}
		db.pool.SetState(k.Key, cachepool.Completed)
	}

	for key := range db.erased {
		err := db.keychain.Erase([]byte(key))
		if nil != err && fault.ErrKeyNotFound != err {
			return err
		}
		db.pool.Remove([]byte(key))
	}
	db.erased = nil

	db.log.Debugf("%s: committed %d writes", db.name, len(written))
	return nil
}

// first commit phase, returns the records the second phase makes READY
func (db *Database) prepare() ([]keychain.SectorKey, error) {
	staged := lastWins(db.pool.GetTransactionBuffer())

	written := make([]keychain.SectorKey, 0, len(staged))
	for _, e := range staged {
		if _, ok := db.erased[string(e.Key)]; ok {
			continue
		}
		existing := db.keychain.HasKey(e.Key)

		k, err := db.place(e.Key, e.Data, false)
		if nil != err {
			db.log.Criticalf("%s: commit write key: %x  error: %s", db.name, e.Key, err)
			return nil, err
		}
		if !existing {
			k.State = keychain.StateTransaction
			err = db.keychain.Put(k)
			if nil != err {
				db.log.Criticalf("%s: commit stage key: %x  error: %s", db.name, e.Key, err)
				return nil, err
			}
		}
		written = append(written, k)
	}
	return written, nil
}

// TxnAbort - drop every staged change
func (db *Database) TxnAbort() error {
	db.Lock()
	defer db.Unlock()

	if !db.inTransaction {
		return fault.ErrNotInTransaction
	}
	db.inTransaction = false

	for _, e := range db.pool.GetTransactionBuffer() {
		db.pool.Remove(e.Key)
	}
	for key := range db.erased {
		db.pool.Remove([]byte(key))
	}
	db.erased = nil
	return nil
}

// Flush - write out all pending write-back data
func (db *Database) Flush() error {
	db.Lock()
	defer db.Unlock()

	return db.flush()
}

func (db *Database) flush() error {
	buffer := lastWins(db.pool.GetDiskBuffer())
	for _, e := range buffer {

		// erased or rewritten since it was queued
		if state, ok := db.pool.GetState(e.Key); !ok || cachepool.PendingWrite != state {
			continue
		}
		err := db.write(e.Key, e.Data, keychain.StateReady)
		if nil != err {
			db.log.Errorf("%s: flush key: %x  error: %s", db.name, e.Key, err)
			return err
		}
		db.pool.SetState(e.Key, cachepool.Completed)
	}
	if len(buffer) > 0 {
		db.log.Debugf("%s: flushed %d values", db.name, len(buffer))
	}
	return nil
}

func (db *Database) flushTick() {
	err := db.Flush()
	if nil != err {
		db.log.Errorf("%s: background flush error: %s", db.name, err)
	}
}

// SetCacheSize - change the cache pool budget
func (db *Database) SetCacheSize(maximumSize uint64) {
	db.pool.SetMaximumSize(maximumSize)
}

// Stats - keychain and cache pool counters
func (db *Database) Stats() Stats {
	return Stats{
		Keychain: db.keychain.Info(),
		Cache:    db.pool.Stats(),
	}
}

// Close - flush write-back data and stop background work
//
// the keychain belongs to the registry and stays open
func (db *Database) Close() error {
	db.background.Stop()

	db.Lock()
	defer db.Unlock()

	if db.closed {
		return nil
	}
	err := db.flush()
	db.pool.Close()
	db.closed = true
	db.log.Infof("%s: closed", db.name)
	return err
}

// store the value then its key record, caller holds the lock
func (db *Database) write(key []byte, value []byte, state keychain.State) error {
	k, err := db.place(key, value, true)
	if nil != err {
		return err
	}
	k.State = state
	return db.keychain.Put(k)
}

// write a value to a sector and return a READY record for it without
// storing the record
//
// with reuse set a value of the same size as its existing sector
// overwrites it, otherwise the value is appended
func (db *Database) place(key []byte, value []byte, reuse bool) (keychain.SectorKey, error) {
	existing, err := db.keychain.Get(key)
	inPlace := reuse && nil == err && int(existing.SectorSize) == len(value)

	file := db.currentFile
	start := db.currentSize
	if inPlace {
		file = existing.SectorFile
		start = uint64(existing.SectorStart)
	} else {
		if db.currentSize > db.options.MaximumFileSize {
			db.currentFile += 1
			db.currentSize = 0
			db.log.Infof("%s: roll over to data file: %d", db.name, db.currentFile)
			file = db.currentFile
		}
		start = db.currentSize
	}

	f, err := os.OpenFile(DataFileName(db.directory, db.name, file), os.O_RDWR|os.O_CREATE, 0600)
	if nil != err {
		return keychain.SectorKey{}, err
	}
	_, err = f.WriteAt(value, int64(start))
	if nil != err {
		f.Close()
		return keychain.SectorKey{}, err
	}
	err = f.Close()
	if nil != err {
		return keychain.SectorKey{}, err
	}

	if !inPlace {
		db.currentSize += uint64(len(value))
	}

	k := keychain.NewSectorKey(keychain.StateReady, key, file, uint32(start), uint16(len(value)))
	k.Checksum = crc32.ChecksumIEEE(value)
	return k, nil
}

// read and verify the sector of a key record
func (db *Database) read(k keychain.SectorKey) ([]byte, error) {
	f, err := os.Open(DataFileName(db.directory, db.name, k.SectorFile))
	if nil != err {
		db.log.Errorf("%s: open data file: %d  error: %s", db.name, k.SectorFile, err)
		return nil, err
	}
	defer f.Close()

	data := make([]byte, k.SectorSize)
	_, err = f.ReadAt(data, int64(k.SectorStart))
	if nil != err {
		return nil, err
	}
	if crc32.ChecksumIEEE(data) != k.Checksum {
		db.log.Criticalf("%s: sector checksum mismatch for key: %x", db.name, k.Key)
		return nil, fault.ErrSectorChecksum
	}
	return data, nil
}

// keep only the last element of each key, in order of last appearance
func lastWins(elements []cachepool.Element) []cachepool.Element {
	last := make(map[string]int, len(elements))
	for i, e := range elements {
		last[string(e.Key)] = i
	}
	result := make([]cachepool.Element, 0, len(last))
	for i, e := range elements {
		if last[string(e.Key)] == i {
			result = append(result, e)
		}
	}
	return result
}
