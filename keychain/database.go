// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keychain

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// MaximumFileSize - default rollover size of a key file
const MaximumFileSize = 1024 * 1024 * 1024

const (
	defaultCacheExpiration = 2 * time.Minute
	defaultCacheCleanup    = 1 * time.Minute
)

// Options - tuning for a key database
type Options struct {
	MaximumFileSize uint64        // roll to a new file once the current one exceeds this
	CacheExpiration time.Duration // lifetime of write-through cache entries
}

// Info - summary of a key database
type Info struct {
	Name        string
	Keys        int
	Files       int
	CurrentFile uint32
	CurrentSize uint64
}

// KeyDatabase - key to record location index over a set of key files
type KeyDatabase struct {
	sync.Mutex

	log       *logger.L
	directory string
	name      string
	options   Options

	buckets [BucketCount]map[string]location
	cache   *cache.Cache
	keys    int

	currentFile uint32
	currentSize uint64
	closed      bool
}

// Open - create a key database and load its index from disk
func Open(directory string, name string, options Options) (*KeyDatabase, error) {
	if 0 == options.MaximumFileSize {
		options.MaximumFileSize = MaximumFileSize
	}
	if 0 == options.CacheExpiration {
		options.CacheExpiration = defaultCacheExpiration
	}

	log := logger.New("keychain")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	db := &KeyDatabase{
		log:       log,
		directory: directory,
		name:      name,
		options:   options,
		cache:     cache.New(options.CacheExpiration, defaultCacheCleanup),
	}

	err := db.Initialise()
	if nil != err {
		return nil, err
	}
	return db, nil
}

// FileName - path of the N'th key file of a database
func FileName(directory string, name string, n uint32) string {
	return filepath.Join(directory, fmt.Sprintf("%s-%d.keys", name, n))
}

func (db *KeyDatabase) fileName(n uint32) string {
	return FileName(db.directory, db.name, n)
}

// Initialise - scan the key files in ascending order and rebuild the index
//
// a missing file ends the scan; any other open or read error is
// returned.  A record whose key runs past the end of the last file is
// a torn write and is cut off so the next append reuses its space.
func (db *KeyDatabase) Initialise() error {
	db.Lock()
	defer db.Unlock()

	for i := range db.buckets {
		db.buckets[i] = nil
	}
	db.keys = 0
	db.currentFile = 0
	db.currentSize = 0

	n := uint32(0)
	for ; ; n += 1 {
		data, err := ioutil.ReadFile(db.fileName(n))
		if os.IsNotExist(err) {
			break
		} else if nil != err {
			db.log.Criticalf("read key file: %q  error: %s", db.fileName(n), err)
			return err
		}

		size, err := db.scan(n, data)
		if nil != err {
			return err
		}

		if size != uint64(len(data)) {
			db.log.Warnf("key file: %q  torn record at: %d  truncating from: %d", db.fileName(n), size, len(data))
			err := os.Truncate(db.fileName(n), int64(size))
			if nil != err {
				return err
			}
		}

		db.currentFile = n
		db.currentSize = size
	}

	// no files at all
	if 0 == n {
		f, err := os.OpenFile(db.fileName(0), os.O_RDWR|os.O_CREATE, 0600)
		if nil != err {
			return err
		}
		f.Close()
	}

	db.closed = false
	db.log.Infof("%s: loaded %d keys from %d file(s)", db.name, db.keys, n)
	return nil
}

// walk the records of one file and index the ready ones
//
// returns the offset just past the last complete record
func (db *KeyDatabase) scan(file uint32, data []byte) (uint64, error) {
	offset := 0
	for offset+HeaderSize <= len(data) {
		k, err := UnpackHeader(data[offset:])
		if nil != err {
			db.log.Criticalf("key file: %q  offset: %d  error: %s", db.fileName(file), offset, err)
			return 0, err
		}
		end := offset + k.Size()
		if end > len(data) {
			break
		}
		if StateReady == k.State {
			db.index(data[offset+HeaderSize:end], location{file: file, offset: uint64(offset)})
		} else {
			db.log.Debugf("key file: %q  offset: %d  skip: %s", db.fileName(file), offset, k.State)
		}
		offset = end
	}
	return uint64(offset), nil
}

func (db *KeyDatabase) index(key []byte, loc location) {
	b := GetBucket(key)
	if nil == db.buckets[b] {
		db.buckets[b] = make(map[string]location)
	}
	if _, ok := db.buckets[b][string(key)]; !ok {
		db.keys += 1
	}
	db.buckets[b][string(key)] = loc
}

func (db *KeyDatabase) unindex(key []byte) {
	b := GetBucket(key)
	if _, ok := db.buckets[b][string(key)]; ok {
		delete(db.buckets[b], string(key))
		db.keys -= 1
	}
}

func (db *KeyDatabase) lookup(key []byte) (location, bool) {
	loc, ok := db.buckets[GetBucket(key)][string(key)]
	return loc, ok
}

// Put - write a record, appending for a new key or rewriting in place
func (db *KeyDatabase) Put(k SectorKey) error {
	db.Lock()
	defer db.Unlock()

	if db.closed {
		return fault.ErrDatabaseIsClosed
	}
	if len(k.Key) > MaximumKeyLength {
		return fault.ErrKeyLength
	}
	k.Key = append([]byte(nil), k.Key...)
	k.Length = uint16(len(k.Key))

	loc, ok := db.lookup(k.Key)
	if !ok {
		if db.currentSize > db.options.MaximumFileSize {
			db.currentFile += 1
			db.currentSize = 0
			db.log.Infof("%s: roll over to key file: %d", db.name, db.currentFile)
		}
		loc = location{
			file:   db.currentFile,
			offset: db.currentSize,
		}
	}

	err := db.writeAt(loc, k.Pack())
	if nil != err {
		db.log.Errorf("put key: %x  error: %s", k.Key, err)
		return err
	}
	if !ok {
		db.currentSize += uint64(k.Size())
	}

	if k.State.IsReadable() {
		db.index(k.Key, loc)
		db.cache.Set(string(k.Key), k, cache.DefaultExpiration)
	} else {
		db.unindex(k.Key)
		db.cache.Delete(string(k.Key))
	}
	return nil
}

// Get - read the record for a key
//
// the stored key must match the requested one, otherwise the index is
// corrupt and ErrKeyMismatch is returned
func (db *KeyDatabase) Get(key []byte) (SectorKey, error) {
	db.Lock()
	defer db.Unlock()

	if db.closed {
		return SectorKey{}, fault.ErrDatabaseIsClosed
	}

	if item, found := db.cache.Get(string(key)); found {
		return item.(SectorKey), nil
	}

	loc, ok := db.lookup(key)
	if !ok {
		return SectorKey{}, fault.ErrKeyNotFound
	}

	f, err := os.Open(db.fileName(loc.file))
	if nil != err {
		db.log.Errorf("open key file: %q  error: %s", db.fileName(loc.file), err)
		return SectorKey{}, err
	}
	defer f.Close()

	header := make([]byte, HeaderSize)
	_, err = f.ReadAt(header, int64(loc.offset))
	if nil != err {
		return SectorKey{}, err
	}
	k, err := UnpackHeader(header)
	if nil != err {
		return SectorKey{}, err
	}
	if !k.State.IsReadable() {
		return SectorKey{}, fault.ErrKeyNotFound
	}

	k.Key = make([]byte, k.Length)
	_, err = f.ReadAt(k.Key, int64(loc.offset)+HeaderSize)
	if nil != err {
		return SectorKey{}, err
	}
	if !bytes.Equal(k.Key, key) {
		db.log.Criticalf("%s: key mismatch at file: %d  offset: %d  expected: %x  actual: %x", db.name, loc.file, loc.offset, key, k.Key)
		return SectorKey{}, fault.ErrKeyMismatch
	}

	db.cache.Set(string(key), k, cache.DefaultExpiration)
	return k, nil
}

// HasKey - check the in-memory index
func (db *KeyDatabase) HasKey(key []byte) bool {
	db.Lock()
	defer db.Unlock()

	_, ok := db.lookup(key)
	return ok
}

// Erase - flip the record state to EMPTY and drop it from the index
//
// the rest of the record stays on disk and its space is not reclaimed
func (db *KeyDatabase) Erase(key []byte) error {
	db.Lock()
	defer db.Unlock()

	if db.closed {
		return fault.ErrDatabaseIsClosed
	}

	loc, ok := db.lookup(key)
	if !ok {
		return fault.ErrKeyNotFound
	}

	err := db.writeAt(loc, []byte{byte(StateEmpty)})
	if nil != err {
		db.log.Errorf("erase key: %x  error: %s", key, err)
		return err
	}

	db.unindex(key)
	db.cache.Delete(string(key))
	return nil
}

// Info - current counts
func (db *KeyDatabase) Info() Info {
	db.Lock()
	defer db.Unlock()

	return Info{
		Name:        db.name,
		Keys:        db.keys,
		Files:       int(db.currentFile) + 1,
		CurrentFile: db.currentFile,
		CurrentSize: db.currentSize,
	}
}

// Close - no further access is allowed
func (db *KeyDatabase) Close() {
	db.Lock()
	defer db.Unlock()

	if db.closed {
		return
	}
	db.closed = true
	db.cache.Flush()
	db.log.Infof("%s: closed", db.name)
}

func (db *KeyDatabase) writeAt(loc location, data []byte) error {
	f, err := os.OpenFile(db.fileName(loc.file), os.O_RDWR|os.O_CREATE, 0600)
	if nil != err {
		return err
	}
	_, err = f.WriteAt(data, int64(loc.offset))
	if nil != err {
		f.Close()
		return err
	}
	return f.Close()
}

// Record - a record read directly from a key file
type Record struct {
	Offset uint64
	SectorKey
}

// ReadRecords - decode every complete record of a single key file,
// whatever its state
func ReadRecords(fileName string) ([]Record, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	records := make([]Record, 0)
	offset := 0
	for offset+HeaderSize <= len(data) {
		k, err := Unpack(data[offset:])
		if fault.ErrBufferTruncated == err {
			break
		} else if nil != err {
			return records, err
		}
		records = append(records, Record{
			Offset:    uint64(offset),
			SectorKey: k,
		})
		offset += k.Size()
	}
	return records, nil
}
