// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	cache "github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

const (
	dbPut = iota
	dbDelete
)

type cacheData struct {
	op    int
	value []byte
}

// batched access with an overlay of uncommitted writes
type dataAccess struct {
	db      *leveldb.DB
	batch   *leveldb.Batch
	overlay *cache.Cache
}

func newDataAccess(db *leveldb.DB) *dataAccess {
	return &dataAccess{
		db:      db,
		batch:   new(leveldb.Batch),
		overlay: cache.New(cache.NoExpiration, 0),
	}
}

func (d *dataAccess) put(key []byte, value []byte) {
	d.batch.Put(key, value)
	d.overlay.Set(string(key), cacheData{op: dbPut, value: value}, cache.NoExpiration)
}

func (d *dataAccess) delete(key []byte) {
	d.batch.Delete(key)
	d.overlay.Set(string(key), cacheData{op: dbDelete}, cache.NoExpiration)
}

func (d *dataAccess) get(key []byte) ([]byte, error) {
	if obj, found := d.overlay.Get(string(key)); found {
		data := obj.(cacheData)
		if dbDelete == data.op {
			return nil, leveldb.ErrNotFound
		}
		return data.value, nil
	}
	return d.db.Get(key, nil)
}

func (d *dataAccess) has(key []byte) (bool, error) {
	if obj, found := d.overlay.Get(string(key)); found {
		return dbPut == obj.(cacheData).op, nil
	}
	return d.db.Has(key, nil)
}

func (d *dataAccess) write() error {
	err := d.db.Write(d.batch, nil)
	d.reset()
	return err
}

func (d *dataAccess) reset() {
	d.batch.Reset()
	d.overlay.Flush()
}

func (d *dataAccess) iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}
