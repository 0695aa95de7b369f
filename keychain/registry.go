// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keychain

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Registry - owns every open key database of a process
//
// created once by the storage composition root and passed to the
// layers that need a keychain
type Registry struct {
	sync.Mutex
	directory string
	options   Options
	keychains map[string]*KeyDatabase
}

// NewRegistry - an empty registry rooted in a directory
func NewRegistry(directory string, options Options) *Registry {
	return &Registry{
		directory: directory,
		options:   options,
		keychains: make(map[string]*KeyDatabase),
	}
}

// Open - return the named keychain, loading it on first use
func (r *Registry) Open(name string) (*KeyDatabase, error) {
	r.Lock()
	defer r.Unlock()

	if nil == r.keychains {
		return nil, fault.ErrDatabaseIsClosed
	}
	if db, ok := r.keychains[name]; ok {
		return db, nil
	}

	db, err := Open(r.directory, name, r.options)
	if nil != err {
		return nil, err
	}
	r.keychains[name] = db
	return db, nil
}

// Get - an already open keychain
func (r *Registry) Get(name string) (*KeyDatabase, bool) {
	r.Lock()
	defer r.Unlock()

	db, ok := r.keychains[name]
	return db, ok
}

// Names - sorted names of the open keychains
func (r *Registry) Names() []string {
	r.Lock()
	defer r.Unlock()

	names := make([]string, 0, len(r.keychains))
	for name := range r.keychains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close - close every keychain, the registry cannot be used afterwards
func (r *Registry) Close() {
	r.Lock()
	defer r.Unlock()

	for _, db := range r.keychains {
		db.Close()
	}
	r.keychains = nil
}
