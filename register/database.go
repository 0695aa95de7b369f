// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package register

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/keychain"
	"github.com/bitmark-inc/ledgerd/sector"
)

// SectorName - the sector database holding register states
const SectorName = "registers"

// Store - register state access used by the operation executor
type Store interface {
	ReadState(Address) (State, error)
	WriteState(Address, State) error
	HasState(Address) bool
	EraseState(Address) error
	Begin() error
	Commit() error
	Abort() error
}

// Database - register states in a sector database keyed by address
type Database struct {
	log    *logger.L
	sector *sector.Database
}

// Open - open the register sector database
func Open(registry *keychain.Registry, directory string, options sector.Options) (*Database, error) {
	log := logger.New("register")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	db, err := sector.Open(registry, directory, SectorName, options)
	if nil != err {
		return nil, err
	}
	return &Database{
		log:    log,
		sector: db,
	}, nil
}

// ReadState - the stored state of a register, checksum verified
func (d *Database) ReadState(address Address) (State, error) {
	data, err := d.sector.Get(address[:])
	if fault.ErrKeyNotFound == err {
		return State{}, fault.ErrRegisterNotFound
	} else if nil != err {
		d.log.Errorf("read register: %s  error: %s", address, err)
		return State{}, err
	}

	s, n, err := Unpack(data)
	if nil != err {
		d.log.Criticalf("decode register: %s  error: %s", address, err)
		return State{}, err
	}
	if n != len(data) {
		d.log.Criticalf("register: %s  has %d trailing bytes", address, len(data)-n)
		return State{}, fault.ErrTrailingBytes
	}
	err = s.Verify()
	if nil != err {
		d.log.Criticalf("register: %s  verify error: %s", address, err)
		return State{}, err
	}
	return s, nil
}

// WriteState - store a state, the checksum must already be set
func (d *Database) WriteState(address Address, state State) error {
	if address.IsZero() {
		return fault.ErrAddressIsZero
	}
	err := state.Verify()
	if nil != err {
		return err
	}
	d.log.Debugf("write register: %s  type: %s  checksum: %016x", address, state.Type, state.Checksum)
	return d.sector.Put(address[:], state.Pack())
}

// HasState - check for a register
func (d *Database) HasState(address Address) bool {
	return d.sector.Has(address[:])
}

// EraseState - delete a register
func (d *Database) EraseState(address Address) error {
	err := d.sector.Erase(address[:])
	if fault.ErrKeyNotFound == err {
		return fault.ErrRegisterNotFound
	}
	return err
}

// Begin - stage all following writes
func (d *Database) Begin() error {
	return d.sector.TxnBegin()
}

// Commit - apply staged writes
func (d *Database) Commit() error {
	return d.sector.TxnCommit()
}

// Abort - discard staged writes
func (d *Database) Abort() error {
	return d.sector.TxnAbort()
}

// Sector - the underlying sector database
func (d *Database) Sector() *sector.Database {
	return d.sector
}

// Close - flush and close the sector database
func (d *Database) Close() error {
	return d.sector.Close()
}
