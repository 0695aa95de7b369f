// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/ledgerd/keychain"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/register"
	"github.com/bitmark-inc/ledgerd/sector"
)

// the ledgerd default layout below the data directory
const (
	keychainDirectory = "keychain"
	sectorDirectory   = "sectors"
	ledgerName        = "ledgerd"
)

// the stores of one data directory, opened on demand
type stores struct {
	directory string
	registry  *keychain.Registry
	sectors   []*sector.Database
	registers *register.Database
	ledger    *ledger.Store
}

func newStores(m *metadata) *stores {
	return &stores{
		directory: m.directory,
		registry:  keychain.NewRegistry(filepath.Join(m.directory, keychainDirectory), keychain.Options{}),
	}
}

func (s *stores) sector(name string) (*sector.Database, error) {
	db, err := sector.Open(s.registry, filepath.Join(s.directory, sectorDirectory), name, sector.Options{})
	if nil != err {
		return nil, err
	}
	s.sectors = append(s.sectors, db)
	return db, nil
}

func (s *stores) openRegisters() (*register.Database, error) {
	if nil == s.registers {
		db, err := register.Open(s.registry, filepath.Join(s.directory, sectorDirectory), sector.Options{})
		if nil != err {
			return nil, err
		}
		s.registers = db
	}
	return s.registers, nil
}

func (s *stores) openLedger(readOnly bool) (*ledger.Store, error) {
	if nil == s.ledger {
		l, err := ledger.Open(filepath.Join(s.directory, ledgerName), readOnly)
		if nil != err {
			return nil, err
		}
		s.ledger = l
	}
	return s.ledger, nil
}

// close in reverse order of dependency, keeping the first error
func (s *stores) close() error {
	var first error
	if nil != s.ledger {
		s.ledger.Close()
	}
	if nil != s.registers {
		first = s.registers.Close()
	}
	for _, db := range s.sectors {
		err := db.Close()
		if nil == first {
			first = err
		}
	}
	s.registry.Close()
	return first
}

// decodeKey - a key is either text or hex with a 0x prefix
func decodeKey(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		return hex.DecodeString(s[2:])
	}
	if "" == s {
		return nil, fmt.Errorf("empty key")
	}
	return []byte(s), nil
}

func printJSON(handle io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(handle, "%s\n", b)
	return err
}
