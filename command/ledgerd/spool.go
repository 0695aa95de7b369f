// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/operation"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/logger"
)

const (
	contractSuffix     = ".contract"
	appliedDirectory   = "applied"
	rejectedDirectory  = "rejected"
	maximumSpooledFile = 1024 * 1024
)

// an executor and the ledger it writes to
type applier interface {
	Execute(contract.Reference, *contract.Contract, operation.Flags) error
}

type chainStore interface {
	ReadChainState() ledger.ChainState
	WriteChainState(ledger.ChainState) error
}

// spooler - apply contract files dropped into a directory
//
// each file holds one hex encoded packed contract; files are taken in
// name order and moved to applied/ or rejected/ once processed, every
// pass that applies at least one contract advances the chain height
type spooler struct {
	log       *logger.L
	directory string
	executor  applier
	chain     chainStore
	clock     func() uint64
}

func newSpooler(directory string, executor applier, chain chainStore) (*spooler, error) {
	log := logger.New("spool")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	for _, d := range []string{appliedDirectory, rejectedDirectory} {
		_, err := util.EnsureDirectory(directory, d)
		if nil != err {
			return nil, err
		}
	}

	return &spooler{
		log:       log,
		directory: directory,
		executor:  executor,
		chain:     chain,
		clock: func() uint64 {
			return uint64(time.Now().Unix())
		},
	}, nil
}

// tick - background entry point
func (s *spooler) tick() {
	applied, rejected, err := s.process()
	if nil != err {
		s.log.Errorf("spool: %q  error: %s", s.directory, err)
		return
	}
	if applied > 0 || rejected > 0 {
		s.log.Infof("spool: applied: %d  rejected: %d", applied, rejected)
	}
}

// process - one pass over the spool directory
func (s *spooler) process() (int, int, error) {
	files, err := ioutil.ReadDir(s.directory)
	if nil != err {
		return 0, 0, err
	}

	applied := 0
	rejected := 0
	minted := uint64(0)

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), contractSuffix) {
			continue
		}
		fileName := filepath.Join(s.directory, f.Name())

		c, amount, err := s.apply(fileName, f.Size())
		destination := appliedDirectory
		if nil != err {
			s.log.Warnf("reject file: %q  error: %s", f.Name(), err)
			destination = rejectedDirectory
			rejected += 1
		} else {
			s.log.Debugf("applied file: %q  caller: %s", f.Name(), c.Caller)
			applied += 1
			minted += amount
		}

		err = os.Rename(fileName, filepath.Join(s.directory, destination, f.Name()))
		if nil != err {
			return applied, rejected, err
		}
	}

	if 0 == applied {
		return applied, rejected, nil
	}

	state := s.chain.ReadChainState()
	state.Height += 1
	state.Supply += minted
	state.Timestamp = s.clock()
	err = s.chain.WriteChainState(state)
	return applied, rejected, err
}

// apply one file, the amount is any new supply a coinbase introduced
func (s *spooler) apply(fileName string, size int64) (*contract.Contract, uint64, error) {
	if size > maximumSpooledFile {
		return nil, 0, fault.ErrValueTooLarge
	}

	c, packed, err := readContractFile(fileName)
	if nil != err {
		return nil, 0, err
	}

	ref := contract.Reference{
		TxID: contract.NewTxID(packed),
	}
	err = s.executor.Execute(ref, c, operation.FlagWrite)
	if nil != err {
		return nil, 0, err
	}

	d, err := operation.Decode(c)
	if nil != err {
		return nil, 0, err
	}
	if coinbase, ok := d.Primitive.(*operation.Coinbase); ok {
		return c, coinbase.Amount, nil
	}
	return c, 0, nil
}

// readContractFile - decode a hex packed contract
func readContractFile(fileName string) (*contract.Contract, []byte, error) {
	text, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, nil, err
	}
	packed, err := hex.DecodeString(string(bytes.TrimSpace(text)))
	if nil != err {
		return nil, nil, err
	}
	c, err := contract.Unpack(packed)
	if nil != err {
		return nil, nil, err
	}
	return c, packed, nil
}
