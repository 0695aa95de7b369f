// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/contract"
	"github.com/bitmark-inc/ledgerd/operation"
	"github.com/bitmark-inc/ledgerd/validate"
)

type execResult struct {
	TxID      contract.TxID `json:"txid"`
	Operation string        `json:"operation"`
	Written   bool          `json:"written"`
}

func runExec(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.Args().Get(0)
	if "" == fileName {
		return fmt.Errorf("missing contract file name")
	}

	text, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}
	packed, err := hex.DecodeString(string(bytes.TrimSpace(text)))
	if nil != err {
		return err
	}
	theContract, err := contract.Unpack(packed)
	if nil != err {
		return err
	}

	d, err := operation.Decode(theContract)
	if nil != err {
		return err
	}

	flags := operation.FlagVerify
	if c.Bool("write") {
		flags |= operation.FlagWrite
	}

	s := newStores(m)
	defer s.close()

	registers, err := s.openRegisters()
	if nil != err {
		return err
	}
	l, err := s.openLedger(false)
	if nil != err {
		return err
	}

	executor, err := operation.New(registers, l, validate.Options{
		Limit: c.Int("limit"),
	})
	if nil != err {
		return err
	}

	ref := contract.Reference{
		TxID: contract.NewTxID(packed),
	}
	if m.verbose {
		fmt.Fprintf(m.e, "txid: %s  caller: %s  flags: %d\n", ref.TxID, theContract.Caller, flags)
	}

	err = executor.Execute(ref, theContract, flags)
	if nil != err {
		return err
	}

	return printJSON(m.w, execResult{
		TxID:      ref.TxID,
		Operation: contract.OperationName(d.Primitive.Opcode()),
		Written:   0 != flags&operation.FlagWrite,
	})
}
