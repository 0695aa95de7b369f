// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/register"
)

func sectorFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "name, n",
			Value: register.SectorName,
			Usage: " sector database `NAME`",
		},
	}
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := decodeKey(c.Args().Get(0))
	if nil != err {
		return err
	}

	s := newStores(m)
	defer s.close()

	db, err := s.sector(c.String("name"))
	if nil != err {
		return err
	}

	value, err := db.Get(key)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "key: %x  length: %d\n", key, len(value))
	}
	fmt.Fprintf(m.w, "%s\n", hex.EncodeToString(value))
	return nil
}

func runPut(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 2 != c.NArg() {
		return fmt.Errorf("put requires KEY and VALUE")
	}
	key, err := decodeKey(c.Args().Get(0))
	if nil != err {
		return err
	}
	value, err := decodeKey(c.Args().Get(1))
	if nil != err {
		return err
	}

	s := newStores(m)
	db, err := s.sector(c.String("name"))
	if nil != err {
		_ = s.close()
		return err
	}

	err = db.Put(key, value)
	if nil != err {
		_ = s.close()
		return err
	}

	// close flushes any write-back data
	return s.close()
}

func runErase(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := decodeKey(c.Args().Get(0))
	if nil != err {
		return err
	}

	s := newStores(m)
	db, err := s.sector(c.String("name"))
	if nil != err {
		_ = s.close()
		return err
	}

	err = db.Erase(key)
	if nil != err {
		_ = s.close()
		return err
	}
	return s.close()
}
