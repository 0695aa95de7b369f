// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/keychain"
)

type keyRecord struct {
	Offset      uint64 `json:"offset"`
	State       string `json:"state"`
	Key         string `json:"key"`
	SectorFile  uint16 `json:"sectorFile"`
	SectorStart uint32 `json:"sectorStart"`
	SectorSize  uint16 `json:"sectorSize"`
	Checksum    uint32 `json:"checksum"`
}

func runKeys(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.Args().Get(0)
	if "" == fileName {
		return fmt.Errorf("missing keychain file name")
	}

	// bare names are looked up in the keychain directory
	if _, err := os.Stat(fileName); os.IsNotExist(err) && !filepath.IsAbs(fileName) {
		fileName = filepath.Join(m.directory, keychainDirectory, fileName)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "keychain file: %q\n", fileName)
	}

	records, err := keychain.ReadRecords(fileName)
	if nil != err {
		return err
	}

	return printJSON(m.w, keyRecords(records))
}

func keyRecords(records []keychain.Record) []keyRecord {
	result := make([]keyRecord, 0, len(records))
	for _, r := range records {
		result = append(result, keyRecord{
			Offset:      r.Offset,
			State:       r.State.String(),
			Key:         hex.EncodeToString(r.Key),
			SectorFile:  r.SectorFile,
			SectorStart: r.SectorStart,
			SectorSize:  r.SectorSize,
			Checksum:    r.Checksum,
		})
	}
	return result
}
