// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keychain

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// BucketCount - number of index buckets
const BucketCount = 256 * 256

// location of a record in the key files
type location struct {
	file   uint32
	offset uint64
}

// GetBucket - bucket is the high two bytes of the key
//
// a key shorter than two bytes is a programming error
func GetBucket(key []byte) int {
	if len(key) < 2 {
		fault.Panicf("keychain: key of %d bytes is too short for a bucket", len(key))
	}
	return int(key[0])<<8 + int(key[1])
}
