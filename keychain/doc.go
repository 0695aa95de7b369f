// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keychain - the sector keychain
//
// maps opaque binary keys to the location of a fixed header record in
// a set of append-only files:
//
//	<directory>/<name>-<N>.keys      N = 0, 1, 2 ...
//
// each record is a 15 byte little endian header followed by the key:
//
//	state        uint8     EMPTY, READ, WRITE, READY, TRANSACTION
//	length       uint16    number of key bytes following the header
//	sector file  uint16    data file index of the value
//	sector size  uint16    bytes reserved for the value
//	sector start uint32    byte offset of the value in its data file
//	checksum     uint32    CRC32 of the value
//	key          [length]byte
//
// records are never moved; an update of an existing key rewrites its
// header in place and an erase overwrites only the state byte with
// EMPTY.  A new file is started once the current one exceeds the
// maximum file size.
//
// the in-memory index is split into 65536 buckets selected by the
// first two key bytes.
package keychain
