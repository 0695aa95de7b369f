// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - contract and chain level records
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++      = concatenation of byte data
// 3. txId    = transaction digest as 64 byte SHA3-512(data)
// 4. index   = contract index as big endian uint32 (4 bytes)
// 5. address = register address (32 bytes)
// 6. amount  = big endian uint64 (8 bytes)
//
// Tables:
//
//	C ++ txId ++ index             - contract
//	                                 data: caller ++ timestamp ++ varint(length) ++ operations
//
//	P ++ address ++ txId ++ index  - proof that a referenced contract was credited or claimed
//	                                 data: amount
//
//	V ++ txId ++ index             - validator record, the contract condition was authorised
//	                                 data: caller address
//
//	S ++ "state"                   - chain state
//	                                 data: height ++ supply ++ timestamp (each big endian uint64)
//
// writes inside Begin/Commit are held in a LevelDB batch with a
// read overlay so later reads of the same transaction see them;
// iteration only sees committed data
package ledger
