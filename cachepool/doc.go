// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cachepool - bounded in-memory staging of binary key/value data
//
// every entry carries a state:
//
//	MEMORY_ONLY    plain cached copy (default)
//	PENDING_WRITE  waiting to be flushed to disk, also queued in the disk buffer
//	PENDING_ERASE  waiting to be erased from disk
//	PENDING_TX     staged by an open transaction, also queued in the transaction buffer
//	COMPLETED      flushed, eligible for eviction again
//
// a background cleaner trims the oldest non-pending entries once the
// total data size exceeds the configured maximum.  Pending entries
// are never evicted.
package cachepool
