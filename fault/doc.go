// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error values shared by the ledger packages
//
// each error is a single typed instance so callers compare with ==,
// the type (invalid, not found, exists, ...) classifies the failure
package fault
