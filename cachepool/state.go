// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachepool

import (
	"fmt"
)

// State - tag of a cached entry
type State uint8

// entry states
const (
	MemoryOnly   State = iota // default
	PendingWrite State = iota
	PendingErase State = iota
	PendingTx    State = iota
	Completed    State = iota
)

// IsPending - pending entries are exempt from eviction
func (s State) IsPending() bool {
	return PendingWrite == s || PendingErase == s || PendingTx == s
}

func (s State) String() string {
	switch s {
	case MemoryOnly:
		return "MEMORY_ONLY"
	case PendingWrite:
		return "PENDING_WRITE"
	case PendingErase:
		return "PENDING_ERASE"
	case PendingTx:
		return "PENDING_TX"
	case Completed:
		return "COMPLETED"
	default:
		return fmt.Sprintf("STATE(%d)", uint8(s))
	}
}
