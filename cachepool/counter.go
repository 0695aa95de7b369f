// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachepool

import (
	"sync/atomic"
)

// statistic - atomic event counter
type statistic uint64

func (s *statistic) increment() {
	atomic.AddUint64((*uint64)(s), 1)
}

func (s *statistic) value() uint64 {
	return atomic.LoadUint64((*uint64)(s))
}
