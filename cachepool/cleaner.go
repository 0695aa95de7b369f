// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachepool

import (
	"sort"
)

type candidate struct {
	key       string
	timestamp uint64
	size      uint64
}

// Trim - one cleaner cycle
//
// when over budget, remove the oldest non-pending entries until the
// size is back within the maximum; returns the number removed
func (p *Pool) Trim() int {
	p.Lock()
	defer p.Unlock()

	if p.currentSize <= p.maximumSize {
		return 0
	}

	candidates := make([]candidate, 0, p.entries)
	for _, bucket := range p.buckets {
		for key, e := range bucket {
			if e.state.IsPending() {
				continue
			}
			candidates = append(candidates, candidate{
				key:       key,
				timestamp: e.timestamp,
				size:      uint64(len(e.data)),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].timestamp < candidates[j].timestamp
	})

	removed := 0
	for _, c := range candidates {
		if p.currentSize <= p.maximumSize {
			break
		}
		p.remove([]byte(c.key))
		p.evictions.increment()
		removed += 1
	}

	if p.currentSize > p.maximumSize {
		p.log.Warnf("still over budget after trim: size: %d  maximum: %d (pending entries)", p.currentSize, p.maximumSize)
	}
	p.log.Debugf("trimmed %d entries  size: %d", removed, p.currentSize)
	return removed
}
