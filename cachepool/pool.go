// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachepool

import (
	"sync"
	"time"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// BucketCount - number of map partitions
const BucketCount = 256 * 256

// defaults
const (
	DefaultMaximumSize   = 1024 * 1024
	DefaultCleanInterval = 10 * time.Second
)

// Options - pool configuration
type Options struct {
	MaximumSize   uint64        // trim once the cached data exceeds this many bytes
	CleanInterval time.Duration // cleaner wake up period
}

// Element - a key/data pair
type Element struct {
	Key  []byte
	Data []byte
}

// Stats - pool counters
type Stats struct {
	Entries   int
	Size      uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type entry struct {
	state     State
	timestamp uint64
	data      []byte
}

// Pool - the cache pool
//
// one mutex guards all buckets, the bucket split only keeps the
// individual maps small
type Pool struct {
	sync.Mutex

	log     *logger.L
	buckets [BucketCount]map[string]*entry
	entries int

	currentSize uint64
	maximumSize uint64

	// logical clock, advanced on every touch so recency is strictly ordered
	clock uint64

	diskBuffer        []Element
	transactionBuffer []Element

	hits      statistic
	misses    statistic
	evictions statistic

	background *background.T
}

// New - create a pool and start its cleaner
func New(options Options) (*Pool, error) {
	if 0 == options.MaximumSize {
		options.MaximumSize = DefaultMaximumSize
	}
	if 0 == options.CleanInterval {
		options.CleanInterval = DefaultCleanInterval
	}

	log := logger.New("cachepool")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	p := &Pool{
		log:         log,
		maximumSize: options.MaximumSize,
	}

	p.background = background.Start(background.Processes{
		&background.Periodic{
			Interval: options.CleanInterval,
			Tick:     func() { p.Trim() },
		},
	}, nil)

	return p, nil
}

// Close - stop the cleaner and wait for it
func (p *Pool) Close() {
	p.background.Stop()
}

// GetBucket - cheap rolling hash of up to the first 8 key bytes
func GetBucket(key []byte) int {
	h := uint32(0)
	for i := 0; i < len(key) && i < 8; i += 1 {
		h = h*31 + uint32(key[i])
	}
	return int(h % BucketCount)
}

func (p *Pool) find(key []byte) (*entry, bool) {
	e, ok := p.buckets[GetBucket(key)][string(key)]
	return e, ok
}

func (p *Pool) tick() uint64 {
	p.clock += 1
	return p.clock
}

// Put - insert or replace an entry
//
// pending write and pending transaction data is also appended to the
// matching buffer; a key written twice before a drain appears twice
func (p *Pool) Put(key []byte, data []byte, state State) {
	p.Lock()
	defer p.Unlock()

	d := make([]byte, len(data))
	copy(d, data)

	b := GetBucket(key)
	if nil == p.buckets[b] {
		p.buckets[b] = make(map[string]*entry)
	}
	if old, ok := p.buckets[b][string(key)]; ok {
		p.currentSize -= uint64(len(old.data))
	} else {
		p.entries += 1
	}
	p.buckets[b][string(key)] = &entry{
		state:     state,
		timestamp: p.tick(),
		data:      d,
	}
	p.currentSize += uint64(len(d))

	switch state {
	case PendingWrite:
		p.diskBuffer = append(p.diskBuffer, Element{Key: copyBytes(key), Data: d})
	case PendingTx:
		p.transactionBuffer = append(p.transactionBuffer, Element{Key: copyBytes(key), Data: d})
	}
}

// Get - read an entry and mark it recently used
func (p *Pool) Get(key []byte) ([]byte, bool) {
	p.Lock()
	defer p.Unlock()

	e, ok := p.find(key)
	if !ok {
		p.misses.increment()
		return nil, false
	}
	p.hits.increment()
	e.timestamp = p.tick()
	return copyBytes(e.data), true
}

// Has - check for an entry without touching it
func (p *Pool) Has(key []byte) bool {
	p.Lock()
	defer p.Unlock()

	_, ok := p.find(key)
	return ok
}

// GetState - state of an entry
func (p *Pool) GetState(key []byte) (State, bool) {
	p.Lock()
	defer p.Unlock()

	e, ok := p.find(key)
	if !ok {
		return MemoryOnly, false
	}
	return e.state, true
}

// GetAll - every entry in exactly this state, up to limit (0 = unlimited)
func (p *Pool) GetAll(state State, limit int) []Element {
	p.Lock()
	defer p.Unlock()

	result := make([]Element, 0)
	for _, bucket := range p.buckets {
		for key, e := range bucket {
			if state != e.state {
				continue
			}
			result = append(result, Element{
				Key:  []byte(key),
				Data: copyBytes(e.data),
			})
			if limit > 0 && len(result) >= limit {
				return result
			}
		}
	}
	return result
}

// SetState - change the state of an entry and mark it recently used
func (p *Pool) SetState(key []byte, state State) bool {
	p.Lock()
	defer p.Unlock()

	e, ok := p.find(key)
	if !ok {
		return false
	}
	e.state = state
	e.timestamp = p.tick()
	return true
}

// Remove - drop an entry whatever its state
func (p *Pool) Remove(key []byte) bool {
	p.Lock()
	defer p.Unlock()

	return p.remove(key)
}

func (p *Pool) remove(key []byte) bool {
	b := GetBucket(key)
	e, ok := p.buckets[b][string(key)]
	if !ok {
		return false
	}
	p.currentSize -= uint64(len(e.data))
	p.entries -= 1
	delete(p.buckets[b], string(key))
	return true
}

// RemoveState - drop every entry in a non-pending state
//
// this walks all buckets; pending states are refused since their
// buffered copies would still be flushed
func (p *Pool) RemoveState(state State) (int, error) {
	if state.IsPending() {
		return 0, fault.ErrPendingState
	}

	p.Lock()
	defer p.Unlock()

	n := 0
	for b, bucket := range p.buckets {
		for key, e := range bucket {
			if state != e.state {
				continue
			}
			p.currentSize -= uint64(len(e.data))
			p.entries -= 1
			delete(p.buckets[b], key)
			n += 1
		}
	}
	return n, nil
}

// GetDiskBuffer - hand off and clear the pending write buffer
func (p *Pool) GetDiskBuffer() []Element {
	p.Lock()
	defer p.Unlock()

	buffer := p.diskBuffer
	p.diskBuffer = nil
	return buffer
}

// GetTransactionBuffer - hand off and clear the transaction buffer
func (p *Pool) GetTransactionBuffer() []Element {
	p.Lock()
	defer p.Unlock()

	buffer := p.transactionBuffer
	p.transactionBuffer = nil
	return buffer
}

// Size - current total of cached data bytes
func (p *Pool) Size() uint64 {
	p.Lock()
	defer p.Unlock()

	return p.currentSize
}

// SetMaximumSize - change the budget, applied at the next trim
func (p *Pool) SetMaximumSize(maximumSize uint64) {
	p.Lock()
	p.maximumSize = maximumSize
	p.Unlock()
}

// Stats - snapshot of the pool counters
func (p *Pool) Stats() Stats {
	p.Lock()
	defer p.Unlock()

	return Stats{
		Entries:   p.entries,
		Size:      p.currentSize,
		Hits:      p.hits.value(),
		Misses:    p.misses.value(),
		Evictions: p.evictions.value(),
	}
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
