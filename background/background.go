// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - start and stop long running goroutines
//
// each process gets its own shutdown channel and Stop waits until
// every Run method has returned
package background

import (
	"sync"
	"time"
)

// Process - a background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a started set of processes
type T struct {
	sync.Once
	shutdown []chan struct{}
	finished []chan struct{}
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		shutdown: make([]chan struct{}, len(processes)),
		finished: make([]chan struct{}, len(processes)),
	}

	for i, p := range processes {
		shutdown := make(chan struct{})
		finished := make(chan struct{})
		register.shutdown[i] = shutdown
		register.finished[i] = finished

		go func(p Process) {
			p.Run(args, shutdown)
			close(finished)
		}(p)
	}
	return register
}

// Stop - stop a set of background processes and wait for all to finish
//
// calling Stop more than once is harmless
func (t *T) Stop() {
	if nil == t {
		return
	}
	t.Do(func() {
		for _, s := range t.shutdown {
			close(s)
		}
		for _, f := range t.finished {
			<-f
		}
	})
}

// Periodic - a process that calls a function at a fixed interval
// until shutdown
type Periodic struct {
	Interval time.Duration
	Tick     func()
}

// Run - the background loop
func (p *Periodic) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Tick()
		case <-shutdown:
			return
		}
	}
}
