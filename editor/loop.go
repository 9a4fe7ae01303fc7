// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"context"
	"slices"
	"sync/atomic"
)

// Loop is the single-threaded edit context. Work is posted from any
// goroutine and runs in FIFO order on the goroutine that calls
// [Loop.Run] or [Loop.Drain]. It must be created with [NewLoop].
type Loop struct {

	// posted is the lock-free stack of posted functions, newest first.
	// Posters only push; the edit goroutine takes the whole stack at once.
	posted atomic.Pointer[postedFunc]

	// ready are the taken functions in posting order.
	// Only the edit goroutine touches it.
	ready []func()

	// pending counts posted functions that have not run yet.
	pending atomic.Int64

	// wake has room for one pending signal.
	wake chan struct{}
}

type postedFunc struct {
	fn   func()
	prev *postedFunc
}

// NewLoop returns a new empty loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post adds fn to the end of the queue. It never blocks.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.pending.Add(1)
	p := &postedFunc{fn: fn}
	for {
		p.prev = l.posted.Load()
		if l.posted.CompareAndSwap(p.prev, p) {
			break
		}
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of pending functions.
func (l *Loop) Len() int {
	return int(l.pending.Load())
}

// Drain runs pending functions until the queue is empty, including
// functions posted while draining, and returns how many ran.
// It must only be called from the edit goroutine.
func (l *Loop) Drain() int {
	n := 0
	for fn := l.next(); fn != nil; fn = l.next() {
		fn()
		n++
	}
	return n
}

// Run drains the loop whenever work is posted, until ctx is done.
// The goroutine calling Run becomes the edit goroutine.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// next returns the next function to run, or nil if there is none.
func (l *Loop) next() func() {
	if len(l.ready) == 0 {
		l.ready = l.ready[:0]
		for p := l.posted.Swap(nil); p != nil; p = p.prev {
			l.ready = append(l.ready, p.fn)
		}
		if len(l.ready) == 0 {
			return nil
		}
		slices.Reverse(l.ready)
	}
	fn := l.ready[0]
	l.ready[0] = nil
	l.ready = l.ready[1:]
	l.pending.Add(-1)
	return fn
}
