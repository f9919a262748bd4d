// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a manually driven [Clock]. Time only moves on Advance.
// Safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*timer
	changed *sync.Cond
}

// timer is one registered After or ticker waiter.
type timer struct {
	deadline time.Time
	period   time.Duration // zero for one-shot waiters
	channel  chan time.Time
	stopped  bool
}

// Fake returns a FakeClock frozen at start.
func Fake(start time.Time) *FakeClock {
	c := &FakeClock{now: start}
	c.changed = sync.NewCond(&c.mu)
	return c
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After registers a one-shot waiter.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	if d <= 0 {
		channel <- c.now
		return channel
	}
	c.register(&timer{deadline: c.now.Add(d), channel: channel})
	return channel
}

// NewTicker registers a periodic waiter.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker period")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	waiter := &timer{deadline: c.now.Add(d), period: d, channel: make(chan time.Time, 1)}
	c.register(waiter)
	return &Ticker{
		C: waiter.channel,
		stop: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			waiter.stopped = true
			c.changed.Broadcast()
		},
	}
}

// register adds a waiter. Caller holds c.mu.
func (c *FakeClock) register(waiter *timer) {
	c.pending = append(c.pending, waiter)
	c.changed.Broadcast()
}

// Advance moves time forward by d and fires every waiter whose
// deadline is reached, earliest first. A ticker spanning several
// periods fires once per period; ticks that find C full are dropped.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.now.Add(d)
	for {
		due := c.earliestDue(target)
		if due == nil {
			break
		}
		c.now = due.deadline
		select {
		case due.channel <- c.now:
		default:
		}
		if due.period > 0 {
			due.deadline = due.deadline.Add(due.period)
		} else {
			due.stopped = true
		}
	}
	c.now = target
	c.compact()
}

// earliestDue returns the live waiter with the earliest deadline not
// after target, or nil. Caller holds c.mu.
func (c *FakeClock) earliestDue(target time.Time) *timer {
	live := make([]*timer, 0, len(c.pending))
	for _, waiter := range c.pending {
		if !waiter.stopped && !waiter.deadline.After(target) {
			live = append(live, waiter)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].deadline.Before(live[j].deadline)
	})
	return live[0]
}

// compact drops stopped and fired waiters. Caller holds c.mu.
func (c *FakeClock) compact() {
	remaining := c.pending[:0]
	for _, waiter := range c.pending {
		if !waiter.stopped {
			remaining = append(remaining, waiter)
		}
	}
	c.pending = remaining
	c.changed.Broadcast()
}

// WaitForTimers blocks until at least n waiters are pending. Call it
// before Advance when a goroutine under test registers its own timer.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pendingLocked() < n {
		c.changed.Wait()
	}
}

// PendingCount reports how many waiters have neither fired nor stopped.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *FakeClock) pendingLocked() int {
	count := 0
	for _, waiter := range c.pending {
		if !waiter.stopped {
			count++
		}
	}
	return count
}
