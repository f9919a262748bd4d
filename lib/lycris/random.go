// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package lycris

import (
	"math/rand/v2"
	"sync"
)

// Random is the randomness the pipeline draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// globalRandom draws from the math/rand/v2 global source.
type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// lockedRandom serializes a source shared by several stages.
type lockedRandom struct {
	mu     sync.Mutex
	source Random
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.source.Float64()
}

func (l *lockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.source.IntN(n)
}

func shared(source Random) Random {
	if source == nil {
		return globalRandom{}
	}
	return &lockedRandom{source: source}
}
