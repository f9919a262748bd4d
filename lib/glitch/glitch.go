// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package glitch corrupts ASCII-art blocks with random glyphs, more
// strongly toward the centre and more strongly with every frame.
package glitch

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"

	"github.com/hyprvis/visualizer/lib/clock"
	"github.com/hyprvis/visualizer/lib/stream"
)

// Source is the randomness a [Glitcher] draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Glitcher replaces characters of a block with glyphs from an alphabet.
// Every field is optional. A Glitcher keeps no state between calls; it
// is safe for concurrent use when Source is.
type Glitcher struct {
	// Alphabet holds the replacement glyphs. Empty uses [Alphabet].
	Alphabet []string
	// Source is nil for the global math/rand/v2 source.
	Source Source
	// Probability returns the chance that a cell is replaced given the
	// frame strength and the cell's normalized distance from the centre
	// (0 at the centre, 1 at a corner). Nil uses [DefaultProbability].
	Probability func(strength int, distance float64) float64
}

// DefaultProbability grows linearly with strength and is highest at the
// centre: 0.15 * strength * (1.2 - distance).
func DefaultProbability(strength int, distance float64) float64 {
	return 0.15 * float64(strength) * (1 - distance + 0.2)
}

// Distort returns block with cells replaced at random. The grid is as
// wide as the first line and as tall as the line count. Whitespace is
// never replaced, so the layout survives.
func (g Glitcher) Distort(block string, strength int) string {
	lines := strings.Split(block, "\n")
	columns := len([]rune(lines[0]))
	rows := len(lines)
	centerX, centerY := float64(columns)/2, float64(rows)/2
	maxDistance := math.Hypot(centerX, centerY)

	var out strings.Builder
	out.Grow(len(block))
	for row, line := range lines {
		if row > 0 {
			out.WriteByte('\n')
		}
		column := 0
		for _, r := range line {
			if unicode.IsSpace(r) {
				out.WriteRune(r)
				column++
				continue
			}
			distance := 0.0
			if maxDistance > 0 {
				distance = math.Hypot(centerX-float64(column), centerY-float64(row)) / maxDistance
			}
			if g.roll() < g.probability(strength, distance) {
				out.WriteString(g.glyph())
			} else {
				out.WriteRune(r)
			}
			column++
		}
	}
	return out.String()
}

func (g Glitcher) probability(strength int, distance float64) float64 {
	if g.Probability != nil {
		return g.Probability(strength, distance)
	}
	return DefaultProbability(strength, distance)
}

func (g Glitcher) roll() float64 {
	if g.Source != nil {
		return g.Source.Float64()
	}
	return rand.Float64()
}

func (g Glitcher) glyph() string {
	glyphs := g.Alphabet
	if len(glyphs) == 0 {
		glyphs = alphabet[:]
	}
	var i int
	if g.Source != nil {
		i = g.Source.IntN(len(glyphs))
	} else {
		i = rand.IntN(len(glyphs))
	}
	return glyphs[i]
}

// Sequence emits block, then Distort(block, n) for n = 1, 2, 3, ...
// once per period, until ctx ends.
func Sequence(ctx context.Context, clk clock.Clock, g Glitcher, block string, period time.Duration) <-chan string {
	frames := stream.Map(ctx, stream.Interval(ctx, clk, period), func(n int) string {
		return g.Distort(block, n+1)
	})
	return stream.Prepend(ctx, block, frames)
}
