// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package glitch

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/hyprvis/visualizer/lib/clock"
	"github.com/hyprvis/visualizer/lib/testutil"
)

const block = " _  _ \n| || |\n|_||_|"

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func always(int, float64) float64 { return 1 }
func never(int, float64) float64  { return 0 }

func TestDistortZeroProbabilityKeepsBlock(t *testing.T) {
	g := Glitcher{Source: seeded(), Probability: never}
	for strength := 1; strength <= 5; strength++ {
		if got := g.Distort(block, strength); got != block {
			t.Fatalf("strength %d changed the block:\n%s", strength, got)
		}
	}
}

func TestDistortCertainProbabilityReplacesAllButWhitespace(t *testing.T) {
	g := Glitcher{Alphabet: []string{"#"}, Source: seeded(), Probability: always}
	got := g.Distort(block, 1)

	want := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		return '#'
	}, block)
	if got != want {
		t.Fatalf("Distort =\n%s\nwant\n%s", got, want)
	}
}

func TestDistortUsesAlphabet(t *testing.T) {
	glyphs := []string{"▓", "░"}
	g := Glitcher{Alphabet: glyphs, Source: seeded(), Probability: always}
	for _, r := range g.Distort("abc\ndef", 3) {
		if r != '\n' && !slices.Contains(glyphs, string(r)) {
			t.Fatalf("glyph %q not in alphabet", r)
		}
	}
}

func TestDistortSingleLine(t *testing.T) {
	g := Glitcher{Alphabet: []string{"x"}, Source: seeded(), Probability: always}
	if got := g.Distort("a b", 1); got != "x x" {
		t.Fatalf("Distort = %q, want %q", got, "x x")
	}
	if got := g.Distort("", 1); got != "" {
		t.Fatalf("empty block became %q", got)
	}
}

func TestDistortDistanceIsNormalized(t *testing.T) {
	var distances []float64
	g := Glitcher{Source: seeded(), Probability: func(_ int, distance float64) float64 {
		distances = append(distances, distance)
		return 0
	}}
	g.Distort("abcd\nabcd\nabcd\nabcd", 1)
	if len(distances) != 16 {
		t.Fatalf("probability consulted %d times, want 16", len(distances))
	}
	for _, d := range distances {
		if d < 0 || d > 1 {
			t.Fatalf("distance %v outside [0, 1]", d)
		}
	}
	// (0,0) is a corner of the 4x4 grid centred at (2,2).
	if distances[0] != 1 {
		t.Errorf("corner distance = %v, want 1", distances[0])
	}
	// (2,2) is the centre.
	if distances[2*4+2] != 0 {
		t.Errorf("centre distance = %v, want 0", distances[10])
	}
}

func TestDefaultProbability(t *testing.T) {
	tests := []struct {
		strength int
		distance float64
		want     float64
	}{
		{1, 1, 0.15 * 0.2},
		{1, 0, 0.15 * 1.2},
		{4, 0.5, 0.15 * 4 * 0.7},
	}
	for _, test := range tests {
		got := DefaultProbability(test.strength, test.distance)
		if diff := got - test.want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("DefaultProbability(%d, %v) = %v, want %v", test.strength, test.distance, got, test.want)
		}
	}
}

func TestDistortGrowsWithStrength(t *testing.T) {
	wide := strings.Repeat(strings.Repeat("#", 60)+"\n", 19) + strings.Repeat("#", 60)
	g := Glitcher{Alphabet: []string{"."}, Source: seeded()}
	weak := strings.Count(g.Distort(wide, 1), ".")
	strong := strings.Count(g.Distort(wide, 5), ".")
	if weak >= strong {
		t.Fatalf("strength 1 replaced %d cells, strength 5 only %d", weak, strong)
	}
}

func TestAlphabetIsACopy(t *testing.T) {
	glyphs := Alphabet()
	glyphs[0] = "changed"
	if Alphabet()[0] == "changed" {
		t.Fatal("Alphabet exposes the package table")
	}
}

func TestSequence(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var strengths []int
	g := Glitcher{Alphabet: []string{"#"}, Source: seeded(), Probability: func(strength int, _ float64) float64 {
		strengths = append(strengths, strength)
		return 0
	}}
	frames := Sequence(ctx, fake, g, "ab", 200*time.Millisecond)

	if got := testutil.RequireReceive(t, frames, 5*time.Second, "base frame"); got != "ab" {
		t.Fatalf("first frame = %q, want the undistorted block", got)
	}
	fake.WaitForTimers(1)
	for i := 0; i < 3; i++ {
		fake.Advance(200 * time.Millisecond)
		testutil.RequireReceive(t, frames, 5*time.Second, "distorted frame %d", i+1)
	}
	if !slices.Equal(strengths, []int{1, 1, 2, 2, 3, 3}) {
		t.Fatalf("strengths = %v, want 1,1,2,2,3,3", strengths)
	}

	cancel()
	testutil.RequireClosed(t, frames, 5*time.Second, "sequence closes on cancel")
}
