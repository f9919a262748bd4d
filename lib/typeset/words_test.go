// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package typeset

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"  The quick,  fox.  ", []string{"The", "quick", "fox"}},
		{"Café déjà-vu!", []string{"Cafe", "dejavu"}},
		{"line one\nline two", []string{"line", "one", "line", "two"}},
		{"...", nil},
		{"", nil},
	}
	for _, test := range tests {
		if got := Words(test.text); !slices.Equal(got, test.want) {
			t.Errorf("Words(%q) = %q, want %q", test.text, got, test.want)
		}
	}
}

type fixedPicker int

func (f fixedPicker) IntN(int) int { return int(f) }

func TestPickWord(t *testing.T) {
	if word, ok := PickWord("  The quick,  fox.  ", fixedPicker(2)); !ok || word != "fox" {
		t.Fatalf("PickWord = %q, %v; want fox", word, ok)
	}
	if _, ok := PickWord(" ,. ", fixedPicker(0)); ok {
		t.Fatal("PickWord found a word in punctuation")
	}
}

func TestPickWordReachesEveryWord(t *testing.T) {
	source := rand.New(rand.NewPCG(3, 4))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		word, _ := PickWord("first middle last", source)
		seen[word] = true
	}
	for _, word := range []string{"first", "middle", "last"} {
		if !seen[word] {
			t.Errorf("%q never picked", word)
		}
	}
}
