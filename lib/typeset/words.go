// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package typeset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Words splits a subtitle line into words. Accents are folded away
// (figlet fonts only carry ASCII glyphs), punctuation is removed, and
// runs of whitespace separate words.
func Words(text string) []string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, folded)
	return strings.Fields(stripped)
}

// Picker chooses an index below n. *rand.Rand from math/rand/v2
// satisfies it.
type Picker interface {
	IntN(n int) int
}

// PickWord returns a uniformly chosen word of text. ok is false when
// text has no words.
func PickWord(text string, picker Picker) (word string, ok bool) {
	words := Words(text)
	if len(words) == 0 {
		return "", false
	}
	return words[picker.IntN(len(words))], true
}
