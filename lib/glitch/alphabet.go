// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package glitch

// alphabet holds the default substitution glyphs.
var alphabet = [...]string{
	"꙰", "҉", "҂", "⛧", "𖤐", "☠", "⛓", "†", "༒", "⚝", "𐂃", "𐰴",
	"𖣘", "꧁", "꧂", "ᓭ", "⚚", "♆", "∷", "ʬ", "⟁", "⛤", "₪", "₷",
	"₥", "⌬", "☢", "⛩", "ᛉ", "ᚲ", "𖤓", "⩿", "𝌆", "᙮", "✠", "𓆩",
	"𓆪", "𓂀", "𓄿", "𓇋", "ꓷ", "𒀭", "�", "Ͳ", "ͳ", "Ͷ", "ͷ", "ͺ",
	"ͻ",
	// Combining marks.
	"\u0337", "\u0338", "\u0336", "\u034f", "\u0340", "\u0341", "\u035c", "\u0361", "\u0360", "\u0362",
	"𝖑", "𝖘", "𝖃", "𝕯", "𝕸", "𝖅", "█", "▓", "▒", "░", "␀", "␃",
	"␇", "␉", "Ƀ", "Ł", "Ƨ", "Ж", "Ѯ", "⍰", "⌇", "≋", "≣", "⧖",
}

// Alphabet returns a copy of the default substitution glyphs.
func Alphabet() []string {
	return append([]string(nil), alphabet[:]...)
}
