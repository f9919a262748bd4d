// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package typeset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/common-nighthawk/go-figure"
)

// ErrNoStyleFits is returned by [Styles.Fit] when every font renders
// the word at least as wide as the terminal.
var ErrNoStyleFits = errors.New("typeset: no font fits the terminal")

// Renderer renders text as a block of lines in a named font.
type Renderer interface {
	Render(text, font string) (string, error)
}

// FigletRenderer renders with the figlet fonts bundled in go-figure.
// Characters a font lacks print as '?'.
type FigletRenderer struct{}

// Render returns the block with blank edge rows removed and every row
// padded to the same display width.
func (FigletRenderer) Render(text, font string) (block string, err error) {
	defer func() {
		// go-figure panics on fonts it does not bundle.
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("typeset: rendering with font %q: %v", font, recovered)
		}
	}()
	return Rectangle(figure.NewFigure(text, font, false).String()), nil
}

// Rectangle drops leading and trailing blank rows and right-pads every
// row to the width of the widest.
func Rectangle(block string) string {
	rows := strings.Split(block, "\n")
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	for len(rows) > 0 && strings.TrimSpace(rows[0]) == "" {
		rows = rows[1:]
	}
	width := 0
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, " ")
		width = max(width, ansi.StringWidth(rows[i]))
	}
	for i, row := range rows {
		rows[i] = row + strings.Repeat(" ", width-ansi.StringWidth(row))
	}
	return strings.Join(rows, "\n")
}

// Width is the display width of the widest row of block.
func Width(block string) int {
	width := 0
	for row := range strings.SplitSeq(block, "\n") {
		width = max(width, ansi.StringWidth(row))
	}
	return width
}

// Style is a font and the width it gives a single "o".
type Style struct {
	Font  string
	Width int
}

// Styles are fonts ranked widest first.
type Styles []Style

// Rank measures every font with a single "o" and orders them widest
// first. Fonts the renderer rejects are skipped; it is an error when
// none is left.
func Rank(renderer Renderer, fonts []string) (Styles, error) {
	var styles Styles
	var errs []error
	for _, font := range fonts {
		sample, err := renderer.Render("o", font)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		styles = append(styles, Style{Font: font, Width: Width(sample)})
	}
	if len(styles) == 0 {
		return nil, fmt.Errorf("typeset: no usable font: %w", errors.Join(errs...))
	}
	sort.SliceStable(styles, func(i, j int) bool { return styles[i].Width > styles[j].Width })
	return styles, nil
}

// fitted is one style that holds the word.
type fitted struct {
	block string
	style Style
}

// Fit renders word in a style narrower than columns. A nil picker takes
// the highest-ranked such style; otherwise picker chooses uniformly among
// all of them. Fonts the renderer fails on are skipped, and their errors
// join ErrNoStyleFits when nothing is left.
func (s Styles) Fit(renderer Renderer, word string, columns int, picker Picker) (block string, style Style, err error) {
	var fits []fitted
	var failures []error
	for _, candidate := range s {
		if candidate.Width >= columns {
			continue
		}
		rendered, err := renderer.Render(word, candidate.Font)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if Width(rendered) >= columns {
			continue
		}
		if picker == nil {
			return rendered, candidate, nil
		}
		fits = append(fits, fitted{block: rendered, style: candidate})
	}
	if len(fits) == 0 {
		noFit := fmt.Errorf("%w: %q in %d columns", ErrNoStyleFits, word, columns)
		return "", Style{}, errors.Join(noFit, errors.Join(failures...))
	}
	choice := fits[picker.IntN(len(fits))]
	return choice.block, choice.style, nil
}
