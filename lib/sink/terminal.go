// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Fallback size when the output is not a terminal.
const (
	fallbackColumns = 80
	fallbackRows    = 24
)

// SizeFunc reports the terminal size in cells.
type SizeFunc func() (columns, rows int, err error)

// Terminal redraws a full-screen block: every Show clears the screen and
// prints the block centred.
type Terminal struct {
	output   *termenv.Output
	renderer *lipgloss.Renderer
	style    lipgloss.Style
	size     SizeFunc
}

// NewTerminal draws to file, usually os.Stdout, in color (a hex code or
// ANSI index; empty keeps the default foreground). The colour profile
// is detected from file.
func NewTerminal(file *os.File, color string) *Terminal {
	return newTerminal(file, color, func() (int, int, error) {
		return term.GetSize(int(file.Fd()))
	})
}

// NewTerminalWriter draws to w with a fixed colour profile and size
// source. Tests use it with termenv.Ascii.
func NewTerminalWriter(w io.Writer, color string, profile termenv.Profile, size SizeFunc) *Terminal {
	return newTerminal(w, color, size, termenv.WithProfile(profile))
}

func newTerminal(w io.Writer, color string, size SizeFunc, options ...termenv.OutputOption) *Terminal {
	output := termenv.NewOutput(w, options...)
	renderer := lipgloss.NewRenderer(w, options...)
	if len(options) > 0 {
		renderer.SetColorProfile(output.Profile)
	}
	style := renderer.NewStyle()
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return &Terminal{output: output, renderer: renderer, style: style, size: size}
}

// Size returns the terminal size, or 80x24 when it cannot be read.
func (t *Terminal) Size() (columns, rows int) {
	columns, rows, err := t.size()
	if err != nil || columns <= 0 || rows <= 0 {
		return fallbackColumns, fallbackRows
	}
	return columns, rows
}

// Clear empties the screen and homes the cursor.
func (t *Terminal) Clear() {
	t.output.ClearScreen()
}

// Show clears the screen and prints block centred in it.
func (t *Terminal) Show(block string) error {
	columns, rows := t.Size()
	placed := t.renderer.Place(columns, rows, lipgloss.Center, lipgloss.Center, t.style.Render(block))
	t.Clear()
	if _, err := io.WriteString(t.output, placed); err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}
	return nil
}
