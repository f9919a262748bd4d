// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package lycris

import (
	"errors"
	"log/slog"

	"github.com/hyprvis/visualizer/lib/imagepool"
	"github.com/hyprvis/visualizer/lib/sink"
	"github.com/hyprvis/visualizer/lib/typeset"
)

// Images supplies image paths. *imagepool.Pool implements it.
type Images interface {
	Pick(picker imagepool.Picker) (path string, ok bool)
}

// Planner decides what a subtitle line turns into.
type Planner struct {
	Renderer typeset.Renderer
	Styles   typeset.Styles

	// RandomFont picks uniformly among the fonts that fit instead of
	// taking the widest.
	RandomFont bool

	// Images may be nil; image plans are then never made.
	Images      Images
	ImageChance float64

	// Columns reports the current terminal width.
	Columns func() int

	Random Random
	Logger *slog.Logger
}

// Plan returns the frame for a subtitle line. ok is false when the line
// should be skipped: it has no word, or nothing fits and no image is
// available.
func (p *Planner) Plan(line string) (frame sink.Frame, ok bool) {
	if p.ImageChance > 0 && p.Random.Float64() < p.ImageChance {
		if frame, ok := p.image(); ok {
			return frame, true
		}
	}

	word, ok := typeset.PickWord(line, p.Random)
	if !ok {
		p.Logger.Debug("subtitle has no words", "raw", line)
		return sink.Frame{}, false
	}

	var picker typeset.Picker
	if p.RandomFont {
		picker = p.Random
	}
	renderer := failureLogger{Renderer: p.Renderer, logger: p.Logger}
	block, style, err := p.Styles.Fit(renderer, word, p.Columns(), picker)
	switch {
	case err == nil:
		p.Logger.Debug("rendering word", "word", word, "font", style.Font)
		return sink.Text(block), true
	case errors.Is(err, typeset.ErrNoStyleFits):
		if frame, ok := p.image(); ok {
			p.Logger.Debug("no font fits, showing an image", "word", word)
			return frame, true
		}
		p.Logger.Warn("skipping subtitle: no font fits and no image is available", "word", word, "error", err)
		return sink.Frame{}, false
	default:
		p.Logger.Warn("skipping subtitle", "word", word, "error", err)
		return sink.Frame{}, false
	}
}

func (p *Planner) image() (sink.Frame, bool) {
	if p.Images == nil {
		return sink.Frame{}, false
	}
	path, ok := p.Images.Pick(p.Random)
	if !ok {
		return sink.Frame{}, false
	}
	return sink.Image(path), true
}

// failureLogger reports fonts that cannot render a word. Fit skips them.
type failureLogger struct {
	typeset.Renderer
	logger *slog.Logger
}

func (f failureLogger) Render(text, font string) (string, error) {
	block, err := f.Renderer.Render(text, font)
	if err != nil {
		f.logger.Warn("font failed to render", "font", font, "word", text, "error", err)
	}
	return block, err
}
