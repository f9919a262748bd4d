// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package lycris

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hyprvis/visualizer/lib/clock"
	"github.com/hyprvis/visualizer/lib/glitch"
	"github.com/hyprvis/visualizer/lib/mpv"
	"github.com/hyprvis/visualizer/lib/netutil"
	"github.com/hyprvis/visualizer/lib/sink"
	"github.com/hyprvis/visualizer/lib/socket"
	"github.com/hyprvis/visualizer/lib/stream"
)

// observerID tags the sub-text observation. mpv echoes it back.
const observerID = 1

// Display draws frames. *sink.Display implements it.
type Display interface {
	Render(ctx context.Context, frame sink.Frame) error
}

// Options wires a pipeline.
type Options struct {
	// Events and Control are the two directions of one mpv connection.
	Events  <-chan socket.Event[[]mpv.PropertyChange]
	Control io.Writer

	Planner *Planner
	Display Display

	// Glitcher distorts text frames. Its Source is replaced by the
	// pipeline's random source when nil.
	Glitcher glitch.Glitcher

	// Distortion frames come every IntervalMin plus a random share of
	// IntervalJitter, drawn once per subtitle.
	IntervalMin    time.Duration
	IntervalJitter time.Duration

	Clock  clock.Clock
	Random Random
	Logger *slog.Logger
}

// Run subscribes to subtitle changes and draws until the connection
// closes, a transport error arrives, or ctx ends. It returns the
// transport error, or nil.
func Run(ctx context.Context, options Options) error {
	if options.Planner == nil || options.Display == nil {
		return errors.New("lycris: planner and display are required")
	}
	if options.IntervalMin <= 0 {
		return errors.New("lycris: interval must be positive")
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	random := shared(options.Random)
	planner := *options.Planner
	planner.Random = random
	glitcher := options.Glitcher
	if glitcher.Source == nil {
		glitcher.Source = random
	}
	logger := options.Logger

	// mpv may hang up before the command lands. The event stream then
	// ends with Close, which is a normal exit.
	if err := mpv.ObserveSubtitles(options.Control, mpv.Encoder{Rand: random}, observerID); err != nil {
		if !netutil.SessionEnded(ctx, err) {
			return err
		}
		logger.Info("mpv closed before subscribing", "error", err)
	}

	pipelineCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	batches := stream.Payloads(pipelineCtx, options.Events, cancel, logger)
	lines := stream.FilterMap(pipelineCtx, batches, mpv.LastSubtitle)
	plans := stream.FilterMap(pipelineCtx, lines, planner.Plan)
	frames := stream.SwitchMap(pipelineCtx, plans, func(ctx context.Context, plan sink.Frame) <-chan sink.Frame {
		if plan.Kind != sink.TextFrame {
			return stream.Prepend(ctx, plan, closed[sink.Frame]())
		}
		period := options.IntervalMin
		if options.IntervalJitter > 0 {
			period += time.Duration(random.Float64() * float64(options.IntervalJitter))
		}
		return stream.Map(ctx, glitch.Sequence(ctx, clk, glitcher, plan.Content, period), sink.Text)
	})

	stream.Drain(pipelineCtx, frames, func(frame sink.Frame) {
		if err := options.Display.Render(pipelineCtx, frame); err != nil {
			logger.Warn("drawing frame failed", "kind", frame.Kind.String(), "error", err)
		}
	})

	if ctx.Err() != nil {
		return nil
	}
	if cause := context.Cause(pipelineCtx); cause != nil {
		return fmt.Errorf("mpv stream: %w", cause)
	}
	return nil
}

func closed[T any]() <-chan T {
	ch := make(chan T)
	close(ch)
	return ch
}
