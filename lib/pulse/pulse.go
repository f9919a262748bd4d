// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package pulse turns the audio-analysis stream into process signals:
// whenever a frame matches the trigger predicate, and no signal went out
// within the throttle window, the target process is signalled.
//
// The pipeline is
//
//	events → payloads → frames → gate → detector → true only → throttle → trigger
//
// A transport error on the socket ends the pipeline and is returned by
// [Run]; malformed frames were already dropped by the decoder.
package pulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyprvis/visualizer/lib/audio"
	"github.com/hyprvis/visualizer/lib/clock"
	"github.com/hyprvis/visualizer/lib/config"
	"github.com/hyprvis/visualizer/lib/socket"
	"github.com/hyprvis/visualizer/lib/stream"
)

// Trigger performs the side effect of one accepted detection.
type Trigger interface {
	Fire() error
}

// Detector maps a frame stream to one verdict per evaluation.
type Detector func(ctx context.Context, frames <-chan audio.Frame) <-chan bool

// Threshold evaluates holds on every frame independently.
func Threshold(holds func(audio.Frame) bool) Detector {
	return func(ctx context.Context, frames <-chan audio.Frame) <-chan bool {
		return stream.Map(ctx, frames, holds)
	}
}

// Pairwise evaluates exceeds on every pair of consecutive frames.
func Pairwise(exceeds func(stream.Pair[audio.Frame]) bool) Detector {
	return func(ctx context.Context, frames <-chan audio.Frame) <-chan bool {
		return stream.Map(ctx, stream.Pairwise(ctx, frames), exceeds)
	}
}

// NewDetector builds the detector cfg.Mode selects.
func NewDetector(cfg config.PulseConfig) (Detector, error) {
	channels := audio.ChannelMap(cfg.Channels)
	switch cfg.Mode {
	case "threshold":
		conditions := make([]audio.Condition, len(cfg.Conditions))
		for i, c := range cfg.Conditions {
			conditions[i] = audio.Condition{Channel: c.Channel, Op: audio.Op(c.Op), Value: c.Value}
		}
		holds, err := audio.AllOf(conditions, channels)
		if err != nil {
			return nil, err
		}
		return Threshold(holds), nil
	case "pairwise":
		if _, ok := channels[cfg.Pairwise.Channel]; !ok {
			return nil, fmt.Errorf("pairwise channel %q is not in the layout", cfg.Pairwise.Channel)
		}
		return Pairwise(audio.PairwiseExceeds(cfg.Pairwise.Channel, cfg.Pairwise.Threshold)), nil
	default:
		return nil, fmt.Errorf("unknown detector mode %q", cfg.Mode)
	}
}

// Options wires a pipeline.
type Options struct {
	// Events comes from a connected socket.Source.
	Events <-chan socket.Event[[]audio.Frame]

	// Gate names the channel whose zero reading means no signal yet.
	// Empty disables the gate.
	Gate string

	Detector Detector
	Throttle time.Duration
	Clock    clock.Clock
	Trigger  Trigger
	Logger   *slog.Logger
}

// Run drives the pipeline until the stream closes, a transport error
// arrives, or ctx ends. It returns the transport error, or nil.
func Run(ctx context.Context, options Options) error {
	if options.Detector == nil || options.Trigger == nil {
		return errors.New("pulse: detector and trigger are required")
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger

	pipelineCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	batches := stream.Payloads(pipelineCtx, options.Events, cancel, logger)
	frames := stream.Flatten(pipelineCtx, batches)
	if options.Gate != "" {
		frames = stream.Filter(pipelineCtx, frames, audio.Gate(options.Gate))
	}
	hits := stream.Filter(pipelineCtx, options.Detector(pipelineCtx, frames), func(hit bool) bool { return hit })
	hits = stream.Throttle(pipelineCtx, clk, hits, options.Throttle)

	stream.Drain(pipelineCtx, hits, func(bool) {
		if err := options.Trigger.Fire(); err != nil {
			logger.Warn("trigger failed", "error", err)
			return
		}
		logger.Debug("triggered")
	})

	if ctx.Err() != nil {
		return nil
	}
	if cause := context.Cause(pipelineCtx); cause != nil {
		return fmt.Errorf("audio stream: %w", cause)
	}
	return nil
}
