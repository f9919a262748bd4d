// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package stream provides the operators the pipelines are built from.
//
// A stream is a receive-only channel with a single consumer. Every
// operator starts one goroutine, forwards values in arrival order, and
// closes its output when its input closes or its context is cancelled,
// so a chain tears down from either end:
//
//	frames := stream.Flatten(ctx, stream.Payloads(ctx, source.Events(), fail, logger))
//	hits := stream.Filter(ctx, stream.Map(ctx, frames, predicate), isTrue)
//	stream.Drain(ctx, stream.Throttle(ctx, clk, hits, window), signal)
//
// [SwitchMap] implements switch-latest: a new outer value cancels the
// context handed to the previous inner stream, and nothing the previous
// inner stream produces afterwards is forwarded. Inner producers must
// stop when their context is done; [Interval] does.
package stream
