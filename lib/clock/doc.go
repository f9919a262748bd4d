// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the time source for every timed pipeline stage.
//
// Throttle windows, distortion intervals, and image-pool rescans take a
// [Clock] instead of calling the time package. Binaries pass [Real];
// tests pass [Fake] and move time forward with [FakeClock.Advance], so a
// throttle window or a glitch tick fires exactly when the test says so.
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	ticks := stream.Interval(ctx, c, 200*time.Millisecond)
//	c.WaitForTimers(1)
//	c.Advance(200 * time.Millisecond)
//	<-ticks // 0
package clock
