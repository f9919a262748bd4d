// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package socket turns a Unix domain socket connection into a stream
// of tagged events.
//
// A [Source] emits, in order: one [Open] after a successful connect,
// one [Data] per chunk read from the peer (payload produced by the
// caller's [Decoder]), optionally one [Error], and finally exactly one
// [Close], after which the events channel is closed. A failed connect
// emits [ConnectError] and [Close] instead of [Open], and Connect
// itself returns the error, so callers may handle the failure either
// way.
//
// Failures after the connect are reported only as events; nothing
// panics or returns out of the reading goroutine. A decoder that
// panics costs its chunk, not the connection.
//
// The source is also the write side of the connection: control
// commands (mpv's observe_property) go through [Source.Write].
package socket
