// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package audio decodes the frames an audio-analysis daemon writes to
// its socket and evaluates trigger predicates over them.
//
// A frame is an ordered list of channel readings. The position of each
// named channel depends on the producer, so every decoder is built with
// a [ChannelMap]. Two layouts ship with the package: [DefaultChannels],
// the thirteen-band layout of the spectrum daemon, and
// [MonitorChannels], the six-band layout of the lightweight monitor.
//
// Frames arrive as comma-separated decimals, JSON arrays, or CBOR
// arrays. A chunk may carry several newline-separated frames. Records
// that cannot be decoded are logged and dropped; they never end the
// stream.
package audio
