// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the shared CBOR decoding mode.
//
// Audio producers that speak CBOR send one array of numbers per frame,
// back to back on the socket with no framing: CBOR items are
// self-delimiting, so [DecodeSequence] splits a chunk into its items.
// The decoder is configured once here so every consumer agrees on how
// untyped values come out (map[string]any, not map[any]any).
package codec
