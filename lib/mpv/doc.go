// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package mpv speaks the line-delimited JSON protocol of mpv's
// --input-ipc-server socket: it encodes commands and decodes the
// property-change events mpv sends back.
package mpv
