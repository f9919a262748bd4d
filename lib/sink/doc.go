// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package sink performs the side effects at the end of a pipeline:
// drawing text in the terminal, placing an image, or signalling a
// process.
package sink
