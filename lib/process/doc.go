// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the process-level effects of the visualizer
// binaries: reporting a fatal error from main, and delivering a signal
// to every process with a given name (what `pkill -45 nwg-panel` does
// in a shell, without spawning pkill).
//
// Processes are listed with gopsutil. The kernel keeps at most 15 bytes
// of a command name, so a 15-byte name also matches a longer wanted
// name that starts with it, as procps does.
package process
