// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package version carries build information for the visualizer
// binaries. Values are injected with -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/hyprvis/visualizer/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/...
//
// Uninjected builds report "0.1.0-dev (unknown, unknown)".
package version
