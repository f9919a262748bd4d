// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil classifies socket errors for the event sources.
package netutil
