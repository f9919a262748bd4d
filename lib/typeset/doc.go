// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package typeset turns a subtitle line into an ASCII-art block: it
// picks one word from the line and renders it in the widest figlet
// font that still fits the terminal.
package typeset
