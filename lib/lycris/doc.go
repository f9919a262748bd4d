// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package lycris renders the subtitles mpv is showing as glitching
// ASCII art.
//
// Every subtitle change becomes a plan: usually one word of the line in
// the widest figlet font that fits the terminal, occasionally an image
// from the image pool. A text plan is drawn once as is and then redrawn
// with growing distortion on a fixed interval until the next subtitle
// replaces it.
package lycris
