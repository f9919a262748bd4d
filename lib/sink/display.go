// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"errors"
	"fmt"
)

// FrameKind tags the variant of a [Frame].
type FrameKind int

const (
	// TextFrame carries a text block in Content.
	TextFrame FrameKind = iota
	// ImageFrame carries an image path in Content.
	ImageFrame
)

func (k FrameKind) String() string {
	switch k {
	case TextFrame:
		return "text"
	case ImageFrame:
		return "image"
	default:
		return fmt.Sprintf("frame(%d)", int(k))
	}
}

// Frame is one thing to draw.
type Frame struct {
	Kind    FrameKind
	Content string
}

// Text returns a text frame.
func Text(block string) Frame { return Frame{Kind: TextFrame, Content: block} }

// Image returns an image frame.
func Image(path string) Frame { return Frame{Kind: ImageFrame, Content: path} }

// Display draws frames: text on the terminal, images through the
// placer over a cleared terminal.
type Display struct {
	Terminal *Terminal
	// Images is nil when image mode is unavailable.
	Images *ImagePlacer
}

// Render draws frame.
func (d *Display) Render(ctx context.Context, frame Frame) error {
	switch frame.Kind {
	case TextFrame:
		return d.Terminal.Show(frame.Content)
	case ImageFrame:
		if d.Images == nil {
			return errors.New("image frame without an image placer")
		}
		d.Terminal.Clear()
		columns, rows := d.Terminal.Size()
		return d.Images.Show(ctx, frame.Content, columns, rows)
	default:
		return fmt.Errorf("unknown frame kind %s", frame.Kind)
	}
}
