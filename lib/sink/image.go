// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// ImagePlacer shows an image by running an external command such as
// kitten icat.
type ImagePlacer struct {
	// Command is the argument vector. {path}, {cols} and {rows} are
	// replaced in every argument.
	Command []string

	// Stdout receives the command's output, which carries the image
	// escape sequences. Stderr receives its diagnostics.
	Stdout io.Writer
	Stderr io.Writer
}

// Expand substitutes the placeholders of Command.
func (p *ImagePlacer) Expand(path string, columns, rows int) []string {
	replacer := strings.NewReplacer(
		"{path}", path,
		"{cols}", strconv.Itoa(columns),
		"{rows}", strconv.Itoa(rows),
	)
	args := make([]string, len(p.Command))
	for i, arg := range p.Command {
		args[i] = replacer.Replace(arg)
	}
	return args
}

// Show runs the command for path, sized to columns x rows.
func (p *ImagePlacer) Show(ctx context.Context, path string, columns, rows int) error {
	if len(p.Command) == 0 {
		return errors.New("image command is empty")
	}
	args := p.Expand(path, columns, rows)
	command := exec.CommandContext(ctx, args[0], args[1:]...)
	command.Stdout = p.Stdout
	command.Stderr = p.Stderr
	if err := command.Run(); err != nil {
		return fmt.Errorf("placing image %s: %w", path, err)
	}
	return nil
}
