// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"log/slog"
	"syscall"

	"github.com/hyprvis/visualizer/lib/process"
)

// Signal sends a fixed signal to every process with a given command
// name, like pkill.
type Signal struct {
	Signaler *process.Signaler
	Process  string
	Signal   syscall.Signal
	Logger   *slog.Logger
}

// Fire delivers the signal. A missing target process is logged, not an
// error: the panel may simply not be running.
func (s *Signal) Fire() error {
	count, err := s.Signaler.SignalByName(context.Background(), s.Process, s.Signal)
	if count == 0 && err == nil {
		s.Logger.Debug("no process to signal", "process", s.Process)
	}
	return err
}
