// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"testing"
)

func TestIsExpectedCloseError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"eof", io.EOF, true},
		{"wrapped eof", fmt.Errorf("reading chunk: %w", io.EOF), true},
		{"closed", net.ErrClosed, true},
		{"reset", &net.OpError{Op: "read", Net: "unix", Err: os.NewSyscallError("read", syscall.ECONNRESET)}, true},
		{"broken pipe", syscall.EPIPE, true},
		{"refused", syscall.ECONNREFUSED, false},
		{"other", errors.New("boom"), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsExpectedCloseError(test.err); got != test.want {
				t.Errorf("IsExpectedCloseError(%v) = %v, want %v", test.err, got, test.want)
			}
		})
	}
}

func TestSessionEnded(t *testing.T) {
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()
	boom := errors.New("boom")

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want bool
	}{
		{"nil error", done, nil, false},
		{"peer hung up", live, fmt.Errorf("observing sub-text: %w", syscall.EPIPE), true},
		{"transport failure", live, boom, false},
		{"teardown race", done, boom, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := SessionEnded(test.ctx, test.err); got != test.want {
				t.Errorf("SessionEnded(%v) = %v, want %v", test.err, got, test.want)
			}
		})
	}
}
