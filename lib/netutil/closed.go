// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// IsExpectedCloseError reports whether a read error means the peer went
// away rather than that the transport failed: EOF, a locally closed
// connection, a broken pipe, or a reset. The audio daemon and mpv both
// end a session by simply closing their end, which surfaces as one of
// these depending on timing.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}

// SessionEnded reports whether err, raised on a connection owned by
// ctx, ends the session normally. Once ctx is done any error is the
// local teardown racing the I/O; otherwise IsExpectedCloseError decides.
func SessionEnded(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	return ctx.Err() != nil || IsExpectedCloseError(err)
}
