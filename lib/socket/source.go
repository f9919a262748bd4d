// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package socket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/hyprvis/visualizer/lib/netutil"
)

// ErrConnect wraps every dial failure returned by [Source.Connect].
var ErrConnect = errors.New("socket: connect failed")

// ErrNotConnected is returned by Write before a successful Connect or
// after Close.
var ErrNotConnected = errors.New("socket: not connected")

// chunkSize bounds one read, and therefore one Data event.
const chunkSize = 64 * 1024

// eventBuffer lets Connect emit its first events before the consumer
// starts reading.
const eventBuffer = 16

// Source is one Unix socket connection and its event stream. A Source
// connects at most once; there is no reconnect.
type Source[T any] struct {
	path   string
	decode Decoder[T]
	logger *slog.Logger
	events chan Event[T]

	// dial opens the connection. Tests replace it.
	dial func(ctx context.Context, path string) (net.Conn, error)

	mu        sync.Mutex
	conn      net.Conn
	connected bool
	closed    bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewSource prepares a source for path. Nothing is dialled until
// Connect.
func NewSource[T any](path string, decode Decoder[T], logger *slog.Logger) *Source[T] {
	return &Source[T]{
		path:   path,
		decode: decode,
		logger: logger,
		events: make(chan Event[T], eventBuffer),
		dial: func(ctx context.Context, path string) (net.Conn, error) {
			var dialer net.Dialer
			return dialer.DialContext(ctx, "unix", path)
		},
	}
}

// Path returns the socket path.
func (s *Source[T]) Path() string { return s.path }

// Events returns the event stream. It is closed after Close.
func (s *Source[T]) Events() <-chan Event[T] { return s.events }

// Connect dials the socket and starts reading. ctx bounds both the
// dial and the lifetime of the connection: cancelling it closes the
// connection, which ends the stream with Close.
func (s *Source[T]) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrNotConnected
	}
	if s.connected {
		s.mu.Unlock()
		return fmt.Errorf("socket %s: Connect called twice", s.path)
	}
	s.connected = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	conn, err := s.dial(s.ctx, s.path)
	if err != nil {
		cause := fmt.Errorf("%w: %s: %w", ErrConnect, s.path, err)
		s.emit(Event[T]{Kind: ConnectError, Err: cause})
		s.finish()
		return cause
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		s.finish()
		return fmt.Errorf("socket %s: closed during connect", s.path)
	}
	s.conn = conn
	s.mu.Unlock()

	s.logger.Info("socket open", "path", s.path)
	s.emit(Event[T]{Kind: Open})

	go func() {
		<-s.ctx.Done()
		conn.Close()
	}()
	go s.readLoop(conn)
	return nil
}

// readLoop emits one Data event per chunk until the connection ends.
func (s *Source[T]) readLoop(conn net.Conn) {
	defer s.finish()

	buffer := make([]byte, chunkSize)
	for {
		n, err := conn.Read(buffer)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buffer[:n])
			if payload, ok := s.decodeChunk(chunk); ok {
				if !s.emit(Event[T]{Kind: Data, Payload: payload}) {
					return
				}
			}
		}
		if err == nil {
			continue
		}
		if netutil.SessionEnded(s.ctx, err) {
			s.logger.Info("socket closed", "path", s.path)
			return
		}
		s.logger.Error("socket read failed", "path", s.path, "error", err)
		s.emit(Event[T]{Kind: Error, Err: fmt.Errorf("reading %s: %w", s.path, err)})
		return
	}
}

// decodeChunk runs the decoder, turning a panic into a dropped chunk.
func (s *Source[T]) decodeChunk(chunk []byte) (payload T, ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.Warn("decoder panicked, chunk dropped",
				"path", s.path,
				"panic", recovered,
				"raw", string(chunk),
			)
			ok = false
		}
	}()
	return s.decode(chunk), true
}

// emit delivers an event unless the source's context ends first. An
// event that fits in the buffer is always delivered.
func (s *Source[T]) emit(event Event[T]) bool {
	select {
	case s.events <- event:
		return true
	default:
	}
	select {
	case s.events <- event:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// finish emits the terminal Close and closes the stream.
func (s *Source[T]) finish() {
	s.emit(Event[T]{Kind: Close})
	close(s.events)
	s.cancel()
}

// Write sends p to the peer.
func (s *Source[T]) Write(p []byte) (int, error) {
	s.mu.Lock()
	conn := s.conn
	closed := s.closed
	s.mu.Unlock()
	if conn == nil || closed {
		return 0, ErrNotConnected
	}
	return conn.Write(p)
}

// Close tears the connection down. The stream still ends with Close.
// Safe to call more than once and before Connect.
func (s *Source[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.connected {
		// No read loop will end the stream; end it here.
		s.ctx, s.cancel = context.WithCancel(context.Background())
		s.finish()
		return nil
	}
	s.cancel()
	if s.conn != nil {
		if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
	}
	return nil
}
