// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// SocketDir creates a directory directly under /tmp for socket files
// and removes it when the test ends.
func SocketDir(t *testing.T) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "vis-test-*")
	if err != nil {
		t.Fatalf("creating socket directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(directory)
	})
	return directory
}

// Peer listens on a fresh Unix socket and hands out the first accepted
// connection. It stands in for the audio daemon or mpv.
type Peer struct {
	Path     string
	listener net.Listener
	accepted chan net.Conn
}

// NewPeer starts listening. The listener and any accepted connection
// are closed when the test ends.
func NewPeer(t *testing.T, name string) *Peer {
	t.Helper()
	path := filepath.Join(SocketDir(t), name)
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listening on %s: %v", path, err)
	}

	peer := &Peer{Path: path, listener: listener, accepted: make(chan net.Conn, 1)}
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			close(peer.accepted)
			return
		}
		peer.accepted <- conn
	}()
	t.Cleanup(func() {
		listener.Close()
		select {
		case conn, ok := <-peer.accepted:
			if ok {
				conn.Close()
			}
		default:
		}
	})
	return peer
}

// Accept returns the connection made by the code under test.
func (p *Peer) Accept(t *testing.T) net.Conn {
	t.Helper()
	conn := RequireReceive(t, (<-chan net.Conn)(p.accepted), 5*time.Second, "peer waiting for a client on %s", p.Path)
	t.Cleanup(func() { conn.Close() })
	return conn
}
