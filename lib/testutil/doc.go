// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by the package tests.
//
// [SocketDir] makes a short directory under /tmp for Unix sockets, since
// sun_path is limited to 108 bytes and t.TempDir() paths can exceed it.
// [Peer] listens on such a socket and plays the producer side (the
// audio daemon or mpv) for one connection.
//
// [RequireReceive] and [RequireClosed] wrap the select-with-timeout
// pattern; they are the only place tests wait on the wall clock.
package testutil
