// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package socket

// State is the consumer's view of a connection.
type State int

const (
	Connecting State = iota
	Opened
	Streaming
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Opened:
		return "open"
	case Streaming:
		return "streaming"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Next returns the state after observing an event of kind k. Closed is
// absorbing. Transport errors jump straight to Closed from any state.
func (s State) Next(k Kind) State {
	if s == Closed {
		return Closed
	}
	switch k {
	case Open:
		if s == Connecting {
			return Opened
		}
		return s
	case Data:
		return Streaming
	case Error, ConnectError, Close:
		return Closed
	default:
		return s
	}
}
