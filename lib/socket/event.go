// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package socket

import "fmt"

// Kind tags the variant of an [Event].
type Kind int

const (
	// Open is emitted once when the connection is established.
	Open Kind = iota
	// Data carries one decoded chunk in Payload.
	Data
	// Error carries a transport failure in Err. Close follows.
	Error
	// ConnectError carries a dial failure in Err. Close follows.
	ConnectError
	// Close is the last event of every source.
	Close
)

func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Data:
		return "data"
	case Error:
		return "error"
	case ConnectError:
		return "connect-error"
	case Close:
		return "close"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one notification from a [Source]. Payload is set only for
// Data, Err only for Error and ConnectError.
type Event[T any] struct {
	Kind    Kind
	Payload T
	Err     error
}

// Decoder converts one raw chunk into a payload. The chunk is owned by
// the decoder. A decoder that splits a chunk into several records
// returns them together, in order, as one payload.
type Decoder[T any] func(chunk []byte) T
