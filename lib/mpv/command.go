// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package mpv

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
)

// SubTextProperty is the property holding the current subtitle line.
const SubTextProperty = "sub-text"

// Encoder builds command messages. The zero value draws request IDs from
// the global random source.
type Encoder struct {
	// Rand supplies request IDs. Nil uses math/rand/v2.
	Rand interface{ IntN(n int) int }
}

// maxRequestID bounds request IDs. mpv echoes the ID in its reply; the
// replies are never correlated, so the ID only has to be an integer.
const maxRequestID = 1000

type command struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// Encode returns {"command":[name,args...],"request_id":N} followed by a
// newline, ready to be written to the socket.
func (e Encoder) Encode(name string, args ...any) ([]byte, error) {
	id := 0
	if e.Rand != nil {
		id = e.Rand.IntN(maxRequestID)
	} else {
		id = rand.IntN(maxRequestID)
	}
	message, err := json.Marshal(command{
		Command:   append([]any{name}, args...),
		RequestID: id,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding mpv command %s: %w", name, err)
	}
	return append(message, '\n'), nil
}

// ObserveSubtitles asks mpv to report every change of the subtitle text
// under the observer id. mpv echoes id in each property-change event.
func ObserveSubtitles(w io.Writer, encoder Encoder, id int) error {
	message, err := encoder.Encode("observe_property", id, SubTextProperty)
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("observing %s: %w", SubTextProperty, err)
	}
	return nil
}
