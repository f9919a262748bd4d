// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package mpv

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// PropertyChange is one message from mpv. Only property-change events
// fill Name and Data; command replies and other events keep them empty.
type PropertyChange struct {
	Event string `json:"event"`
	ID    int    `json:"id"`
	Name  string `json:"name"`
	// Data is nil when mpv reports the property as unavailable.
	Data *string `json:"data"`
}

// UnmarshalJSON accepts any JSON value in data and keeps only strings.
// Other properties (volume, pause) report numbers and booleans.
func (p *PropertyChange) UnmarshalJSON(raw []byte) error {
	var message struct {
		Event string          `json:"event"`
		ID    int             `json:"id"`
		Name  string          `json:"name"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &message); err != nil {
		return err
	}
	*p = PropertyChange{Event: message.Event, ID: message.ID, Name: message.Name}
	var text string
	if len(message.Data) > 0 && json.Unmarshal(message.Data, &text) == nil {
		p.Data = &text
	}
	return nil
}

// LineDecoder splits the socket stream into lines and parses each as
// JSON. mpv may split one line over two reads, so an unterminated tail
// is kept for the next chunk. Use one decoder per connection.
type LineDecoder struct {
	logger  *slog.Logger
	partial []byte
}

// NewLineDecoder returns a decoder that logs malformed lines to logger.
func NewLineDecoder(logger *slog.Logger) *LineDecoder {
	return &LineDecoder{logger: logger}
}

// Decode returns the messages completed by chunk, in order. Lines that
// are not JSON objects are logged with their raw text and dropped.
func (d *LineDecoder) Decode(chunk []byte) []PropertyChange {
	data := append(d.partial, chunk...)
	cut := bytes.LastIndexByte(data, '\n')
	if cut < 0 {
		d.partial = data
		return nil
	}
	d.partial = append([]byte(nil), data[cut+1:]...)

	var messages []PropertyChange
	for line := range bytes.SplitSeq(data[:cut], []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var message PropertyChange
		if err := json.Unmarshal(line, &message); err != nil {
			d.logger.Warn("dropping malformed mpv message", "error", err, "raw", string(line))
			continue
		}
		messages = append(messages, message)
	}
	return messages
}

// LastSubtitle returns the newest subtitle text in batch. ok is false
// when the batch has no sub-text change with text.
func LastSubtitle(batch []PropertyChange) (text string, ok bool) {
	for i := len(batch) - 1; i >= 0; i-- {
		message := batch[i]
		if message.Event != "property-change" || message.Name != SubTextProperty {
			continue
		}
		if message.Data == nil || *message.Data == "" {
			return "", false
		}
		return *message.Data, true
	}
	return "", false
}
