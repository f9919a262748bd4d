// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package audio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hyprvis/visualizer/lib/codec"
	"github.com/hyprvis/visualizer/lib/socket"
)

// Format names a frame encoding.
type Format string

const (
	// CSV is comma-separated ASCII decimals, one frame per line.
	CSV Format = "csv"
	// JSON is a JSON array of numbers, one frame per line.
	JSON Format = "json"
	// CBOR is a sequence of CBOR arrays of numbers.
	CBOR Format = "cbor"
)

// ErrUnknownFormat is returned by [NewDecoder] for an unsupported format.
var ErrUnknownFormat = errors.New("audio: unknown frame format")

// NewDecoder returns a socket decoder that turns one chunk into the
// frames it carries. Malformed records are logged at warn level with
// their raw text and dropped.
func NewDecoder(format Format, channels ChannelMap, logger *slog.Logger) (socket.Decoder[[]Frame], error) {
	if err := channels.Validate(); err != nil {
		return nil, err
	}

	var parse func([]byte) ([]float64, error)
	switch format {
	case CSV:
		parse = parseCSV
	case JSON:
		parse = parseJSON
	case CBOR:
		return func(chunk []byte) []Frame {
			var frames []Frame
			err := codec.DecodeSequence(chunk, func(item []byte) {
				var values []float64
				if err := codec.Unmarshal(item, &values); err != nil {
					logger.Warn("dropping malformed audio frame", "error", err, "raw", fmt.Sprintf("%x", item))
					return
				}
				frames = appendFrame(frames, values, channels, item, logger)
			})
			if err != nil {
				logger.Warn("dropping truncated audio chunk", "error", err, "raw", fmt.Sprintf("%x", chunk))
			}
			return frames
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return func(chunk []byte) []Frame {
		var frames []Frame
		for line := range bytes.SplitSeq(chunk, []byte("\n")) {
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			values, err := parse(line)
			if err != nil {
				logger.Warn("dropping malformed audio frame", "error", err, "raw", string(line))
				continue
			}
			frames = appendFrame(frames, values, channels, line, logger)
		}
		return frames
	}, nil
}

func appendFrame(frames []Frame, values []float64, channels ChannelMap, raw []byte, logger *slog.Logger) []Frame {
	frame, err := NewFrame(values, channels)
	if err != nil {
		logger.Warn("dropping malformed audio frame", "error", err, "raw", string(raw))
		return frames
	}
	return append(frames, frame)
}

func parseCSV(line []byte) ([]float64, error) {
	fields := strings.Split(string(line), ",")
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseJSON(line []byte) ([]float64, error) {
	var values []float64
	if err := json.Unmarshal(line, &values); err != nil {
		return nil, err
	}
	return values, nil
}
