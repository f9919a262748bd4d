// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package audio

import (
	"errors"
	"fmt"
	"math"
)

// ChannelMap maps channel names to positions in a frame.
type ChannelMap map[string]int

// DefaultChannels is the thirteen-band layout of the spectrum daemon.
var DefaultChannels = ChannelMap{
	"loudness":  0,
	"subwoofer": 1,
	"subtone":   2,
	"kickdrum":  3,
	"lowBass":   4,
	"bassBody":  5,
	"midBass":   6,
	"warmth":    7,
	"lowMids":   8,
	"midsMoody": 9,
	"upperMids": 10,
	"attack":    11,
	"highs":     12,
}

// MonitorChannels is the six-band layout of the monitor daemon.
var MonitorChannels = ChannelMap{
	"loudness": 0,
	"subBass":  1,
	"bass":     2,
	"lowMids":  3,
	"mids":     4,
	"highs":    5,
}

// Width is the number of readings a frame needs to cover every channel.
func (m ChannelMap) Width() int {
	width := 0
	for _, index := range m {
		width = max(width, index+1)
	}
	return width
}

// Validate rejects negative and shared indices.
func (m ChannelMap) Validate() error {
	if len(m) == 0 {
		return errors.New("audio: empty channel map")
	}
	var errs []error
	seen := make(map[int]string, len(m))
	for name, index := range m {
		if index < 0 {
			errs = append(errs, fmt.Errorf("audio: channel %s has negative index %d", name, index))
			continue
		}
		if other, taken := seen[index]; taken {
			errs = append(errs, fmt.Errorf("audio: channels %s and %s share index %d", other, name, index))
		}
		seen[index] = name
	}
	return errors.Join(errs...)
}

// Frame is one decoded set of channel readings.
type Frame struct {
	values   []float64
	channels ChannelMap
}

// NewFrame checks values against channels. Every mapped channel must be
// present and finite; extra trailing readings are kept but unnamed.
func NewFrame(values []float64, channels ChannelMap) (Frame, error) {
	if width := channels.Width(); len(values) < width {
		return Frame{}, fmt.Errorf("frame has %d readings, layout needs %d", len(values), width)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Frame{}, fmt.Errorf("reading %d is not finite", i)
		}
	}
	return Frame{values: values, channels: channels}, nil
}

// Channel returns the named reading. ok is false for names the layout
// does not define.
func (f Frame) Channel(name string) (value float64, ok bool) {
	index, ok := f.channels[name]
	if !ok || index >= len(f.values) {
		return 0, false
	}
	return f.values[index], true
}
