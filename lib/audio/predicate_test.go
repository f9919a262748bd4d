// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package audio

import (
	"testing"

	"github.com/hyprvis/visualizer/lib/stream"
)

func frame(t *testing.T, values ...float64) Frame {
	t.Helper()
	f, err := NewFrame(values, MonitorChannels)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

var drumHit = []Condition{
	{Channel: "subBass", Op: Equal, Value: 1},
	{Channel: "loudness", Op: GreaterEqual, Value: 0.3},
	{Channel: "highs", Op: Greater, Value: 0.5},
}

func TestAllOfRequiresEveryConditionOnOneFrame(t *testing.T) {
	holds, err := AllOf(drumHit, MonitorChannels)
	if err != nil {
		t.Fatalf("AllOf: %v", err)
	}
	tests := []struct {
		name   string
		values []float64
		want   bool
	}{
		{"all hold", []float64{0.3, 1, 0, 0, 0, 0.75}, true},
		{"loudness below", []float64{0.25, 1, 0, 0, 0, 0.75}, false},
		{"subBass off", []float64{0.5, 0, 0, 0, 0, 0.75}, false},
		{"highs at bound", []float64{0.5, 1, 0, 0, 0, 0.5}, false},
	}
	for _, test := range tests {
		if got := holds(frame(t, test.values...)); got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestAllOfRejectsBadConditions(t *testing.T) {
	if _, err := AllOf([]Condition{{Channel: "tuba", Op: Equal, Value: 1}}, MonitorChannels); err == nil {
		t.Error("unknown channel accepted")
	}
	if _, err := AllOf([]Condition{{Channel: "bass", Op: "=~", Value: 1}}, MonitorChannels); err == nil {
		t.Error("unknown operator accepted")
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		op   Op
		a, b float64
		want bool
	}{
		{Equal, 1, 1, true},
		{NotEqual, 1, 1, false},
		{Greater, 2, 1, true},
		{GreaterEqual, 1, 1, true},
		{Less, 1, 2, true},
		{LessEqual, 2, 1, false},
	}
	for _, test := range tests {
		got, err := test.op.compare(test.a, test.b)
		if err != nil || got != test.want {
			t.Errorf("%v %s %v = %v, %v; want %v", test.a, test.op, test.b, got, err, test.want)
		}
	}
}

func TestGateDiscardsSilentFrames(t *testing.T) {
	gate := Gate("loudness")
	if gate(frame(t, 0, 1, 1, 1, 1, 1)) {
		t.Error("zero loudness passed the gate")
	}
	if !gate(frame(t, 0.01, 0, 0, 0, 0, 0)) {
		t.Error("non-zero loudness blocked by the gate")
	}
	if Gate("tuba")(frame(t, 1, 1, 1, 1, 1, 1)) {
		t.Error("unknown gate channel passed")
	}
}

func TestPairwiseExceeds(t *testing.T) {
	exceeds := PairwiseExceeds("mids", 0.25)
	pair := func(previous, current float64) stream.Pair[Frame] {
		return stream.Pair[Frame]{
			Previous: frame(t, 1, 0, 0, 0, previous, 0),
			Current:  frame(t, 1, 0, 0, 0, current, 0),
		}
	}
	tests := []struct {
		name              string
		previous, current float64
		want              bool
	}{
		{"rise", 0.25, 0.75, true},
		{"fall", 0.75, 0.25, true},
		{"exactly at threshold", 0.25, 0.5, false},
		{"exactly at threshold falling", 0.5, 0.25, false},
		{"flat", 0.5, 0.5, false},
	}
	for _, test := range tests {
		if got := exceeds(pair(test.previous, test.current)); got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}
