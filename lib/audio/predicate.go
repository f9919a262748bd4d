// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/hyprvis/visualizer/lib/stream"
)

// Op is a comparison operator.
type Op string

const (
	Equal        Op = "=="
	NotEqual     Op = "!="
	Greater      Op = ">"
	GreaterEqual Op = ">="
	Less         Op = "<"
	LessEqual    Op = "<="
)

func (op Op) compare(a, b float64) (bool, error) {
	switch op {
	case Equal:
		return a == b, nil
	case NotEqual:
		return a != b, nil
	case Greater:
		return a > b, nil
	case GreaterEqual:
		return a >= b, nil
	case Less:
		return a < b, nil
	case LessEqual:
		return a <= b, nil
	default:
		return false, fmt.Errorf("audio: unknown operator %q", string(op))
	}
}

// Condition compares one channel of a frame against a constant.
type Condition struct {
	Channel string
	Op      Op
	Value   float64
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %g", c.Channel, c.Op, c.Value)
}

// Holds reports whether the condition is true for frame. A channel the
// frame does not carry never satisfies a condition.
func (c Condition) Holds(frame Frame) bool {
	reading, ok := frame.Channel(c.Channel)
	if !ok {
		return false
	}
	result, err := c.Op.compare(reading, c.Value)
	return err == nil && result
}

// AllOf returns a predicate that holds when every condition holds on
// the same frame. Conditions are checked up front.
func AllOf(conditions []Condition, channels ChannelMap) (func(Frame) bool, error) {
	for _, condition := range conditions {
		if _, ok := channels[condition.Channel]; !ok {
			return nil, fmt.Errorf("audio: condition %s: unknown channel", condition)
		}
		if _, err := condition.Op.compare(0, 0); err != nil {
			return nil, err
		}
	}
	conditions = append([]Condition(nil), conditions...)
	return func(frame Frame) bool {
		for _, condition := range conditions {
			if !condition.Holds(frame) {
				return false
			}
		}
		return true
	}, nil
}

// Gate returns a predicate that rejects frames whose channel reads zero,
// the daemon's "no signal yet".
func Gate(channel string) func(Frame) bool {
	return func(frame Frame) bool {
		reading, ok := frame.Channel(channel)
		return ok && reading != 0
	}
}

// PairwiseExceeds returns a predicate over consecutive frames that holds
// when channel moved by strictly more than threshold, in either
// direction.
func PairwiseExceeds(channel string, threshold float64) func(stream.Pair[Frame]) bool {
	return func(pair stream.Pair[Frame]) bool {
		previous, okPrevious := pair.Previous.Channel(channel)
		current, okCurrent := pair.Current.Channel(channel)
		return okPrevious && okCurrent && math.Abs(current-previous) > threshold
	}
}
