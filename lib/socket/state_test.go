// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package socket

import "testing"

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		want  []State
	}{
		{"graceful", []Kind{Open, Data, Data, Close}, []State{Opened, Streaming, Streaming, Closed}},
		{"transport error", []Kind{Open, Data, Error}, []State{Opened, Streaming, Closed}},
		{"connect error", []Kind{ConnectError}, []State{Closed}},
		{"open without data", []Kind{Open, Close}, []State{Opened, Closed}},
		{"closed is absorbing", []Kind{Close, Open, Data}, []State{Closed, Closed, Closed}},
		{"duplicate open ignored", []Kind{Open, Data, Open}, []State{Opened, Streaming, Streaming}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := Connecting
			for i, kind := range test.kinds {
				state = state.Next(kind)
				if state != test.want[i] {
					t.Fatalf("after %v (step %d): state = %v, want %v", kind, i, state, test.want[i])
				}
			}
		})
	}
}
