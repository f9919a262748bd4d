// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"log/slog"
	"time"

	"github.com/hyprvis/visualizer/lib/clock"
	"github.com/hyprvis/visualizer/lib/socket"
)

// send delivers v unless ctx ends first.
func send[T any](ctx context.Context, out chan<- T, v T) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// pipe runs step for every input value; step returns false to stop.
func pipe[T, U any](ctx context.Context, in <-chan T, step func(v T, out chan<- U) bool) <-chan U {
	out := make(chan U)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok || !step(v, out) {
					return
				}
			}
		}
	}()
	return out
}

// Payloads unwraps socket events. Data payloads are forwarded; Open is
// consumed; Close ends the stream. Error and ConnectError end it too,
// after handing the cause to fail: a transport error is fatal to the
// pipeline. State transitions are logged.
func Payloads[T any](ctx context.Context, events <-chan socket.Event[T], fail func(error), logger *slog.Logger) <-chan T {
	state := socket.Connecting
	return pipe(ctx, events, func(event socket.Event[T], out chan<- T) bool {
		next := state.Next(event.Kind)
		if next != state {
			logger.Info("connection state", "from", state.String(), "to", next.String())
			state = next
		}
		switch event.Kind {
		case socket.Open:
			return true
		case socket.Data:
			return send(ctx, out, event.Payload)
		case socket.Error, socket.ConnectError:
			fail(event.Err)
			return false
		case socket.Close:
			return false
		default:
			logger.Warn("unknown socket event", "kind", event.Kind.String())
			return true
		}
	})
}

// Map applies f to every value.
func Map[T, U any](ctx context.Context, in <-chan T, f func(T) U) <-chan U {
	return pipe(ctx, in, func(v T, out chan<- U) bool {
		return send(ctx, out, f(v))
	})
}

// Filter forwards the values keep accepts.
func Filter[T any](ctx context.Context, in <-chan T, keep func(T) bool) <-chan T {
	return pipe(ctx, in, func(v T, out chan<- T) bool {
		if !keep(v) {
			return true
		}
		return send(ctx, out, v)
	})
}

// FilterMap forwards f's result when f reports ok.
func FilterMap[T, U any](ctx context.Context, in <-chan T, f func(T) (U, bool)) <-chan U {
	return pipe(ctx, in, func(v T, out chan<- U) bool {
		mapped, ok := f(v)
		if !ok {
			return true
		}
		return send(ctx, out, mapped)
	})
}

// Flatten forwards the elements of every batch in order.
func Flatten[T any](ctx context.Context, in <-chan []T) <-chan T {
	return pipe(ctx, in, func(batch []T, out chan<- T) bool {
		for _, v := range batch {
			if !send(ctx, out, v) {
				return false
			}
		}
		return true
	})
}

// Pair is two consecutive values of a stream.
type Pair[T any] struct {
	Previous T
	Current  T
}

// Pairwise emits each value together with its predecessor. The first
// value only primes the operator.
func Pairwise[T any](ctx context.Context, in <-chan T) <-chan Pair[T] {
	var previous T
	primed := false
	return pipe(ctx, in, func(v T, out chan<- Pair[T]) bool {
		if !primed {
			previous, primed = v, true
			return true
		}
		pair := Pair[T]{Previous: previous, Current: v}
		previous = v
		return send(ctx, out, pair)
	})
}

// Throttler admits at most one event per window, leading edge.
type Throttler struct {
	window time.Duration
	last   time.Time
	primed bool
}

// NewThrottler returns a throttler with the given window. A zero
// window admits everything.
func NewThrottler(window time.Duration) *Throttler {
	return &Throttler{window: window}
}

// Allow reports whether an event at now is admitted, and if so starts
// a new window at now.
func (t *Throttler) Allow(now time.Time) bool {
	if t.primed && now.Sub(t.last) < t.window {
		return false
	}
	t.last, t.primed = now, true
	return true
}

// Throttle forwards a value only if no value was forwarded within the
// preceding window, measured on clk when the value arrives. Dropped
// values are gone, not delayed.
func Throttle[T any](ctx context.Context, clk clock.Clock, in <-chan T, window time.Duration) <-chan T {
	throttler := NewThrottler(window)
	return Filter(ctx, in, func(T) bool {
		return throttler.Allow(clk.Now())
	})
}

// Interval emits 0, 1, 2, ... once per period, starting one period
// after the call. It stops its ticker when ctx ends.
func Interval(ctx context.Context, clk clock.Clock, period time.Duration) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		ticker := clk.NewTicker(period)
		defer ticker.Stop()
		for n := 0; ; n++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if !send(ctx, out, n) {
				return
			}
		}
	}()
	return out
}

// Prepend emits first, then everything from rest.
func Prepend[T any](ctx context.Context, first T, rest <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		if !send(ctx, out, first) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-rest:
				if !ok || !send(ctx, out, v) {
					return
				}
			}
		}
	}()
	return out
}

// SwitchMap maps every outer value to an inner stream and forwards
// only the most recent inner stream. Each new outer value cancels the
// previous inner context and discards a value of the previous inner
// stream still waiting to be sent. The output closes when the outer
// stream closes or ctx ends; the live inner context is cancelled then.
func SwitchMap[T, U any](ctx context.Context, in <-chan T, project func(ctx context.Context, v T) <-chan U) <-chan U {
	out := make(chan U)
	go func() {
		defer close(out)

		var (
			inner      <-chan U
			cancel     context.CancelFunc = func() {}
			pending    U
			hasPending bool
		)
		defer func() { cancel() }()

		for {
			var receive <-chan U
			var deliver chan<- U
			if hasPending {
				deliver = out
			} else {
				receive = inner
			}

			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				cancel()
				var innerCtx context.Context
				innerCtx, cancel = context.WithCancel(ctx)
				inner = project(innerCtx, v)
				var zero U
				pending, hasPending = zero, false
			case u, ok := <-receive:
				if !ok {
					inner = nil
					continue
				}
				pending, hasPending = u, true
			case deliver <- pending:
				var zero U
				pending, hasPending = zero, false
			}
		}
	}()
	return out
}

// Drain calls sink for every value until in closes or ctx ends.
func Drain[T any](ctx context.Context, in <-chan T, sink func(T)) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			sink(v)
		}
	}
}
