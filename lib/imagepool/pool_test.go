// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package imagepool

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyprvis/visualizer/lib/clock"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("GIF89a"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenFiltersImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "creep.GIF"))
	touch(t, filepath.Join(dir, "notes.txt"))
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	pool, err := Open(dir, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if pool.Len() != 1 {
		t.Fatalf("Len = %d, want 1", pool.Len())
	}
	path, ok := pool.Pick(firstPicker{})
	if !ok || path != filepath.Join(dir, "creep.GIF") {
		t.Fatalf("Pick = %q, %v", path, ok)
	}
}

func TestOpenWithoutDirectory(t *testing.T) {
	pool, err := Open("", discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := pool.Pick(firstPicker{}); ok {
		t.Fatal("empty pool picked an image")
	}
	if err := pool.Watch(context.Background(), clock.Real()); err != nil {
		t.Fatalf("Watch without directory: %v", err)
	}
}

func TestOpenMissingDirectory(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing"), discard()); err == nil {
		t.Fatal("Open accepted a missing directory")
	}
}

func waitForLen(t *testing.T, pool *Pool, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second) //nolint:realclock test hang prevention
	for pool.Len() != want {
		if time.Now().After(deadline) { //nolint:realclock test hang prevention
			t.Fatalf("pool has %d images, want %d", pool.Len(), want)
		}
		time.Sleep(10 * time.Millisecond) //nolint:realclock polling the watcher
	}
}

func TestWatchTracksDirectory(t *testing.T) {
	dir := t.TempDir()
	pool, err := Open(dir, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := pool.Watch(ctx, clock.Real()); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	first := filepath.Join(dir, "a.png")
	touch(t, first)
	waitForLen(t, pool, 1)

	touch(t, filepath.Join(dir, "b.webp"))
	waitForLen(t, pool, 2)

	if err := os.Remove(first); err != nil {
		t.Fatal(err)
	}
	waitForLen(t, pool, 1)
}

func TestWatchWaitsForDirectoryToSettle(t *testing.T) {
	dir := t.TempDir()
	pool, err := Open(dir, discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if pool.Dir() != dir {
		t.Fatalf("Dir = %q, want %q", pool.Dir(), dir)
	}
	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := pool.Watch(ctx, fake); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	touch(t, filepath.Join(dir, "a.gif"))
	fake.WaitForTimers(1)
	if pool.Len() != 0 {
		t.Fatalf("rescanned before the directory settled: %d images", pool.Len())
	}
	fake.Advance(settleDelay)
	waitForLen(t, pool, 1)
}
