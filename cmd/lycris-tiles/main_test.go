// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/hyprvis/visualizer/lib/config"
)

func TestTileCommandDefaults(t *testing.T) {
	got := tileCommand(config.Default().Tiles)
	want := []string{
		"kitty", "-o", "window_padding_width=0", "-o", "background_opacity=0.0",
		"sh", "-c", "lycris || read",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("tileCommand = %q, want %q", got, want)
	}
}

func TestSpawnOpensEveryWindow(t *testing.T) {
	var launched [][]string
	launch := func(argv []string) (int, error) {
		launched = append(launched, argv)
		return 1000 + len(launched), nil
	}
	tiles := config.Default().Tiles
	tiles.Count = 3
	if err := spawn(tiles, launch, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(launched) != 3 {
		t.Fatalf("launched %d windows, want 3", len(launched))
	}
}

func TestSpawnStopsAtFirstFailure(t *testing.T) {
	calls := 0
	launch := func([]string) (int, error) {
		calls++
		if calls == 2 {
			return 0, errors.New("kitty: not found")
		}
		return calls, nil
	}
	tiles := config.Default().Tiles
	if err := spawn(tiles, launch, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("spawn hid the launch failure")
	}
	if calls != 2 {
		t.Fatalf("launch called %d times, want 2", calls)
	}
}

func TestSpawnRejectsEmptyCommand(t *testing.T) {
	launch := func([]string) (int, error) { return 0, nil }
	if err := spawn(config.TilesConfig{Count: 1}, launch, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("empty command accepted")
	}
}
