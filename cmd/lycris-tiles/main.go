// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// lycris-tiles opens a wall of borderless, transparent terminal windows,
// each running lycris, and exits. The windows outlive it. A window
// whose lycris exits waits for a key before closing, so its error stays
// readable.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/pflag"

	"github.com/hyprvis/visualizer/lib/config"
	"github.com/hyprvis/visualizer/lib/logging"
	"github.com/hyprvis/visualizer/lib/process"
	"github.com/hyprvis/visualizer/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		count       int
		logLevel    string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("lycris-tiles", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.IntVarP(&count, "count", "n", -1, "number of windows (overrides tiles.count)")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return process.Usagef("%v", err)
	}
	if showVersion {
		version.Print("lycris-tiles")
		return nil
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level).With("binary", "lycris-tiles")

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	tiles := cfg.Tiles
	if count >= 0 {
		tiles.Count = count
	}
	return spawn(tiles, start, logger)
}

// start launches argv without waiting for it.
func start(argv []string) (int, error) {
	command := exec.Command(argv[0], argv[1:]...)
	if err := command.Start(); err != nil {
		return 0, err
	}
	pid := command.Process.Pid
	return pid, command.Process.Release()
}

// tileCommand is the argument vector of one window.
func tileCommand(tiles config.TilesConfig) []string {
	argv := append([]string(nil), tiles.Terminal...)
	return append(argv, tiles.Command...)
}

// spawn opens tiles.Count windows. It stops at the first failure.
func spawn(tiles config.TilesConfig, launch func(argv []string) (int, error), logger *slog.Logger) error {
	argv := tileCommand(tiles)
	if len(argv) == 0 {
		return errors.New("tiles.terminal is empty")
	}
	for i := range tiles.Count {
		pid, err := launch(argv)
		if err != nil {
			return fmt.Errorf("opening window %d of %d: %w", i+1, tiles.Count, err)
		}
		logger.Debug("window opened", "pid", pid, "index", i)
	}
	logger.Info("windows opened", "count", tiles.Count, "command", argv)
	return nil
}
