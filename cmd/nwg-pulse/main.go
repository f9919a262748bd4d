// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// nwg-pulse makes nwg-panel pulse to the music. It reads the frames of
// the audio-analysis daemon from its Unix socket and, whenever a frame
// matches the trigger predicate, sends nwg-panel a signal (by default
// 45, SIGRTMIN+11). At most one signal goes out per throttle window.
//
// With no flags and no config file it reproduces the stock setup: the
// thirteen-band CSV layout on /tmp/audio_monitor.sock and the kick-drum
// predicate. A closed socket ends the process normally; a transport
// error exits non-zero.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/hyprvis/visualizer/lib/audio"
	"github.com/hyprvis/visualizer/lib/clock"
	"github.com/hyprvis/visualizer/lib/config"
	"github.com/hyprvis/visualizer/lib/logging"
	"github.com/hyprvis/visualizer/lib/process"
	"github.com/hyprvis/visualizer/lib/pulse"
	"github.com/hyprvis/visualizer/lib/sink"
	"github.com/hyprvis/visualizer/lib/socket"
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
		socketPath  string
		logLevel    string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("nwg-pulse", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.StringVar(&socketPath, "socket", "", "audio daemon socket (overrides pulse.socket_path)")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return process.Usagef("%v", err)
	}
	if showVersion {
		version.Print("nwg-pulse")
		return nil
	}
	if flagSet.NArg() > 0 {
		return process.Usagef("unexpected argument: %s", flagSet.Arg(0))
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level).With("binary", "nwg-pulse")

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	settings := cfg.Pulse
	if socketPath != "" {
		settings.SocketPath = socketPath
	}

	decode, err := audio.NewDecoder(audio.Format(settings.Format), audio.ChannelMap(settings.Channels), logger)
	if err != nil {
		return err
	}
	detector, err := pulse.NewDetector(settings)
	if err != nil {
		return err
	}
	signalNumber, err := process.ParseSignal(settings.Signal)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := socket.NewSource(settings.SocketPath, decode, logger)
	defer source.Close()
	if err := source.Connect(ctx); err != nil {
		return err
	}

	logger.Info("watching audio",
		"path", source.Path(),
		"mode", settings.Mode,
		"process", settings.Process,
		"signal", int(signalNumber),
		"throttle", settings.Throttle,
	)
	return pulse.Run(ctx, pulse.Options{
		Events:   source.Events(),
		Gate:     settings.Gate,
		Detector: detector,
		Throttle: settings.Throttle,
		Clock:    clock.Real(),
		Trigger: &sink.Signal{
			Signaler: &process.Signaler{},
			Process:  settings.Process,
			Signal:   signalNumber,
			Logger:   logger,
		},
		Logger: logger,
	})
}
