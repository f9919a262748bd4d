// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

// lycris shows the subtitles mpv is playing as glitching ASCII art. It
// connects to mpv's IPC socket (start mpv with
// --input-ipc-server=/tmp/mpv-lycris.sock), picks one word of every new
// subtitle line, renders it in the widest figlet font that fits the
// terminal, and keeps redrawing it with growing distortion until the
// next line arrives. With an image directory configured, a line
// occasionally shows an image instead.
//
// The terminal is redrawn constantly, so diagnostics are best sent to a
// file with --log-output.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/hyprvis/visualizer/lib/clock"
	"github.com/hyprvis/visualizer/lib/config"
	"github.com/hyprvis/visualizer/lib/glitch"
	"github.com/hyprvis/visualizer/lib/imagepool"
	"github.com/hyprvis/visualizer/lib/logging"
	"github.com/hyprvis/visualizer/lib/lycris"
	"github.com/hyprvis/visualizer/lib/mpv"
	"github.com/hyprvis/visualizer/lib/process"
	"github.com/hyprvis/visualizer/lib/sink"
	"github.com/hyprvis/visualizer/lib/socket"
	"github.com/hyprvis/visualizer/lib/typeset"
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
		imageDir    string
		logLevel    string
		logOutput   string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("lycris", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.StringVar(&socketPath, "socket", "", "mpv IPC socket (overrides lycris.socket_path)")
	flagSet.StringVar(&imageDir, "image-dir", "", "directory of images to show now and then (overrides lycris.image_dir)")
	flagSet.StringVar(&logLevel, "log-level", "warn", "stderr log level: debug, info, warn, error")
	flagSet.StringVar(&logOutput, "log-output", "", "also write JSON log records at debug level to this file")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return process.Usagef("%v", err)
	}
	if showVersion {
		version.Print("lycris")
		return nil
	}
	if flagSet.NArg() > 0 {
		return process.Usagef("unexpected argument: %s", flagSet.Arg(0))
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	handler := logging.NewHandler(os.Stderr, level)
	if logOutput != "" {
		fileHandler, closeFile, err := logging.OpenFile(logOutput)
		if err != nil {
			return err
		}
		defer closeFile()
		handler = logging.Fanout{handler, fileHandler}
	}
	logger := slog.New(handler).With("binary", "lycris")

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	settings := cfg.Lycris
	if socketPath != "" {
		settings.SocketPath = socketPath
	}
	if imageDir != "" {
		settings.ImageDir = imageDir
	}

	renderer := typeset.FigletRenderer{}
	styles, err := typeset.Rank(renderer, settings.Fonts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	images, err := imagepool.Open(settings.ImageDir, logger)
	if err != nil {
		return err
	}
	if err := images.Watch(ctx, clock.Real()); err != nil {
		return err
	}

	terminal := sink.NewTerminal(os.Stdout, settings.Color)
	display := &sink.Display{Terminal: terminal}
	if settings.ImageDir != "" {
		display.Images = &sink.ImagePlacer{Command: settings.ImageCommand, Stdout: os.Stdout, Stderr: os.Stderr}
	}

	source := socket.NewSource(settings.SocketPath, mpv.NewLineDecoder(logger).Decode, logger)
	defer source.Close()
	if err := source.Connect(ctx); err != nil {
		return err
	}

	logger.Info("observing subtitles",
		"path", source.Path(),
		"fonts", len(styles),
		"image_dir", images.Dir(),
		"images", images.Len(),
	)
	return lycris.Run(ctx, lycris.Options{
		Events:  source.Events(),
		Control: source,
		Planner: &lycris.Planner{
			Renderer:    renderer,
			Styles:      styles,
			RandomFont:  settings.FontChoice == "random",
			Images:      images,
			ImageChance: settings.ImageChance,
			Columns: func() int {
				columns, _ := terminal.Size()
				return columns
			},
			Logger: logger,
		},
		Display:        display,
		Glitcher:       glitch.Glitcher{},
		IntervalMin:    settings.IntervalMin,
		IntervalJitter: settings.IntervalJitter,
		Clock:          clock.Real(),
		Logger:         logger,
	})
}
