// Copyright 2026 The Visualizer Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hyprvis/visualizer/lib/audio"
	"github.com/hyprvis/visualizer/lib/process"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "VISUALIZER_CONFIG"

// Config is the root of the configuration file.
type Config struct {
	Pulse  PulseConfig  `yaml:"pulse"`
	Lycris LycrisConfig `yaml:"lycris"`
	Tiles  TilesConfig  `yaml:"tiles"`
}

// PulseConfig configures nwg-pulse, the audio trigger.
type PulseConfig struct {
	// SocketPath is the audio-analysis daemon's socket.
	SocketPath string `yaml:"socket_path"`

	// Format is the wire format of one frame: csv, json, or cbor.
	Format string `yaml:"format"`

	// Channels maps channel names to their position in a frame.
	Channels Channels `yaml:"channels"`

	// Gate is the channel whose zero reading means "no signal yet".
	// Frames failing the gate never reach the predicate.
	Gate string `yaml:"gate"`

	// Mode selects the predicate: "threshold" (all Conditions hold on
	// one frame) or "pairwise" (consecutive frames differ by more than
	// Pairwise.Threshold).
	Mode string `yaml:"mode"`

	Conditions []Condition `yaml:"conditions"`
	Pairwise   Pairwise    `yaml:"pairwise"`

	// Throttle is the minimum time between two signals.
	Throttle time.Duration `yaml:"throttle"`

	// Process is the command name to signal.
	Process string `yaml:"process"`

	// Signal is a number ("45") or name ("SIGUSR1", "RTMIN+11").
	Signal string `yaml:"signal"`
}

// Condition is one comparison of the threshold predicate.
type Condition struct {
	Channel string  `yaml:"channel"`
	Op      string  `yaml:"op"`
	Value   float64 `yaml:"value"`
}

// Pairwise configures the frame-difference predicate.
type Pairwise struct {
	Channel   string  `yaml:"channel"`
	Threshold float64 `yaml:"threshold"`
}

// Channels maps channel name to frame index. A file that sets channels
// replaces the default layout wholesale instead of merging into it.
type Channels map[string]int

// UnmarshalYAML replaces the receiver rather than merging keys.
func (c *Channels) UnmarshalYAML(node *yaml.Node) error {
	layout := make(map[string]int)
	if err := node.Decode(&layout); err != nil {
		return err
	}
	*c = layout
	return nil
}

// LycrisConfig configures the subtitle visualizer.
type LycrisConfig struct {
	// SocketPath is mpv's --input-ipc-server socket.
	SocketPath string `yaml:"socket_path"`

	// Fonts are the figlet fonts to choose from. They are ranked by
	// rendered width at startup; the widest one that fits wins.
	Fonts []string `yaml:"fonts"`

	// FontChoice is "random" (any font that fits) or "widest".
	FontChoice string `yaml:"font_choice"`

	// ImageDir holds the images of the easter-egg mode. Empty disables
	// image mode.
	ImageDir string `yaml:"image_dir"`

	// ImageChance is the probability that a subtitle shows an image
	// instead of text.
	ImageChance float64 `yaml:"image_chance"`

	// ImageCommand places an image in the terminal. {path}, {cols}
	// and {rows} are substituted in every argument.
	ImageCommand []string `yaml:"image_command"`

	// Distortion ticks come every IntervalMin plus a random share of
	// IntervalJitter, drawn once per subtitle.
	IntervalMin    time.Duration `yaml:"interval_min"`
	IntervalJitter time.Duration `yaml:"interval_jitter"`

	// Color is the foreground colour of rendered text (hex or ANSI
	// index). Empty keeps the terminal default.
	Color string `yaml:"color"`
}

// TilesConfig configures lycris-tiles.
type TilesConfig struct {
	// Count is how many terminal windows to open.
	Count int `yaml:"count"`

	// Terminal is the terminal invocation; Command is appended to it.
	Terminal []string `yaml:"terminal"`
	Command  []string `yaml:"command"`
}

// Default returns the stock desktop setup.
func Default() *Config {
	return &Config{
		Pulse: PulseConfig{
			SocketPath: "/tmp/audio_monitor.sock",
			Format:     "csv",
			Channels: Channels{
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
			},
			Gate: "loudness",
			Mode: "threshold",
			Conditions: []Condition{
				{Channel: "kickdrum", Op: "==", Value: 1},
				{Channel: "subwoofer", Op: "==", Value: 1},
				{Channel: "loudness", Op: ">=", Value: 0.3},
				{Channel: "midBass", Op: ">", Value: 0.9},
			},
			Pairwise: Pairwise{Channel: "midsMoody", Threshold: 0.2},
			Throttle: 8 * time.Millisecond,
			Process:  "nwg-panel",
			Signal:   "45",
		},
		Lycris: LycrisConfig{
			SocketPath:  "/tmp/mpv-lycris.sock",
			Fonts:       []string{"colossal", "doom", "big", "standard"},
			FontChoice:  "random",
			ImageChance: 0.05,
			ImageCommand: []string{
				"kitten", "icat", "--stdin=no", "--transfer-mode=memory",
				"--place", "{cols}x{rows}@0x0", "{path}",
			},
			IntervalMin:    150 * time.Millisecond,
			IntervalJitter: 300 * time.Millisecond,
			Color:          "#e0115f",
		},
		Tiles: TilesConfig{
			Count: 10,
			Terminal: []string{
				"kitty", "-o", "window_padding_width=0", "-o", "background_opacity=0.0",
			},
			Command: []string{"sh", "-c", "lycris || read"},
		},
	}
}

// Resolve loads the file named by flagPath, else by the
// VISUALIZER_CONFIG variable, else returns Default. The result is
// validated.
func Resolve(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, cfg.Validate()
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads path over the defaults and expands path variables. It
// does not validate.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) expandVariables() {
	c.Pulse.SocketPath = expandVars(c.Pulse.SocketPath)
	c.Lycris.SocketPath = expandVars(c.Lycris.SocketPath)
	c.Lycris.ImageDir = expandVars(c.Lycris.ImageDir)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

var (
	formats = map[string]bool{"csv": true, "json": true, "cbor": true}
	ops     = map[string]bool{"==": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true}
)

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	pulse := &c.Pulse

	if pulse.SocketPath == "" {
		errs = append(errs, errors.New("pulse.socket_path is required"))
	}
	if !formats[pulse.Format] {
		errs = append(errs, fmt.Errorf("pulse.format %q: want csv, json, or cbor", pulse.Format))
	}
	if err := audio.ChannelMap(pulse.Channels).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pulse.channels: %w", err))
	}
	requireChannel := func(field, name string) {
		if _, ok := pulse.Channels[name]; !ok {
			errs = append(errs, fmt.Errorf("%s: unknown channel %q", field, name))
		}
	}
	if pulse.Gate != "" {
		requireChannel("pulse.gate", pulse.Gate)
	}
	switch pulse.Mode {
	case "threshold":
		if len(pulse.Conditions) == 0 {
			errs = append(errs, errors.New("pulse.conditions is empty in threshold mode"))
		}
		for i, condition := range pulse.Conditions {
			requireChannel(fmt.Sprintf("pulse.conditions[%d]", i), condition.Channel)
			if !ops[condition.Op] {
				errs = append(errs, fmt.Errorf("pulse.conditions[%d]: unknown op %q", i, condition.Op))
			}
		}
	case "pairwise":
		requireChannel("pulse.pairwise.channel", pulse.Pairwise.Channel)
		if pulse.Pairwise.Threshold < 0 {
			errs = append(errs, errors.New("pulse.pairwise.threshold is negative"))
		}
	default:
		errs = append(errs, fmt.Errorf("pulse.mode %q: want threshold or pairwise", pulse.Mode))
	}
	if pulse.Throttle < 0 {
		errs = append(errs, errors.New("pulse.throttle is negative"))
	}
	if pulse.Process == "" {
		errs = append(errs, errors.New("pulse.process is required"))
	}
	if _, err := process.ParseSignal(pulse.Signal); err != nil {
		errs = append(errs, fmt.Errorf("pulse.signal: %w", err))
	}

	lycris := &c.Lycris
	if lycris.SocketPath == "" {
		errs = append(errs, errors.New("lycris.socket_path is required"))
	}
	if len(lycris.Fonts) == 0 {
		errs = append(errs, errors.New("lycris.fonts is empty"))
	}
	if lycris.FontChoice != "random" && lycris.FontChoice != "widest" {
		errs = append(errs, fmt.Errorf("lycris.font_choice %q: want random or widest", lycris.FontChoice))
	}
	if lycris.ImageChance < 0 || lycris.ImageChance > 1 {
		errs = append(errs, fmt.Errorf("lycris.image_chance %v: want 0..1", lycris.ImageChance))
	}
	if lycris.ImageDir != "" && len(lycris.ImageCommand) == 0 {
		errs = append(errs, errors.New("lycris.image_command is required with image_dir"))
	}
	if lycris.IntervalMin <= 0 {
		errs = append(errs, errors.New("lycris.interval_min must be positive"))
	}
	if lycris.IntervalJitter < 0 {
		errs = append(errs, errors.New("lycris.interval_jitter is negative"))
	}

	if c.Tiles.Count < 0 {
		errs = append(errs, errors.New("tiles.count is negative"))
	}
	if len(c.Tiles.Terminal) == 0 {
		errs = append(errs, errors.New("tiles.terminal is empty"))
	}

	return errors.Join(errs...)
}
