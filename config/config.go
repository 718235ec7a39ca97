// Package config loads the explorer's settings from an optional YAML file
// and command-line flags. Flags win over the file, the file over defaults.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	mandel "github.com/marben/mandel_explorer"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Listen    string `yaml:"listen"`
	StaticDir string `yaml:"static_dir"`

	// Samples per axis of every render pass.
	Samples int `yaml:"samples"`
	// CanvasSize is the side of the square drawing surface in pixels.
	CanvasSize int `yaml:"canvas_size"`
	// FrameScale resizes frames before they are sent to browsers.
	FrameScale float64 `yaml:"frame_scale"`
	HUD        bool    `yaml:"hud"`

	// Journal is the path of the event journal; empty disables it.
	Journal string `yaml:"journal"`
	// Replay applies the journal's events at start-up.
	Replay bool `yaml:"replay"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Listen:     ":8080",
		StaticDir:  "./static",
		Samples:    mandel.DefaultSamples,
		CanvasSize: 900,
		FrameScale: 1,
		HUD:        true,
		LogLevel:   "info",
	}
}

// Load reads the YAML file at path over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decode(bytes.NewReader(b), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Listen == "":
		return fmt.Errorf("%w: listen address is empty", ErrInvalid)
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalid, c.Samples)
	case c.CanvasSize <= 0:
		return fmt.Errorf("%w: canvas_size must be positive, got %d", ErrInvalid, c.CanvasSize)
	case c.FrameScale <= 0:
		return fmt.Errorf("%w: frame_scale must be positive, got %g", ErrInvalid, c.FrameScale)
	case c.Replay && c.Journal == "":
		return fmt.Errorf("%w: replay needs a journal", ErrInvalid)
	}
	return nil
}

// Parse reads -config and the override flags from args and returns the
// validated result.
func Parse(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "YAML configuration file")

	def := Default()
	flags := Default()
	fs.StringVar(&flags.Listen, "listen", def.Listen, "HTTP listen address")
	fs.StringVar(&flags.StaticDir, "static", def.StaticDir, "directory served at /")
	fs.IntVar(&flags.Samples, "samples", def.Samples, "samples per axis")
	fs.IntVar(&flags.CanvasSize, "size", def.CanvasSize, "canvas side in pixels")
	fs.Float64Var(&flags.FrameScale, "frame-scale", def.FrameScale, "scale of frames sent to browsers")
	fs.BoolVar(&flags.HUD, "hud", def.HUD, "draw iteration cap and zoom over frames")
	fs.StringVar(&flags.Journal, "journal", def.Journal, "event journal path (empty disables)")
	fs.BoolVar(&flags.Replay, "replay", def.Replay, "replay the journal at start-up")
	fs.StringVar(&flags.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *path != "" {
		var err error
		if cfg, err = Load(*path); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = flags.Listen
		case "static":
			cfg.StaticDir = flags.StaticDir
		case "samples":
			cfg.Samples = flags.Samples
		case "size":
			cfg.CanvasSize = flags.CanvasSize
		case "frame-scale":
			cfg.FrameScale = flags.FrameScale
		case "hud":
			cfg.HUD = flags.HUD
		case "journal":
			cfg.Journal = flags.Journal
		case "replay":
			cfg.Replay = flags.Replay
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("listen", c.Listen),
		slog.Int("samples", c.Samples),
		slog.Int("canvas_size", c.CanvasSize),
		slog.Float64("frame_scale", c.FrameScale),
		slog.String("journal", c.Journal),
		slog.Bool("replay", c.Replay),
	)
}
