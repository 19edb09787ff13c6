package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"

	"github.com/szxp/canvasfit"
	"github.com/szxp/canvasfit/imagemagick"
)

const (
	resamplerImaging     = "imaging"
	resamplerImageMagick = "imagemagick"
)

type Config struct {
	Preset      string            `toml:"preset"`
	Filter      string            `toml:"filter"`
	Resampler   string            `toml:"resampler"`
	AutoOrient  bool              `toml:"auto_orient"`
	LogLevel    string            `toml:"log_level"`
	ImageMagick ImageMagickConfig `toml:"imagemagick"`
}

type ImageMagickConfig struct {
	Binary string `toml:"binary"`
}

func DefaultConfig() Config {
	return Config{
		Preset:    canvasfit.DefaultPresetName,
		Filter:    "lanczos",
		Resampler: resamplerImaging,
		LogLevel:  "WARN",
		ImageMagick: ImageMagickConfig{
			Binary: imagemagick.DefaultBinary,
		},
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path == "" {
		return conf, nil
	}

	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return conf, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return conf, nil
}

func (c Config) Validate() error {
	if _, err := canvasfit.Lookup(c.Preset); err != nil {
		return err
	}
	if _, err := canvasfit.FilterByName(c.Filter); err != nil {
		return err
	}
	switch c.Resampler {
	case resamplerImaging, resamplerImageMagick:
	default:
		return fmt.Errorf("unknown resampler %q, want %s or %s", c.Resampler, resamplerImaging, resamplerImageMagick)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// newCompositor builds the compositor described by c. c must be valid.
func (c Config) newCompositor(logger hclog.Logger) (*canvasfit.Compositor, error) {
	var r canvasfit.Resampler
	switch c.Resampler {
	case resamplerImageMagick:
		r = &imagemagick.Resampler{
			Binary: c.ImageMagick.Binary,
			Logger: logger.Named("imagemagick"),
		}
	default:
		f, err := canvasfit.FilterByName(c.Filter)
		if err != nil {
			return nil, err
		}
		r = &canvasfit.FilterResampler{Filter: f}
	}

	return canvasfit.NewCompositor(canvasfit.CompositorConfig{
		Resampler:  r,
		AutoOrient: c.AutoOrient,
		Logger:     logger.Named("compositor"),
	}), nil
}
