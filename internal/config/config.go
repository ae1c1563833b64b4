package config

import (
	"fmt"
	"strings"
)

// Config holds the run parameters shared by the comparison and packaging tools.
type Config struct {
	CheckpointPath string
	ConvertedPath  string
	ImagesDir      string

	MaxSamples int // 0 means no cap
	ImageSize  int
	NumClasses int

	FailFast   bool
	ReportPath string

	OrtLibraryPath string

	LogLevel  string
	LogFormat string
}

func (c *Config) Validate() error {
	if c.CheckpointPath == "" {
		return fmt.Errorf("invalid checkpoint: path must not be empty")
	}
	if c.ConvertedPath == "" {
		return fmt.Errorf("invalid converted: path must not be empty")
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("invalid images: directory must not be empty")
	}
	if c.MaxSamples < 0 {
		return fmt.Errorf("invalid max_samples: %d (must be non-negative, 0 means all)", c.MaxSamples)
	}
	if c.ImageSize <= 0 {
		return fmt.Errorf("invalid image_size: %d (must be positive)", c.ImageSize)
	}
	if c.NumClasses <= 0 {
		return fmt.Errorf("invalid num_classes: %d (must be positive)", c.NumClasses)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log_format: %q (must be console or json)", c.LogFormat)
	}
	return nil
}

// Capped reports whether the sample cap is in effect.
func (c *Config) Capped() bool {
	return c.MaxSamples > 0
}

func Default() Config {
	return Config{
		MaxSamples: 100,
		ImageSize:  224,
		NumClasses: 14,
		LogLevel:   "info",
		LogFormat:  "console",
	}
}
