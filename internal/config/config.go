// Package config loads export settings for the command-line driver.
package config

import (
	"fmt"

	"github.com/yyyoichi/logomark"
)

// Config is the file layout of a run configuration.
type Config struct {
	Mode        string          `yaml:"mode"`
	Workers     int             `yaml:"workers"`
	RequireLogo bool            `yaml:"require_logo"`
	StrictColor bool            `yaml:"strict_color"`
	SizeLimit   int             `yaml:"size_limit,omitempty"`
	Watermark   logomark.Config `yaml:"watermark"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:        "normalize",
		RequireLogo: true,
		Watermark:   logomark.DefaultConfig(),
	}
}

// Options converts the exporter settings of c into logomark options.
func (c *Config) Options() ([]logomark.Option, error) {
	var opts []logomark.Option
	switch c.Mode {
	case "", "normalize":
		opts = append(opts, logomark.WithMode(logomark.ModeNormalize))
	case "preserve":
		opts = append(opts, logomark.WithMode(logomark.ModePreserve))
	default:
		return nil, fmt.Errorf("unknown mode %q (normalize, preserve)", c.Mode)
	}
	if c.Workers > 0 {
		opts = append(opts, logomark.WithWorkers(c.Workers))
	}
	if c.SizeLimit > 0 {
		opts = append(opts, logomark.WithSizeLimit(c.SizeLimit))
	}
	if c.StrictColor {
		opts = append(opts, logomark.WithStrictColor())
	}
	opts = append(opts, logomark.WithRequireLogo(c.RequireLogo))
	return opts, nil
}
