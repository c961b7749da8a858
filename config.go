package logomark

import (
	"fmt"

	"github.com/yyyoichi/logomark/internal/geometry"
	"github.com/yyyoichi/logomark/internal/render"
)

// Anchor is the image corner the margins are measured from.
type Anchor = geometry.Anchor

const (
	TopLeft     = geometry.TopLeft
	TopRight    = geometry.TopRight
	BottomLeft  = geometry.BottomLeft
	BottomRight = geometry.BottomRight
)

// Background describes the optional plate drawn behind the logo.
// Color, Opacity and padding are ignored unless Enabled is set.
type Background struct {
	Enabled           bool    `yaml:"enabled"`
	Color             string  `yaml:"color"`
	Opacity           float64 `yaml:"opacity"`
	PaddingHorizontal float64 `yaml:"padding_horizontal"`
	PaddingVertical   float64 `yaml:"padding_vertical"`
}

// Config holds every setting of one export run. It is passed by value and
// never modified by the library.
type Config struct {
	Anchor           Anchor     `yaml:"anchor"`
	MarginHorizontal float64    `yaml:"margin_horizontal"`
	MarginVertical   float64    `yaml:"margin_vertical"`
	LogoWidthPercent float64    `yaml:"logo_width_percent"`
	Background       Background `yaml:"background"`
	// Quality is the base encode quality in (0,1].
	Quality float64 `yaml:"quality"`
}

func DefaultConfig() Config {
	return Config{
		Anchor:           TopLeft,
		MarginHorizontal: 24,
		MarginVertical:   24,
		LogoWidthPercent: 24,
		Background: Background{
			Color:             "#ffffff",
			Opacity:           0.5,
			PaddingHorizontal: 8,
			PaddingVertical:   8,
		},
		Quality: 0.8,
	}
}

// Validate reports the first setting that breaks an invariant, wrapped in
// ErrInput. A malformed background colour is only rejected when strictColor
// is set; otherwise it renders as a degraded fill.
func (c Config) Validate(strictColor bool) error {
	switch c.Anchor {
	case TopLeft, TopRight, BottomLeft, BottomRight:
	default:
		return fmt.Errorf("%w: unknown anchor %q", ErrInput, c.Anchor)
	}
	if !(c.LogoWidthPercent > 0) {
		return fmt.Errorf("%w: logo width percent must be positive, got %v", ErrInput, c.LogoWidthPercent)
	}
	if c.MarginHorizontal < 0 || c.MarginVertical < 0 {
		return fmt.Errorf("%w: margins must not be negative, got %v/%v", ErrInput, c.MarginHorizontal, c.MarginVertical)
	}
	if !(c.Quality > 0 && c.Quality <= 1) {
		return fmt.Errorf("%w: quality must be in (0,1], got %v", ErrInput, c.Quality)
	}
	if !c.Background.Enabled {
		return nil
	}
	bg := c.Background
	if !(bg.Opacity >= 0 && bg.Opacity <= 1) {
		return fmt.Errorf("%w: background opacity must be in [0,1], got %v", ErrInput, bg.Opacity)
	}
	if bg.PaddingHorizontal < 0 || bg.PaddingVertical < 0 {
		return fmt.Errorf("%w: background padding must not be negative, got %v/%v", ErrInput, bg.PaddingHorizontal, bg.PaddingVertical)
	}
	if strictColor && !render.ParseHex(bg.Color).Valid() {
		return fmt.Errorf("%w: background color %q is not #RRGGBB", ErrInput, bg.Color)
	}
	return nil
}

func (c Config) params() geometry.Params {
	return geometry.Params{
		Anchor:            c.Anchor,
		MarginHorizontal:  c.MarginHorizontal,
		MarginVertical:    c.MarginVertical,
		LogoWidthPercent:  c.LogoWidthPercent,
		Plate:             c.Background.Enabled,
		PaddingHorizontal: c.Background.PaddingHorizontal,
		PaddingVertical:   c.Background.PaddingVertical,
	}
}

// plateColor returns the background fill and whether the configured colour parsed.
func (c Config) plateColor() (render.RGB, bool) {
	rgb := render.ParseHex(c.Background.Color)
	return rgb, rgb.Valid()
}
