package render

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// RGB holds colour channels in [0,255]. A channel that could not be parsed is NaN.
type RGB struct {
	R, G, B float64
}

// ParseHex reads "#RRGGBB" (the leading '#' is optional).
// A malformed string yields NaN in every channel instead of an error.
func ParseHex(s string) RGB {
	if !hexPattern.MatchString(s) {
		nan := math.NaN()
		return RGB{R: nan, G: nan, B: nan}
	}
	s = strings.TrimPrefix(s, "#")
	return RGB{R: channel(s[0:2]), G: channel(s[2:4]), B: channel(s[4:6])}
}

func channel(pair string) float64 {
	v, err := strconv.ParseUint(pair, 16, 8)
	if err != nil {
		return math.NaN()
	}
	return float64(v)
}

func (c RGB) Valid() bool {
	return !math.IsNaN(c.R) && !math.IsNaN(c.G) && !math.IsNaN(c.B)
}

// CSS formats c as an rgba() fill string, e.g. "rgba(0,255,0,0.5)" or
// "rgba(NaN,NaN,NaN,0.5)".
func (c RGB) CSS(opacity float64) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return fmt.Sprintf("rgba(%s,%s,%s,%s)", f(c.R), f(c.G), f(c.B), f(opacity))
}

// PlateColor converts c and opacity to a straight-alpha colour.
// NaN channels render as 0.
func PlateColor(c RGB, opacity float64) color.NRGBA {
	return color.NRGBA{
		R: clip8(c.R),
		G: clip8(c.G),
		B: clip8(c.B),
		A: clip8(opacity * 255),
	}
}

func clip8(v float64) uint8 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(math.Round(v))
}
