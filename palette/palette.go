// Package palette maps percentage changes to bubble colors.
package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Default endpoints and saturation point.
var (
	Neutral  = MustParseHex("#A9A9A9")
	Positive = MustParseHex("#32CD32")
	Negative = MustParseHex("#FF4500")
)

// DefaultMaxChange is the absolute change (percent) at which colors saturate.
const DefaultMaxChange = 10.0

// Mapper interpolates from a neutral color toward a positive or negative color
// by the magnitude of a percentage change.
type Mapper struct {
	Neutral   Color
	Positive  Color
	Negative  Color
	MaxChange float64
}

// DefaultMapper returns the mapper used by ColorFor.
func DefaultMapper() Mapper {
	return Mapper{
		Neutral:   Neutral,
		Positive:  Positive,
		Negative:  Negative,
		MaxChange: DefaultMaxChange,
	}
}

// For returns the color for a change value.
// Zero maps to the neutral color exactly; beyond ±MaxChange the color saturates.
func (m Mapper) For(change float64) Color {
	maxChange := m.MaxChange
	if maxChange <= 0 {
		maxChange = DefaultMaxChange
	}
	intensity := math.Min(math.Abs(change)/maxChange, 1.0)

	switch {
	case change > 0:
		return Lerp(m.Neutral, m.Positive, intensity)
	case change < 0:
		return Lerp(m.Neutral, m.Negative, intensity)
	default:
		return m.Neutral
	}
}

// ColorFor maps a change with the default palette.
func ColorFor(change float64) Color {
	return DefaultMapper().For(change)
}

// Lerp linearly interpolates each channel from a to b by t.
func Lerp(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// RGBA8 returns 8-bit channels with the given alpha in [0, 1].
func (c Color) RGBA8(alpha float64) (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(alpha)
}

// Hex formats the color as #RRGGBB.
func (c Color) Hex() string {
	r, g, b, _ := c.RGBA8(1)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// ParseHex parses #RGB or #RRGGBB (leading # optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("palette: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("palette: invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// MustParseHex is like ParseHex but panics on error.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
