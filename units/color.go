package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA" with optional leading '#'.
func Hex(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	var r, g, b, a uint64
	a = 255

	var err error
	switch len(s) {
	case 3, 4:
		var parts [4]uint64
		parts[3] = 15
		for i := range len(s) {
			if parts[i], err = strconv.ParseUint(s[i:i+1], 16, 8); err != nil {
				return Color{}, fmt.Errorf("color %q: %w", hex, ErrInvalidArgument)
			}
		}
		r, g, b, a = parts[0]*17, parts[1]*17, parts[2]*17, parts[3]*17
	case 6, 8:
		var parts [4]uint64
		parts[3] = 255
		for i := 0; i < len(s); i += 2 {
			if parts[i/2], err = strconv.ParseUint(s[i:i+2], 16, 8); err != nil {
				return Color{}, fmt.Errorf("color %q: %w", hex, ErrInvalidArgument)
			}
		}
		r, g, b, a = parts[0], parts[1], parts[2], parts[3]
	default:
		return Color{}, fmt.Errorf("color %q: %w", hex, ErrInvalidArgument)
	}

	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// MustHex is like Hex but panics on malformed input. Intended for package
// level palettes.
func MustHex(hex string) Color {
	c, err := Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// HSL creates a color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB(r+m, g+m, b+m)
}

// WithAlpha returns a copy of the color with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// IsOpaque reports whether alpha is at its maximum.
func (c Color) IsOpaque() bool {
	return to255(c.A) == 255
}

// String returns CSS text: #rrggbb for opaque colors, rgba() otherwise.
func (c Color) String() string {
	if c.IsOpaque() {
		return fmt.Sprintf("#%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B))
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", to255(c.R), to255(c.G), to255(c.B),
		strconv.FormatFloat(math.Round(clamp01(c.A)*1000)/1000, 'f', -1, 64))
}

func to255(x float64) uint8 {
	return uint8(math.Round(clamp01(x) * 255))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA(0, 0, 0, 0)
)
