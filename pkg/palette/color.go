// Package palette holds the colors used to draw graphs: an RGBA [Color]
// type that serializes as "#RRGGBBAA" and the default workbench [Palette].
//
// Vertices and edges store a color index rather than a color. Index -1
// means "uncolored"; any other index selects from [Palette.Elements],
// wrapping around when it exceeds the palette size.
package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight (non-premultiplied) alpha.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

// HSB converts hue, saturation and brightness (all in [0, 1]) to an opaque
// color. The hue wraps.
func HSB(hue, saturation, brightness float64) Color {
	return fromColorful(colorful.Hsv((hue-math.Floor(hue))*360, saturation, brightness), 255)
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, alpha uint8) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b, alpha}
}

// Hex returns the color as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// CSS returns the color as an SVG/CSS rgb() or rgba() value.
func (c Color) CSS() string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// ParseHex parses "#RRGGBBAA" or "#RRGGBB" (opaque). The leading '#' is
// optional.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xFF
	}
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// MustParseHex is like ParseHex but panics on error.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Blend mixes two colors weighted by their alpha channels. The result takes
// the larger of the two alphas. Two fully transparent colors blend to
// transparent black.
func Blend(c0, c1 Color) Color {
	total := float64(c0.A) + float64(c1.A)
	if total == 0 {
		return Color{}
	}
	return fromColorful(c0.toColorful().BlendRgb(c1.toColorful(), float64(c1.A)/total), max(c0.A, c1.A))
}
