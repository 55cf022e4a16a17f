package renderer

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color. The zero value is not a color: use
// ColorDefault for "let the terminal decide" (no SGR color codes
// emitted), matching how tcell treats its own default color.
type Color struct {
	isDefault bool
	r, g, b   uint8
}

// ColorDefault is the terminal's default foreground/background.
var ColorDefault = Color{isDefault: true}

// Named presets for the common ANSI colors, for callers (themes, tests)
// that want a color by name rather than an RGB triple.
var (
	ColorBlack   = ColorFromRGB(0, 0, 0)
	ColorRed     = ColorFromRGB(205, 0, 0)
	ColorGreen   = ColorFromRGB(0, 205, 0)
	ColorYellow  = ColorFromRGB(205, 205, 0)
	ColorBlue    = ColorFromRGB(0, 0, 238)
	ColorMagenta = ColorFromRGB(205, 0, 205)
	ColorCyan    = ColorFromRGB(0, 205, 205)
	ColorWhite   = ColorFromRGB(229, 229, 229)
	ColorGray    = ColorFromRGB(128, 128, 128)
)

// ColorFromRGB builds a truecolor Color from 8-bit components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{r: r, g: g, b: b}
}

// ColorFromHex parses a "#rrggbb" string into a Color.
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("renderer: invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{r: r, g: g, b: b}, nil
}

// RGB returns the color's 8-bit components. ColorDefault returns zeros.
func (c Color) RGB() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// IsDefault reports whether this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.isDefault
}

// Equals returns true if two colors are identical.
func (c Color) Equals(other Color) bool {
	return c == other
}

// Hex returns the "#rrggbb" form, or "" for the default color.
func (c Color) Hex() string {
	if c.isDefault {
		return ""
	}
	return c.colorful().Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.r) / 255,
		G: float64(c.g) / 255,
		B: float64(c.b) / 255,
	}
}

// Blend linearly interpolates toward other in Lab space, t in [0, 1].
// Used to soften overlay highlights (search match, selection) against
// whatever syntax color already occupies a cell, rather than simply
// replacing it. A default color on either side short-circuits to
// whichever side t is nearer (other when t >= 0.5, else c), since there
// is no RGB triple to blend.
func (c Color) Blend(other Color, t float64) Color {
	if c.isDefault || other.isDefault {
		if t >= 0.5 {
			return other
		}
		return c
	}
	blended := c.colorful().BlendLab(other.colorful(), t)
	r, g, b := blended.Clamped().RGB255()
	return Color{r: r, g: g, b: b}
}

// Contrast reports the CIE Lab color distance between two colors, used to pick a readable foreground against a highlight
// background.
func (c Color) Contrast(other Color) float64 {
	return c.colorful().DistanceLab(other.colorful())
}

// ContrastingForeground returns white or black, whichever contrasts
// more strongly against c as a background.
func ContrastingForeground(bg Color) Color {
	if bg.IsDefault() {
		return ColorDefault
	}
	white := ColorFromRGB(255, 255, 255)
	black := ColorFromRGB(0, 0, 0)
	if bg.Contrast(white) >= bg.Contrast(black) {
		return white
	}
	return black
}
