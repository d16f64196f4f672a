package render

import (
	"image/color"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorGrid    = color.RGBA{0x33, 0x33, 0x33, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return color.RGBA{r, g, b, a}
}

// ARGB unpacks a 0xAARRGGBB value.
func ARGB(v uint32) Color {
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// PackARGB packs c as 0xAARRGGBB.
func PackARGB(c Color) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// WithIntensity scales the red, green and blue channels by f, clamped to
// [0, 1]. Channels are truncated; alpha is preserved.
func WithIntensity(c Color, f float64) Color {
	f = clamp01(f)
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Light is a single directional light, constant for a session.
type Light struct {
	Direction math3d.Vec3
}

// DefaultLight points down, right and into the screen.
func DefaultLight() Light {
	return Light{Direction: math3d.V3(0.25, -0.5, 0.25)}
}

// Intensity returns the flat-shading factor for a face with the given
// outward normal: faces turned toward the light source get up to 1, faces
// turned away get 0.
func (l Light) Intensity(normal math3d.Vec3) float64 {
	return clamp01(-l.Direction.Dot(normal.Normalize()))
}
