package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

func TestWithIntensity(t *testing.T) {
	base := RGBA(200, 100, 51, 128)
	tests := []struct {
		name string
		f    float64
		want Color
	}{
		{"full", 1, RGBA(200, 100, 51, 128)},
		{"half", 0.5, RGBA(100, 50, 25, 128)},
		{"zero", 0, RGBA(0, 0, 0, 128)},
		{"clamped high", 3, RGBA(200, 100, 51, 128)},
		{"clamped low", -0.5, RGBA(0, 0, 0, 128)},
		{"nan", math.NaN(), RGBA(0, 0, 0, 128)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WithIntensity(base, tc.f); got != tc.want {
				t.Errorf("WithIntensity(%v) = %v, want %v", tc.f, got, tc.want)
			}
		})
	}
}

func TestARGB(t *testing.T) {
	if got := ARGB(0xFF333333); got != ColorGrid {
		t.Errorf("ARGB(0xFF333333) = %v, want %v", got, ColorGrid)
	}
	if got := ARGB(0x80102030); got != RGBA(0x10, 0x20, 0x30, 0x80) {
		t.Errorf("ARGB = %v", got)
	}
	if got := PackARGB(RGBA(0x10, 0x20, 0x30, 0x80)); got != 0x80102030 {
		t.Errorf("PackARGB = %#x, want 0x80102030", got)
	}
}

func TestLightIntensity(t *testing.T) {
	light := DefaultLight()
	tests := []struct {
		name   string
		normal math3d.Vec3
		want   float64
	}{
		{"toward viewer", math3d.V3(0, 0, -1), 0.25},
		{"unnormalized", math3d.V3(0, 0, -7), 0.25},
		{"facing up into the light", math3d.V3(0, 1, 0), 0.5},
		{"facing away", math3d.V3(0, 0, 1), 0},
		{"zero normal", math3d.Vec3{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := light.Intensity(tc.normal); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Intensity(%v) = %v, want %v", tc.normal, got, tc.want)
			}
		})
	}

	// A light longer than unit length still saturates at 1.
	strong := Light{Direction: math3d.V3(0, -4, 0)}
	if got := strong.Intensity(math3d.V3(0, 1, 0)); got != 1 {
		t.Errorf("strong light intensity = %v, want 1", got)
	}
}
