// Package render turns meshes into pixels: a geometry pipeline that projects
// and shades whole faces, a depth sorter that orders them back to front, and
// a scan-line rasterizer that fills them into a Surface.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Surface is a pixel sink. SetPixel silently ignores coordinates outside
// [0, Width) x [0, Height).
type Surface interface {
	Width() int
	Height() int
	SetPixel(x, y int, c Color)
}

// Framebuffer is a CPU-owned, row-major pixel buffer. It is the Surface the
// viewer and snapshot paths render into.
type Framebuffer struct {
	width  int
	height int
	Pixels []Color
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// For terminal presentation height should be 2x the terminal rows, since
// every cell shows two pixels.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		width:  width,
		height: height,
		Pixels: make([]Color, width*height),
	}
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Resize changes the dimensions, reusing the pixel slice when it is large
// enough. Contents are undefined afterwards; callers clear every frame.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	if cap(fb.Pixels) < n {
		fb.Pixels = make([]Color, n)
	}
	fb.Pixels = fb.Pixels[:n]
	fb.width, fb.height = width, height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out-of-range coordinates are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.Pixels[y*fb.width+x] = c
}

// Pixel returns the color at (x, y), or transparent black if out of bounds.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Color{}
	}
	return fb.Pixels[y*fb.width+x]
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.width+x])
		}
	}
	return img
}

// Save writes the framebuffer to path. The format follows the extension:
// .png or .bmp.
func (fb *Framebuffer) Save(path string) error {
	var encode func(f *os.File, img image.Image) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = func(f *os.File, img image.Image) error { return png.Encode(f, img) }
	case ".bmp":
		encode = func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }
	default:
		return fmt.Errorf("save %s: unsupported image format %q", path, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	Logger().Info("snapshot written", "path", path, "width", fb.width, "height", fb.height)
	return nil
}
