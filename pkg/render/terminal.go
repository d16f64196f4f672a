package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen, making Framebuffer a uv.Drawable. Each cell is an upper half block
// with the foreground as the top pixel and the background as the bottom one.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.Pixel(col, topY)),
					Bg: rgbaToColor(fb.Pixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor maps fully transparent pixels to "no color".
func rgbaToColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalPresenter shows a Framebuffer on an ultraviolet terminal.
type TerminalPresenter struct {
	term *uv.Terminal
}

// NewTerminalPresenter wraps a started terminal.
func NewTerminalPresenter(term *uv.Terminal) *TerminalPresenter {
	return &TerminalPresenter{term: term}
}

// FramebufferSize returns the pixel size matching a terminal of cols x rows
// cells.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Present draws fb into the terminal's back buffer and flushes the changes.
func (p *TerminalPresenter) Present(fb *Framebuffer) error {
	p.term.Draw(fb)
	return p.term.Display()
}
