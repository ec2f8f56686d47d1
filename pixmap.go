package raster

import (
	"image"
	"image/color"
)

// Pixmap is a rectangular buffer of premultiplied float32 colors, the
// rendering target of a Scene (spec.md §3). A Pixmap with non-positive
// Width or Height is the degenerate case (ErrDegenerateScene): it
// holds no pixels and every read returns Transparent.
type Pixmap struct {
	Width, Height int
	Pix           []Color
}

// NewPixmap returns a Pixmap of the given size, cleared to
// Transparent. Non-positive dimensions yield a degenerate, zero-pixel
// Pixmap (spec.md §7: ErrDegenerateScene) rather than panicking.
func NewPixmap(width, height int) *Pixmap {
	if width <= 0 || height <= 0 {
		return &Pixmap{}
	}
	return &Pixmap{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// inBounds reports whether (x, y) is a valid pixel coordinate.
func (p *Pixmap) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.Width && y < p.Height
}

// ColorAt returns the accumulated premultiplied color at (x, y), or
// Transparent if out of bounds.
func (p *Pixmap) ColorAt(x, y int) Color {
	if !p.inBounds(x, y) {
		return Transparent
	}
	return p.Pix[y*p.Width+x]
}

// AddPixel accumulates c additively into the pixel at (x, y), with no
// clamping (spec.md §4.5: coverage-weighted contributions from
// multiple shapes within a pixel are summed, not overwritten). Out-of-
// bounds coordinates are ignored.
func (p *Pixmap) AddPixel(x, y int, c Color) {
	if !p.inBounds(x, y) {
		return
	}
	i := y*p.Width + x
	p.Pix[i] = p.Pix[i].Add(c)
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model { return color.NRGBA64Model }

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// At implements image.Image (spec.md §6): it unpremultiplies the
// accumulated color and converts it to a standard library color.Color,
// so a Pixmap can be handed to anything that accepts an image.Image
// (e.g. image/png, image/draw) without this package taking on a
// dependency on any particular container format.
func (p *Pixmap) At(x, y int) color.Color {
	c := p.ColorAt(x, y).Unpremultiply()
	return color.NRGBA64{
		R: uint16(clamp01(c.R) * 0xffff),
		G: uint16(clamp01(c.G) * 0xffff),
		B: uint16(clamp01(c.B) * 0xffff),
		A: uint16(clamp01(c.A) * 0xffff),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
