package raster

// Color is a straight-premultiplied RGBA color in linear light,
// stored as four float32 channels (spec.md §3). R, G, B are
// premultiplied by A; 0<=channel<=1 except transiently inside the
// rasterizer's blending accumulator, where over-range values are
// tolerated until the pixmap is unpremultiplied for output (I3).
type Color struct {
	R, G, B, A float32
}

// Transparent is the zero color: fully transparent black.
var Transparent = Color{}

// Scale returns c with every channel, including alpha, multiplied by
// f.
func (c Color) Scale(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}

// Add returns the componentwise sum of c and d.
func (c Color) Add(d Color) Color {
	return Color{c.R + d.R, c.G + d.G, c.B + d.B, c.A + d.A}
}

// Over composites src over dst using the Porter-Duff "over" operator
// on premultiplied colors: blend(dst, src) = src + dst*(1-src.a).
func Over(dst, src Color) Color {
	return src.Add(dst.Scale(1 - src.A))
}

// Unpremultiply divides R, G, B by A. A zero-alpha color unpremultiplies
// to (0,0,0,0).
func (c Color) Unpremultiply() Color {
	if c.A == 0 {
		return Transparent
	}
	inv := 1 / c.A
	return Color{c.R * inv, c.G * inv, c.B * inv, c.A}
}
