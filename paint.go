package raster

import (
	"math"
	"slices"
)

// Paint evaluates a color at a point in its own defining space
// (spec.md §3). Implementations must be pure: deterministic, no
// state (spec.md §4.3).
type Paint interface {
	Eval(p Point) Color
}

// Solid is a constant-color paint.
type Solid struct {
	Color Color
}

// Eval implements Paint.
func (s Solid) Eval(Point) Color { return s.Color }

// Stop is one gradient color stop, with Pos ascending within a
// gradient's Stops slice.
type Stop struct {
	Pos   float64
	Color Color
}

// lookupStops resolves t to a color via binary search on ascending
// Pos, clamping outside the stop range and linearly interpolating
// between the bracketing stops otherwise (spec.md §4.3, P7). An empty
// stop table is the EmptyGradient case and evaluates to transparent
// black (spec.md §7).
func lookupStops(stops []Stop, t float64) Color {
	if len(stops) == 0 {
		return Transparent
	}
	if t <= stops[0].Pos {
		return stops[0].Color
	}
	last := len(stops) - 1
	if t >= stops[last].Pos {
		return stops[last].Color
	}

	i, found := slices.BinarySearchFunc(stops, t, func(s Stop, t float64) int {
		if s.Pos < t {
			return -1
		}
		if s.Pos > t {
			return 1
		}
		return 0
	})
	if found {
		return stops[i].Color
	}
	// i is the index of the first stop with Pos > t; i-1 is the last
	// stop with Pos < t. Both exist because t is strictly between the
	// table's endpoints at this point.
	lo, hi := stops[i-1], stops[i]
	frac := (t - lo.Pos) / (hi.Pos - lo.Pos)
	return lerpColor(lo.Color, hi.Color, frac)
}

func lerpColor(a, b Color, t float64) Color {
	ft := float32(t)
	return Color{
		R: a.R + ft*(b.R-a.R),
		G: a.G + ft*(b.G-a.G),
		B: a.B + ft*(b.B-a.B),
		A: a.A + ft*(b.A-a.A),
	}
}

// LinearGradient is a linear gradient paint evaluated in its own
// defining space (spec.md §3, §4.3). Stops must be sorted ascending
// by Pos.
type LinearGradient struct {
	Start, End Point
	Stops      []Stop
}

// Eval implements Paint.
func (g *LinearGradient) Eval(p Point) Color {
	d := g.End.Sub(g.Start)
	denom := d.Dot(d)
	if denom == 0 {
		return lookupStops(g.Stops, 0)
	}
	t := p.Sub(g.Start).Dot(d) / denom
	return lookupStops(g.Stops, t)
}

// RadialGradient is a conical-gradient radial paint with focal offset
// (spec.md §3, §4.3).
type RadialGradient struct {
	C, F  Point
	R, FR float64
	Stops []Stop
}

// Eval implements Paint, solving the conical-gradient quadratic
// exactly as spec.md §4.3 specifies.
func (g *RadialGradient) Eval(p Point) Color {
	cf := g.C.Sub(g.F)
	dr := g.R - g.FR
	A := cf.Dot(cf) - dr*dr

	fp := g.F.Sub(p)
	B := cf.Dot(fp) - g.FR*dr
	C := fp.Dot(fp) - g.FR*g.FR

	var t float64
	if A == 0 {
		if B == 0 {
			return Transparent
		}
		t = -C / (2 * B)
	} else {
		D := B*B - A*C
		if D < 0 {
			return Transparent
		}
		sq := math.Sqrt(D)
		if g.FR > g.R {
			t = (-B + sq) / A
		} else {
			t = (-B - sq) / A
		}
	}
	return lookupStops(g.Stops, t)
}

// opacityPaint scales a wrapped paint's result by a constant opacity
// (spec.md §3: "Opacity wrapper").
type opacityPaint struct {
	wrapped Paint
	opacity float32
}

func (o opacityPaint) Eval(p Point) Color {
	return o.wrapped.Eval(p).Scale(o.opacity)
}

// WithOpacity wraps p so that every evaluated color is scaled by
// opacity. An opacity of 1 returns p unchanged.
func WithOpacity(p Paint, opacity float64) Paint {
	if opacity >= 1 {
		return p
	}
	if opacity <= 0 {
		return Solid{Transparent}
	}
	return opacityPaint{wrapped: p, opacity: float32(opacity)}
}

// transformedPaint evaluates a wrapped paint at t.Apply(p) (spec.md
// §3: "Transform wrapper"), used to bake a gradient's own user space
// into device space so PaintServer.Paint can hand back a Paint that
// Eval's correctly at device-space points.
type transformedPaint struct {
	wrapped Paint
	t       Transform
}

func (tp transformedPaint) Eval(p Point) Color {
	return tp.wrapped.Eval(tp.t.Apply(p))
}

// PaintServer is a factory that, given the shape's current user
// transform, yields a concrete Paint (spec.md §3, §9). Gradient
// servers wrap the gradient in the transform's inverse so evaluation
// happens in the gradient's own defining (user) space.
//
// gradientUnits is always treated as userSpaceOnUse; objectBoundingBox
// semantics are not implemented (spec.md §9, Open Question) — a
// PaintServer is only ever handed the current CTM, never the target
// shape's bounding box, so there is nothing to normalize against.
type PaintServer interface {
	Paint(userTransform Transform) Paint
}

// SolidServer is a PaintServer for a constant color; it ignores the
// user transform.
type SolidServer struct {
	Color Color
}

// Paint implements PaintServer.
func (s SolidServer) Paint(Transform) Paint { return Solid{s.Color} }

// LinearGradientServer is a PaintServer for a LinearGradient defined
// in user space.
type LinearGradientServer struct {
	Start, End Point
	Stops      []Stop
}

// Paint implements PaintServer. If userTransform is singular, the
// gradient evaluates to transparent black everywhere (spec.md §7:
// SingularTransform).
func (g LinearGradientServer) Paint(userTransform Transform) Paint {
	inv, ok := userTransform.Invert()
	if !ok {
		return Solid{Transparent}
	}
	return transformedPaint{
		wrapped: &LinearGradient{Start: g.Start, End: g.End, Stops: g.Stops},
		t:       inv,
	}
}

// RadialGradientServer is a PaintServer for a RadialGradient defined
// in user space.
type RadialGradientServer struct {
	C, F  Point
	R, FR float64
	Stops []Stop
}

// Paint implements PaintServer. If userTransform is singular, the
// gradient evaluates to transparent black everywhere (spec.md §7:
// SingularTransform).
func (g RadialGradientServer) Paint(userTransform Transform) Paint {
	inv, ok := userTransform.Invert()
	if !ok {
		return Solid{Transparent}
	}
	return transformedPaint{
		wrapped: &RadialGradient{C: g.C, F: g.F, R: g.R, FR: g.FR, Stops: g.Stops},
		t:       inv,
	}
}
