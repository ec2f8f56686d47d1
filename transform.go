package raster

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a 2x3 affine transform from user space to device (or
// gradient) space:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// It wraps golang.org/x/image/math/f64.Aff3, the affine-transform type
// already used throughout the golang.org/x/image ecosystem, storing
// the six coefficients in the order [a, b, c, d, e, f] to match how
// this module's teacher indexes its own CTM (raster.go: addEdge).
type Transform f64.Aff3

// Identity is the identity transform.
var Identity = Transform{1, 0, 0, 1, 0, 0}

// Translate returns a transform that translates by (dx, dy).
func Translate(dx, dy float64) Transform {
	return Transform{1, 0, 0, 1, dx, dy}
}

// Scale returns a transform that scales by (sx, sy).
func Scale(sx, sy float64) Transform {
	return Transform{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a transform that rotates by theta radians
// counterclockwise.
func Rotate(theta float64) Transform {
	c, s := math.Cos(theta), math.Sin(theta)
	return Transform{c, s, -s, c, 0, 0}
}

// Compose returns the transform that applies t first, then u:
// Compose(t, u).Apply(p) == u.Apply(t.Apply(p)).
func Compose(t, u Transform) Transform {
	return Transform{
		t[0]*u[0] + t[1]*u[2],
		t[0]*u[1] + t[1]*u[3],
		t[2]*u[0] + t[3]*u[2],
		t[2]*u[1] + t[3]*u[3],
		t[4]*u[0] + t[5]*u[2] + u[4],
		t[4]*u[1] + t[5]*u[3] + u[5],
	}
}

// Apply transforms p by t.
func (t Transform) Apply(p Point) Point {
	return Point{
		t[0]*p.X + t[2]*p.Y + t[4],
		t[1]*p.X + t[3]*p.Y + t[5],
	}
}

// ApplyLinear applies only the 2x2 linear part of t, ignoring
// translation.
func (t Transform) ApplyLinear(p Point) Point {
	return Point{
		t[0]*p.X + t[2]*p.Y,
		t[1]*p.X + t[3]*p.Y,
	}
}

// Det returns the determinant of the linear part of t.
func (t Transform) Det() float64 {
	return t[0]*t[3] - t[1]*t[2]
}

// Invert returns the inverse of t. ok is false if t is singular, in
// which case the returned transform is the zero value and must not be
// used (spec.md §7: SingularTransform).
func (t Transform) Invert() (inv Transform, ok bool) {
	det := t.Det()
	if det == 0 || math.IsNaN(det) {
		return Transform{}, false
	}
	invDet := 1 / det
	a, b, c, d, e, f := t[0], t[1], t[2], t[3], t[4], t[5]
	inv = Transform{
		d * invDet,
		-b * invDet,
		-c * invDet,
		a * invDet,
		(c*f - d*e) * invDet,
		(b*e - a*f) * invDet,
	}
	return inv, true
}
