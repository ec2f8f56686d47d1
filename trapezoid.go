package raster

import "math"

// trapezoid is the region between two active lines across a y-strip
// [yTop, yBot], each line given by its x at the strip's top and bottom
// edge (spec.md §4.6). Left and Right are the boundary x positions at
// yTop (LeftTop/RightTop) and yBot (LeftBot/RightBot); each boundary is
// allowed to slope independently, so the shape between them is a
// (possibly self-crossing, but here always left<=right) general
// quadrilateral with two horizontal sides.
type trapezoid struct {
	YTop, YBot         float64
	LeftTop, LeftBot   float64
	RightTop, RightBot float64
}

// height returns the strip's vertical extent.
func (t trapezoid) height() float64 { return t.YBot - t.YTop }

// pixelColumnArea returns the area of t's intersection with the pixel
// column [xLeft, xLeft+1) (spec.md §4.6). It is exact: no supersampling
// is involved anywhere in this computation. The column is clipped
// against both of the trapezoid's slanted boundaries by evaluating a
// sub-trapezoid's signed area between the column edges and each
// boundary line, closed-form, rather than sampling points along it.
func pixelColumnArea(t trapezoid, xLeft float64) float64 {
	xRight := xLeft + 1

	// clippedBoundaryArea returns the area between a boundary line (given
	// as x(yTop), x(yBot)) and the vertical line x=xLeft, restricted to
	// the strip and to the column: the integral over the strip of
	// clamp(x(y), xLeft, xRight) - xLeft. Since x is affine in y, this is
	// the strip height times the mean of that clamped offset over x
	// between the two endpoints, taken exactly via its antiderivative g.
	clippedBoundaryArea := func(topX, botX float64) float64 {
		lo, hi := math.Min(topX, botX), math.Max(topX, botX)
		switch {
		case hi <= xLeft:
			return 0
		case lo >= xRight:
			return t.height()
		case hi-lo < 1e-9:
			return (math.Max(xLeft, math.Min(xRight, (lo+hi)/2)) - xLeft) * t.height()
		}
		g := func(x float64) float64 {
			c := math.Max(xLeft, math.Min(xRight, x))
			return (c-xLeft)*(c-xLeft)/2 + math.Max(0, x-xRight)
		}
		return (g(hi) - g(lo)) / (hi - lo) * t.height()
	}

	leftArea := clippedBoundaryArea(t.LeftTop, t.LeftBot)
	rightArea := clippedBoundaryArea(t.RightTop, t.RightBot)
	area := rightArea - leftArea
	if area < 0 {
		return 0
	}
	full := t.height()
	if area > full {
		return full
	}
	return area
}
