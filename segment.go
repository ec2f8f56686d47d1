package raster

// Segment is an oriented straight edge of a shape (spec.md §3). P0 is
// the segment's start and P1 its end as originally wound; Direction is
// +1 if P0.Y < P1.Y and -1 otherwise. ShapeIndex is an arena index into
// the owning Scene's Shapes slice (spec.md §9: "edges cite the owning
// shape by an arena index ..., not by raw pointer").
type Segment struct {
	P0, P1     Point
	Direction  int8
	ShapeIndex int
}

// horizontalEpsilon is the minimum vertical extent a segment must have
// to be admitted into the rasterizer. Segments with |y1-y0| below this
// threshold are dropped as horizontal (invariant I1).
const horizontalEpsilon = 1e-9

// newSegment builds a directed Segment from a to b, or reports ok=false
// if the segment is horizontal (or degenerate) and must not enter the
// rasterizer (I1).
func newSegment(a, b Point, shapeIndex int) (Segment, bool) {
	if dy := b.Y - a.Y; dy > -horizontalEpsilon && dy < horizontalEpsilon {
		return Segment{}, false
	}
	dir := int8(1)
	if b.Y < a.Y {
		dir = -1
	}
	return Segment{P0: a, P1: b, Direction: dir, ShapeIndex: shapeIndex}, true
}

// yMin and yMax return the segment's y-extent in sorted order.
func (s Segment) yMin() float64 {
	if s.P0.Y < s.P1.Y {
		return s.P0.Y
	}
	return s.P1.Y
}

func (s Segment) yMax() float64 {
	if s.P0.Y > s.P1.Y {
		return s.P0.Y
	}
	return s.P1.Y
}

// slope returns m of the segment's line x(y) = m*y + x0, and xAtY
// evaluates that line at y. The line is defined by the segment's two
// endpoints regardless of winding direction (spec.md §3: "Line ...
// x(y) = m*y + x0").
func (s Segment) slope() float64 {
	return (s.P1.X - s.P0.X) / (s.P1.Y - s.P0.Y)
}

func (s Segment) xAtY(y float64) float64 {
	return s.P0.X + s.slope()*(y-s.P0.Y)
}
