package raster

// zeroLengthEpsilon is the minimum segment length considered non-
// degenerate for stroke offsetting (spec.md §4.1: "degenerate
// zero-length segments are skipped").
const zeroLengthEpsilon = 1e-9

// offsetSeg is one segment of a flattened subpath together with its
// unit left normal, precomputed once for both the forward and
// reverse offset passes. Grounded on the teacher's strokeSegment
// (seehuhn-go-render/stroke.go), trimmed to the three fields this
// spec's offset construction actually needs (A, B and the normal);
// the teacher's per-segment tangent is not needed separately here
// because no join/cap geometry references it.
type offsetSeg struct {
	A, B Point
	N    Point // unit normal, 90° CCW from A->B
}

// buildOffsetSegs turns a subpath's points into offsettable segments,
// skipping degenerate zero-length ones. For a closed subpath this
// includes the wraparound segment from the last point back to the
// first.
func buildOffsetSegs(pts []Point, closed bool) []offsetSeg {
	n := len(pts)
	if n < 2 {
		return nil
	}
	limit := n - 1
	if closed {
		limit = n
	}
	segs := make([]offsetSeg, 0, limit)
	for i := 0; i < limit; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		d := b.Sub(a)
		length := d.Length()
		if length < zeroLengthEpsilon {
			continue
		}
		t := d.Scale(1 / length)
		normal := Point{-t.Y, t.X}
		segs = append(segs, offsetSeg{A: a, B: b, N: normal})
	}
	return segs
}

// StrokeOutline builds the fill region covering the stroked ink of
// subpaths at half-width width/2 (spec.md §4.1). Each input subpath
// produces one closed outline (open subpaths, butt ends) or two
// nested closed outlines forming an annulus (closed subpaths). The
// result is meant to be filled with the non-zero rule: no miter/round
// join or cap geometry is synthesized at offset vertices — consecutive
// offset points are left to be joined by the straight connector the
// polygon representation implies, which spec.md §4.1 calls "acceptable
// for small angles" and explicitly the only join behavior in scope
// (stroke joins/caps beyond a butt/miter-less offset are a Non-goal).
func StrokeOutline(subpaths []Subpath, width float64) []Subpath {
	hw := width / 2
	var out []Subpath
	for _, sp := range subpaths {
		segs := buildOffsetSegs(sp.Points, sp.Closed)
		if len(segs) == 0 {
			continue
		}

		if sp.Closed {
			fwd := make([]Point, 0, 2*len(segs))
			for _, s := range segs {
				off := s.N.Scale(hw)
				fwd = append(fwd, s.A.Add(off), s.B.Add(off))
			}
			rev := make([]Point, 0, 2*len(segs))
			for i := len(segs) - 1; i >= 0; i-- {
				s := segs[i]
				off := s.N.Scale(hw)
				rev = append(rev, s.B.Sub(off), s.A.Sub(off))
			}
			out = append(out, Subpath{Points: fwd, Closed: true})
			out = append(out, Subpath{Points: rev, Closed: true})
			continue
		}

		ring := make([]Point, 0, 4*len(segs))
		for _, s := range segs {
			off := s.N.Scale(hw)
			ring = append(ring, s.A.Add(off), s.B.Add(off))
		}
		for i := len(segs) - 1; i >= 0; i-- {
			s := segs[i]
			off := s.N.Scale(hw)
			ring = append(ring, s.B.Sub(off), s.A.Sub(off))
		}
		out = append(out, Subpath{Points: ring, Closed: true})
	}
	return out
}
