package raster

import "math"

// pathCmdKind identifies the kind of a recorded path command.
type pathCmdKind int8

const (
	cmdMove pathCmdKind = iota
	cmdLine
	cmdQuad
	cmdCurve
	cmdClose
)

// pathCmd is one recorded drawing command. Only the fields relevant to
// kind are meaningful: move/line use p1; quad uses p1,p2; curve uses
// p1,p2,p3; close uses none.
type pathCmd struct {
	kind       pathCmdKind
	p1, p2, p3 Point
}

// Path is an ordered sequence of subpaths, built with a move/line/
// curve/quadratic/arc/close API (spec.md §3). Arcs are expanded to
// cubic Bézier commands immediately, at ArcTo time, in the path's
// current coordinate space — so a Path never needs to transform an
// arc as a unit (transforming the endpoint-parameterized form of an
// ellipse under a general affine map is a harder problem this spec
// does not ask for).
type Path struct {
	cmds  []pathCmd
	cur   Point // current point
	start Point // start of the current subpath
	open  bool  // a subpath has been started (MoveTo seen) and not yet closed
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// CurrentPoint returns the path's current point: the endpoint of the
// last command, or (0,0) for an empty path (spec.md §3).
func (p *Path) CurrentPoint() Point {
	return p.cur
}

// MoveTo starts a new subpath at pt.
func (p *Path) MoveTo(pt Point) {
	p.cmds = append(p.cmds, pathCmd{kind: cmdMove, p1: pt})
	p.cur = pt
	p.start = pt
	p.open = true
}

// LineTo appends a straight segment from the current point to pt.
func (p *Path) LineTo(pt Point) {
	if !p.open {
		p.MoveTo(pt)
		return
	}
	p.cmds = append(p.cmds, pathCmd{kind: cmdLine, p1: pt})
	p.cur = pt
}

// QuadTo appends a quadratic Bézier segment with control point c1 and
// endpoint end.
func (p *Path) QuadTo(c1, end Point) {
	if !p.open {
		p.MoveTo(end)
		return
	}
	p.cmds = append(p.cmds, pathCmd{kind: cmdQuad, p1: c1, p2: end})
	p.cur = end
}

// CurveTo appends a cubic Bézier segment with control points c1, c2
// and endpoint end.
func (p *Path) CurveTo(c1, c2, end Point) {
	if !p.open {
		p.MoveTo(end)
		return
	}
	p.cmds = append(p.cmds, pathCmd{kind: cmdCurve, p1: c1, p2: c2, p3: end})
	p.cur = end
}

// ClosePath marks the current subpath as closed and moves the current
// point back to the subpath's start, synthesizing a straight closing
// segment if the current point isn't already there.
func (p *Path) ClosePath() {
	if !p.open {
		return
	}
	if p.cur != p.start {
		p.cmds = append(p.cmds, pathCmd{kind: cmdLine, p1: p.start})
	}
	p.cmds = append(p.cmds, pathCmd{kind: cmdClose})
	p.cur = p.start
	p.open = false
}

// ArcTo appends an elliptical arc from the current point to end, using
// the SVG endpoint parameterization (rx, ry, x-axis rotation in
// radians, large-arc and sweep flags). The arc is expanded to one or
// more cubic Bézier commands, each spanning at most π/2 of the arc,
// using the standard h = (4/3)tan(Δ/4) handle-length construction
// (spec.md §4.1). A zero-radius (or otherwise degenerate) arc
// degenerates to a straight LineTo, matching the SVG spec's own
// fallback.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, end Point) {
	if !p.open {
		p.MoveTo(end)
		return
	}
	p0 := p.cur
	rx = math.Abs(rx)
	ry = math.Abs(ry)
	if rx == 0 || ry == 0 || p0 == end {
		p.LineTo(end)
		return
	}

	cosPhi, sinPhi := math.Cos(rotation), math.Sin(rotation)

	// Step 1: compute (x1', y1'), the midpoint in the rotated frame.
	dx2, dy2 := (p0.X-end.X)/2, (p0.Y-end.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Ensure radii are large enough (SVG F.6.6 correction step).
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: compute (cx', cy').
	sign := 1.0
	if largeArc == sweep {
		sign = -1.0
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den > 0 && num > 0 {
		co = sign * math.Sqrt(num/den)
	}
	cxp := co * (rx * y1p / ry)
	cyp := co * (-ry * x1p / rx)

	// Step 3: compute the center in the original frame.
	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+end.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+end.Y)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lu := math.Hypot(ux, uy)
		lv := math.Hypot(vx, vy)
		cosA := dot / (lu * lv)
		cosA = math.Max(-1, math.Min(1, cosA))
		a := math.Acos(cosA)
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	// Slice into pieces of at most π/2 and emit cubic approximations.
	n := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	delta := dTheta / float64(n)

	ellipsePoint := func(theta float64) Point {
		x := cx + rx*math.Cos(theta)*cosPhi - ry*math.Sin(theta)*sinPhi
		y := cy + rx*math.Cos(theta)*sinPhi + ry*math.Sin(theta)*cosPhi
		return Point{x, y}
	}
	ellipseDeriv := func(theta float64) Point {
		dx := -rx*math.Sin(theta)*cosPhi - ry*math.Cos(theta)*sinPhi
		dy := -rx*math.Sin(theta)*sinPhi + ry*math.Cos(theta)*cosPhi
		return Point{dx, dy}
	}

	h := 4.0 / 3.0 * math.Tan(delta/4)
	theta := theta1
	cur := p0
	for i := 0; i < n; i++ {
		next := theta + delta
		if i == n-1 {
			// Avoid accumulated floating point drift on the last slice.
			p1 := cur.Add(ellipseDeriv(theta).Scale(h))
			p2 := end.Sub(ellipseDeriv(next).Scale(h))
			p.CurveTo(p1, p2, end)
			cur = end
		} else {
			endPt := ellipsePoint(next)
			p1 := cur.Add(ellipseDeriv(theta).Scale(h))
			p2 := endPt.Sub(ellipseDeriv(next).Scale(h))
			p.CurveTo(p1, p2, endPt)
			cur = endPt
		}
		theta = next
	}
}

// Transformed returns a new Path with every control point mapped
// through t. Curve commands remain curve commands: since arcs are
// expanded to cubics at ArcTo time, a Path only ever contains move,
// line, quad and cubic commands, all of which transform pointwise
// under an affine map (spec.md §4.2: "applies the transform to each
// control point before flattening").
func (p *Path) Transformed(t Transform) *Path {
	out := &Path{cmds: make([]pathCmd, len(p.cmds))}
	for i, c := range p.cmds {
		nc := c
		switch c.kind {
		case cmdMove, cmdLine:
			nc.p1 = t.Apply(c.p1)
		case cmdQuad:
			nc.p1 = t.Apply(c.p1)
			nc.p2 = t.Apply(c.p2)
		case cmdCurve:
			nc.p1 = t.Apply(c.p1)
			nc.p2 = t.Apply(c.p2)
			nc.p3 = t.Apply(c.p3)
		}
		out.cmds[i] = nc
	}
	out.cur = t.Apply(p.cur)
	out.start = t.Apply(p.start)
	out.open = p.open
	return out
}

// Subpath is an ordered sequence of straight-line points plus a
// closed flag (spec.md §3). For fills a subpath is implicitly closed
// regardless of Closed — the rasterizer's edge extraction always
// synthesizes the last-to-first segment. Stroking distinguishes open
// from closed subpaths (spec.md §4.1).
type Subpath struct {
	Points []Point
	Closed bool
}

// maxFlattenDepth bounds the cubic-subdivision recursion so a
// degenerate curve (e.g. a zero-length chord with distant control
// points) cannot recurse indefinitely.
const maxFlattenDepth = 24

// rejection returns v with its projection onto d removed.
func rejection(v, d Point) Point {
	dd := d.Dot(d)
	if dd == 0 {
		return v
	}
	t := v.Dot(d) / dd
	return v.Sub(d.Scale(t))
}

// flattenCubic subdivides the cubic Bézier p0,p1,p2,p3 to within tol
// (already in the coordinate space the error is measured in — the
// caller is responsible for ensuring that is device space, per
// spec.md §4.1) and calls emit with every vertex after p0, in order.
// Grounded on seehuhn-go-render/raster.go: flattenCubic for the
// recursive-subdivision idiom; the error metric itself follows
// spec.md §4.1's rejection-vector formulation.
func flattenCubic(p0, p1, p2, p3 Point, tol float64, depth int, emit func(Point)) {
	d := p3.Sub(p0)
	e1 := rejection(p1.Sub(p0), d)
	e2 := rejection(p2.Sub(p0), d)
	err2 := math.Max(e1.Dot(e1), e2.Dot(e2)) * d.Dot(d)

	if err2 < tol*tol || depth >= maxFlattenDepth {
		emit(p3)
		return
	}

	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	p0123 := p012.Lerp(p123, 0.5)

	flattenCubic(p0, p01, p012, p0123, tol, depth+1, emit)
	flattenCubic(p0123, p123, p23, p3, tol, depth+1, emit)
}

// flattenQuadratic degree-elevates the quadratic p0,p1,p2 to a cubic
// and flattens that, per spec.md §4.1.
func flattenQuadratic(p0, p1, p2 Point, tol float64, emit func(Point)) {
	c1 := p0.Add(p1.Scale(2)).Scale(1.0 / 3.0)
	c2 := p1.Scale(2).Add(p2).Scale(1.0 / 3.0)
	flattenCubic(p0, c1, c2, p2, tol, 0, emit)
}

// Flatten walks the path's commands and returns its subpaths with
// every curve replaced by straight segments accurate to tol (spec.md
// §4.1). The path must already be in the coordinate space in which
// tol should be measured (device space, via Transformed).
func (p *Path) Flatten(tol float64) []Subpath {
	var subpaths []Subpath
	var cur Point
	var sp *Subpath

	flushEmpty := func() {
		if sp != nil && len(sp.Points) <= 1 {
			subpaths = subpaths[:len(subpaths)-1]
		}
		sp = nil
	}

	for _, c := range p.cmds {
		switch c.kind {
		case cmdMove:
			flushEmpty()
			subpaths = append(subpaths, Subpath{Points: []Point{c.p1}})
			sp = &subpaths[len(subpaths)-1]
			cur = c.p1

		case cmdLine:
			if sp == nil {
				subpaths = append(subpaths, Subpath{Points: []Point{cur}})
				sp = &subpaths[len(subpaths)-1]
			}
			sp.Points = append(sp.Points, c.p1)
			cur = c.p1

		case cmdQuad:
			if sp == nil {
				subpaths = append(subpaths, Subpath{Points: []Point{cur}})
				sp = &subpaths[len(subpaths)-1]
			}
			flattenQuadratic(cur, c.p1, c.p2, tol, func(pt Point) {
				sp.Points = append(sp.Points, pt)
			})
			cur = c.p2

		case cmdCurve:
			if sp == nil {
				subpaths = append(subpaths, Subpath{Points: []Point{cur}})
				sp = &subpaths[len(subpaths)-1]
			}
			flattenCubic(cur, c.p1, c.p2, c.p3, tol, 0, func(pt Point) {
				sp.Points = append(sp.Points, pt)
			})
			cur = c.p3

		case cmdClose:
			if sp != nil {
				sp.Closed = true
			}
		}
	}
	flushEmpty()
	return subpaths
}

// EdgesFromSubpaths builds directed, non-horizontal fill edges from a
// set of flattened subpaths, belonging to the shape at shapeIndex. A
// subpath is implicitly closed for fill purposes: the segment from its
// last point back to its first is always synthesized, even if Closed
// is false (spec.md §3, §4.2). Horizontal segments are dropped (I1).
func EdgesFromSubpaths(subpaths []Subpath, shapeIndex int) []Segment {
	var edges []Segment
	for _, sp := range subpaths {
		n := len(sp.Points)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := sp.Points[i]
			b := sp.Points[(i+1)%n]
			if seg, ok := newSegment(a, b, shapeIndex); ok {
				edges = append(edges, seg)
			}
		}
	}
	return edges
}
