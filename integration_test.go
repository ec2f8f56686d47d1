package raster

import "testing"

func rect(x0, y0, x1, y1 float64) *Path {
	p := NewPath()
	p.MoveTo(Point{x0, y0})
	p.LineTo(Point{x1, y0})
	p.LineTo(Point{x1, y1})
	p.LineTo(Point{x0, y1})
	p.ClosePath()
	return p
}

func TestScenarioAxisAlignedSquareHalfCoverageEdges(t *testing.T) {
	// S1: a rectangle whose left edge sits at x=1.5 produces exactly
	// half coverage in the pixel column it crosses, full coverage in
	// columns fully inside, and none outside.
	doc := NewDocument(4, 2)
	doc.Fill(rect(1.5, 0, 4, 2), SolidServer{Color: Color{R: 1, G: 1, B: 1, A: 1}}, Identity, 1)
	pix := Render(doc.Scene())

	if got := pix.ColorAt(0, 0).A; got != 0 {
		t.Errorf("column 0 alpha = %v, want 0", got)
	}
	if got := pix.ColorAt(1, 0).A; !almostEqual(float64(got), 0.5, 1e-6) {
		t.Errorf("column 1 alpha = %v, want 0.5", got)
	}
	if got := pix.ColorAt(2, 0).A; !almostEqual(float64(got), 1, 1e-6) {
		t.Errorf("column 2 alpha = %v, want 1", got)
	}
}

func almostEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestScenarioTriangleDiagonalCoverage(t *testing.T) {
	// S2: a right triangle with a diagonal hypotenuse along x=y splits
	// the corner pixel exactly in half and fully covers the pixel
	// entirely on the far side of the diagonal.
	doc := NewDocument(3, 3)
	p := NewPath()
	p.MoveTo(Point{0, 0})
	p.LineTo(Point{2, 0})
	p.LineTo(Point{2, 2})
	p.ClosePath()
	doc.Fill(p, SolidServer{Color: Color{R: 1, A: 1}}, Identity, 1)
	pix := Render(doc.Scene())

	if got := pix.ColorAt(0, 0).A; !almostEqual(float64(got), 0.5, 1e-6) {
		t.Errorf("diagonal pixel alpha = %v, want 0.5", got)
	}
	if got := pix.ColorAt(1, 0).A; !almostEqual(float64(got), 1, 1e-6) {
		t.Errorf("fully-covered pixel alpha = %v, want 1", got)
	}
}

func TestScenarioOverlapBlendsInDrawOrder(t *testing.T) {
	// S3 / P5: two opaque overlapping rectangles composite in draw
	// order — the later shape fully obscures the earlier one wherever
	// they overlap.
	yellow := Color{R: 1, G: 1, B: 0, A: 1}
	blue := Color{R: 0, G: 0, B: 1, A: 1}

	doc := NewDocument(4, 2)
	doc.Fill(rect(0, 0, 3, 2), SolidServer{Color: yellow}, Identity, 1)
	doc.Fill(rect(1, 0, 4, 2), SolidServer{Color: blue}, Identity, 1)
	pix := Render(doc.Scene())

	if got := pix.ColorAt(0, 0); !colorsClose(got, yellow, 1e-6) {
		t.Errorf("yellow-only region = %v, want %v", got, yellow)
	}
	if got := pix.ColorAt(1, 0); !colorsClose(got, blue, 1e-6) {
		t.Errorf("overlap region = %v, want %v (blue drawn second)", got, blue)
	}
	if got := pix.ColorAt(3, 0); !colorsClose(got, blue, 1e-6) {
		t.Errorf("blue-only region = %v, want %v", got, blue)
	}

	// Reversing draw order flips which color wins the overlap.
	doc2 := NewDocument(4, 2)
	doc2.Fill(rect(1, 0, 4, 2), SolidServer{Color: blue}, Identity, 1)
	doc2.Fill(rect(0, 0, 3, 2), SolidServer{Color: yellow}, Identity, 1)
	pix2 := Render(doc2.Scene())
	if got := pix2.ColorAt(1, 0); !colorsClose(got, yellow, 1e-6) {
		t.Errorf("overlap region with reversed order = %v, want %v", got, yellow)
	}
}

func TestScenarioLinearGradientMidpoint(t *testing.T) {
	// S4: the midpoint of a linear gradient's axis evaluates to t~=0.5.
	doc := NewDocument(10, 1)
	server := LinearGradientServer{
		Start: Point{0, 0}, End: Point{10, 0},
		Stops: []Stop{
			{Pos: 0, Color: Color{R: 0, A: 1}},
			{Pos: 1, Color: Color{R: 1, A: 1}},
		},
	}
	doc.Fill(rect(0, 0, 10, 1), server, Identity, 1)
	pix := Render(doc.Scene())
	got := pix.ColorAt(5, 0).R
	if !almostEqual(float64(got), 0.5, 0.1) {
		t.Errorf("got R=%v at the gradient's midpoint column, want ~0.5", got)
	}
}

func TestPropertyAreaConservationForAxisAlignedRect(t *testing.T) {
	// P1: the sum of per-pixel alpha over an axis-aligned, opaque,
	// pixel-grid-aligned rectangle equals its exact geometric area.
	doc := NewDocument(10, 10)
	doc.Fill(rect(2, 3, 6, 7), SolidServer{Color: Color{R: 1, A: 1}}, Identity, 1)
	pix := Render(doc.Scene())

	var total float64
	for y := 0; y < pix.Height; y++ {
		for x := 0; x < pix.Width; x++ {
			total += float64(pix.ColorAt(x, y).A)
		}
	}
	const wantArea = 4 * 4
	if !almostEqual(total, wantArea, 1e-6) {
		t.Errorf("got total coverage %v, want %v", total, wantArea)
	}
}

func TestPropertyTransparentPaintIsNoOp(t *testing.T) {
	// P3: filling with a fully transparent paint leaves every pixel at
	// Transparent.
	doc := NewDocument(5, 5)
	doc.Fill(rect(0, 0, 5, 5), SolidServer{Color: Transparent}, Identity, 1)
	pix := Render(doc.Scene())
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if got := pix.ColorAt(x, y); got != Transparent {
				t.Errorf("pixel (%d,%d) = %v, want Transparent", x, y, got)
			}
		}
	}
}

func TestPropertyNonZeroRuleProducesHole(t *testing.T) {
	// P4: a shape made of an outer CCW square and an inner CW square
	// (opposite winding) fills the annulus between them but leaves the
	// inner square uncovered under the non-zero rule.
	outer := Subpath{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, Closed: true}
	inner := Subpath{Points: []Point{{3, 3}, {3, 7}, {7, 7}, {7, 3}}, Closed: true}
	edges := EdgesFromSubpaths([]Subpath{outer, inner}, 0)

	scene := &Scene{
		Width: 10, Height: 10,
		Shapes: []Shape{{Edges: edges, Paint: Solid{Color{R: 1, A: 1}}}},
	}
	pix := Render(scene)

	if got := pix.ColorAt(1, 1).A; !almostEqual(float64(got), 1, 1e-6) {
		t.Errorf("annulus pixel (1,1) alpha = %v, want 1", got)
	}
	if got := pix.ColorAt(5, 5).A; got != 0 {
		t.Errorf("hole pixel (5,5) alpha = %v, want 0", got)
	}
}

func TestPropertySweepIdempotentUnderDuplicateEdges(t *testing.T) {
	// P6: doubling up every edge of a shape (so every winding count
	// doubles from 1 to 2, or -1 to -2) must not change the rendered
	// coverage under the non-zero rule, since the sign of the winding
	// count is unchanged.
	sp := Subpath{Points: []Point{{1, 1}, {5, 1}, {5, 5}, {1, 5}}, Closed: true}
	singleEdges := EdgesFromSubpaths([]Subpath{sp}, 0)
	doubledEdges := append(append([]Segment{}, singleEdges...), singleEdges...)

	single := &Scene{Width: 6, Height: 6, Shapes: []Shape{{Edges: singleEdges, Paint: Solid{Color{R: 1, A: 1}}}}}
	doubled := &Scene{Width: 6, Height: 6, Shapes: []Shape{{Edges: doubledEdges, Paint: Solid{Color{R: 1, A: 1}}}}}

	p1 := Render(single)
	p2 := Render(doubled)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			a, b := p1.ColorAt(x, y), p2.ColorAt(x, y)
			if !colorsClose(a, b, 1e-6) {
				t.Errorf("pixel (%d,%d): single=%v doubled=%v, want equal", x, y, a, b)
			}
		}
	}
}
