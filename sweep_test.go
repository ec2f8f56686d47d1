package raster

import "testing"

// TestSweepHandlesMidStripEdgeCrossing exercises spec.md §4.5 Stage B
// step 2: two active edges that cross strictly inside a single pixel
// row, rather than only at row boundaries. A self-intersecting bowtie
// quadrilateral confined to one row has its two diagonals cross at
// the row's exact horizontal center, splitting the row into a wide
// triangle narrowing to a point and a second triangle widening back
// out — total filled area is analytically 2 (half of the 4x1 canvas).
// An implementation that orders active lines by strip midpoint x
// instead of clamping to the crossing (the superseded design) ties at
// exactly that midpoint and never splits the row, so it would not
// reproduce this area.
func TestSweepHandlesMidStripEdgeCrossing(t *testing.T) {
	p := NewPath()
	p.MoveTo(Point{0, 0})
	p.LineTo(Point{4, 1})
	p.LineTo(Point{0, 1})
	p.LineTo(Point{4, 0})
	p.ClosePath()

	doc := NewDocument(4, 1)
	doc.Fill(p, SolidServer{Color: Color{R: 1, A: 1}}, Identity, 1)
	pix := Render(doc.Scene())

	var total float64
	for x := 0; x < pix.Width; x++ {
		total += float64(pix.ColorAt(x, 0).A)
	}
	const wantArea = 2.0
	if !almostEqual(total, wantArea, 1e-6) {
		t.Errorf("bowtie row total coverage = %v, want %v", total, wantArea)
	}
}

// TestSweepMultiShapeCoverageNotInflated exercises spec.md §4.5 Stage
// C step 3: shapes active in a partial-coverage column must be
// blended at full strength and the result scaled by coverage once, not
// scaled individually before blending. Two identical opaque fills of
// the same half-covered rectangle must still read back as exactly
// half coverage, not the 0.5 + 0.5*(1-0.5) = 0.75 that pre-scaling
// each layer before compositing would produce.
func TestSweepMultiShapeCoverageNotInflated(t *testing.T) {
	red := Color{R: 1, A: 1}
	doc := NewDocument(3, 1)
	doc.Fill(rect(0.5, 0, 2, 1), SolidServer{Color: red}, Identity, 1)
	doc.Fill(rect(0.5, 0, 2, 1), SolidServer{Color: red}, Identity, 1)
	pix := Render(doc.Scene())

	if got := pix.ColorAt(0, 0).A; !almostEqual(float64(got), 0.5, 1e-6) {
		t.Errorf("half-covered column alpha with two stacked opaque fills = %v, want 0.5", got)
	}
}
