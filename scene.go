package raster

// flattenTolerance is the device-space flattening tolerance applied
// to every path before it enters the rasterizer (spec.md §4.1). It is
// a fixed constant rather than a per-call parameter.
const flattenTolerance = 0.25

// Shape is one filled region of a Scene: a closed set of directed
// edges together with the paint that covers it (spec.md §3). Edges
// cite their owning shape by ShapeIndex, an arena index into the
// Scene's Shapes slice, rather than by pointer (spec.md §9).
type Shape struct {
	Edges []Segment
	Paint Paint
}

// Scene is the full set of shapes to be rasterized into a pixmap of
// Width x Height (spec.md §3). Shapes are composited in slice order,
// each painted over everything before it (spec.md §4.5, P5:
// "order-sensitivity").
type Scene struct {
	Shapes []Shape
	Width  int
	Height int
}

// Style bundles the fill and stroke parameters for a single Draw call
// (spec.md §4.2). A zero Style draws nothing.
type Style struct {
	Fill        bool
	FillPaint   PaintServer
	FillOpacity float64

	Stroke        bool
	StrokePaint   PaintServer
	StrokeOpacity float64
	StrokeWidth   float64
}

// Document is the mutable scene builder (spec.md §4.2). It owns a
// Scene and appends one Shape per Fill/Stroke call, flattening and
// transforming the path into device space as it goes. Grounded on
// seehuhn-go-render's Rasteriser, which accumulates similarly as paths
// are submitted and exposes a capacity-preserving Reset.
type Document struct {
	scene Scene
}

// NewDocument returns an empty Document for a pixmap of the given
// size.
func NewDocument(width, height int) *Document {
	return &Document{scene: Scene{Width: width, Height: height}}
}

// Scene returns the Document's accumulated scene.
func (d *Document) Scene() *Scene {
	return &d.scene
}

// Reset clears the Document's accumulated shapes and sets a new
// target size, reusing the underlying Shapes backing array (spec.md
// §4.2; grounded on seehuhn-go-render/rasteriser.go's Reset).
func (d *Document) Reset(width, height int) {
	d.scene.Shapes = d.scene.Shapes[:0]
	d.scene.Width = width
	d.scene.Height = height
}

// edgesFor transforms path into device space, flattens it at the
// fixed device-space tolerance, and extracts fill edges tagged with
// the shape index this call is about to append.
func (d *Document) edgesFor(path *Path, transform Transform, outline func([]Subpath) []Subpath) []Segment {
	subpaths := path.Transformed(transform).Flatten(flattenTolerance)
	if outline != nil {
		subpaths = outline(subpaths)
	}
	return EdgesFromSubpaths(subpaths, len(d.scene.Shapes))
}

// Fill appends a shape covering path's fill region (non-zero winding
// rule) under transform, painted with paint and scaled by opacity
// (spec.md §4.2). A path whose flattened edges are all dropped (e.g.
// an empty or single-point path) contributes no shape.
func (d *Document) Fill(path *Path, paint PaintServer, transform Transform, opacity float64) {
	if opacity <= 0 {
		return
	}
	edges := d.edgesFor(path, transform, nil)
	if len(edges) == 0 {
		return
	}
	d.scene.Shapes = append(d.scene.Shapes, Shape{
		Edges: edges,
		Paint: WithOpacity(paint.Paint(transform), opacity),
	})
}

// Stroke appends a shape covering the stroked outline of path at the
// given width under transform, painted with paint and scaled by
// opacity (spec.md §4.1, §4.2).
func (d *Document) Stroke(path *Path, paint PaintServer, transform Transform, width, opacity float64) {
	if opacity <= 0 || width <= 0 {
		return
	}
	edges := d.edgesFor(path, transform, func(subpaths []Subpath) []Subpath {
		return StrokeOutline(subpaths, width)
	})
	if len(edges) == 0 {
		return
	}
	d.scene.Shapes = append(d.scene.Shapes, Shape{
		Edges: edges,
		Paint: WithOpacity(paint.Paint(transform), opacity),
	})
}

// Draw fills and/or strokes path under transform according to style,
// in that order (a shape's fill, if any, is always appended before
// its stroke — spec.md §4.2).
func (d *Document) Draw(path *Path, style Style, transform Transform) {
	if style.Fill && style.FillPaint != nil {
		d.Fill(path, style.FillPaint, transform, style.FillOpacity)
	}
	if style.Stroke && style.StrokePaint != nil {
		d.Stroke(path, style.StrokePaint, transform, style.StrokeWidth, style.StrokeOpacity)
	}
}
