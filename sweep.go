package raster

import (
	"container/heap"
	"math"
	"slices"
	"sort"
)

// eventKind distinguishes the two kinds of sweep events (spec.md
// §4.5). At equal y, starts are processed before ends so an edge is
// considered active during the single-point strip where it both
// starts and ends (never observed in practice since horizontal edges
// are filtered out at construction, but it keeps ordering total).
type eventKind int8

const (
	eventStart eventKind = iota
	eventEnd
)

type sweepEvent struct {
	y    float64
	kind eventKind
	edge int
}

// eventHeap is a container/heap min-heap of sweepEvents ordered by
// (y, kind, edge) for a fully deterministic pop order (spec.md §4.5,
// S6-adjacent determinism requirement).
type eventHeap []sweepEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].y != h[j].y {
		return h[i].y < h[j].y
	}
	if h[i].kind != h[j].kind {
		return h[i].kind < h[j].kind
	}
	return h[i].edge < h[j].edge
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(sweepEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// activeLine is an edge's x-extent across the current strip, along
// with the fields needed for winding accumulation and paint lookup.
type activeLine struct {
	edge       int
	xTop, xBot float64
	xSubTop    float64 // x at the current sub-strip's top; scratch, set per sub-strip
	direction  int8
	shapeIndex int
}

// sweepState holds the buffers reused across strips of a single
// Render call (spec.md §9: buffer reuse is an idiom carried from the
// teacher even though the accumulation algorithm itself is not).
type sweepState struct {
	active  []int // indices into edges, currently active
	lines   []activeLine
	winding []int // per-shape winding count, indexed by ShapeIndex
	touched []int // shapes touched this strip, for O(touched) reset
	shapes  []int // scratch: distinct shapes with nonzero winding in an interval
}

func newSweepState(numEdges, numShapes int) *sweepState {
	return &sweepState{
		active:  make([]int, 0, numEdges),
		lines:   make([]activeLine, 0, numEdges),
		winding: make([]int, numShapes),
		touched: make([]int, 0, numShapes),
	}
}

func (s *sweepState) removeActive(edge int) {
	for i, e := range s.active {
		if e == edge {
			s.active[i] = s.active[len(s.active)-1]
			s.active = s.active[:len(s.active)-1]
			return
		}
	}
}

func (s *sweepState) addWinding(shape int, dir int8) {
	if s.winding[shape] == 0 {
		s.touched = append(s.touched, shape)
	}
	s.winding[shape] += int(dir)
}

func (s *sweepState) resetWinding() {
	for _, shape := range s.touched {
		s.winding[shape] = 0
	}
	s.touched = s.touched[:0]
}

// Render rasterizes scene into a freshly allocated Pixmap (spec.md
// §4.5). A degenerate scene (Width or Height <= 0) yields an empty
// Pixmap (ErrDegenerateScene, spec.md §7).
func Render(scene *Scene) *Pixmap {
	pix := NewPixmap(scene.Width, scene.Height)
	if pix.Width == 0 || pix.Height == 0 {
		return pix
	}

	var edges []Segment
	paints := make([]Paint, len(scene.Shapes))
	for i, sh := range scene.Shapes {
		edges = append(edges, sh.Edges...)
		paints[i] = sh.Paint
	}
	if len(edges) == 0 {
		return pix
	}

	sweepRasterize(edges, paints, pix)
	return pix
}

// sweepRasterize implements the analytic sweep: an event-heap driven
// active-edge list, resorted per strip, with exact trapezoid-area
// pixel coverage and insertion-order (draw-order) Porter-Duff
// compositing of whichever shapes have nonzero winding within each
// strip interval (spec.md §4.5).
func sweepRasterize(edges []Segment, paints []Paint, pix *Pixmap) {
	h := make(eventHeap, 0, 2*len(edges))
	height := float64(pix.Height)
	for i, e := range edges {
		y0, y1 := e.yMin(), e.yMax()
		if y1 <= 0 || y0 >= height {
			continue
		}
		heap.Push(&h, sweepEvent{y: clampY(y0, height), kind: eventStart, edge: i})
		heap.Push(&h, sweepEvent{y: clampY(y1, height), kind: eventEnd, edge: i})
	}

	ys := make([]float64, 0, pix.Height+1+len(h))
	for y := 0; y <= pix.Height; y++ {
		ys = append(ys, float64(y))
	}
	for _, ev := range h {
		ys = append(ys, ev.y)
	}
	sort.Float64s(ys)
	ys = dedupeSorted(ys, 1e-9)

	state := newSweepState(len(edges), len(paints))

	for i := 0; i+1 < len(ys); i++ {
		yTop, yBot := ys[i], ys[i+1]
		for h.Len() > 0 && h[0].y <= yTop+1e-12 {
			ev := heap.Pop(&h).(sweepEvent)
			switch ev.kind {
			case eventStart:
				state.active = append(state.active, ev.edge)
			case eventEnd:
				state.removeActive(ev.edge)
			}
		}
		if yBot <= yTop || len(state.active) == 0 {
			continue
		}
		processStrip(state, edges, paints, pix, yTop, yBot)
	}
}

func clampY(y, height float64) float64 {
	if y < 0 {
		return 0
	}
	if y > height {
		return height
	}
	return y
}

// dedupeSorted removes consecutive near-duplicates from a sorted
// slice, returning the deduplicated prefix.
func dedupeSorted(ys []float64, eps float64) []float64 {
	if len(ys) == 0 {
		return ys
	}
	out := ys[:1]
	for _, y := range ys[1:] {
		if y-out[len(out)-1] > eps {
			out = append(out, y)
		}
	}
	return out
}

// interpAtY evaluates, at y, the affine function determined by its
// values x0 at y0 and x1 at y1.
func interpAtY(x0, x1, y0, y1, y float64) float64 {
	return x0 + (x1-x0)*(y-y0)/(y1-y0)
}

// crossingFraction returns, if lines i and j (whose x at subYTop is
// xTop[i]/xTop[j] and whose x at subYBot is xBot[i]/xBot[j]) swap
// order strictly inside (subYTop, subYBot), the fraction of the way
// from subYTop to subYBot at which they meet. ok is false if they
// don't cross inside the open interval.
func crossingFraction(topI, topJ, botI, botJ float64) (frac float64, ok bool) {
	diffTop := topI - topJ
	diffBot := botI - botJ
	if diffTop == 0 || diffBot == 0 || (diffTop > 0) == (diffBot > 0) {
		return 0, false
	}
	return diffTop / (diffTop - diffBot), true
}

// processStrip handles one y-strip [yTop, yBot), entirely within a
// single pixel row, for the edges currently in state.active. Because
// two active lines can cross mid-strip (spec.md §4.5 Stage B step 2),
// the strip is walked in sub-strips: whenever the nearest crossing
// among the currently x-ordered lines falls strictly inside the
// remaining range, the sub-strip is clamped there, composited, and
// the lines are re-ordered before continuing.
func processStrip(state *sweepState, edges []Segment, paints []Paint, pix *Pixmap, yTop, yBot float64) {
	row := int(math.Floor(yTop))
	if row < 0 || row >= pix.Height {
		return
	}

	state.lines = state.lines[:0]
	for _, idx := range state.active {
		e := edges[idx]
		state.lines = append(state.lines, activeLine{
			edge:       idx,
			xTop:       e.xAtY(yTop),
			xBot:       e.xAtY(yBot),
			direction:  e.Direction,
			shapeIndex: e.ShapeIndex,
		})
	}

	subTop := yTop
	for subTop < yBot {
		// x of each line at subTop and at the strip's bottom, both
		// derived from the exact top/bottom values by affine
		// interpolation (xAtY is affine, so this is exact regardless
		// of how many sub-strips have already been cut off above).
		for i := range state.lines {
			l := &state.lines[i]
			l.xSubTop = interpAtY(l.xTop, l.xBot, yTop, yBot, subTop)
		}
		// Lines tied at xSubTop (typically because a crossing landed
		// exactly on this sub-strip's top boundary) are broken by their
		// x at the enclosing strip's bottom, which is the direction
		// they diverge in past the tie point; edge index is the final,
		// arbitrary fallback for truly coincident lines.
		sort.Slice(state.lines, func(i, j int) bool {
			li, lj := state.lines[i], state.lines[j]
			if li.xSubTop != lj.xSubTop {
				return li.xSubTop < lj.xSubTop
			}
			if li.xBot != lj.xBot {
				return li.xBot < lj.xBot
			}
			return li.edge < lj.edge
		})

		subBot := yBot
		for i := 0; i+1 < len(state.lines); i++ {
			frac, ok := crossingFraction(
				state.lines[i].xSubTop, state.lines[i+1].xSubTop,
				state.lines[i].xBot, state.lines[i+1].xBot,
			)
			if !ok {
				continue
			}
			y := subTop + frac*(yBot-subTop)
			if y > subTop && y < subBot {
				subBot = y
			}
		}

		compositeSubStrip(state, paints, pix, row, yTop, yBot, subTop, subBot)
		subTop = subBot
	}

	for _, shape := range state.touched {
		debugAssert(state.winding[shape] == 0, "shape winding did not balance across a strip; edges do not form a closed contour")
	}
}

// compositeSubStrip accumulates winding and composites pixel coverage
// for state.lines (already ordered by x at subTop) across the
// sub-range [subTop, subBot) of the enclosing strip [yTop, yBot).
func compositeSubStrip(state *sweepState, paints []Paint, pix *Pixmap, row int, yTop, yBot, subTop, subBot float64) {
	state.resetWinding()
	mid := (subTop + subBot) / 2

	for i := 0; i < len(state.lines); i++ {
		state.addWinding(state.lines[i].shapeIndex, state.lines[i].direction)
		if i+1 >= len(state.lines) {
			break
		}

		state.shapes = state.shapes[:0]
		for _, shape := range state.touched {
			if state.winding[shape] != 0 {
				state.shapes = append(state.shapes, shape)
			}
		}
		if len(state.shapes) == 0 {
			continue
		}
		sort.Ints(state.shapes)
		state.shapes = slices.Compact(state.shapes)

		left, right := state.lines[i], state.lines[i+1]
		leftBot := interpAtY(left.xTop, left.xBot, yTop, yBot, subBot)
		rightBot := interpAtY(right.xTop, right.xBot, yTop, yBot, subBot)
		leftMin := math.Min(left.xSubTop, leftBot)
		rightMax := math.Max(right.xSubTop, rightBot)
		if rightMax <= leftMin {
			continue
		}

		colStart := int(math.Floor(leftMin))
		colEnd := int(math.Ceil(rightMax)) - 1
		if colStart < 0 {
			colStart = 0
		}
		if colEnd > pix.Width-1 {
			colEnd = pix.Width - 1
		}

		trap := trapezoid{
			YTop: subTop, YBot: subBot,
			LeftTop: left.xSubTop, LeftBot: leftBot,
			RightTop: right.xSubTop, RightBot: rightBot,
		}

		for col := colStart; col <= colEnd; col++ {
			area := pixelColumnArea(trap, float64(col))
			if area <= 0 {
				continue
			}
			// area is already the covered fraction of the unit pixel.
			coverage := area
			samplePoint := Point{X: float64(col) + 0.5, Y: mid}

			accum := Transparent
			for _, shape := range state.shapes {
				accum = Over(accum, paints[shape].Eval(samplePoint))
			}
			pix.AddPixel(col, row, accum.Scale(float32(coverage)))
		}
	}
}
