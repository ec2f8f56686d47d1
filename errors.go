package raster

import "errors"

// Sentinel error kinds surfaced by the core (spec.md §7). None of them
// is returned as an `error` from the normal rendering path: each
// situation they name resolves silently to a documented degenerate
// value (an empty Pixmap, a transparent-black Color) exactly as
// spec.md §7 describes. They exist so callers and tests can name and
// assert on these situations without the hot path paying for error
// plumbing it does not need — mirroring the teacher, whose Rasterizer
// methods never return an error either.
var (
	// ErrDegenerateScene marks a Scene whose Width or Height is <= 0.
	ErrDegenerateScene = errors.New("raster: degenerate scene (width or height <= 0)")

	// ErrSingularTransform marks a gradient paint-server transform
	// that cannot be inverted.
	ErrSingularTransform = errors.New("raster: singular transform")

	// ErrEmptyGradient marks a gradient with zero stops.
	ErrEmptyGradient = errors.New("raster: gradient has no stops")
)

// Debug enables debugAssert checks. It defaults to false so the normal
// rendering path pays nothing for them, matching the teacher's own
// release path, which carries no runtime assertions at all.
var Debug = false

// debugAssert panics with msg if cond is false and Debug is enabled.
// It is a no-op otherwise — used at an internal invariant point (the
// per-strip winding balance check in processStrip, spec.md §4.5
// failure semantics) that should never fire on valid input and is not
// worth checking on every call.
func debugAssert(cond bool, msg string) {
	if Debug && !cond {
		panic("raster: assertion failed: " + msg)
	}
}
