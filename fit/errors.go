package fit

import "errors"

// ErrDegenerateVolume is returned when a computed AABox has a NaN bound or
// min>max on some axis, or a computed Ellipsoid has a NaN or negative
// radius: a correctness check required by spec §4.2, never tripped by
// ordinary degenerate (zero-area) triangle geometry. An empty triangle
// list is reported as ErrEmptyTriangleList instead.
var ErrDegenerateVolume = errors.New("fit: degenerate bounding volume (min>max)")

// ErrEmptyTriangleList is returned when FitLeaf is given a leaf slot with
// no valid (non-sentinel) triangles.
var ErrEmptyTriangleList = errors.New("fit: leaf has no valid triangles")
