package delaunay

import "errors"

// ErrDuplicateVertex is returned by Insert, together with the existing
// vertex, when an inserted point coincides with an existing vertex; the
// triangulation is left unchanged.
var ErrDuplicateVertex = errors.New("delaunay: duplicate vertex")

// ErrOutsideBounds is returned when a point lies outside the
// triangulation's bounding rectangle.
var ErrOutsideBounds = errors.New("delaunay: point outside triangulation bounds")

// ErrIndeterminate is returned when a query point cannot be classified
// against any edge of its locating triangle (collinear triangle, or no
// valid projection) — a predicate-indeterminacy rejection.
var ErrIndeterminate = errors.New("delaunay: indeterminate point-triangle relation")

// ErrLinkTooShort is returned when a vertex's link has fewer than three
// entries; this occurs only at supersimplex corners or degenerate holes.
var ErrLinkTooShort = errors.New("delaunay: vertex link has fewer than three entries")

// ErrCornerVertex is returned when removal of a corner (weight == -3)
// or supersimplex (weight == -1) vertex is attempted.
var ErrCornerVertex = errors.New("delaunay: cannot remove corner or supersimplex vertex")

// ErrNoProgress is returned when the ear-reduction loop in vertex
// removal cannot accept any ear in a full pass over the link; the
// vertex is left in place with error = -0.5. Edge flips made for ears
// accepted earlier in the same removal are not undone.
var ErrNoProgress = errors.New("delaunay: vertex removal made no progress")
