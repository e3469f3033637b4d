// Package predicates implements the robust geometric predicates the
// Delaunay triangulation engine relies on: orientation, in-circle, and
// oriented segment intersection.
package predicates

import "math"

// Point is a minimal 2D point; the triangulation engine's vertices
// satisfy this via their X()/Y() accessors.
type Point interface {
	X() float64
	Y() float64
}

// XY is the simplest concrete Point, used directly by predicate callers
// that don't need the full Vertex/ElevationPoint machinery.
type XY struct {
	Px, Py float64
}

func (p XY) X() float64 { return p.Px }
func (p XY) Y() float64 { return p.Py }

// DefaultEdgeEpsilon is the tolerance used to classify a query point as
// lying on a triangle edge rather than strictly inside or outside it.
const DefaultEdgeEpsilon = 1e-12

// DefaultCoincidenceEpsilon is the tolerance used to classify a query
// point as coincident with a triangle vertex.
const DefaultCoincidenceEpsilon = 1e-12

// CCW returns twice the signed area of triangle (a,b,c):
// (b.x-a.x)(c.y-a.y) - (b.y-a.y)(c.x-a.x). Positive means a,b,c are
// counterclockwise, negative clockwise, zero collinear.
func CCW(a, b, c Point) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

// InCircle returns true iff d lies strictly inside the circumcircle of
// (a,b,c), assuming (a,b,c) is given counterclockwise. It is computed as
// the standard 4x4 determinant expanded into signed triangle areas, and
// the caller (the engine) is expected to test -ret > eps with eps the
// machine epsilon for float64, matching the reference implementation's
// convention.
func InCircle(a, b, c, d Point) bool {
	return inCircleDet(a, b, c, d) < -epsMachine
}

// epsMachine is the machine epsilon for float64, the tolerance the
// reference in_circle test compares -ret against.
const epsMachine = 2.220446049250313e-16

// inCircleDet returns the raw determinant value; negative means d is
// inside the circumcircle of (a,b,c) when (a,b,c) is CCW.
func inCircleDet(a, b, c, d Point) float64 {
	adx := a.X() - d.X()
	ady := a.Y() - d.Y()
	bdx := b.X() - d.X()
	bdy := b.Y() - d.Y()
	cdx := c.X() - d.X()
	cdy := c.Y() - d.Y()

	adxSq := adx*adx + ady*ady
	bdxSq := bdx*bdx + bdy*bdy
	cdxSq := cdx*cdx + cdy*cdy

	det := adx*(bdy*cdxSq-cdy*bdxSq) -
		ady*(bdx*cdxSq-cdx*bdxSq) +
		adxSq*(bdx*cdy-cdx*bdy)

	return -det
}

// IntersectionResult is the outcome of FindOrientedIntersection.
type IntersectionResult struct {
	Found bool
	// T is the parameter along segment ab such that a + T*(b-a) is the
	// intersection point with segment cd.
	T float64
}

// FindOrientedIntersection returns the parameter t along ab such that
// a+t(b-a) is the intersection with segment cd, only if the two
// segments properly cross (strict sign test on both triangle-area
// orientations). Collinear configurations and endpoint-touching
// configurations return Found=false.
func FindOrientedIntersection(a, b, c, d Point) IntersectionResult {
	d1 := CCW(c, d, a)
	d2 := CCW(c, d, b)
	d3 := CCW(a, b, c)
	d4 := CCW(a, b, d)

	if !((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) {
		return IntersectionResult{Found: false}
	}
	if !((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return IntersectionResult{Found: false}
	}

	// Standard parametric line/line intersection, safe since the
	// strict-sign tests above already excluded the parallel case.
	ax, ay := a.X(), a.Y()
	bx, by := b.X(), b.Y()
	cx, cy := c.X(), c.Y()
	dx, dy := d.X(), d.Y()

	rX, rY := bx-ax, by-ay
	sX, sY := dx-cx, dy-cy
	denom := rX*sY - rY*sX
	if denom == 0 {
		return IntersectionResult{Found: false}
	}
	t := ((cx-ax)*sY - (cy-ay)*sX) / denom
	return IntersectionResult{Found: true, T: t}
}

// Orientation classifies the sign of CCW into -1, 0, +1.
func Orientation(a, b, c Point) int {
	v := CCW(a, b, c)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X() - b.X()
	dy := a.Y() - b.Y()
	return math.Sqrt(dx*dx + dy*dy)
}

// ProjectOntoSegment orthogonally projects p onto segment (a,b) and
// returns the parameter u such that a+u(b-a) is the closest point on
// the infinite line through a,b. Used to refine Edge* classification
// per spec.md §4.6.
func ProjectOntoSegment(p, a, b Point) float64 {
	abx, aby := b.X()-a.X(), b.Y()-a.Y()
	apx, apy := p.X()-a.X(), p.Y()-a.Y()
	denom := abx*abx + aby*aby
	if denom == 0 {
		return 0
	}
	return (apx*abx + apy*aby) / denom
}
