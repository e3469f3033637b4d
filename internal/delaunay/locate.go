package delaunay

import "github.com/openwebglobe/terrain/internal/predicates"

// Locator is a point-location strategy: it maps a query (x,y) to a
// triangle believed to contain it, and keeps its own index of every
// alive triangle in sync as triangles are added and removed. The
// linear, quadtree-hierarchy, and kd-tree-hierarchy strategies below
// are interchangeable implementations of this interface (spec.md §4.5,
// §9 "point-location strategy polymorphism").
type Locator interface {
	AddTriangle(t *Triangle)
	RemoveTriangle(t *Triangle)
	Locate(x, y float64) (*Triangle, PointTriangleRelation)
	Traverse(fn func(*Triangle))
	SpatialTraverse(r Rect, fn func(*Triangle))
	SetEpsilon(edgeEpsilon, coincidenceEpsilon float64)
}

// classify determines a query point's relation to triangle t using
// robust signed-area tests with two epsilons, per spec.md §4.6. When
// the point falls within edgeEpsilon of an edge, it is orthogonally
// projected onto that edge; a projection parameter within
// (epsilon, 1-epsilon) confirms Edge*, otherwise the triangle reports
// Invalid for that edge.
func classify(t *Triangle, x, y, edgeEpsilon, coincidenceEpsilon float64) PointTriangleRelation {
	p := predicates.XY{Px: x, Py: y}
	a := predicates.XY{Px: t.v[0].X(), Py: t.v[0].Y()}
	b := predicates.XY{Px: t.v[1].X(), Py: t.v[1].Y()}
	c := predicates.XY{Px: t.v[2].X(), Py: t.v[2].Y()}

	// Vertex coincidence first.
	if predicates.Distance(p, a) < coincidenceEpsilon {
		return RelVertex0
	}
	if predicates.Distance(p, b) < coincidenceEpsilon {
		return RelVertex1
	}
	if predicates.Distance(p, c) < coincidenceEpsilon {
		return RelVertex2
	}

	d0 := predicates.CCW(a, b, p) // sign for edge0 (a,b)
	d1 := predicates.CCW(b, c, p) // sign for edge1 (b,c)
	d2 := predicates.CCW(c, a, p) // sign for edge2 (c,a)

	near0 := absf(d0) <= edgeEpsilon
	near1 := absf(d1) <= edgeEpsilon
	near2 := absf(d2) <= edgeEpsilon

	outside := d0 < -edgeEpsilon || d1 < -edgeEpsilon || d2 < -edgeEpsilon
	if outside {
		return Outside
	}

	switch {
	case near0 && !near1 && !near2:
		return refineEdge(p, a, b, edgeEpsilon, RelEdge0)
	case near1 && !near0 && !near2:
		return refineEdge(p, b, c, edgeEpsilon, RelEdge1)
	case near2 && !near0 && !near1:
		return refineEdge(p, c, a, edgeEpsilon, RelEdge2)
	case near0 && near1, near1 && near2, near0 && near2:
		// Within edge epsilon of two (or three) edges simultaneously:
		// a collinear or degenerate triangle. Predicate indeterminacy.
		return Invalid
	default:
		return Inside
	}
}

// refineEdge projects p onto segment (u,v); if the projection parameter
// lands strictly within (epsilon, 1-epsilon) the point is confirmed on
// the edge, otherwise the classification is indeterminate.
func refineEdge(p, u, v predicates.XY, epsilon float64, rel PointTriangleRelation) PointTriangleRelation {
	t := predicates.ProjectOntoSegment(p, u, v)
	if t > epsilon && t < 1-epsilon {
		return rel
	}
	return Invalid
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// triangleBound returns the axis-aligned bounding rectangle of t.
func triangleBound(t *Triangle) Rect {
	x0 := minf3(t.v[0].X(), t.v[1].X(), t.v[2].X())
	x1 := maxf3(t.v[0].X(), t.v[1].X(), t.v[2].X())
	y0 := minf3(t.v[0].Y(), t.v[1].Y(), t.v[2].Y())
	y1 := maxf3(t.v[0].Y(), t.v[1].Y(), t.v[2].Y())
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func minf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func rectsIntersect(a, b Rect) bool {
	return a.X0 <= b.X1 && a.X1 >= b.X0 && a.Y0 <= b.Y1 && a.Y1 >= b.Y0
}
