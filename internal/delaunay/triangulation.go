package delaunay

// LocatorKind selects which Locator implementation a Triangulation uses.
type LocatorKind int

const (
	LocatorLinear LocatorKind = iota
	LocatorQuadtree
	LocatorKDTree
)

// Triangulation is a bounded planar subdivision over a rectangle,
// seeded with a supersimplex that is never removed (spec.md §3).
type Triangulation struct {
	bound              Rect
	locator            Locator
	superVerts         [3]*Vertex
	edgeEpsilon        float64
	coincidenceEpsilon float64

	// triangleCount is maintained for O(1) counting; the locator
	// remains the authority for spatial queries and teardown
	// (invariant §3.6).
	triangleCount int
}

// NewTriangulation seeds a triangulation over bound with a single
// enclosing supersimplex triangle whose three vertices carry
// weight = WeightSuperSimplex.
func NewTriangulation(bound Rect, kind LocatorKind) *Triangulation {
	tr := &Triangulation{
		bound:              bound,
		edgeEpsilon:        defaultEdgeEpsilon(),
		coincidenceEpsilon: defaultCoincidenceEpsilon(),
	}

	switch kind {
	case LocatorQuadtree:
		tr.locator = NewQuadtreeLocator(superBound(bound))
	case LocatorKDTree:
		tr.locator = NewKDTreeLocator(superBound(bound))
	default:
		tr.locator = NewLinearLocator()
	}

	w, h := bound.Width(), bound.Height()
	cx, cy := (bound.X0+bound.X1)/2, (bound.Y0+bound.Y1)/2
	// A triangle comfortably enclosing [x0,y0]x[x1,y1]: base wide enough
	// that the rectangle's corners are strictly interior.
	margin := 4.0*w + 4.0*h + 1.0
	a := NewVertex(ElevationPoint{X: cx - margin, Y: cy - margin, Weight: WeightSuperSimplex})
	b := NewVertex(ElevationPoint{X: cx + 3*margin, Y: cy - margin, Weight: WeightSuperSimplex})
	c := NewVertex(ElevationPoint{X: cx - margin, Y: cy + 3*margin, Weight: WeightSuperSimplex})

	tr.superVerts = [3]*Vertex{a, b, c}
	t0 := NewTriangle(a, b, c)
	tr.locator.AddTriangle(t0)
	tr.triangleCount++

	return tr
}

// superBound returns a rectangle large enough to contain the
// supersimplex constructed by NewTriangulation, for locator strategies
// that need their own spatial extent up front.
func superBound(bound Rect) Rect {
	w, h := bound.Width(), bound.Height()
	cx, cy := (bound.X0+bound.X1)/2, (bound.Y0+bound.Y1)/2
	margin := 4.0*w + 4.0*h + 1.0
	return Rect{X0: cx - margin, Y0: cy - margin, X1: cx + 3*margin, Y1: cy + 3*margin}
}

// Bound returns the triangulation's bounded rectangle.
func (tr *Triangulation) Bound() Rect { return tr.bound }

// SetEpsilon configures both engine knobs (spec.md §9 "robust predicates").
func (tr *Triangulation) SetEpsilon(edgeEpsilon, coincidenceEpsilon float64) {
	tr.edgeEpsilon = edgeEpsilon
	tr.coincidenceEpsilon = coincidenceEpsilon
	tr.locator.SetEpsilon(edgeEpsilon, coincidenceEpsilon)
}

// TriangleCount returns the number of alive triangles, including the
// supersimplex triangle(s).
func (tr *Triangulation) TriangleCount() int { return tr.triangleCount }

// NonSuperSimplexTriangleCount returns the number of alive triangles
// that do not touch a supersimplex vertex.
func (tr *Triangulation) NonSuperSimplexTriangleCount() int {
	n := 0
	tr.locator.Traverse(func(t *Triangle) {
		if !t.IsSuperSimplex() {
			n++
		}
	})
	return n
}

// Traverse visits every alive triangle, supersimplex included.
func (tr *Triangulation) Traverse(fn func(*Triangle)) {
	tr.locator.Traverse(fn)
}

// TraverseOutput visits every alive triangle that is not part of the
// supersimplex -- the traversal used by every output-facing operation
// (serialization, clipping, simplification).
func (tr *Triangulation) TraverseOutput(fn func(*Triangle)) {
	tr.locator.Traverse(func(t *Triangle) {
		if !t.IsSuperSimplex() {
			fn(t)
		}
	})
}

// SpatialTraverse visits every alive triangle whose bounding box
// intersects r.
func (tr *Triangulation) SpatialTraverse(r Rect, fn func(*Triangle)) {
	tr.locator.SpatialTraverse(r, fn)
}

// Locate finds the triangle believed to contain (x,y) and its relation.
func (tr *Triangulation) Locate(x, y float64) (*Triangle, PointTriangleRelation) {
	return tr.locator.Locate(x, y)
}

// addTriangle registers t with the locator and bumps the live count.
func (tr *Triangulation) addTriangle(t *Triangle) {
	tr.locator.AddTriangle(t)
	tr.triangleCount++
}

// destroyTriangle removes t from the locator, decrements the live
// count, and releases its vertex references, destroying any vertex
// whose refcount reaches zero.
func (tr *Triangulation) destroyTriangle(t *Triangle) {
	tr.locator.RemoveTriangle(t)
	tr.triangleCount--
	for _, v := range t.v {
		v.release()
	}
}

// Teardown walks every triangle, decrementing vertex refcounts and
// freeing triangles -- the explicit mesh teardown of spec.md §3.
func (tr *Triangulation) Teardown() {
	var all []*Triangle
	tr.locator.Traverse(func(t *Triangle) { all = append(all, t) })
	for _, t := range all {
		tr.destroyTriangle(t)
	}
}

// VertexCount returns the number of distinct vertices currently
// referenced by at least one alive triangle, excluding the
// supersimplex corners.
func (tr *Triangulation) VertexCount() int {
	seen := make(map[*Vertex]bool)
	tr.TraverseOutput(func(t *Triangle) {
		for _, v := range t.v {
			if !v.Point.IsSuperSimplex() {
				seen[v] = true
			}
		}
	})
	return len(seen)
}

// Vertices returns every distinct non-supersimplex vertex currently
// referenced by an alive triangle.
func (tr *Triangulation) Vertices() []*Vertex {
	seen := make(map[*Vertex]bool)
	var out []*Vertex
	tr.TraverseOutput(func(t *Triangle) {
		for _, v := range t.v {
			if v.Point.IsSuperSimplex() {
				continue
			}
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	})
	return out
}
