package delaunay

import (
	"math"

	"github.com/openwebglobe/terrain/internal/predicates"
)

// QueryElevation locates (x,y) in tr and returns its interpolated
// elevation via barycentric weights computed from signed sub-triangle
// areas, per spec.md §4.8 "elevation query". ok is false for an
// Outside or Invalid relation.
func QueryElevation(tr *Triangulation, x, y float64) (elevation float64, ok bool) {
	t, rel := tr.Locate(x, y)
	if t == nil || rel == Outside || rel == Invalid {
		return 0, false
	}
	if rel.IsVertex() {
		return t.Vertex(rel.VertexIndex()).Point.Elevation, true
	}

	a, b, c := t.v[0], t.v[1], t.v[2]
	areaABC := predicates.CCW(a, b, c)
	if areaABC == 0 {
		return 0, false
	}
	p := predicates.XY{Px: x, Py: y}
	r := predicates.CCW(p, b, c) / areaABC
	s := predicates.CCW(a, p, c) / areaABC
	u := predicates.CCW(a, b, p) / areaABC

	return r*a.Point.Elevation + s*b.Point.Elevation + u*c.Point.Elevation, true
}

// linkNeighborVertices returns the distinct vertices forming v's link
// polygon (the surrounding polygon P_v of spec.md §4.8), in the CCW
// order the link walk visits them.
func (tr *Triangulation) linkNeighborVertices(v *Vertex) ([]*Vertex, bool) {
	ring, ok := tr.vertexLink(v)
	if !ok {
		return nil, false
	}
	seen := make(map[*Vertex]bool, len(ring))
	out := make([]*Vertex, 0, len(ring))
	for _, e := range ring {
		lv := e.t.v[(e.idx+1)%3]
		if !seen[lv] {
			seen[lv] = true
			out = append(out, lv)
		}
	}
	return out, true
}

// UpdateVertexError recomputes v.Point.Error per spec.md §4.8: a local
// Delaunay triangulation is built over v's link polygon alone (v
// itself excluded), and the error is the absolute difference between
// v's stored elevation and the local triangulation's interpolated
// elevation at v's coordinates. Corner vertices, and any vertex whose
// link touches a corner, are protected (error = +Inf).
func (tr *Triangulation) UpdateVertexError(v *Vertex) {
	if !v.Point.Removable() {
		v.Point.Error = ErrorProtected
		return
	}

	neighbors, ok := tr.linkNeighborVertices(v)
	if !ok || len(neighbors) < 3 {
		v.Point.Error = ErrorProtected
		return
	}
	for _, nb := range neighbors {
		if nb.Point.IsCorner() {
			v.Point.Error = ErrorProtected
			return
		}
	}

	x0, y0, x1, y1 := neighbors[0].X(), neighbors[0].Y(), neighbors[0].X(), neighbors[0].Y()
	for _, nb := range neighbors[1:] {
		x0, x1 = math.Min(x0, nb.X()), math.Max(x1, nb.X())
		y0, y1 = math.Min(y0, nb.Y()), math.Max(y1, nb.Y())
	}
	local := NewTriangulation(Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}, LocatorLinear)

	for _, nb := range neighbors {
		local.Insert(nb.Point)
	}

	elev, okQ := QueryElevation(local, v.Point.X, v.Point.Y)
	local.Teardown()
	if !okQ {
		v.Point.Error = ErrorProtected
		return
	}
	v.Point.Error = math.Abs(elev - v.Point.Elevation)
}
