package delaunay

// Triangle is an ordered triple of vertex references (counterclockwise)
// plus three neighbor-triangle references at edges (v0,v1), (v1,v2),
// (v2,v0). A nil neighbor entry means "absent" (boundary).
type Triangle struct {
	v [3]*Vertex
	n [3]*Triangle

	// locatorNode is opaque storage the active Locator strategy
	// may use to find this triangle's index entry in O(1) on removal.
	locatorNode interface{}
}

// NewTriangle builds a triangle over (a,b,c), which must already be in
// CCW order, and increments each vertex's reference count.
func NewTriangle(a, b, c *Vertex) *Triangle {
	t := &Triangle{}
	t.v[0], t.v[1], t.v[2] = a, b, c
	a.addRef()
	b.addRef()
	c.addRef()
	return t
}

// Vertex returns the vertex at index i (0..2).
func (t *Triangle) Vertex(i int) *Vertex { return t.v[i] }

// Neighbor returns the neighbor triangle across edge i (0..2), or nil.
func (t *Triangle) Neighbor(i int) *Triangle { return t.n[i] }

// SetVertex replaces the vertex at slot i, incrementing the new
// vertex's refcount and decrementing the outgoing vertex's refcount
// (which may leave it unreferenced; the caller owns handling that,
// using the returned vertex and flag).
func (t *Triangle) SetVertex(i int, v *Vertex) (released *Vertex, shouldDestroy bool) {
	old := t.v[i]
	t.v[i] = v
	v.addRef()
	if old != nil {
		if old.release() {
			return old, true
		}
	}
	return nil, false
}

// SetNeighbor assigns the neighbor reference at slot i. Symmetry (N's
// back-pointer to T) is the caller's responsibility.
func (t *Triangle) SetNeighbor(i int, n *Triangle) {
	t.n[i] = n
}

// NeighborIndexOf finds which of t's three neighbor slots points to
// other, returning -1 if other is not a neighbor of t.
func (t *Triangle) NeighborIndexOf(other *Triangle) int {
	for i := 0; i < 3; i++ {
		if t.n[i] == other {
			return i
		}
	}
	return -1
}

// edgeVertices returns the two vertices bounding edge i: (v[i], v[(i+1)%3]).
func (t *Triangle) edgeVertices(i int) (*Vertex, *Vertex) {
	return t.v[i], t.v[(i+1)%3]
}

// OppositeVertexIndex returns the vertex index (0,1,2) in t that is not on
// edge i, i.e. the vertex opposite edge i.
func (t *Triangle) OppositeVertexIndex(i int) int {
	return (i + 2) % 3
}

// OppositeVertex returns the vertex of the neighbor across edge i that
// is not shared with t, or nil if there is no neighbor there.
func (t *Triangle) OppositeVertex(i int) *Vertex {
	nb := t.n[i]
	if nb == nil {
		return nil
	}
	idx := nb.NeighborIndexOf(t)
	if idx < 0 {
		return nil
	}
	return nb.v[nb.OppositeVertexIndex(idx)]
}

// IsSuperSimplex reports whether any vertex of t belongs to the
// supersimplex; such triangles are filtered from output traversals.
func (t *Triangle) IsSuperSimplex() bool {
	return t.v[0].Point.IsSuperSimplex() || t.v[1].Point.IsSuperSimplex() || t.v[2].Point.IsSuperSimplex()
}

// HasVertex reports whether v is one of t's three corners.
func (t *Triangle) HasVertex(v *Vertex) bool {
	return t.v[0] == v || t.v[1] == v || t.v[2] == v
}

// IndexOfVertex returns the 0..2 slot of v in t, or -1.
func (t *Triangle) IndexOfVertex(v *Vertex) int {
	for i := 0; i < 3; i++ {
		if t.v[i] == v {
			return i
		}
	}
	return -1
}

// setNeighborSymmetric assigns t's neighbor slot i to n and, if n is
// non-nil, updates n's back-pointer to t at the edge shared with t.
// edgeOnN is the slot on n that borders t.
func setNeighborSymmetric(t *Triangle, i int, n *Triangle, edgeOnN int) {
	t.n[i] = n
	if n != nil {
		n.n[edgeOnN] = t
	}
}

// rewireBackPointer finds the slot on n that used to point to oldT and
// repoints it to newT. Used after a flip/split rewires a neighbor's
// identity. Does nothing if n is nil or doesn't reference oldT.
func rewireBackPointer(n, oldT, newT *Triangle) {
	if n == nil {
		return
	}
	idx := n.NeighborIndexOf(oldT)
	if idx >= 0 {
		n.n[idx] = newT
	}
}

// flipEdge performs the standard two-triangle quadrilateral flip across
// edge i of t. Let Topp be t's neighbor across edge i. t has vertices
// (A,B,C) with edge i = (v[i], v[i+1]) = (A,B) and opposite vertex
// C = v[(i+2)%3]. Topp shares edge (A,B) and has opposite vertex D.
// After the flip, t becomes (D,C,B)-rooted... in practice it is
// simplest (and matches the reference engine's approach) to rebuild
// both triangles' vertex triples directly: the new diagonal is (C,D)
// instead of (A,B), producing triangles (A,D,C) and (D,B,C) in CCW
// order, each retaining one of the two peripheral neighbors of the
// original pair on each side.
//
// flipEdge returns the two new/reused triangles (c, d) on success, or
// (nil, nil, false) if there is no neighbor across edge i.
//
// Both t and topp keep their identity across the flip but change
// bounding box, since their vertex triples are rewritten in place
// rather than replaced by fresh triangles. loc is the triangulation's
// active Locator, told to drop each triangle under its pre-flip box
// and re-index it under the post-flip one -- otherwise a spatial
// locator bucketing by bounding box would keep indexing it by
// geometry it no longer has.
func flipEdge(loc Locator, t *Triangle, i int) (outT1, outT2 *Triangle, ok bool) {
	topp := t.n[i]
	if topp == nil {
		return nil, nil, false
	}
	j := topp.NeighborIndexOf(t)
	if j < 0 {
		return nil, nil, false
	}

	A := t.v[i]
	B := t.v[(i+1)%3]
	C := t.v[(i+2)%3]
	D := topp.v[(j+2)%3]

	// Peripheral neighbors, named by the edge they sit on before the flip:
	// t's other two edges: (B,C) at slot (i+1)%3, (C,A) at slot (i+2)%3.
	nBC := t.n[(i+1)%3]
	nBCidx := 0
	if nBC != nil {
		nBCidx = nBC.NeighborIndexOf(t)
	}
	nCA := t.n[(i+2)%3]
	nCAidx := 0
	if nCA != nil {
		nCAidx = nCA.NeighborIndexOf(t)
	}
	// topp's other two edges: (D,A) at slot (j+1)%3, (B,D) at slot (j+2)%3.
	nDA := topp.n[(j+1)%3]
	nDAidx := 0
	if nDA != nil {
		nDAidx = nDA.NeighborIndexOf(topp)
	}
	nBD := topp.n[(j+2)%3]
	nBDidx := 0
	if nBD != nil {
		nBDidx = nBD.NeighborIndexOf(topp)
	}

	// Reuse t as triangle (A,D,C) and topp as triangle (D,B,C); the new
	// shared edge is (D,C) / (C,D). Remove before mutating (the locator
	// still has each triangle's pre-flip box on hand) and re-add after
	// (so it picks up the post-flip one).
	loc.RemoveTriangle(t)
	loc.RemoveTriangle(topp)

	replaceVertexInPlace(t, A, D, C)
	replaceVertexInPlace(topp, D, B, C)

	// t = (A,D,C): edges are (A,D) slot0, (D,C) slot1, (C,A) slot2.
	t.n[0] = nDA
	t.n[1] = topp
	t.n[2] = nCA
	if nDA != nil {
		nDA.n[nDAidx] = t
	}
	if nCA != nil {
		nCA.n[nCAidx] = t
	}

	// topp = (D,B,C): edges are (D,B) slot0, (B,C) slot1, (C,D) slot2.
	topp.n[0] = nBD
	topp.n[1] = nBC
	topp.n[2] = t
	if nBD != nil {
		nBD.n[nBDidx] = topp
	}
	if nBC != nil {
		nBC.n[nBCidx] = topp
	}

	loc.AddTriangle(t)
	loc.AddTriangle(topp)

	return t, topp, true
}

// replaceVertexInPlace overwrites t's vertex triple with (a,b,c),
// adjusting reference counts: new vertices gain a reference, vertices
// no longer present in the triple lose one. Nothing is returned and
// no vertex is destroyed here; a vertex whose count drops to zero is
// simply no longer referenced by any triangle.
func replaceVertexInPlace(t *Triangle, a, b, c *Vertex) {
	old := t.v
	t.v[0], t.v[1], t.v[2] = a, b, c
	a.addRef()
	b.addRef()
	c.addRef()
	for _, ov := range old {
		ov.release()
	}
}
