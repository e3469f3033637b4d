package delaunay

import "github.com/openwebglobe/terrain/internal/predicates"

// Insert adds p to the triangulation, per spec.md §4.6. The point is
// located first; Outside or Invalid (predicate indeterminacy) reject
// the insertion, as does landing exactly on an existing vertex
// (ErrDuplicateVertex, honoring the existing vertex). Otherwise the
// containing triangle is split -- three ways if p falls strictly
// inside, two ways if it falls on a shared edge -- and the new
// triangles are legalized outward by recursive Delaunay edge flips.
func (tr *Triangulation) Insert(p ElevationPoint) (*Vertex, error) {
	t, rel := tr.Locate(p.X, p.Y)
	if t == nil || rel == Outside {
		return nil, ErrOutsideBounds
	}
	if rel == Invalid {
		return nil, ErrIndeterminate
	}
	if rel.IsVertex() {
		return t.Vertex(rel.VertexIndex()), ErrDuplicateVertex
	}

	v := NewVertex(p)

	if rel.IsEdge() {
		tr.splitOnEdge(t, rel.EdgeIndex(), v)
	} else {
		tr.splitInTriangle(t, v)
	}

	return v, nil
}

// splitInTriangle replaces t=(A,B,C) with three triangles sharing v:
// (A,B,v), (B,C,v), (C,A,v), then legalizes each new triangle's
// outward edge.
func (tr *Triangulation) splitInTriangle(t *Triangle, v *Vertex) {
	A, B, C := t.v[0], t.v[1], t.v[2]
	n0, n1, n2 := t.n[0], t.n[1], t.n[2]

	tr.locator.RemoveTriangle(t) // t's box shrinks to (A,B,v); reindex around the mutation
	replaceVertexInPlace(t, A, B, v) // t reused as T1 = (A,B,v)
	tr.locator.AddTriangle(t)
	t2 := NewTriangle(B, C, v)
	t3 := NewTriangle(C, A, v)

	rewireBackPointer(n1, t, t2)
	rewireBackPointer(n2, t, t3)

	t.n[0], t.n[1], t.n[2] = n0, t2, t3
	t2.n[0], t2.n[1], t2.n[2] = n1, t3, t
	t3.n[0], t3.n[1], t3.n[2] = n2, t, t2

	tr.addTriangle(t2)
	tr.addTriangle(t3)

	tr.legalize(t, 0)
	tr.legalize(t2, 0)
	tr.legalize(t3, 0)
}

// splitOnEdge handles p landing on edge k of t, shared with topp (t's
// neighbor across that edge, possibly nil at a boundary). t=(A,B,C)
// with edge k=(A,B) and apex C splits into (A,v,C) and (v,B,C); topp,
// sharing the same edge in reverse as (B,A,D), splits into (B,v,D) and
// (v,A,D). The two pairs are stitched together along the two halves
// of the original edge, and the four outward edges are legalized.
func (tr *Triangulation) splitOnEdge(t *Triangle, k int, v *Vertex) {
	topp := t.n[k]

	A := t.v[k]
	B := t.v[(k+1)%3]
	C := t.v[(k+2)%3]
	nBC := t.n[(k+1)%3]
	nCA := t.n[(k+2)%3]

	tr.locator.RemoveTriangle(t)
	replaceVertexInPlace(t, A, v, C) // t reused as (A,v,C)
	tr.locator.AddTriangle(t)
	tHalf2 := NewTriangle(v, B, C)

	rewireBackPointer(nBC, t, tHalf2)

	tHalf2.n[1] = nBC
	tHalf2.n[2] = t
	t.n[1] = tHalf2
	t.n[2] = nCA

	tr.addTriangle(tHalf2)

	if topp == nil {
		t.n[0] = nil
		tHalf2.n[0] = nil
		tr.legalize(t, 2)
		tr.legalize(tHalf2, 1)
		return
	}

	j := topp.NeighborIndexOf(t)
	D := topp.v[(j+2)%3]
	nAD := topp.n[(j+1)%3]
	nDB := topp.n[(j+2)%3]

	tr.locator.RemoveTriangle(topp)
	replaceVertexInPlace(topp, B, v, D) // topp reused as (B,v,D)
	tr.locator.AddTriangle(topp)
	oppHalf2 := NewTriangle(v, A, D)

	rewireBackPointer(nAD, topp, oppHalf2)

	topp.n[0] = tHalf2
	topp.n[1] = oppHalf2
	topp.n[2] = nDB

	oppHalf2.n[0] = t
	oppHalf2.n[1] = nAD
	oppHalf2.n[2] = topp

	t.n[0] = oppHalf2
	tHalf2.n[0] = topp

	tr.addTriangle(oppHalf2)

	tr.legalize(t, 2)
	tr.legalize(tHalf2, 1)
	tr.legalize(topp, 2)
	tr.legalize(oppHalf2, 1)
}

// legalize tests triangle t's edge idx against its neighbor and flips
// it if the neighbor's opposite vertex lies inside t's circumcircle,
// per spec.md §4.6. Flips where both opposite corners belong to the
// supersimplex are skipped -- the supersimplex is never disturbed.
// After a flip both resulting triangles are recursively legalized on
// their two new outward edges.
func (tr *Triangulation) legalize(t *Triangle, idx int) {
	topp := t.n[idx]
	if topp == nil {
		return
	}
	j := topp.NeighborIndexOf(t)
	if j < 0 {
		return
	}

	A := t.v[idx]
	B := t.v[(idx+1)%3]
	C := t.v[(idx+2)%3]
	D := topp.v[(j+2)%3]

	if C.Point.IsSuperSimplex() && D.Point.IsSuperSimplex() {
		return
	}

	// The flip is only topologically valid if the quadrilateral A,B,D,C
	// is convex, i.e. diagonals (A,B) and (C,D) actually cross.
	if !predicates.FindOrientedIntersection(A, B, C, D).Found {
		return
	}

	if !predicates.InCircle(A, B, C, D) {
		return
	}

	t1, t2, ok := flipEdge(tr.locator, t, idx)
	if !ok {
		return
	}

	// t1 = (A,D,C) reusing t; outward edges at slot0 (A,D) and slot2 (C,A).
	// t2 = (D,B,C) reusing topp; outward edges at slot0 (D,B) and slot1 (B,C).
	tr.legalize(t1, 0)
	tr.legalize(t1, 2)
	tr.legalize(t2, 0)
	tr.legalize(t2, 1)
}
