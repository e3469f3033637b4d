package delaunay

import "github.com/openwebglobe/terrain/internal/predicates"

// linkEntry is one triangle of a vertex's link, paired with that
// vertex's slot index within the triangle.
type linkEntry struct {
	t   *Triangle
	idx int
}

// vertexLink walks the CCW fan of triangles around v, returning v's
// "link" per spec.md §4.7. It fails (ok=false) if the fan cannot be
// closed in under a sane number of steps or has fewer than three
// entries -- both indicate a supersimplex corner or a degenerate hole,
// neither of which removal supports.
func (tr *Triangulation) vertexLink(v *Vertex) (ring []linkEntry, ok bool) {
	t0, rel := tr.Locate(v.Point.X, v.Point.Y)
	if t0 == nil || !rel.IsVertex() {
		return nil, false
	}
	i0 := t0.IndexOfVertex(v)
	if i0 < 0 {
		return nil, false
	}

	cur, idx := t0, i0
	for {
		ring = append(ring, linkEntry{t: cur, idx: idx})
		nxt := cur.n[(idx+2)%3]
		if nxt == nil {
			return nil, false
		}
		nxtIdx := nxt.IndexOfVertex(v)
		if nxtIdx < 0 {
			return nil, false
		}
		cur, idx = nxt, nxtIdx
		if cur == t0 {
			break
		}
		if len(ring) > v.RefCount()+8 && len(ring) > 4096 {
			return nil, false
		}
	}
	if len(ring) < 3 {
		return nil, false
	}
	return ring, true
}

// Remove deletes a non-corner, non-supersimplex vertex, re-Delaunay
// the resulting hole by ear reduction, per spec.md §4.7. If the
// ear-reduction loop cannot accept any ear in a full pass, v stays in
// the triangulation with Point.Error = ErrorNoProgress and ErrNoProgress
// is returned -- "*WARNING* Detected infinite loop!" in the reference
// engine, honored here as the documented policy rather than a bug to
// route around. Edge flips already made for ears accepted earlier in
// the same call are not undone.
func (tr *Triangulation) Remove(v *Vertex) error {
	if !v.Point.Removable() {
		return ErrCornerVertex
	}

	ring, ok := tr.vertexLink(v)
	if !ok {
		return ErrLinkTooShort
	}

	for len(ring) > 3 {
		n := len(ring)
		lv := make([]*Vertex, n)
		for i, e := range ring {
			lv[i] = e.t.v[(e.idx+1)%3]
		}

		acceptedAt := -1
		for k := 0; k < n; k++ {
			kPrev := (k - 1 + n) % n
			kNext := (k + 1) % n
			s0, s1, s2 := lv[kPrev], lv[k], lv[kNext]

			if predicates.CCW(s0, s1, s2) <= 0 {
				continue
			}
			if predicates.CCW(s0, s2, v) < 0 {
				continue
			}

			empty := true
			for i, other := range lv {
				if i == kPrev || i == k || i == kNext {
					continue
				}
				if predicates.InCircle(s0, s1, s2, other) {
					empty = false
					break
				}
			}
			if !empty {
				continue
			}

			cur := ring[k]
			if _, _, ok := flipEdge(tr.locator, cur.t, cur.idx); !ok {
				continue
			}
			newIdx := cur.t.IndexOfVertex(v)
			if newIdx < 0 {
				continue
			}
			ring[k] = linkEntry{t: cur.t, idx: newIdx}
			ring = append(ring[:kPrev], ring[kPrev+1:]...)
			acceptedAt = k
			break
		}

		if acceptedAt < 0 {
			v.Point.Error = ErrorNoProgress
			return ErrNoProgress
		}
	}

	// Final stitch: three remaining link triangles enclose only v.
	lv := [3]*Vertex{
		ring[0].t.v[(ring[0].idx+1)%3],
		ring[1].t.v[(ring[1].idx+1)%3],
		ring[2].t.v[(ring[2].idx+1)%3],
	}
	outward := [3]*Triangle{
		ring[0].t.n[(ring[0].idx+1)%3],
		ring[1].t.n[(ring[1].idx+1)%3],
		ring[2].t.n[(ring[2].idx+1)%3],
	}

	newTri := NewTriangle(lv[0], lv[1], lv[2])
	rewireBackPointer(outward[1], ring[1].t, newTri)
	rewireBackPointer(outward[2], ring[2].t, newTri)
	rewireBackPointer(outward[0], ring[0].t, newTri)
	newTri.n[0] = outward[0]
	newTri.n[1] = outward[1]
	newTri.n[2] = outward[2]

	for _, e := range ring {
		tr.destroyTriangle(e.t)
	}
	tr.addTriangle(newTri)

	return nil
}
