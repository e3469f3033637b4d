package delaunay

import "math"

// Reduce removes up to n vertices in increasing order of interpolation
// error, per spec.md §4.8 "Reduction". It stops early once no
// finite-error (removable) vertex remains. It returns the number of
// vertices actually removed.
func (tr *Triangulation) Reduce(n int) int {
	return tr.runErrorDrivenRemoval(func(removed int, nextErr float64) bool {
		return removed >= n
	})
}

// Simplify is the threshold dual of Reduce: it keeps removing the
// minimum-error vertex until the next candidate's error exceeds eps or
// maxIter removals have happened. It returns the number of vertices
// actually removed.
func (tr *Triangulation) Simplify(eps float64, maxIter int) int {
	return tr.runErrorDrivenRemoval(func(removed int, nextErr float64) bool {
		return removed >= maxIter || nextErr > eps
	})
}

// runErrorDrivenRemoval drives the shared Reduce/Simplify loop: compute
// every vertex's error once, then repeatedly remove the minimum-error
// vertex and recompute error only for the vertices whose neighborhood
// the removal disturbed (spec.md §4.8 step (b)). stop is consulted
// with the removal count so far and the error of the next candidate;
// it decides whether to continue.
func (tr *Triangulation) runErrorDrivenRemoval(stop func(removed int, nextErr float64) bool) int {
	cache := make(map[*Vertex]float64)
	for _, v := range tr.Vertices() {
		tr.UpdateVertexError(v)
		cache[v] = v.Point.Error
	}

	removed := 0
	for {
		best, bestErr := minErrorVertex(cache)
		if best == nil || math.IsInf(bestErr, 1) {
			break
		}
		if stop(removed, bestErr) {
			break
		}

		neighbors, _ := tr.linkNeighborVertices(best)

		if err := tr.Remove(best); err != nil {
			// No progress (or otherwise unremovable): drop it from
			// further consideration so the loop does not spin on it.
			delete(cache, best)
			continue
		}
		delete(cache, best)
		removed++

		for _, nb := range neighbors {
			if _, ok := cache[nb]; ok {
				tr.UpdateVertexError(nb)
				cache[nb] = nb.Point.Error
			}
		}
	}
	return removed
}

func minErrorVertex(cache map[*Vertex]float64) (*Vertex, float64) {
	var best *Vertex
	bestErr := math.Inf(1)
	for v, e := range cache {
		if e < bestErr {
			bestErr = e
			best = v
		}
	}
	return best, bestErr
}
