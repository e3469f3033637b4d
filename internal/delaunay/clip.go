package delaunay

import (
	"math"
	"sort"

	"github.com/openwebglobe/terrain/internal/predicates"
)

// ClipResult is the output of IntersectRect, per spec.md §4.9: the
// four tile corners, the filtered per-side edge-intersection lists,
// the interior point list, and a triangulation rebuilt from exactly
// those points.
type ClipResult struct {
	NW, NE, SE, SW             ElevationPoint
	North, East, South, West []ElevationPoint
	Interior                 []ElevationPoint
	Rebuilt                  *Triangulation
}

// IntersectRect intersects tr with rectangle [x0,x1]x[y0,y1] and
// rebuilds a fresh triangulation from the clipped result, per
// spec.md §4.9. The four corners use weight = WeightCorner, edge
// intersections use weight = WeightEdgeCut, and interior points keep
// their original weight.
func (tr *Triangulation) IntersectRect(x0, y0, x1, y1 float64) (*ClipResult, error) {
	r := Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}

	corner := func(x, y float64) (ElevationPoint, error) {
		elev, ok := QueryElevation(tr, x, y)
		if !ok {
			return ElevationPoint{}, ErrOutsideBounds
		}
		return ElevationPoint{X: x, Y: y, Elevation: elev, Weight: WeightCorner, Error: ErrorNotComputed}, nil
	}

	nw, err := corner(x0, y1)
	if err != nil {
		return nil, err
	}
	ne, err := corner(x1, y1)
	if err != nil {
		return nil, err
	}
	se, err := corner(x1, y0)
	if err != nil {
		return nil, err
	}
	sw, err := corner(x0, y0)
	if err != nil {
		return nil, err
	}

	north := collectEdgeIntersections(tr, predicates.XY{Px: x0, Py: y1}, predicates.XY{Px: x1, Py: y1}, true, y1)
	south := collectEdgeIntersections(tr, predicates.XY{Px: x0, Py: y0}, predicates.XY{Px: x1, Py: y0}, true, y0)
	east := collectEdgeIntersections(tr, predicates.XY{Px: x1, Py: y0}, predicates.XY{Px: x1, Py: y1}, false, x1)
	west := collectEdgeIntersections(tr, predicates.XY{Px: x0, Py: y0}, predicates.XY{Px: x0, Py: y1}, false, x0)

	var interior []ElevationPoint
	seen := make(map[*Vertex]bool)
	tr.TraverseOutput(func(t *Triangle) {
		for _, v := range t.v {
			if seen[v] {
				continue
			}
			seen[v] = true
			if r.ContainsOpen(v.X(), v.Y()) {
				interior = append(interior, v.Point)
			}
		}
	})

	corners := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	// dfXMax/dfYMax fix: each edge list is thinned against its own
	// axis span (X for north/south, Y for east/west), not always the X
	// span. The corner-proximity radius uses the X span.
	cornerProximity := math.Abs(x1-x0) / 34
	north = sortAndThinEdge(dropNearCorners(north, cornerProximity, corners), math.Abs(x1-x0), true)
	south = sortAndThinEdge(dropNearCorners(south, cornerProximity, corners), math.Abs(x1-x0), true)
	east = sortAndThinEdge(dropNearCorners(east, cornerProximity, corners), math.Abs(y1-y0), false)
	west = sortAndThinEdge(dropNearCorners(west, cornerProximity, corners), math.Abs(y1-y0), false)
	interior = shellSortInterior(dropNearCorners(interior, cornerProximity, corners))

	rebuilt := NewTriangulation(r, LocatorLinear)
	for _, p := range []ElevationPoint{nw, ne, se, sw} {
		rebuilt.Insert(p)
	}
	for _, side := range [][]ElevationPoint{north, east, south, west} {
		for _, p := range side {
			rebuilt.Insert(p)
		}
	}
	for _, p := range interior {
		rebuilt.Insert(p)
	}

	return &ClipResult{
		NW: nw, NE: ne, SE: se, SW: sw,
		North: north, East: east, South: south, West: west,
		Interior: interior,
		Rebuilt:  rebuilt,
	}, nil
}

// collectEdgeIntersections walks every triangle edge exactly once and
// reports every point where it properly crosses the segment (segA,
// segB), snapping the constrained coordinate onto the exact rectangle
// line (snapValue is a Y coordinate when snapToY, otherwise an X).
func collectEdgeIntersections(tr *Triangulation, segA, segB predicates.XY, snapToY bool, snapValue float64) []ElevationPoint {
	seen := make(map[*Vertex]map[*Vertex]bool)
	edgeSeen := func(a, b *Vertex) bool {
		if seen[a] != nil && seen[a][b] {
			return true
		}
		if seen[b] != nil && seen[b][a] {
			return true
		}
		return false
	}
	markSeen := func(a, b *Vertex) {
		if seen[a] == nil {
			seen[a] = make(map[*Vertex]bool)
		}
		seen[a][b] = true
	}

	var out []ElevationPoint
	tr.TraverseOutput(func(t *Triangle) {
		for i := 0; i < 3; i++ {
			a, b := t.v[i], t.v[(i+1)%3]
			if edgeSeen(a, b) {
				continue
			}
			markSeen(a, b)

			res := predicates.FindOrientedIntersection(a, b, segA, segB)
			if !res.Found {
				continue
			}
			x := a.X() + res.T*(b.X()-a.X())
			y := a.Y() + res.T*(b.Y()-a.Y())
			if snapToY {
				y = snapValue
			} else {
				x = snapValue
			}
			elev := a.Point.Elevation + res.T*(b.Point.Elevation-a.Point.Elevation)
			out = append(out, ElevationPoint{X: x, Y: y, Elevation: elev, Weight: WeightEdgeCut, Error: ErrorNotComputed})
		}
	})
	return out
}

// dropNearCorners filters out points within threshold of any of the
// four rectangle corners.
func dropNearCorners(points []ElevationPoint, threshold float64, corners [][2]float64) []ElevationPoint {
	out := make([]ElevationPoint, 0, len(points))
	for _, p := range points {
		near := false
		for _, c := range corners {
			if math.Hypot(p.X-c[0], p.Y-c[1]) < threshold {
				near = true
				break
			}
		}
		if !near {
			out = append(out, p)
		}
	}
	return out
}

// sortAndThinEdge sorts points along their dominant axis (X for
// north/south, Y for east/west) and drops any point within
// edgeLength/17 of the previously kept point.
func sortAndThinEdge(points []ElevationPoint, edgeLength float64, axisX bool) []ElevationPoint {
	axis := func(p ElevationPoint) float64 {
		if axisX {
			return p.X
		}
		return p.Y
	}
	sort.Slice(points, func(i, j int) bool { return axis(points[i]) < axis(points[j]) })
	if len(points) == 0 {
		return points
	}
	minGap := edgeLength / 17
	kept := points[:1]
	for _, p := range points[1:] {
		if axis(p)-axis(kept[len(kept)-1]) >= minGap {
			kept = append(kept, p)
		}
	}
	return kept
}

// shellSortInterior orders the interior point list by (x,y) using a
// classic shell sort, per spec.md §4.9 step 4.
func shellSortInterior(points []ElevationPoint) []ElevationPoint {
	less := func(a, b ElevationPoint) bool {
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	}
	n := len(points)
	for gap := n / 2; gap > 0; gap /= 2 {
		for i := gap; i < n; i++ {
			tmp := points[i]
			j := i
			for j >= gap && less(tmp, points[j-gap]) {
				points[j] = points[j-gap]
				j -= gap
			}
			points[j] = tmp
		}
	}
	return points
}
