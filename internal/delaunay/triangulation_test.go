package delaunay

import (
	"math"
	"testing"
)

func TestInsertionScenario(t *testing.T) {
	// S3: insert {(-0.5,-0.5,10), (0.5,-0.5,20), (0,0.5,30), (0,0,40)} into
	// an empty triangulation over [-1,-1]x[1,1].
	tr := NewTriangulation(Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}, LocatorLinear)

	pts := []ElevationPoint{
		{X: -0.5, Y: -0.5, Elevation: 10},
		{X: 0.5, Y: -0.5, Elevation: 20},
		{X: 0, Y: 0.5, Elevation: 30},
		{X: 0, Y: 0, Elevation: 40},
	}
	for _, p := range pts {
		if _, err := tr.Insert(p); err != nil {
			t.Fatalf("Insert(%v) = %v", p, err)
		}
	}

	if got := tr.NonSuperSimplexTriangleCount(); got != 6 {
		t.Fatalf("NonSuperSimplexTriangleCount() = %d, want 6", got)
	}

	elev, ok := QueryElevation(tr, 0, 0)
	if !ok {
		t.Fatal("QueryElevation(0,0) reported not-ok")
	}
	if math.Abs(elev-40) > 1e-9 {
		t.Fatalf("QueryElevation(0,0) = %v, want 40", elev)
	}
}

func TestDuplicateRejection(t *testing.T) {
	tr := NewTriangulation(Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}, LocatorLinear)

	if _, err := tr.Insert(ElevationPoint{X: 0, Y: 0, Elevation: 100}); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	before := tr.TriangleCount()

	if _, err := tr.Insert(ElevationPoint{X: 0, Y: 0, Elevation: 100}); err != ErrDuplicateVertex {
		t.Fatalf("second Insert err = %v, want ErrDuplicateVertex", err)
	}
	if after := tr.TriangleCount(); after != before {
		t.Fatalf("triangle count changed on duplicate insert: %d -> %d", before, after)
	}
}

func TestInsertionIdempotence(t *testing.T) {
	// Property 5.
	tr := NewTriangulation(Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}, LocatorLinear)
	tr.Insert(ElevationPoint{X: -0.3, Y: -0.3, Elevation: 1})
	tr.Insert(ElevationPoint{X: 0.3, Y: -0.3, Elevation: 2})
	tr.Insert(ElevationPoint{X: 0, Y: 0.3, Elevation: 3})

	before := tr.TriangleCount()
	tr.Insert(ElevationPoint{X: 0.3, Y: -0.3, Elevation: 2})
	if after := tr.TriangleCount(); after != before {
		t.Fatalf("triangle count changed on idempotent insert: %d -> %d", before, after)
	}
}

func TestRemovalRestoresNeighborhood(t *testing.T) {
	// Property 6: insert(P) followed by remove(P) leaves the same
	// non-supersimplex triangle count as before the insertion.
	tr := NewTriangulation(Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}, LocatorLinear)
	for _, p := range []ElevationPoint{
		{X: -0.6, Y: -0.6, Elevation: 1},
		{X: 0.6, Y: -0.6, Elevation: 2},
		{X: 0.6, Y: 0.6, Elevation: 3},
		{X: -0.6, Y: 0.6, Elevation: 4},
		{X: -0.2, Y: 0.1, Elevation: 5},
		{X: 0.2, Y: -0.2, Elevation: 6},
	} {
		if _, err := tr.Insert(p); err != nil {
			t.Fatalf("Insert(%v) = %v", p, err)
		}
	}

	before := tr.NonSuperSimplexTriangleCount()

	v, err := tr.Insert(ElevationPoint{X: 0, Y: 0, Elevation: 42})
	if err != nil {
		t.Fatalf("Insert(0,0) = %v", err)
	}

	if err := tr.Remove(v); err != nil {
		t.Fatalf("Remove(0,0) = %v", err)
	}

	if after := tr.NonSuperSimplexTriangleCount(); after != before {
		t.Fatalf("triangle count after insert+remove = %d, want %d", after, before)
	}
}

func TestClipScenario(t *testing.T) {
	// S6: square corners plus one center point; intersect_rect on the
	// same square returns exactly those corners, no edge points, and one
	// interior point equal to the center.
	tr := NewTriangulation(Rect{X0: -2, Y0: -2, X1: 2, Y1: 2}, LocatorLinear)
	corners := []ElevationPoint{
		{X: -1, Y: -1, Elevation: 1},
		{X: 1, Y: -1, Elevation: 2},
		{X: 1, Y: 1, Elevation: 3},
		{X: -1, Y: 1, Elevation: 4},
	}
	for _, p := range corners {
		if _, err := tr.Insert(p); err != nil {
			t.Fatalf("Insert(%v) = %v", p, err)
		}
	}
	center := ElevationPoint{X: 0, Y: 0, Elevation: 100}
	if _, err := tr.Insert(center); err != nil {
		t.Fatalf("Insert(center) = %v", err)
	}

	result, err := tr.IntersectRect(-1, -1, 1, 1)
	if err != nil {
		t.Fatalf("IntersectRect: %v", err)
	}

	if len(result.North) != 0 || len(result.South) != 0 || len(result.East) != 0 || len(result.West) != 0 {
		t.Fatalf("expected no edge points, got N=%d E=%d S=%d W=%d",
			len(result.North), len(result.East), len(result.South), len(result.West))
	}
	if len(result.Interior) != 1 {
		t.Fatalf("expected exactly one interior point, got %d", len(result.Interior))
	}
	if result.Interior[0].X != 0 || result.Interior[0].Y != 0 || result.Interior[0].Elevation != 100 {
		t.Fatalf("interior point = %+v, want the center point", result.Interior[0])
	}

	wantCorner := func(got ElevationPoint, x, y, elev float64) {
		t.Helper()
		if got.X != x || got.Y != y || math.Abs(got.Elevation-elev) > 1e-9 {
			t.Fatalf("corner = %+v, want (%v,%v,%v)", got, x, y, elev)
		}
	}
	wantCorner(result.SW, -1, -1, 1)
	wantCorner(result.SE, 1, -1, 2)
	wantCorner(result.NE, 1, 1, 3)
	wantCorner(result.NW, -1, 1, 4)
}

func TestReduceMonotonicity(t *testing.T) {
	// Property 7: reduce(n) never increases triangle count, and removes
	// at most n vertices.
	tr := NewTriangulation(Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}, LocatorLinear)
	for gx := 1; gx < 8; gx++ {
		for gy := 1; gy < 8; gy++ {
			x, y := float64(gx), float64(gy)
			tr.Insert(ElevationPoint{X: x, Y: y, Elevation: x*x + y*y})
		}
	}
	before := tr.TriangleCount()
	removed := tr.Reduce(10)
	if removed > 10 {
		t.Fatalf("Reduce(10) removed %d vertices, want <= 10", removed)
	}
	if after := tr.TriangleCount(); after > before {
		t.Fatalf("triangle count increased after Reduce: %d -> %d", before, after)
	}
}
