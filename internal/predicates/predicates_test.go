package predicates

import "testing"

func TestCCW(t *testing.T) {
	a := XY{0, 0}
	b := XY{1, 0}
	c := XY{0, 1}
	if v := CCW(a, b, c); v <= 0 {
		t.Errorf("expected CCW triangle to have positive signed area, got %v", v)
	}
	if v := CCW(a, c, b); v >= 0 {
		t.Errorf("expected CW triangle to have negative signed area, got %v", v)
	}
}

func TestInCircle(t *testing.T) {
	a := XY{-1, -1}
	b := XY{1, -1}
	c := XY{0, 1}
	center := XY{0, 0}
	far := XY{100, 100}
	if !InCircle(a, b, c, center) {
		t.Errorf("expected center point to be inside circumcircle")
	}
	if InCircle(a, b, c, far) {
		t.Errorf("expected far point to be outside circumcircle")
	}
}

func TestFindOrientedIntersection(t *testing.T) {
	a := XY{0, 0}
	b := XY{2, 2}
	c := XY{0, 2}
	d := XY{2, 0}
	res := FindOrientedIntersection(a, b, c, d)
	if !res.Found {
		t.Fatal("expected crossing segments to intersect")
	}
	if res.T < 0.49 || res.T > 0.51 {
		t.Errorf("expected intersection near midpoint, got t=%v", res.T)
	}

	// Collinear: no intersection reported.
	e := XY{0, 0}
	f := XY{1, 0}
	g := XY{2, 0}
	h := XY{3, 0}
	res2 := FindOrientedIntersection(e, f, g, h)
	if res2.Found {
		t.Errorf("expected collinear segments to report no intersection")
	}

	// Non-crossing (parallel offset).
	res3 := FindOrientedIntersection(XY{0, 0}, XY{1, 0}, XY{0, 1}, XY{1, 1})
	if res3.Found {
		t.Errorf("expected non-crossing segments to report no intersection")
	}
}
