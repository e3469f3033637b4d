package quadtree

import (
	"math"
	"testing"
)

// S1 Quadkey walk, spec.md §8.
func TestQuadkeyWalkScenario(t *testing.T) {
	qk := TileToQuadkey(3, 5, 3)
	if qk != "213" {
		t.Fatalf("TileToQuadkey(3,5,3) = %q, want %q", qk, "213")
	}
	tx, ty, lod, err := QuadkeyToTile("213")
	if err != nil {
		t.Fatal(err)
	}
	if tx != 3 || ty != 5 || lod != 3 {
		t.Fatalf("QuadkeyToTile(213) = (%d,%d,%d), want (3,5,3)", tx, ty, lod)
	}
}

// Property 2: quadkey bijection for lod in [0,24].
func TestQuadkeyBijection(t *testing.T) {
	for lod := 0; lod <= 24; lod++ {
		n := int64(1) << uint(lod)
		step := n/8 + 1
		for tx := int64(0); tx < n; tx += step {
			for ty := int64(0); ty < n; ty += step {
				qk := TileToQuadkey(tx, ty, lod)
				gtx, gty, glod, err := QuadkeyToTile(qk)
				if err != nil {
					t.Fatal(err)
				}
				if gtx != tx || gty != ty || glod != lod {
					t.Fatalf("bijection failed for (%d,%d,%d): quadkey %q -> (%d,%d,%d)",
						tx, ty, lod, qk, gtx, gty, glod)
				}
			}
		}
	}
}

// Property 3: sub-rectangle containment: a child's Mercator rect is
// contained within its parent's, and the four children of a tile
// tile the parent exactly.
func TestSubRectangleContainment(t *testing.T) {
	parent := "213"
	parentRect := QuadkeyToMercator(parent)

	var minX, minY = math.Inf(1), math.Inf(1)
	var maxX, maxY = math.Inf(-1), math.Inf(-1)

	for d := '0'; d <= '3'; d++ {
		child := parent + string(d)
		childRect := QuadkeyToMercator(child)

		if childRect.Min[0] < parentRect.Min[0]-1e-12 || childRect.Max[0] > parentRect.Max[0]+1e-12 ||
			childRect.Min[1] < parentRect.Min[1]-1e-12 || childRect.Max[1] > parentRect.Max[1]+1e-12 {
			t.Fatalf("child %q rect %v not contained in parent rect %v", child, childRect, parentRect)
		}

		if childRect.Min[0] < minX {
			minX = childRect.Min[0]
		}
		if childRect.Min[1] < minY {
			minY = childRect.Min[1]
		}
		if childRect.Max[0] > maxX {
			maxX = childRect.Max[0]
		}
		if childRect.Max[1] > maxY {
			maxY = childRect.Max[1]
		}
	}

	if math.Abs(minX-parentRect.Min[0]) > 1e-9 || math.Abs(minY-parentRect.Min[1]) > 1e-9 ||
		math.Abs(maxX-parentRect.Max[0]) > 1e-9 || math.Abs(maxY-parentRect.Max[1]) > 1e-9 {
		t.Fatalf("children union %v,%v,%v,%v does not tile parent %v", minX, minY, maxX, maxY, parentRect)
	}
}

func TestParentPositionQuadAt(t *testing.T) {
	qk := "2103"
	if Parent(qk) != "210" {
		t.Errorf("Parent(%q) = %q, want %q", qk, Parent(qk), "210")
	}
	if Position(qk) != 3 {
		t.Errorf("Position(%q) = %d, want 3", qk, Position(qk))
	}
	if QuadAt(qk, 1) != 1 {
		t.Errorf("QuadAt(%q,1) = %d, want 1", qk, QuadAt(qk, 1))
	}
}

func TestMapSize(t *testing.T) {
	if MapSize(0) != 256 {
		t.Errorf("MapSize(0) = %d, want 256", MapSize(0))
	}
	if MapSize(3) != 256*8 {
		t.Errorf("MapSize(3) = %d, want %d", MapSize(3), 256*8)
	}
}
