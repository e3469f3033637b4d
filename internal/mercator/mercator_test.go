package mercator

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// S2 Mercator forward (sphere), spec.md §8.
func TestForwardSphericalScenarios(t *testing.T) {
	cases := []struct {
		lng, lat, x, y float64
	}{
		{0, 0, 0, 0},
		{180, 0, 1, 0},
		{0, 85.05112877980659, 0, 1},
	}
	for _, c := range cases {
		got := ForwardSpherical(c.lng, c.lat)
		if !almostEqual(got[0], c.x, 1e-12) || !almostEqual(got[1], c.y, 1e-12) {
			t.Errorf("ForwardSpherical(%v,%v) = %v, want (%v,%v)", c.lng, c.lat, got, c.x, c.y)
		}
	}
}

// Property 1: round-trip for every (lng, lat) with |lat| < SphericalMaxLatitude.
func TestRoundTripSpherical(t *testing.T) {
	for lngIdx := -18; lngIdx <= 18; lngIdx++ {
		for latIdx := -17; latIdx <= 17; latIdx++ {
			lng := float64(lngIdx) * 10
			lat := float64(latIdx) * 5
			if lat >= SphericalMaxLatitude || lat <= -SphericalMaxLatitude {
				continue
			}
			p := ForwardSpherical(lng, lat)
			gotLng, gotLat := ReverseSpherical(p)
			if !almostEqual(gotLng, lng, 1e-9) || !almostEqual(gotLat, lat, 1e-9) {
				t.Fatalf("round trip failed for (%v,%v): got (%v,%v)", lng, lat, gotLng, gotLat)
			}
		}
	}
}

func TestRoundTripEllipsoidal(t *testing.T) {
	for lngIdx := -18; lngIdx <= 18; lngIdx++ {
		for latIdx := -17; latIdx <= 17; latIdx++ {
			lng := float64(lngIdx) * 10
			lat := float64(latIdx) * 5
			if lat >= EllipsoidalMaxLatitude || lat <= -EllipsoidalMaxLatitude {
				continue
			}
			p := ForwardEllipsoidal(lng, lat)
			gotLng, gotLat := ReverseEllipsoidal(p)
			if !almostEqual(gotLng, lng, 1e-7) || !almostEqual(gotLat, lat, 1e-7) {
				t.Fatalf("round trip failed for (%v,%v): got (%v,%v)", lng, lat, gotLng, gotLat)
			}
		}
	}
}

func TestLatitudeClamp(t *testing.T) {
	p := ForwardSpherical(0, 89)
	if !almostEqual(p[1], 1.0, 1e-9) {
		t.Errorf("expected clamp to y=1, got %v", p[1])
	}
	p2 := ForwardSpherical(0, -89)
	if !almostEqual(p2[1], -1.0, 1e-9) {
		t.Errorf("expected clamp to y=-1, got %v", p2[1])
	}
}

func TestLongitudeNormalization(t *testing.T) {
	lng, _ := ReverseSpherical(ForwardSpherical(540, 0))
	if !almostEqual(lng, 180, 1e-9) && !almostEqual(lng, -180, 1e-9) {
		t.Errorf("expected normalized longitude near ±180, got %v", lng)
	}
}
