package tiledriver

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// mercatorMetersPerUnit is half the equator's circumference, the
// scale factor spec.md §6's OBJ debug output applies to normalized
// Mercator (x,y): π · 6378137.0.
const mercatorMetersPerUnit = math.Pi * 6378137.0

// WriteOBJ writes mesh as a Wavefront OBJ debug dump, per spec.md §6:
// "v <x_meters> <elevation> <-y_meters>" per point and "f a b c" per
// triangle (1-based indices), with (x,y) scaled to meters and
// translated so the tile's centroid sits at the origin.
func WriteOBJ(path string, mesh *TileMesh) error {
	var cx, cy float64
	for _, p := range mesh.Points {
		cx += p.X
		cy += p.Y
	}
	if n := len(mesh.Points); n > 0 {
		cx /= float64(n)
		cy /= float64(n)
	}
	centroidX := cx * mercatorMetersPerUnit
	centroidY := cy * mercatorMetersPerUnit

	var b strings.Builder
	for _, p := range mesh.Points {
		x := p.X*mercatorMetersPerUnit - centroidX
		y := p.Y*mercatorMetersPerUnit - centroidY
		fmt.Fprintf(&b, "v %g %g %g\n", x, p.Elevation, -y)
	}
	for _, tri := range mesh.Triangles {
		fmt.Fprintf(&b, "f %d %d %d\n", tri[0]+1, tri[1]+1, tri[2]+1)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
