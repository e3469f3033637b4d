package tiledriver

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/openwebglobe/terrain/internal/delaunay"
)

func TestBuildMeshCenterTileOnly(t *testing.T) {
	full := delaunay.Rect{X0: -2, Y0: -2, X1: 2, Y1: 2}
	center := delaunay.Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}
	points := []delaunay.ElevationPoint{
		{X: 0, Y: 0, Elevation: 50},
		{X: -1.5, Y: -1.5, Elevation: 10},
		{X: 1.5, Y: 1.5, Elevation: 10},
		{X: -1.5, Y: 1.5, Elevation: 10},
		{X: 1.5, Y: -1.5, Elevation: 10},
	}

	mesh, err := BuildMesh(full, center, points, 512)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if len(mesh.Points) == 0 || len(mesh.Triangles) == 0 {
		t.Fatalf("BuildMesh produced an empty mesh: %+v", mesh)
	}
	if mesh.NW.X != center.X0 || mesh.NW.Y != center.Y1 {
		t.Fatalf("NW corner = %+v, want (%v,%v)", mesh.NW, center.X0, center.Y1)
	}
	for _, tri := range mesh.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(mesh.Points) {
				t.Fatalf("triangle index %d out of range (have %d points)", idx, len(mesh.Points))
			}
		}
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	mesh := &TileMesh{
		Points:    []Point{{X: 0, Y: 0, Elevation: 1}, {X: 1, Y: 0, Elevation: 2}, {X: 0, Y: 1, Elevation: 3}},
		Triangles: [][3]int{{0, 1, 2}},
	}
	path := filepath.Join(t.TempDir(), "tile.tri")
	if err := WriteCheckpoint(path, mesh); err != nil {
		t.Fatalf("WriteCheckpoint: %v", err)
	}
	got, err := ReadCheckpoint(path)
	if err != nil {
		t.Fatalf("ReadCheckpoint: %v", err)
	}
	if len(got.Points) != 3 || len(got.Triangles) != 1 {
		t.Fatalf("ReadCheckpoint = %+v, want 3 points / 1 triangle", got)
	}
	if got.Points[2].Elevation != 3 {
		t.Fatalf("Points[2].Elevation = %v, want 3", got.Points[2].Elevation)
	}
}

func TestReadCheckpointMissingFileIsEmpty(t *testing.T) {
	mesh, err := ReadCheckpoint(filepath.Join(t.TempDir(), "missing.tri"))
	if err != nil {
		t.Fatalf("ReadCheckpoint: %v", err)
	}
	if len(mesh.Points) != 0 {
		t.Fatalf("ReadCheckpoint on missing file = %+v, want empty", mesh)
	}
}

func TestResampleImageAlphaWeightedSkip(t *testing.T) {
	const size = 2
	solid := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			solid.SetRGBA(x, y, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}
	transparent := image.NewRGBA(image.Rect(0, 0, size, size))

	out := ResampleImage(solid, transparent, transparent, transparent, size)
	c := out.RGBAAt(0, 0)
	if c.R != 100 || c.A != 255 {
		t.Fatalf("ResampleImage top-left output pixel = %+v, want the solid NW child's average", c)
	}

	bottomRight := out.RGBAAt(size-1, size-1)
	if bottomRight.A != 0 {
		t.Fatalf("ResampleImage bottom-right output pixel = %+v, want fully transparent (SE child is transparent)", bottomRight)
	}
}

func TestResampleElevationGridSentinelPropagates(t *testing.T) {
	const size = 2
	flat := []float64{10, 10, 10, 10}
	withSentinel := []float64{ElevationSentinel, 10, 10, 10}

	out := ResampleElevationGrid(flat, flat, flat, withSentinel, size)
	found := false
	for _, v := range out {
		if v == ElevationSentinel {
			found = true
		}
	}
	if !found {
		t.Fatalf("ResampleElevationGrid(%v) = %v, want at least one sentinel cell", withSentinel, out)
	}
}
