package tiledriver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/openwebglobe/terrain/internal/delaunay"
	"github.com/openwebglobe/terrain/internal/layerconfig"
	"github.com/openwebglobe/terrain/internal/quadtree"
	"github.com/openwebglobe/terrain/internal/tilestore"
)

// Driver processes individual output tiles for one layer, per
// spec.md §4.10.
type Driver struct {
	Layer     *layerconfig.Layer
	MaxPoints int
	NoLock    bool
}

// NewDriver returns a Driver bound to layer, reducing every tile mesh
// toward maxPoints vertices (spec.md §4.10 step 5, default 512..2048).
func NewDriver(layer *layerconfig.Layer, maxPoints int, noLock bool) *Driver {
	return &Driver{Layer: layer, MaxPoints: maxPoints, NoLock: noLock}
}

// tileRect returns tile (tx,ty,lod)'s Mercator rectangle.
func tileRect(tx, ty int64, lod int) delaunay.Rect {
	b := quadtree.QuadkeyToMercator(quadtree.TileToQuadkey(tx, ty, lod))
	return delaunay.Rect{X0: b.Min[0], Y0: b.Min[1], X1: b.Max[0], Y1: b.Max[1]}
}

// ProcessTile runs spec.md §4.10 steps 1-6 for output tile (tx,ty,lod):
// gather the 3×3 neighborhood's point sets, triangulate over their
// combined bound, clip to the center tile, reduce to MaxPoints, and
// serialize tile JSON plus a .tri checkpoint.
func (d *Driver) ProcessTile(tx, ty int64, lod int) error {
	center := tileRect(tx, ty, lod)
	neighborhood := center
	var points []delaunay.ElevationPoint

	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			ntx, nty := tx+dx, ty+dy
			neighborhood = neighborhood.Union(tileRect(ntx, nty, lod))

			ptsPath := d.Layer.TempTilePath(lod, ntx, nty, "pts")
			if _, statErr := os.Stat(ptsPath); os.IsNotExist(statErr) {
				continue
			}
			lock := tilestore.NewFileLock(ptsPath+".lock", d.NoLock)
			var neighborPoints []delaunay.ElevationPoint
			err := lock.WithLock(func() error {
				var readErr error
				neighborPoints, readErr = tilestore.ReadPTS(ptsPath)
				return readErr
			})
			if err != nil {
				// Missing input is treated as empty, per spec.md §7.3;
				// any other I/O failure aborts this tile only.
				return fmt.Errorf("tiledriver: read neighbor tile (%d,%d): %w", ntx, nty, err)
			}
			points = append(points, neighborPoints...)
		}
	}

	mesh, err := BuildMesh(neighborhood, center, points, d.MaxPoints)
	if err != nil {
		return fmt.Errorf("tiledriver: tile (%d,%d,%d): %w", tx, ty, lod, err)
	}

	jsonPath := d.Layer.TilePath(lod, tx, ty, "json")
	if err := layerconfig.EnsureTileDir(jsonPath); err != nil {
		return err
	}
	jsonLock := tilestore.NewFileLock(jsonPath+".lock", d.NoLock)
	if err := jsonLock.WithLock(func() error {
		return writeTileJSON(jsonPath, mesh)
	}); err != nil {
		return err
	}

	triPath := d.Layer.TempTilePath(lod, tx, ty, "tri")
	if err := layerconfig.EnsureTileDir(triPath); err != nil {
		return err
	}
	triLock := tilestore.NewFileLock(triPath+".lock", d.NoLock)
	return triLock.WithLock(func() error {
		return WriteCheckpoint(triPath, mesh)
	})
}

func writeTileJSON(path string, mesh *TileMesh) error {
	data, err := json.MarshalIndent(mesh, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
