package commands

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/openwebglobe/terrain/internal/layerconfig"
	"github.com/openwebglobe/terrain/internal/status"
	"github.com/openwebglobe/terrain/internal/tiledriver"
)

// newResampleCmd builds one coarser LOD level of a layer's raster or
// elevation-grid pyramid from the four children immediately below it,
// per spec.md §4.10 "LOD resampling" (original_source/source/apps/resample).
// It does not touch the triangulated tile JSON/.tri checkpoints produced
// by the triangulate command -- those are rebuilt per-LOD from .pts
// point sets, not resampled from finer tiles.
func newResampleCmd() *cobra.Command {
	var (
		root     string
		name     string
		lod      int
		tileSize int
	)

	cmd := &cobra.Command{
		Use:   "resample",
		Short: "Build one coarser LOD level by averaging four child tiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return status.Params("--layer is required")
			}
			if lod < 0 {
				return status.Params("--lod must be >= 0")
			}

			layer := layerconfig.Open(root, name)
			settings, err := layer.LoadSettings()
			if err != nil {
				return status.Config(fmt.Sprintf("load layersettings for %q: %v", name, err))
			}

			shift := uint(0)
			if settings.MaxLOD > lod {
				shift = uint(settings.MaxLOD - lod)
			}
			maxTX := settings.Extent.TX1 >> shift
			maxTY := settings.Extent.TY1 >> shift

			written := 0
			for ty := int64(0); ty <= maxTY; ty++ {
				for tx := int64(0); tx <= maxTX; tx++ {
					ok, err := resampleOne(layer, settings, lod, tx, ty, tileSize)
					if err != nil {
						return status.File(err.Error())
					}
					if ok {
						written++
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "resampled %d tiles at lod %d for layer %q\n", written, lod, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory holding the layer's top-level folder")
	cmd.Flags().StringVar(&name, "layer", "", "layer name (required)")
	cmd.Flags().IntVar(&lod, "lod", 0, "the coarser LOD to build (its children live at lod+1)")
	cmd.Flags().IntVar(&tileSize, "tilesize", 256, "tile edge length in pixels/grid cells")
	return cmd
}

func resampleOne(layer *layerconfig.Layer, settings layerconfig.Settings, lod int, tx, ty int64, tileSize int) (bool, error) {
	childLOD := lod + 1
	ext := childExt(settings.Format)

	switch settings.Type {
	case layerconfig.TypeImage:
		nw, okNW := readTileImage(layer.TilePath(childLOD, 2*tx, 2*ty, ext))
		ne, okNE := readTileImage(layer.TilePath(childLOD, 2*tx+1, 2*ty, ext))
		sw, okSW := readTileImage(layer.TilePath(childLOD, 2*tx, 2*ty+1, ext))
		se, okSE := readTileImage(layer.TilePath(childLOD, 2*tx+1, 2*ty+1, ext))
		if !okNW && !okNE && !okSW && !okSE {
			return false, nil
		}
		out := tiledriver.ResampleImage(nw, ne, sw, se, tileSize)
		path := layer.TilePath(lod, tx, ty, ext)
		if err := layerconfig.EnsureTileDir(path); err != nil {
			return false, err
		}
		return true, writeTileImage(path, out)

	case layerconfig.TypeElevation:
		nw, okNW := readElevationGrid(layer.TilePath(childLOD, 2*tx, 2*ty, ext), tileSize)
		ne, okNE := readElevationGrid(layer.TilePath(childLOD, 2*tx+1, 2*ty, ext), tileSize)
		sw, okSW := readElevationGrid(layer.TilePath(childLOD, 2*tx, 2*ty+1, ext), tileSize)
		se, okSE := readElevationGrid(layer.TilePath(childLOD, 2*tx+1, 2*ty+1, ext), tileSize)
		if !okNW && !okNE && !okSW && !okSE {
			return false, nil
		}
		out := tiledriver.ResampleElevationGrid(nw, ne, sw, se, tileSize)
		path := layer.TilePath(lod, tx, ty, ext)
		if err := layerconfig.EnsureTileDir(path); err != nil {
			return false, err
		}
		return true, writeElevationGrid(path, out)
	}
	return false, fmt.Errorf("resample: unsupported layer type %q", settings.Type)
}

func childExt(format layerconfig.Format) string {
	if format == "" {
		return "raw"
	}
	return string(format)
}

func readTileImage(path string) (*image.RGBA, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, false
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}
	return rgba, true
}

func writeTileImage(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// readElevationGrid reads a tileSize*tileSize row-major grid of
// little-endian float64 elevations, the raw on-disk form used between
// the ingestion tools and resample (distinct from the triangulated
// tile JSON produced by the triangulate command).
func readElevationGrid(path string, tileSize int) ([]float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	n := tileSize * tileSize
	if len(data) < n*8 {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		out[i] = math.Float64frombits(bits)
	}
	return out, true
}

func writeElevationGrid(path string, grid []float64) error {
	buf := make([]byte, len(grid)*8)
	for i, v := range grid {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], math.Float64bits(v))
	}
	return os.WriteFile(path, buf, 0o644)
}
