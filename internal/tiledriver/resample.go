package tiledriver

import (
	"image"
	"image/color"
)

// ElevationSentinel marks a missing raw-elevation sample, per spec.md
// §4.10 "LOD resampling": "the raw elevation variant ... returns the
// sentinel -9999.0 if any sample is sentinel".
const ElevationSentinel = -9999.0

// ResampleImage builds one coarser-LOD image tile from its four
// children (nw, ne, sw, se, each tileSize×tileSize), per spec.md
// §4.10: every output pixel averages the four child pixels that would
// lie beneath it, skipping fully transparent samples.
func ResampleImage(nw, ne, sw, se *image.RGBA, tileSize int) *image.RGBA {
	children := [4]*image.RGBA{nw, ne, sw, se}
	out := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	for oy := 0; oy < tileSize; oy++ {
		for ox := 0; ox < tileSize; ox++ {
			cx, cy := ox*2, oy*2
			quad := [4]color.RGBA{
				sampleChild(children, cx, cy, tileSize),
				sampleChild(children, cx+1, cy, tileSize),
				sampleChild(children, cx, cy+1, tileSize),
				sampleChild(children, cx+1, cy+1, tileSize),
			}
			out.SetRGBA(ox, oy, averageRGBA(quad))
		}
	}
	return out
}

// sampleChild reads the pixel at combined coordinate (cx,cy) in the
// 2*tileSize square formed by laying the four children out as
// [nw ne; sw se]. A nil child (a missing neighbor tile, per spec.md
// §7.3) samples as fully transparent.
func sampleChild(children [4]*image.RGBA, cx, cy, tileSize int) color.RGBA {
	qx, qy := cx/tileSize, cy/tileSize
	lx, ly := cx%tileSize, cy%tileSize
	child := children[qy*2+qx]
	if child == nil {
		return color.RGBA{}
	}
	return child.RGBAAt(lx, ly)
}

// averageRGBA averages up to four RGBA samples, skipping any with
// zero alpha (spec.md's "α-weighted skip").
func averageRGBA(samples [4]color.RGBA) color.RGBA {
	var rs, gs, bs, as, n int
	for _, c := range samples {
		if c.A == 0 {
			continue
		}
		rs += int(c.R)
		gs += int(c.G)
		bs += int(c.B)
		as += int(c.A)
		n++
	}
	if n == 0 {
		return color.RGBA{}
	}
	return color.RGBA{R: uint8(rs / n), G: uint8(gs / n), B: uint8(bs / n), A: uint8(as / n)}
}

// ResampleElevationGrid builds one coarser-LOD raw-elevation grid from
// its four children (row-major, tileSize×tileSize each), averaging
// four samples per output cell but propagating ElevationSentinel if
// any contributing sample is itself the sentinel.
func ResampleElevationGrid(nw, ne, sw, se []float64, tileSize int) []float64 {
	children := [4][]float64{nw, ne, sw, se}
	sample := func(cx, cy int) float64 {
		qx, qy := cx/tileSize, cy/tileSize
		lx, ly := cx%tileSize, cy%tileSize
		grid := children[qy*2+qx]
		idx := ly*tileSize + lx
		if grid == nil || idx < 0 || idx >= len(grid) {
			return ElevationSentinel
		}
		return grid[idx]
	}

	out := make([]float64, tileSize*tileSize)
	for oy := 0; oy < tileSize; oy++ {
		for ox := 0; ox < tileSize; ox++ {
			cx, cy := ox*2, oy*2
			out[oy*tileSize+ox] = averageElevation([4]float64{
				sample(cx, cy), sample(cx+1, cy), sample(cx, cy+1), sample(cx+1, cy+1),
			})
		}
	}
	return out
}

// averageElevation averages four elevation samples, returning
// ElevationSentinel if any of them is the sentinel.
func averageElevation(vals [4]float64) float64 {
	sum := 0.0
	for _, v := range vals {
		if v == ElevationSentinel {
			return ElevationSentinel
		}
		sum += v
	}
	return sum / 4
}
