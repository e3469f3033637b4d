// Package quadtree implements the bijective mappings between
// (longitude, latitude), Mercator (x, y) in [-1, 1]^2, pixel (px, py),
// tile (tx, ty, lod), and base-4 quadkey strings used to address the
// Spherical Web-Mercator tile pyramid.
//
// These mappings must be bit-reproducible: every on-disk tile path and
// every derived filename in the pipeline is computed from them.
package quadtree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"

	"github.com/openwebglobe/terrain/internal/mercator"
)

// TilePixels is the edge length, in pixels, of one tile.
const TilePixels = 256

// MapSize returns the pixel width/height of the whole map at the given LOD.
func MapSize(lod int) int64 {
	return int64(TilePixels) << uint(lod)
}

// WGS84ToPixel maps (lng, lat) in degrees to pixel coordinates at lod.
func WGS84ToPixel(lng, lat float64, lod int, mode mercator.Mode) (px, py float64) {
	m := mercator.Forward(lng, lat, mode)
	return MercatorToPixel(m, lod)
}

// MercatorToPixel maps normalized Mercator (x,y) in [-1,1]^2 to pixel
// coordinates at lod. The y-axis is flipped: normalized y=+1 (north) is
// pixel row 0, matching the top-left pixel-space convention.
func MercatorToPixel(m orb.Point, lod int) (px, py float64) {
	size := float64(MapSize(lod))
	px = (m[0] + 1.0) / 2.0 * size
	py = (1.0 - m[1]) / 2.0 * size
	return px, py
}

// PixelToMercator inverts MercatorToPixel.
func PixelToMercator(px, py float64, lod int) orb.Point {
	size := float64(MapSize(lod))
	x := px/size*2.0 - 1.0
	y := 1.0 - py/size*2.0
	return orb.Point{x, y}
}

// PixelToTile returns the tile (tx, ty) containing pixel (px, py) at lod.
func PixelToTile(px, py float64, lod int) (tx, ty int64) {
	tx = int64(px) / TilePixels
	ty = int64(py) / TilePixels
	return tx, ty
}

// TileToQuadkey encodes (tx, ty, lod) as a base-4 quadkey string. Digit
// position i from the head toggles bit (lod-i-1) of tx (bit value 1) and
// of ty (bit value 2).
func TileToQuadkey(tx, ty int64, lod int) string {
	var b strings.Builder
	b.Grow(lod)
	for i := lod; i > 0; i-- {
		digit := byte('0')
		mask := int64(1) << uint(i-1)
		if tx&mask != 0 {
			digit++
		}
		if ty&mask != 0 {
			digit += 2
		}
		b.WriteByte(digit)
	}
	return b.String()
}

// QuadkeyToTile decodes a quadkey string to (tx, ty, lod).
func QuadkeyToTile(quadkey string) (tx, ty int64, lod int, err error) {
	lod = len(quadkey)
	for i := 0; i < lod; i++ {
		mask := int64(1) << uint(lod-i-1)
		switch quadkey[i] {
		case '0':
		case '1':
			tx |= mask
		case '2':
			ty |= mask
		case '3':
			tx |= mask
			ty |= mask
		default:
			return 0, 0, 0, fmt.Errorf("quadtree: invalid digit %q at position %d", quadkey[i], i)
		}
	}
	return tx, ty, lod, nil
}

// QuadkeyToNormalized returns the quadkey's tile rectangle in [0,1]^2,
// walking the string with scale halving rather than through pixel
// integers, so double precision is preserved at high LOD.
func QuadkeyToNormalized(quadkey string) (x0, y0, x1, y1 float64) {
	x0, y0 = 0, 0
	scale := 1.0
	for i := 0; i < len(quadkey); i++ {
		scale /= 2.0
		switch quadkey[i] {
		case '0':
		case '1':
			x0 += scale
		case '2':
			y0 += scale
		case '3':
			x0 += scale
			y0 += scale
		}
	}
	return x0, y0, x0 + scale, y0 + scale
}

// QuadkeyToMercator maps a quadkey's tile rectangle to normalized
// Mercator [-1,1]^2, flipping the y-axis so (x0,y0) is the top-left
// corner in pixel-space convention.
func QuadkeyToMercator(quadkey string) orb.Bound {
	nx0, ny0, nx1, ny1 := QuadkeyToNormalized(quadkey)
	x0 := nx0*2.0 - 1.0
	x1 := nx1*2.0 - 1.0
	// normalized y grows downward (south); Mercator y grows upward (north).
	y0 := 1.0 - ny1*2.0
	y1 := 1.0 - ny0*2.0
	return orb.Bound{
		Min: orb.Point{x0, y0},
		Max: orb.Point{x1, y1},
	}
}

// Parent returns the quadkey of the parent tile (all but the last digit).
func Parent(quadkey string) string {
	if len(quadkey) == 0 {
		return ""
	}
	return quadkey[:len(quadkey)-1]
}

// Position returns the 0..3 position of the quadkey's last digit within
// its parent.
func Position(quadkey string) int {
	if len(quadkey) == 0 {
		return -1
	}
	return int(quadkey[len(quadkey)-1] - '0')
}

// QuadAt returns the digit of quadkey at index i as an int 0..3.
func QuadAt(quadkey string, i int) int {
	return int(quadkey[i] - '0')
}

// ToMaptile converts (tx, ty, lod) to an orb/maptile.Tile for
// interoperability with the rest of the orb-based ecosystem.
func ToMaptile(tx, ty int64, lod int) maptile.Tile {
	return maptile.New(uint32(tx), uint32(ty), maptile.Zoom(lod))
}

// FromMaptile converts an orb/maptile.Tile to (tx, ty, lod).
func FromMaptile(t maptile.Tile) (tx, ty int64, lod int) {
	return int64(t.X), int64(t.Y), int(t.Z)
}

// ParseQuadkeyDigits validates that every rune in quadkey is a base-4 digit.
func ParseQuadkeyDigits(quadkey string) error {
	for i, r := range quadkey {
		if r < '0' || r > '3' {
			return fmt.Errorf("quadtree: invalid digit %q at position %d", r, i)
		}
	}
	return nil
}

// Atoi64 parses a decimal tile coordinate, used by CLI flag parsing.
func Atoi64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
