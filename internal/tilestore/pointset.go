package tilestore

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/openwebglobe/terrain/internal/delaunay"
)

// pointRecordSize is one (x,y,elevation,weight) record: four
// little-endian float64s, per spec.md §6 "Point-set file *.pts".
const pointRecordSize = 4 * 8

// ReadPTS reads a .pts point-set file. A missing file is treated as an
// empty point set (spec.md §7.3 "missing input"), not an error. A file
// whose length is not a whole multiple of the record size is truncated
// at the last complete record (spec.md §7.4 "corrupted input").
func ReadPTS(path string) ([]delaunay.ElevationPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	n := len(data) / pointRecordSize
	points := make([]delaunay.ElevationPoint, 0, n)
	for i := 0; i < n; i++ {
		rec := data[i*pointRecordSize : (i+1)*pointRecordSize]
		points = append(points, delaunay.ElevationPoint{
			X:         math.Float64frombits(binary.LittleEndian.Uint64(rec[0:8])),
			Y:         math.Float64frombits(binary.LittleEndian.Uint64(rec[8:16])),
			Elevation: math.Float64frombits(binary.LittleEndian.Uint64(rec[16:24])),
			Weight:    math.Float64frombits(binary.LittleEndian.Uint64(rec[24:32])),
			Error:     delaunay.ErrorNotComputed,
		})
	}
	return points, nil
}

// WritePTS writes points to path as a .pts file, overwriting any
// existing content.
func WritePTS(path string, points []delaunay.ElevationPoint) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writePTS(f, points)
}

// AppendPTS appends points to an existing (or newly created) .pts file.
func AppendPTS(path string, points []delaunay.ElevationPoint) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writePTS(f, points)
}

func writePTS(w io.Writer, points []delaunay.ElevationPoint) error {
	buf := make([]byte, pointRecordSize)
	for _, p := range points {
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(p.Y))
		binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(p.Elevation))
		binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(p.Weight))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
