package tiledriver

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// checkpointMagic tags a .tri checkpoint file.
const checkpointMagic = uint32(0x4f574754) // "OWGT"

// WriteCheckpoint writes mesh's deduplicated point list and triangle
// index array to a binary .tri checkpoint, per spec.md §4.10 step 6.
// The format is this implementation's own: a small fixed header
// followed by little-endian point and triangle records, mirroring the
// *.pts point-set convention rather than introducing a new encoding.
func WriteCheckpoint(path string, mesh *TileMesh) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:4], checkpointMagic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(mesh.Points)))
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(mesh.Triangles)))
	if _, err := f.Write(header); err != nil {
		return err
	}

	pointBuf := make([]byte, 24)
	for _, p := range mesh.Points {
		binary.LittleEndian.PutUint64(pointBuf[0:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(pointBuf[8:16], math.Float64bits(p.Y))
		binary.LittleEndian.PutUint64(pointBuf[16:24], math.Float64bits(p.Elevation))
		if _, err := f.Write(pointBuf); err != nil {
			return err
		}
	}

	triBuf := make([]byte, 12)
	for _, tri := range mesh.Triangles {
		binary.LittleEndian.PutUint32(triBuf[0:4], uint32(tri[0]))
		binary.LittleEndian.PutUint32(triBuf[4:8], uint32(tri[1]))
		binary.LittleEndian.PutUint32(triBuf[8:12], uint32(tri[2]))
		if _, err := f.Write(triBuf); err != nil {
			return err
		}
	}
	return nil
}

// ReadCheckpoint reads a .tri checkpoint written by WriteCheckpoint. A
// missing file is treated as an empty mesh, per spec.md §7.3.
func ReadCheckpoint(path string) (*TileMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &TileMesh{}, nil
		}
		return nil, err
	}
	if len(data) < 12 {
		return &TileMesh{}, nil
	}
	if binary.LittleEndian.Uint32(data[0:4]) != checkpointMagic {
		return nil, fmt.Errorf("tiledriver: %s is not a .tri checkpoint", path)
	}
	numPoints := int(binary.LittleEndian.Uint32(data[4:8]))
	numTriangles := int(binary.LittleEndian.Uint32(data[8:12]))

	offset := 12
	points := make([]Point, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		if offset+24 > len(data) {
			break
		}
		rec := data[offset : offset+24]
		points = append(points, Point{
			X:         math.Float64frombits(binary.LittleEndian.Uint64(rec[0:8])),
			Y:         math.Float64frombits(binary.LittleEndian.Uint64(rec[8:16])),
			Elevation: math.Float64frombits(binary.LittleEndian.Uint64(rec[16:24])),
		})
		offset += 24
	}

	triangles := make([][3]int, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		if offset+12 > len(data) {
			break
		}
		rec := data[offset : offset+12]
		triangles = append(triangles, [3]int{
			int(binary.LittleEndian.Uint32(rec[0:4])),
			int(binary.LittleEndian.Uint32(rec[4:8])),
			int(binary.LittleEndian.Uint32(rec[8:12])),
		})
		offset += 12
	}

	return &TileMesh{Points: points, Triangles: triangles}, nil
}
