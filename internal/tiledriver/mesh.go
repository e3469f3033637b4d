package tiledriver

import (
	"encoding/json"

	"github.com/openwebglobe/terrain/internal/delaunay"
)

// Point is one vertex of a serialized tile mesh, per spec.md §6
// "Tile JSON output".
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Elevation float64 `json:"elevation"`
}

func toPoint(p delaunay.ElevationPoint) Point {
	return Point{X: p.X, Y: p.Y, Elevation: p.Elevation}
}

func toPoints(ps []delaunay.ElevationPoint) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = toPoint(p)
	}
	return out
}

// TileMesh is the tile JSON document of spec.md §6: the four corner
// points, the four edge point arrays (each sorted along its edge), the
// interior point array, and a triangle index array into a deduplicated
// point list. Field names are this implementation's own schema, kept
// stable across runs.
type TileMesh struct {
	NW, NE, SE, SW Point
	North          []Point
	East           []Point
	South          []Point
	West           []Point
	Interior       []Point
	Points         []Point
	Triangles      [][3]int
}

// tileMeshJSON is TileMesh's wire shape.
type tileMeshJSON struct {
	NW             Point    `json:"nw"`
	NE             Point    `json:"ne"`
	SE             Point    `json:"se"`
	SW             Point    `json:"sw"`
	North          []Point  `json:"north"`
	East           []Point  `json:"east"`
	South          []Point  `json:"south"`
	West           []Point  `json:"west"`
	Interior       []Point  `json:"interior"`
	Points         []Point  `json:"points"`
	Triangles      [][3]int `json:"triangles"`
}

// MarshalJSON implements json.Marshaler.
func (m TileMesh) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileMeshJSON{
		NW: m.NW, NE: m.NE, SE: m.SE, SW: m.SW,
		North: m.North, East: m.East, South: m.South, West: m.West,
		Interior:  m.Interior,
		Points:    m.Points,
		Triangles: m.Triangles,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *TileMesh) UnmarshalJSON(data []byte) error {
	var wire tileMeshJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.NW, m.NE, m.SE, m.SW = wire.NW, wire.NE, wire.SE, wire.SW
	m.North, m.East, m.South, m.West = wire.North, wire.East, wire.South, wire.West
	m.Interior = wire.Interior
	m.Points = wire.Points
	m.Triangles = wire.Triangles
	return nil
}

// BuildMesh runs the triangulate/clip/reduce pipeline of spec.md §4.10
// steps 3-5 over the given neighborhood points, clipping to centerRect
// and reducing the clipped mesh toward maxPoints vertices.
func BuildMesh(neighborhoodRect, centerRect delaunay.Rect, points []delaunay.ElevationPoint, maxPoints int) (*TileMesh, error) {
	tr := delaunay.NewTriangulation(neighborhoodRect, delaunay.LocatorQuadtree)
	defer tr.Teardown()

	for _, p := range points {
		// Domain rejection (duplicate/outside) is silently ignored,
		// per spec.md §7 error taxonomy item 1.
		tr.Insert(p)
	}

	clip, err := tr.IntersectRect(centerRect.X0, centerRect.Y0, centerRect.X1, centerRect.Y1)
	if err != nil {
		return nil, err
	}
	rebuilt := clip.Rebuilt
	defer rebuilt.Teardown()

	if maxPoints > 0 {
		if excess := rebuilt.VertexCount() - maxPoints; excess > 0 {
			rebuilt.Reduce(excess)
		}
	}

	meshPoints, triangles := collectMesh(rebuilt)

	return &TileMesh{
		NW: toPoint(clip.NW), NE: toPoint(clip.NE), SE: toPoint(clip.SE), SW: toPoint(clip.SW),
		North:     toPoints(clip.North),
		East:      toPoints(clip.East),
		South:     toPoints(clip.South),
		West:      toPoints(clip.West),
		Interior:  toPoints(clip.Interior),
		Points:    meshPoints,
		Triangles: triangles,
	}, nil
}

// collectMesh walks rebuilt's non-supersimplex triangles once, building
// a deduplicated point list and a triangle index array into it.
func collectMesh(tr *delaunay.Triangulation) ([]Point, [][3]int) {
	index := make(map[*delaunay.Vertex]int)
	var points []Point
	var triangles [][3]int

	tr.TraverseOutput(func(t *delaunay.Triangle) {
		var tri [3]int
		for i := 0; i < 3; i++ {
			v := t.Vertex(i)
			idx, ok := index[v]
			if !ok {
				idx = len(points)
				index[v] = idx
				points = append(points, toPoint(v.Point))
			}
			tri[i] = idx
		}
		triangles = append(triangles, tri)
	})
	return points, triangles
}
