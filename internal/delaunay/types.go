package delaunay

import "math"

// Weight sentinels for ElevationPoint.Weight, per spec.md §3.
const (
	WeightNormal      = 0.0
	WeightSuperSimplex = -1.0
	WeightEdgeCut     = -2.0
	WeightCorner      = -3.0
)

// Error sentinels for ElevationPoint.Error, per spec.md §3.
const (
	ErrorNotComputed = -1.0
	ErrorNoProgress  = -0.5
)

// ErrorProtected marks a vertex as protected / undeletable.
var ErrorProtected = math.Inf(1)

// ElevationPoint is a 2D site with elevation and a classification
// weight, per spec.md §3.
type ElevationPoint struct {
	X, Y      float64
	Elevation float64
	Weight    float64
	Error     float64
}

// IsSuperSimplex reports whether p belongs to the supersimplex.
func (p ElevationPoint) IsSuperSimplex() bool { return p.Weight == WeightSuperSimplex }

// IsEdgeCut reports whether p was created by rectangle clipping.
func (p ElevationPoint) IsEdgeCut() bool { return p.Weight == WeightEdgeCut }

// IsCorner reports whether p is a tile corner, never removable.
func (p ElevationPoint) IsCorner() bool { return p.Weight == WeightCorner }

// Removable reports whether p is a candidate for vertex removal: not a
// supersimplex vertex and not a corner.
func (p ElevationPoint) Removable() bool {
	return p.Weight != WeightSuperSimplex && p.Weight != WeightCorner
}

// Vertex owns an ElevationPoint and is shared among every triangle that
// references it. Id is a mutable scratch field used transiently during
// serialization and traversal; it carries no meaning between calls.
type Vertex struct {
	Point    ElevationPoint
	Id       int
	refcount int
}

// NewVertex allocates a fresh, unreferenced vertex.
func NewVertex(p ElevationPoint) *Vertex {
	return &Vertex{Point: p}
}

// X implements predicates.Point.
func (v *Vertex) X() float64 { return v.Point.X }

// Y implements predicates.Point.
func (v *Vertex) Y() float64 { return v.Point.Y }

// RefCount returns the number of alive triangles currently referencing v.
func (v *Vertex) RefCount() int { return v.refcount }

// addRef increments v's reference count.
func (v *Vertex) addRef() { v.refcount++ }

// release decrements v's reference count and reports whether v is now
// unreferenced (refcount == 0) and should be destroyed.
func (v *Vertex) release() bool {
	v.refcount--
	return v.refcount <= 0
}

// NeighborSlot indexes one of a triangle's three edges/neighbors:
// slot i is the edge (v[i], v[(i+1)%3]), so edges are indexed as
// (v0,v1), (v1,v2), (v2,v0), as in the reference implementation;
// edge k therefore sits opposite vertex (k+2)%3.
type NeighborSlot int

const (
	Edge0 NeighborSlot = iota // (v0,v1)
	Edge1                     // (v1,v2)
	Edge2                     // (v2,v0)
)

// PointTriangleRelation classifies a query point relative to a triangle,
// per spec.md §4.6 / GLOSSARY "PTR".
type PointTriangleRelation int

const (
	Invalid PointTriangleRelation = iota
	Outside
	Inside
	RelEdge0
	RelEdge1
	RelEdge2
	RelVertex0
	RelVertex1
	RelVertex2
)

func (r PointTriangleRelation) String() string {
	switch r {
	case Invalid:
		return "Invalid"
	case Outside:
		return "Outside"
	case Inside:
		return "Inside"
	case RelEdge0:
		return "Edge0"
	case RelEdge1:
		return "Edge1"
	case RelEdge2:
		return "Edge2"
	case RelVertex0:
		return "Vertex0"
	case RelVertex1:
		return "Vertex1"
	case RelVertex2:
		return "Vertex2"
	default:
		return "Unknown"
	}
}

// IsEdge reports whether r is one of Edge0..Edge2.
func (r PointTriangleRelation) IsEdge() bool {
	return r == RelEdge0 || r == RelEdge1 || r == RelEdge2
}

// IsVertex reports whether r is one of Vertex0..Vertex2.
func (r PointTriangleRelation) IsVertex() bool {
	return r == RelVertex0 || r == RelVertex1 || r == RelVertex2
}

// EdgeIndex returns the 0..2 edge index for an Edge* relation, or -1.
func (r PointTriangleRelation) EdgeIndex() int {
	switch r {
	case RelEdge0:
		return 0
	case RelEdge1:
		return 1
	case RelEdge2:
		return 2
	default:
		return -1
	}
}

// VertexIndex returns the 0..2 vertex index for a Vertex* relation, or -1.
func (r PointTriangleRelation) VertexIndex() int {
	switch r {
	case RelVertex0:
		return 0
	case RelVertex1:
		return 1
	case RelVertex2:
		return 2
	default:
		return -1
	}
}

// Rect is an axis-aligned rectangle [X0,Y0]x[X1,Y1] in Mercator units.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Contains reports whether (x,y) lies within the closed rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// ContainsOpen reports whether (x,y) lies strictly inside the rectangle.
func (r Rect) ContainsOpen(x, y float64) bool {
	return x > r.X0 && x < r.X1 && y > r.Y0 && y < r.Y1
}

// Width and Height of the rectangle.
func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Union expands r to also cover o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, o.X0),
		Y0: math.Min(r.Y0, o.Y0),
		X1: math.Max(r.X1, o.X1),
		Y1: math.Max(r.Y1, o.Y1),
	}
}
