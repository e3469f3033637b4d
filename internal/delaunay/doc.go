// Package delaunay implements the in-memory incremental Delaunay
// triangulation engine used to triangulate per-tile elevation point
// clouds, compute per-vertex interpolation error, simplify a mesh to a
// target vertex budget, and clip a triangulation against a tile's
// Mercator rectangle.
//
// The package follows the layout convention of a standalone graph
// algorithms library: types.go holds the data model, errors.go holds
// the sentinel error set, and each algorithm (insertion, removal,
// simplification, clipping, point location) gets its own file. The
// package's tests live in triangulation_test.go.
//
// Vertices are reference-counted and shared between every triangle that
// uses them; a vertex is destroyed exactly when its reference count
// reaches zero. Triangles are explicitly owned by whichever
// Locator strategy currently indexes the triangulation. An
// implementer targeting a GC-free runtime could replace the pointer
// graph here with two parallel arenas (vertices, triangles) addressed
// by generational index with no semantic change.
package delaunay
