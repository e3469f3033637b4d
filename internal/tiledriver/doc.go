// Package tiledriver implements the per-tile pipeline of spec.md §4.10:
// gather a tile's 3×3 neighborhood of point sets, triangulate, clip to
// the center tile, reduce to the layer's point budget, and serialize
// the result as tile JSON plus a binary .tri checkpoint used by coarser
// LOD resampling (spec.md §4.10 "LOD resampling").
package tiledriver
