// Package geom provides the 2D primitives consumed by the fusion core:
// vectors, line segments, circles, and multi-ring polygons with boolean
// operations. Polygon booleans are delegated to the go.clipper library
// through a fixed-point coordinate conversion; everything else is plain
// float geometry.
package geom
