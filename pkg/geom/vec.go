package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is the 2D vector/point type used throughout the module. It is a
// local type over gonum's r2.Vec: the arithmetic lives in r2 as
// package-level functions, and the methods here delegate to them so
// call sites can chain.
type Vec r2.Vec

// Add returns v + u.
func (v Vec) Add(u Vec) Vec { return Vec(r2.Add(r2.Vec(v), r2.Vec(u))) }

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec { return Vec(r2.Sub(r2.Vec(v), r2.Vec(u))) }

// Scale returns v scaled by f.
func (v Vec) Scale(f float64) Vec { return Vec(r2.Scale(f, r2.Vec(v))) }

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec) float64 {
	return r2.Norm(r2.Vec(a.Sub(b)))
}

// Rotate returns p rotated by angle (radians, counter-clockwise) about the
// point about.
func Rotate(p Vec, angle float64, about Vec) Vec {
	return Vec(r2.Rotate(r2.Vec(p), angle, r2.Vec(about)))
}

// Unit returns the unit vector in the direction of v. A zero vector
// yields {NaN, NaN}, so callers must reject degenerate geometry first.
func Unit(v Vec) Vec {
	return Vec(r2.Unit(r2.Vec(v)))
}

// Perp returns v rotated a quarter turn counter-clockwise.
func Perp(v Vec) Vec {
	return Vec{X: -v.Y, Y: v.X}
}

// ScaleAbout returns p scaled by factor about the point origin.
func ScaleAbout(p Vec, factor float64, origin Vec) Vec {
	return origin.Add(p.Sub(origin).Scale(factor))
}
