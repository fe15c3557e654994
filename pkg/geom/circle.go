package geom

import (
	"fmt"
	"math"
)

// DefaultSegments is the polygon resolution used to approximate circle
// boundaries when a Circle does not override it. 128 segments keeps the
// relative area error of the approximation below 2e-4, well inside the
// default optimizer tolerances.
const DefaultSegments = 128

// Circle is a fiber cladding cross-section: a disk plus a separately
// tracked core point. Core starts at the geometric center and is moved
// by the fusion core-position optimization once the fused geometry is
// known.
type Circle struct {
	Center Vec
	Radius float64
	Core   Vec

	// Segments overrides DefaultSegments when positive.
	Segments int
}

// NewCircle creates a circle with the core at the center. The radius
// must be strictly positive.
func NewCircle(center Vec, radius float64) (*Circle, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("geom: circle radius is %v, must be positive and finite", radius)
	}
	return &Circle{Center: center, Radius: radius, Core: center}, nil
}

// Area returns the exact disk area.
func (c *Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Overlaps reports whether the two disk interiors intersect. Boundary
// tangency does not count as overlap.
func (c *Circle) Overlaps(o *Circle) bool {
	return Dist(c.Center, o.Center) < c.Radius+o.Radius
}

// Contains reports whether the point lies strictly inside the disk.
func (c *Circle) Contains(p Vec) bool {
	return Dist(c.Center, p) < c.Radius
}

// BoundaryPointTowards returns the point on the circle boundary in the
// direction of p from the center.
func (c *Circle) BoundaryPointTowards(p Vec) Vec {
	return c.Center.Add(Unit(p.Sub(c.Center)).Scale(c.Radius))
}

// Polygon returns a regular-polygon approximation of the disk boundary,
// counter-clockwise.
func (c *Circle) Polygon() Polygon {
	n := c.Segments
	if n <= 0 {
		n = DefaultSegments
	}
	ring := make(Ring, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring[i] = Vec{
			X: c.Center.X + c.Radius*math.Cos(a),
			Y: c.Center.Y + c.Radius*math.Sin(a),
		}
	}
	return Polygon{ring}
}

// ScaledTowards returns a copy whose center and core are scaled by
// factor about origin. The radius is unchanged: fusion-degree scaling
// moves fibers together, it does not resize them.
func (c *Circle) ScaledTowards(origin Vec, factor float64) *Circle {
	return &Circle{
		Center:   ScaleAbout(c.Center, factor, origin),
		Radius:   c.Radius,
		Core:     ScaleAbout(c.Core, factor, origin),
		Segments: c.Segments,
	}
}
