package geom

import (
	"math"
	"sort"
)

// Ring is a closed loop of vertices (the closing edge from the last
// vertex back to the first is implicit).
type Ring []Vec

// Polygon is a possibly multi-part, possibly holed region. Rings follow
// the clipper convention: outer boundaries are counter-clockwise
// (positive signed area), holes are clockwise (negative).
type Polygon []Ring

// NewRing builds a ring from vertices, reversing them if needed so the
// signed area is non-negative. Use it for outer boundaries built by
// hand; rings coming out of boolean operations already carry the right
// orientation.
func NewRing(pts ...Vec) Ring {
	r := make(Ring, len(pts))
	copy(r, pts)
	if r.signedArea() < 0 {
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
	}
	return r
}

func (r Ring) signedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	a := 0.0
	j := len(r) - 1
	for i := range r {
		a += (r[j].X + r[i].X) * (r[j].Y - r[i].Y)
		j = i
	}
	return -a * 0.5
}

// contains reports whether p is inside the ring (ray casting; points on
// the boundary are not guaranteed either way).
func (r Ring) contains(p Vec) bool {
	inside := false
	j := len(r) - 1
	for i := range r {
		pi, pj := r[i], r[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Clone returns a deep copy.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	for i, r := range p {
		out[i] = make(Ring, len(r))
		copy(out[i], r)
	}
	return out
}

// IsEmpty reports whether the polygon has no rings.
func (p Polygon) IsEmpty() bool {
	return len(p) == 0
}

// Area returns the total enclosed area: outer rings add, holes subtract.
func (p Polygon) Area() float64 {
	a := 0.0
	for _, r := range p {
		a += r.signedArea()
	}
	return a
}

// Vertices returns every vertex of every ring.
func (p Polygon) Vertices() []Vec {
	var out []Vec
	for _, r := range p {
		out = append(out, r...)
	}
	return out
}

// Bounds returns the axis-aligned bounding box. An empty polygon yields
// two zero points.
func (p Polygon) Bounds() (min, max Vec) {
	first := true
	for _, r := range p {
		for _, v := range r {
			if first {
				min, max = v, v
				first = false
				continue
			}
			min.X = math.Min(min.X, v.X)
			min.Y = math.Min(min.Y, v.Y)
			max.X = math.Max(max.X, v.X)
			max.Y = math.Max(max.Y, v.Y)
		}
	}
	return min, max
}

// Centroid returns the area-weighted centroid. For near-zero total area
// it falls back to the bounding-box center.
func (p Polygon) Centroid() Vec {
	a := p.Area()
	if math.Abs(a) < sliverArea {
		min, max := p.Bounds()
		return min.Add(max).Scale(0.5)
	}
	var cx, cy float64
	for _, r := range p {
		j := len(r) - 1
		for i := range r {
			cross := r[j].X*r[i].Y - r[i].X*r[j].Y
			cx += (r[j].X + r[i].X) * cross
			cy += (r[j].Y + r[i].Y) * cross
			j = i
		}
	}
	return Vec{X: cx / (6 * a), Y: cy / (6 * a)}
}

// ConvexHull returns the convex hull of all vertices as a single-ring
// polygon (Andrew monotone chain).
func (p Polygon) ConvexHull() Polygon {
	pts := p.Vertices()
	if len(pts) < 3 {
		return p.Clone()
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	cross := func(o, a, b Vec) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var lower, upper []Vec
	for _, pt := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], pt) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, pt)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		pt := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], pt) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, pt)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return Polygon{}
	}
	return Polygon{Ring(hull)}
}

// Translated returns a copy shifted by d.
func (p Polygon) Translated(d Vec) Polygon {
	return p.mapVertices(func(v Vec) Vec { return v.Add(d) })
}

// RotatedAbout returns a copy rotated by angle (radians) about the
// given point.
func (p Polygon) RotatedAbout(angle float64, about Vec) Polygon {
	return p.mapVertices(func(v Vec) Vec { return Rotate(v, angle, about) })
}

// ScaledAbout returns a copy uniformly scaled by factor about the given
// point.
func (p Polygon) ScaledAbout(factor float64, about Vec) Polygon {
	return p.mapVertices(func(v Vec) Vec { return ScaleAbout(v, factor, about) })
}

func (p Polygon) mapVertices(f func(Vec) Vec) Polygon {
	out := make(Polygon, len(p))
	for i, r := range p {
		out[i] = make(Ring, len(r))
		for j, v := range r {
			out[i][j] = f(v)
		}
	}
	return out
}

// NearestBoundaryPoint returns the point on the polygon boundary
// closest to the given point. An empty polygon returns the query point.
func (p Polygon) NearestBoundaryPoint(to Vec) Vec {
	best := to
	bestDist := math.Inf(1)
	for _, r := range p {
		j := len(r) - 1
		for i := range r {
			cand := nearestOnSegment(to, r[j], r[i])
			if d := Dist(to, cand); d < bestDist {
				bestDist = d
				best = cand
			}
			j = i
		}
	}
	return best
}

func nearestOnSegment(p, a, b Vec) Vec {
	ab := b.Sub(a)
	denom := ab.X*ab.X + ab.Y*ab.Y
	if denom == 0 {
		return a
	}
	t := (p.Sub(a).X*ab.X + p.Sub(a).Y*ab.Y) / denom
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t))
}

// LargestComponent returns the outer ring with the largest area,
// together with the holes it contains.
func (p Polygon) LargestComponent() Polygon {
	bestIdx := -1
	bestArea := 0.0
	for i, r := range p {
		if a := r.signedArea(); a > bestArea {
			bestArea = a
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return Polygon{}
	}
	outer := p[bestIdx]
	out := Polygon{outer}
	for i, r := range p {
		if i == bestIdx || len(r) == 0 || r.signedArea() >= 0 {
			continue
		}
		if outer.contains(r[0]) {
			out = append(out, r)
		}
	}
	return out.Clone()
}

// SplitByLine cuts the polygon along the supporting line of the given
// segment and returns the two fragments, smaller area first. Fragments
// may themselves be multi-part.
func (p Polygon) SplitByLine(l LineSegment) (smaller, larger Polygon) {
	if p.IsEmpty() {
		return Polygon{}, Polygon{}
	}
	min, max := p.Bounds()
	reach := Dist(min, max) + Dist(l.Mid(), min) + Dist(l.Mid(), max) + l.Length() + 1

	d := l.Direction()
	n := Perp(d)
	m := l.Mid()
	a0 := m.Sub(d.Scale(reach))
	a1 := m.Add(d.Scale(reach))

	side := func(sign float64) Polygon {
		off := n.Scale(sign * reach)
		return Polygon{NewRing(a0, a1, a1.Add(off), a0.Add(off))}
	}

	h0 := Intersection(p, side(1))
	h1 := Intersection(p, side(-1))
	if h0.Area() <= h1.Area() {
		return h0, h1
	}
	return h1, h0
}
