package geom

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// clipScale converts float world coordinates to clipper's integer grid.
// At 1e9, a unit-radius fiber resolves to nano-unit precision while
// staying far below clipper's int64 coordinate range.
const clipScale = 1e9

// sliverArea is the smallest ring area (world units squared) kept when
// converting clipper output back to float polygons. Boolean chains near
// tangency produce degenerate slivers; anything below this threshold is
// discarded, which is the "keep only polygonal components" filter.
const sliverArea = 1e-12

func toPath(r Ring) clipper.Path {
	path := make(clipper.Path, len(r))
	for i, v := range r {
		path[i] = &clipper.IntPoint{
			X: clipper.CInt(math.Round(v.X * clipScale)),
			Y: clipper.CInt(math.Round(v.Y * clipScale)),
		}
	}
	return path
}

func toPaths(p Polygon) clipper.Paths {
	paths := make(clipper.Paths, 0, len(p))
	for _, r := range p {
		if len(r) >= 3 {
			paths = append(paths, toPath(r))
		}
	}
	return paths
}

func fromPaths(paths clipper.Paths) Polygon {
	var p Polygon
	for _, path := range paths {
		if math.Abs(clipper.Area(path))/(clipScale*clipScale) < sliverArea {
			continue
		}
		ring := make(Ring, len(path))
		for i, ip := range path {
			ring[i] = Vec{X: float64(ip.X) / clipScale, Y: float64(ip.Y) / clipScale}
		}
		p = append(p, ring)
	}
	return p
}

// Union returns the union of all given polygons. Empty inputs are
// skipped; an all-empty input yields an empty polygon.
func Union(ps ...Polygon) Polygon {
	c := clipper.NewClipper(clipper.IoNone)
	added := false
	for _, p := range ps {
		paths := toPaths(p)
		if len(paths) == 0 {
			continue
		}
		c.AddPaths(paths, clipper.PtSubject, true)
		added = true
	}
	if !added {
		return Polygon{}
	}
	solution, ok := c.Execute1(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return Polygon{}
	}
	return fromPaths(solution)
}

// Difference returns subject minus the union of all subtrahends.
func Difference(subject Polygon, subtrahends ...Polygon) Polygon {
	subjPaths := toPaths(subject)
	if len(subjPaths) == 0 {
		return Polygon{}
	}
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(subjPaths, clipper.PtSubject, true)
	added := false
	for _, s := range subtrahends {
		paths := toPaths(s)
		if len(paths) == 0 {
			continue
		}
		c.AddPaths(paths, clipper.PtClip, true)
		added = true
	}
	if !added {
		return subject.Clone()
	}
	solution, ok := c.Execute1(clipper.CtDifference, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return Polygon{}
	}
	return fromPaths(solution)
}

// Intersection returns the common region of all given polygons.
func Intersection(ps ...Polygon) Polygon {
	if len(ps) == 0 {
		return Polygon{}
	}
	result := ps[0].Clone()
	for _, p := range ps[1:] {
		result = pairIntersection(result, p)
		if result.IsEmpty() {
			return Polygon{}
		}
	}
	return result
}

func pairIntersection(a, b Polygon) Polygon {
	aPaths, bPaths := toPaths(a), toPaths(b)
	if len(aPaths) == 0 || len(bPaths) == 0 {
		return Polygon{}
	}
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(aPaths, clipper.PtSubject, true)
	c.AddPaths(bPaths, clipper.PtClip, true)
	solution, ok := c.Execute1(clipper.CtIntersection, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return Polygon{}
	}
	return fromPaths(solution)
}
