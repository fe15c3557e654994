package geom

// LineSegment is a directed segment from P0 to P1.
type LineSegment struct {
	P0, P1 Vec
}

// Length returns the segment length.
func (l LineSegment) Length() float64 {
	return Dist(l.P0, l.P1)
}

// Mid returns the segment midpoint.
func (l LineSegment) Mid() Vec {
	return l.P0.Add(l.P1).Scale(0.5)
}

// At parametrizes the segment: t=0 is P0, t=1 is P1. Values outside
// [0,1] extrapolate along the supporting line.
func (l LineSegment) At(t float64) Vec {
	return l.P0.Add(l.P1.Sub(l.P0).Scale(t))
}

// Direction returns the unit vector from P0 toward P1.
func (l LineSegment) Direction() Vec {
	return Unit(l.P1.Sub(l.P0))
}

// Perpendicular returns the unit vector perpendicular to the segment
// (the direction rotated a quarter turn counter-clockwise).
func (l LineSegment) Perpendicular() Vec {
	return Perp(l.Direction())
}

// Extended returns a copy lengthened along its own direction: P0 moves
// back by byStart, P1 moves forward by byEnd.
func (l LineSegment) Extended(byStart, byEnd float64) LineSegment {
	d := l.Direction()
	return LineSegment{
		P0: l.P0.Sub(d.Scale(byStart)),
		P1: l.P1.Add(d.Scale(byEnd)),
	}
}

// RotatedAbout returns a copy rotated by angle (radians) about the
// given point.
func (l LineSegment) RotatedAbout(angle float64, about Vec) LineSegment {
	return LineSegment{
		P0: Rotate(l.P0, angle, about),
		P1: Rotate(l.P1, angle, about),
	}
}

// ScaledAbout returns a copy with both endpoints scaled by factor about
// the given point. A factor of 2 doubles the segment length while
// keeping its center fixed when about is the midpoint.
func (l LineSegment) ScaledAbout(factor float64, about Vec) LineSegment {
	return LineSegment{
		P0: ScaleAbout(l.P0, factor, about),
		P1: ScaleAbout(l.P1, factor, about),
	}
}
