package fusion

import (
	"errors"
	"fmt"
	"math"

	"github.com/MartinPdeS/fiberfusing/pkg/geom"
)

var (
	// ErrUndefinedTopology is returned when geometry is requested from
	// a connection whose topology has not been classified.
	ErrUndefinedTopology = errors.New("fusion: connection topology is undefined")

	// ErrDegenerateGeometry is returned for inputs that cannot form a
	// meaningful connection (nil fibers, non-positive radii, coincident
	// centers, collapsed virtual circles).
	ErrDegenerateGeometry = errors.New("fusion: degenerate geometry")
)

// wedgeScale blows the convex mask triangles up about the pair midpoint
// so they act as unbounded half-plane wedges.
const wedgeScale = 1000

// PairConnection owns the fused-neck geometry of one unordered fiber
// pair: topology, the two virtual meniscus circles at the current
// shift, the mask isolating the neck region, and the added and removed
// glass sections. It holds non-owning references to the fibers; the
// Assembly owns them.
type PairConnection struct {
	fiberA *geom.Circle
	fiberB *geom.Circle

	topology Topology
	shift    float64

	configured bool
	primary    *geom.Circle
	secondary  *geom.Circle
	mask       geom.Polygon
	added      geom.Polygon
	removed    geom.Polygon

	removedArea    float64
	hasRemovedArea bool
	limitArea      float64
	hasLimitArea   bool

	coreShiftA   geom.Vec
	coreShiftB   geom.Vec
	hasCoreShift bool
}

// NewPairConnection creates a connection between two fibers. The
// fibers must be distinct, have positive radii and non-coincident
// centers; anything else is rejected up front since it would make the
// virtual-circle construction meaningless.
func NewPairConnection(a, b *geom.Circle) (*PairConnection, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil fiber", ErrDegenerateGeometry)
	}
	if a.Radius <= 0 || b.Radius <= 0 {
		return nil, fmt.Errorf("%w: fiber radius must be positive", ErrDegenerateGeometry)
	}
	if geom.Dist(a.Center, b.Center) == 0 {
		return nil, fmt.Errorf("%w: coincident fiber centers", ErrDegenerateGeometry)
	}
	return &PairConnection{
		fiberA:  a,
		fiberB:  b,
		added:   geom.Polygon{},
		removed: geom.Polygon{},
	}, nil
}

// FiberA returns the first fiber of the pair.
func (pc *PairConnection) FiberA() *geom.Circle { return pc.fiberA }

// FiberB returns the second fiber of the pair.
func (pc *PairConnection) FiberB() *geom.Circle { return pc.fiberB }

// Topology returns the topology the connection was last configured
// with, or TopologyUndefined before the first Configure.
func (pc *PairConnection) Topology() Topology { return pc.topology }

// Shift returns the virtual-circle shift the connection was last
// configured with.
func (pc *PairConnection) Shift() float64 { return pc.shift }

// AddedSection returns the neck glass added by fusion at the current
// configuration. Empty before Configure.
func (pc *PairConnection) AddedSection() geom.Polygon { return pc.added }

// RemovedSection returns the overlap polygon of the two disks. The
// scalar ground truth for optimization is RemovedArea, not this
// polygon's area: near tangency the intersection polygon is
// numerically imprecise.
func (pc *PairConnection) RemovedSection() geom.Polygon { return pc.removed }

// Mask returns the neck-isolating mask, or nil before Configure.
func (pc *PairConnection) Mask() geom.Polygon { return pc.mask }

// VirtualCircles returns the meniscus circle pair, or ok=false before
// Configure.
func (pc *PairConnection) VirtualCircles() (primary, secondary *geom.Circle, ok bool) {
	return pc.primary, pc.secondary, pc.configured
}

// CoreShift returns the recorded core displacement pair, or ok=false
// if core optimization has not evaluated this connection yet.
func (pc *PairConnection) CoreShift() (a, b geom.Vec, ok bool) {
	return pc.coreShiftA, pc.coreShiftB, pc.hasCoreShift
}

func (pc *PairConnection) centerLine() geom.LineSegment {
	return geom.LineSegment{P0: pc.fiberA.Center, P1: pc.fiberB.Center}
}

// RemovedArea returns the glass area lost to direct overlap:
// area(a) + area(b) − area(a ∪ b). The areas are taken from the same
// polygon approximations the boolean chain uses, so the added and
// removed figures the optimizer balances are mutually consistent.
func (pc *PairConnection) RemovedArea() float64 {
	if !pc.hasRemovedArea {
		aPoly := pc.fiberA.Polygon()
		bPoly := pc.fiberB.Polygon()
		union := geom.Union(aPoly, bPoly)
		pc.removedArea = aPoly.Area() + bPoly.Area() - union.Area()
		pc.hasRemovedArea = true
	}
	return pc.removedArea
}

// LimitAddedArea returns the largest area any neck could add for this
// pair while staying inside the pair's convex envelope:
// area(hull(a ∪ b) − a − b).
func (pc *PairConnection) LimitAddedArea() float64 {
	if !pc.hasLimitArea {
		aPoly := pc.fiberA.Polygon()
		bPoly := pc.fiberB.Polygon()
		hull := geom.Union(aPoly, bPoly).ConvexHull()
		pc.limitArea = geom.Difference(hull, aPoly, bPoly).Area()
		pc.hasLimitArea = true
	}
	return pc.limitArea
}

// DetermineTopology classifies the pair. It is a pure function of the
// two radii and the center distance, independent of shift and symmetric
// in the pair: Convex when the overlap removes more glass than the
// convex envelope could ever add back, Concave otherwise.
func (pc *PairConnection) DetermineTopology() Topology {
	if pc.RemovedArea() > pc.LimitAddedArea() {
		return TopologyConvex
	}
	return TopologyConcave
}

// Configure derives the full neck geometry for the given shift and
// topology: virtual circles, contact points, mask, added section, and
// the (shift-independent) removed section. It fails fast on an
// undefined topology and on shifts that collapse the concave virtual
// circle. Reconfiguring with identical arguments is a no-op.
func (pc *PairConnection) Configure(shift float64, topology Topology) error {
	if topology != TopologyConvex && topology != TopologyConcave {
		return ErrUndefinedTopology
	}
	if pc.configured && pc.topology == topology && pc.shift == shift {
		return nil
	}

	primary, secondary, err := pc.virtualCircles(shift, topology)
	if err != nil {
		return err
	}

	line := pc.centerLine()
	mid := line.Mid()
	aPoly := pc.fiberA.Polygon()
	bPoly := pc.fiberB.Polygon()

	pa := contactPoint(pc.fiberA, primary)
	sa := contactPoint(pc.fiberA, secondary)
	pb := contactPoint(pc.fiberB, primary)
	sb := contactPoint(pc.fiberB, secondary)

	var mask geom.Polygon
	switch topology {
	case TopologyConcave:
		// The quadrilateral of the four contact points minus both
		// meniscus disks isolates the neck outside the curvature.
		quad := geom.Polygon{geom.NewRing(pa, sa, sb, pb)}
		mask = geom.Difference(quad, primary.Polygon(), secondary.Polygon())
	case TopologyConvex:
		// Two wedges opening from the midpoint over each fiber,
		// clipped to the virtual disks, isolate the bulge region.
		wedgeA := geom.Polygon{geom.NewRing(mid, pa, sa)}.ScaledAbout(wedgeScale, mid)
		wedgeB := geom.Polygon{geom.NewRing(mid, pb, sb)}.ScaledAbout(wedgeScale, mid)
		mask = geom.Intersection(
			geom.Union(wedgeA, wedgeB),
			geom.Union(primary.Polygon(), secondary.Polygon()),
		)
	}

	added := geom.Difference(mask, aPoly, bPoly)
	switch topology {
	case TopologyConvex:
		added = geom.Intersection(added, primary.Polygon(), secondary.Polygon())
	case TopologyConcave:
		added = geom.Difference(added, primary.Polygon(), secondary.Polygon())
	}

	pc.shift = shift
	pc.topology = topology
	pc.primary = primary
	pc.secondary = secondary
	pc.mask = mask
	pc.added = added
	pc.removed = geom.Intersection(aPoly, bPoly)
	pc.RemovedArea()
	pc.configured = true
	return nil
}

// virtualCircles builds the meniscus circle pair for a trial shift.
// The primary circle sits at the perpendicular offset from the pair
// midpoint; the secondary is its 180° rotation about the midpoint.
// Concave topology uses exterior circles (radius shrunk by the fiber
// radius), convex uses interior ones (radius grown by it).
func (pc *PairConnection) virtualCircles(shift float64, topology Topology) (primary, secondary *geom.Circle, err error) {
	line := pc.centerLine()
	mid := line.Mid()
	perp := line.Perpendicular()

	radius := math.Hypot(shift, line.Length()/2)
	switch topology {
	case TopologyConcave:
		radius -= pc.fiberA.Radius
	case TopologyConvex:
		radius += pc.fiberA.Radius
	}
	if radius <= 0 {
		return nil, nil, fmt.Errorf("%w: virtual circle radius %g at shift %g",
			ErrDegenerateGeometry, radius, shift)
	}

	pCenter := mid.Add(perp.Scale(shift))
	sCenter := geom.Rotate(pCenter, math.Pi, mid)
	primary = &geom.Circle{Center: pCenter, Radius: radius, Core: pCenter}
	secondary = &geom.Circle{Center: sCenter, Radius: radius, Core: sCenter}
	return primary, secondary, nil
}

// contactPoint returns the point on the fiber boundary nearest the
// virtual circle boundary. Both candidates along the center-center
// line are tested because the convex construction places the fiber
// inside the virtual circle.
func contactPoint(fiber, virtual *geom.Circle) geom.Vec {
	u := geom.Unit(virtual.Center.Sub(fiber.Center))
	toward := fiber.Center.Add(u.Scale(fiber.Radius))
	away := fiber.Center.Sub(u.Scale(fiber.Radius))
	if boundaryDistance(toward, virtual) <= boundaryDistance(away, virtual) {
		return toward
	}
	return away
}

func boundaryDistance(p geom.Vec, c *geom.Circle) float64 {
	return math.Abs(geom.Dist(p, c.Center) - c.Radius)
}

// recordCoreShift stores the candidate core displacements for the
// current split position. Called by the core optimizer at every cost
// evaluation; only the displacement recorded for the accepted position
// is ever applied.
func (pc *PairConnection) recordCoreShift(a, b geom.Vec) {
	pc.coreShiftA = a
	pc.coreShiftB = b
	pc.hasCoreShift = true
}

// applyCoreShift accumulates the recorded displacements onto the fiber
// cores. Accumulation (not overwrite) keeps connections that share a
// fiber from discarding each other's contribution.
func (pc *PairConnection) applyCoreShift() {
	if !pc.hasCoreShift {
		return
	}
	pc.fiberA.Core = pc.fiberA.Core.Add(pc.coreShiftA)
	pc.fiberB.Core = pc.fiberB.Core.Add(pc.coreShiftB)
}

// invalidate clears all derived geometry, returning the connection to
// its pre-Configure state.
func (pc *PairConnection) invalidate() {
	pc.configured = false
	pc.topology = TopologyUndefined
	pc.shift = 0
	pc.primary = nil
	pc.secondary = nil
	pc.mask = nil
	pc.added = geom.Polygon{}
	pc.removed = geom.Polygon{}
	pc.hasRemovedArea = false
	pc.hasLimitArea = false
	pc.hasCoreShift = false
}
