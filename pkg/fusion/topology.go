// Package fusion models the fusion of circular fiber cross-sections
// into a single merged glass cross-section. It classifies pair
// topology, builds the virtual-circle meniscus geometry for every
// overlapping pair, and runs the two nested scalar optimizations that
// make the glass area removed by overlap equal the area added by the
// fusion necks, displacing each fiber core accordingly.
package fusion

// Topology classifies how a fiber pair's fused neck curves: Convex
// necks bulge outward past the pair's envelope (deep interpenetration,
// where the overlap removes more glass than any in-hull neck could add
// back), Concave necks curve inward like a fillet between mostly
// separate fibers.
type Topology int

const (
	TopologyUndefined Topology = iota
	TopologyConvex
	TopologyConcave
)

// String implements fmt.Stringer.
func (t Topology) String() string {
	switch t {
	case TopologyConvex:
		return "convex"
	case TopologyConcave:
		return "concave"
	default:
		return "undefined"
	}
}
