package fusion

import (
	"fmt"
	"math"

	"github.com/MartinPdeS/fiberfusing/pkg/geom"
	"github.com/MartinPdeS/fiberfusing/pkg/optimize"
)

const (
	// defaultToleranceFactor scales the smallest pairwise center
	// distance into the absolute shift tolerance.
	defaultToleranceFactor = 1e-2

	// defaultBoundFactor scales the smallest pairwise center distance
	// into the shift search upper bound. The meniscus shift is
	// physically bounded by fiber separation, but the search must
	// tolerate near-zero separations.
	defaultBoundFactor = 1000
)

// ShiftOptions configures the global shift search.
type ShiftOptions struct {
	// ToleranceFactor multiplies the smallest pairwise center distance
	// to form the absolute tolerance on the shift. Default 1e-2.
	ToleranceFactor float64

	// UpperBound overrides the search upper bound when positive.
	UpperBound float64

	// MaxIter caps the search iterations (see optimize.Options).
	MaxIter int

	// Observer receives every trial (shift, cost) pair.
	Observer func(shift, cost float64)
}

// ShiftResult reports the accepted global shift and the residual
// area-balance cost at that shift.
type ShiftResult struct {
	Shift       float64
	Cost        float64
	Topology    Topology
	Evaluations int
	Converged   bool
}

// AssemblyTopology classifies the assembly as a whole by the same
// comparison as per-pair classification, but with limit and removed
// areas summed over every connection. All necks in a cluster share one
// curvature regime because they form during the same drawing process.
func AssemblyTopology(conns []*PairConnection) Topology {
	if len(conns) == 0 {
		return TopologyUndefined
	}
	var removed, limit float64
	for _, c := range conns {
		removed += c.RemovedArea()
		limit += c.LimitAddedArea()
	}
	if removed > limit {
		return TopologyConvex
	}
	return TopologyConcave
}

// FindShift finds the single scalar shift, applied uniformly to every
// connection, at which the total neck area added across the assembly
// equals the total glass area removed by overlap. With zero
// connections there is nothing to fuse and the shift is 0. On return
// every connection is left configured at the accepted shift.
func FindShift(conns []*PairConnection, opts ShiftOptions) (ShiftResult, error) {
	if len(conns) == 0 {
		return ShiftResult{Topology: TopologyUndefined, Converged: true}, nil
	}

	topology := AssemblyTopology(conns)

	minDist := math.Inf(1)
	for _, c := range conns {
		minDist = math.Min(minDist, c.centerLine().Length())
	}

	factor := opts.ToleranceFactor
	if factor <= 0 {
		factor = defaultToleranceFactor
	}
	upper := opts.UpperBound
	if upper <= 0 {
		upper = defaultBoundFactor * minDist
	}

	fibers := uniqueFibers(conns)
	disks := make([]geom.Polygon, len(fibers))
	diskAreaSum := 0.0
	for i, f := range fibers {
		disks[i] = f.Polygon()
		diskAreaSum += disks[i].Area()
	}
	totalRemoved := diskAreaSum - geom.Union(disks...).Area()

	cost := func(shift float64) float64 {
		added, err := totalAddedArea(conns, shift, topology, disks)
		if err != nil {
			return math.Inf(1)
		}
		return math.Abs(added - totalRemoved)
	}

	res := optimize.Minimize(cost, 0, upper, optimize.Options{
		Tolerance: minDist * factor,
		MaxIter:   opts.MaxIter,
		Observer:  opts.Observer,
	})
	if math.IsInf(res.Cost, 1) {
		return ShiftResult{Topology: topology}, fmt.Errorf(
			"fusion: no feasible shift in [0, %g] for %s assembly: %w",
			upper, topology, ErrDegenerateGeometry)
	}

	// Leave the connections configured at the accepted shift, not at
	// whichever trial the search evaluated last.
	for _, c := range conns {
		if err := c.Configure(res.X, topology); err != nil {
			return ShiftResult{Topology: topology}, err
		}
	}

	return ShiftResult{
		Shift:       res.X,
		Cost:        res.Cost,
		Topology:    topology,
		Evaluations: res.Evaluations,
		Converged:   res.Converged,
	}, nil
}

// totalAddedArea reconfigures every connection at the trial shift and
// measures the union of their added sections, minus the raw fiber
// disks so that neck area overlapping a neighboring fiber is not
// counted twice.
func totalAddedArea(conns []*PairConnection, shift float64, topology Topology, disks []geom.Polygon) (float64, error) {
	sections := make([]geom.Polygon, 0, len(conns))
	for _, c := range conns {
		if err := c.Configure(shift, topology); err != nil {
			return 0, err
		}
		sections = append(sections, c.AddedSection())
	}
	return geom.Difference(geom.Union(sections...), disks...).Area(), nil
}
