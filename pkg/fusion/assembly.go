package fusion

import (
	"fmt"
	"log"

	"github.com/MartinPdeS/fiberfusing/pkg/geom"
)

// Assembly owns a cluster of fibers and orchestrates the full fusion
// computation: connection graph, global shift balancing, core
// repositioning, and the final fused cross-section polygon. Results
// are cached until the fiber set is mutated again.
type Assembly struct {
	// ShiftOpts and CoreOpts tune the two optimizations. The zero
	// values select the documented defaults.
	ShiftOpts ShiftOptions
	CoreOpts  CoreOptions

	fibers      []*geom.Circle
	connections []*PairConnection
	fused       geom.Polygon
	shift       float64
	shiftCost   float64
	topology    Topology
}

// NewAssembly creates an empty assembly.
func NewAssembly() *Assembly {
	return &Assembly{}
}

// AddFiber appends a fiber to the assembly and invalidates every
// cached result and connection.
func (a *Assembly) AddFiber(c *geom.Circle) error {
	if c == nil {
		return fmt.Errorf("%w: nil fiber", ErrDegenerateGeometry)
	}
	if c.Radius <= 0 {
		return fmt.Errorf("%w: fiber radius must be positive", ErrDegenerateGeometry)
	}
	a.fibers = append(a.fibers, c)
	a.invalidate()
	return nil
}

// AddFibers appends several fibers, stopping at the first invalid one.
func (a *Assembly) AddFibers(cs ...*geom.Circle) error {
	for _, c := range cs {
		if err := a.AddFiber(c); err != nil {
			return err
		}
	}
	return nil
}

// Fibers returns the assembly's fibers. Core positions on the returned
// circles are updated in place by Build.
func (a *Assembly) Fibers() []*geom.Circle { return a.fibers }

// Connections returns the pair connections derived by the last Build,
// or nil before it.
func (a *Assembly) Connections() []*PairConnection { return a.connections }

// Shift returns the global shift accepted by the last Build.
func (a *Assembly) Shift() float64 { return a.shift }

// Topology returns the assembly-level topology from the last Build.
func (a *Assembly) Topology() Topology { return a.topology }

// AreaResidual returns |total added − total removed| at the accepted
// shift, the optimizer's stopping cost.
func (a *Assembly) AreaResidual() float64 { return a.shiftCost }

// FusedPolygon returns the final fused cross-section computed by the
// last Build, or an empty polygon before it.
func (a *Assembly) FusedPolygon() geom.Polygon { return a.fused }

// ApplyFusionDegree scales every fiber center (and core) toward the
// mean of the fiber centers by the coupler-model factor for the given
// degree. Call it before Build; it invalidates any previous results.
func (a *Assembly) ApplyFusionDegree(degree float64) error {
	factor, err := ScaleFactor(degree)
	if err != nil {
		return err
	}
	if len(a.fibers) == 0 {
		return nil
	}
	var origin geom.Vec
	for _, f := range a.fibers {
		origin = origin.Add(f.Center)
	}
	origin = origin.Scale(1 / float64(len(a.fibers)))

	for i, f := range a.fibers {
		a.fibers[i] = f.ScaledTowards(origin, factor)
	}
	a.invalidate()
	return nil
}

// Build runs the full fusion computation:
//
//  1. derive the connection graph from pairwise disk overlap,
//  2. find the global shift that balances added and removed glass area
//     and configure every connection with it,
//  3. reposition each fiber core from its connection's fused footprint
//     (sequentially, so connections sharing a fiber accumulate), and
//  4. union all fiber disks with all added sections into the fused
//     cross-section polygon.
//
// A cluster with no overlapping pairs is valid: the shift resolves to
// zero and the fused polygon is the union of the disjoint disks.
func (a *Assembly) Build() error {
	conns, err := BuildConnections(a.fibers)
	if err != nil {
		return err
	}
	a.connections = conns

	res, err := FindShift(conns, a.ShiftOpts)
	if err != nil {
		return err
	}
	if !res.Converged && len(conns) > 0 {
		log.Printf("fusion: global shift search stopped before tolerance (shift %g, residual %g)",
			res.Shift, res.Cost)
	}
	a.shift = res.Shift
	a.shiftCost = res.Cost
	a.topology = res.Topology

	// Re-apply the accepted configuration; idempotent after FindShift.
	for _, c := range conns {
		if err := c.Configure(res.Shift, res.Topology); err != nil {
			return err
		}
	}

	for _, c := range conns {
		if _, err := OptimizeCore(c, a.CoreOpts); err != nil {
			return err
		}
	}

	polys := make([]geom.Polygon, 0, len(a.fibers)+len(conns))
	for _, f := range a.fibers {
		polys = append(polys, f.Polygon())
	}
	for _, c := range conns {
		polys = append(polys, c.AddedSection())
	}
	a.fused = geom.Union(polys...)
	return nil
}

// invalidate drops every cached result.
func (a *Assembly) invalidate() {
	a.connections = nil
	a.fused = geom.Polygon{}
	a.shift = 0
	a.shiftCost = 0
	a.topology = TopologyUndefined
}
