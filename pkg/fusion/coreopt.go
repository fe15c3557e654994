package fusion

import (
	"fmt"
	"log"
	"math"

	"github.com/MartinPdeS/fiberfusing/pkg/geom"
	"github.com/MartinPdeS/fiberfusing/pkg/optimize"
)

const (
	// coreSearchLo is kept just above 0.5: a split exactly at the
	// midpoint is a degenerate singularity of the half-area cost.
	coreSearchLo = 0.50001
	coreSearchHi = 0.99

	defaultCoreTolerance = 1e-4
)

// CoreOptions configures the per-connection core repositioning search.
type CoreOptions struct {
	// Tolerance is the absolute tolerance on the split parameter.
	// Default 1e-4.
	Tolerance float64

	// MaxIter caps the search iterations.
	MaxIter int

	// Observer receives every trial (x, cost) pair.
	Observer func(x, cost float64)
}

// OptimizeCore finds where to split a connection's fused footprint so
// that fiber A's side holds exactly half of fiber A's area, then moves
// both cores to the split points. This approximates the core drifting
// toward the new glass centroid after surface-tension redistribution.
// The connection must already be configured with the global shift.
//
// Non-convergence is recoverable: the cores keep their previous
// positions, a line is logged, and no error is returned.
func OptimizeCore(conn *PairConnection, opts CoreOptions) (optimize.Result, error) {
	if conn == nil {
		return optimize.Result{}, fmt.Errorf("%w: nil connection", ErrDegenerateGeometry)
	}
	if !conn.configured {
		return optimize.Result{}, fmt.Errorf("core optimization requires a configured connection: %w", ErrUndefinedTopology)
	}

	tol := opts.Tolerance
	if tol <= 0 {
		tol = defaultCoreTolerance
	}

	fiberA, fiberB := conn.fiberA, conn.fiberB
	line := conn.centerLine().Extended(fiberA.Radius, fiberB.Radius)
	footprint := geom.Union(fiberA.Polygon(), fiberB.Polygon(), conn.AddedSection()).LargestComponent()
	halfTarget := fiberA.Area() / 2

	cost := func(x float64) float64 {
		position0 := line.At(1 - x)
		position1 := line.At(x)
		conn.recordCoreShift(position0.Sub(fiberA.Center), position1.Sub(fiberB.Center))
		smaller, _ := footprint.SplitByLine(splitterAt(line, position0))
		return math.Abs(smaller.Area() - halfTarget)
	}

	res := optimize.Minimize(cost, coreSearchLo, coreSearchHi, optimize.Options{
		Tolerance: tol,
		MaxIter:   opts.MaxIter,
		Observer:  opts.Observer,
	})
	if !res.Converged {
		log.Printf("fusion: core position search did not converge after %d evaluations (cost %g); keeping previous core positions",
			res.Evaluations, res.Cost)
		return res, nil
	}

	// Re-evaluate at the accepted x so the recorded shift pair belongs
	// to it rather than to the last trial point.
	cost(res.X)
	conn.applyCoreShift()
	return res, nil
}

// splitterAt returns the cut line for a candidate split position: the
// extended center line re-centered on the position, rotated a quarter
// turn, and doubled in length.
func splitterAt(line geom.LineSegment, position geom.Vec) geom.LineSegment {
	offset := position.Sub(line.Mid())
	moved := geom.LineSegment{P0: line.P0.Add(offset), P1: line.P1.Add(offset)}
	return moved.RotatedAbout(math.Pi/2, position).ScaledAbout(2, position)
}
