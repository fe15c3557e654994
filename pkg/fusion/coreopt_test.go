package fusion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeCoreRequiresConfiguredConnection(t *testing.T) {
	pc := mustConnection(t, mustCircle(t, -0.95, 0, 1), mustCircle(t, 0.95, 0, 1))
	_, err := OptimizeCore(pc, CoreOptions{})
	assert.ErrorIs(t, err, ErrUndefinedTopology)
}

func TestOptimizeCoreSymmetricPair(t *testing.T) {
	a := mustCircle(t, -0.95, 0, 1)
	b := mustCircle(t, 0.95, 0, 1)
	pc := mustConnection(t, a, b)
	_, err := FindShift([]*PairConnection{pc}, ShiftOptions{})
	require.NoError(t, err)

	res, err := OptimizeCore(pc, CoreOptions{})
	require.NoError(t, err)
	require.True(t, res.Converged)

	shiftA, shiftB, ok := pc.CoreShift()
	require.True(t, ok)

	// Identical fibers at a symmetric separation: the two core shifts
	// are mirror images across the perpendicular bisector.
	assert.InDelta(t, shiftA.X, -shiftB.X, 1e-9)
	assert.InDelta(t, shiftA.Y, shiftB.Y, 1e-9)
	assert.InDelta(t, 0, shiftA.Y, 1e-9, "a horizontal pair shifts cores horizontally")

	// A shallow neck barely redistributes glass: each core stays close
	// to its own disk center, well inside its half of the pair.
	assert.InDelta(t, a.Center.X, a.Core.X, 0.05)
	assert.InDelta(t, b.Center.X, b.Core.X, 0.05)
	assert.Less(t, a.Core.X, 0.0)
	assert.Greater(t, b.Core.X, 0.0)
}

func TestOptimizeCoreKeepsCoresOnNonConvergence(t *testing.T) {
	a := mustCircle(t, -0.95, 0, 1)
	b := mustCircle(t, 0.95, 0, 1)
	pc := mustConnection(t, a, b)
	_, err := FindShift([]*PairConnection{pc}, ShiftOptions{})
	require.NoError(t, err)

	res, err := OptimizeCore(pc, CoreOptions{Tolerance: 1e-12, MaxIter: 2})
	require.NoError(t, err, "non-convergence is recoverable, not an error")
	assert.False(t, res.Converged)
	assert.Equal(t, a.Center, a.Core, "core must keep its prior position")
	assert.Equal(t, b.Center, b.Core, "core must keep its prior position")
}

func TestOptimizeCoreSplitsHalfArea(t *testing.T) {
	a := mustCircle(t, -0.95, 0, 1)
	b := mustCircle(t, 0.95, 0, 1)
	pc := mustConnection(t, a, b)
	_, err := FindShift([]*PairConnection{pc}, ShiftOptions{})
	require.NoError(t, err)

	res, err := OptimizeCore(pc, CoreOptions{Tolerance: 1e-5})
	require.NoError(t, err)
	require.True(t, res.Converged)

	// The residual cost is |smaller-half area − half of fiber A's
	// area|; at convergence it is a tiny fraction of the disk.
	assert.Less(t, res.Cost, 0.01*a.Area())
	assert.False(t, math.IsNaN(res.Cost))
}
