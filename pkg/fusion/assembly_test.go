package fusion

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblyBuildDisjointCluster(t *testing.T) {
	a := NewAssembly()
	require.NoError(t, a.AddFibers(
		mustCircle(t, 0, 0, 1),
		mustCircle(t, 10, 0, 1),
		mustCircle(t, 0, 10, 1),
	))
	require.NoError(t, a.Build())

	assert.Empty(t, a.Connections())
	assert.Zero(t, a.Shift())
	assert.Equal(t, TopologyUndefined, a.Topology())

	var want float64
	for _, f := range a.Fibers() {
		want += f.Polygon().Area()
	}
	// Tolerance covers the fixed-point round trip through the clipper
	// backend, same as the conservation check below.
	assert.InDelta(t, want, a.FusedPolygon().Area(), 1e-6,
		"disjoint disks fuse into nothing more than themselves")
}

func TestAssemblyBuildSymmetricPair(t *testing.T) {
	a := NewAssembly()
	fa := mustCircle(t, -0.75, 0, 1)
	fb := mustCircle(t, 0.75, 0, 1)
	require.NoError(t, a.AddFibers(fa, fb))
	require.NoError(t, a.Build())

	conns := a.Connections()
	require.Len(t, conns, 1)
	assert.Greater(t, a.Shift(), 0.0)
	assert.NotEqual(t, TopologyUndefined, a.Topology())

	// Glass conservation: the fused area is the two disks minus the
	// overlap they share plus the neck the shift search accepted.
	disks := fa.Polygon().Area() + fb.Polygon().Area()
	want := disks - conns[0].RemovedArea() + conns[0].AddedSection().Area()
	assert.InDelta(t, want, a.FusedPolygon().Area(), 1e-6)

	// Identical fibers across a symmetric neck end up with mirrored
	// cores on the pair axis.
	assert.InDelta(t, fa.Core.X, -fb.Core.X, 1e-9)
	assert.InDelta(t, 0, fa.Core.Y, 1e-9)
	assert.InDelta(t, 0, fb.Core.Y, 1e-9)
}

func TestAssemblyBuildIsRotationInvariant(t *testing.T) {
	horizontal := NewAssembly()
	require.NoError(t, horizontal.AddFibers(
		mustCircle(t, -0.75, 0, 1),
		mustCircle(t, 0.75, 0, 1),
	))
	require.NoError(t, horizontal.Build())

	vertical := NewAssembly()
	require.NoError(t, vertical.AddFibers(
		mustCircle(t, 0, -0.75, 1),
		mustCircle(t, 0, 0.75, 1),
	))
	require.NoError(t, vertical.Build())

	assert.Equal(t, horizontal.Topology(), vertical.Topology())
	assert.InDelta(t, horizontal.Shift(), vertical.Shift(), 1e-3)
	assert.InDelta(t, horizontal.FusedPolygon().Area(), vertical.FusedPolygon().Area(), 1e-3)
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name    string
		degree  float64
		want    float64
		wantErr bool
	}{
		{"zero degree keeps the layout", 0, 1, false},
		{"full fusion", 1, math.Sqrt2 - 1, false},
		{"half fusion", 0.5, 1 - 0.5*(2-math.Sqrt2), false},
		{"negative degree", -0.1, 0, true},
		{"degree above one", 1.1, 0, true},
		{"NaN degree", math.NaN(), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleFactor(tt.degree)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestApplyFusionDegreeBringsFibersIntoContact(t *testing.T) {
	a := NewAssembly()
	require.NoError(t, a.AddFibers(
		mustCircle(t, -1.05, 0, 1),
		mustCircle(t, 1.05, 0, 1),
	))

	// The untouched layout is disjoint.
	require.NoError(t, a.Build())
	require.Empty(t, a.Connections())

	require.NoError(t, a.ApplyFusionDegree(1))
	fibers := a.Fibers()
	assert.InDelta(t, -1.05*(math.Sqrt2-1), fibers[0].Center.X, 1e-12)
	assert.Equal(t, 1.0, fibers[0].Radius, "degree scaling moves centers, not radii")

	require.NoError(t, a.Build())
	assert.Len(t, a.Connections(), 1, "fully fused fibers must overlap")
}

func TestApplyFusionDegreeRejectsBadDegree(t *testing.T) {
	a := NewAssembly()
	require.NoError(t, a.AddFiber(mustCircle(t, 0, 0, 1)))
	assert.Error(t, a.ApplyFusionDegree(1.5))
}

func TestAssemblyAddFiberInvalidatesResults(t *testing.T) {
	a := NewAssembly()
	require.NoError(t, a.AddFibers(
		mustCircle(t, -0.75, 0, 1),
		mustCircle(t, 0.75, 0, 1),
	))
	require.NoError(t, a.Build())
	require.NotEmpty(t, a.Connections())

	require.NoError(t, a.AddFiber(mustCircle(t, 10, 0, 1)))
	assert.Nil(t, a.Connections())
	assert.Zero(t, a.Shift())
	assert.True(t, a.FusedPolygon().IsEmpty())
	assert.Equal(t, TopologyUndefined, a.Topology())
}

func TestAssemblyAddFiberRejectsInvalid(t *testing.T) {
	a := NewAssembly()
	assert.ErrorIs(t, a.AddFiber(nil), ErrDegenerateGeometry)

	bad := mustCircle(t, 0, 0, 1)
	bad.Radius = 0
	assert.ErrorIs(t, a.AddFiber(bad), ErrDegenerateGeometry)
}

func TestAssemblySummary(t *testing.T) {
	a := NewAssembly()
	require.NoError(t, a.AddFibers(
		mustCircle(t, -0.75, 0, 1),
		mustCircle(t, 0.75, 0, 1),
	))
	require.NoError(t, a.Build())

	s := a.Summary()
	require.Len(t, s.Fibers, 2)
	require.Len(t, s.Connections, 1)
	assert.Equal(t, a.Topology().String(), s.Topology)
	assert.Greater(t, s.FusedArea, 0.0)
	assert.Greater(t, s.Connections[0].RemovedArea, 0.0)

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var back Summary
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, s.Topology, back.Topology)
	assert.InDelta(t, s.FusedArea, back.FusedArea, 1e-12)
}
