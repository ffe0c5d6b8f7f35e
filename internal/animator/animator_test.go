package animator

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
	"github.com/lukaszgryglicki/clifford4d/internal/config"
	"github.com/lukaszgryglicki/clifford4d/internal/metrics"
)

func smallSim() config.Simulation {
	s := config.Default().Simulation
	s.ParticleCount = 300
	return s
}

func TestStep_ReusesBuffersUntilStructureChanges(t *testing.T) {
	a := New(Options{Workers: 3, Seed: 1, Recorder: metrics.NewRecorder(prometheus.NewRegistry())})
	sim := smallSim()

	f1, err := a.Step(sim, 0)
	require.NoError(t, err)
	assert.True(t, f1.Regenerated)
	require.Len(t, f1.Positions, 900)
	require.Len(t, f1.Colors, 900)

	// Per-frame fields do not regenerate.
	sim.XWSpeed = -1.5
	sim.ProjectionDistance = 4
	sim.Opacity = 0.9
	f2, err := a.Step(sim, 1.25)
	require.NoError(t, err)
	assert.False(t, f2.Regenerated)
	assert.Same(t, &f1.Positions[0], &f2.Positions[0], "position buffer reused")
	assert.Same(t, &f1.Colors[0], &f2.Colors[0], "color buffer reused")
	assert.Equal(t, 0.9, f2.Opacity)
	assert.Equal(t, 1.25, f2.Elapsed)

	// Color scheme is structural.
	sim.ColorScheme = clifford4d.SchemeThermal
	f3, err := a.Step(sim, 2)
	require.NoError(t, err)
	assert.True(t, f3.Regenerated)

	// So is particle count.
	sim.ParticleCount = 10
	f4, err := a.Step(sim, 2)
	require.NoError(t, err)
	assert.True(t, f4.Regenerated)
	assert.Len(t, f4.Positions, 30)
}

func TestStep_MatchesCoreProjection(t *testing.T) {
	a := New(Options{Workers: 4, Seed: 99})
	sim := smallSim()
	f, err := a.Step(sim, 3.5)
	require.NoError(t, err)

	ps, err := a.PointSet(sim)
	require.NoError(t, err)
	want := make([]clifford4d.Real, 3*ps.Len())
	require.NoError(t, clifford4d.Project(ps, 3.5, sim.XWSpeed, sim.YZSpeed, sim.ProjectionDistance, want))
	assert.Equal(t, want, f.Positions)
	assert.Equal(t, ps.NewColorBuffer(), f.Colors)
}

func TestPointSet_SharedUntilChange(t *testing.T) {
	a := New(Options{Seed: 5})
	sim := smallSim()
	p1, err := a.PointSet(sim)
	require.NoError(t, err)
	p2, err := a.PointSet(sim)
	require.NoError(t, err)
	assert.Same(t, p1, p2)

	sim.ParticleCount++
	p3, err := a.PointSet(sim)
	require.NoError(t, err)
	assert.NotSame(t, p1, p3)
	assert.Equal(t, sim.ParticleCount, p3.Len())
}

func TestStep_InvalidStructure(t *testing.T) {
	a := New(Options{})
	sim := smallSim()
	sim.ParticleCount = 0
	_, err := a.Step(sim, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, clifford4d.ErrInvalidArgument)

	// A failed regeneration keeps the previous set.
	sim = smallSim()
	_, err = a.Step(sim, 0)
	require.NoError(t, err)
	bad := sim
	bad.ColorScheme = "sepia"
	_, err = a.Step(bad, 1)
	require.Error(t, err)
	f, err := a.Step(sim, 1)
	require.NoError(t, err)
	assert.False(t, f.Regenerated)
}

func TestClock(t *testing.T) {
	var c Clock
	assert.Equal(t, 0.0, c.Now())
	assert.Equal(t, 0.5, c.Advance(0.5, false))
	assert.Equal(t, 0.5, c.Advance(0.5, true), "paused clock holds")
	assert.Equal(t, 0.5, c.Advance(-1, false), "negative steps are ignored")
	c.Set(0.1)
	assert.Equal(t, 0.1, c.Now())
	assert.InDelta(t, 0.35, c.Advance(0.25, false), 1e-12)
}
