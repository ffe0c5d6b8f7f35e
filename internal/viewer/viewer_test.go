package viewer

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/clifford4d/internal/config"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Simulation.ParticleCount = 100
	cfg.Render.Width = 16
	cfg.Render.Height = 12
	cfg.Render.Seed = 3
	cfg.Render.Workers = 2
	return cfg
}

func TestUpdate_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, err := New(smallConfig(), Options{Context: ctx})
	require.NoError(t, err)

	require.NoError(t, g.Update())
	assert.Len(t, g.frame.Positions, 300)

	cancel()
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestUpdate_PausedHoldsTime(t *testing.T) {
	cfg := smallConfig()
	cfg.Simulation.Paused = true
	g, err := New(cfg, Options{})
	require.NoError(t, err)

	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
	assert.Equal(t, 0.0, g.frame.Elapsed)

	cfg.Simulation.Paused = false
	g.SetConfig(cfg)
	require.NoError(t, g.Update())
	assert.Greater(t, g.frame.Elapsed, 0.0)
}

func TestSetConfig_RejectsInvalid(t *testing.T) {
	cfg := smallConfig()
	g, err := New(cfg, Options{})
	require.NoError(t, err)

	bad := cfg
	bad.Simulation.ProjectionDistance = 0.2
	g.SetConfig(bad)
	assert.Equal(t, 2.5, g.cfg.Load().Simulation.ProjectionDistance)

	w, h := g.Layout(0, 0)
	assert.Equal(t, 16, w)
	assert.Equal(t, 12, h)
}
