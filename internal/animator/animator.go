// Package animator drives the geometry core once per displayed frame.
//
// It owns the cached point set and the position/color buffers handed to a
// renderer. The point set is regenerated wholesale whenever the structural
// configuration (particle count, color scheme) changes; otherwise each Step
// only re-projects into the existing position buffer.
package animator

import (
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
	"github.com/lukaszgryglicki/clifford4d/internal/config"
	"github.com/lukaszgryglicki/clifford4d/internal/logging"
	"github.com/lukaszgryglicki/clifford4d/internal/metrics"
)

// Frame is the renderer-facing view of one step. Positions and Colors are
// owned by the Animator and stay valid until the next Step.
type Frame struct {
	Positions   []clifford4d.Real // interleaved x,y,z
	Colors      []clifford4d.Real // interleaved r,g,b
	Opacity     float64
	PointSize   float64
	Elapsed     clifford4d.Real
	Regenerated bool
}

// Options configures New. All fields are optional.
type Options struct {
	Workers  int   // projection goroutines; 0 => NumCPU
	Seed     int64 // 0 => time-seeded
	Recorder *metrics.Recorder
	Logger   *slog.Logger
}

type Animator struct {
	mu        sync.Mutex
	structure config.Structure
	points    *clifford4d.PointSet
	positions []clifford4d.Real
	colors    []clifford4d.Real

	rng     *rand.Rand
	workers int
	rec     *metrics.Recorder
	log     *slog.Logger
}

func New(opts Options) *Animator {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Animator{
		rng:     rand.New(rand.NewSource(seed)),
		workers: workers,
		rec:     opts.Recorder,
		log:     logging.OrDefault(opts.Logger),
	}
}

// Step brings the point set in line with sim and projects it at elapsed.
func (a *Animator) Step(sim config.Simulation, elapsed clifford4d.Real) (Frame, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	regenerated, err := a.ensure(sim)
	if err != nil {
		return Frame{}, err
	}
	start := time.Now()
	if err := clifford4d.ProjectParallel(a.points, elapsed, sim.XWSpeed, sim.YZSpeed, sim.ProjectionDistance, a.positions, a.workers); err != nil {
		return Frame{}, err
	}
	a.rec.ObserveProject(time.Since(start))

	return Frame{
		Positions:   a.positions,
		Colors:      a.colors,
		Opacity:     sim.Opacity,
		PointSize:   sim.PointSize,
		Elapsed:     elapsed,
		Regenerated: regenerated,
	}, nil
}

// PointSet returns the point set for sim's structure, generating it if the
// structure changed. The result is immutable and safe to share.
func (a *Animator) PointSet(sim config.Simulation) (*clifford4d.PointSet, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.ensure(sim); err != nil {
		return nil, err
	}
	return a.points, nil
}

func (a *Animator) ensure(sim config.Simulation) (bool, error) {
	key := sim.Structure()
	if a.points != nil && key == a.structure {
		return false, nil
	}
	start := time.Now()
	ps, err := clifford4d.GeneratePointSet(key.ParticleCount, key.ColorScheme, a.rng)
	if err != nil {
		return false, fmt.Errorf("generate point set: %w", err)
	}
	a.rec.ObserveGenerate(time.Since(start), ps.Len())
	a.log.Debug("point set generated", "particles", ps.Len(), "scheme", key.ColorScheme, "took", time.Since(start))

	a.structure = key
	a.points = ps
	a.positions = make([]clifford4d.Real, 3*ps.Len())
	a.colors = ps.NewColorBuffer()
	return true, nil
}
