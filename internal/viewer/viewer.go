// Package viewer shows the rotating torus in a window.
package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/lukaszgryglicki/clifford4d/internal/animator"
	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
	"github.com/lukaszgryglicki/clifford4d/internal/config"
	"github.com/lukaszgryglicki/clifford4d/internal/logging"
	"github.com/lukaszgryglicki/clifford4d/internal/metrics"
	"github.com/lukaszgryglicki/clifford4d/internal/raster"
)

const windowTitle = "Clifford Torus 4D"

type Options struct {
	// Context closes the window once it is done; nil means never.
	Context  context.Context
	Recorder *metrics.Recorder
	Logger   *slog.Logger
	Debug    bool // FPS and particle overlay
}

// Game implements ebiten.Game. The window size is fixed by the config it was
// created with; everything in Simulation may change while running.
type Game struct {
	cfg   atomic.Pointer[config.Config]
	anim  *animator.Animator
	clock animator.Clock

	cam    raster.Camera
	canvas *raster.Canvas
	pix    []byte
	bg     clifford4d.RGB
	frame  animator.Frame

	ctx   context.Context
	rec   *metrics.Recorder
	log   *slog.Logger
	debug bool
}

func New(cfg config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := cfg.Render.BackgroundRGB()
	if err != nil {
		return nil, err
	}
	rc := cfg.Render
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	g := &Game{
		anim: animator.New(animator.Options{
			Workers:  rc.Workers,
			Seed:     rc.Seed,
			Recorder: opts.Recorder,
			Logger:   opts.Logger,
		}),
		cam:    raster.Camera{Distance: rc.CameraDistance, FOVDeg: rc.FOVDeg, Width: rc.Width, Height: rc.Height},
		canvas: raster.NewCanvas(rc.Width, rc.Height),
		pix:    make([]byte, rc.Width*rc.Height*4),
		bg:     bg,
		ctx:    ctx,
		rec:    opts.Recorder,
		log:    logging.OrDefault(opts.Logger),
		debug:  opts.Debug,
	}
	g.cfg.Store(&cfg)
	return g, nil
}

// SetConfig swaps in a new configuration; the next Update picks it up. Safe to
// call from any goroutine.
func (g *Game) SetConfig(cfg config.Config) {
	if err := config.ValidateSimulation(cfg.Simulation); err != nil {
		g.log.Warn("ignoring config update", "error", err)
		return
	}
	g.cfg.Store(&cfg)
	g.log.Info("config updated", "particles", cfg.Simulation.ParticleCount, "scheme", cfg.Simulation.ColorScheme, "paused", cfg.Simulation.Paused)
}

// Update returns ebiten.Termination once the context is done, which makes
// RunGame return nil.
func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		g.log.Info("closing viewer", "reason", err)
		return ebiten.Termination
	}
	sim := g.cfg.Load().Simulation
	tps := ebiten.TPS()
	if tps <= 0 {
		// SyncWithFPS reports a negative TPS.
		tps = ebiten.DefaultTPS
	}
	t := g.clock.Advance(1/float64(tps), sim.Paused)
	fr, err := g.anim.Step(sim, t)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	if fr.Regenerated {
		g.log.Debug("point set regenerated", "particles", len(fr.Positions)/3)
	}
	g.frame = fr
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	g.canvas.Clear(g.bg)
	if err := g.canvas.Splat(g.frame.Positions, g.frame.Colors, g.frame.Opacity, g.frame.PointSize, g.cam, runtime.NumCPU()); err != nil {
		g.log.Error("splat failed", "error", err)
		return
	}
	_ = g.canvas.FillRGBA(g.pix)
	screen.WritePixels(g.pix)
	g.rec.ObserveFrame(time.Since(start))

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f\nparticles: %d  t: %.2f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), len(g.frame.Positions)/3, g.frame.Elapsed))
	}
}

func (g *Game) Layout(_, _ int) (int, int) { return g.cam.Width, g.cam.Height }

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cam.Width, g.cam.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
