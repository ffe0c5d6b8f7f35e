// Package render produces offline animations of the projected torus: a GIF or
// a PNG sequence for a fixed number of frames, or a single raw frame dump.
package render

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lukaszgryglicki/clifford4d/internal/animator"
	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
	"github.com/lukaszgryglicki/clifford4d/internal/config"
	"github.com/lukaszgryglicki/clifford4d/internal/logging"
	"github.com/lukaszgryglicki/clifford4d/internal/metrics"
	"github.com/lukaszgryglicki/clifford4d/internal/raster"
)

// Run renders cfg.Render.Frames frames at t_k = k/FPS and writes them in
// cfg.Render.Format to cfg.Render.Output. Frames render concurrently and share
// one point set.
func Run(ctx context.Context, cfg config.Config, rec *metrics.Recorder, log *slog.Logger) error {
	log = logging.OrDefault(log)
	if err := cfg.Validate(); err != nil {
		return err
	}
	rc := cfg.Render
	bg, err := rc.BackgroundRGB()
	if err != nil {
		return err
	}

	anim := animator.New(animator.Options{Seed: rc.Seed, Recorder: rec, Logger: log})
	ps, err := anim.PointSet(cfg.Simulation)
	if err != nil {
		return err
	}
	colors := ps.NewColorBuffer()
	cam := raster.Camera{Distance: rc.CameraDistance, FOVDeg: rc.FOVDeg, Width: rc.Width, Height: rc.Height}
	sim := cfg.Simulation

	workers := rc.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log.Info("rendering", "frames", rc.Frames, "particles", ps.Len(), "size", fmt.Sprintf("%dx%d", rc.Width, rc.Height), "workers", workers)

	frames := make([]*image.NRGBA, rc.Frames)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	start := time.Now()
	for k := 0; k < rc.Frames; k++ {
		k := k
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t0 := time.Now()
			positions := make([]clifford4d.Real, 3*ps.Len())
			elapsed := clifford4d.Real(k) / rc.FPS
			if err := clifford4d.Project(ps, elapsed, sim.XWSpeed, sim.YZSpeed, sim.ProjectionDistance, positions); err != nil {
				return fmt.Errorf("frame %d: %w", k, err)
			}
			cv := raster.NewCanvas(rc.Width, rc.Height)
			cv.Clear(bg)
			if err := cv.Splat(positions, colors, sim.Opacity, sim.PointSize, cam, 1); err != nil {
				return fmt.Errorf("frame %d: %w", k, err)
			}
			frames[k] = cv.Image()
			rec.ObserveFrame(time.Since(t0))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Debug("frames rendered", "took", time.Since(start))

	switch rc.Format {
	case "png":
		prefix := strings.TrimSuffix(rc.Output, filepath.Ext(rc.Output))
		paths, err := raster.SavePNGSequence(frames, prefix)
		if err != nil {
			return fmt.Errorf("save png sequence: %w", err)
		}
		log.Info("saved PNG sequence", "prefix", prefix, "files", len(paths))
	default:
		if err := raster.SaveAnimatedGIF(frames, rc.Output, GIFDelay(rc.FPS)); err != nil {
			return fmt.Errorf("save gif: %w", err)
		}
		log.Info("saved animated GIF", "path", rc.Output)
	}
	return nil
}

// GIFDelay converts fps to a GIF frame delay in 100ths of a second, min 1.
func GIFDelay(fps float64) int {
	d := int(math.Round(100 / fps))
	if d < 1 {
		return 1
	}
	return d
}

// Dump projects a single frame at elapsed and writes its position and color
// buffers to path in the raw binary layout.
func Dump(path string, cfg config.Config, elapsed clifford4d.Real, log *slog.Logger) error {
	log = logging.OrDefault(log)
	if err := cfg.Validate(); err != nil {
		return err
	}
	anim := animator.New(animator.Options{Workers: cfg.Render.Workers, Seed: cfg.Render.Seed, Logger: log})
	fr, err := anim.Step(cfg.Simulation, elapsed)
	if err != nil {
		return err
	}
	if err := raster.SaveRawFrame(path, fr.Positions, fr.Colors); err != nil {
		return fmt.Errorf("save raw frame: %w", err)
	}
	log.Info("saved raw frame", "path", path, "particles", len(fr.Positions)/3, "t", elapsed)
	return nil
}
