// Package metrics exposes Prometheus collectors for point-set generation,
// per-frame projection and offline frame rendering.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder groups the collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	generateSeconds prometheus.Histogram
	projectSeconds  prometheus.Histogram
	frameSeconds    prometheus.Histogram
	regenerations   prometheus.Counter
	particles       prometheus.Gauge
}

// NewRecorder registers the collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		generateSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "clifford4d_generate_seconds",
			Help:    "Time to sample a point set on the torus.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		projectSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "clifford4d_project_seconds",
			Help:    "Time to rotate and project one frame.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		frameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "clifford4d_frame_render_seconds",
			Help:    "Time to project and rasterize one offline frame.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		regenerations: f.NewCounter(prometheus.CounterOpts{
			Name: "clifford4d_regenerations_total",
			Help: "Point sets generated after a structural configuration change.",
		}),
		particles: f.NewGauge(prometheus.GaugeOpts{
			Name: "clifford4d_particles",
			Help: "Number of points in the current point set.",
		}),
	}
}

func (r *Recorder) ObserveGenerate(d time.Duration, particles int) {
	if r == nil {
		return
	}
	r.generateSeconds.Observe(d.Seconds())
	r.regenerations.Inc()
	r.particles.Set(float64(particles))
}

func (r *Recorder) ObserveProject(d time.Duration) {
	if r == nil {
		return
	}
	r.projectSeconds.Observe(d.Seconds())
}

func (r *Recorder) ObserveFrame(d time.Duration) {
	if r == nil {
		return
	}
	r.frameSeconds.Observe(d.Seconds())
}

// Serve exposes g on addr at /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
