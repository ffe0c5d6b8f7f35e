package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
	"github.com/lukaszgryglicki/clifford4d/internal/config"
	"github.com/lukaszgryglicki/clifford4d/internal/logging"
	"github.com/lukaszgryglicki/clifford4d/internal/metrics"
	"github.com/lukaszgryglicki/clifford4d/internal/render"
	"github.com/lukaszgryglicki/clifford4d/internal/viewer"
)

var (
	configPath  string
	logLevel    string
	logJSON     bool
	metricsAddr string

	outPath     string
	frames      int
	format      string
	watchConfig bool
	dumpTime    float64
	dumpOut     string
)

var rootCmd = &cobra.Command{
	Use:           "clifford4d",
	Short:         "Rotate a Clifford torus in 4D and project it to 3D",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an animation to a GIF or a PNG sequence",
	RunE:  runRender,
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the animation in a window",
	RunE:  runView,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write one frame's position and color buffers as raw binary",
	RunE:  runDump,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML or JSON config file (defaults when empty)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&logJSON, "log-json", false, "log JSON lines instead of text")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (overrides render.output)")
	renderCmd.Flags().IntVarP(&frames, "frames", "n", 0, "number of frames (overrides render.frames)")
	renderCmd.Flags().StringVarP(&format, "format", "f", "", "gif or png (overrides render.format)")

	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVarP(&watchConfig, "watch", "w", false, "reload the config file when it changes")

	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().Float64VarP(&dumpTime, "time", "t", 0, "elapsed time of the frame in seconds")
	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", "frame.raw", "output file")
}

// env holds what every command needs after flag and config processing.
type env struct {
	cfg config.Config
	log *slog.Logger
	rec *metrics.Recorder
	reg *prometheus.Registry
}

func setup() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logJSON {
		cfg.Log.JSON = true
	}
	if os.Getenv("DEBUG") != "" {
		cfg.Log.Level = "debug"
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	if err != nil {
		log.Warn("falling back to info level", "error", err)
	}
	slog.SetDefault(log)

	reg := prometheus.NewRegistry()
	return &env{cfg: cfg, log: log, rec: metrics.NewRecorder(reg), reg: reg}, nil
}

// serveMetrics starts the /metrics endpoint when configured.
func (e *env) serveMetrics(ctx context.Context) {
	addr := e.cfg.Metrics.Addr
	if addr == "" {
		return
	}
	go func() {
		e.log.Info("serving metrics", "addr", addr)
		if err := metrics.Serve(ctx, addr, e.reg); err != nil {
			e.log.Error("metrics server stopped", "error", err)
		}
	}()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runRender(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	if outPath != "" {
		e.cfg.Render.Output = outPath
	}
	if cmd.Flags().Changed("frames") {
		e.cfg.Render.Frames = frames
	}
	if format != "" {
		e.cfg.Render.Format = format
	}
	ctx, cancel := signalContext()
	defer cancel()
	e.serveMetrics(ctx)
	return render.Run(ctx, e.cfg, e.rec, e.log)
}

func runView(_ *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	e.serveMetrics(ctx)

	g, err := viewer.New(e.cfg, viewer.Options{
		Context:  ctx,
		Recorder: e.rec,
		Logger:   e.log,
		Debug:    os.Getenv("DEBUG") != "",
	})
	if err != nil {
		return err
	}
	if watchConfig {
		if configPath == "" {
			return fmt.Errorf("--watch needs --config")
		}
		w, err := config.NewWatcher(configPath, config.DefaultDebounce, g.SetConfig, e.log)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
	}
	return g.Run()
}

func runDump(_ *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	return render.Dump(dumpOut, e.cfg, clifford4d.Real(dumpTime), e.log)
}
