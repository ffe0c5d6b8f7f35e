// Package config holds the simulation configuration record read once per
// frame, plus the settings of the offline renderer, logging and metrics.
//
// Loading priority is env > file > defaults, and every loaded configuration is
// validated before use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
)

// Simulation is the per-frame configuration record. XWSpeed, YZSpeed and
// ProjectionDistance are consumed every frame; ParticleCount and ColorScheme
// are structural and force a new point set when they change. Paused freezes
// simulation time so the rotation holds its current angle.
type Simulation struct {
	XWSpeed            float64                `json:"xwSpeed" yaml:"xwSpeed" validate:"gte=-2,lte=2"`
	YZSpeed            float64                `json:"yzSpeed" yaml:"yzSpeed" validate:"gte=-2,lte=2"`
	ProjectionDistance float64                `json:"projectionDistance" yaml:"projectionDistance" validate:"gte=1.1,lte=5"`
	ParticleCount      int                    `json:"particleCount" yaml:"particleCount" validate:"gt=0,lte=500000"`
	Opacity            float64                `json:"opacity" yaml:"opacity" validate:"gte=0.1,lte=1"`
	PointSize          float64                `json:"pointSize" yaml:"pointSize" validate:"gt=0,lte=1"`
	ColorScheme        clifford4d.ColorScheme `json:"colorScheme" yaml:"colorScheme" validate:"colorscheme"`
	Paused             bool                   `json:"paused,omitempty" yaml:"paused,omitempty"`
}

// Structure is the structural configuration key, compared by value.
type Structure struct {
	ParticleCount int
	ColorScheme   clifford4d.ColorScheme
}

func (s Simulation) Structure() Structure {
	return Structure{ParticleCount: s.ParticleCount, ColorScheme: s.ColorScheme}
}

// Render configures the offline renderer and the viewer window. Workers 0
// means NumCPU; Seed 0 means a time-seeded point set.
type Render struct {
	Width          int     `json:"width" yaml:"width" validate:"gt=0,lte=8192"`
	Height         int     `json:"height" yaml:"height" validate:"gt=0,lte=8192"`
	Frames         int     `json:"frames" yaml:"frames" validate:"gt=0,lte=100000"`
	FPS            float64 `json:"fps" yaml:"fps" validate:"gt=0,lte=240"`
	CameraDistance float64 `json:"cameraDistance" yaml:"cameraDistance" validate:"gt=0"`
	FOVDeg         float64 `json:"fovDeg" yaml:"fovDeg" validate:"gt=0,lt=180"`
	Format         string  `json:"format" yaml:"format" validate:"oneof=gif png"`
	Output         string  `json:"output" yaml:"output" validate:"required"`
	Workers        int     `json:"workers,omitempty" yaml:"workers,omitempty" validate:"gte=0"`
	Seed           int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	Background     string  `json:"background" yaml:"background" validate:"hexcolor"`
}

type Log struct {
	Level string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON  bool   `json:"json,omitempty" yaml:"json,omitempty"`
}

type Metrics struct {
	// Addr enables the /metrics endpoint when non-empty, e.g. ":9090".
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

type Config struct {
	Simulation Simulation `json:"simulation" yaml:"simulation"`
	Render     Render     `json:"render" yaml:"render"`
	Log        Log        `json:"log" yaml:"log"`
	Metrics    Metrics    `json:"metrics" yaml:"metrics"`
}

var validate = newValidator()

// newValidator adds the "colorscheme" tag, which accepts exactly the names in
// clifford4d.ColorSchemes.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("colorscheme", func(fl validator.FieldLevel) bool {
		return slices.Contains(clifford4d.ColorSchemes, clifford4d.ColorScheme(fl.Field().String()))
	}); err != nil {
		panic(err)
	}
	return v
}

// Default returns the configuration the original scene starts with.
func Default() Config {
	return Config{
		Simulation: Simulation{
			XWSpeed:            0.5,
			YZSpeed:            0.2,
			ProjectionDistance: 2.5,
			ParticleCount:      15000,
			Opacity:            0.6,
			PointSize:          0.05,
			ColorScheme:        clifford4d.SchemeCyber,
		},
		Render: Render{
			Width:          800,
			Height:         600,
			Frames:         120,
			FPS:            30,
			CameraDistance: 5,
			FOVDeg:         60,
			Format:         "gif",
			Output:         "clifford.gif",
			Background:     "#050505",
		},
		Log: Log{Level: "info"},
	}
}

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ValidateSimulation checks only the per-frame record.
func ValidateSimulation(s Simulation) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}
	return nil
}

// Load reads path (YAML, falling back to JSON) over the defaults, applies
// environment overrides and validates. An empty path loads defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	cfg.Simulation.ColorScheme = clifford4d.ColorScheme(strings.ToLower(string(cfg.Simulation.ColorScheme)))
	return nil
}

func loadEnv(cfg *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"CLIFFORD_XW_SPEED", &cfg.Simulation.XWSpeed},
		{"CLIFFORD_YZ_SPEED", &cfg.Simulation.YZSpeed},
		{"CLIFFORD_PROJECTION_DISTANCE", &cfg.Simulation.ProjectionDistance},
		{"CLIFFORD_OPACITY", &cfg.Simulation.Opacity},
		{"CLIFFORD_POINT_SIZE", &cfg.Simulation.PointSize},
	}
	for _, f := range floats {
		if v := os.Getenv(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("env %s: %w", f.key, err)
			}
			*f.dst = x
		}
	}
	if v := os.Getenv("CLIFFORD_PARTICLE_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env CLIFFORD_PARTICLE_COUNT: %w", err)
		}
		cfg.Simulation.ParticleCount = n
	}
	if v := os.Getenv("CLIFFORD_COLOR_SCHEME"); v != "" {
		cs, err := clifford4d.ParseColorScheme(v)
		if err != nil {
			return fmt.Errorf("env CLIFFORD_COLOR_SCHEME: %w", err)
		}
		cfg.Simulation.ColorScheme = cs
	}
	if v := os.Getenv("CLIFFORD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CLIFFORD_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return nil
}

// BackgroundRGB parses Render.Background ("#rgb" or "#rrggbb").
func (r Render) BackgroundRGB() (clifford4d.RGB, error) {
	s := strings.TrimPrefix(r.Background, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return clifford4d.RGB{}, fmt.Errorf("bad background color %q", r.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return clifford4d.RGB{}, fmt.Errorf("bad background color %q: %w", r.Background, err)
	}
	return clifford4d.RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}
