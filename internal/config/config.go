// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package config loads the TOML run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/diagnostics"
	"Circadian_Persistence_AR_Project/resampling"
	"Circadian_Persistence_AR_Project/sensitivity"
)

// Config is the full file layout. Every section is optional.
type Config struct {
	Logging     LoggingConfig          `toml:"logging"`
	Bands       ar2.Bands              `toml:"bands"`
	Diagnostics diagnostics.Thresholds `toml:"diagnostics"`
	Resampling  ResamplingConfig       `toml:"resampling"`
	Sensitivity sensitivity.Config     `toml:"sensitivity"`
	Benchmark   BenchmarkConfig        `toml:"benchmark"`
}

// LoggingConfig selects the logrus level and formatter.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ResamplingConfig holds the permutation and bootstrap settings.
type ResamplingConfig struct {
	Permutations int     `toml:"permutations"`
	Bootstraps   int     `toml:"bootstraps"`
	BlockLength  int     `toml:"block_length"`
	Alpha        float64 `toml:"alpha"`
	Workers      int     `toml:"workers"`
	Seed         int64   `toml:"seed"`
}

// BenchmarkConfig holds the benchmark settings.
type BenchmarkConfig struct {
	// Sampling interval in hours
	Interval float64 `toml:"interval"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Logging:     LoggingConfig{Level: "info", Format: "text"},
		Bands:       ar2.DefaultBands,
		Diagnostics: diagnostics.DefaultThresholds(),
		Resampling: ResamplingConfig{
			Permutations: resampling.DefaultPermutations,
			Bootstraps:   resampling.DefaultBootstraps,
			BlockLength:  resampling.DefaultBlockLength,
			Alpha:        resampling.DefaultAlpha,
			Workers:      1,
		},
		Sensitivity: sensitivity.Config{
			Trials:       100,
			Perturbation: 0.2,
			Reference:    "X",
			Target:       "target",
			Interval:     1,
			MinAccepted:  10,
			Workers:      1,
		},
		Benchmark: BenchmarkConfig{Interval: 1},
	}
}

// Load decodes the file at path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every value is in range.
func (c Config) Validate() error {
	if err := c.Bands.Validate(); err != nil {
		return fmt.Errorf("bands: %w", err)
	}
	d := c.Diagnostics
	if d.SampleCritical > d.SampleWarning {
		return errors.New("diagnostics: sample_critical exceeds sample_warning")
	}
	if d.BoundaryLow >= d.BoundaryHigh {
		return errors.New("diagnostics: boundary_low must be below boundary_high")
	}

	r := c.Resampling
	if r.Permutations < 1 || r.Bootstraps < 1 {
		return errors.New("resampling: permutations and bootstraps must be positive")
	}
	if r.BlockLength < 0 {
		return errors.New("resampling: block_length must not be negative")
	}
	if r.Alpha <= 0 || r.Alpha >= 1 {
		return fmt.Errorf("resampling: alpha %v outside (0, 1)", r.Alpha)
	}

	s := c.Sensitivity
	if s.Trials < 1 {
		return errors.New("sensitivity: trials must be positive")
	}
	if s.Perturbation <= 0 || s.Perturbation >= 1 {
		return fmt.Errorf("sensitivity: perturbation %v outside (0, 1)", s.Perturbation)
	}
	if s.Window.Enabled() && s.Window.Min > s.Window.Max {
		return errors.New("sensitivity: window min exceeds max")
	}

	if c.Benchmark.Interval <= 0 {
		return errors.New("benchmark: interval must be positive")
	}
	return nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultPath returns the default TOML config path.
func DefaultPath() string {
	return filepath.Join(XDGConfigHome(), "par2", "config.toml")
}
