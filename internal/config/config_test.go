// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"

[bands]
stable_low = 0.3
stable_high = 0.7
unstable_low = 0.95

[resampling]
permutations = 500
seed = 42

[sensitivity]
trials = 50
window = { min = 22, max = 26 }

[sensitivity.peaks]
min_spacing = 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 0.3, cfg.Bands.StableLow)
	assert.Equal(t, 0.95, cfg.Bands.UnstableLow)
	assert.Equal(t, 500, cfg.Resampling.Permutations)
	assert.Equal(t, Default().Resampling.Bootstraps, cfg.Resampling.Bootstraps)
	assert.Equal(t, int64(42), cfg.Resampling.Seed)
	assert.Equal(t, 50, cfg.Sensitivity.Trials)
	assert.Equal(t, 22.0, cfg.Sensitivity.Window.Min)
	assert.Equal(t, 26.0, cfg.Sensitivity.Window.Max)
	assert.Equal(t, 5, cfg.Sensitivity.Peaks.MinSpacing)
	assert.Equal(t, 0.2, cfg.Sensitivity.Perturbation)
	assert.Equal(t, Default().Diagnostics, cfg.Diagnostics)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[resampling\npermutations = 1"},
		{"unknown key", "[resampling]\npermutationz = 10"},
		{"alpha", "[resampling]\nalpha = 1.5"},
		{"bands", "[bands]\nstable_low = 0.9\nstable_high = 0.5"},
		{"window", "[sensitivity]\nwindow = { min = 30, max = 20 }"},
		{"perturbation", "[sensitivity]\nperturbation = 1.0"},
		{"interval", "[benchmark]\ninterval = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "par2", "config.toml"), DefaultPath())
}
