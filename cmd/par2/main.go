// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package main provides the par2 command line: AR(2) persistence fits,
// resampling validation, Monte Carlo sensitivity and benchmarks.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Circadian_Persistence_AR_Project/internal/config"
	"Circadian_Persistence_AR_Project/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	seed       int64
	workers    int
	outDir     string

	// Resolved in the root pre-run
	cfg config.Config
	log logrus.FieldLogger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "par2",
		Short:             "AR(2) persistence analysis of circadian gene expression",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath(), "TOML config file")
	flags.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", "text", "text or json")
	flags.Int64Var(&seed, "seed", 0, "master seed, 0 for a time-based seed")
	flags.IntVar(&workers, "workers", 1, "concurrent iterations")
	flags.StringVar(&outDir, "out", "", "directory for CSV output (none when empty)")

	rootCmd.AddCommand(newFitCmd())
	rootCmd.AddCommand(newPermuteCmd())
	rootCmd.AddCommand(newBootstrapCmd())
	rootCmd.AddCommand(newSensitivityCmd())
	rootCmd.AddCommand(newBenchCmd())

	return rootCmd
}

// setup loads the config file, applies flags that were set explicitly and
// builds the run logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if flags.Changed("seed") {
		cfg.Resampling.Seed = seed
		cfg.Sensitivity.Seed = seed
	}
	if flags.Changed("workers") {
		if workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", workers)
		}
		cfg.Resampling.Workers = workers
		cfg.Sensitivity.Workers = workers
	}

	log = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format).
		WithField("run_id", uuid.New().String())
	log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"config":  configPath,
	}).Debug("starting")

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return nil
}

// outPath returns the CSV path for name, or "" when --out is unset.
func outPath(name string) string {
	if outDir == "" {
		return ""
	}
	return filepath.Join(outDir, name)
}

// writeOutput runs write when --out is set and logs the destination.
func writeOutput(name string, write func(path string) error) error {
	path := outPath(name)
	if path == "" {
		return nil
	}
	if err := write(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.WithField("path", path).Info("wrote output")
	return nil
}
