// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Circadian_Persistence_AR_Project/internal/dataset"
	"Circadian_Persistence_AR_Project/internal/report"
	"Circadian_Persistence_AR_Project/resampling"
)

var (
	groupsPath  string
	groupA      string
	groupB      string
	iterations  int
	permuteMode string
	blockLength int
)

func addGroupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&groupsPath, "groups", "", "gene,group CSV (required)")
	cmd.Flags().StringVar(&groupA, "group-a", "clock", "label of the first group")
	cmd.Flags().StringVar(&groupB, "group-b", "target", "label of the second group")
	_ = cmd.MarkFlagRequired("groups")
}

// loadGeneSet builds the two-group input from a data table and a group file.
// Genes of either group that are missing from the table are left out.
func loadGeneSet(dataPath string) (*resampling.GeneSet, error) {
	ds, err := dataset.LoadCSV(dataPath)
	if err != nil {
		return nil, err
	}
	logDropped(dataPath, ds)
	groups, err := dataset.LoadGroups(groupsPath)
	if err != nil {
		return nil, err
	}

	universe := ds.Values()
	members := func(label string) []string {
		var out []string
		for _, g := range groups.Members(label) {
			if _, ok := universe[g]; ok {
				out = append(out, g)
			} else {
				log.WithField("gene", g).Warn("grouped gene missing from data")
			}
		}
		return out
	}
	gs := &resampling.GeneSet{
		Universe: universe,
		A:        resampling.Group{Name: groupA, Members: members(groupA)},
		B:        resampling.Group{Name: groupB, Members: members(groupB)},
	}
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	return gs, nil
}

func resamplingOptions(defaultIterations int) resampling.Options {
	n := defaultIterations
	if iterations > 0 {
		n = iterations
	}
	return resampling.Options{
		Iterations: n,
		Seed:       cfg.Resampling.Seed,
		Workers:    cfg.Resampling.Workers,
		Alpha:      cfg.Resampling.Alpha,
		Logger:     log,
	}
}

func newPermuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permute DATA.csv",
		Short: "Permutation test of the eigenvalue gap between two groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, err := loadGeneSet(args[0])
			if err != nil {
				return err
			}
			opts := resamplingOptions(cfg.Resampling.Permutations)

			var res *resampling.PermutationResult
			switch permuteMode {
			case "time":
				res, err = resampling.TimeShuffle(gs, opts)
			case "label":
				res, err = resampling.RandomLabel(gs, opts)
			default:
				return fmt.Errorf("--mode must be time or label, got %q", permuteMode)
			}
			if err != nil {
				return err
			}
			report.PrintPermutation(os.Stdout, res)
			return writeOutput("null_"+res.Method+".csv", func(path string) error {
				return report.OutputNullToCSV(path, res)
			})
		},
	}
	addGroupFlags(cmd)
	cmd.Flags().StringVar(&permuteMode, "mode", "time", "time (shuffle each series) or label (random gene labels)")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "permutations (0 uses the config value)")
	return cmd
}

func newBootstrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap DATA.csv",
		Short: "Block bootstrap confidence intervals for the eigenvalue gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, err := loadGeneSet(args[0])
			if err != nil {
				return err
			}
			opts := resampling.BootstrapOptions{
				Options:     resamplingOptions(cfg.Resampling.Bootstraps),
				BlockLength: cfg.Resampling.BlockLength,
			}
			if cmd.Flags().Changed("block-length") {
				opts.BlockLength = blockLength
			}
			res, err := resampling.BlockBootstrap(gs, opts)
			if err != nil {
				return err
			}
			report.PrintBootstrap(os.Stdout, res)
			return writeOutput("bootstrap.csv", func(path string) error {
				return report.OutputBootstrapToCSV(path, res)
			})
		},
	}
	addGroupFlags(cmd)
	cmd.Flags().IntVar(&iterations, "iterations", 0, "bootstrap replicates (0 uses the config value)")
	cmd.Flags().IntVar(&blockLength, "block-length", resampling.DefaultBlockLength, "contiguous block length (0 uses ceil(sqrt(n)))")
	return cmd
}
