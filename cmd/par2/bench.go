// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/benchmark"
	"Circadian_Persistence_AR_Project/internal/dataset"
	"Circadian_Persistence_AR_Project/internal/report"
)

var referencePath string

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench DATA.csv",
		Short: "Score eigenvalues against the benchmark suite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			logDropped(args[0], ds)
			groups, err := dataset.LoadGroups(groupsPath)
			if err != nil {
				return err
			}

			labels := map[string]string{groupA: benchmark.GroupClock, groupB: benchmark.GroupTarget}
			genes := geneSeries(ds, func(gene string) string { return labels[groups[gene]] })

			var reference []benchmark.GeneSeries
			if referencePath != "" {
				ref, err := dataset.LoadCSV(referencePath)
				if err != nil {
					return err
				}
				logDropped(referencePath, ref)
				reference = geneSeries(ref, func(string) string { return "" })
			}

			suite := benchmark.RunSuite(benchmark.DefaultAdapters(cfg.Benchmark.Interval, reference), genes)
			for _, r := range suite.Results {
				log.WithFields(logrus.Fields{
					"benchmark": r.Name,
					"score":     r.Score,
					"status":    r.Status,
				}).Info("benchmark finished")
			}
			report.PrintBenchmark(os.Stdout, suite)
			return writeOutput("benchmark.csv", func(path string) error {
				return report.OutputBenchmarkToCSV(path, suite)
			})
		},
	}
	addGroupFlags(cmd)
	cmd.Flags().StringVar(&referencePath, "reference", "", "reference condition CSV for the phase benchmark")
	return cmd
}

// geneSeries fits every gene and pairs it with its benchmark group.
// Genes whose fit fails are left out.
func geneSeries(ds *dataset.Dataset, group func(gene string) string) []benchmark.GeneSeries {
	out := make([]benchmark.GeneSeries, 0, len(ds.Order))
	for _, gene := range ds.Order {
		ts := ds.Genes[gene]
		eig, err := ar2.Modulus(ts.Values)
		if err != nil {
			log.WithFields(logrus.Fields{"gene": gene, "error": err}).Debug("skipping gene")
			continue
		}
		out = append(out, benchmark.GeneSeries{
			Gene:       gene,
			Group:      group(gene),
			Series:     ts.Values,
			Eigenvalue: eig,
		})
	}
	return out
}
