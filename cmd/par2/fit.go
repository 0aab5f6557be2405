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
	"Circadian_Persistence_AR_Project/diagnostics"
	"Circadian_Persistence_AR_Project/internal/dataset"
	"Circadian_Persistence_AR_Project/internal/report"
)

// healthCache keys dataset health by file path for the life of the process.
var healthCache = diagnostics.NewHealthCache()

func newFitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit DATA.csv",
		Short: "Fit AR(2) per gene, classify roots and run diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			logDropped(args[0], ds)

			rows := fitRows(ds)
			report.PrintFits(os.Stdout, rows)

			health := healthCache.GetOrCompute(args[0], func() diagnostics.HealthScore {
				return diagnostics.DatasetHealth(ds.Genes, cfg.Diagnostics)
			})
			report.PrintHealth(os.Stdout, health)

			return writeOutput("fits.csv", func(path string) error {
				return report.OutputFitsToCSV(path, rows)
			})
		},
	}
}

// fitRows fits every gene in file order.
func fitRows(ds *dataset.Dataset) []report.FitRow {
	rows := make([]report.FitRow, 0, len(ds.Order))
	for _, gene := range ds.Order {
		ts := ds.Genes[gene]
		row := report.FitRow{Gene: gene, N: ts.Len()}
		fit, roots, err := ar2.FitSeries(ts)
		if err != nil {
			log.WithFields(logrus.Fields{"gene": gene, "error": err}).Warn("fit failed")
			row.Err = err
			row.Diagnostics = diagnostics.Run(ts, nil, cfg.Diagnostics)
			rows = append(rows, row)
			continue
		}
		row.Fit = fit
		row.Roots = roots
		row.Stability = cfg.Bands.Classify(roots.Modulus)
		row.Diagnostics = diagnostics.Run(ts, fit, cfg.Diagnostics)
		rows = append(rows, row)
	}
	return rows
}

func logDropped(path string, ds *dataset.Dataset) {
	entry := log.WithFields(logrus.Fields{
		"path":    path,
		"genes":   len(ds.Order),
		"dropped": len(ds.Dropped),
	})
	if len(ds.Dropped) > 0 {
		entry.WithField("dropped_genes", ds.Dropped).Warn("dropped incomplete rows")
		return
	}
	entry.Info("loaded dataset")
}
