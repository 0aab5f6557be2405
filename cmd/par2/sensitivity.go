// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package main

import (
	"os"

	"github.com/spf13/cobra"

	"Circadian_Persistence_AR_Project/internal/report"
	"Circadian_Persistence_AR_Project/mechanistic"
	"Circadian_Persistence_AR_Project/sensitivity"
)

var trials int

func newSensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Monte Carlo parameter sensitivity of the Goodwin clock model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := cfg.Sensitivity
			if cmd.Flags().Changed("trials") {
				sc.Trials = trials
			}
			sc.Logger = log

			model := mechanistic.NewGoodwin()
			if sc.Interval > 0 {
				model.Interval = sc.Interval
			}
			eng, err := sensitivity.NewEngine(model, sc)
			if err != nil {
				return err
			}
			rep, err := eng.Run(mechanistic.DefaultParams())
			if err != nil {
				return err
			}
			report.PrintSensitivity(os.Stdout, rep)
			return writeOutput("sensitivity.csv", func(path string) error {
				return report.OutputSamplesToCSV(path, rep)
			})
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 100, "Monte Carlo trials")
	return cmd
}
