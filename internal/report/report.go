// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package report prints result tables and writes them to CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/benchmark"
	"Circadian_Persistence_AR_Project/diagnostics"
	"Circadian_Persistence_AR_Project/resampling"
	"Circadian_Persistence_AR_Project/sensitivity"
)

// FitRow is one gene's fit, classification and diagnostics.
type FitRow struct {
	Gene string
	N    int
	// Nil when the fit failed, then Err is set
	Fit         *ar2.AR2Fit
	Roots       ar2.RootDescriptor
	Stability   ar2.Stability
	Diagnostics diagnostics.Report
	Err         error
}

func (r FitRow) flags() string {
	f := r.Diagnostics.Flags()
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ";")
}

// PrintFits prints the per-gene fit table.
func PrintFits(w io.Writer, rows []FitRow) {
	fmt.Fprintln(w, "\n=== AR(2) Fits ===")
	fmt.Fprintf(w, "%-14s %5s %9s %9s %8s %8s %9s %-13s %s\n",
		"Gene", "N", "Phi1", "Phi2", "R2", "|lambda|", "Period", "Stability", "Flags")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range rows {
		if r.Fit == nil {
			fmt.Fprintf(w, "%-14s %5d  fit failed: %v\n", r.Gene, r.N, r.Err)
			continue
		}
		period := "-"
		if r.Roots.HasPeriod {
			period = fmt.Sprintf("%.2f", r.Roots.Period)
		}
		fmt.Fprintf(w, "%-14s %5d %9.4f %9.4f %8.4f %8.4f %9s %-13s %s\n",
			r.Gene, r.N, r.Fit.Phi1, r.Fit.Phi2, r.Fit.RSquared, r.Roots.Modulus,
			period, r.Stability, r.flags())
	}
	fmt.Fprintln(w)
}

// PrintHealth prints the dataset health line.
func PrintHealth(w io.Writer, h diagnostics.HealthScore) {
	fmt.Fprintf(w, "Dataset health: %d genes, %d valid fits, %d flagged, score %.3f\n",
		h.Genes, h.ValidFits, h.Flagged, h.Score)
}

// PrintPermutation prints a permutation test summary.
func PrintPermutation(w io.Writer, res *resampling.PermutationResult) {
	fmt.Fprintf(w, "\n=== Permutation Test (%s) ===\n", res.Method)
	fmt.Fprintf(w, "Group sizes:          %d vs %d\n", res.SizeA, res.SizeB)
	fmt.Fprintf(w, "Observed gap:         %.6f\n", res.Observed)
	fmt.Fprintf(w, "Valid iterations:     %d / %d (%d skipped)\n", res.Valid, res.Attempted, res.Skipped)
	fmt.Fprintf(w, "P-value (one-sided):  %.6f\n", res.PValue)
	fmt.Fprintf(w, "P-value (two-sided):  %.6f\n", res.TwoSidedPValue)
	fmt.Fprintf(w, "Sign preserved:       %.4f\n", res.SignPreserved)
	fmt.Fprintf(w, "Z-score:              %.4f\n", res.ZScore)
	fmt.Fprintf(w, "Outcome:              %s\n\n", res.Outcome)
}

// PrintBootstrap prints a block bootstrap summary.
func PrintBootstrap(w io.Writer, res *resampling.BootstrapResult) {
	level := 100 * (1 - res.Alpha)
	fmt.Fprintln(w, "\n=== Block Bootstrap ===")
	fmt.Fprintf(w, "Valid iterations: %d / %d (%d skipped)\n", res.Valid, res.Attempted, res.Skipped)
	fmt.Fprintf(w, "%-14s %10s %10s %10s\n", "Estimate", "Point", fmt.Sprintf("Lo %.0f%%", level), fmt.Sprintf("Hi %.0f%%", level))
	fmt.Fprintln(w, strings.Repeat("-", 47))
	printCI(w, "gap", res.Gap)
	printCI(w, "mean A", res.MeanA)
	printCI(w, "mean B", res.MeanB)
	for _, g := range sortedKeys(res.Genes) {
		printCI(w, g, res.Genes[g])
	}
	fmt.Fprintf(w, "P(gap < 0): %.4f\n", res.ProbGapBelowZero)
	fmt.Fprintf(w, "Outcome:    %s\n\n", res.Outcome)
}

func printCI(w io.Writer, name string, c resampling.CI) {
	fmt.Fprintf(w, "%-14s %10.4f %10.4f %10.4f\n", name, c.Point, c.Lower, c.Upper)
}

// PrintSensitivity prints a Monte Carlo sensitivity report.
func PrintSensitivity(w io.Writer, rep *sensitivity.Report) {
	fmt.Fprintln(w, "\n=== Monte Carlo Sensitivity ===")
	fmt.Fprintf(w, "Trials:        %d\n", rep.Trials)
	fmt.Fprintf(w, "Diverged:      %d\n", rep.Diverged)
	fmt.Fprintf(w, "Fit failed:    %d\n", rep.FitFailed)
	fmt.Fprintf(w, "Out of range:  %d\n", rep.OutOfRange)
	fmt.Fprintf(w, "Valid:         %d (accepted %d, rejected %d, rejection rate %.3f)\n",
		rep.Valid, rep.Accepted, rep.Rejected, rep.RejectionRate)
	fmt.Fprintf(w, "\n%-14s %6s %9s %9s %9s %9s %9s\n", "Mode", "N", "Mean", "Std", "P5", "P50", "P95")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	printSummary(w, "eig uncon.", rep.Unconstrained.Eigenvalues)
	printSummary(w, "eig constr.", rep.Constrained.Eigenvalues)
	printSummary(w, "gap uncon.", rep.Unconstrained.Gaps)
	printSummary(w, "gap constr.", rep.Constrained.Gaps)
	fmt.Fprintf(w, "\nGap maintained: %.3f unconstrained, %.3f constrained\n",
		rep.Unconstrained.MaintainedFraction, rep.Constrained.MaintainedFraction)
	fmt.Fprintf(w, "Verdict: %s\n\n", rep.Verdict)
}

func printSummary(w io.Writer, name string, s sensitivity.Summary) {
	fmt.Fprintf(w, "%-14s %6d %9.4f %9.4f %9.4f %9.4f %9.4f\n", name, s.N, s.Mean, s.Std, s.P5, s.P50, s.P95)
}

// PrintBenchmark prints the benchmark suite.
func PrintBenchmark(w io.Writer, suite benchmark.SuiteResult) {
	fmt.Fprintln(w, "\n=== Benchmark Suite ===")
	for _, r := range suite.Results {
		fmt.Fprintf(w, "[%s] %s (score %.1f)\n", r.Status, r.Name, r.Score)
		fmt.Fprintf(w, "  Q: %s\n", r.Question)
		fmt.Fprintf(w, "  expected: %s\n", r.Expected)
		fmt.Fprintf(w, "  actual:   %s\n", r.Actual)
	}
	fmt.Fprintf(w, "\nOverall score %.1f, %d of %d passed\n\n", suite.Overall, suite.Passed, len(suite.Results))
}

// writeCSV creates path and writes header and records.
func writeCSV(path string, header []string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return file.Close()
}

// OutputFitsToCSV writes one row per gene.
// Columns: Gene, N, Phi1, Phi2, RSquared, Modulus, Angle, IsComplex, Period, Stability, Flags, Error
func OutputFitsToCSV(path string, rows []FitRow) error {
	header := []string{"Gene", "N", "Phi1", "Phi2", "RSquared", "Modulus", "Angle", "IsComplex", "Period", "Stability", "Flags", "Error"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r.Fit == nil {
			errText := ""
			if r.Err != nil {
				errText = r.Err.Error()
			}
			records = append(records, []string{r.Gene, fmt.Sprintf("%d", r.N), "", "", "", "", "", "", "", "", "", errText})
			continue
		}
		period := ""
		if r.Roots.HasPeriod {
			period = fmt.Sprintf("%f", r.Roots.Period)
		}
		records = append(records, []string{
			r.Gene,
			fmt.Sprintf("%d", r.N),
			fmt.Sprintf("%f", r.Fit.Phi1),
			fmt.Sprintf("%f", r.Fit.Phi2),
			fmt.Sprintf("%f", r.Fit.RSquared),
			fmt.Sprintf("%f", r.Roots.Modulus),
			fmt.Sprintf("%f", r.Roots.Angle),
			fmt.Sprintf("%t", r.Roots.IsComplex),
			period,
			r.Stability.String(),
			strings.Join(r.Diagnostics.Flags(), ";"),
			"",
		})
	}
	return writeCSV(path, header, records)
}

// OutputNullToCSV writes the null distribution of a permutation test.
// Columns: Iteration, Value, Observed
func OutputNullToCSV(path string, res *resampling.PermutationResult) error {
	var records [][]string
	if res.Null != nil {
		for i, v := range res.Null.Values {
			records = append(records, []string{fmt.Sprintf("%d", i), fmt.Sprintf("%f", v), fmt.Sprintf("%f", res.Observed)})
		}
	}
	return writeCSV(path, []string{"Iteration", "Value", "Observed"}, records)
}

// OutputBootstrapToCSV writes every interval of a bootstrap run.
// Columns: Estimate, Point, Lower, Upper
func OutputBootstrapToCSV(path string, res *resampling.BootstrapResult) error {
	row := func(name string, c resampling.CI) []string {
		return []string{name, fmt.Sprintf("%f", c.Point), fmt.Sprintf("%f", c.Lower), fmt.Sprintf("%f", c.Upper)}
	}
	records := [][]string{row("gap", res.Gap), row("mean_a", res.MeanA), row("mean_b", res.MeanB)}
	for _, g := range sortedKeys(res.Genes) {
		records = append(records, row(g, res.Genes[g]))
	}
	return writeCSV(path, []string{"Estimate", "Point", "Lower", "Upper"}, records)
}

// OutputSamplesToCSV writes one row per Monte Carlo trial.
// Columns: Trial, Failure, Valid, Accepted, Period, Eigenvalue, Gap, then one column per parameter
func OutputSamplesToCSV(path string, rep *sensitivity.Report) error {
	var params []string
	if len(rep.Samples) > 0 {
		params = sortedKeys(rep.Samples[0].Params)
	}
	header := append([]string{"Trial", "Failure", "Valid", "Accepted", "Period", "Eigenvalue", "Gap"}, params...)

	records := make([][]string, 0, len(rep.Samples))
	for _, s := range rep.Samples {
		rec := []string{
			fmt.Sprintf("%d", s.Trial),
			s.Failure.String(),
			fmt.Sprintf("%t", s.Valid),
			fmt.Sprintf("%t", s.Accepted),
			optional(s.Period, s.HasPeriod),
			optional(s.Eigenvalue, s.HasEigenvalue),
			optional(s.Gap, s.HasGap),
		}
		for _, p := range params {
			rec = append(rec, fmt.Sprintf("%f", s.Params[p]))
		}
		records = append(records, rec)
	}
	return writeCSV(path, header, records)
}

// OutputBenchmarkToCSV writes one row per adapter.
// Columns: Name, Score, Status, Insufficient, Actual
func OutputBenchmarkToCSV(path string, suite benchmark.SuiteResult) error {
	records := make([][]string, 0, len(suite.Results))
	for _, r := range suite.Results {
		records = append(records, []string{
			r.Name,
			fmt.Sprintf("%f", r.Score),
			string(r.Status),
			fmt.Sprintf("%t", r.Insufficient),
			r.Actual,
		})
	}
	return writeCSV(path, []string{"Name", "Score", "Status", "Insufficient", "Actual"}, records)
}

func optional(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("%f", v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
