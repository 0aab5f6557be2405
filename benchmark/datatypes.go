// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package benchmark

// Group labels used by the adapters
const (
	GroupClock  = "clock"
	GroupTarget = "target"
)

// GeneSeries is one gene's expression series and its AR(2) eigenvalue.
type GeneSeries struct {
	Gene string
	// "clock" or "target", empty when unlabeled
	Group      string
	Series     []float64
	Eigenvalue float64
}

// Status is the verdict of one benchmark.
type Status string

// Benchmark verdicts
const (
	StatusPassed  Status = "PASSED"
	StatusPartial Status = "PARTIAL"
	StatusFailed  Status = "FAILED"
)

// Score cutoffs for StatusFor
const (
	PassScore    = 70.0
	PartialScore = 40.0
)

// StatusFor maps a 0..100 score to a verdict.
func StatusFor(score float64) Status {
	switch {
	case score >= PassScore:
		return StatusPassed
	case score >= PartialScore:
		return StatusPartial
	default:
		return StatusFailed
	}
}

// Result is the structured outcome of one adapter.
type Result struct {
	Name     string
	Question string
	Expected string
	Actual   string
	// 0..100
	Score  float64
	Status Status
	// Set when the input could not support the benchmark
	Insufficient bool
	// Raw quantities behind the score
	Details map[string]float64
}

// Adapter re-expresses eigenvalue results against one external framework.
// Evaluate must not modify its input.
type Adapter interface {
	Name() string
	Evaluate(genes []GeneSeries) Result
}

// SuiteResult combines the adapter results.
type SuiteResult struct {
	Results []Result
	// Unweighted mean of the scores
	Overall float64
	Passed  int
}
