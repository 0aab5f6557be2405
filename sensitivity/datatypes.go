// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package sensitivity

import (
	"github.com/sirupsen/logrus"

	"Circadian_Persistence_AR_Project/rng"
)

// Simulator produces one named series per model variable from a parameter set.
type Simulator interface {
	Simulate(params map[string]float64) (map[string][]float64, error)
}

// Window is a plausibility range for the detected period, in hours.
// A zero Max disables the constraint.
type Window struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Contains reports whether p lies in [Min, Max].
func (w Window) Contains(p float64) bool {
	return p >= w.Min && p <= w.Max
}

// Enabled reports whether the window constrains anything.
func (w Window) Enabled() bool {
	return w.Max > 0
}

// PeakOptions tune DetectPeriod.
type PeakOptions struct {
	// Minimum distance between accepted peaks, in samples (0 = 3)
	MinSpacing int `toml:"min_spacing"`
	// A peak must exceed mean + AmplitudeFraction*|mean| (0 = 0.05)
	AmplitudeFraction float64 `toml:"amplitude_fraction"`
	// Coefficient of variation below which there is no oscillation (0 = 0.01)
	CVFloor float64 `toml:"cv_floor"`
}

// Config drives an Engine run. Zero values select defaults.
type Config struct {
	// Monte Carlo trials (0 = 100)
	Trials int `toml:"trials"`
	// Half-width k of the uniform factor [1-k, 1+k] (0 = 0.2)
	Perturbation float64 `toml:"perturbation"`
	// Variable whose period and eigenvalue define validity (default "X")
	Reference string `toml:"reference"`
	// Variable compared against Reference for the gap (default "target")
	Target string `toml:"target"`
	// Sampling interval of the simulated series in hours (0 = 1)
	Interval float64 `toml:"interval"`
	// Period plausibility window
	Window Window `toml:"window"`
	// Peak detection settings
	Peaks PeakOptions `toml:"peaks"`
	// Minimum accepted trials before a verdict is given (0 = 10)
	MinAccepted int `toml:"min_accepted"`
	// Concurrent trials (<= 1 runs single-threaded)
	Workers int `toml:"workers"`
	// Master seed, 0 means time-based
	Seed int64 `toml:"seed"`
	// Injected master source for tests
	Source rng.Source `toml:"-"`
	// Optional logger, nil discards
	Logger logrus.FieldLogger `toml:"-"`
}

// Failure explains why a trial was excluded.
type Failure int

// Trial failure kinds
const (
	FailureNone Failure = iota
	// Simulator error or non-finite output
	FailureDiverged
	// AR(2) fit of the reference variable failed
	FailureFit
	// Reference eigenvalue outside (0, 1.5)
	FailureRange
)

func (f Failure) String() string {
	switch f {
	case FailureDiverged:
		return "diverged"
	case FailureFit:
		return "fit-failed"
	case FailureRange:
		return "out-of-range"
	default:
		return "none"
	}
}

// Sample is one Monte Carlo trial.
type Sample struct {
	Trial  int
	Params map[string]float64
	Series map[string][]float64
	// Detected period of the reference variable
	Period    float64
	HasPeriod bool
	// Reference eigenvalue (dominant-root modulus)
	Eigenvalue    float64
	HasEigenvalue bool
	// Eigenvalue of every variable that fit
	Eigenvalues map[string]float64
	// Reference minus target eigenvalue
	Gap    float64
	HasGap bool
	// Numerically valid (unconstrained mode)
	Valid bool
	// Valid and inside the period window (constrained mode)
	Accepted bool
	Failure  Failure
}

// Summary describes a distribution of values.
type Summary struct {
	N    int
	Mean float64
	Std  float64
	Min  float64
	Max  float64
	P5   float64
	P50  float64
	P95  float64
}

// ModeReport summarizes the samples retained by one mode.
type ModeReport struct {
	Trials      int
	Eigenvalues Summary
	Gaps        Summary
	// Share of gap-carrying trials with a positive gap
	MaintainedFraction float64
}

// Verdict classifies whether the gap survives the period constraint.
type Verdict string

// Verdicts
const (
	VerdictFunctionalInvariant Verdict = "FUNCTIONAL_INVARIANT"
	VerdictIncidental          Verdict = "INCIDENTAL"
	VerdictNoGap               Verdict = "NO_GAP"
	VerdictInsufficientData    Verdict = "INSUFFICIENT_DATA"
)

// Report is the outcome of an Engine run.
type Report struct {
	Trials  int
	Samples []Sample
	// Failure tallies
	Diverged   int
	FitFailed  int
	OutOfRange int
	// Valid trials, and those the period window accepted or rejected
	Valid         int
	Accepted      int
	Rejected      int
	RejectionRate float64
	Unconstrained ModeReport
	Constrained   ModeReport
	Verdict       Verdict
}
