// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package sensitivity perturbs a mechanistic model's parameters, re-simulates
// it, and refits AR(2) to the output to test whether an eigenvalue gap between
// two model variables survives parameter uncertainty.
package sensitivity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/internal/logging"
	"Circadian_Persistence_AR_Project/rng"
	"Circadian_Persistence_AR_Project/series"
)

// Eigenvalues outside (0, maxEigenvalue) mark a numerically invalid trial.
const maxEigenvalue = 1.5

// Verdict thresholds
const (
	invariantFraction = 0.9
	noGapFraction     = 0.5
)

// Engine runs Monte Carlo sensitivity sweeps over a Simulator.
type Engine struct {
	sim    Simulator
	config Config
	log    logrus.FieldLogger
}

// NewEngine validates cfg, fills its defaults, and binds it to sim.
func NewEngine(sim Simulator, cfg Config) (*Engine, error) {
	if sim == nil {
		return nil, errors.New("simulator not provided")
	}
	if cfg.Trials <= 0 {
		cfg.Trials = 100
	}
	if cfg.Perturbation == 0 {
		cfg.Perturbation = 0.2
	}
	if cfg.Perturbation < 0 || cfg.Perturbation >= 1 {
		return nil, fmt.Errorf("perturbation must lie in (0, 1), got %v", cfg.Perturbation)
	}
	if cfg.Reference == "" {
		cfg.Reference = "X"
	}
	if cfg.Target == "" {
		cfg.Target = "target"
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 1
	}
	if cfg.Window.Enabled() && cfg.Window.Min > cfg.Window.Max {
		return nil, fmt.Errorf("period window min %v exceeds max %v", cfg.Window.Min, cfg.Window.Max)
	}
	if cfg.MinAccepted <= 0 {
		cfg.MinAccepted = 10
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	cfg.Peaks = cfg.Peaks.withDefaults()
	return &Engine{sim: sim, config: cfg, log: logging.OrDiscard(cfg.Logger)}, nil
}

// Config returns the resolved configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run executes the configured number of trials around baseline.
func (e *Engine) Run(baseline map[string]float64) (*Report, error) {
	if len(baseline) == 0 {
		return nil, errors.New("baseline parameters not provided")
	}
	// the unperturbed model must simulate before any trial is tallied
	if _, err := e.sim.Simulate(baseline); err != nil {
		return nil, fmt.Errorf("baseline simulation failed: %w", err)
	}
	cfg := e.config

	// Parameter names in a fixed order so a seed reproduces the draws
	names := make([]string, 0, len(baseline))
	for k := range baseline {
		names = append(names, k)
	}
	sort.Strings(names)

	// 1. Per-trial seeds, drawn before any work starts
	master := rng.Resolve(cfg.Source, cfg.Seed)
	seeds := rng.Seeds(master, cfg.Trials)

	// 2. Trials
	samples := make([]Sample, cfg.Trials)
	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Trials; i++ {
		i := i
		g.Go(func() error {
			src := rng.New(seeds[i])
			params := make(map[string]float64, len(names))
			for _, k := range names {
				params[k] = baseline[k] * rng.Uniform(src, 1-cfg.Perturbation, 1+cfg.Perturbation)
			}
			samples[i] = e.trial(i, params)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 3. Tallies and summaries
	rep := summarize(samples, cfg)
	e.log.WithFields(logrus.Fields{
		"trials":         rep.Trials,
		"valid":          rep.Valid,
		"accepted":       rep.Accepted,
		"diverged":       rep.Diverged,
		"fit_failed":     rep.FitFailed,
		"out_of_range":   rep.OutOfRange,
		"rejection_rate": rep.RejectionRate,
		"verdict":        string(rep.Verdict),
	}).Info("sensitivity run complete")
	return rep, nil
}

// trial simulates one perturbed parameter set and classifies it.
func (e *Engine) trial(i int, params map[string]float64) Sample {
	cfg := e.config
	s := Sample{Trial: i, Params: params, Period: math.NaN(), Eigenvalue: math.NaN(), Gap: math.NaN()}

	out, err := e.sim.Simulate(params)
	if err != nil {
		s.Failure = FailureDiverged
		e.log.WithFields(logrus.Fields{"trial": i, "error": err.Error()}).Debug("simulation failed")
		return s
	}
	s.Series = out

	ref, ok := out[cfg.Reference]
	if !ok {
		s.Failure = FailureDiverged
		e.log.WithFields(logrus.Fields{"trial": i, "variable": cfg.Reference}).Warn("reference variable missing from simulation output")
		return s
	}
	for _, y := range out {
		if !series.Finite(y) {
			s.Failure = FailureDiverged
			e.log.WithFields(logrus.Fields{"trial": i}).Debug("non-finite simulation output")
			return s
		}
	}

	// Eigenvalue of every variable, in name order
	vars := make([]string, 0, len(out))
	for name := range out {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	s.Eigenvalues = make(map[string]float64, len(vars))
	for _, name := range vars {
		if m, err := ar2.Modulus(out[name]); err == nil {
			s.Eigenvalues[name] = m
		}
	}

	m, ok := s.Eigenvalues[cfg.Reference]
	if !ok {
		s.Failure = FailureFit
		e.log.WithFields(logrus.Fields{"trial": i}).Debug("reference fit failed")
		return s
	}
	s.Eigenvalue, s.HasEigenvalue = m, true
	if m <= 0 || m >= maxEigenvalue {
		s.Failure = FailureRange
		e.log.WithFields(logrus.Fields{"trial": i, "eigenvalue": m}).Debug("eigenvalue out of range")
		return s
	}
	s.Valid = true

	if tm, ok := s.Eigenvalues[cfg.Target]; ok {
		s.Gap, s.HasGap = m-tm, true
	}

	if p, ok := DetectPeriod(ref, cfg.Interval, cfg.Peaks); ok {
		s.Period, s.HasPeriod = p, true
	}
	s.Accepted = !cfg.Window.Enabled() || (s.HasPeriod && cfg.Window.Contains(s.Period))
	return s
}

// summarize tallies failures and builds both mode reports and the verdict.
func summarize(samples []Sample, cfg Config) *Report {
	rep := &Report{Trials: len(samples), Samples: samples}

	var allEig, allGap, conEig, conGap []float64
	for _, s := range samples {
		switch s.Failure {
		case FailureDiverged:
			rep.Diverged++
		case FailureFit:
			rep.FitFailed++
		case FailureRange:
			rep.OutOfRange++
		}
		if !s.Valid {
			continue
		}
		rep.Valid++
		allEig = append(allEig, s.Eigenvalue)
		if s.HasGap {
			allGap = append(allGap, s.Gap)
		}
		if !s.Accepted {
			rep.Rejected++
			continue
		}
		rep.Accepted++
		conEig = append(conEig, s.Eigenvalue)
		if s.HasGap {
			conGap = append(conGap, s.Gap)
		}
	}
	if rep.Valid > 0 {
		rep.RejectionRate = float64(rep.Rejected) / float64(rep.Valid)
	}

	rep.Unconstrained = modeReport(rep.Valid, allEig, allGap)
	rep.Constrained = modeReport(rep.Accepted, conEig, conGap)
	rep.Verdict = verdict(rep.Constrained, cfg.MinAccepted)
	return rep
}

func modeReport(trials int, eig, gaps []float64) ModeReport {
	mr := ModeReport{
		Trials:             trials,
		Eigenvalues:        Summarize(eig),
		Gaps:               Summarize(gaps),
		MaintainedFraction: math.NaN(),
	}
	if len(gaps) > 0 {
		positive := 0
		for _, g := range gaps {
			if g > 0 {
				positive++
			}
		}
		mr.MaintainedFraction = float64(positive) / float64(len(gaps))
	}
	return mr
}

// verdict applies the classification to the period-constrained trials:
// too few gap-carrying trials is INSUFFICIENT_DATA; a gap that is mostly
// absent is NO_GAP; a gap kept in nearly every trial with low spread is
// FUNCTIONAL_INVARIANT; anything else is INCIDENTAL.
func verdict(con ModeReport, minAccepted int) Verdict {
	switch {
	case con.Gaps.N < minAccepted:
		return VerdictInsufficientData
	case con.Gaps.Mean <= 0 || con.MaintainedFraction < noGapFraction:
		return VerdictNoGap
	case con.MaintainedFraction >= invariantFraction && con.Gaps.Std < math.Abs(con.Gaps.Mean)/2:
		return VerdictFunctionalInvariant
	default:
		return VerdictIncidental
	}
}
