// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package benchmark

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Cosinor is a single-harmonic fit y = Mesor + A cos(w t - Acrophase).
type Cosinor struct {
	Mesor     float64
	Amplitude float64
	// Radians in (-pi, pi]
	Acrophase float64
}

// PhaseHours converts the acrophase to hours of a period-hour cycle in [0, period).
func (c Cosinor) PhaseHours(period float64) float64 {
	h := c.Acrophase / (2 * math.Pi) * period
	return math.Mod(h+period, period)
}

// FitCosinor fits y = M + b cos(w t) + g sin(w t) by least squares, with
// t = i*interval and w = 2*pi/period.
func FitCosinor(y []float64, interval, period float64) (Cosinor, error) {
	if len(y) < 4 {
		return Cosinor{}, errors.New("cosinor needs at least 4 samples")
	}
	omega := 2 * math.Pi / period
	x := mat.NewDense(len(y), 3, nil)
	for i := range y {
		t := float64(i) * interval
		x.Set(i, 0, 1)
		x.Set(i, 1, math.Cos(omega*t))
		x.Set(i, 2, math.Sin(omega*t))
	}
	var beta mat.VecDense
	if err := beta.SolveVec(x, mat.NewVecDense(len(y), append([]float64(nil), y...))); err != nil {
		return Cosinor{}, fmt.Errorf("cosinor: %w", err)
	}
	b, g := beta.AtVec(1), beta.AtVec(2)
	return Cosinor{
		Mesor:     beta.AtVec(0),
		Amplitude: math.Hypot(b, g),
		Acrophase: math.Atan2(g, b),
	}, nil
}

// wrapHours reduces a phase difference to (-period/2, period/2].
func wrapHours(d, period float64) float64 {
	d = math.Mod(d, period)
	if d > period/2 {
		d -= period
	} else if d <= -period/2 {
		d += period
	}
	return d
}

// PhaseAdapter compares a condition with a reference condition and checks
// that genes whose phase shifts more also change persistence more.
type PhaseAdapter struct {
	// Sampling interval in hours (0 = 1)
	Interval float64
	// Reference condition, matched to the input by gene name
	Reference []GeneSeries
}

// Name implements Adapter.
func (p *PhaseAdapter) Name() string { return "phase" }

// Evaluate implements Adapter.
func (p *PhaseAdapter) Evaluate(genes []GeneSeries) Result {
	const (
		question = "Do phase shifts between conditions track eigenvalue changes?"
		expected = "positive rank correlation between |phase shift| and |eigenvalue change|"
	)
	if len(p.Reference) == 0 {
		return insufficient(p.Name(), question, expected, "no reference condition")
	}
	interval := p.Interval
	if interval <= 0 {
		interval = 1
	}

	ref := make(map[string]GeneSeries, len(p.Reference))
	for _, g := range p.Reference {
		ref[strings.ToLower(g.Gene)] = g
	}

	var shifts, changes []float64
	var total float64
	for _, g := range genes {
		r, ok := ref[strings.ToLower(g.Gene)]
		if !ok || !finite(g.Eigenvalue) || !finite(r.Eigenvalue) {
			continue
		}
		cg, err := FitCosinor(g.Series, interval, CircadianPeriod)
		if err != nil || cg.Amplitude == 0 {
			continue
		}
		cr, err := FitCosinor(r.Series, interval, CircadianPeriod)
		if err != nil || cr.Amplitude == 0 {
			continue
		}
		shift := math.Abs(wrapHours(cg.PhaseHours(CircadianPeriod)-cr.PhaseHours(CircadianPeriod), CircadianPeriod))
		shifts = append(shifts, shift)
		changes = append(changes, math.Abs(g.Eigenvalue-r.Eigenvalue))
		total += shift
	}
	if len(shifts) < 3 {
		return insufficient(p.Name(), question, expected,
			fmt.Sprintf("%d genes matched the reference, need 3", len(shifts)))
	}
	rho, err := spearman(shifts, changes)
	if err != nil {
		return insufficient(p.Name(), question, expected, err.Error())
	}

	score := correlationScore(rho)
	meanShift := total / float64(len(shifts))
	return Result{
		Name:     p.Name(),
		Question: question,
		Expected: expected,
		Actual:   fmt.Sprintf("Spearman rho = %.3f over %d genes, mean phase shift %.2fh", rho, len(shifts), meanShift),
		Score:    score,
		Status:   StatusFor(score),
		Details: map[string]float64{
			"rho":              rho,
			"genes":            float64(len(shifts)),
			"mean_phase_shift": meanShift,
		},
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
