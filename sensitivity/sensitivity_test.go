// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package sensitivity

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/mechanistic"
	"Circadian_Persistence_AR_Project/rng"
)

// sinusoid returns offset + amp*sin(2*pi*t/period) sampled every interval hours.
func sinusoid(n int, offset, amp, period, interval float64) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = offset + amp*math.Sin(2*math.Pi*float64(i)*interval/period)
	}
	return y
}

// oscillatorSim emits a clean oscillation "X" and a "target" that is either a
// copy of X or a damped AR(2) process with modulus 0.5.
type oscillatorSim struct {
	copyTarget bool
}

func (o oscillatorSim) Simulate(p map[string]float64) (map[string][]float64, error) {
	const n = 240
	x := sinusoid(n, 5, p["amp"], p["period"], 1)
	out := map[string][]float64{"X": x}
	if o.copyTarget {
		out["target"] = append([]float64(nil), x...)
		return out, nil
	}
	phi1, phi2 := ar2.CoefficientsFor(0.5, math.Pi/6)
	src := rng.New(int64(p["period"]*1e6) + 1)
	out["target"] = ar2.Simulate(phi1, phi2, 1, n, src)
	return out, nil
}

// funcSim adapts a function to Simulator.
type funcSim func(p map[string]float64) (map[string][]float64, error)

func (f funcSim) Simulate(p map[string]float64) (map[string][]float64, error) { return f(p) }

var baseline = map[string]float64{"period": 24, "amp": 1}

var errUnknownKey = errors.New("unknown parameter")

// ============================================================================
// PERIOD DETECTION
// ============================================================================

func TestDetectPeriod(t *testing.T) {
	p, ok := DetectPeriod(sinusoid(240, 5, 1, 24, 1), 1, PeakOptions{})
	require.True(t, ok)
	assert.InDelta(t, 24, p, 1e-9)

	p, ok = DetectPeriod(sinusoid(120, 5, 1, 24, 2), 2, PeakOptions{})
	require.True(t, ok)
	assert.InDelta(t, 24, p, 1e-9)
}

func TestDetectPeriodRejects(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
	}{
		{"short", sinusoid(9, 5, 1, 4, 1)},
		{"flat", sinusoid(100, 5, 0, 24, 1)},
		{"below cv floor", sinusoid(100, 5, 0.001, 24, 1)},
		{"single peak", sinusoid(20, 5, 1, 24, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DetectPeriod(tt.y, 1, PeakOptions{})
			assert.False(t, ok)
		})
	}
}

func TestDetectPeriodMinSpacingMergesPeaks(t *testing.T) {
	// a notch at every crest splits it into two maxima one sample apart
	y := sinusoid(240, 5, 1, 24, 1)
	for i := 6; i < len(y); i += 24 {
		y[i] -= 0.05
	}
	p, ok := DetectPeriod(y, 1, PeakOptions{MinSpacing: 4})
	require.True(t, ok)
	assert.InDelta(t, 24, p, 0.5)
}

// ============================================================================
// SUMMARY
// ============================================================================

func TestSummarize(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	s := Summarize(values)
	assert.Equal(t, 100, s.N)
	assert.InDelta(t, 50.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(10100.0/12.0), s.Std, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.InDelta(t, 5.0, s.P5, 0.5)
	assert.InDelta(t, 50.5, s.P50, 1e-12)
	assert.InDelta(t, 95.0, s.P95, 0.5)

	one := Summarize([]float64{7})
	assert.Equal(t, 0.0, one.Std)
	assert.Equal(t, 7.0, one.P5)
	assert.Equal(t, 7.0, one.P95)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.N)
	assert.True(t, math.IsNaN(empty.Mean))
}

// ============================================================================
// ENGINE
// ============================================================================

func TestEngineFunctionalInvariant(t *testing.T) {
	eng, err := NewEngine(oscillatorSim{}, Config{
		Trials:       100,
		Perturbation: 0.2,
		Window:       Window{Min: 22, Max: 26},
		Seed:         11,
	})
	require.NoError(t, err)

	rep, err := eng.Run(baseline)
	require.NoError(t, err)

	assert.Equal(t, 100, rep.Trials)
	assert.Equal(t, 100, rep.Valid)
	assert.Equal(t, 0, rep.Diverged+rep.FitFailed+rep.OutOfRange)
	assert.Equal(t, rep.Valid, rep.Accepted+rep.Rejected)
	assert.Greater(t, rep.Accepted, 10)
	assert.Greater(t, rep.Rejected, 10)
	assert.InDelta(t, float64(rep.Rejected)/100.0, rep.RejectionRate, 1e-12)
	assert.Equal(t, VerdictFunctionalInvariant, rep.Verdict)

	for _, s := range rep.Samples {
		if s.Accepted {
			assert.True(t, s.HasPeriod)
			assert.True(t, s.Period >= 22 && s.Period <= 26, "period %v", s.Period)
		}
		for k, v := range s.Params {
			assert.GreaterOrEqual(t, v, 0.8*baseline[k])
			assert.LessOrEqual(t, v, 1.2*baseline[k])
		}
	}
	assert.Equal(t, rep.Accepted, rep.Constrained.Trials)
	assert.Equal(t, rep.Accepted, rep.Constrained.Eigenvalues.N)
	assert.Equal(t, 100, rep.Unconstrained.Eigenvalues.N)
	assert.InDelta(t, 1.0, rep.Constrained.Eigenvalues.Mean, 0.05)
}

func TestEngineNoGap(t *testing.T) {
	eng, err := NewEngine(oscillatorSim{copyTarget: true}, Config{Trials: 40, Seed: 2})
	require.NoError(t, err)
	rep, err := eng.Run(baseline)
	require.NoError(t, err)

	// no window: every valid trial is accepted
	assert.Equal(t, rep.Valid, rep.Accepted)
	assert.Equal(t, 0.0, rep.RejectionRate)
	assert.Equal(t, VerdictNoGap, rep.Verdict)
	assert.Equal(t, 0.0, rep.Constrained.Gaps.Mean)
}

func TestEngineInsufficientWhenWindowExcludesAll(t *testing.T) {
	eng, err := NewEngine(oscillatorSim{}, Config{Trials: 30, Seed: 3, Window: Window{Min: 100, Max: 200}})
	require.NoError(t, err)
	rep, err := eng.Run(baseline)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Accepted)
	assert.Equal(t, 30, rep.Rejected)
	assert.Equal(t, 1.0, rep.RejectionRate)
	assert.Equal(t, VerdictInsufficientData, rep.Verdict)
}

func TestEngineCountsFailures(t *testing.T) {
	const n = 60
	sim := funcSim(func(p map[string]float64) (map[string][]float64, error) {
		switch {
		case p["mode"] < 0.9:
			return nil, errors.New("integrator blew up")
		case p["mode"] < 1.0:
			y := sinusoid(n, 5, 1, 24, 1)
			y[10] = math.NaN()
			return map[string][]float64{"X": y}, nil
		case p["mode"] < 1.1:
			// constant: the normal equations are singular
			return map[string][]float64{"X": sinusoid(n, 5, 0, 24, 1)}, nil
		default:
			// demeaned geometric growth is an exact AR(2) with dominant root 1.6
			y := make([]float64, n)
			for i := range y {
				y[i] = math.Pow(1.6, float64(i))
			}
			return map[string][]float64{"X": y}, nil
		}
	})

	eng, err := NewEngine(sim, Config{Trials: 200, Perturbation: 0.3, Seed: 5})
	require.NoError(t, err)
	rep, err := eng.Run(map[string]float64{"mode": 1})
	require.NoError(t, err)

	assert.Greater(t, rep.Diverged, 0)
	assert.Greater(t, rep.FitFailed, 0)
	assert.Greater(t, rep.OutOfRange, 0)
	assert.Equal(t, rep.Trials, rep.Diverged+rep.FitFailed+rep.OutOfRange+rep.Valid)
	assert.Equal(t, VerdictInsufficientData, rep.Verdict)
	for _, s := range rep.Samples {
		assert.False(t, s.Valid && s.Failure != FailureNone)
	}
}

func TestEngineRejectsBadBaseline(t *testing.T) {
	calls := 0
	sim := funcSim(func(p map[string]float64) (map[string][]float64, error) {
		calls++
		if _, ok := p["period"]; !ok {
			return nil, fmt.Errorf("%w: period", errUnknownKey)
		}
		return map[string][]float64{"X": sinusoid(240, 5, 1, p["period"], 1)}, nil
	})
	eng, err := NewEngine(sim, Config{Trials: 20, Seed: 4})
	require.NoError(t, err)

	rep, err := eng.Run(map[string]float64{"perod": 24, "amp": 1})
	assert.ErrorIs(t, err, errUnknownKey)
	assert.Nil(t, rep)
	assert.Equal(t, 1, calls)

	rep, err = eng.Run(baseline)
	require.NoError(t, err)
	assert.Equal(t, 20, rep.Trials)
	assert.Equal(t, 0, rep.Diverged)
}

func TestEngineRejectsUnknownGoodwinParameter(t *testing.T) {
	params := mechanistic.DefaultParams()
	params["v7"] = 1
	eng, err := NewEngine(mechanistic.NewGoodwin(), Config{Trials: 5, Seed: 1})
	require.NoError(t, err)
	_, err = eng.Run(params)
	assert.ErrorIs(t, err, mechanistic.ErrUnknownParameter)
}

func TestEngineAllDiverged(t *testing.T) {
	sim := funcSim(func(p map[string]float64) (map[string][]float64, error) {
		return map[string][]float64{"X": {math.NaN(), 1, 2, 3, 4, 5}}, nil
	})
	eng, err := NewEngine(sim, Config{Trials: 25, Seed: 1})
	require.NoError(t, err)
	rep, err := eng.Run(baseline)
	require.NoError(t, err)
	assert.Equal(t, 25, rep.Diverged)
	assert.Equal(t, 0, rep.Valid)
	assert.Equal(t, VerdictInsufficientData, rep.Verdict)
}

func TestEngineIsDeterministic(t *testing.T) {
	cfg := Config{Trials: 30, Seed: 99, Window: Window{Min: 22, Max: 26}}
	a, err := NewEngine(oscillatorSim{}, cfg)
	require.NoError(t, err)
	cfg.Workers = 4
	b, err := NewEngine(oscillatorSim{}, cfg)
	require.NoError(t, err)

	ra, err := a.Run(baseline)
	require.NoError(t, err)
	rb, err := b.Run(baseline)
	require.NoError(t, err)

	for i := range ra.Samples {
		assert.Equal(t, ra.Samples[i].Params, rb.Samples[i].Params)
		assert.Equal(t, ra.Samples[i].Accepted, rb.Samples[i].Accepted)
	}
	assert.Equal(t, ra.Verdict, rb.Verdict)
}

func TestNewEngineValidates(t *testing.T) {
	_, err := NewEngine(nil, Config{})
	assert.Error(t, err)
	_, err = NewEngine(oscillatorSim{}, Config{Perturbation: 1.5})
	assert.Error(t, err)
	_, err = NewEngine(oscillatorSim{}, Config{Window: Window{Min: 30, Max: 20}})
	assert.Error(t, err)

	eng, err := NewEngine(oscillatorSim{}, Config{})
	require.NoError(t, err)
	_, err = eng.Run(nil)
	assert.Error(t, err)

	cfg := eng.Config()
	assert.Equal(t, 100, cfg.Trials)
	assert.Equal(t, 0.2, cfg.Perturbation)
	assert.Equal(t, "X", cfg.Reference)
	assert.Equal(t, "target", cfg.Target)
}
