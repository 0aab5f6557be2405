// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package benchmark

import (
	"fmt"
	"math"
	"math/cmplx"

	"Circadian_Persistence_AR_Project/ar2"
)

// CircadianPeriod in hours
const CircadianPeriod = 24.0

// SpectralAdapter treats each fitted AR(2) as a filter and compares the
// channel capacity of clock and target genes at the circadian frequency.
type SpectralAdapter struct {
	// Sampling interval in hours (0 = 1)
	Interval float64
}

// Name implements Adapter.
func (s *SpectralAdapter) Name() string { return "spectral" }

// Evaluate implements Adapter.
func (s *SpectralAdapter) Evaluate(genes []GeneSeries) Result {
	const (
		question = "Do clock genes carry more circadian-band signal than their targets?"
		expected = "clock capacity at the 24h frequency exceeds target capacity"
	)
	interval := s.Interval
	if interval <= 0 {
		interval = 1
	}
	omega := 2 * math.Pi * interval / CircadianPeriod

	clock, target := split(genes)
	clockCap, nc := meanCapacity(clock, omega)
	targetCap, nt := meanCapacity(target, omega)
	if nc == 0 || nt == 0 {
		return insufficient(s.Name(), question, expected, "needs fittable clock and target series")
	}
	if targetCap <= 0 {
		return insufficient(s.Name(), question, expected, "target capacity is zero")
	}

	ratio := clockCap / targetCap
	score := clampScore(50 * ratio)
	return Result{
		Name:     s.Name(),
		Question: question,
		Expected: expected,
		Actual:   fmt.Sprintf("clock capacity %.3f bits, target capacity %.3f bits (ratio %.2f)", clockCap, targetCap, ratio),
		Score:    score,
		Status:   StatusFor(score),
		Details: map[string]float64{
			"clock_capacity":  clockCap,
			"target_capacity": targetCap,
			"ratio":           ratio,
			"omega":           omega,
		},
	}
}

// Gain is the AR(2) power transfer 1/|1 - phi1 e^{-iw} - phi2 e^{-2iw}|^2.
func Gain(phi1, phi2, omega float64) float64 {
	z := cmplx.Exp(complex(0, -omega))
	d := 1 - complex(phi1, 0)*z - complex(phi2, 0)*z*z
	a := cmplx.Abs(d)
	if a == 0 {
		return math.Inf(1)
	}
	return 1 / (a * a)
}

// Capacity is the Shannon capacity 0.5*log2(1 + gain) of a unit-SNR channel.
func Capacity(gain float64) float64 {
	return 0.5 * math.Log2(1+gain)
}

func meanCapacity(genes []GeneSeries, omega float64) (float64, int) {
	var sum float64
	n := 0
	for _, g := range genes {
		fit, err := ar2.Fit(g.Series)
		if err != nil {
			continue
		}
		c := Capacity(Gain(fit.Phi1, fit.Phi2, omega))
		if math.IsInf(c, 0) || math.IsNaN(c) {
			continue
		}
		sum += c
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
