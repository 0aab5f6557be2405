// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package benchmark scores eigenvalue results against four external
// frameworks: reaction-diffusion pattern formation, spectral transfer,
// network hub structure, and cross-condition phase behavior.
package benchmark

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RunSuite evaluates every adapter on its own copy of genes.
func RunSuite(adapters []Adapter, genes []GeneSeries) SuiteResult {
	var out SuiteResult
	if len(adapters) == 0 {
		return out
	}
	var total float64
	for _, a := range adapters {
		res := a.Evaluate(copyGenes(genes))
		if res.Status == StatusPassed {
			out.Passed++
		}
		total += res.Score
		out.Results = append(out.Results, res)
	}
	out.Overall = total / float64(len(adapters))
	return out
}

// DefaultAdapters returns the four benchmarks with default settings.
// reference may be nil, then the phase benchmark reports insufficient data.
func DefaultAdapters(interval float64, reference []GeneSeries) []Adapter {
	return []Adapter{
		&TuringAdapter{Seed: 1},
		&SpectralAdapter{Interval: interval},
		&NetworkAdapter{},
		&PhaseAdapter{Interval: interval, Reference: copyGenes(reference)},
	}
}

func copyGenes(genes []GeneSeries) []GeneSeries {
	if genes == nil {
		return nil
	}
	out := make([]GeneSeries, len(genes))
	for i, g := range genes {
		out[i] = g
		out[i].Series = append([]float64(nil), g.Series...)
	}
	return out
}

// split separates clock and target genes.
func split(genes []GeneSeries) (clock, target []GeneSeries) {
	for _, g := range genes {
		switch g.Group {
		case GroupClock:
			clock = append(clock, g)
		case GroupTarget:
			target = append(target, g)
		}
	}
	return clock, target
}

// meanEigenvalue averages the finite eigenvalues of genes.
func meanEigenvalue(genes []GeneSeries) (float64, int) {
	var sum float64
	n := 0
	for _, g := range genes {
		if math.IsNaN(g.Eigenvalue) || math.IsInf(g.Eigenvalue, 0) {
			continue
		}
		sum += g.Eigenvalue
		n++
	}
	if n == 0 {
		return math.NaN(), 0
	}
	return sum / float64(n), n
}

// insufficient builds a zero-score result for unusable input.
func insufficient(name, question, expected, reason string) Result {
	return Result{
		Name:         name,
		Question:     question,
		Expected:     expected,
		Actual:       "insufficient data: " + reason,
		Score:        0,
		Status:       StatusFailed,
		Insufficient: true,
	}
}

// correlationScore maps a correlation in [-1, 1] to 50 + 50*rho in [0, 100].
func correlationScore(rho float64) float64 {
	return clampScore(50 + 50*rho)
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	return math.Max(0, math.Min(100, s))
}

// spearman is the Pearson correlation of the average ranks of x and y.
func spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) < 3 {
		return 0, fmt.Errorf("need at least 3 pairs, got %d", len(x))
	}
	rx, ry := ranks(x), ranks(y)
	if stat.Variance(rx, nil) == 0 || stat.Variance(ry, nil) == 0 {
		return 0, fmt.Errorf("constant ranks")
	}
	return stat.Correlation(rx, ry, nil), nil
}

// ranks assigns 1-based ranks, averaging ties.
func ranks(x []float64) []float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	r := make([]float64, len(x))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			r[idx[k]] = avg
		}
		i = j + 1
	}
	return r
}
