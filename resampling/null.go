// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package resampling

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Valid returns the number of recorded iterations.
func (nd *NullDistribution) Valid() int {
	return len(nd.Values)
}

// PValue is the Laplace-corrected one-sided p-value
// (count(null >= observed) + 1) / (valid + 1). NaN without an observed value.
func (nd *NullDistribution) PValue() float64 {
	if math.IsNaN(nd.Observed) {
		return math.NaN()
	}
	count := 0
	for _, v := range nd.Values {
		if v >= nd.Observed {
			count++
		}
	}
	return float64(count+1) / float64(len(nd.Values)+1)
}

// TwoSided is (count(|null| >= |observed|) + 1) / (valid + 1).
func (nd *NullDistribution) TwoSided() float64 {
	if math.IsNaN(nd.Observed) {
		return math.NaN()
	}
	obs := math.Abs(nd.Observed)
	count := 0
	for _, v := range nd.Values {
		if math.Abs(v) >= obs {
			count++
		}
	}
	return float64(count+1) / float64(len(nd.Values)+1)
}

// SignPreserved is the share of null values with the same sign as observed.
// NaN when the observed statistic is exactly zero.
func (nd *NullDistribution) SignPreserved() float64 {
	if len(nd.Values) == 0 || math.IsNaN(nd.Observed) || nd.Observed == 0 {
		return math.NaN()
	}
	sign := math.Signbit(nd.Observed)
	count := 0
	for _, v := range nd.Values {
		if v != 0 && math.Signbit(v) == sign {
			count++
		}
	}
	return float64(count) / float64(len(nd.Values))
}

// Mean of the null values.
func (nd *NullDistribution) Mean() float64 {
	if len(nd.Values) == 0 {
		return math.NaN()
	}
	return stat.Mean(nd.Values, nil)
}

// Std is the sample standard deviation of the null values.
func (nd *NullDistribution) Std() float64 {
	if len(nd.Values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(nd.Values, nil)
}

// ZScore is (observed - mean) / std, NaN for a degenerate null.
func (nd *NullDistribution) ZScore() float64 {
	sd := nd.Std()
	if math.IsNaN(sd) || sd == 0 {
		return math.NaN()
	}
	return (nd.Observed - nd.Mean()) / sd
}

// Percentile returns the q-quantile of the null values (0 <= q <= 1).
func (nd *NullDistribution) Percentile(q float64) float64 {
	return sortedQuantile(sortedCopy(nd.Values), q)
}

// CI returns the central 1-alpha percentile interval around Observed.
func (nd *NullDistribution) CI(alpha float64) CI {
	sorted := sortedCopy(nd.Values)
	return CI{
		Point: nd.Observed,
		Lower: sortedQuantile(sorted, alpha/2),
		Upper: sortedQuantile(sorted, 1-alpha/2),
	}
}

// biasCorrectedCI is the BC percentile interval: the alpha/2 and 1-alpha/2
// levels are shifted by z0, the normal score of the share of replicates
// below point. Without a finite point it falls back to the plain interval.
func biasCorrectedCI(point float64, samples []float64, alpha float64) CI {
	sorted := sortedCopy(samples)
	lo, hi := alpha/2, 1-alpha/2
	if z0, ok := medianBias(point, sorted); ok {
		lo = unitNormal.CDF(2*z0 + unitNormal.Quantile(lo))
		hi = unitNormal.CDF(2*z0 + unitNormal.Quantile(hi))
	}
	return CI{
		Point: point,
		Lower: sortedQuantile(sorted, lo),
		Upper: sortedQuantile(sorted, hi),
	}
}

var unitNormal = distuv.Normal{Mu: 0, Sigma: 1}

// medianBias returns z0 for sorted replicates. Ties with point count half.
// The share is clamped to [1/2B, 1-1/2B] so z0 stays finite.
func medianBias(point float64, sorted []float64) (float64, bool) {
	b := len(sorted)
	if b == 0 || math.IsNaN(point) || math.IsInf(point, 0) {
		return 0, false
	}
	below := sort.SearchFloat64s(sorted, point)
	ties := sort.Search(b, func(i int) bool { return sorted[i] > point }) - below
	share := (float64(below) + 0.5*float64(ties)) / float64(b)
	edge := 0.5 / float64(b)
	share = math.Max(edge, math.Min(1-edge, share))
	return unitNormal.Quantile(share), true
}

func sortedCopy(samples []float64) []float64 {
	out := append([]float64(nil), samples...)
	sort.Float64s(out)
	return out
}

// sortedQuantile interpolates linearly between the order statistics of an
// ascending slice at position q*(n-1). NaN for an empty slice.
func sortedQuantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case q <= 0:
		return sorted[0]
	case q >= 1:
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	i := int(pos)
	frac := pos - float64(i)
	if frac == 0 || i+1 == n {
		return sorted[i]
	}
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// outcome applies the shared decision rule: Insufficient without an observed
// statistic or when fewer than half the iterations were valid.
func outcome(observed float64, valid, attempted int, significant bool) Outcome {
	if math.IsNaN(observed) || valid == 0 || 2*valid < attempted {
		return Insufficient
	}
	if significant {
		return Significant
	}
	return NotSignificant
}
