// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package sensitivity

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summarize computes n, mean, sample std, range and the 5/50/95th percentiles.
// Every statistic is NaN for an empty input.
func Summarize(values []float64) Summary {
	nan := math.NaN()
	s := Summary{N: len(values), Mean: nan, Std: nan, Min: nan, Max: nan, P5: nan, P50: nan, P95: nan}
	if len(values) == 0 {
		return s
	}
	s.Mean, _ = stats.Mean(values)
	s.Min, _ = stats.Min(values)
	s.Max, _ = stats.Max(values)
	s.Std = 0
	if len(values) > 1 {
		s.Std, _ = stats.StandardDeviationSample(values)
	}
	s.P5 = percentile(values, 5, s.Min)
	s.P50, _ = stats.Median(values)
	s.P95 = percentile(values, 95, s.Max)
	return s
}

// percentile falls back to the matching extreme when the sample is too small
// for the requested rank.
func percentile(values []float64, p, fallback float64) float64 {
	v, err := stats.Percentile(values, p)
	if err != nil || math.IsNaN(v) {
		return fallback
	}
	return v
}
