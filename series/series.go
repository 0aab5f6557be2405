// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package series is the preprocessing layer consumed by every fitter:
// the TimeSeries value type, demeaning, and the perturbations used by the
// resampling loops (order shuffles and block resamples).
package series

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"Circadian_Persistence_AR_Project/rng"
)

// ErrLengthMismatch is returned when values and timestamps differ in length.
var ErrLengthMismatch = errors.New("values and timestamps must have the same length")

// TimeSeries is one gene's expression profile.
type TimeSeries struct {
	// Gene or variable name
	Name string
	// Observations in sampling order
	Values []float64
	// Sampling timestamps (hours), same length as Values
	Time []float64
}

// New builds a TimeSeries with a unit-spaced time index 0,1,2,...
func New(name string, values []float64) *TimeSeries {
	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i)
	}
	return &TimeSeries{Name: name, Values: values, Time: times}
}

// NewWithTime builds a TimeSeries with explicit timestamps.
func NewWithTime(name string, values, times []float64) (*TimeSeries, error) {
	if len(values) != len(times) {
		return nil, fmt.Errorf("%s: %w (%d values, %d times)", name, ErrLengthMismatch, len(values), len(times))
	}
	return &TimeSeries{Name: name, Values: values, Time: times}, nil
}

// Len returns the number of observations.
func (ts *TimeSeries) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Values)
}

// SamplingInterval returns the median positive spacing of Time.
// If no timestamps are available, the interval is 1.
func (ts *TimeSeries) SamplingInterval() float64 {
	if ts == nil || len(ts.Time) < 2 {
		return 1
	}
	diffs := make([]float64, 0, len(ts.Time)-1)
	for i := 1; i < len(ts.Time); i++ {
		d := ts.Time[i] - ts.Time[i-1]
		if d > 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return 1
	}
	sort.Float64s(diffs)
	mid := len(diffs) / 2
	if len(diffs)%2 == 0 {
		return (diffs[mid-1] + diffs[mid]) / 2
	}
	return diffs[mid]
}

// Copy returns a deep copy.
func (ts *TimeSeries) Copy() *TimeSeries {
	out := &TimeSeries{Name: ts.Name}
	out.Values = append([]float64(nil), ts.Values...)
	out.Time = append([]float64(nil), ts.Time...)
	return out
}

// Finite reports whether every value is a finite number.
func Finite(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	return floats.Sum(y) / float64(len(y))
}

// Demean returns a new slice with the mean subtracted. The input is untouched.
func Demean(y []float64) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	floats.AddConst(-Mean(y), out)
	return out
}

// Shuffle returns a copy of y with its order permuted (Fisher-Yates).
// The marginal distribution is preserved while temporal structure is destroyed.
func Shuffle(y []float64, src rng.Source) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	src.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// BlockResample builds a series of the same length as y by concatenating
// contiguous blocks of blockLen drawn with replacement, truncated to len(y).
// A blockLen outside [1, len(y)] is clipped into that range.
func BlockResample(y []float64, blockLen int, src rng.Source) []float64 {
	n := len(y)
	if n == 0 {
		return nil
	}
	if blockLen < 1 {
		blockLen = 1
	}
	if blockLen > n {
		blockLen = n
	}

	out := make([]float64, 0, n+blockLen)
	// block starts are uniform over every full-length block
	starts := n - blockLen + 1
	for len(out) < n {
		s := src.Intn(starts)
		out = append(out, y[s:s+blockLen]...)
	}
	return out[:n]
}
