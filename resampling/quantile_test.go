// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package resampling

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
)

// almostEqual compares floats with tolerance
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// fixtureNumbers returns every non-comment line of a fixture file as a float.
func fixtureNumbers(t *testing.T, path string) []float64 {
	t.Helper()
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var out []float64
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		out = append(out, v)
	}
	return out
}

// Each input file holds N, N samples and q. The matching output file holds
// the expected quantile.
func TestSortedQuantileFixtures(t *testing.T) {
	inputs, err := filepath.Glob("Tests/Quantile/input/input_*.txt")
	if err != nil || len(inputs) == 0 {
		t.Fatalf("no quantile fixtures: %v", err)
	}
	for i, in := range inputs {
		out := strings.Replace(in, "input", "output", 2)
		nums := fixtureNumbers(t, in)
		n := int(nums[0])
		if len(nums) != n+2 {
			t.Fatalf("Test %d: %s holds %d values, want %d", i+1, in, len(nums), n+2)
		}
		samples, q := nums[1:n+1], nums[n+1]
		want := fixtureNumbers(t, out)[0]

		sorted := append([]float64(nil), samples...)
		sort.Float64s(sorted)
		if got := sortedQuantile(sorted, q); !almostEqual(got, want, 1e-6) {
			t.Errorf("Test %d: sortedQuantile(%v, %v) = %v; want %v", i+1, sorted, q, got, want)
		}
		nd := &NullDistribution{Values: samples}
		if got := nd.Percentile(q); !almostEqual(got, want, 1e-6) {
			t.Errorf("Test %d: Percentile(%v) = %v; want %v", i+1, q, got, want)
		}
	}
}

func TestSortedQuantileEmpty(t *testing.T) {
	if got := sortedQuantile(nil, 0.5); !math.IsNaN(got) {
		t.Errorf("sortedQuantile(nil) = %v; want NaN", got)
	}
}

func TestBiasCorrectedCI(t *testing.T) {
	samples := make([]float64, 101)
	for i := range samples {
		samples[i] = float64(i)
	}

	// a centred point leaves the percentile levels unchanged
	centred := biasCorrectedCI(50, samples, 0.05)
	plain := (&NullDistribution{Observed: 50, Values: samples}).CI(0.05)
	if !almostEqual(centred.Lower, plain.Lower, 1e-9) || !almostEqual(centred.Upper, plain.Upper, 1e-9) {
		t.Errorf("centred BC interval = [%v, %v]; want [%v, %v]", centred.Lower, centred.Upper, plain.Lower, plain.Upper)
	}

	// replicates biased low shift the interval up around the point
	shifted := biasCorrectedCI(70, samples, 0.05)
	if shifted.Lower <= plain.Lower || shifted.Upper <= plain.Upper {
		t.Errorf("biased BC interval = [%v, %v]; want both ends above [%v, %v]",
			shifted.Lower, shifted.Upper, plain.Lower, plain.Upper)
	}
	if shifted.Excludes(70) {
		t.Errorf("biased BC interval [%v, %v] excludes its point", shifted.Lower, shifted.Upper)
	}

	// no finite point falls back to the plain interval
	nan := biasCorrectedCI(math.NaN(), samples, 0.05)
	if !almostEqual(nan.Lower, plain.Lower, 1e-9) || !almostEqual(nan.Upper, plain.Upper, 1e-9) {
		t.Errorf("BC interval without a point = [%v, %v]; want [%v, %v]", nan.Lower, nan.Upper, plain.Lower, plain.Upper)
	}

	// a point outside every replicate stays finite
	far := biasCorrectedCI(500, samples, 0.05)
	if math.IsNaN(far.Lower) || math.IsNaN(far.Upper) || far.Upper > 100 {
		t.Errorf("BC interval for an extreme point = [%v, %v]", far.Lower, far.Upper)
	}
}

func TestBlockLength(t *testing.T) {
	tests := []struct {
		n, fixed, want int
	}{
		{100, 0, 10},
		{48, 0, 7},
		{101, 0, 11},
		{1, 0, 1},
		{100, 6, 6},
	}
	for i, test := range tests {
		if got := blockLength(test.n, test.fixed); got != test.want {
			t.Errorf("Test %d: blockLength(%d, %d) = %d; want %d", i+1, test.n, test.fixed, got, test.want)
		}
	}
}

// ============================================================================
// NULL DISTRIBUTION TESTS
// ============================================================================

func TestNullDistributionPValues(t *testing.T) {
	tests := []struct {
		observed  float64
		values    []float64
		pValue    float64
		twoSided  float64
		signShare float64
	}{
		{2, []float64{1, 2, 3, 0}, 0.6, 0.6, 0.75},
		{-2, []float64{-3, 1, 2, -1}, 0.8, 0.6, 0.5},
		{10, []float64{1, 2, 3}, 0.25, 0.25, 1},
	}

	for i, test := range tests {
		nd := &NullDistribution{Observed: test.observed, Values: test.values, Attempted: len(test.values)}
		if got := nd.PValue(); !almostEqual(got, test.pValue, 1e-12) {
			t.Errorf("Test %d: PValue() = %v; want %v", i+1, got, test.pValue)
		}
		if got := nd.TwoSided(); !almostEqual(got, test.twoSided, 1e-12) {
			t.Errorf("Test %d: TwoSided() = %v; want %v", i+1, got, test.twoSided)
		}
		if got := nd.SignPreserved(); !almostEqual(got, test.signShare, 1e-12) {
			t.Errorf("Test %d: SignPreserved() = %v; want %v", i+1, got, test.signShare)
		}
	}
}

func TestNullDistributionZScore(t *testing.T) {
	nd := &NullDistribution{Observed: 2, Values: []float64{1, 2, 3, 0}}
	want := 0.5 / math.Sqrt(5.0/3.0)
	if got := nd.ZScore(); !almostEqual(got, want, 1e-9) {
		t.Errorf("ZScore() = %v; want %v", got, want)
	}

	flat := &NullDistribution{Observed: 1, Values: []float64{2, 2, 2}}
	if got := flat.ZScore(); !math.IsNaN(got) {
		t.Errorf("ZScore() of a flat null = %v; want NaN", got)
	}
}

func TestSignPreservedZeroObserved(t *testing.T) {
	nd := &NullDistribution{Observed: 0, Values: []float64{1, 2, -1}}
	if got := nd.SignPreserved(); !math.IsNaN(got) {
		t.Errorf("SignPreserved() with a zero observed gap = %v; want NaN", got)
	}
}

func TestNullDistributionNoObserved(t *testing.T) {
	nd := &NullDistribution{Observed: math.NaN(), Values: []float64{1, 2}}
	if !math.IsNaN(nd.PValue()) || !math.IsNaN(nd.TwoSided()) {
		t.Errorf("p-values without an observed statistic should be NaN")
	}
}

func TestOutcomeRule(t *testing.T) {
	tests := []struct {
		observed    float64
		valid       int
		attempted   int
		significant bool
		want        Outcome
	}{
		{0.1, 10, 10, true, Significant},
		{0.1, 10, 10, false, NotSignificant},
		{0.1, 5, 10, true, Significant},
		{0.1, 4, 10, true, Insufficient},
		{0.1, 0, 10, false, Insufficient},
		{math.NaN(), 10, 10, true, Insufficient},
	}
	for i, test := range tests {
		if got := outcome(test.observed, test.valid, test.attempted, test.significant); got != test.want {
			t.Errorf("Test %d: outcome = %v; want %v", i+1, got, test.want)
		}
	}
}
