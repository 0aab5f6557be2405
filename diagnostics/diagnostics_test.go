// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package diagnostics

import (
	"math"
	"reflect"
	"sync"
	"testing"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/rng"
	"Circadian_Persistence_AR_Project/series"
)

// ============================================================================
// HELPER FUNCTIONS
// ============================================================================

// almostEqual compares floats with tolerance
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// whiteNoise draws n standard normal values from a fixed seed
func whiteNoise(n int, seed int64) []float64 {
	src := rng.New(seed)
	y := make([]float64, n)
	for i := range y {
		y[i] = src.NormFloat64()
	}
	return y
}

// trended is a steep line with a small alternating wiggle
func trended(n int) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = 0.5 * float64(i)
		if i%2 == 0 {
			y[i] += 0.1
		}
	}
	return y
}

// ============================================================================
// TREND
// ============================================================================

func TestCheckTrend(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		modulus float64
		want    bool
	}{
		{0.95, true},
		{0.90, false}, // modulus must strictly exceed 0.9
		{0.50, false},
	}

	y := trended(40)
	for i, test := range tests {
		got := CheckTrend(y, nil, test.modulus, th)
		if got.Triggered != test.want {
			t.Errorf("Test %d: CheckTrend(modulus=%v).Triggered = %v; want %v",
				i+1, test.modulus, got.Triggered, test.want)
		}
		if got.NormalizedSlope <= th.TrendSlope {
			t.Errorf("Test %d: normalized slope = %v; want > %v", i+1, got.NormalizedSlope, th.TrendSlope)
		}
		if !almostEqual(got.Slope, 0.5, 0.01) {
			t.Errorf("Test %d: slope = %v; want ~0.5", i+1, got.Slope)
		}
		if got.PValue > 1e-6 {
			t.Errorf("Test %d: p-value = %v; want ~0", i+1, got.PValue)
		}
	}
}

func TestCheckTrendUsesTimestamps(t *testing.T) {
	y := trended(40)
	times := make([]float64, len(y))
	for i := range times {
		times[i] = 4 * float64(i)
	}
	got := CheckTrend(y, times, 0.95, DefaultThresholds())
	if !almostEqual(got.Slope, 0.125, 0.005) {
		t.Errorf("slope per hour = %v; want ~0.125", got.Slope)
	}
}

func TestCheckTrendIgnoresPersistentWandering(t *testing.T) {
	th := DefaultThresholds()
	trials, fired, persistent := 50, 0, 0
	for i := 0; i < trials; i++ {
		y := ar2.Simulate(0.97, 0, 1, 100, rng.New(int64(300+i)))
		modulus, err := ar2.Modulus(y)
		if err != nil {
			t.Fatalf("Test %d: Modulus returned error: %v", i+1, err)
		}
		if modulus > th.TrendModulus {
			persistent++
		}
		if CheckTrend(y, nil, modulus, th).Triggered {
			fired++
		}
	}
	if persistent < trials/4 {
		t.Errorf("only %d of %d series have modulus above %v", persistent, trials, th.TrendModulus)
	}
	if fired > trials/5 {
		t.Errorf("trend flag fired on %d of %d trend-free AR(1) series; want at most %d", fired, trials, trials/5)
	}
}

func TestCheckTrendOnNoisyLine(t *testing.T) {
	noise := whiteNoise(100, 11)
	y := make([]float64, len(noise))
	for i := range y {
		y[i] = 0.05*float64(i) + noise[i]
	}
	got := CheckTrend(y, nil, 0.95, DefaultThresholds())
	if !got.Triggered {
		t.Errorf("noisy line not flagged: %+v", got)
	}
	if got.PValue >= 0.01 {
		t.Errorf("noisy line p-value = %v; want < 0.01", got.PValue)
	}
}

func TestCheckTrendFlatSeries(t *testing.T) {
	y := make([]float64, 30)
	got := CheckTrend(y, nil, 0.99, DefaultThresholds())
	if got.Triggered || got.NormalizedSlope != 0 {
		t.Errorf("flat series: got %+v; want no trend", got)
	}
}

// ============================================================================
// SAMPLE SIZE
// ============================================================================

func TestCheckSampleSize(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		n         int
		level     SampleLevel
		triggered bool
	}{
		{20, SampleCritical, true},
		{24, SampleCritical, true},
		{25, SampleWarning, true},
		{49, SampleWarning, true},
		{50, SampleOK, false},
		{200, SampleOK, false},
	}

	for i, test := range tests {
		got := CheckSampleSize(test.n, th)
		if got.Level != test.level || got.Triggered != test.triggered {
			t.Errorf("Test %d: CheckSampleSize(%d) = %v/%v; want %v/%v",
				i+1, test.n, got.Level, got.Triggered, test.level, test.triggered)
		}
	}
}

// ============================================================================
// HIGHER-ORDER MEMORY
// ============================================================================

func TestCheckHigherOrderThirdLag(t *testing.T) {
	// x(t) = 0.2 x(t-1) + 0.6 x(t-3) + e(t) has memory AR(2) cannot express
	src := rng.New(11)
	n := 1000
	x := make([]float64, n+100)
	for i := range x {
		v := src.NormFloat64()
		if i >= 1 {
			v += 0.2 * x[i-1]
		}
		if i >= 3 {
			v += 0.6 * x[i-3]
		}
		x[i] = v
	}
	y := x[100:]

	got := CheckHigherOrder(y, DefaultThresholds())
	if !got.Evaluated {
		t.Fatalf("CheckHigherOrder was not evaluated")
	}
	if !got.Triggered {
		t.Errorf("CheckHigherOrder: dAIC = %v, dR2 = %v; want triggered", got.DeltaAIC, got.DeltaR2)
	}
	if got.AR3Modulus <= 0 || got.AR3Modulus >= 1 {
		t.Errorf("AR(3) modulus = %v; want in (0, 1)", got.AR3Modulus)
	}
}

func TestCheckHigherOrderTooShort(t *testing.T) {
	got := CheckHigherOrder([]float64{1, 2, 3, 4, 5}, DefaultThresholds())
	if got.Evaluated || got.Triggered {
		t.Errorf("short series: got %+v; want not evaluated", got)
	}
}

// ============================================================================
// NONLINEARITY
// ============================================================================

func TestCheckNonlinearity(t *testing.T) {
	th := DefaultThresholds()

	symmetric := make([]float64, 100)
	for i := range symmetric {
		symmetric[i] = 1
		if i%2 == 1 {
			symmetric[i] = -1
		}
	}
	got := CheckNonlinearity(symmetric, th)
	if !got.Evaluated || got.Triggered {
		t.Errorf("symmetric residuals: got %+v; want evaluated, not triggered", got)
	}

	spiky := append([]float64(nil), symmetric...)
	spiky[0] = 40
	got = CheckNonlinearity(spiky, th)
	if !got.Triggered {
		t.Errorf("spiky residuals: skew = %v, kurt = %v; want triggered", got.Skewness, got.ExcessKurtosis)
	}

	got = CheckNonlinearity([]float64{1, 2, 3}, th)
	if got.Evaluated {
		t.Errorf("3 residuals should not be evaluated")
	}
}

// ============================================================================
// BOUNDARY
// ============================================================================

func TestCheckBoundary(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		modulus float64
		want    bool
	}{
		{0.50, false},
		{0.93, false},
		{0.95, true},
		{1.00, true},
		{1.07, false},
		{1.20, false},
	}
	for i, test := range tests {
		if got := CheckBoundary(test.modulus, th); got.Triggered != test.want {
			t.Errorf("Test %d: CheckBoundary(%v) = %v; want %v", i+1, test.modulus, got.Triggered, test.want)
		}
	}
}

// ============================================================================
// REPORT
// ============================================================================

func TestRunWhiteNoise(t *testing.T) {
	ts := series.New("noise", whiteNoise(200, 3))
	fit, err := ar2.Fit(ts.Values)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}

	rep := Run(ts, fit, DefaultThresholds())
	if rep.Trend.Triggered {
		t.Errorf("white noise flagged for trend: %+v", rep.Trend)
	}
	if rep.Boundary.Triggered {
		t.Errorf("white noise flagged for boundary: %+v", rep.Boundary)
	}
	if rep.SampleSize.Triggered {
		t.Errorf("n = 200 flagged for sample size")
	}
	if !rep.Nonlinearity.Evaluated {
		t.Errorf("residual moments were not evaluated")
	}
}

func TestRunChecksAreIndependent(t *testing.T) {
	// a short steep trend: sample size fires on its own, whatever the others do
	ts := series.New("short", trended(20))
	fit, err := ar2.Fit(ts.Values)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	th := DefaultThresholds()
	rep := Run(ts, fit, th)

	if rep.SampleSize.Level != SampleCritical {
		t.Errorf("length 20: level = %v; want critical", rep.SampleSize.Level)
	}
	modulus := fit.Roots(1).Modulus
	if rep.Trend != CheckTrend(ts.Values, ts.Time, modulus, th) {
		t.Errorf("trend in report differs from standalone check")
	}
	if rep.Boundary != CheckBoundary(modulus, th) {
		t.Errorf("boundary in report differs from standalone check")
	}
	if !reflect.DeepEqual(rep.HigherOrder, CheckHigherOrder(ts.Values, th)) {
		t.Errorf("higher-order in report differs from standalone check")
	}
}

func TestRunNilFit(t *testing.T) {
	ts := series.New("constant", []float64{2, 2, 2, 2, 2, 2})
	rep := Run(ts, nil, DefaultThresholds())
	if rep.Boundary.Triggered || rep.Trend.Triggered || rep.Nonlinearity.Evaluated {
		t.Errorf("nil fit: got %+v; want only series-level checks", rep)
	}
	if rep.SampleSize.Level != SampleCritical {
		t.Errorf("nil fit: sample size level = %v; want critical", rep.SampleSize.Level)
	}
}

func TestReportFlags(t *testing.T) {
	rep := Report{
		Trend:      TrendCheck{Triggered: true},
		SampleSize: SampleSizeCheck{Triggered: true, Level: SampleWarning},
		Boundary:   BoundaryCheck{Triggered: true},
	}
	want := []string{"trend", "sample-size-warning", "boundary"}
	if got := rep.Flags(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flags() = %v; want %v", got, want)
	}
	if !rep.Any() {
		t.Errorf("Any() = false; want true")
	}
	if (Report{}).Any() {
		t.Errorf("empty report Any() = true; want false")
	}
}

// ============================================================================
// DATASET HEALTH
// ============================================================================

func TestDatasetHealth(t *testing.T) {
	data := map[string]*series.TimeSeries{
		"good":  series.New("good", whiteNoise(200, 5)),
		"short": series.New("short", []float64{1, 2, 3}),
		"small": series.New("small", whiteNoise(20, 9)),
	}
	got := DatasetHealth(data, DefaultThresholds())
	if got.Genes != 3 || got.ValidFits != 2 || got.Flagged != 1 {
		t.Errorf("DatasetHealth = %+v; want 3 genes, 2 valid, 1 flagged", got)
	}
	if !almostEqual(got.Score, 1.0/3.0, 1e-12) {
		t.Errorf("score = %v; want 1/3", got.Score)
	}

	if empty := DatasetHealth(nil, DefaultThresholds()); empty.Score != 0 {
		t.Errorf("empty dataset score = %v; want 0", empty.Score)
	}
}

func TestHealthCacheComputesOnce(t *testing.T) {
	cache := NewHealthCache()
	var mu sync.Mutex
	calls := 0
	compute := func() HealthScore {
		mu.Lock()
		calls++
		mu.Unlock()
		return HealthScore{Genes: 7, Score: 0.5}
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := cache.GetOrCompute("ds", compute); got.Genes != 7 {
				t.Errorf("GetOrCompute = %+v; want cached score", got)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("compute called %d times; want 1", calls)
	}
	if cache.Len() != 1 {
		t.Errorf("cache.Len() = %d; want 1", cache.Len())
	}
}
