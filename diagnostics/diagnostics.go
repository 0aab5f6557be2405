// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package diagnostics annotates an AR(2) fit with five independent checks that
// flag when its eigenvalue should not be trusted. Checks are advisory: they
// never discard a fit.
package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/series"
)

// DefaultThresholds returns the published trigger conditions.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrendSlope:     3.0,
		TrendModulus:   0.9,
		SampleWarning:  50,
		SampleCritical: 25,
		DeltaAIC:       2,
		DeltaR2:        0.02,
		Skewness:       1.0,
		Kurtosis:       3.0,
		BoundaryLow:    0.93,
		BoundaryHigh:   1.07,
	}
}

// Run evaluates all five checks for one fit and its source series.
// A nil fit (failed estimation) still gets the checks that only need the series.
func Run(ts *series.TimeSeries, fit *ar2.AR2Fit, th Thresholds) Report {
	var modulus float64
	var residuals []float64
	if fit != nil {
		modulus = fit.Roots(ts.SamplingInterval()).Modulus
		residuals = fit.Residuals
	}

	return Report{
		Trend:        CheckTrend(ts.Values, ts.Time, modulus, th),
		SampleSize:   CheckSampleSize(ts.Len(), th),
		HigherOrder:  CheckHigherOrder(ts.Values, th),
		Nonlinearity: CheckNonlinearity(residuals, th),
		Boundary:     CheckBoundary(modulus, th),
	}
}

// CheckTrend reports the OLS slope of the raw values on time and normalizes
// it by the t statistic of the time term in the dynamic regression
// y_t = a + b*t + c1*y_{t-1} + c2*y_{t-2}. The lagged levels absorb
// persistence, so a series that merely wanders does not read as a trend.
// times may be nil, then the sample index is used.
func CheckTrend(values, times []float64, modulus float64, th Thresholds) TrendCheck {
	out := TrendCheck{Modulus: modulus, PValue: 1}
	n := len(values)
	if n < 3 {
		return out
	}

	x := times
	if len(x) != n {
		x = make([]float64, n)
		for i := range x {
			x[i] = float64(i)
		}
	}

	alpha, beta := stat.LinearRegression(x, values, nil, false)
	out.Slope = beta
	if beta == 0 || stat.Variance(x, nil) == 0 {
		return out
	}

	tStat, df, ok := dynamicTrendT(values, x)
	if !ok {
		// short or collinear design: plain OLS t of the slope
		tStat, df = staticTrendT(values, x, alpha, beta), n-2
	}
	out.NormalizedSlope = tStat
	if math.IsInf(tStat, 1) {
		out.PValue = 0
	} else {
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
		out.PValue = 2 * (1 - tDist.CDF(tStat))
	}

	out.Triggered = out.NormalizedSlope > th.TrendSlope && modulus > th.TrendModulus
	return out
}

const (
	// lagged levels in the dynamic trend regression
	trendLags = 2
	// variance inflation of the time term beyond which it is taken as
	// collinear with the lags
	maxTrendInflation = 1e8
)

// dynamicTrendT returns |b| / SE(b) for the time coefficient of the
// regression of y_t on [1, t, y_{t-1}, ..., y_{t-trendLags}], with its
// residual degrees of freedom. ok is false when the design is too short or
// singular.
func dynamicTrendT(values, x []float64) (float64, int, bool) {
	k := 2 + trendLags
	rows := len(values) - trendLags
	df := rows - k
	if df < 1 {
		return 0, 0, false
	}

	meanX := stat.Mean(x[trendLags:], nil)
	var ssX float64
	X := mat.NewDense(rows, k, nil)
	Y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		t := trendLags + r
		Y.SetVec(r, values[t])
		X.Set(r, 0, 1)
		X.Set(r, 1, x[t]-meanX)
		ssX += (x[t] - meanX) * (x[t] - meanX)
		for j := 1; j <= trendLags; j++ {
			X.Set(r, 1+j, values[t-j])
		}
	}

	var xtx, inv mat.Dense
	xtx.Mul(X.T(), X)
	if err := inv.Inverse(&xtx); err != nil || inv.At(1, 1)*ssX > maxTrendInflation {
		return 0, 0, false
	}
	var xty, coef mat.VecDense
	xty.MulVec(X.T(), Y)
	coef.MulVec(&inv, &xty)

	var yHat mat.VecDense
	yHat.MulVec(X, &coef)
	var ssRes float64
	for r := 0; r < rows; r++ {
		e := Y.AtVec(r) - yHat.AtVec(r)
		ssRes += e * e
	}
	v := ssRes / float64(df) * inv.At(1, 1)
	if !(v > 0) {
		return 0, 0, false
	}
	return math.Abs(coef.AtVec(1)) / math.Sqrt(v), df, true
}

// staticTrendT is |beta| / SE(beta) for the line alpha + beta*x, +Inf when
// the line is exact.
func staticTrendT(values, x []float64, alpha, beta float64) float64 {
	meanX := stat.Mean(x, nil)
	var ssRes, ssX float64
	for i := range values {
		e := values[i] - (alpha + beta*x[i])
		ssRes += e * e
		dx := x[i] - meanX
		ssX += dx * dx
	}
	s2 := ssRes / float64(len(values)-2)
	if s2 <= 0 {
		return math.Inf(1)
	}
	return math.Abs(beta) / math.Sqrt(s2/ssX)
}

// CheckSampleSize grades n: critical below SampleCritical, warning below
// SampleWarning.
func CheckSampleSize(n int, th Thresholds) SampleSizeCheck {
	out := SampleSizeCheck{N: n}
	switch {
	case n < th.SampleCritical:
		out.Level = SampleCritical
	case n < th.SampleWarning:
		out.Level = SampleWarning
	}
	out.Triggered = out.Level != SampleOK
	return out
}

// CheckHigherOrder fits AR(2) and AR(3) on the common targets t = 3..n-1 and
// triggers when AR(3) wins on both AIC and explained variance.
func CheckHigherOrder(values []float64, th Thresholds) HigherOrderCheck {
	var out HigherOrderCheck

	fit2, err := ar2.FitAR(values, 2, 3)
	if err != nil {
		return out
	}
	fit3, err := ar2.FitAR(values, 3, 3)
	if err != nil {
		return out
	}

	out.Evaluated = true
	out.AIC2 = fit2.AIC()
	out.AIC3 = fit3.AIC()
	out.DeltaAIC = out.AIC2 - out.AIC3
	out.DeltaR2 = fit3.RSquared - fit2.RSquared
	if m, err := ar2.DominantModulus(fit3.Coeffs); err == nil {
		out.AR3Modulus = m
	}
	out.Triggered = out.DeltaAIC > th.DeltaAIC && out.DeltaR2 > th.DeltaR2
	return out
}

// CheckNonlinearity computes the sample skewness and excess kurtosis of the
// residuals. Fewer than 4 residuals cannot be evaluated.
func CheckNonlinearity(residuals []float64, th Thresholds) NonlinearityCheck {
	var out NonlinearityCheck
	if len(residuals) < 4 || stat.Variance(residuals, nil) == 0 {
		return out
	}
	out.Evaluated = true
	out.Skewness = stat.Skew(residuals, nil)
	out.ExcessKurtosis = stat.ExKurtosis(residuals, nil)
	out.Triggered = math.Abs(out.Skewness) > th.Skewness || out.ExcessKurtosis > th.Kurtosis
	return out
}

// CheckBoundary triggers inside the open interval (BoundaryLow, BoundaryHigh).
func CheckBoundary(modulus float64, th Thresholds) BoundaryCheck {
	return BoundaryCheck{
		Triggered: modulus > th.BoundaryLow && modulus < th.BoundaryHigh,
		Modulus:   modulus,
	}
}

// Flags lists the names of the triggered checks in a fixed order.
func (r Report) Flags() []string {
	var flags []string
	if r.Trend.Triggered {
		flags = append(flags, "trend")
	}
	if r.SampleSize.Triggered {
		flags = append(flags, "sample-size-"+r.SampleSize.Level.String())
	}
	if r.HigherOrder.Triggered {
		flags = append(flags, "higher-order")
	}
	if r.Nonlinearity.Triggered {
		flags = append(flags, "nonlinearity")
	}
	if r.Boundary.Triggered {
		flags = append(flags, "boundary")
	}
	return flags
}

// Any reports whether at least one check triggered.
func (r Report) Any() bool {
	return len(r.Flags()) > 0
}
