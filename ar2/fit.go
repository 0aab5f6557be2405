// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package ar2 fits second-order autoregressive models to expression series
// and classifies their characteristic roots.
package ar2

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"Circadian_Persistence_AR_Project/series"
)

// Fit estimates phi1 and phi2 by ordinary least squares on the demeaned series,
// minimizing sum (y[t] - phi1*y[t-1] - phi2*y[t-2])^2 over t = 2..n-1.
// Invalid input never panics: it returns ErrSeriesTooShort, ErrNonFinite or
// ErrDegenerate so the caller can skip the sample.
func Fit(values []float64) (*AR2Fit, error) {
	n := len(values)
	if n < MinLengthAR2 {
		return nil, fmt.Errorf("AR(2) needs at least %d points, got %d: %w", MinLengthAR2, n, ErrSeriesTooShort)
	}
	if !series.Finite(values) {
		return nil, ErrNonFinite
	}

	// 1. Demean
	y := series.Demean(values)

	// 2. Accumulate the 2x2 normal equations
	var s11, s22, s12, r1, r2 float64
	for t := 2; t < n; t++ {
		y1 := y[t-1]
		y2 := y[t-2]
		s11 += y1 * y1
		s22 += y2 * y2
		s12 += y1 * y2
		r1 += y[t] * y1
		r2 += y[t] * y2
	}

	det := s11*s22 - s12*s12
	if math.Abs(det) < detTolerance {
		return nil, fmt.Errorf("det = %g: %w", det, ErrDegenerate)
	}

	// 3. Cramer's rule
	phi1 := (r1*s22 - r2*s12) / det
	phi2 := (s11*r2 - s12*r1) / det

	// 4. Residuals and R^2
	residuals := make([]float64, n-2)
	var ssRes, ssTot float64
	for t := 2; t < n; t++ {
		e := y[t] - phi1*y[t-1] - phi2*y[t-2]
		residuals[t-2] = e
		ssRes += e * e
		ssTot += y[t] * y[t]
	}

	fit := &AR2Fit{
		Phi1:      phi1,
		Phi2:      phi2,
		RSquared:  rSquared(ssRes, ssTot),
		Residuals: residuals,
		N:         n,
	}
	return fit, nil
}

// FitSeries fits a TimeSeries and classifies its roots with the series'
// own sampling interval.
func FitSeries(ts *series.TimeSeries) (*AR2Fit, RootDescriptor, error) {
	if ts == nil {
		return nil, RootDescriptor{}, fmt.Errorf("time series data not provided: %w", ErrSeriesTooShort)
	}
	fit, err := Fit(ts.Values)
	if err != nil {
		return nil, RootDescriptor{}, fmt.Errorf("%s: %w", ts.Name, err)
	}
	return fit, fit.Roots(ts.SamplingInterval()), nil
}

// Modulus fits values and returns only the dominant-root modulus.
func Modulus(values []float64) (float64, error) {
	fit, err := Fit(values)
	if err != nil {
		return 0, err
	}
	return fit.Roots(1).Modulus, nil
}

// FitAR1 fits an AR(1) model to the demeaned series.
func FitAR1(values []float64) (*ARFit, error) {
	if len(values) < MinLengthAR1 {
		return nil, fmt.Errorf("AR(1) needs at least %d points, got %d: %w", MinLengthAR1, len(values), ErrSeriesTooShort)
	}
	return FitAR(values, 1, 1)
}

// FitAR fits an AR(p) model to the demeaned series by least squares, using the
// targets t = start..n-1. Choosing the same start for several orders puts
// their fits on a common sample, which is what information criteria need.
func FitAR(values []float64, p, start int) (*ARFit, error) {
	n := len(values)
	if p <= 0 {
		return nil, fmt.Errorf("order must be > 0, got %d", p)
	}
	if start < p {
		start = p
	}
	rows := n - start
	if rows <= p {
		return nil, fmt.Errorf("AR(%d) from t=%d needs more than %d targets, got %d: %w", p, start, p, rows, ErrSeriesTooShort)
	}
	if !series.Finite(values) {
		return nil, ErrNonFinite
	}

	y := series.Demean(values)

	// Design matrix: row r holds [y_{t-1}, ..., y_{t-p}] for t = start + r
	X := mat.NewDense(rows, p, nil)
	Y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		t := start + r
		Y.SetVec(r, y[t])
		for j := 1; j <= p; j++ {
			X.Set(r, j-1, y[t-j])
		}
	}

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	if det := mat.Det(&xtx); math.Abs(det) < detTolerance {
		return nil, fmt.Errorf("AR(%d) det = %g: %w", p, det, ErrDegenerate)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), Y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return nil, fmt.Errorf("AR(%d) solve failed: %v: %w", p, err, ErrDegenerate)
	}

	var yHat mat.VecDense
	yHat.MulVec(X, &beta)

	residuals := make([]float64, rows)
	var ssRes, ssTot float64
	for r := 0; r < rows; r++ {
		e := Y.AtVec(r) - yHat.AtVec(r)
		residuals[r] = e
		ssRes += e * e
		ssTot += Y.AtVec(r) * Y.AtVec(r)
	}

	coeffs := make([]float64, p)
	for j := 0; j < p; j++ {
		coeffs[j] = beta.AtVec(j)
	}

	return &ARFit{
		Order:     p,
		Coeffs:    coeffs,
		RSquared:  rSquared(ssRes, ssTot),
		SSRes:     ssRes,
		NObs:      rows,
		Residuals: residuals,
	}, nil
}

// AIC returns the Gaussian Akaike Information Criterion m*ln(SSRes/m) + 2p.
func (f *ARFit) AIC() float64 {
	m := float64(f.NObs)
	ss := f.SSRes
	// a perfect fit would send ln to -Inf
	if ss <= 0 {
		ss = math.SmallestNonzeroFloat64
	}
	return m*math.Log(ss/m) + 2*float64(f.Order)
}

// rSquared computes 1 - ssRes/ssTot clamped to [0, 1].
func rSquared(ssRes, ssTot float64) float64 {
	if ssTot <= 0 {
		return 0
	}
	r2 := 1 - ssRes/ssTot
	if r2 < 0 {
		return 0
	}
	if r2 > 1 {
		return 1
	}
	return r2
}
