// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package ar2

import "errors"

// Minimum series lengths for each fitter
const (
	MinLengthAR2 = 5
	MinLengthAR1 = 3
)

// detTolerance is the cutoff below which the normal equations are singular.
const detTolerance = 1e-10

// Sentinel errors for invalid fits. Batch loops check them with errors.Is and
// skip the sample instead of aborting.
var (
	ErrSeriesTooShort = errors.New("series too short")
	ErrDegenerate     = errors.New("normal equations are numerically degenerate")
	ErrNonFinite      = errors.New("series contains NaN or Inf")
)

// AR2Fit holds an ordinary least squares AR(2) fit of a demeaned series.
// A fit is created per call and never shared or modified afterwards.
type AR2Fit struct {
	// Lag-1 and lag-2 coefficients
	Phi1 float64
	Phi2 float64
	// Coefficient of determination, floor-clamped at 0
	RSquared float64
	// Residuals for t = 2..n-1 (n-2 values)
	Residuals []float64
	// Length of the source series
	N int
}

// ARFit is a general AR(p) least squares fit.
type ARFit struct {
	// Model order p
	Order int
	// Coefficients phi_1..phi_p
	Coeffs []float64
	// 1 - SSRes/SSTot, floor-clamped at 0
	RSquared float64
	// Residual sum of squares
	SSRes float64
	// Number of fitted observations
	NObs int
	// Residuals for every fitted observation
	Residuals []float64
}

// RootDescriptor is the characteristic-root view of an AR(2) fit.
type RootDescriptor struct {
	Phi1 float64
	Phi2 float64
	// phi1^2 + 4*phi2
	Discriminant float64
	// Magnitude of the dominant root, |lambda|
	Modulus float64
	// Phase angle in radians: atan2 of the complex root, 0 or pi when real
	Angle     float64
	IsComplex bool
	// -ln(Modulus); +Inf when Modulus is 0
	DampingRate float64
	// Natural period in time units (Angle and Interval), valid when HasPeriod
	Period    float64
	HasPeriod bool
	// Both characteristic roots of x^2 - phi1*x - phi2 = 0
	Roots [2]complex128
	// Sampling interval used for Period
	Interval float64
}

// Stability is the persistence band a modulus falls into.
type Stability int

// Stability bands
const (
	Unstable Stability = iota
	Stable
	Transitional
)

func (s Stability) String() string {
	switch s {
	case Stable:
		return "stable"
	case Transitional:
		return "transitional"
	default:
		return "unstable"
	}
}

// Bands holds the cutoffs used by Classify. The cutoffs are exact:
// stable [StableLow, StableHigh], transitional (StableHigh, UnstableLow),
// unstable everywhere else.
type Bands struct {
	StableLow   float64 `toml:"stable_low"`
	StableHigh  float64 `toml:"stable_high"`
	UnstableLow float64 `toml:"unstable_low"`
}
