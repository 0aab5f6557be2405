// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package diagnostics

// Thresholds holds the trigger conditions of the five checks.
type Thresholds struct {
	// Trend: normalized slope and modulus must both exceed these
	TrendSlope   float64 `toml:"trend_slope"`
	TrendModulus float64 `toml:"trend_modulus"`
	// Sample size: warning below SampleWarning, critical below SampleCritical
	SampleWarning  int `toml:"sample_warning"`
	SampleCritical int `toml:"sample_critical"`
	// Higher-order memory: AIC improvement and R^2 gain of AR(3) over AR(2)
	DeltaAIC float64 `toml:"delta_aic"`
	DeltaR2  float64 `toml:"delta_r2"`
	// Nonlinearity: |skewness| or excess kurtosis of the residuals
	Skewness float64 `toml:"skewness"`
	Kurtosis float64 `toml:"kurtosis"`
	// Boundary proximity: open interval around the unit circle
	BoundaryLow  float64 `toml:"boundary_low"`
	BoundaryHigh float64 `toml:"boundary_high"`
}

// SampleLevel grades the confidence a series length supports.
type SampleLevel int

// Sample-size grades
const (
	SampleOK SampleLevel = iota
	SampleWarning
	SampleCritical
)

func (l SampleLevel) String() string {
	switch l {
	case SampleWarning:
		return "warning"
	case SampleCritical:
		return "critical"
	default:
		return "ok"
	}
}

// TrendCheck flags a linear trend that can inflate persistence toward 1.
type TrendCheck struct {
	Triggered bool
	// OLS slope of value on time
	Slope float64
	// |t| of the time term once two lagged levels are in the regression
	NormalizedSlope float64
	// Two-sided p-value of that t statistic
	PValue  float64
	Modulus float64
}

// SampleSizeCheck grades the series length.
type SampleSizeCheck struct {
	Triggered bool
	Level     SampleLevel
	N         int
}

// HigherOrderCheck compares AR(2) to AR(3) on a common sample.
type HigherOrderCheck struct {
	Triggered bool
	// False when the series was too short or a fit was degenerate
	Evaluated bool
	AIC2      float64
	AIC3      float64
	// AIC2 - AIC3, positive favors AR(3)
	DeltaAIC float64
	// R2(AR3) - R2(AR2)
	DeltaR2 float64
	// Dominant root modulus of the AR(3) fit
	AR3Modulus float64
}

// NonlinearityCheck looks for non-Gaussian residuals.
type NonlinearityCheck struct {
	Triggered      bool
	Evaluated      bool
	Skewness       float64
	ExcessKurtosis float64
}

// BoundaryCheck flags moduli too close to the unit circle to call.
type BoundaryCheck struct {
	Triggered bool
	Modulus   float64
}

// Report carries all five checks for one fit. It never invalidates the fit.
type Report struct {
	Trend        TrendCheck
	SampleSize   SampleSizeCheck
	HigherOrder  HigherOrderCheck
	Nonlinearity NonlinearityCheck
	Boundary     BoundaryCheck
}

// HealthScore summarizes how many genes of a dataset produced trustworthy fits.
type HealthScore struct {
	Genes     int
	ValidFits int
	// Genes with a valid fit but a critical sample size or boundary flag
	Flagged int
	// (ValidFits - Flagged) / Genes, 0 for an empty dataset
	Score float64
}
