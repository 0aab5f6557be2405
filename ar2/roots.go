// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package ar2

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// angleTolerance is how close to 0 a phase angle may be before the period is
// considered undefined.
const angleTolerance = 1e-12

// DefaultBands are the audited persistence cutoffs 0.40 / 0.80 / 0.90.
var DefaultBands = Bands{StableLow: 0.40, StableHigh: 0.80, UnstableLow: 0.90}

// Roots classifies the fit's characteristic roots. interval is the sampling
// interval in time units; values <= 0 are treated as 1.
func (f *AR2Fit) Roots(interval float64) RootDescriptor {
	return Classify(f.Phi1, f.Phi2, interval)
}

// Classify solves x^2 - phi1*x - phi2 = 0 and describes the dominant root.
//
// Complex roots (D < 0): modulus sqrt(-phi2), angle atan2(sqrt(-D), phi1),
// period 2*pi/angle*interval.
// Real roots (D >= 0): modulus max(|r1|, |r2|), angle 0 or pi depending on
// the sign of the dominant root, no period.
func Classify(phi1, phi2, interval float64) RootDescriptor {
	if interval <= 0 {
		interval = 1
	}
	d := phi1*phi1 + 4*phi2
	rd := RootDescriptor{
		Phi1:         phi1,
		Phi2:         phi2,
		Discriminant: d,
		Interval:     interval,
		Period:       math.NaN(),
	}

	if d < 0 {
		// complex conjugate pair
		im := math.Sqrt(-d)
		rd.IsComplex = true
		rd.Modulus = math.Sqrt(-phi2)
		rd.Angle = math.Atan2(im, phi1)
		rd.Roots = [2]complex128{complex(phi1/2, im/2), complex(phi1/2, -im/2)}
		if rd.Angle > angleTolerance {
			rd.Period = 2 * math.Pi / rd.Angle * interval
			rd.HasPeriod = true
		}
	} else {
		sq := math.Sqrt(d)
		r1 := (phi1 + sq) / 2
		r2 := (phi1 - sq) / 2
		rd.Roots = [2]complex128{complex(r1, 0), complex(r2, 0)}
		dominant := r1
		if math.Abs(r2) > math.Abs(r1) {
			dominant = r2
		}
		rd.Modulus = math.Abs(dominant)
		if dominant < 0 {
			rd.Angle = math.Pi
		}
	}

	rd.DampingRate = dampingRate(rd.Modulus)
	return rd
}

// Stability returns the band of the descriptor under DefaultBands.
func (rd RootDescriptor) Stability() Stability {
	return DefaultBands.Classify(rd.Modulus)
}

// dampingRate is -ln(modulus), +Inf for a zero modulus.
func dampingRate(modulus float64) float64 {
	if modulus <= 0 {
		return math.Inf(1)
	}
	return -math.Log(modulus)
}

// Validate checks that the cutoffs are ordered 0 <= low <= high <= unstable.
func (b Bands) Validate() error {
	if b.StableLow < 0 || b.StableLow > b.StableHigh || b.StableHigh > b.UnstableLow {
		return fmt.Errorf("bands must satisfy 0 <= stable_low <= stable_high <= unstable_low, got %.3f / %.3f / %.3f",
			b.StableLow, b.StableHigh, b.UnstableLow)
	}
	return nil
}

// Classify assigns a modulus to its band. Edges are exact cutoffs.
func (b Bands) Classify(modulus float64) Stability {
	switch {
	case modulus >= b.StableLow && modulus <= b.StableHigh:
		return Stable
	case modulus > b.StableHigh && modulus < b.UnstableLow:
		return Transitional
	default:
		return Unstable
	}
}

// CompanionRoots returns the characteristic roots of an AR(p) model as the
// eigenvalues of its companion matrix, sorted by decreasing modulus.
func CompanionRoots(coeffs []float64) ([]complex128, error) {
	p := len(coeffs)
	if p == 0 {
		return nil, fmt.Errorf("no coefficients")
	}

	// First row holds the coefficients, the sub-diagonal is identity.
	C := mat.NewDense(p, p, nil)
	for j := 0; j < p; j++ {
		C.Set(0, j, coeffs[j])
	}
	for i := 1; i < p; i++ {
		C.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(C, mat.EigenNone); !ok {
		return nil, fmt.Errorf("eigen decomposition of the AR(%d) companion matrix failed", p)
	}
	roots := eig.Values(nil)
	sort.Slice(roots, func(i, j int) bool {
		return cmplx.Abs(roots[i]) > cmplx.Abs(roots[j])
	})
	return roots, nil
}

// DominantModulus returns the largest root modulus of an AR(p) model.
func DominantModulus(coeffs []float64) (float64, error) {
	roots, err := CompanionRoots(coeffs)
	if err != nil {
		return 0, err
	}
	return cmplx.Abs(roots[0]), nil
}
