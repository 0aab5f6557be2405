// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package ar2

import (
	"math"

	"Circadian_Persistence_AR_Project/rng"
)

// defaultBurnIn is the number of discarded warm-up steps in Simulate.
const defaultBurnIn = 200

// Simulate generates n points of x(t) = phi1*x(t-1) + phi2*x(t-2) + e(t),
// e ~ N(0, sigma^2), after a warm-up so the start-up transient is gone.
func Simulate(phi1, phi2, sigma float64, n int, src rng.Source) []float64 {
	if n <= 0 {
		return nil
	}
	total := n + defaultBurnIn
	x := make([]float64, total)
	for t := 0; t < total; t++ {
		v := sigma * src.NormFloat64()
		if t >= 1 {
			v += phi1 * x[t-1]
		}
		if t >= 2 {
			v += phi2 * x[t-2]
		}
		x[t] = v
	}
	out := make([]float64, n)
	copy(out, x[defaultBurnIn:])
	return out
}

// CoefficientsFor returns (phi1, phi2) whose characteristic roots are the
// complex pair modulus*exp(+-i*angle). angle = 0 gives a repeated real root.
func CoefficientsFor(modulus, angle float64) (float64, float64) {
	// x^2 - 2 r cos(theta) x + r^2
	return 2 * modulus * math.Cos(angle), -modulus * modulus
}
