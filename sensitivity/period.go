// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package sensitivity

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MinPeriodLength is the shortest series DetectPeriod will look at.
const MinPeriodLength = 10

func (o PeakOptions) withDefaults() PeakOptions {
	if o.MinSpacing <= 0 {
		o.MinSpacing = 3
	}
	if o.AmplitudeFraction <= 0 {
		o.AmplitudeFraction = 0.05
	}
	if o.CVFloor <= 0 {
		o.CVFloor = 0.01
	}
	return o
}

// DetectPeriod estimates the oscillation period of y by peak detection.
// interval is the sampling interval; the period is returned in its units.
// ok is false for a short series, a flat one (coefficient of variation below
// the floor), or fewer than two qualifying peaks.
func DetectPeriod(y []float64, interval float64, opts PeakOptions) (float64, bool) {
	opts = opts.withDefaults()
	n := len(y)
	if n < MinPeriodLength {
		return 0, false
	}
	if interval <= 0 {
		interval = 1
	}

	mean, std := stat.MeanStdDev(y, nil)
	if math.IsNaN(std) || std == 0 {
		return 0, false
	}
	if mean != 0 && std/math.Abs(mean) < opts.CVFloor {
		return 0, false
	}
	threshold := mean + opts.AmplitudeFraction*math.Abs(mean)

	// 1. Local maxima above the amplitude threshold
	var peaks []int
	for i := 1; i < n-1; i++ {
		if !(y[i] > y[i-1] && y[i] >= y[i+1]) || y[i] <= threshold {
			continue
		}
		last := len(peaks) - 1
		if last >= 0 && i-peaks[last] < opts.MinSpacing {
			// too close: keep the higher peak
			if y[i] > y[peaks[last]] {
				peaks[last] = i
			}
			continue
		}
		peaks = append(peaks, i)
	}
	if len(peaks) < 2 {
		return 0, false
	}

	// 2. Mean inter-peak distance
	span := float64(peaks[len(peaks)-1] - peaks[0])
	return span / float64(len(peaks)-1) * interval, true
}
