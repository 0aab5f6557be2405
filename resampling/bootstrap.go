// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package resampling

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"Circadian_Persistence_AR_Project/internal/logging"
	"Circadian_Persistence_AR_Project/rng"
	"Circadian_Persistence_AR_Project/series"
)

// BlockBootstrap resamples every series from contiguous blocks drawn with
// replacement, refits, and builds bias-corrected percentile intervals for the
// gap, both group means, and every gene's modulus. A BlockLength of 0 uses
// ceil(sqrt(n)) for each series of length n.
func BlockBootstrap(gs *GeneSet, opts BootstrapOptions) (*BootstrapResult, error) {
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	base, err := opts.Options.withDefaults(DefaultBootstraps)
	if err != nil {
		return nil, err
	}
	if opts.BlockLength < 0 {
		return nil, ErrBlockLength
	}
	log := logging.OrDiscard(base.Logger)

	// 1. Point estimates on the original series
	aVals, aNames := moduli(gs.Universe, gs.A.Members)
	bVals, bNames := moduli(gs.Universe, gs.B.Members)
	observed := math.NaN()
	meanA, meanB := math.NaN(), math.NaN()
	if len(aVals) >= minGroupMembersValid && len(bVals) >= minGroupMembersValid {
		observed = base.Statistic(aVals, bVals)
		meanA = stat.Mean(aVals, nil)
		meanB = stat.Mean(bVals, nil)
	}
	point := make(map[string]float64, len(aNames)+len(bNames))
	for i, g := range aNames {
		point[g] = aVals[i]
	}
	for i, g := range bNames {
		point[g] = bVals[i]
	}

	// 2. Bootstrap draws
	draws, err := runDraws(base, func(src rng.Source) draw {
		return groupDraw(gs, base.Statistic, true, func(y []float64) []float64 {
			return series.BlockResample(y, blockLength(len(y), opts.BlockLength), src)
		})
	})
	if err != nil {
		return nil, err
	}

	// 3. Collect valid draws
	gaps := make([]float64, 0, len(draws))
	means := [2][]float64{}
	geneDraws := make(map[string][]float64)
	skipped, below := 0, 0
	for i, d := range draws {
		if !d.ok || math.IsNaN(d.gap) || math.IsInf(d.gap, 0) {
			skipped++
			log.WithFields(logrus.Fields{"method": "block-bootstrap", "iteration": i}).Debug("iteration skipped")
			continue
		}
		gaps = append(gaps, d.gap)
		means[0] = append(means[0], d.meanA)
		means[1] = append(means[1], d.meanB)
		if d.gap < 0 {
			below++
		}
		for g, r := range d.genes {
			geneDraws[g] = append(geneDraws[g], r)
		}
	}

	// 4. Bias-corrected intervals
	res := &BootstrapResult{
		Observed:         observed,
		Alpha:            base.Alpha,
		Gap:              biasCorrectedCI(observed, gaps, base.Alpha),
		MeanA:            biasCorrectedCI(meanA, means[0], base.Alpha),
		MeanB:            biasCorrectedCI(meanB, means[1], base.Alpha),
		Genes:            make(map[string]CI, len(geneDraws)),
		ProbGapBelowZero: math.NaN(),
		Gaps:             gaps,
		Valid:            len(gaps),
		Attempted:        len(draws),
		Skipped:          skipped,
	}
	if len(gaps) > 0 {
		res.ProbGapBelowZero = float64(below) / float64(len(gaps))
	}
	for _, members := range [][]string{gs.A.Members, gs.B.Members} {
		for _, g := range members {
			samples, ok := geneDraws[g]
			if !ok {
				continue
			}
			p, ok := point[g]
			if !ok {
				p = math.NaN()
			}
			res.Genes[g] = biasCorrectedCI(p, samples, base.Alpha)
		}
	}
	res.Outcome = outcome(observed, res.Valid, res.Attempted, res.Gap.Excludes(0))

	log.WithFields(logrus.Fields{
		"method":       "block-bootstrap",
		"block_length": opts.BlockLength,
		"gap":          observed,
		"ci_lower":     res.Gap.Lower,
		"ci_upper":     res.Gap.Upper,
		"valid":        res.Valid,
		"attempted":    res.Attempted,
	}).Info("block bootstrap complete")
	return res, nil
}

// blockLength returns fixed when set, otherwise ceil(sqrt(n)).
func blockLength(n, fixed int) int {
	if fixed > 0 {
		return fixed
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}
