// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package resampling tests whether a persistence gap between two gene groups
// is real: temporal-order permutation, random group labels, and a block
// bootstrap for confidence intervals.
package resampling

import (
	"math"

	"github.com/sirupsen/logrus"

	"Circadian_Persistence_AR_Project/internal/logging"
	"Circadian_Persistence_AR_Project/rng"
	"Circadian_Persistence_AR_Project/series"
)

// Method names reported in PermutationResult.Method
const (
	MethodTimeShuffle = "time-shuffle"
	MethodRandomLabel = "random-label"
)

// observedGap fits both groups on their original series.
func observedGap(gs *GeneSet, statistic Statistic) (float64, int, int) {
	a, _ := moduli(gs.Universe, gs.A.Members)
	b, _ := moduli(gs.Universe, gs.B.Members)
	if len(a) < minGroupMembersValid || len(b) < minGroupMembersValid {
		return math.NaN(), len(a), len(b)
	}
	return statistic(a, b), len(a), len(b)
}

// TimeShuffle destroys temporal structure: every iteration permutes each
// gene's own series, refits it and recomputes the group statistic.
// A small p-value means the observed gap depends on temporal order.
func TimeShuffle(gs *GeneSet, opts Options) (*PermutationResult, error) {
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.withDefaults(DefaultPermutations)
	if err != nil {
		return nil, err
	}

	// 1. Observed statistic
	observed, nA, nB := observedGap(gs, opts.Statistic)

	// 2. Null draws
	draws, err := runDraws(opts, func(src rng.Source) draw {
		return groupDraw(gs, opts.Statistic, false, func(y []float64) []float64 {
			return series.Shuffle(y, src)
		})
	})
	if err != nil {
		return nil, err
	}

	return permutationResult(MethodTimeShuffle, observed, nA, nB, draws, opts), nil
}

// RandomLabel asks whether the observed gap exceeds what arbitrary gene groups
// of the same sizes produce. Moduli of the whole universe are computed once,
// then each iteration draws two disjoint random groups of the observed valid
// sizes.
func RandomLabel(gs *GeneSet, opts Options) (*PermutationResult, error) {
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.withDefaults(DefaultPermutations)
	if err != nil {
		return nil, err
	}

	// 1. Observed statistic
	observed, nA, nB := observedGap(gs, opts.Statistic)

	// 2. Precompute the universe moduli in sorted gene order
	pool, _ := moduli(gs.Universe, universeGenes(gs.Universe))

	// 3. Null draws
	draws, err := runDraws(opts, func(src rng.Source) draw {
		if nA < minGroupMembersValid || nB < minGroupMembersValid || nA+nB > len(pool) {
			return draw{}
		}
		idx := make([]int, len(pool))
		for i := range idx {
			idx[i] = i
		}
		src.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		a := make([]float64, nA)
		b := make([]float64, nB)
		for i := 0; i < nA; i++ {
			a[i] = pool[idx[i]]
		}
		for i := 0; i < nB; i++ {
			b[i] = pool[idx[nA+i]]
		}
		return draw{ok: true, gap: opts.Statistic(a, b)}
	})
	if err != nil {
		return nil, err
	}

	return permutationResult(MethodRandomLabel, observed, nA, nB, draws, opts), nil
}

// permutationResult collects the valid draws into a null distribution.
func permutationResult(method string, observed float64, nA, nB int, draws []draw, opts Options) *PermutationResult {
	log := logging.OrDiscard(opts.Logger)

	null := &NullDistribution{Observed: observed, Attempted: len(draws)}
	skipped := 0
	for i, d := range draws {
		if !d.ok || math.IsNaN(d.gap) || math.IsInf(d.gap, 0) {
			skipped++
			log.WithFields(logrus.Fields{"method": method, "iteration": i}).Debug("iteration skipped")
			continue
		}
		null.Values = append(null.Values, d.gap)
	}

	res := &PermutationResult{
		Method:         method,
		Observed:       observed,
		Null:           null,
		PValue:         null.PValue(),
		TwoSidedPValue: null.TwoSided(),
		SignPreserved:  null.SignPreserved(),
		ZScore:         null.ZScore(),
		SizeA:          nA,
		SizeB:          nB,
		Valid:          null.Valid(),
		Attempted:      null.Attempted,
		Skipped:        skipped,
	}
	res.Outcome = outcome(observed, res.Valid, res.Attempted, res.PValue < opts.Alpha)

	log.WithFields(logrus.Fields{
		"method":    method,
		"observed":  observed,
		"p_value":   res.PValue,
		"valid":     res.Valid,
		"attempted": res.Attempted,
		"outcome":   res.Outcome.String(),
	}).Info("permutation test complete")
	return res
}
