// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package resampling

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"Circadian_Persistence_AR_Project/ar2"
)

// MeanGap is mean(a) - mean(b).
func MeanGap(a, b []float64) float64 {
	return stat.Mean(a, nil) - stat.Mean(b, nil)
}

// Validate checks that both groups are non-empty, duplicate-free, disjoint
// and drawn from the universe.
func (gs *GeneSet) Validate() error {
	if gs == nil {
		return fmt.Errorf("gene set not provided")
	}
	seen := make(map[string]string)
	for _, g := range []Group{gs.A, gs.B} {
		if len(g.Members) == 0 {
			return fmt.Errorf("%q: %w", g.Name, ErrEmptyGroup)
		}
		inGroup := make(map[string]bool, len(g.Members))
		for _, m := range g.Members {
			if inGroup[m] {
				return fmt.Errorf("%q in %q: %w", m, g.Name, ErrDuplicate)
			}
			inGroup[m] = true
			if other, ok := seen[m]; ok {
				return fmt.Errorf("%q in %q and %q: %w", m, other, g.Name, ErrOverlap)
			}
			seen[m] = g.Name
			if _, ok := gs.Universe[m]; !ok {
				return fmt.Errorf("%q in %q: %w", m, g.Name, ErrUnknownGene)
			}
		}
	}
	return nil
}

// moduli fits every named gene and returns the valid moduli in member order,
// plus the gene names that produced them.
func moduli(universe map[string][]float64, members []string) ([]float64, []string) {
	vals := make([]float64, 0, len(members))
	names := make([]string, 0, len(members))
	for _, m := range members {
		r, err := ar2.Modulus(universe[m])
		if err != nil {
			continue
		}
		vals = append(vals, r)
		names = append(names, m)
	}
	return vals, names
}

// universeGenes lists the universe keys in sorted order.
func universeGenes(universe map[string][]float64) []string {
	genes := make([]string, 0, len(universe))
	for g := range universe {
		genes = append(genes, g)
	}
	sort.Strings(genes)
	return genes
}
