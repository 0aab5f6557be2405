// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package resampling

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"Circadian_Persistence_AR_Project/ar2"
	"Circadian_Persistence_AR_Project/rng"
)

// draw is the outcome of one iteration.
type draw struct {
	ok    bool
	gap   float64
	meanA float64
	meanB float64
	// per-gene moduli, only filled by the bootstrap
	genes map[string]float64
}

// withDefaults fills zero-valued options and rejects invalid ones.
func (o Options) withDefaults(iterations int) (Options, error) {
	if o.Iterations <= 0 {
		o.Iterations = iterations
	}
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	if o.Alpha < 0 || o.Alpha >= 1 {
		return o, fmt.Errorf("alpha = %v: %w", o.Alpha, ErrInvalidAlpha)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Statistic == nil {
		o.Statistic = MeanGap
	}
	return o, nil
}

// runDraws executes fn once per iteration. Seeds are drawn from the master
// source before any work starts and each iteration gets its own source, so
// the draws are identical for any worker count.
func runDraws(opts Options, fn func(src rng.Source) draw) ([]draw, error) {
	master := rng.Resolve(opts.Source, opts.Seed)
	seeds := rng.Seeds(master, opts.Iterations)

	draws := make([]draw, opts.Iterations)

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i := 0; i < opts.Iterations; i++ {
		i := i
		g.Go(func() error {
			draws[i] = fn(rng.New(seeds[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return draws, nil
}

// groupDraw refits every member after perturb and compares the groups.
// Members whose fit fails are left out. Fewer than two valid members in
// either group makes the iteration invalid.
func groupDraw(gs *GeneSet, statistic Statistic, keepGenes bool, perturb func(y []float64) []float64) draw {
	var d draw
	if keepGenes {
		d.genes = make(map[string]float64, len(gs.A.Members)+len(gs.B.Members))
	}

	collect := func(members []string) []float64 {
		vals := make([]float64, 0, len(members))
		for _, m := range members {
			y := perturb(gs.Universe[m])
			r, err := ar2.Modulus(y)
			if err != nil {
				continue
			}
			vals = append(vals, r)
			if keepGenes {
				d.genes[m] = r
			}
		}
		return vals
	}

	a := collect(gs.A.Members)
	b := collect(gs.B.Members)
	if len(a) < minGroupMembersValid || len(b) < minGroupMembersValid {
		return d
	}

	d.ok = true
	d.gap = statistic(a, b)
	d.meanA = stat.Mean(a, nil)
	d.meanB = stat.Mean(b, nil)
	return d
}
