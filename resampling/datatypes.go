// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

package resampling

import (
	"errors"

	"github.com/sirupsen/logrus"

	"Circadian_Persistence_AR_Project/rng"
)

// Setup errors, returned before any iteration runs.
var (
	ErrEmptyGroup   = errors.New("group has no members")
	ErrOverlap      = errors.New("groups share a gene")
	ErrUnknownGene  = errors.New("gene not in universe")
	ErrDuplicate    = errors.New("gene listed twice in a group")
	ErrInvalidAlpha = errors.New("alpha must lie in (0, 1)")
	ErrBlockLength  = errors.New("block length must not be negative")
)

// Default iteration counts and test level
const (
	DefaultPermutations = 1000
	DefaultBootstraps   = 2000
	// 0 selects ceil(sqrt(n)) per series
	DefaultBlockLength   = 0
	DefaultAlpha         = 0.05
	minGroupMembersValid = 2
)

// Group is a named list of gene identifiers.
type Group struct {
	Name    string
	Members []string
}

// GeneSet is the input to every validator: a universe of gene series and two
// disjoint groups drawn from it. It is read-only during a run.
type GeneSet struct {
	Universe map[string][]float64
	A        Group
	B        Group
}

// Statistic compares the valid moduli of group A with those of group B.
type Statistic func(a, b []float64) float64

// Options configure a permutation run. Zero values select defaults.
type Options struct {
	// Number of iterations (0 = default for the method)
	Iterations int
	// Master seed, 0 means time-based. Ignored when Source is set.
	Seed int64
	// Injected master source for reproducible tests
	Source rng.Source
	// Concurrent iterations, <= 1 runs single-threaded
	Workers int
	// Significance level, also the CI level for the bootstrap (0 = 0.05)
	Alpha float64
	// Group comparison, defaults to MeanGap
	Statistic Statistic
	// Optional logger, nil discards
	Logger logrus.FieldLogger
}

// BootstrapOptions extend Options with the block length.
type BootstrapOptions struct {
	Options
	// Contiguous block length (0 = ceil(sqrt(n)) per series)
	BlockLength int
}

// Outcome separates a real null result from a run without enough data.
type Outcome int

// Run outcomes
const (
	NotSignificant Outcome = iota
	Significant
	Insufficient
)

func (o Outcome) String() string {
	switch o {
	case Significant:
		return "significant"
	case Insufficient:
		return "insufficient"
	default:
		return "not-significant"
	}
}

// NullDistribution is the set of statistics produced by valid iterations.
type NullDistribution struct {
	Observed float64
	// One value per valid iteration, in iteration order
	Values []float64
	// Iterations attempted, valid or not
	Attempted int
}

// PermutationResult reports a time-shuffle or random-label test.
type PermutationResult struct {
	Method   string
	Observed float64
	Null     *NullDistribution
	// One-sided Laplace-corrected p-value, P(null >= observed)
	PValue float64
	// P(|null| >= |observed|)
	TwoSidedPValue float64
	// Share of null values with the observed sign
	SignPreserved float64
	ZScore        float64
	// Members of each group with a valid observed fit
	SizeA     int
	SizeB     int
	Valid     int
	Attempted int
	Skipped   int
	Outcome   Outcome
}

// CI is a percentile confidence interval around a point estimate.
type CI struct {
	Point float64
	Lower float64
	Upper float64
}

// Excludes reports whether v lies outside [Lower, Upper].
func (c CI) Excludes(v float64) bool {
	return v < c.Lower || v > c.Upper
}

// BootstrapResult reports a block bootstrap run.
type BootstrapResult struct {
	Observed float64
	Alpha    float64
	Gap      CI
	MeanA    CI
	MeanB    CI
	// Per-gene modulus intervals
	Genes map[string]CI
	// Share of valid iterations with gap < 0
	ProbGapBelowZero float64
	Gaps             []float64
	Valid            int
	Attempted        int
	Skipped          int
	Outcome          Outcome
}
