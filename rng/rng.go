// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package rng holds the random source shared by the shuffling, bootstrap and
// Monte Carlo loops. Every loop takes its source as an argument so tests can
// pin a seed and compare exact distributions.
package rng

import (
	"math/rand"
	"time"
)

// Source is the subset of *rand.Rand used by the engine.
// *rand.Rand satisfies it, a *rand.Rand is not goroutine-safe so one Source
// must never be shared across workers.
type Source interface {
	Intn(n int) int
	Int63() int64
	Float64() float64
	NormFloat64() float64
	Shuffle(n int, swap func(i, j int))
}

// New returns a seeded *rand.Rand.
// If seed is 0 a time-based seed is used, so repeated runs differ.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Resolve returns src when it is set, otherwise a fresh source from seed.
func Resolve(src Source, seed int64) Source {
	if src != nil {
		return src
	}
	return New(seed)
}

// Seeds draws n per-iteration seeds from the master source up front, so the
// outcome of iteration i does not depend on how iterations are scheduled.
func Seeds(master Source, n int) []int64 {
	seeds := make([]int64, n)
	for i := 0; i < n; i++ {
		seeds[i] = DeriveSeed(master.Int63(), uint64(i))
	}
	return seeds
}

// DeriveSeed mixes a parent seed with a stream id (SplitMix64 finalizer).
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	// rand.NewSource treats 0 like any other seed, but New does not.
	if x == 0 {
		x = 1
	}
	return int64(x)
}

// Uniform returns a draw in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}
