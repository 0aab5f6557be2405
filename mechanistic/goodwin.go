// Authors: Rohan Adla, Arrio Gonsalves, Shreyan Nalwad, Dylan Setiawan
// Date: Dec 12th 2025
// Project: An AR(2)-based Computational Analysis of Circadian Gene Persistence
// Class: 02-613 at Caregie Mellon University

// Package mechanistic holds a small clock model used to feed the sensitivity
// engine: a Goodwin negative-feedback loop with Michaelis-Menten degradation
// and one clock-controlled target gene.
package mechanistic

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrDiverged is returned when the integrated state stops being finite.
var ErrDiverged = errors.New("simulation diverged")

// ErrUnknownParameter is returned for a parameter name the model does not use.
var ErrUnknownParameter = errors.New("unknown model parameter")

// Output variable names
const (
	VarMRNA    = "X"
	VarProtein = "Y"
	VarNuclear = "Z"
	VarTarget  = "target"
)

// DefaultParams returns the baseline Goodwin parameters.
//
//	dX/dt = v1 K1^n / (K1^n + Z^n) - v2 X / (K2 + X)
//	dY/dt = k3 X - v4 Y / (K4 + Y)
//	dZ/dt = k5 Y - v6 Z / (K6 + Z)
//	dT/dt = k7 X - k8 T
func DefaultParams() map[string]float64 {
	return map[string]float64{
		"v1": 0.7, "K1": 1, "n": 4,
		"v2": 0.35, "K2": 1,
		"k3": 0.7, "v4": 0.35, "K4": 1,
		"k5": 0.7, "v6": 0.35, "K6": 1,
		"k7": 0.7, "k8": 0.35,
	}
}

// Goodwin integrates the model with fixed-step RK4 and samples every variable
// at a fixed interval after a transient.
type Goodwin struct {
	// Integration step in hours (0 = 0.05)
	Step float64
	// Discarded warm-up in hours (0 = 240)
	Transient float64
	// Recorded window in hours (0 = 240)
	Duration float64
	// Sampling interval in hours (0 = 1)
	Interval float64
	// Initial state X, Y, Z, T (zero value = 0.1 each)
	Initial [4]float64
}

// NewGoodwin returns a model with the default time grid.
func NewGoodwin() *Goodwin {
	return &Goodwin{Step: 0.05, Transient: 240, Duration: 240, Interval: 1}
}

// goodwinParams is the resolved parameter set.
type goodwinParams struct {
	v1, k1, n, v2, k2, k3, v4, k4, k5, v6, k6, k7, k8 float64
}

func resolveParams(params map[string]float64) (goodwinParams, error) {
	merged := DefaultParams()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := merged[k]; !ok {
			return goodwinParams{}, fmt.Errorf("%q: %w", k, ErrUnknownParameter)
		}
		merged[k] = params[k]
	}
	return goodwinParams{
		v1: merged["v1"], k1: merged["K1"], n: merged["n"],
		v2: merged["v2"], k2: merged["K2"],
		k3: merged["k3"], v4: merged["v4"], k4: merged["K4"],
		k5: merged["k5"], v6: merged["v6"], k6: merged["K6"],
		k7: merged["k7"], k8: merged["k8"],
	}, nil
}

// derivative evaluates the right-hand side at state s.
func (p goodwinParams) derivative(s [4]float64) [4]float64 {
	x, y, z, t := s[0], s[1], s[2], s[3]
	// the Hill term is only defined for non-negative repressor
	zn := math.Pow(math.Max(z, 0), p.n)
	kn := math.Pow(p.k1, p.n)
	return [4]float64{
		p.v1*kn/(kn+zn) - p.v2*x/(p.k2+x),
		p.k3*x - p.v4*y/(p.k4+y),
		p.k5*y - p.v6*z/(p.k6+z),
		p.k7*x - p.k8*t,
	}
}

// rk4Step advances s by one step of size h.
func (p goodwinParams) rk4Step(s [4]float64, h float64) [4]float64 {
	add := func(a, b [4]float64, scale float64) [4]float64 {
		var out [4]float64
		for i := range a {
			out[i] = a[i] + scale*b[i]
		}
		return out
	}
	k1 := p.derivative(s)
	k2 := p.derivative(add(s, k1, h/2))
	k3 := p.derivative(add(s, k2, h/2))
	k4 := p.derivative(add(s, k3, h))

	var out [4]float64
	for i := range s {
		out[i] = s[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

// Simulate integrates the model under params (missing names keep their
// defaults) and returns one sampled series per variable.
func (g *Goodwin) Simulate(params map[string]float64) (map[string][]float64, error) {
	p, err := resolveParams(params)
	if err != nil {
		return nil, err
	}

	h := g.Step
	if h <= 0 {
		h = 0.05
	}
	transient := g.Transient
	if transient <= 0 {
		transient = 240
	}
	duration := g.Duration
	if duration <= 0 {
		duration = 240
	}
	interval := g.Interval
	if interval <= 0 {
		interval = 1
	}

	state := g.Initial
	if state == [4]float64{} {
		state = [4]float64{0.1, 0.1, 0.1, 0.1}
	}

	// 1. Burn off the transient
	for t := 0.0; t < transient; t += h {
		state = p.rk4Step(state, h)
		if !finiteState(state) {
			return nil, fmt.Errorf("during transient at t = %.2f: %w", t, ErrDiverged)
		}
	}

	// 2. Record one sample per interval
	samples := int(math.Round(duration / interval))
	perSample := int(math.Max(1, math.Round(interval/h)))
	out := map[string][]float64{
		VarMRNA:    make([]float64, samples),
		VarProtein: make([]float64, samples),
		VarNuclear: make([]float64, samples),
		VarTarget:  make([]float64, samples),
	}
	for i := 0; i < samples; i++ {
		out[VarMRNA][i] = state[0]
		out[VarProtein][i] = state[1]
		out[VarNuclear][i] = state[2]
		out[VarTarget][i] = state[3]
		for j := 0; j < perSample; j++ {
			state = p.rk4Step(state, h)
		}
		if !finiteState(state) {
			return nil, fmt.Errorf("at sample %d: %w", i, ErrDiverged)
		}
	}
	return out, nil
}

func finiteState(s [4]float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
