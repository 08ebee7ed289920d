// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Mixture is a finite mixture of atoms. With probability Weights[i],
// a draw from the mixture is a draw from Atoms[i].
//
// Construct a Mixture with NewMixture.
type Mixture struct {
	Atoms   []Atom
	Weights []float64

	cum []float64
}

// NewMixture returns the mixture of atoms with the given weights,
// normalized to sum to 1. It panics if len(atoms) != len(weights),
// if a weight is negative, or if the weights sum to zero.
func NewMixture(atoms []Atom, weights []float64) *Mixture {
	if len(atoms) != len(weights) {
		panic("len(atoms) != len(weights)")
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("negative mixture weight")
		}
		total += w
	}
	if total == 0 {
		panic("mixture weights sum to zero")
	}
	m := &Mixture{
		Atoms:   append([]Atom(nil), atoms...),
		Weights: make([]float64, len(weights)),
		cum:     make([]float64, len(weights)),
	}
	cum := 0.0
	for i, w := range weights {
		m.Weights[i] = w / total
		cum += m.Weights[i]
		m.cum[i] = cum
	}
	return m
}

func (m *Mixture) PDF(x float64) float64 {
	s := 0.0
	for i, a := range m.Atoms {
		s += m.Weights[i] * a.PDF(x)
	}
	return s
}

func (m *Mixture) CDF(x float64) float64 {
	s := 0.0
	for i, a := range m.Atoms {
		s += m.Weights[i] * a.CDF(x)
	}
	return math.Min(1, s)
}

func (m *Mixture) Survival(x float64) float64 {
	s := 0.0
	for i, a := range m.Atoms {
		s += m.Weights[i] * Survival(a, x)
	}
	return math.Min(1, s)
}

func (m *Mixture) InvCDF(y float64) float64 {
	if m.Kind() == Discrete {
		return NewUserDefined(m.Support()).InvCDF(y)
	}
	return invCDFByBisection(m, y)
}

func (m *Mixture) CharFunc(t float64) complex128 {
	if t == 0 {
		return 1
	}
	var phi complex128
	for i, a := range m.Atoms {
		phi += complex(m.Weights[i], 0) * a.CharFunc(t)
	}
	return phi
}

// Support returns the merged support of the components. It is only
// meaningful when every component is discrete.
func (m *Mixture) Support() (xs, ps []float64) {
	for i, a := range m.Atoms {
		d, ok := a.(DiscreteAtom)
		if !ok || a.Kind() != Discrete {
			return nil, nil
		}
		axs, aps := d.Support()
		for j := range axs {
			xs = append(xs, axs[j])
			ps = append(ps, m.Weights[i]*aps[j])
		}
	}
	return NewUserDefined(xs, ps).Support()
}

func (m *Mixture) Range() Interval {
	r := m.Atoms[0].Range()
	for _, a := range m.Atoms[1:] {
		r = r.Hull(a.Range())
	}
	return r
}

// Breakpoints returns the union of the components' breakpoints. For a
// mixture of shifted copies of one atom, these are the jumps between
// the copies.
func (m *Mixture) Breakpoints() []float64 {
	var pts []float64
	for _, a := range m.Atoms {
		pts = append(pts, Breakpoints(a)...)
	}
	sort.Float64s(pts)
	return dedup(pts)
}

func (m *Mixture) Bounds() (float64, float64) {
	lo, hi := inf, -inf
	for _, a := range m.Atoms {
		l, h := a.Bounds()
		lo, hi = math.Min(lo, l), math.Max(hi, h)
	}
	return lo, hi
}

func (m *Mixture) Mean() float64 {
	s := 0.0
	for i, a := range m.Atoms {
		s += m.Weights[i] * a.Mean()
	}
	return s
}

func (m *Mixture) Variance() float64 {
	mean := m.Mean()
	s := 0.0
	for i, a := range m.Atoms {
		d := a.Mean() - mean
		s += m.Weights[i] * (a.Variance() + d*d)
	}
	return s
}

// Kind returns Continuous or Discrete if every component has that
// kind, and Mixed otherwise.
func (m *Mixture) Kind() Kind {
	k := m.Atoms[0].Kind()
	for _, a := range m.Atoms[1:] {
		if a.Kind() != k {
			return Mixed
		}
	}
	return k
}

func (m *Mixture) Rand(r *rand.Rand) float64 {
	u := r.Float64() * m.cum[len(m.cum)-1]
	for i, c := range m.cum {
		if u < c {
			return m.Atoms[i].Rand(r)
		}
	}
	return m.Atoms[len(m.Atoms)-1].Rand(r)
}
