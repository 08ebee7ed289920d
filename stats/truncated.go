// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/aclements/go-randmix/mathx"
)

// Truncated is an atom conditioned to lie in [Lo, Hi].
//
// Construct a Truncated with NewTruncated.
type Truncated struct {
	Atom   Atom
	Lo, Hi float64

	below float64 // P(X < Lo)
	mass  float64 // P(Lo <= X <= Hi)

	mean, variance float64
}

// integrateTol is the tolerance used for the numerical moments and
// characteristic function of continuous truncated atoms.
const integrateTol = 1e-12

// NewTruncated returns a conditioned to [lo, hi]. It panics if lo > hi
// or if a puts no probability in [lo, hi].
func NewTruncated(a Atom, lo, hi float64) *Truncated {
	if lo > hi {
		panic("truncation bounds out of order")
	}
	t := &Truncated{Atom: a, Lo: lo, Hi: hi}
	t.below = a.CDF(lo)
	if a.Kind() != Continuous {
		t.below -= a.PDF(lo)
	}
	t.mass = a.CDF(hi) - t.below
	if !(t.mass > 0) {
		panic("truncation interval has zero probability")
	}
	m1 := t.expect(func(x float64) float64 { return x })
	m2 := t.expect(func(x float64) float64 { return (x - m1) * (x - m1) })
	t.mean, t.variance = m1, m2
	return t
}

// Simplify returns an untruncated atom equivalent to t, if there is
// one.
func (t *Truncated) Simplify() (Atom, bool) {
	r := t.Atom.Range()
	if t.Lo <= r.Lo && r.Hi <= t.Hi {
		return t.Atom, true
	}
	if u, ok := t.Atom.(Uniform); ok {
		return Uniform{math.Max(u.Min, t.Lo), math.Min(u.Max, t.Hi)}, true
	}
	if r := t.Range(); r.Lo == r.Hi {
		return Dirac{r.Lo}, true
	}
	return nil, false
}

// span returns the finite interval over which t carries its mass.
func (t *Truncated) span() (float64, float64) {
	lo, hi := t.Atom.Bounds()
	return math.Max(lo, t.Lo), math.Min(hi, t.Hi)
}

// expect returns E[f(X)] under t.
func (t *Truncated) expect(f func(float64) float64) float64 {
	if d, ok := t.Atom.(DiscreteAtom); ok && t.Atom.Kind() == Discrete {
		xs, ps := d.Support()
		s := 0.0
		for i, x := range xs {
			if t.Lo <= x && x <= t.Hi {
				s += ps[i] * f(x)
			}
		}
		return s / t.mass
	}
	lo, hi := t.span()
	if lo >= hi {
		return f(lo)
	}
	v, _ := mathx.IntegratePieces(func(x float64) float64 {
		return f(x) * t.Atom.PDF(x)
	}, Within(Breakpoints(t.Atom), lo, hi), integrateTol, integrateTol)
	return v / t.mass
}

func (t *Truncated) PDF(x float64) float64 {
	if x < t.Lo || x > t.Hi {
		return 0
	}
	return t.Atom.PDF(x) / t.mass
}

func (t *Truncated) CDF(x float64) float64 {
	if x < t.Lo {
		return 0
	}
	if x >= t.Hi {
		return 1
	}
	return math.Min(1, (t.Atom.CDF(x)-t.below)/t.mass)
}

func (t *Truncated) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	x := t.Atom.InvCDF(t.below + y*t.mass)
	return math.Max(t.Lo, math.Min(t.Hi, x))
}

func (t *Truncated) CharFunc(t0 float64) complex128 {
	if t0 == 0 {
		return 1
	}
	re := t.expect(func(x float64) float64 { return math.Cos(t0 * x) })
	im := t.expect(func(x float64) float64 { return math.Sin(t0 * x) })
	return complex(re, im)
}

// LogCharFunc returns the principal logarithm of the characteristic
// function.
func (t *Truncated) LogCharFunc(t0 float64) complex128 {
	if t0 == 0 {
		return 0
	}
	return cmplx.Log(t.CharFunc(t0))
}

// Support returns the support of the underlying atom inside [Lo, Hi],
// renormalized, or nil if the atom is not discrete.
func (t *Truncated) Support() (xs, ps []float64) {
	d, ok := t.Atom.(DiscreteAtom)
	if !ok || t.Atom.Kind() != Discrete {
		return nil, nil
	}
	axs, aps := d.Support()
	for i, x := range axs {
		if t.Lo <= x && x <= t.Hi {
			xs = append(xs, x)
			ps = append(ps, aps[i]/t.mass)
		}
	}
	return
}

func (t *Truncated) Range() Interval {
	return t.Atom.Range().Intersect(Interval{t.Lo, t.Hi})
}

func (t *Truncated) Breakpoints() []float64 {
	r := t.Range()
	return Within(Breakpoints(t.Atom), r.Lo, r.Hi)
}

func (t *Truncated) Bounds() (float64, float64) {
	return t.span()
}

func (t *Truncated) Mean() float64     { return t.mean }
func (t *Truncated) Variance() float64 { return t.variance }
func (t *Truncated) Kind() Kind        { return t.Atom.Kind() }

func (t *Truncated) Rand(r *rand.Rand) float64 {
	return randByInversion(t, r)
}
