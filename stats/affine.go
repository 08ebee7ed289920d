// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// Affine is the distribution of Shift + Scale*X where X is distributed
// as Atom. Scale must be non-zero.
type Affine struct {
	Atom  Atom
	Scale float64
	Shift float64
}

func (a Affine) inv(y float64) float64 {
	return (y - a.Shift) / a.Scale
}

// PDF returns the density at y, or the mass at y if the underlying
// atom is discrete.
func (a Affine) PDF(y float64) float64 {
	p := a.Atom.PDF(a.inv(y))
	if a.Atom.Kind() == Discrete {
		return p
	}
	return p / math.Abs(a.Scale)
}

func (a Affine) CDF(y float64) float64 {
	x := a.inv(y)
	if a.Scale > 0 {
		return a.Atom.CDF(x)
	}
	p := Survival(a.Atom, x)
	if a.Atom.Kind() != Continuous {
		p += a.Atom.PDF(x)
	}
	return math.Min(1, p)
}

func (a Affine) Survival(y float64) float64 {
	x := a.inv(y)
	if a.Scale > 0 {
		return Survival(a.Atom, x)
	}
	p := a.Atom.CDF(x)
	if a.Atom.Kind() != Continuous {
		p -= a.Atom.PDF(x)
	}
	return math.Max(0, p)
}

func (a Affine) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	if a.Scale > 0 {
		return a.Shift + a.Scale*a.Atom.InvCDF(y)
	}
	return a.Shift + a.Scale*a.Atom.InvCDF(1-y)
}

func (a Affine) CharFunc(t float64) complex128 {
	return cmplx.Exp(a.LogCharFunc(t))
}

func (a Affine) LogCharFunc(t float64) complex128 {
	if t == 0 {
		return 0
	}
	return complex(0, t*a.Shift) + LogCharFunc(a.Atom, a.Scale*t)
}

// Support returns the transformed support of the underlying atom, or
// nil if it is not discrete.
func (a Affine) Support() (xs, ps []float64) {
	d, ok := a.Atom.(DiscreteAtom)
	if !ok || a.Atom.Kind() != Discrete {
		return nil, nil
	}
	axs, aps := d.Support()
	xs = make([]float64, len(axs))
	ps = make([]float64, len(aps))
	for i := range axs {
		j := i
		if a.Scale < 0 {
			j = len(axs) - 1 - i
		}
		xs[j] = a.Shift + a.Scale*axs[i]
		ps[j] = aps[i]
	}
	return
}

func (a Affine) Range() Interval {
	return a.Atom.Range().Scale(a.Scale).Shift(a.Shift)
}

// Breakpoints returns the image of the underlying atom's breakpoints.
func (a Affine) Breakpoints() []float64 {
	bs := Breakpoints(a.Atom)
	out := make([]float64, len(bs))
	for i, b := range bs {
		j := i
		if a.Scale < 0 {
			j = len(bs) - 1 - i
		}
		out[j] = a.Shift + a.Scale*b
	}
	return out
}

func (a Affine) Bounds() (float64, float64) {
	lo, hi := a.Atom.Bounds()
	lo, hi = a.Shift+a.Scale*lo, a.Shift+a.Scale*hi
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (a Affine) Mean() float64     { return a.Shift + a.Scale*a.Atom.Mean() }
func (a Affine) Variance() float64 { return a.Scale * a.Scale * a.Atom.Variance() }
func (a Affine) Kind() Kind        { return a.Atom.Kind() }

func (a Affine) Rand(r *rand.Rand) float64 {
	return a.Shift + a.Scale*a.Atom.Rand(r)
}
