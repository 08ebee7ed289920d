// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Poisson is the Poisson distribution with rate Lambda.
type Poisson struct {
	Lambda float64
}

func (p Poisson) dist() distuv.Poisson {
	return distuv.Poisson{Lambda: p.Lambda}
}

// PDF returns the probability mass at x, which is 0 unless x is a
// non-negative integer.
func (p Poisson) PDF(x float64) float64 {
	k, ok := nearestInt(x)
	if !ok || k < 0 {
		return 0
	}
	return p.dist().Prob(k)
}

func (p Poisson) CDF(x float64) float64 {
	if k, ok := nearestInt(x); ok {
		x = k
	}
	if x < 0 {
		return 0
	}
	return p.dist().CDF(math.Floor(x))
}

func (p Poisson) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	xs, ps := p.Support()
	cum := 0.0
	for i, x := range xs {
		cum += ps[i]
		if cum >= y {
			return x
		}
	}
	return xs[len(xs)-1]
}

func (p Poisson) CharFunc(t float64) complex128 {
	return cmplx.Exp(p.LogCharFunc(t))
}

func (p Poisson) LogCharFunc(t float64) complex128 {
	if t == 0 {
		return 0
	}
	return complex(p.Lambda, 0) * (cmplx.Rect(1, t) - 1)
}

// upper returns the smallest k whose upper tail is below tailProb.
func (p Poisson) upper() float64 {
	d := p.dist()
	k := math.Floor(p.Lambda + boundSigmas*math.Sqrt(p.Lambda))
	for 1-d.CDF(k) > tailProb {
		k += math.Ceil(math.Sqrt(p.Lambda)) + 1
	}
	return k
}

func (p Poisson) Support() (xs, ps []float64) {
	d := p.dist()
	hi := p.upper()
	for k := 0.0; k <= hi; k++ {
		if m := d.Prob(k); m > 0 {
			xs = append(xs, k)
			ps = append(ps, m)
		}
	}
	return
}

func (p Poisson) Range() Interval {
	return Interval{0, inf}
}

func (p Poisson) Bounds() (float64, float64) {
	return 0, p.upper()
}

func (p Poisson) Mean() float64     { return p.Lambda }
func (p Poisson) Variance() float64 { return p.Lambda }
func (p Poisson) Kind() Kind        { return Discrete }

func (p Poisson) Skewness() float64   { return 1 / math.Sqrt(p.Lambda) }
func (p Poisson) ExKurtosis() float64 { return 1 / p.Lambda }

func (p Poisson) Rand(r *rand.Rand) float64 {
	return p.InvCDF(r.Float64())
}
