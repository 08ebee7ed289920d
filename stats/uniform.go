// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/aclements/go-randmix/mathx"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform is the continuous uniform distribution on [Min, Max].
type Uniform struct {
	Min, Max float64
}

func (u Uniform) dist() distuv.Uniform {
	return distuv.Uniform{Min: u.Min, Max: u.Max}
}

func (u Uniform) PDF(x float64) float64 {
	return u.dist().Prob(x)
}

func (u Uniform) CDF(x float64) float64 {
	return u.dist().CDF(x)
}

func (u Uniform) Survival(x float64) float64 {
	return u.dist().Survival(x)
}

func (u Uniform) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	return u.dist().Quantile(y)
}

// center and halfWidth describe u as a symmetric interval.
func (u Uniform) center() float64    { return (u.Min + u.Max) / 2 }
func (u Uniform) halfWidth() float64 { return (u.Max - u.Min) / 2 }

func (u Uniform) CharFunc(t float64) complex128 {
	if t == 0 {
		return 1
	}
	return cmplx.Rect(mathx.Sinc(t*u.halfWidth()), t*u.center())
}

func (u Uniform) LogCharFunc(t float64) complex128 {
	if t == 0 {
		return 0
	}
	return complex(0, t*u.center()) + cmplx.Log(complex(mathx.Sinc(t*u.halfWidth()), 0))
}

func (u Uniform) Range() Interval {
	return Interval{u.Min, u.Max}
}

func (u Uniform) Bounds() (float64, float64) {
	return u.Min, u.Max
}

func (u Uniform) Breakpoints() []float64 {
	return finiteEnds(u.Range())
}

func (u Uniform) Mean() float64 { return u.center() }

func (u Uniform) Variance() float64 {
	w := u.Max - u.Min
	return w * w / 12
}

func (u Uniform) Kind() Kind { return Continuous }

func (u Uniform) Skewness() float64   { return 0 }
func (u Uniform) ExKurtosis() float64 { return -6.0 / 5 }

func (u Uniform) Rand(r *rand.Rand) float64 {
	return u.Min + (u.Max-u.Min)*r.Float64()
}
