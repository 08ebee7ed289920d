// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// Dirac is the point mass at X.
//
// The CDF of the Dirac distribution is the Heaviside step function,
// centered at X. Specifically, CDF(X) == 1.
type Dirac struct {
	X float64
}

// PDF returns the probability mass at x, which is 1 at X and 0
// elsewhere.
func (d Dirac) PDF(x float64) float64 {
	if onSupport(x, d.X) {
		return 1
	}
	return 0
}

func (d Dirac) CDF(x float64) float64 {
	if x >= d.X {
		return 1
	}
	return 0
}

func (d Dirac) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	return d.X
}

func (d Dirac) CharFunc(t float64) complex128 {
	return cmplx.Rect(1, t*d.X)
}

func (d Dirac) LogCharFunc(t float64) complex128 {
	return complex(0, t*d.X)
}

func (d Dirac) Support() (xs, ps []float64) {
	return []float64{d.X}, []float64{1}
}

func (d Dirac) Range() Interval {
	return Interval{d.X, d.X}
}

func (d Dirac) Bounds() (float64, float64) {
	return d.X, d.X
}

func (d Dirac) Mean() float64     { return d.X }
func (d Dirac) Variance() float64 { return 0 }
func (d Dirac) Kind() Kind        { return Discrete }

func (d Dirac) Rand(r *rand.Rand) float64 {
	return d.X
}
