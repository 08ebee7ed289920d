// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is a normal (Gaussian) distribution with mean Mu and
// standard deviation Sigma.
type Normal struct {
	Mu, Sigma float64
}

// StdNormal is the standard normal distribution (Mu = 0, Sigma = 1)
var StdNormal = Normal{0, 1}

func (n Normal) dist() distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma}
}

func (n Normal) PDF(x float64) float64 {
	return n.dist().Prob(x)
}

func (n Normal) CDF(x float64) float64 {
	return n.dist().CDF(x)
}

func (n Normal) Survival(x float64) float64 {
	return n.dist().Survival(x)
}

func (n Normal) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	return n.dist().Quantile(y)
}

func (n Normal) CharFunc(t float64) complex128 {
	return cmplx.Exp(n.LogCharFunc(t))
}

func (n Normal) LogCharFunc(t float64) complex128 {
	return complex(-0.5*n.Sigma*n.Sigma*t*t, n.Mu*t)
}

func (n Normal) Range() Interval {
	return RealLine
}

func (n Normal) Bounds() (float64, float64) {
	return n.Mu - boundSigmas*n.Sigma, n.Mu + boundSigmas*n.Sigma
}

func (n Normal) Mean() float64     { return n.Mu }
func (n Normal) Variance() float64 { return n.Sigma * n.Sigma }
func (n Normal) Kind() Kind        { return Continuous }

func (n Normal) Skewness() float64   { return 0 }
func (n Normal) ExKurtosis() float64 { return 0 }

func (n Normal) Rand(r *rand.Rand) float64 {
	return n.Mu + n.Sigma*r.NormFloat64()
}
