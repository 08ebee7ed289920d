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

// Gamma is the gamma distribution with shape K and rate Lambda,
// shifted to start at Loc.
type Gamma struct {
	K, Lambda, Loc float64
}

func (g Gamma) dist() distuv.Gamma {
	return distuv.Gamma{Alpha: g.K, Beta: g.Lambda}
}

func (g Gamma) PDF(x float64) float64 {
	if x < g.Loc {
		return 0
	}
	return g.dist().Prob(x - g.Loc)
}

func (g Gamma) CDF(x float64) float64 {
	if x <= g.Loc {
		return 0
	}
	return g.dist().CDF(x - g.Loc)
}

func (g Gamma) Survival(x float64) float64 {
	if x <= g.Loc {
		return 1
	}
	return g.dist().Survival(x - g.Loc)
}

func (g Gamma) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	return g.Loc + g.dist().Quantile(y)
}

func (g Gamma) CharFunc(t float64) complex128 {
	return cmplx.Exp(g.LogCharFunc(t))
}

func (g Gamma) LogCharFunc(t float64) complex128 {
	if t == 0 {
		return 0
	}
	return complex(0, t*g.Loc) - complex(g.K, 0)*cmplx.Log(complex(1, -t/g.Lambda))
}

// Scale returns the scale parameter 1/Lambda.
func (g Gamma) Scale() float64 {
	return 1 / g.Lambda
}

func (g Gamma) Range() Interval {
	return Interval{g.Loc, inf}
}

func (g Gamma) Bounds() (float64, float64) {
	return g.Loc, g.Loc + g.dist().Quantile(1-tailProb)
}

func (g Gamma) Mean() float64     { return g.Loc + g.K/g.Lambda }
func (g Gamma) Variance() float64 { return g.K / (g.Lambda * g.Lambda) }
func (g Gamma) Kind() Kind        { return Continuous }

func (g Gamma) Skewness() float64   { return 2 / math.Sqrt(g.K) }
func (g Gamma) ExKurtosis() float64 { return 6 / g.K }

func (g Gamma) Rand(r *rand.Rand) float64 {
	return randByInversion(g, r)
}

// Exponential is the exponential distribution with rate Lambda,
// shifted to start at Loc.
type Exponential struct {
	Lambda, Loc float64
}

func (e Exponential) dist() distuv.Exponential {
	return distuv.Exponential{Rate: e.Lambda}
}

func (e Exponential) PDF(x float64) float64 {
	if x < e.Loc {
		return 0
	}
	return e.dist().Prob(x - e.Loc)
}

func (e Exponential) CDF(x float64) float64 {
	if x <= e.Loc {
		return 0
	}
	return e.dist().CDF(x - e.Loc)
}

func (e Exponential) Survival(x float64) float64 {
	if x <= e.Loc {
		return 1
	}
	return e.dist().Survival(x - e.Loc)
}

func (e Exponential) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	return e.Loc + e.dist().Quantile(y)
}

func (e Exponential) CharFunc(t float64) complex128 {
	return cmplx.Exp(e.LogCharFunc(t))
}

func (e Exponential) LogCharFunc(t float64) complex128 {
	return e.Gamma().LogCharFunc(t)
}

// Gamma returns e as a gamma distribution with shape 1.
func (e Exponential) Gamma() Gamma {
	return Gamma{K: 1, Lambda: e.Lambda, Loc: e.Loc}
}

func (e Exponential) Range() Interval {
	return Interval{e.Loc, inf}
}

func (e Exponential) Bounds() (float64, float64) {
	return e.Loc, e.Loc - math.Log(tailProb)/e.Lambda
}

func (e Exponential) Mean() float64     { return e.Loc + 1/e.Lambda }
func (e Exponential) Variance() float64 { return 1 / (e.Lambda * e.Lambda) }
func (e Exponential) Kind() Kind        { return Continuous }

func (e Exponential) Skewness() float64   { return 2 }
func (e Exponential) ExKurtosis() float64 { return 6 }

func (e Exponential) Rand(r *rand.Rand) float64 {
	return e.Loc + r.ExpFloat64()/e.Lambda
}

// ChiSquare is the chi-squared distribution with Nu degrees of
// freedom.
type ChiSquare struct {
	Nu float64
}

// Gamma returns c as the gamma distribution with shape Nu/2 and rate
// 1/2.
func (c ChiSquare) Gamma() Gamma {
	return Gamma{K: c.Nu / 2, Lambda: 0.5}
}

func (c ChiSquare) PDF(x float64) float64      { return c.Gamma().PDF(x) }
func (c ChiSquare) CDF(x float64) float64      { return c.Gamma().CDF(x) }
func (c ChiSquare) Survival(x float64) float64 { return c.Gamma().Survival(x) }
func (c ChiSquare) InvCDF(y float64) float64   { return c.Gamma().InvCDF(y) }

func (c ChiSquare) CharFunc(t float64) complex128    { return c.Gamma().CharFunc(t) }
func (c ChiSquare) LogCharFunc(t float64) complex128 { return c.Gamma().LogCharFunc(t) }

func (c ChiSquare) Range() Interval            { return Interval{0, inf} }
func (c ChiSquare) Bounds() (float64, float64) { return c.Gamma().Bounds() }
func (c ChiSquare) Mean() float64              { return c.Nu }
func (c ChiSquare) Variance() float64          { return 2 * c.Nu }
func (c ChiSquare) Kind() Kind                 { return Continuous }
func (c ChiSquare) Skewness() float64          { return c.Gamma().Skewness() }
func (c ChiSquare) ExKurtosis() float64        { return c.Gamma().ExKurtosis() }
func (c ChiSquare) Rand(r *rand.Rand) float64  { return c.Gamma().Rand(r) }
