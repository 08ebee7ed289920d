// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// SmoothedUniform is the distribution of U + N where U is uniform on
// [A, B] and N is an independent normal variable with mean 0 and
// standard deviation Sigma.
type SmoothedUniform struct {
	A, B, Sigma float64
}

// Parts returns the uniform and normal components of d.
func (d SmoothedUniform) Parts() (Uniform, Normal) {
	return Uniform{d.A, d.B}, Normal{0, d.Sigma}
}

func (d SmoothedUniform) PDF(x float64) float64 {
	za, zb := (x-d.A)/d.Sigma, (x-d.B)/d.Sigma
	if x < (d.A+d.B)/2 {
		return (StdNormal.CDF(za) - StdNormal.CDF(zb)) / (d.B - d.A)
	}
	return (StdNormal.Survival(zb) - StdNormal.Survival(za)) / (d.B - d.A)
}

// g returns the integral of the standard normal CDF scaled by sigma up
// to u: u Φ(u/σ) + σ φ(u/σ).
func (d SmoothedUniform) g(u float64) float64 {
	return d.Sigma * normalPartialMean(u/d.Sigma)
}

// gc is the upper tail analogue of g: -u Φ(-u/σ) + σ φ(u/σ).
func (d SmoothedUniform) gc(u float64) float64 {
	return d.Sigma * normalPartialMean(-u/d.Sigma)
}

// normalPartialMean returns E[(z-Z)⁺] = φ(z) + zΦ(z) for a standard
// normal Z.
//
// For z far below 0 the two terms cancel. There it is φ(w)·K/(w+K)
// with w = -z, where 1/(w+K) is the Laplace continued fraction for
// the Mills ratio Φ(-w)/φ(w).
func normalPartialMean(z float64) float64 {
	if z > -4 {
		return StdNormal.PDF(z) + z*StdNormal.CDF(z)
	}
	w := -z
	if math.IsInf(w, 1) {
		return 0
	}
	// K = 1/(w + 2/(w + 3/(w + ...))), evaluated from the tail.
	den := w
	for j := millsTerms; j >= 2; j-- {
		den = w + float64(j)/den
	}
	k := 1 / den
	return StdNormal.PDF(w) * k / (w + k)
}

// millsTerms is the depth of the continued fraction. It converges to
// full precision for w >= 4 well before this.
const millsTerms = 60

func (d SmoothedUniform) CDF(x float64) float64 {
	if x > (d.A+d.B)/2 {
		return 1 - d.Survival(x)
	}
	return (d.g(x-d.A) - d.g(x-d.B)) / (d.B - d.A)
}

func (d SmoothedUniform) Survival(x float64) float64 {
	if x <= (d.A+d.B)/2 {
		return 1 - d.CDF(x)
	}
	return (d.gc(x-d.B) - d.gc(x-d.A)) / (d.B - d.A)
}

func (d SmoothedUniform) InvCDF(y float64) float64 {
	return invCDFByBisection(d, y)
}

func (d SmoothedUniform) CharFunc(t float64) complex128 {
	return cmplx.Exp(d.LogCharFunc(t))
}

func (d SmoothedUniform) LogCharFunc(t float64) complex128 {
	u, n := d.Parts()
	return u.LogCharFunc(t) + n.LogCharFunc(t)
}

func (d SmoothedUniform) Range() Interval {
	return RealLine
}

func (d SmoothedUniform) Bounds() (float64, float64) {
	return d.A - boundSigmas*d.Sigma, d.B + boundSigmas*d.Sigma
}

func (d SmoothedUniform) Mean() float64 {
	return (d.A + d.B) / 2
}

func (d SmoothedUniform) Variance() float64 {
	w := d.B - d.A
	return w*w/12 + d.Sigma*d.Sigma
}

func (d SmoothedUniform) Kind() Kind { return Continuous }

func (d SmoothedUniform) Skewness() float64 { return 0 }

func (d SmoothedUniform) ExKurtosis() float64 {
	// Cumulants add; the normal part has no fourth cumulant.
	w := d.B - d.A
	v := d.Variance()
	return -w * w * w * w / 120 / (v * v)
}

func (d SmoothedUniform) Rand(r *rand.Rand) float64 {
	u, n := d.Parts()
	return u.Rand(r) + n.Rand(r)
}
