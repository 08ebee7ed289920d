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

// Trapezoidal is the distribution on [A, D] whose density rises
// linearly on [A, B], is constant on [B, C] and falls linearly on
// [C, D]. It must be that A <= B <= C <= D and A < D.
//
// The sum of two independent uniform variables is trapezoidal.
type Trapezoidal struct {
	A, B, C, D float64
}

// height returns the density on the plateau [B, C].
func (d Trapezoidal) height() float64 {
	return 2 / (d.D + d.C - d.A - d.B)
}

func (d Trapezoidal) PDF(x float64) float64 {
	h := d.height()
	switch {
	case x < d.A || x > d.D:
		return 0
	case x < d.B:
		return h * (x - d.A) / (d.B - d.A)
	case x <= d.C:
		return h
	default:
		return h * (d.D - x) / (d.D - d.C)
	}
}

func (d Trapezoidal) CDF(x float64) float64 {
	h := d.height()
	switch {
	case x <= d.A:
		return 0
	case x < d.B:
		return h * (x - d.A) * (x - d.A) / (2 * (d.B - d.A))
	case x <= d.C:
		return h * ((d.B-d.A)/2 + (x - d.B))
	case x < d.D:
		return 1 - d.Survival(x)
	default:
		return 1
	}
}

func (d Trapezoidal) Survival(x float64) float64 {
	h := d.height()
	switch {
	case x >= d.D:
		return 0
	case x > d.C:
		return h * (d.D - x) * (d.D - x) / (2 * (d.D - d.C))
	case x >= d.B:
		return h * ((d.D-d.C)/2 + (d.C - x))
	case x > d.A:
		return 1 - d.CDF(x)
	default:
		return 1
	}
}

func (d Trapezoidal) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	h := d.height()
	p1 := h * (d.B - d.A) / 2
	p2 := p1 + h*(d.C-d.B)
	switch {
	case y <= p1:
		return d.A + math.Sqrt(2*y*(d.B-d.A)/h)
	case y <= p2:
		return d.B + (y-p1)/h
	default:
		return d.D - math.Sqrt(2*(1-y)*(d.D-d.C)/h)
	}
}

func (d Trapezoidal) CharFunc(t float64) complex128 {
	return trapezoidCharFunc(d.A, d.B, d.C, d.D, t)
}

// trapezoidCharFunc returns the characteristic function of the
// trapezoidal distribution on a <= b <= c <= d.
//
// The density's second derivative is a sum of four weighted Dirac
// masses, giving
//
//	φ(t) = i h / t · [e^(i t m1) sinc(t w1) - e^(i t m2) sinc(t w2)]
//
// where m1, w1 and m2, w2 are the centers and half-widths of [a, b]
// and [c, d]. The bracket is rewritten so that its cancellation at
// small t is carried by SincDiff and a sinc of the center distance.
func trapezoidCharFunc(a, b, c, d, t float64) complex128 {
	if t == 0 {
		return 1
	}
	h := 2 / (d + c - a - b)
	m1, w1 := (a+b)/2, (b-a)/2
	m2, w2 := (c+d)/2, (d-c)/2
	s2 := mathx.Sinc(t * w2)
	diff := mathx.SincDiff(t, w1, w2)
	term1 := complex(0, h*diff) * cmplx.Rect(1, t*m1)
	term2 := cmplx.Rect(h*s2*(m2-m1)*mathx.Sinc(t*(m1-m2)/2), t*(m1+m2)/2)
	return term1 + term2
}

func (d Trapezoidal) Range() Interval {
	return Interval{d.A, d.D}
}

func (d Trapezoidal) Bounds() (float64, float64) {
	return d.A, d.D
}

func (d Trapezoidal) Breakpoints() []float64 {
	return dedup([]float64{d.A, d.B, d.C, d.D})
}

// moment returns E[X^n] for n in 1..2 by integrating the piecewise
// linear density exactly.
func (d Trapezoidal) moment(n int) float64 {
	h := d.height()
	// ∫ x^n (x-A)/(B-A) dx over [A,B], etc., expanded through
	// the antiderivatives of x^n and x^(n+1).
	p := func(x float64, k int) float64 { return math.Pow(x, float64(k)) / float64(k) }
	rise := 0.0
	if d.B > d.A {
		rise = ((p(d.B, n+2) - p(d.A, n+2)) - d.A*(p(d.B, n+1)-p(d.A, n+1))) / (d.B - d.A)
	}
	flat := p(d.C, n+1) - p(d.B, n+1)
	fall := 0.0
	if d.D > d.C {
		fall = (d.D*(p(d.D, n+1)-p(d.C, n+1)) - (p(d.D, n+2) - p(d.C, n+2))) / (d.D - d.C)
	}
	return h * (rise + flat + fall)
}

func (d Trapezoidal) Mean() float64 {
	return d.moment(1)
}

func (d Trapezoidal) Variance() float64 {
	m := d.Mean()
	return d.moment(2) - m*m
}

func (d Trapezoidal) Kind() Kind { return Continuous }

func (d Trapezoidal) Rand(r *rand.Rand) float64 {
	return randByInversion(d, r)
}

// Triangular is the triangular distribution on [A, B] with mode M.
// It must be that A <= M <= B and A < B.
type Triangular struct {
	A, M, B float64
}

func (d Triangular) dist() distuv.Triangle {
	return distuv.NewTriangle(d.A, d.B, d.M, nil)
}

func (d Triangular) PDF(x float64) float64 {
	if x < d.A || x > d.B {
		return 0
	}
	return d.dist().Prob(x)
}

func (d Triangular) CDF(x float64) float64 {
	switch {
	case x <= d.A:
		return 0
	case x >= d.B:
		return 1
	}
	return d.dist().CDF(x)
}

func (d Triangular) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	return d.dist().Quantile(y)
}

func (d Triangular) CharFunc(t float64) complex128 {
	return trapezoidCharFunc(d.A, d.M, d.M, d.B, t)
}

func (d Triangular) Range() Interval {
	return Interval{d.A, d.B}
}

func (d Triangular) Bounds() (float64, float64) {
	return d.A, d.B
}

func (d Triangular) Breakpoints() []float64 {
	return dedup([]float64{d.A, d.M, d.B})
}

func (d Triangular) Mean() float64 {
	return (d.A + d.M + d.B) / 3
}

// q returns a² + b² + c² - ab - ac - bc.
func (d Triangular) q() float64 {
	a, b, c := d.A, d.B, d.M
	return a*a + b*b + c*c - a*b - a*c - b*c
}

func (d Triangular) Variance() float64 {
	return d.q() / 18
}

func (d Triangular) Kind() Kind { return Continuous }

func (d Triangular) Skewness() float64 {
	a, b, c := d.A, d.B, d.M
	return math.Sqrt2 * (a + b - 2*c) * (2*a - b - c) * (a - 2*b + c) / (5 * math.Pow(d.q(), 1.5))
}

func (d Triangular) ExKurtosis() float64 {
	return -3.0 / 5
}

func (d Triangular) Rand(r *rand.Rand) float64 {
	return randByInversion(d, r)
}
