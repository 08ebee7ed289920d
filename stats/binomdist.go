// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/aclements/go-randmix/mathx"
	"gonum.org/v1/gonum/mathext"
)

// Binomial is a binomial distribution.
type Binomial struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

// PMF is the probability of getting exactly k successes in d.N
// independent Bernoulli trials with probability d.P. It is 0 if k is
// not an integer.
func (d Binomial) PMF(k float64) float64 {
	k, ok := nearestInt(k)
	if !ok || k < 0 || k > float64(d.N) {
		return 0
	}
	ki := int(k)
	return mathx.Choose(d.N, ki) * math.Pow(d.P, k) * math.Pow(1-d.P, float64(d.N-ki))
}

// PDF returns PMF(x).
func (d Binomial) PDF(x float64) float64 {
	return d.PMF(x)
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d Binomial) CDF(k float64) float64 {
	if kr, ok := nearestInt(k); ok {
		k = kr
	}
	k = math.Floor(k)
	ki := int(k)
	if ki < 0 {
		return 0
	} else if ki >= d.N {
		return 1
	}

	return mathext.RegIncBeta(float64(d.N-ki), k+1, 1-d.P)
}

func (d Binomial) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	cum := 0.0
	for k := 0; k < d.N; k++ {
		cum += d.PMF(float64(k))
		if cum >= y {
			return float64(k)
		}
	}
	return float64(d.N)
}

func (d Binomial) CharFunc(t float64) complex128 {
	if t == 0 {
		return 1
	}
	return cmplx.Pow(complex(1-d.P, 0)+complex(d.P, 0)*cmplx.Rect(1, t), complex(float64(d.N), 0))
}

func (d Binomial) LogCharFunc(t float64) complex128 {
	if t == 0 {
		return 0
	}
	return complex(float64(d.N), 0) * cmplx.Log(complex(1-d.P, 0)+complex(d.P, 0)*cmplx.Rect(1, t))
}

func (d Binomial) Support() (xs, ps []float64) {
	for k := 0; k <= d.N; k++ {
		if p := d.PMF(float64(k)); p > 0 {
			xs = append(xs, float64(k))
			ps = append(ps, p)
		}
	}
	return
}

func (d Binomial) Range() Interval {
	return Interval{0, float64(d.N)}
}

func (d Binomial) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d Binomial) Step() float64 {
	return 1
}

func (d Binomial) Mean() float64 {
	return float64(d.N) * d.P
}

func (d Binomial) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

func (d Binomial) Kind() Kind { return Discrete }

func (d Binomial) Skewness() float64 {
	return (1 - 2*d.P) / math.Sqrt(d.Variance())
}

func (d Binomial) ExKurtosis() float64 {
	return (1 - 6*d.P*(1-d.P)) / d.Variance()
}

func (d Binomial) Rand(r *rand.Rand) float64 {
	n := 0
	for i := 0; i < d.N; i++ {
		if r.Float64() < d.P {
			n++
		}
	}
	return float64(n)
}

// NormalApprox returns a normal distribution approximation of
// binomial distribution d.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation. Specifically, if b is the
// binomial distribution and n is the normal approximation, operations
// map as follows:
//
//	b.PMF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func (d Binomial) NormalApprox() Normal {
	return Normal{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}

// Bernoulli is the distribution of a single trial that is 1 with
// probability P and 0 otherwise.
type Bernoulli struct {
	P float64
}

// Binomial returns b as a binomial distribution with one trial.
func (b Bernoulli) Binomial() Binomial {
	return Binomial{N: 1, P: b.P}
}

func (b Bernoulli) PDF(x float64) float64            { return b.Binomial().PMF(x) }
func (b Bernoulli) CDF(x float64) float64            { return b.Binomial().CDF(x) }
func (b Bernoulli) InvCDF(y float64) float64         { return b.Binomial().InvCDF(y) }
func (b Bernoulli) CharFunc(t float64) complex128    { return b.Binomial().CharFunc(t) }
func (b Bernoulli) LogCharFunc(t float64) complex128 { return b.Binomial().LogCharFunc(t) }
func (b Bernoulli) Support() (xs, ps []float64)      { return b.Binomial().Support() }
func (b Bernoulli) Range() Interval                  { return Interval{0, 1} }
func (b Bernoulli) Bounds() (float64, float64)       { return 0, 1 }
func (b Bernoulli) Mean() float64                    { return b.P }
func (b Bernoulli) Variance() float64                { return b.P * (1 - b.P) }
func (b Bernoulli) Kind() Kind                       { return Discrete }
func (b Bernoulli) Skewness() float64                { return b.Binomial().Skewness() }
func (b Bernoulli) ExKurtosis() float64              { return b.Binomial().ExKurtosis() }
func (b Bernoulli) Rand(r *rand.Rand) float64        { return b.Binomial().Rand(r) }
