// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
)

// Kind classifies the support of a distribution.
type Kind int

const (
	// Continuous distributions have a density.
	Continuous Kind = iota

	// Discrete distributions put all of their mass on a
	// countable set of points.
	Discrete

	// Mixed distributions are neither purely continuous nor
	// purely discrete.
	Mixed
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	case Mixed:
		return "mixed"
	}
	return "Kind(?)"
}

// An Atom is a univariate distribution. Atoms are the independent
// components that are weighted and summed to form a random mixture.
//
// Atoms are immutable values and may be shared freely.
type Atom interface {
	// PDF returns the value of the probability density function
	// at x. For discrete atoms, this is the probability mass at
	// x.
	PDF(x float64) float64

	// CDF returns the probability that the atom is <= x.
	CDF(x float64) float64

	// InvCDF returns the smallest x such that CDF(x) >= y. y
	// must be in [0, 1]; otherwise InvCDF returns NaN.
	InvCDF(y float64) float64

	// CharFunc returns the characteristic function E[exp(i*t*X)]
	// at t.
	CharFunc(t float64) complex128

	// Range returns the exact support of the atom. Either bound
	// may be infinite.
	Range() Interval

	// Bounds returns finite bounds for this atom's PDF and CDF.
	// The total weight outside of these bounds is negligible
	// relative to float64 precision.
	Bounds() (float64, float64)

	Mean() float64
	Variance() float64
	Kind() Kind

	// Rand returns a random draw from the atom using r.
	Rand(r *rand.Rand) float64
}

// A DiscreteAtom is an Atom with an enumerable support.
type DiscreteAtom interface {
	Atom

	// Support returns the points inside Bounds that carry
	// positive probability, in increasing order, together with
	// their probabilities.
	Support() (xs, ps []float64)
}

// LogCharFuncer is implemented by atoms that can compute the
// logarithm of their characteristic function directly.
type LogCharFuncer interface {
	LogCharFunc(t float64) complex128
}

// Survivor is implemented by atoms that can compute 1-CDF(x) without
// cancellation in the upper tail.
type Survivor interface {
	Survival(x float64) float64
}

// Shaper is implemented by atoms with closed-form shape
// coefficients.
type Shaper interface {
	Skewness() float64
	ExKurtosis() float64
}

// Dimensioner is implemented by distributions that may be
// multivariate. Atoms that do not implement it are univariate.
type Dimensioner interface {
	Dim() int
}

// Breakpointer is implemented by continuous atoms whose density has
// kinks or jumps inside its range.
type Breakpointer interface {
	// Breakpoints returns, in increasing order, the finite points
	// at which the density may fail to be smooth, including the
	// finite ends of the range.
	Breakpoints() []float64
}

// Breakpoints returns the points at which a's density may fail to be
// smooth. Atoms that do not implement Breakpointer are assumed to be
// smooth inside their range.
func Breakpoints(a Atom) []float64 {
	if b, ok := a.(Breakpointer); ok {
		return b.Breakpoints()
	}
	return finiteEnds(a.Range())
}

// Within returns lo, the points of the sorted slice pts strictly
// between lo and hi, and hi. Infinite ends are dropped.
func Within(pts []float64, lo, hi float64) []float64 {
	out := finiteEnds(Interval{lo, lo})
	for _, x := range pts {
		if lo < x && x < hi {
			out = append(out, x)
		}
	}
	if !math.IsInf(hi, 0) && hi > lo {
		out = append(out, hi)
	}
	return out
}

// dedup removes adjacent duplicates from the sorted slice xs in place.
func dedup(xs []float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

func finiteEnds(r Interval) []float64 {
	var pts []float64
	if !math.IsInf(r.Lo, 0) {
		pts = append(pts, r.Lo)
	}
	if !math.IsInf(r.Hi, 0) && r.Hi != r.Lo {
		pts = append(pts, r.Hi)
	}
	return pts
}

// LogCharFunc returns the logarithm of a's characteristic function at
// t. LogCharFunc(a, 0) is exactly 0.
func LogCharFunc(a Atom, t float64) complex128 {
	if t == 0 {
		return 0
	}
	if l, ok := a.(LogCharFuncer); ok {
		return l.LogCharFunc(t)
	}
	return cmplx.Log(a.CharFunc(t))
}

// Survival returns 1-a.CDF(x), using a's Survival method if it has
// one.
func Survival(a Atom, x float64) float64 {
	if s, ok := a.(Survivor); ok {
		return s.Survival(x)
	}
	return 1 - a.CDF(x)
}

// Dim returns the dimension of a.
func Dim(a Atom) int {
	if d, ok := a.(Dimensioner); ok {
		return d.Dim()
	}
	return 1
}

// StdDev returns the standard deviation of a.
func StdDev(a Atom) float64 {
	return math.Sqrt(a.Variance())
}

// Cumulants returns the third and fourth cumulants of a, or NaN if a
// does not implement Shaper.
func Cumulants(a Atom) (k3, k4 float64) {
	s, ok := a.(Shaper)
	if !ok {
		return nan, nan
	}
	v := a.Variance()
	if v == 0 {
		return 0, 0
	}
	return s.Skewness() * v * math.Sqrt(v), s.ExKurtosis() * v * v
}

// PDFEach returns a.PDF(xs[i]) for each i.
func PDFEach(a Atom, xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = a.PDF(x)
	}
	return res
}

// CDFEach returns a.CDF(xs[i]) for each i.
func CDFEach(a Atom, xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = a.CDF(x)
	}
	return res
}

// InvCDFEach returns a.InvCDF(ys[i]) for each i.
func InvCDFEach(a Atom, ys []float64) []float64 {
	res := make([]float64, len(ys))
	for i, y := range ys {
		res[i] = a.InvCDF(y)
	}
	return res
}

// TODO: Plot method to return a pre-configured Plot object with
// reasonable bounds and an integral function? Have to distinguish
// PDF/CDF/InvCDF. Three methods? Argument?
