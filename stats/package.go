// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stats is a collection of univariate distributions that can serve as
// the atoms of a random mixture.
package stats // import "github.com/aclements/go-randmix/stats"

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/aclements/go-randmix/mathx"
)

var inf = math.Inf(1)
var nan = math.NaN()

// boundSigmas is the half-width, in standard deviations, of Bounds for
// atoms with Gaussian tails. exp(-8.5^2/2) is below 1e-15.
const boundSigmas = 8.5

// tailProb is the probability left outside Bounds by atoms whose
// bounds come from a quantile.
const tailProb = 1e-15

// supportTol is the relative tolerance when matching a point against
// the support of a discrete atom.
const supportTol = 1e-14

// onSupport returns whether x and p are the same support point, up to
// supportTol.
func onSupport(x, p float64) bool {
	return math.Abs(x-p) <= supportTol*math.Max(1, math.Abs(p))
}

// nearestInt returns the integer nearest x and whether x is within
// supportTol of it.
func nearestInt(x float64) (float64, bool) {
	k := math.Round(x)
	return k, onSupport(x, k)
}

// randByInversion draws from a using inversion of its CDF.
func randByInversion(a Atom, r *rand.Rand) float64 {
	return a.InvCDF(r.Float64())
}

// randFromSupport draws a point from a discrete support with
// cumulative probabilities cum.
func randFromSupport(xs, cum []float64, r *rand.Rand) float64 {
	u := r.Float64() * cum[len(cum)-1]
	i := sort.SearchFloat64s(cum, u)
	if i == len(xs) {
		i--
	}
	return xs[i]
}

// invCDFByBisection inverts a continuous CDF over a's Bounds.
func invCDFByBisection(a Atom, y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	lo, hi := a.Bounds()
	if y == 0 {
		return lo
	}
	if y == 1 {
		return hi
	}
	if a.CDF(lo) >= y {
		return lo
	}
	if a.CDF(hi) <= y {
		return hi
	}
	x, _ := mathx.Bisect(func(x float64) float64 { return a.CDF(x) - y }, lo, hi, 1e-15)
	return x
}
