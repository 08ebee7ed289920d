// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sort"
)

// UserDefined is a discrete distribution over a finite set of points.
//
// Construct a UserDefined with NewUserDefined.
type UserDefined struct {
	xs, ps []float64
	cum    []float64 // cum[i] = ps[0] + ... + ps[i]
}

// NewUserDefined returns the discrete distribution that puts mass
// ps[i] on xs[i]. The masses are normalized to sum to 1. Duplicate
// points (up to a relative tolerance) are merged and points with
// zero mass are dropped.
//
// NewUserDefined panics if len(xs) != len(ps), if any mass is
// negative, or if the total mass is zero.
func NewUserDefined(xs, ps []float64) *UserDefined {
	if len(xs) != len(ps) {
		panic("len(xs) != len(ps)")
	}
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })

	d := &UserDefined{}
	total := 0.0
	for _, i := range idx {
		if ps[i] < 0 {
			panic("negative probability mass")
		}
		if ps[i] == 0 {
			continue
		}
		total += ps[i]
		if n := len(d.xs); n > 0 && onSupport(xs[i], d.xs[n-1]) {
			d.ps[n-1] += ps[i]
			continue
		}
		d.xs = append(d.xs, xs[i])
		d.ps = append(d.ps, ps[i])
	}
	if total == 0 {
		panic("total probability mass is zero")
	}
	d.cum = make([]float64, len(d.ps))
	cum := 0.0
	for i := range d.ps {
		d.ps[i] /= total
		cum += d.ps[i]
		d.cum[i] = cum
	}
	return d
}

// find returns the index of the support point matching x, or -1.
func (d *UserDefined) find(x float64) int {
	i := sort.SearchFloat64s(d.xs, x)
	for _, j := range []int{i - 1, i} {
		if j >= 0 && j < len(d.xs) && onSupport(x, d.xs[j]) {
			return j
		}
	}
	return -1
}

// PDF returns the probability mass at x.
func (d *UserDefined) PDF(x float64) float64 {
	if i := d.find(x); i >= 0 {
		return d.ps[i]
	}
	return 0
}

func (d *UserDefined) CDF(x float64) float64 {
	if i := d.find(x); i >= 0 {
		return math.Min(1, d.cum[i])
	}
	// Number of support points <= x.
	n := sort.Search(len(d.xs), func(i int) bool { return d.xs[i] > x })
	if n == 0 {
		return 0
	}
	return math.Min(1, d.cum[n-1])
}

func (d *UserDefined) Survival(x float64) float64 {
	n := sort.Search(len(d.xs), func(i int) bool { return d.xs[i] > x })
	if i := d.find(x); i >= 0 {
		n = i + 1
	}
	s := 0.0
	for _, p := range d.ps[n:] {
		s += p
	}
	return s
}

func (d *UserDefined) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	i := sort.SearchFloat64s(d.cum, y)
	if i == len(d.xs) {
		i--
	}
	return d.xs[i]
}

func (d *UserDefined) CharFunc(t float64) complex128 {
	if t == 0 {
		return 1
	}
	var phi complex128
	for i, x := range d.xs {
		phi += cmplx.Rect(d.ps[i], t*x)
	}
	return phi
}

// Support returns the points and masses of d. The caller must not
// modify the returned slices.
func (d *UserDefined) Support() (xs, ps []float64) {
	return d.xs, d.ps
}

func (d *UserDefined) Range() Interval {
	return Interval{d.xs[0], d.xs[len(d.xs)-1]}
}

func (d *UserDefined) Bounds() (float64, float64) {
	return d.xs[0], d.xs[len(d.xs)-1]
}

// centralMoment returns E[(X-mean)^n].
func (d *UserDefined) centralMoment(n float64) float64 {
	m := d.Mean()
	s := 0.0
	for i, x := range d.xs {
		s += d.ps[i] * math.Pow(x-m, n)
	}
	return s
}

func (d *UserDefined) Mean() float64 {
	s := 0.0
	for i, x := range d.xs {
		s += d.ps[i] * x
	}
	return s
}

func (d *UserDefined) Variance() float64 {
	return d.centralMoment(2)
}

func (d *UserDefined) Kind() Kind { return Discrete }

func (d *UserDefined) Skewness() float64 {
	return d.centralMoment(3) / math.Pow(d.Variance(), 1.5)
}

func (d *UserDefined) ExKurtosis() float64 {
	v := d.Variance()
	return d.centralMoment(4)/(v*v) - 3
}

func (d *UserDefined) Rand(r *rand.Rand) float64 {
	return randFromSupport(d.xs, d.cum, r)
}
