// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"fmt"
	"math"
)

// maxSeriesTerms bounds Series on series that never settle.
const maxSeriesTerms = 1 << 20

// Series returns the sum of the series f(0), f(1), f(2), and so on.
// Summation stops at the first term whose magnitude is no more than
// the machine precision relative to the running sum, so the terms
// must eventually decrease monotonically in magnitude.
func Series(f func(n float64) float64) float64 {
	sum, _ := SeriesN(f)
	return sum
}

// SeriesN is like Series, but also returns the number of terms that
// were summed.
func SeriesN(f func(n float64) float64) (sum float64, terms int) {
	const eps = 0x1p-52
	for n := 0; n < maxSeriesTerms; n++ {
		y := f(float64(n))
		sum += y
		if math.Abs(y) <= eps*math.Abs(sum) {
			return sum, n + 1
		}
	}
	return sum, maxSeriesTerms
}

// Bisect returns an x in [low, high] such that |f(x)| <= tolerance
// using the bisection method.
//
// f(low) and f(high) must have opposite signs, or one of them must
// already be within tolerance of zero.
//
// If f does not have a root in this interval (e.g., it is
// discontiguous), this returns the X of the apparent discontinuity,
// on the side of high, and false.
func Bisect(f func(float64) float64, low, high, tolerance float64) (float64, bool) {
	flow, fhigh := f(low), f(high)
	if -tolerance <= flow && flow <= tolerance {
		return low, true
	}
	if -tolerance <= fhigh && fhigh <= tolerance {
		return high, true
	}
	if math.Signbit(flow) == math.Signbit(fhigh) {
		panic(fmt.Sprintf("root of f is not bracketed by [low, high]; f(%g)=%g f(%g)=%g", low, flow, high, fhigh))
	}
	for {
		mid := (high + low) / 2
		if mid == low || mid == high {
			// The interval can no longer shrink.
			return high, false
		}
		fmid := f(mid)
		if -tolerance <= fmid && fmid <= tolerance {
			return mid, true
		}
		if math.Signbit(fmid) == math.Signbit(flow) {
			low, flow = mid, fmid
		} else {
			high = mid
		}
	}
}
