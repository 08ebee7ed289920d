// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import "math"

// Sinc returns sin(x)/x. Sinc(0) = 1.
func Sinc(x float64) float64 {
	if math.Abs(x) < 1e-4 {
		x2 := x * x
		return 1 - x2/6*(1-x2/20)
	}
	return math.Sin(x) / x
}

// SincDiff returns (Sinc(t*a) - Sinc(t*b)) / t without the
// cancellation the direct formula suffers when t*a and t*b are
// small. SincDiff(0, a, b) = 0.
func SincDiff(t, a, b float64) float64 {
	if t == 0 {
		return 0
	}
	if math.Max(math.Abs(t*a), math.Abs(t*b)) < 0.1 {
		a2, b2, t2 := a*a, b*b, t*t
		a4, b4 := a2*a2, b2*b2
		return t * (-(a2-b2)/6 + t2*(a4-b4)/120 - t2*t2*(a4*a2-b4*b2)/5040)
	}
	return (Sinc(t*a) - Sinc(t*b)) / t
}
