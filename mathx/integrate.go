// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import "math"

// Abscissae and weights of the 15 point Kronrod rule and of the
// embedded 7 point Gauss rule on [-1, 1]. Gauss nodes are the odd
// Kronrod nodes and the center.
var (
	kronrodX = [8]float64{
		0.991455371120812639206854697526329,
		0.949107912342758524526189684047851,
		0.864864423359769072789712788640926,
		0.741531185599394439863864773280788,
		0.586087235467691130294144845693013,
		0.405845151377397166906606412076961,
		0.207784955007898467600689403773245,
		0.000000000000000000000000000000000,
	}
	kronrodW = [8]float64{
		0.022935322010529224963732008058970,
		0.063092092629978553290700663189204,
		0.104790010322250183839876322541518,
		0.140653259715525918745189590510238,
		0.169004726639267902826583426598550,
		0.190350578064785409913256402421014,
		0.204432940075298892414161999234649,
		0.209482141084727828012999174891714,
	}
	gaussW = [4]float64{
		0.129484966168869693270611432679082,
		0.279705391489276667901467771423780,
		0.381830050505118944950369775488975,
		0.417959183673469387755102040816327,
	}
)

// MaxIntegrateIntervals is the largest number of subintervals
// Integrate will split [a, b] into before giving up on its tolerance.
var MaxIntegrateIntervals = 500

// Integrate returns the integral of f over [a, b] and an estimate of
// the absolute error of the result.
//
// Integrate uses globally adaptive Gauss-Kronrod (7, 15) quadrature:
// it repeatedly bisects the subinterval with the largest error
// estimate until the total error estimate is at most
// max(absTol, relTol*|result|) or MaxIntegrateIntervals is reached.
// f is never evaluated at a or b, so integrands may be discontinuous
// or singular at the end points.
func Integrate(f func(float64) float64, a, b, absTol, relTol float64) (result, abserr float64) {
	if a == b {
		return 0, 0
	}
	if a > b {
		result, abserr = Integrate(f, b, a, absTol, relTol)
		return -result, abserr
	}

	type piece struct {
		a, b, val, err float64
	}
	val, err := gk15(f, a, b)
	pieces := []piece{{a, b, val, err}}
	result, abserr = val, err
	for len(pieces) < MaxIntegrateIntervals {
		if abserr <= math.Max(absTol, relTol*math.Abs(result)) {
			break
		}
		// Split the piece with the largest error.
		worst := 0
		for i := range pieces {
			if pieces[i].err > pieces[worst].err {
				worst = i
			}
		}
		p := pieces[worst]
		mid := (p.a + p.b) / 2
		if mid == p.a || mid == p.b {
			// Out of floating point resolution.
			break
		}
		v1, e1 := gk15(f, p.a, mid)
		v2, e2 := gk15(f, mid, p.b)
		pieces[worst] = piece{p.a, mid, v1, e1}
		pieces = append(pieces, piece{mid, p.b, v2, e2})

		// Recompute the totals from scratch so rounding in
		// the running sums does not accumulate.
		result, abserr = 0, 0
		for _, p := range pieces {
			result += p.val
			abserr += p.err
		}
	}
	return result, abserr
}

// gk15 applies the Kronrod rule to f on [a, b] and estimates its
// error by the difference from the embedded Gauss rule.
func gk15(f func(float64) float64, a, b float64) (val, err float64) {
	center := (a + b) / 2
	half := (b - a) / 2
	fc := f(center)
	resK := kronrodW[7] * fc
	resG := gaussW[3] * fc
	for j := 0; j < 7; j++ {
		dx := half * kronrodX[j]
		pair := f(center-dx) + f(center+dx)
		resK += kronrodW[j] * pair
		if j%2 == 1 {
			resG += gaussW[j/2] * pair
		}
	}
	return resK * half, math.Abs((resK - resG) * half)
}

// IntegratePieces returns the integral of f from pts[0] to
// pts[len(pts)-1], integrating separately between consecutive points
// of the sorted slice pts. Splitting at the points where f has jumps
// or kinks keeps every feature of f between quadrature end points.
func IntegratePieces(f func(float64) float64, pts []float64, absTol, relTol float64) (result, abserr float64) {
	for i := 1; i < len(pts); i++ {
		if pts[i] > pts[i-1] {
			v, e := Integrate(f, pts[i-1], pts[i], absTol, relTol)
			result += v
			abserr += e
		}
	}
	return result, abserr
}
