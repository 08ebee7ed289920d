// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/aclements/go-randmix/internal/mathtest"
	"github.com/aclements/go-randmix/mathx"
)

var aeq = mathtest.Aeq
var testFunc = mathtest.WantFunc

func testDiscreteCDF(t *testing.T, name string, dist DiscreteAtom) {
	t.Helper()
	// Build the expected CDF out of the support.
	xs, ps := dist.Support()
	want := map[float64]float64{xs[0] - 0.1: 0}
	sum := 0.0
	for i, x := range xs {
		sum += ps[i]
		want[x] = sum
		if i+1 < len(xs) {
			want[(x+xs[i+1])/2] = sum
		}
	}
	want[xs[len(xs)-1]+0.5] = sum

	// Tail masses are tiny, so compare them absolutely.
	old := mathtest.SetAeqAbs(1e-12)
	defer mathtest.SetAeqAbs(old)
	testFunc(t, name, dist.CDF, want)
}

func testInvCDF(t *testing.T, dist Atom) {
	t.Helper()
	name := fmt.Sprintf("InvCDF(%+v)", dist)
	testFunc(t, name, dist.InvCDF, map[float64]float64{-0.01: nan, 1.01: nan})

	// Test points between.
	vals := map[float64]float64{}
	for p := 0.1; p < 0.95; p += 0.1 {
		x := dist.InvCDF(p)
		vals[x] = x
	}
	old := mathtest.SetAeqDigits(7)
	defer mathtest.SetAeqDigits(old)
	oldAbs := mathtest.SetAeqAbs(1e-9)
	defer mathtest.SetAeqAbs(oldAbs)
	testFunc(t, fmt.Sprintf("InvCDF(CDF(%+v))", dist),
		func(x float64) float64 {
			return dist.InvCDF(dist.CDF(x))
		},
		vals)
}

// pieces returns the bounds of a split at its breakpoints.
func pieces(a Atom) []float64 {
	lo, hi := a.Bounds()
	return Within(Breakpoints(a), lo, hi)
}

// testCharFunc checks the generic properties of a's characteristic
// function: φ(0) = 1, |φ(t)| <= 1, agreement with LogCharFunc, and,
// for continuous atoms, agreement with the Fourier integral of the
// PDF.
func testCharFunc(t *testing.T, a Atom) {
	t.Helper()
	if got := a.CharFunc(0); got != 1 {
		t.Errorf("%+v.CharFunc(0) = %v, want 1", a, got)
	}
	if got := LogCharFunc(a, 0); got != 0 {
		t.Errorf("LogCharFunc(%+v, 0) = %v, want 0", a, got)
	}
	pts := pieces(a)
	for _, u := range []float64{-7.5, -1.3, -0.2, 0.01, 0.7, 2, 11} {
		phi := a.CharFunc(u)
		if cmplx.Abs(phi) > 1+1e-12 {
			t.Errorf("|%+v.CharFunc(%v)| = %v > 1", a, u, cmplx.Abs(phi))
		}
		if lphi := cmplx.Exp(LogCharFunc(a, u)); cmplx.Abs(lphi-phi) > 1e-10 {
			t.Errorf("exp(LogCharFunc(%+v, %v)) = %v, want %v", a, u, lphi, phi)
		}
		if a.Kind() != Continuous {
			continue
		}
		re, _ := mathx.IntegratePieces(func(x float64) float64 { return math.Cos(u*x) * a.PDF(x) }, pts, 1e-11, 1e-11)
		im, _ := mathx.IntegratePieces(func(x float64) float64 { return math.Sin(u*x) * a.PDF(x) }, pts, 1e-11, 1e-11)
		if want := complex(re, im); cmplx.Abs(want-phi) > 1e-8 {
			t.Errorf("%+v.CharFunc(%v) = %v, want %v", a, u, phi, want)
		}
	}
}

// testMoments checks Mean and Variance against numerical integration
// of a continuous atom's PDF.
func testMoments(t *testing.T, a Atom) {
	t.Helper()
	pts := pieces(a)
	mass, _ := mathx.IntegratePieces(a.PDF, pts, 1e-12, 1e-12)
	mean, _ := mathx.IntegratePieces(func(x float64) float64 { return x * a.PDF(x) }, pts, 1e-12, 1e-12)
	m := a.Mean()
	variance, _ := mathx.IntegratePieces(func(x float64) float64 { return (x - m) * (x - m) * a.PDF(x) }, pts, 1e-12, 1e-12)
	if math.Abs(mass-1) > 1e-9 {
		t.Errorf("integral of %+v.PDF = %v, want 1", a, mass)
	}
	if math.Abs(mean-m) > 1e-8*math.Max(1, math.Abs(m)) {
		t.Errorf("%+v.Mean() = %v, want %v", a, m, mean)
	}
	if v := a.Variance(); math.Abs(variance-v) > 1e-8*math.Max(1, v) {
		t.Errorf("%+v.Variance() = %v, want %v", a, v, variance)
	}
}
