// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathtest provides approximate-equality helpers for numerical
// tests.
package mathtest

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"
	"testing"
)

var (
	aeqDigits int
	aeqFactor float64
	aeqAbs    float64
)

// SetAeqDigits sets the number of significant digits Aeq compares and
// returns the previous setting.
func SetAeqDigits(digits int) int {
	old := aeqDigits
	aeqDigits = digits
	aeqFactor = 1 - math.Pow(10, float64(-digits+1))
	return old
}

// SetAeqAbs sets an absolute tolerance below which Aeq considers two
// values equal regardless of their relative difference, and returns
// the previous setting. The default is 0.
func SetAeqAbs(tol float64) float64 {
	old := aeqAbs
	aeqAbs = tol
	return old
}

func init() {
	SetAeqDigits(8)
}

// Aeq returns true if expect and got are equal up to the current
// number of aeq digits set by SetAeqDigits. By default, this is 8
// significant figures (1 part in 100 million).
func Aeq(expect, got float64) bool {
	if expect == got {
		return true
	}
	if math.Abs(expect-got) <= aeqAbs {
		return true
	}
	if expect < 0 && got < 0 {
		expect, got = -expect, -got
	}
	return expect*aeqFactor <= got && got*aeqFactor <= expect
}

// CAeq is Aeq for complex numbers, applied to the real and imaginary
// parts separately.
func CAeq(expect, got complex128) bool {
	return Aeq(real(expect), real(got)) && Aeq(imag(expect), imag(got))
}

// WantFunc checks f against vals, a map from arguments to expected
// results. name may contain a %v verb for the argument.
func WantFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || Aeq(want, got) {
			continue
		}
		t.Errorf("want %s=%v, got %v", label(name, x), want, got)
	}
}

// WantCmplxFunc is WantFunc for complex-valued functions.
func WantCmplxFunc(t *testing.T, name string, f func(float64) complex128, vals map[float64]complex128) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if cmplx.IsNaN(want) && cmplx.IsNaN(got) || CAeq(want, got) {
			continue
		}
		t.Errorf("want %s=%v, got %v", label(name, x), want, got)
	}
}

func label(name string, x float64) string {
	if strings.Contains(name, "%v") {
		return fmt.Sprintf(name, x)
	}
	return fmt.Sprintf("%s(%v)", name, x)
}
