// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"
	"sort"

	"github.com/aclements/go-randmix/mathx"
	"github.com/aclements/go-randmix/stats"
)

// convolution describes Y = c + w1·X1 + w2·X2 for two continuous
// atoms.
type convolution struct {
	x1, x2 stats.Atom
	w1, w2 float64
	c      float64
}

func (m *RandomMixture) convolution() convolution {
	return convolution{m.atoms[0], m.atoms[1], m.cols[0][0], m.cols[1][0], m.constant[0]}
}

// arg returns the value of X2 that gives Y = y when X1 = x.
func (cv convolution) arg(y, x float64) float64 {
	return (y - cv.c - cv.w1*x) / cv.w2
}

// pieces returns the breakpoints of the integral over X1 for a given
// y: the bounds of X1, and the breakpoints of X1 and the preimages of
// the breakpoints of X2 that fall between them. Between consecutive
// pieces the integrand is smooth, which matters for atoms such as
// mixtures of shifted copies that jump inside their range.
func (cv convolution) pieces(y float64, clip bool) []float64 {
	lo, hi := cv.x1.Bounds()
	if clip {
		// Restrict to X1 values that put X2 within its bounds.
		l2, h2 := cv.x2.Bounds()
		pre := stats.Interval{Lo: y - cv.c - cv.w2*l2, Hi: y - cv.c - cv.w2*h2}
		if pre.Lo > pre.Hi {
			pre.Lo, pre.Hi = pre.Hi, pre.Lo
		}
		r := stats.Interval{Lo: lo, Hi: hi}.Intersect(pre.Scale(1 / cv.w1))
		if r.Empty() {
			return nil
		}
		lo, hi = r.Lo, r.Hi
	}
	pts := []float64{lo, hi}
	add := func(x float64) {
		if lo < x && x < hi {
			pts = append(pts, x)
		}
	}
	for _, x := range stats.Breakpoints(cv.x1) {
		add(x)
	}
	for _, z := range stats.Breakpoints(cv.x2) {
		add((y - cv.c - cv.w2*z) / cv.w1)
	}
	sort.Float64s(pts)
	return pts
}

func (cv convolution) integrate(f func(float64) float64, pts []float64, tol float64) float64 {
	v, _ := mathx.IntegratePieces(f, pts, tol, tol)
	return v
}

// convolvePDF returns the density at y by numerical convolution.
func (m *RandomMixture) convolvePDF(y float64) float64 {
	cv := m.convolution()
	pts := cv.pieces(y, true)
	if pts == nil {
		return 0
	}
	jac := 1 / math.Abs(cv.w2)
	f := func(x float64) float64 {
		p := cv.x1.PDF(x)
		if p == 0 {
			return 0
		}
		return p * cv.x2.PDF(cv.arg(y, x)) * jac
	}
	return math.Max(0, cv.integrate(f, pts, m.cfg.ConvolutionPrecision))
}

// convolveCDF returns P(Y <= y), or P(Y > y) if upper, by integrating
// the density of X1 against the distribution function of X2.
func (m *RandomMixture) convolveCDF(y float64, upper bool) float64 {
	r := m.exact[0]
	switch {
	case y < r.Lo:
		if upper {
			return 1
		}
		return 0
	case y >= r.Hi:
		if upper {
			return 0
		}
		return 1
	}
	cv := m.convolution()
	// Y <= y iff w2·X2 <= y - c - w1·X1.
	useCDF := (cv.w2 > 0) != upper
	f := func(x float64) float64 {
		p := cv.x1.PDF(x)
		if p == 0 {
			return 0
		}
		z := cv.arg(y, x)
		if useCDF {
			return p * cv.x2.CDF(z)
		}
		return p * stats.Survival(cv.x2, z)
	}
	return clamp01(cv.integrate(f, cv.pieces(y, false), m.cfg.ConvolutionPrecision))
}
