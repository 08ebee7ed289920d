// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"

	"github.com/aclements/go-randmix/mathx"
	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
)

// PDFAt returns the density of m at x. For discrete mixtures this is
// the probability mass at x.
func (m *RandomMixture) PDFAt(x []float64) (float64, error) {
	if len(x) != m.dim {
		return 0, dimensionError("point", len(x), m.dim)
	}
	switch m.path {
	case analyticalPath:
		return m.analyticalPDF(x), nil
	case discretePath:
		joint, err := m.jointSupport()
		if err != nil {
			return 0, err
		}
		return joint.PDF(x[0]), nil
	case convolutionPath:
		if !inside(x, m.exact) {
			return 0, nil
		}
		return m.convolvePDF(x[0]), nil
	case fourierPath:
		if !inside(x, m.clipped) {
			return 0, nil
		}
		if m.dim == 1 {
			return m.poissonPDF(x[0])
		}
		return m.poissonPDFN(x)
	}
	return 0, m.unsupported("PDF")
}

func (m *RandomMixture) unsupported(op string) error {
	return errors.Wrapf(ErrNotYetImplemented, "%s of a %s %d-dimensional mixture of %d atoms", op, m.kind, m.dim, len(m.atoms))
}

// CDFAt returns P(Y <= x) for a univariate mixture.
func (m *RandomMixture) CDFAt(x []float64) (float64, error) {
	return m.cdf(x, false)
}

// ComplementaryCDFAt returns P(Y > x) for a univariate mixture.
func (m *RandomMixture) ComplementaryCDFAt(x []float64) (float64, error) {
	return m.cdf(x, true)
}

func (m *RandomMixture) cdf(x []float64, upper bool) (float64, error) {
	if len(x) != m.dim {
		return 0, dimensionError("point", len(x), m.dim)
	}
	if m.dim != 1 {
		return 0, m.unsupported("CDF")
	}
	switch m.path {
	case analyticalPath:
		return m.analyticalCDF(x[0], upper)
	case discretePath:
		joint, err := m.jointSupport()
		if err != nil {
			return 0, err
		}
		if upper {
			return joint.Survival(x[0]), nil
		}
		return joint.CDF(x[0]), nil
	case convolutionPath:
		return m.convolveCDF(x[0], upper), nil
	case fourierPath:
		return m.poissonCDF(x[0], upper)
	}
	return 0, m.unsupported("CDF")
}

// Probability returns P(lo <= Y <= hi) for a univariate mixture. An
// empty interval has probability 0.
func (m *RandomMixture) Probability(lo, hi []float64) (float64, error) {
	if len(lo) != m.dim {
		return 0, dimensionError("lower bound", len(lo), m.dim)
	}
	if len(hi) != m.dim {
		return 0, dimensionError("upper bound", len(hi), m.dim)
	}
	if m.dim != 1 {
		return 0, m.unsupported("probability")
	}
	a, b := lo[0], hi[0]
	if !(a <= b) {
		return 0, nil
	}
	switch m.path {
	case analyticalPath:
		return m.analyticalProbability(a, b)
	case discretePath:
		joint, err := m.jointSupport()
		if err != nil {
			return 0, err
		}
		return clamp01(joint.CDF(b) - joint.CDF(a) + joint.PDF(a)), nil
	case convolutionPath:
		return clamp01(m.convolveCDF(b, false) - m.convolveCDF(a, false)), nil
	case fourierPath:
		r := stats.Interval{Lo: a, Hi: b}.Intersect(m.clipped[0])
		if r.Empty() {
			return 0, nil
		}
		p, err := m.poissonProbability(r.Lo, r.Hi)
		return clamp01(p), err
	}
	return 0, m.unsupported("probability")
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}

// blocks runs the doubling series over levels [k, 2k) until at least
// 2^BlockMin levels are summed and either a block contributes less
// than prec or 2^BlockMax levels are summed. block returns the sum of
// absolute contributions of one level.
func (m *RandomMixture) blocks(prec float64, block func(level int) float64) {
	kmin, kmax := 1<<m.cfg.BlockMin, 1<<m.cfg.BlockMax
	err := inf
	for k := 1; k < kmin || (k < kmax && err > prec); k *= 2 {
		err = 0
		for l := k; l < 2*k; l++ {
			err += block(l)
		}
	}
}

// poissonPDF evaluates the univariate density by the Poisson
// summation formula.
func (m *RandomMixture) poissonPDF(x float64) (float64, error) {
	n, err := m.equivalent()
	if err != nil {
		return 0, err
	}
	h := m.h[0]
	period := 2 * math.Pi / h
	value := mathx.Series(func(k float64) float64 {
		if k == 0 {
			return n.uni.Prob(x)
		}
		return n.uni.Prob(x+k*period) + n.uni.Prob(x-k*period)
	})
	m.blocks(m.cfg.PDFPrecision, func(l int) float64 {
		d := m.deltaAt(l).values[0]
		s, c := math.Sincos(float64(l) * h * x)
		term := h / math.Pi * (real(d)*c + imag(d)*s)
		value += term
		return math.Abs(term)
	})
	return math.Max(0, value), nil
}

// poissonProbability returns the probability of [a, b] under the
// periodized univariate density. b-a must not exceed the period.
func (m *RandomMixture) poissonProbability(a, b float64) (float64, error) {
	n, err := m.equivalent()
	if err != nil {
		return 0, err
	}
	h := m.h[0]
	period := 2 * math.Pi / h
	value := mathx.Series(func(k float64) float64 {
		if k == 0 {
			return normalProbability(n, a, b)
		}
		return normalProbability(n, a+k*period, b+k*period) + normalProbability(n, a-k*period, b-k*period)
	})
	m.blocks(m.cfg.CDFPrecision, func(l int) float64 {
		d := m.deltaAt(l).values[0]
		t := float64(l) * h
		sa, ca := math.Sincos(t * a)
		sb, cb := math.Sincos(t * b)
		term := (real(d)*(sb-sa) + imag(d)*(ca-cb)) / (math.Pi * float64(l))
		value += term
		return math.Abs(term)
	})
	return value, nil
}

// normalProbability returns the probability of [a, b] under the
// univariate equivalent normal, using whichever tail is smaller.
func normalProbability(n *equivalentNormal, a, b float64) float64 {
	if a > n.uni.Mu {
		return n.uni.Survival(a) - n.uni.Survival(b)
	}
	return n.uni.CDF(b) - n.uni.CDF(a)
}

// poissonCDF computes P(Y <= x), or P(Y > x) if upper, from the
// probability of the shorter side of x within the clipped range.
func (m *RandomMixture) poissonCDF(x float64, upper bool) (float64, error) {
	r := m.clipped[0]
	var below float64
	switch {
	case x < r.Lo:
		below = 0
	case x >= r.Hi:
		below = 1
	case x < m.mean[0]:
		p, err := m.poissonProbability(r.Lo, x)
		if err != nil {
			return 0, err
		}
		if upper {
			return clamp01(1 - p), nil
		}
		return clamp01(p), nil
	default:
		p, err := m.poissonProbability(x, r.Hi)
		if err != nil {
			return 0, err
		}
		if upper {
			return clamp01(p), nil
		}
		return clamp01(1 - p), nil
	}
	if upper {
		return 1 - below, nil
	}
	return below, nil
}

// poissonPDFN evaluates the multivariate density by the Poisson
// summation formula over lattice skins.
func (m *RandomMixture) poissonPDFN(x []float64) (float64, error) {
	n, err := m.equivalent()
	if err != nil {
		return 0, err
	}
	value, _ := m.normalSum(n, x, nil)

	factor := 2.0
	for _, h := range m.h {
		factor *= h / (2 * math.Pi)
	}
	m.blocks(m.cfg.PDFPrecision, func(l int) float64 {
		lv := m.deltaAt(l)
		abs := 0.0
		for i, p := range lv.points {
			theta := 0.0
			for a, pa := range p {
				theta += float64(pa) * m.h[a] * x[a]
			}
			s, c := math.Sincos(theta)
			d := lv.values[i]
			term := factor * (real(d)*c + imag(d)*s)
			value += term
			abs += math.Abs(term)
		}
		return abs
	})
	return math.Max(0, value), nil
}

// normalSum sums the equivalent normal density over the translates of
// x by the lattice with the given periods, skin by skin, until a skin
// adds a negligible amount or MaxNormalLevels skins are summed. If
// periods is nil, the periods are 2π/h. It also returns the number of
// skins summed.
func (m *RandomMixture) normalSum(n *equivalentNormal, x, periods []float64) (float64, int) {
	const eps = 0x1p-52
	if periods == nil {
		periods = make([]float64, m.dim)
		for a, h := range m.h {
			periods[a] = 2 * math.Pi / h
		}
	}
	y := make([]float64, m.dim)
	sum := 0.0
	for l := 0; l < m.cfg.MaxNormalLevels; l++ {
		level := 0.0
		for _, p := range skin(m.dim, l, false) {
			for a, pa := range p {
				y[a] = x[a] + float64(pa)*periods[a]
			}
			level += n.prob(y)
		}
		sum += level
		if l > 0 && level <= eps*sum {
			return sum, l + 1
		}
	}
	return sum, m.cfg.MaxNormalLevels
}
