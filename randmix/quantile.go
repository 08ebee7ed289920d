// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"

	"github.com/aclements/go-randmix/mathx"
	"github.com/cockroachdb/errors"
)

// maxNewtonSteps bounds the Newton iteration of Quantile before it
// falls back to bisection.
const maxNewtonSteps = 16

// Quantile returns the smallest x such that P(Y <= x) >= q for a
// univariate mixture.
func (m *RandomMixture) Quantile(q float64) (float64, error) {
	if m.dim != 1 {
		return 0, m.unsupported("quantile")
	}
	if !(0 <= q && q <= 1) {
		return 0, errors.Wrapf(ErrInvalidArgument, "quantile level %v is not in [0, 1]", q)
	}
	switch m.path {
	case analyticalPath:
		return m.analyticalQuantile(q), nil
	case discretePath:
		joint, err := m.jointSupport()
		if err != nil {
			return 0, err
		}
		return joint.InvCDF(q), nil
	case convolutionPath, fourierPath:
		return m.continuousQuantile(q)
	}
	return 0, m.unsupported("quantile")
}

// QuantileEach returns Quantile(q) for each q in qs.
func (m *RandomMixture) QuantileEach(qs []float64) ([]float64, error) {
	res := make([]float64, len(qs))
	for i, q := range qs {
		x, err := m.Quantile(q)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

// continuousQuantile solves F(x) = q by Newton's method started from
// the quantile of the equivalent normal. Each step updates F by the
// probability of the interval between the old and new iterate.
func (m *RandomMixture) continuousQuantile(q float64) (float64, error) {
	r := m.clipped[0]
	switch q {
	case 0:
		return r.Lo, nil
	case 1:
		return r.Hi, nil
	}
	n, err := m.equivalent()
	if err != nil {
		return 0, err
	}
	x := math.Max(r.Lo, math.Min(r.Hi, n.uni.Quantile(q)))
	F, err := m.cdf1(x)
	if err != nil {
		return 0, err
	}
	tol := m.cfg.CDFPrecision * m.sigma[0]
	for i := 0; i < maxNewtonSteps; i++ {
		f, err := m.PDFAt([]float64{x})
		if err != nil {
			return 0, err
		}
		if !(f > 0) {
			break
		}
		step := (q - F) / f
		next := math.Max(r.Lo, math.Min(r.Hi, x+step))
		if math.Abs(next-x) < tol {
			return next, nil
		}
		var dF float64
		if next > x {
			dF, err = m.Probability([]float64{x}, []float64{next})
		} else {
			dF, err = m.Probability([]float64{next}, []float64{x})
			dF = -dF
		}
		if err != nil {
			return 0, err
		}
		x, F = next, F+dF
	}

	m.log.WithField("q", q).Debug("Newton iteration did not converge, bisecting")
	var ferr error
	x, _ = mathx.Bisect(func(x float64) float64 {
		F, err := m.cdf1(x)
		if err != nil && ferr == nil {
			ferr = err
		}
		return F - q
	}, r.Lo, r.Hi, m.cfg.CDFPrecision)
	return x, ferr
}

func (m *RandomMixture) cdf1(x float64) (float64, error) {
	return m.CDFAt([]float64{x})
}
