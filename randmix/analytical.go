// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// analyticalPDF returns the density of m at x by the change of
// variables q = W⁻¹(x - c). Discrete mixtures get no Jacobian, so
// this is then a probability mass.
func (m *RandomMixture) analyticalPDF(x []float64) float64 {
	if m.dim == 1 {
		a := m.atoms[0]
		p := a.PDF((x[0] - m.constant[0]) / m.cols[0][0])
		if m.kind != stats.Discrete {
			p *= math.Abs(m.invDet)
		}
		return p
	}
	u := make([]float64, m.dim)
	for j := range u {
		u[j] = x[j] - m.constant[j]
	}
	var q mat.VecDense
	q.MulVec(m.inverse, mat.NewVecDense(m.dim, u))
	p := 1.0
	for i, a := range m.atoms {
		p *= a.PDF(q.AtVec(i))
		if p == 0 {
			return 0
		}
	}
	if m.kind != stats.Discrete {
		p *= math.Abs(m.invDet)
	}
	return p
}

// analyticalCDF returns P(Y <= x), or P(Y > x) if upper is set, for a
// univariate analytical mixture.
func (m *RandomMixture) analyticalCDF(x float64, upper bool) (float64, error) {
	if m.dim != 1 {
		return 0, errors.Wrapf(ErrNotYetImplemented, "CDF of a %d-dimensional analytical mixture", m.dim)
	}
	a, w := m.atoms[0], m.cols[0][0]
	q := (x - m.constant[0]) / w
	if w < 0 {
		// Y <= x iff X >= q.
		upper = !upper
	}
	var p float64
	if upper {
		p = stats.Survival(a, q)
	} else {
		p = a.CDF(q)
	}
	if w < 0 && a.Kind() != stats.Continuous {
		// Move the mass at q to the other side.
		if upper {
			p += a.PDF(q)
		} else {
			p -= a.PDF(q)
		}
	}
	return math.Max(0, math.Min(1, p)), nil
}

// analyticalProbability returns P(lo <= Y <= hi) for a univariate
// analytical mixture.
func (m *RandomMixture) analyticalProbability(lo, hi float64) (float64, error) {
	below, err := m.analyticalCDF(lo, false)
	if err != nil {
		return 0, err
	}
	upTo, err := m.analyticalCDF(hi, false)
	if err != nil {
		return 0, err
	}
	p := upTo - below
	if m.kind != stats.Continuous {
		p += m.analyticalPDF([]float64{lo})
	}
	return math.Max(0, math.Min(1, p)), nil
}

// analyticalQuantile returns the q quantile of a univariate analytical
// mixture.
func (m *RandomMixture) analyticalQuantile(q float64) float64 {
	a, w := m.atoms[0], m.cols[0][0]
	if w < 0 {
		q = 1 - q
	}
	return m.constant[0] + w*a.InvCDF(q)
}
