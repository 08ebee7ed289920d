// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math/cmplx"
	"math/rand/v2"

	"github.com/aclements/go-randmix/stats"
)

// A univariate RandomMixture is itself an atom, so it can be nested
// in other mixtures. Like the rest of stats.Atom, these methods return
// NaN where the vector methods would return an error.
var _ stats.DiscreteAtom = (*RandomMixture)(nil)

func orNaN(v float64, err error) float64 {
	if err != nil {
		return nan
	}
	return v
}

func (m *RandomMixture) PDF(x float64) float64 {
	return orNaN(m.PDFAt([]float64{x}))
}

func (m *RandomMixture) CDF(x float64) float64 {
	return orNaN(m.CDFAt([]float64{x}))
}

func (m *RandomMixture) Survival(x float64) float64 {
	return orNaN(m.ComplementaryCDFAt([]float64{x}))
}

func (m *RandomMixture) InvCDF(y float64) float64 {
	return orNaN(m.Quantile(y))
}

func (m *RandomMixture) CharFunc(t float64) complex128 {
	if m.dim != 1 {
		return cmplx.NaN()
	}
	if t == 0 {
		return 1
	}
	return cmplx.Exp(m.logCharFunc([]float64{t}))
}

func (m *RandomMixture) LogCharFunc(t float64) complex128 {
	if m.dim != 1 {
		return cmplx.NaN()
	}
	return m.logCharFunc([]float64{t})
}

// Support returns the joint support of a univariate discrete mixture,
// or nil if m is not one or the support is too large.
func (m *RandomMixture) Support() (xs, ps []float64) {
	if m.path != discretePath && !(m.analytical && m.dim == 1 && m.kind == stats.Discrete) {
		return nil, nil
	}
	if m.path == analyticalPath {
		xs, ps0, _ := support(m.atoms[0])
		ps = append([]float64(nil), ps0...)
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = m.constant[0] + m.cols[0][0]*x
		}
		if m.cols[0][0] < 0 {
			for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
				out[i], out[j] = out[j], out[i]
				ps[i], ps[j] = ps[j], ps[i]
			}
		}
		return out, ps
	}
	joint, err := m.jointSupport()
	if err != nil {
		return nil, nil
	}
	return joint.Support()
}

// Range returns the exact support of a univariate mixture.
func (m *RandomMixture) Range() stats.Interval {
	return m.exact[0]
}

// Bounds returns the range outside of which a univariate mixture is
// evaluated as 0.
func (m *RandomMixture) Bounds() (float64, float64) {
	r := m.evalRange()[0]
	if !r.Finite() {
		r = m.clipped[0]
	}
	return r.Lo, r.Hi
}

func (m *RandomMixture) Kind() stats.Kind {
	return m.kind
}

// Rand returns the first coordinate of a draw of m.
func (m *RandomMixture) Rand(r *rand.Rand) float64 {
	return m.Sample(r)[0]
}
