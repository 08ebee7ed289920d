// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// Sample returns one draw of Y, drawing each atom independently from
// r.
func (m *RandomMixture) Sample(r *rand.Rand) []float64 {
	y := append([]float64(nil), m.constant...)
	for i, a := range m.atoms {
		x := a.Rand(r)
		for j, w := range m.cols[i] {
			y[j] += w * x
		}
	}
	return y
}

// SampleN returns n draws of Y as the rows of an n×Dim matrix.
func (m *RandomMixture) SampleN(n int, r *rand.Rand) *mat.Dense {
	xs := mat.NewDense(n, len(m.atoms), nil)
	for k := 0; k < n; k++ {
		for i, a := range m.atoms {
			xs.Set(k, i, a.Rand(r))
		}
	}
	ys := mat.NewDense(n, m.dim, nil)
	ys.Mul(xs, m.weights.T())
	for k := 0; k < n; k++ {
		row := ys.RawRowView(k)
		for j := range row {
			row[j] += m.constant[j]
		}
	}
	return ys
}

// Marginal returns the mixture of the coordinates of Y at indices,
// in that order. It shares m's atoms and configuration.
func (m *RandomMixture) Marginal(indices ...int) (*RandomMixture, error) {
	if len(indices) == 0 {
		return nil, errors.Wrap(ErrInvalidDimension, "marginal of no coordinates")
	}
	seen := make(map[int]bool)
	rows := make([][]float64, len(indices))
	c := make([]float64, len(indices))
	for k, j := range indices {
		if j < 0 || j >= m.dim {
			return nil, errors.Wrapf(ErrInvalidDimension, "marginal index %d out of range [0, %d)", j, m.dim)
		}
		if seen[j] {
			return nil, errors.Wrapf(ErrInvalidArgument, "marginal index %d repeated", j)
		}
		seen[j] = true
		rows[k] = mat.Row(nil, j, m.weights)
		c[k] = m.constant[j]
	}
	return New(m.atoms, rows, c, m.cfg)
}
