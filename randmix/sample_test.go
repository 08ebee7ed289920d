// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func newPlane(t *testing.T) *RandomMixture {
	t.Helper()
	cfg, _ := quiet()
	m, err := New(
		[]stats.Atom{stats.StdNormal, stats.StdNormal, stats.Exponential{Lambda: 1}},
		[][]float64{{1, 0, 1}, {0, 1, 1}}, []float64{0, 0}, cfg)
	require.NoError(t, err)
	return m
}

func TestSampleMoments(t *testing.T) {
	m := newPlane(t)
	r := rand.New(rand.NewPCG(1, 2))
	assert.Len(t, m.Sample(r), 2)

	const n = 20000
	ys := m.SampleN(n, r)
	rows, cols := ys.Dims()
	require.Equal(t, n, rows)
	require.Equal(t, 2, cols)

	mean := m.MeanVector()
	for j := 0; j < 2; j++ {
		assert.InDelta(t, mean[j], stat.Mean(mat.Col(nil, j, ys), nil), 0.05)
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, ys, nil)
	want := m.Covariance()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, want.At(i, j), cov.At(i, j), 0.15, "cov[%d][%d]", i, j)
		}
	}
}

func TestMarginal(t *testing.T) {
	m := newPlane(t)
	y1, err := m.Marginal(1)
	require.NoError(t, err)
	assert.Equal(t, 1, y1.Dim())
	assert.InDelta(t, 1, y1.Mean(), 1e-12)
	assert.InDelta(t, 2, y1.Variance(), 1e-12)
	// N(0,1) + Exp(1) is a two-atom convolution.
	assert.Equal(t, convolutionPath, y1.path)

	swapped, err := m.Marginal(1, 0)
	require.NoError(t, err)
	for _, x := range [][]float64{{0, 1}, {2, 0.5}} {
		p, err := m.PDFAt(x)
		require.NoError(t, err)
		q, err := swapped.PDFAt([]float64{x[1], x[0]})
		require.NoError(t, err)
		assert.InDelta(t, p, q, 1e-7)
	}

	_, err = m.Marginal(2)
	assert.True(t, errors.Is(err, ErrInvalidDimension), "%v", err)
	_, err = m.Marginal(0, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
	_, err = m.Marginal()
	assert.True(t, errors.Is(err, ErrInvalidDimension), "%v", err)
}

func TestMinimumVolumeLevelSet(t *testing.T) {
	cfg, _ := quiet()
	m := mustNew1D(t, []stats.Atom{stats.StdNormal}, nil, 0, cfg)
	s, err := m.MinimumVolumeLevelSet(0.9, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	// The 90% set of N(0,1) is [-1.645, 1.645].
	want := math.Exp(-1.6448536269514722*1.6448536269514722/2) / math.Sqrt(2*math.Pi)
	assert.InDelta(t, want, s.Level, 0.01)
	assert.Equal(t, 0.9, s.Prob)

	in, err := s.Contains([]float64{0})
	require.NoError(t, err)
	assert.True(t, in)
	in, err = s.Contains([]float64{3})
	require.NoError(t, err)
	assert.False(t, in)
	_, err = s.Contains([]float64{0, 0})
	assert.True(t, errors.Is(err, ErrInvalidDimension), "%v", err)

	_, err = m.MinimumVolumeLevelSet(1.5, 0, nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)

	d := mustNew1D(t, []stats.Atom{stats.Poisson{Lambda: 2}}, nil, 0, cfg)
	_, err = d.MinimumVolumeLevelSet(0.5, 0, nil)
	assert.True(t, errors.Is(err, ErrNotYetImplemented), "%v", err)
}
