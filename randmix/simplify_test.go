// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"testing"

	"github.com/aclements/go-randmix/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func simplify1D(t *testing.T, atoms []stats.Atom, w []float64, c float64) *triple {
	t.Helper()
	tr, err := simplify(atoms, mat.NewDense(1, len(atoms), w), []float64{c}, DefaultConfig())
	require.NoError(t, err)
	return tr
}

func TestSimplifyUniforms(t *testing.T) {
	tr := simplify1D(t, []stats.Atom{stats.Uniform{Min: 0, Max: 1}, stats.Uniform{Min: 0, Max: 3}}, []float64{1, 1}, 0)
	require.Len(t, tr.terms, 1)
	assert.Equal(t, stats.Trapezoidal{A: 0, B: 1, C: 3, D: 4}, tr.terms[0].atom)

	// A negative weight reflects the uniform before merging.
	tr = simplify1D(t, []stats.Atom{stats.Uniform{Min: 0, Max: 1}, stats.Uniform{Min: 0, Max: 1}}, []float64{1, -1}, 0)
	require.Len(t, tr.terms, 1)
	assert.Equal(t, stats.Triangular{A: -1, M: 0, B: 1}, tr.terms[0].atom)

	// An odd uniform absorbs the normal part.
	tr = simplify1D(t, []stats.Atom{stats.Uniform{Min: 0, Max: 1}, stats.Normal{Mu: 1, Sigma: 2}}, []float64{1, 1}, 0.5)
	require.Len(t, tr.terms, 1)
	assert.Equal(t, stats.SmoothedUniform{A: 0, B: 1, Sigma: 2}, tr.terms[0].atom)
	assert.Equal(t, []float64{1.5}, tr.constant)
}

func TestSimplifyGammas(t *testing.T) {
	tr := simplify1D(t, []stats.Atom{stats.Exponential{Lambda: 1}, stats.Gamma{K: 2, Lambda: 0.5}}, []float64{-2, -1}, 0)
	require.Len(t, tr.terms, 1)
	assert.Equal(t, stats.Gamma{K: 3, Lambda: 0.5}, tr.terms[0].atom)
	assert.Equal(t, []float64{-1}, tr.terms[0].w)

	// Different scales stay apart.
	tr = simplify1D(t, []stats.Atom{stats.Exponential{Lambda: 1}, stats.Exponential{Lambda: 2}}, []float64{1, 1}, 0)
	assert.Len(t, tr.terms, 2)
}

func TestSimplifyDiscrete(t *testing.T) {
	b := stats.Bernoulli{P: 0.3}
	tr := simplify1D(t, []stats.Atom{b, b, stats.Binomial{N: 3, P: 0.3}}, []float64{1, 1, 1}, 0)
	require.Len(t, tr.terms, 1)
	assert.Equal(t, stats.Binomial{N: 5, P: 0.3}, tr.terms[0].atom)

	tr = simplify1D(t, []stats.Atom{stats.Poisson{Lambda: 1}, stats.Poisson{Lambda: 2.5}}, []float64{2, 2}, 0)
	require.Len(t, tr.terms, 1)
	assert.Equal(t, stats.Poisson{Lambda: 3.5}, tr.terms[0].atom)
	assert.Equal(t, []float64{2}, tr.terms[0].w)
}

func TestSimplifyPairing(t *testing.T) {
	tr := simplify1D(t, []stats.Atom{stats.StdNormal, stats.Bernoulli{P: 0.5}}, []float64{1, 1}, 0)
	require.Len(t, tr.terms, 1)
	mix, ok := tr.terms[0].atom.(*stats.Mixture)
	require.True(t, ok, "got %T", tr.terms[0].atom)
	for _, x := range []float64{-1, 0, 0.5, 2} {
		want := 0.5*stats.StdNormal.PDF(x) + 0.5*stats.StdNormal.PDF(x-1)
		assert.InDelta(t, want, mix.PDF(x), 1e-14)
	}
}

func TestSimplifyND(t *testing.T) {
	atoms := []stats.Atom{stats.Dirac{X: 2}, stats.Uniform{Min: 0, Max: 1}, stats.Uniform{Min: 0, Max: 1}}
	w := mat.NewDense(2, 3, []float64{
		1, 1, 0,
		3, 0, 1,
	})
	tr, err := simplify(atoms, w, []float64{0, 1}, DefaultConfig())
	require.NoError(t, err)
	// Only the Dirac atom is folded; the uniforms keep their columns.
	require.Len(t, tr.terms, 2)
	assert.Equal(t, []float64{2, 7}, tr.constant)
	assert.Equal(t, []float64{1, 0}, tr.terms[0].w)
	assert.Equal(t, []float64{0, 1}, tr.terms[1].w)
}

func TestSimplifyDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisableSimplification = true
	atoms := []stats.Atom{stats.Dirac{X: 1}, stats.Uniform{Min: 0, Max: 1}}
	tr, err := simplify(atoms, mat.NewDense(1, 2, []float64{1, 1}), []float64{0}, cfg)
	require.NoError(t, err)
	assert.Len(t, tr.terms, 2)
}
