// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"
	"testing"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// warned reports whether hook recorded a warning with message msg.
func warned(hook *test.Hook, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == msg {
			return true
		}
	}
	return false
}

const widened = "grid widened to be symmetric around the mean"

func TestGridPDF1D(t *testing.T) {
	cfg, hook := quiet()
	m := mustNew1D(t, []stats.Atom{stats.StdNormal, stats.Exponential{Lambda: 1}, stats.Gamma{K: 2, Lambda: 0.5}}, nil, 0, cfg)
	require.Equal(t, fourierPath, m.path)

	// Replicas of the density lie a period of 20σ apart, far in
	// its tails.
	mu, s := m.Mean(), math.Sqrt(m.Variance())
	lo, hi := mu-10*s, mu+10*s
	g, err := m.GridPDF([]float64{lo}, []float64{hi}, []int{128})
	require.NoError(t, err)
	require.Equal(t, []int{128}, g.Shape)
	require.Len(t, g.Values, 128)

	// A symmetric request is kept as is.
	xs := g.Points[0]
	assert.InDelta(t, mu, (xs[0]+xs[127])/2, 1e-9)
	assert.InDelta(t, 20*s/128, xs[1]-xs[0], 1e-9)
	assert.GreaterOrEqual(t, xs[0], lo)
	assert.LessOrEqual(t, xs[127], hi)
	assert.False(t, warned(hook, widened))

	checked := 0
	for k, x := range xs {
		if math.Abs(x-mu) > 4*s {
			continue
		}
		checked++
		assert.InDelta(t, m.PDF(x), g.At(k), 1e-6, "x=%v", x)
	}
	assert.NotZero(t, checked)
}

func TestGridWidening(t *testing.T) {
	cfg, hook := quiet()
	m := mustNew1D(t, []stats.Atom{stats.StdNormal, stats.Exponential{Lambda: 1}}, nil, 0, cfg)
	require.Equal(t, fourierPath, m.path)
	mu, s := m.Mean(), math.Sqrt(m.Variance())

	// A symmetric request of a whole number of σ is not widened.
	g, err := m.GridPDF([]float64{mu - 2*s}, []float64{mu + 2*s}, []int{64})
	require.NoError(t, err)
	assert.InDelta(t, mu-2*s+4*s/128, g.Points[0][0], 1e-9)
	assert.InDelta(t, mu+2*s-4*s/128, g.Points[0][63], 1e-9)
	assert.False(t, warned(hook, widened))

	// An asymmetric request is widened to the larger side.
	g, err = m.GridPDF([]float64{mu - 2*s}, []float64{mu + 6*s}, []int{64})
	require.NoError(t, err)
	assert.InDelta(t, mu, (g.Points[0][0]+g.Points[0][63])/2, 1e-9)
	assert.Less(t, g.Points[0][0], mu-2*s)
	assert.InDelta(t, 12*s/64, g.Points[0][1]-g.Points[0][0], 1e-9)
	assert.True(t, warned(hook, widened))
}

func TestGridNormalLevels(t *testing.T) {
	cfg, hook := quiet()
	atoms := []stats.Atom{stats.StdNormal, stats.Exponential{Lambda: 1}}
	m := mustNew1D(t, atoms, nil, 0, cfg)
	mu, s := m.Mean(), math.Sqrt(m.Variance())
	_, err := m.GridPDF([]float64{mu - s}, []float64{mu + s}, []int{16})
	require.NoError(t, err)
	assert.False(t, warned(hook, "normal sum truncated on the grid"))
	var levels int
	for _, e := range hook.AllEntries() {
		if e.Message == "normal sum levels on the grid" {
			levels = e.Data["levels"].(int)
		}
	}
	assert.Greater(t, levels, 1)
	assert.Less(t, levels, DefaultConfig().MaxNormalLevels)

	normal, err := m.equivalent()
	require.NoError(t, err)
	_, n := m.normalSum(normal, []float64{mu}, []float64{2 * s})
	assert.Greater(t, n, 1)
	assert.Less(t, n, DefaultConfig().MaxNormalLevels)

	cfg.MaxNormalLevels = 1
	m = mustNew1D(t, atoms, nil, 0, cfg)
	_, err = m.GridPDF([]float64{mu - s}, []float64{mu + s}, []int{16})
	require.NoError(t, err)
	assert.True(t, warned(hook, "normal sum truncated on the grid"))
	assert.True(t, errors.Is(m.SetMaxNormalLevels(0), ErrInvalidArgument))
	require.NoError(t, m.SetMaxNormalLevels(8))
	assert.Equal(t, 8, m.Config().MaxNormalLevels)
}

func TestGridPDF2D(t *testing.T) {
	cfg, _ := quiet()
	m, err := New(
		[]stats.Atom{stats.StdNormal, stats.StdNormal, stats.Exponential{Lambda: 1}},
		[][]float64{{1, 0, 1}, {0, 1, 1}}, nil, cfg)
	require.NoError(t, err)
	require.Equal(t, fourierPath, m.path)

	mu, s := m.MeanVector(), m.StdDev()
	lo := []float64{mu[0] - 8*s[0], mu[1] - 8*s[1]}
	hi := []float64{mu[0] + 8*s[0], mu[1] + 8*s[1]}
	g, err := m.GridPDF(lo, hi, []int{64, 64})
	require.NoError(t, err)
	require.Equal(t, 64*64, g.Len())

	for i := 0; i < g.Len(); i++ {
		x := g.Point(i)
		if math.Abs(x[0]-mu[0]) > 2*s[0] || math.Abs(x[1]-mu[1]) > 2*s[1] {
			continue
		}
		want, err := m.PDFAt(x)
		require.NoError(t, err)
		assert.InDelta(t, want, g.Values[i], 1e-6, "x=%v", x)
	}
}

func TestGridPDFPointwise(t *testing.T) {
	cfg, _ := quiet()
	m := mustNew1D(t, []stats.Atom{stats.StdNormal}, []float64{2}, 0, cfg)
	g, err := m.GridPDF([]float64{-1}, []float64{1}, []int{5})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, g.Points[0])
	for k, x := range g.Points[0] {
		assert.InDelta(t, m.PDF(x), g.At(k), 1e-15)
	}

	g, err = m.GridPDF([]float64{0.25}, []float64{3}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25}, g.Points[0])
}

func TestGridPDFErrors(t *testing.T) {
	cfg, _ := quiet()
	m1 := mustNew1D(t, []stats.Atom{stats.StdNormal}, nil, 0, cfg)
	_, err := m1.GridPDF([]float64{0, 0}, []float64{1}, []int{4})
	assert.True(t, errors.Is(err, ErrInvalidDimension), "%v", err)
	_, err = m1.GridPDF([]float64{0}, []float64{1}, []int{0})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
	_, err = m1.GridPDF([]float64{1}, []float64{0}, []int{4})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)

	eye := [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	n := stats.StdNormal
	m4, err := New([]stats.Atom{n, n, n, n}, eye, nil, cfg)
	require.NoError(t, err)
	_, err = m4.GridPDF(make([]float64, 4), []float64{1, 1, 1, 1}, []int{2, 2, 2, 2})
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
}

func TestGridIndexing(t *testing.T) {
	g := newGrid([]int{2, 3})
	g.Points[0] = []float64{0, 1}
	g.Points[1] = []float64{10, 20, 30}
	for i := range g.Values {
		g.Values[i] = float64(i)
	}
	assert.Equal(t, 5.0, g.At(1, 2))
	assert.Equal(t, []float64{1, 10}, g.Point(3))
	assert.Panics(t, func() { g.At(2, 0) })
	assert.Panics(t, func() { g.At(0) })
}

func TestSignPatterns(t *testing.T) {
	for d, want := range map[int]int{1: 1, 2: 4, 3: 13} {
		ps := signPatterns(d)
		assert.Len(t, ps, want, "d=%d", d)
		for _, p := range ps {
			assert.True(t, firstNonZeroPositive(p), "%v", p)
		}
	}
}
