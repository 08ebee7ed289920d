// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math/cmplx"
	"sync"
	"testing"

	"github.com/aclements/go-randmix/stats"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"
)

// mixed is a univariate mixture on the Fourier path.
var (
	mixedAtoms = []stats.Atom{
		stats.Uniform{Min: 0, Max: 1},
		stats.Uniform{Min: 0, Max: 2},
		stats.Normal{Mu: 1, Sigma: 0.5},
		stats.Exponential{Lambda: 2},
	}
	mixedWeights = []float64{1, -1, 2, 1}
)

func newMixed(t *testing.T, simplify bool) *RandomMixture {
	cfg, _ := quiet()
	cfg.DisableSimplification = !simplify
	m := mustNew1D(t, mixedAtoms, mixedWeights, 0.5, cfg)
	require.Equal(t, fourierPath, m.path)
	return m
}

func TestAnalyticalFourierAgreement(t *testing.T) {
	cfg, _ := quiet()
	// Widen the range so the gamma tail beyond it is negligible.
	cfg.Beta = 12
	m := mustNew1D(t, []stats.Atom{stats.Gamma{K: 5, Lambda: 1}}, []float64{2}, 0, cfg)
	require.True(t, m.IsAnalytical())

	for _, x := range []float64{1, 4, 8, 10, 15, 30} {
		want := m.analyticalPDF([]float64{x})
		got, err := m.poissonPDF(x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-8, "pdf(%v)", x)

		wantF, err := m.analyticalCDF(x, false)
		require.NoError(t, err)
		gotF, err := m.poissonCDF(x, false)
		require.NoError(t, err)
		assert.InDelta(t, wantF, gotF, 1e-8, "cdf(%v)", x)
	}
}

func TestAnalyticalFourierAgreementND(t *testing.T) {
	cfg, _ := quiet()
	// A bimodal atom, so the mixture is far from its equivalent
	// normal.
	g := stats.NewMixture([]stats.Atom{stats.Normal{Mu: 0, Sigma: 0.5}, stats.Normal{Mu: 2, Sigma: 0.7}}, []float64{0.4, 0.6})
	n := stats.Normal{Mu: 1, Sigma: 1}
	m, err := New([]stats.Atom{g, n}, [][]float64{{1, 0.5}, {0, 1}}, []float64{0, -1}, cfg)
	require.NoError(t, err)
	require.Len(t, m.Atoms(), 2)
	require.True(t, m.IsAnalytical())

	for _, y := range [][]float64{{1, 0}, {0.5, -1}, {2, 1}, {3, 0.5}, {-0.5, 0.5}} {
		// Invert y = W·x + c; W has unit determinant.
		x2 := y[1] + 1
		x1 := y[0] - 0.5*x2
		want := g.PDF(x1) * n.PDF(x2)
		assert.InDelta(t, want, m.analyticalPDF(y), 1e-12, "analytical pdf(%v)", y)
		got, err := m.poissonPDFN(y)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-7, "pdf(%v)", y)
	}
}

func TestSimplificationInvariance(t *testing.T) {
	simple, full := newMixed(t, true), newMixed(t, false)
	assert.Less(t, len(simple.Atoms()), len(full.Atoms()))
	assert.InDelta(t, full.Mean(), simple.Mean(), 1e-12)
	assert.InDelta(t, full.Variance(), simple.Variance(), 1e-12)

	for _, x := range []float64{-3, -1, 0, 0.5, 1.7, 3, 6} {
		assert.InDelta(t, full.PDF(x), simple.PDF(x), 1e-7, "pdf(%v)", x)
		assert.InDelta(t, full.CDF(x), simple.CDF(x), 1e-7, "cdf(%v)", x)
	}
	for _, u := range []float64{-4, -0.3, 0.1, 1, 2.5} {
		want, err := full.CharFuncAt([]float64{u})
		require.NoError(t, err)
		got, err := simple.CharFuncAt([]float64{u})
		require.NoError(t, err)
		assert.InDelta(t, 0, cmplx.Abs(want-got), 1e-10, "φ(%v)", u)
	}
}

func TestCharFunc(t *testing.T) {
	m := newMixed(t, true)
	phi, err := m.CharFuncAt([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, complex128(1), phi)
	assert.Equal(t, complex128(1), m.CharFunc(0))
	for _, u := range []float64{-10, -1, 0.01, 0.5, 3, 100} {
		assert.LessOrEqual(t, cmplx.Abs(m.CharFunc(u)), 1+1e-12, "|φ(%v)|", u)
		// φ(-u) is the conjugate of φ(u).
		assert.InDelta(t, 0, cmplx.Abs(m.CharFunc(-u)-cmplx.Conj(m.CharFunc(u))), 1e-13)
	}
	_, err = m.CharFuncAt([]float64{1, 2})
	assert.Error(t, err)
}

func TestDeltaFromLogs(t *testing.T) {
	b := complex(-0.3, 1.2)
	for _, d := range []complex128{1e-6, complex(0, 3e-6), complex(-2e-6, 2e-6), 1e-3} {
		want := cmplx.Exp(b+d) - cmplx.Exp(b)
		got := deltaFromLogs(b+d, b)
		assert.InDelta(t, 0, cmplx.Abs(want-got), 1e-15, "d=%v", d)
	}
	assert.Equal(t, complex128(0), deltaFromLogs(b, b))
}

func TestIntervalAdditivity(t *testing.T) {
	m := newMixed(t, true)
	prob := func(a, b float64) float64 {
		p, err := m.Probability([]float64{a}, []float64{b})
		require.NoError(t, err)
		return p
	}
	for _, c := range [][3]float64{{-2, 0, 1}, {-0.5, 0.5, 4}, {1, 2, 3}} {
		a, b, d := c[0], c[1], c[2]
		assert.InDelta(t, prob(a, d), prob(a, b)+prob(b, d), 1e-9, "%v", c)
	}
	assert.Equal(t, 0.0, prob(2, 1))
	assert.InDelta(t, 1, prob(-100, 100), 1e-9)
}

func TestCDFMonotone(t *testing.T) {
	m := newMixed(t, true)
	lo, hi := m.Bounds()
	assert.Equal(t, 0.0, m.CDF(lo))
	assert.Equal(t, 1.0, m.CDF(hi))
	prev := 0.0
	for i := 0; i <= 200; i++ {
		x := lo + (hi-lo)*float64(i)/200
		F := m.CDF(x)
		assert.GreaterOrEqual(t, F, prev-1e-9, "cdf(%v)", x)
		assert.InDelta(t, 1, F+m.Survival(x), 1e-12, "cdf(%v)+survival(%v)", x, x)
		prev = F
	}
}

func TestNormalization(t *testing.T) {
	m := newMixed(t, true)
	require.NoError(t, m.Materialize())
	lo, hi := m.Bounds()
	total := quad.Fixed(m.PDF, lo, hi, 400, nil, 4)
	assert.InDelta(t, 1, total, 1e-6)
}

func TestQuantileFourier(t *testing.T) {
	m := newMixed(t, true)
	for _, q := range []float64{0.001, 0.1, 0.5, 0.9, 0.999} {
		x, err := m.Quantile(q)
		require.NoError(t, err)
		assert.InDelta(t, q, m.CDF(x), 1e-7, "F(Q(%v))", q)
	}
	lo, hi := m.Bounds()
	assert.Equal(t, lo, m.InvCDF(0))
	assert.Equal(t, hi, m.InvCDF(1))
}

func TestCacheDeterminism(t *testing.T) {
	a, b := newMixed(t, true), newMixed(t, true)
	const x = 0.3
	first := a.PDF(x)
	for i := 0; i < 50; i++ {
		b.PDF(-3 + 0.17*float64(i))
	}
	assert.Equal(t, first, b.PDF(x))
	assert.Equal(t, first, a.PDF(x))
}

func TestCacheOverflow(t *testing.T) {
	cfg, hook := quiet()
	big := mustNew1D(t, mixedAtoms, mixedWeights, 0.5, cfg)
	cfg.MaxSize = 3
	small := mustNew1D(t, mixedAtoms, mixedWeights, 0.5, cfg)
	for _, x := range []float64{-1, 0.5, 2} {
		assert.Equal(t, big.PDF(x), small.PDF(x))
		assert.Equal(t, big.CDF(x), small.CDF(x))
	}
	assert.Equal(t, 3, small.cache.len())
	var noted int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel && e.Message == "characteristic function cache is full, computing without caching" {
			noted++
		}
	}
	assert.Equal(t, 1, noted)
}

func TestSetLoggerKeepsCache(t *testing.T) {
	cfg, old := quiet()
	cfg.MaxSize = 3
	m := mustNew1D(t, mixedAtoms, mixedWeights, 0.5, cfg)
	m.cache.level(1, m.computeLevel)
	require.Equal(t, 1, m.cache.len())

	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	m.SetLogger(l)
	assert.Equal(t, 1, m.cache.len())
	m.PDF(0.5)
	assert.Equal(t, 3, m.cache.len())

	const notice = "characteristic function cache is full, computing without caching"
	var noted bool
	for _, e := range hook.AllEntries() {
		noted = noted || e.Message == notice
	}
	assert.True(t, noted)
	for _, e := range old.AllEntries() {
		assert.NotEqual(t, notice, e.Message)
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	serial, shared := newMixed(t, true), newMixed(t, true)
	xs := make([]float64, 40)
	want := make([]float64, len(xs))
	for i := range xs {
		xs[i] = -3 + 0.2*float64(i)
		want[i] = serial.PDF(xs[i])
	}
	require.NoError(t, shared.Materialize())
	got := make([]float64, len(xs))
	var wg sync.WaitGroup
	for i := range xs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = shared.PDF(xs[i])
		}(i)
	}
	wg.Wait()
	assert.Equal(t, want, got)
}

func TestSkin(t *testing.T) {
	linf := func(p []int) int {
		m := 0
		for _, v := range p {
			if v < 0 {
				v = -v
			}
			m = max(m, v)
		}
		return m
	}
	for _, c := range []struct{ dim, level, n int }{
		{1, 0, 1}, {1, 3, 2}, {2, 1, 8}, {2, 2, 16}, {3, 1, 26}, {3, 2, 98},
	} {
		full := skin(c.dim, c.level, false)
		assert.Len(t, full, c.n, "skin(%d, %d)", c.dim, c.level)
		seen := map[[3]int]bool{}
		for _, p := range full {
			assert.Equal(t, c.level, linf(p))
			var k [3]int
			copy(k[:], p)
			assert.False(t, seen[k], "duplicate %v", p)
			seen[k] = true
		}
		half := skin(c.dim, c.level, true)
		if c.level == 0 {
			assert.Empty(t, half)
			continue
		}
		assert.Len(t, half, c.n/2)
		for _, p := range half {
			assert.True(t, firstNonZeroPositive(p), "%v", p)
		}
	}
}
