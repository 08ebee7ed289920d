// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// computeMoments sets the mean and covariance of m from those of its
// atoms.
func (m *RandomMixture) computeMoments() {
	n := len(m.atoms)
	means := make([]float64, n)
	sds := make([]float64, n)
	for i, a := range m.atoms {
		means[i] = a.Mean()
		sds[i] = stats.StdDev(a)
	}

	var mean mat.VecDense
	mean.MulVec(m.weights, mat.NewVecDense(n, means))
	mean.AddVec(&mean, mat.NewVecDense(m.dim, m.constant))
	m.mean = mat.Col(nil, 0, &mean)

	// Independent atoms give cov = W diag(var) Wᵀ.
	var ws mat.Dense
	ws.Apply(func(_, i int, w float64) float64 { return w * sds[i] }, m.weights)
	m.cov = new(mat.SymDense)
	m.cov.SymOuterK(1, &ws)

	m.sigma = make([]float64, m.dim)
	for j := range m.sigma {
		m.sigma[j] = math.Sqrt(m.cov.At(j, j))
	}
}

// computeRanges sets the exact and clipped ranges of m and, unless it
// was overridden, its reference bandwidth.
func (m *RandomMixture) computeRanges() {
	m.exact = make([]stats.Interval, m.dim)
	m.clipped = make([]stats.Interval, m.dim)
	if !m.fixedH {
		m.h = make([]float64, m.dim)
	}
	for j := 0; j < m.dim; j++ {
		r := stats.Interval{Lo: m.constant[j], Hi: m.constant[j]}
		for i, a := range m.atoms {
			if w := m.cols[i][j]; w != 0 {
				r = r.Add(a.Range().Scale(w))
			}
		}
		m.exact[j] = r
		half := m.cfg.Beta * m.sigma[j]
		m.clipped[j] = r.Intersect(stats.Interval{Lo: m.mean[j] - half, Hi: m.mean[j] + half})

		if m.fixedH {
			continue
		}
		// The period must exceed the support so replicas of
		// the density do not overlap it.
		f := 1.0
		if r.Finite() {
			f = 2
		}
		period := math.Max(f*m.clipped[j].Width(), 2*m.cfg.Alpha*m.sigma[j])
		if !(period > 0) || math.IsInf(period, 1) {
			period = 1
		}
		m.h[j] = 2 * math.Pi / period
	}
}

// Mean returns the mean of a univariate mixture.
func (m *RandomMixture) Mean() float64 {
	return m.mean[0]
}

// Variance returns the variance of a univariate mixture.
func (m *RandomMixture) Variance() float64 {
	return m.cov.At(0, 0)
}

// StdDev returns the standard deviation of each coordinate.
func (m *RandomMixture) StdDev() []float64 {
	return append([]float64(nil), m.sigma...)
}

// Skewness returns the skewness of a univariate mixture, or NaN if
// an atom's shape is unknown.
func (m *RandomMixture) Skewness() float64 {
	s, _ := m.shape()
	return s
}

// ExKurtosis returns the excess kurtosis of a univariate mixture, or
// NaN if an atom's shape is unknown.
func (m *RandomMixture) ExKurtosis() float64 {
	_, k := m.shape()
	return k
}

// shape combines the third and fourth cumulants of the atoms, which
// add under independent sums.
func (m *RandomMixture) shape() (skew, exKurt float64) {
	if m.dim != 1 {
		return nan, nan
	}
	v := m.cov.At(0, 0)
	if v == 0 {
		return nan, nan
	}
	var k3, k4 float64
	for i, a := range m.atoms {
		w := m.cols[i][0]
		a3, a4 := stats.Cumulants(a)
		k3 += w * w * w * a3
		k4 += w * w * w * w * a4
	}
	return k3 / (v * math.Sqrt(v)), k4 / (v * v)
}

// equivalentNormal is the normal distribution with the mean and
// covariance of a mixture.
type equivalentNormal struct {
	uni   distuv.Normal  // dim == 1
	multi *distmv.Normal // dim > 1
}

func (e *equivalentNormal) prob(x []float64) float64 {
	if e.multi == nil {
		return e.uni.Prob(x[0])
	}
	return e.multi.Prob(x)
}

// equivalent returns m's equivalent normal distribution, building it
// on first use.
func (m *RandomMixture) equivalent() (*equivalentNormal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.normal != nil {
		return m.normal, nil
	}
	for j, s := range m.sigma {
		if !(s > 0) {
			return nil, errors.Wrapf(ErrInvalidArgument, "coordinate %d of the mixture has null variance", j)
		}
	}
	e := &equivalentNormal{}
	if m.dim == 1 {
		e.uni = distuv.Normal{Mu: m.mean[0], Sigma: m.sigma[0]}
	} else {
		n, ok := distmv.NewNormal(m.mean, m.cov, nil)
		if !ok {
			return nil, errors.Wrap(ErrInvalidArgument, "mixture covariance is not positive definite")
		}
		e.multi = n
	}
	m.normal = e
	return e, nil
}

// Materialize builds the lazily computed state of m that evaluation
// depends on. Calling it before evaluating m from several goroutines
// moves that work out of the parallel region.
func (m *RandomMixture) Materialize() error {
	if m.path == fourierPath {
		if _, err := m.equivalent(); err != nil {
			return err
		}
	}
	if m.path == discretePath {
		if _, err := m.jointSupport(); err != nil {
			return err
		}
	}
	return nil
}

// normalLogCharFunc returns the log characteristic function of m's
// equivalent normal distribution at t.
func (m *RandomMixture) normalLogCharFunc(t []float64) complex128 {
	var mu, q float64
	for j, tj := range t {
		mu += tj * m.mean[j]
	}
	if m.dim == 1 {
		q = t[0] * t[0] * m.cov.At(0, 0)
	} else {
		tv := mat.NewVecDense(m.dim, t)
		q = mat.Inner(tv, m.cov, tv)
	}
	return complex(-q/2, mu)
}
