// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/aclements/go-randmix/internal/fftn"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// A Grid holds the values of a function on a regular tensor grid.
type Grid struct {
	// Shape is the number of points on each axis.
	Shape []int

	// Points[a] are the coordinates of the grid on axis a, in
	// increasing order.
	Points [][]float64

	// Values holds one value per grid point in row-major order:
	// the last axis varies fastest.
	Values []float64
}

// Len returns the number of points in g.
func (g *Grid) Len() int {
	return len(g.Values)
}

// index returns the multi-index of flat index i.
func (g *Grid) index(i int, idx []int) []int {
	if idx == nil {
		idx = make([]int, len(g.Shape))
	}
	for a := len(g.Shape) - 1; a >= 0; a-- {
		idx[a] = i % g.Shape[a]
		i /= g.Shape[a]
	}
	return idx
}

// Point returns the coordinates of flat index i.
func (g *Grid) Point(i int) []float64 {
	idx := g.index(i, nil)
	x := make([]float64, len(idx))
	for a, k := range idx {
		x[a] = g.Points[a][k]
	}
	return x
}

// At returns the value at the given multi-index.
func (g *Grid) At(idx ...int) float64 {
	if len(idx) != len(g.Shape) {
		panic("randmix: grid index has wrong dimension")
	}
	i := 0
	for a, k := range idx {
		if k < 0 || k >= g.Shape[a] {
			panic("randmix: grid index out of range")
		}
		i = i*g.Shape[a] + k
	}
	return g.Values[i]
}

// GridPDF evaluates the density of m on a regular grid of n[a] points
// per axis spanning [xMin[a], xMax[a]]. The mixture must have
// dimension 1, 2 or 3.
//
// On the Fourier path, the grid is centered on the mean and may be
// wider than requested, so callers should read the coordinates from
// the result's Points.
func (m *RandomMixture) GridPDF(xMin, xMax []float64, n []int) (*Grid, error) {
	if m.dim > 3 {
		return nil, errors.Wrapf(ErrInvalidArgument, "grid evaluation needs dimension 1, 2 or 3, got %d", m.dim)
	}
	if len(xMin) != m.dim {
		return nil, dimensionError("grid lower corner", len(xMin), m.dim)
	}
	if len(xMax) != m.dim {
		return nil, dimensionError("grid upper corner", len(xMax), m.dim)
	}
	if len(n) != m.dim {
		return nil, dimensionError("grid shape", len(n), m.dim)
	}
	for a := range n {
		if n[a] < 1 {
			return nil, errors.Wrapf(ErrInvalidArgument, "grid axis %d has %d points", a, n[a])
		}
		if !(xMin[a] <= xMax[a]) {
			return nil, errors.Wrapf(ErrInvalidArgument, "grid axis %d has bounds [%v, %v]", a, xMin[a], xMax[a])
		}
	}
	if m.path == unsupportedPath {
		return nil, m.unsupported("grid PDF")
	}
	if err := m.Materialize(); err != nil {
		return nil, err
	}
	if m.path == fourierPath {
		return m.fourierGrid(xMin, xMax, n)
	}

	g := newGrid(n)
	for a := range n {
		if n[a] == 1 {
			g.Points[a][0] = xMin[a]
			continue
		}
		floats.Span(g.Points[a], xMin[a], xMax[a])
	}
	err := parallelFor(g.Len(), func(i int) error {
		v, err := m.PDFAt(g.Point(i))
		g.Values[i] = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func newGrid(n []int) *Grid {
	g := &Grid{Shape: append([]int(nil), n...), Points: make([][]float64, len(n))}
	total := 1
	for a, k := range n {
		g.Points[a] = make([]float64, k)
		total *= k
	}
	g.Values = make([]float64, total)
	return g
}

// fourierGrid evaluates the Poisson summation formula on the grid
// x_k = mean + (2k+1-N)·b·σ/N of each axis, with period 2·b·σ, using
// one FFT per orthant of the frequency lattice.
func (m *RandomMixture) fourierGrid(xMin, xMax []float64, n []int) (*Grid, error) {
	normal, err := m.equivalent()
	if err != nil {
		return nil, err
	}
	d := m.dim
	h := make([]float64, d)
	tau := make([]float64, d)
	periods := make([]float64, d)
	g := newGrid(n)
	for a := 0; a < d; a++ {
		mu, s := m.mean[a], m.sigma[a]
		reach := math.Max(mu-xMin[a], xMax[a]-mu)
		// Half-width in whole standard deviations. The slack
		// absorbs rounding in reach/σ.
		b := math.Max(math.Ceil(reach/s-1e-9), 1)
		half := b * s
		if lo, hi := mu-half, mu+half; lo < xMin[a]-1e-9*half || hi > xMax[a]+1e-9*half {
			m.log.WithFields(logrus.Fields{
				"axis":      a,
				"requested": []float64{xMin[a], xMax[a]},
				"effective": []float64{lo, hi},
			}).Warn("grid widened to be symmetric around the mean")
		}
		h[a] = math.Pi / half
		tau[a] = mu / half
		periods[a] = 2 * half
		na := float64(n[a])
		for k := range g.Points[a] {
			g.Points[a][k] = mu + (2*float64(k)+1-na)*half/na
		}
	}

	levels := make([]int, g.Len())
	err = parallelFor(g.Len(), func(i int) error {
		g.Values[i], levels[i] = m.normalSum(normal, g.Point(i), periods)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if levelMax := slices.Max(levels); levelMax >= m.cfg.MaxNormalLevels {
		m.log.WithField("levels", levelMax).Warn("normal sum truncated on the grid")
	} else {
		m.log.WithField("levels", levelMax).Debug("normal sum levels on the grid")
	}

	sum := make([]complex128, g.Len())
	idx := make([]int, d)
	for _, p := range signPatterns(d) {
		var act, shape []int
		for a, pa := range p {
			if pa != 0 {
				act = append(act, a)
				shape = append(shape, n[a])
			}
		}
		sub := &Grid{Shape: shape}
		total := 1
		for _, k := range shape {
			total *= k
		}
		z := make([]complex128, total)
		err := parallelFor(total, func(i int) error {
			js := sub.index(i, nil)
			t := make([]float64, d)
			phase := 0.0
			for s, a := range act {
				ma := float64(p[a] * (js[s] + 1))
				na := float64(n[a])
				t[a] = ma * h[a]
				phase += ma * math.Pi * (tau[a] + (1-na)/na)
			}
			z[i] = m.delta(t) * cmplx.Rect(1, -phase)
			return nil
		})
		if err != nil {
			return nil, err
		}

		dirs := make([]fftn.Direction, len(act))
		for s, a := range act {
			dirs[s] = fftn.Forward
			if p[a] < 0 {
				dirs[s] = fftn.Backward
			}
		}
		fftn.NewPlan(shape...).Transform(z, dirs...)

		for i := range sum {
			g.index(i, idx)
			si, twist := 0, 0.0
			for s, a := range act {
				si = si*shape[s] + idx[a]
				twist += float64(p[a]*idx[a]) / float64(n[a])
			}
			sum[i] += z[si] * cmplx.Rect(1, -2*math.Pi*twist)
		}
	}

	scale := 2.0
	for _, ha := range h {
		scale *= ha / (2 * math.Pi)
	}
	for i, s := range sum {
		g.Values[i] = math.Max(0, g.Values[i]+scale*real(s))
	}
	return g, nil
}

// signPatterns returns the vectors in {-1, 0, 1}^d that are not zero
// and whose first non-zero entry is 1. Together with their negations
// they index the orthants of Z^d \ {0}.
func signPatterns(d int) [][]int {
	var out [][]int
	p := make([]int, d)
	var rec func(a int)
	rec = func(a int) {
		if a == d {
			if firstNonZeroPositive(p) {
				out = append(out, append([]int(nil), p...))
			}
			return
		}
		for _, v := range []int{1, 0, -1} {
			p[a] = v
			rec(a + 1)
		}
	}
	rec(0)
	return out
}
