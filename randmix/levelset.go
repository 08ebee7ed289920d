// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math/rand/v2"
	"sort"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"
)

// DefaultLevelSetSamples is the number of draws used by
// MinimumVolumeLevelSet when none is given.
const DefaultLevelSetSamples = 10000

// A LevelSet is the set {x : pdf(x) >= Level} of a mixture.
type LevelSet struct {
	// Level is the density threshold.
	Level float64

	// Prob is the probability the set was built for.
	Prob float64

	m *RandomMixture
}

// Contains reports whether x is in s.
func (s *LevelSet) Contains(x []float64) (bool, error) {
	p, err := s.m.PDFAt(x)
	if err != nil {
		return false, err
	}
	return p >= s.Level, nil
}

// MinimumVolumeLevelSet returns the density level set of smallest
// volume with probability prob. The level is estimated as the
// (1-prob) quantile of the density at n draws from m, using r. If
// n <= 0, DefaultLevelSetSamples draws are used.
func (m *RandomMixture) MinimumVolumeLevelSet(prob float64, n int, r *rand.Rand) (*LevelSet, error) {
	if !(0 <= prob && prob <= 1) {
		return nil, errors.Wrapf(ErrInvalidArgument, "level set probability %v is not in [0, 1]", prob)
	}
	if m.kind != stats.Continuous {
		return nil, m.unsupported("minimum volume level set")
	}
	if n <= 0 {
		n = DefaultLevelSetSamples
	}
	if err := m.Materialize(); err != nil {
		return nil, err
	}
	ys := m.SampleN(n, r)
	dens := make([]float64, n)
	err := parallelFor(n, func(i int) error {
		p, err := m.PDFAt(ys.RawRowView(i))
		dens[i] = p
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.Float64s(dens)
	level := 0.0
	if prob < 1 {
		level = stat.Quantile(1-prob, stat.Empirical, dens, nil)
	}
	return &LevelSet{Level: level, Prob: prob, m: m}, nil
}
