// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math/cmplx"
	"sync"

	"github.com/aclements/go-randmix/stats"
	"github.com/sirupsen/logrus"
)

// A cfLevel holds the characteristic differences of one level: the
// frequency k·h in one dimension, or the half skin of the frequency
// lattice at distance k in several.
type cfLevel struct {
	points [][]int // nil in one dimension
	values []complex128
}

// A cfCache is an append-only cache of levels. Level k is computed
// once, after all levels below it.
type cfCache struct {
	mu      sync.RWMutex
	levels  []cfLevel // levels[k-1] is level k
	size    int
	maxSize int
	full    bool
	log     logrus.FieldLogger
}

func newCFCache(maxSize int, log logrus.FieldLogger) *cfCache {
	return &cfCache{maxSize: maxSize, log: log}
}

// level returns level k >= 1, computing and storing the missing levels
// up to k with compute. Once the cache is full, levels are computed
// without being stored.
func (c *cfCache) level(k int, compute func(k int) cfLevel) cfLevel {
	c.mu.RLock()
	if k <= len(c.levels) {
		l := c.levels[k-1]
		c.mu.RUnlock()
		return l
	}
	full := c.full
	c.mu.RUnlock()
	if full {
		return compute(k)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.levels) < k && !c.full {
		next := len(c.levels) + 1
		l := compute(next)
		if c.size+len(l.values) > c.maxSize {
			c.full = true
			c.log.WithFields(logrus.Fields{
				"size":  c.size,
				"level": next,
			}).Debug("characteristic function cache is full, computing without caching")
			if next == k {
				return l
			}
			break
		}
		c.levels = append(c.levels, l)
		c.size += len(l.values)
	}
	if k <= len(c.levels) {
		return c.levels[k-1]
	}
	return compute(k)
}

// setLogger replaces the logger of a cache that may be in use.
func (c *cfCache) setLogger(l logrus.FieldLogger) {
	c.mu.Lock()
	c.log = l
	c.mu.Unlock()
}

// len returns the number of cached levels.
func (c *cfCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.levels)
}

// logCharFunc returns the log characteristic function of m at t.
func (m *RandomMixture) logCharFunc(t []float64) complex128 {
	var s complex128
	var phase float64
	for j, tj := range t {
		phase += tj * m.constant[j]
	}
	s = complex(0, phase)
	for i, a := range m.atoms {
		u := 0.0
		for j, w := range m.cols[i] {
			u += w * t[j]
		}
		if u != 0 {
			s += stats.LogCharFunc(a, u)
		}
	}
	return s
}

// CharFuncAt returns the characteristic function E[exp(i⟨t, Y⟩)].
func (m *RandomMixture) CharFuncAt(t []float64) (complex128, error) {
	if len(t) != m.dim {
		return 0, dimensionError("frequency", len(t), m.dim)
	}
	if allZero(t) {
		return 1, nil
	}
	return cmplx.Exp(m.logCharFunc(t)), nil
}

// LogCharFuncAt returns the logarithm of the characteristic function
// at t.
func (m *RandomMixture) LogCharFuncAt(t []float64) (complex128, error) {
	if len(t) != m.dim {
		return 0, dimensionError("frequency", len(t), m.dim)
	}
	return m.logCharFunc(t), nil
}

// delta returns φ_Y(t) - φ_N(t), where N is the equivalent normal.
func (m *RandomMixture) delta(t []float64) complex128 {
	return deltaFromLogs(m.logCharFunc(t), m.normalLogCharFunc(t))
}

// deltaFromLogs returns exp(a) - exp(b). Close arguments use a Taylor
// expansion of exp(a-b) - 1 to avoid cancellation.
func deltaFromLogs(a, b complex128) complex128 {
	d := a - b
	if cmplx.Abs(d) < 1e-5 {
		return cmplx.Exp(b) * d * (1 + d*(0.5+d/6))
	}
	return cmplx.Exp(a) - cmplx.Exp(b)
}

// computeLevel computes level k of m's cache.
func (m *RandomMixture) computeLevel(k int) cfLevel {
	if m.dim == 1 {
		return cfLevel{values: []complex128{m.delta([]float64{float64(k) * m.h[0]})}}
	}
	pts := skin(m.dim, k, true)
	vals := make([]complex128, len(pts))
	t := make([]float64, m.dim)
	for i, p := range pts {
		for a, pa := range p {
			t[a] = float64(pa) * m.h[a]
		}
		vals[i] = m.delta(t)
	}
	return cfLevel{points: pts, values: vals}
}

// deltaAt returns the cached level k of m.
func (m *RandomMixture) deltaAt(k int) cfLevel {
	return m.cache.level(k, m.computeLevel)
}
