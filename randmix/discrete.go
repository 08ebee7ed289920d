// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// jointSupport returns the distribution of a univariate discrete
// mixture as a single finite discrete atom, convolving the supports
// of its atoms on first use.
func (m *RandomMixture) jointSupport() (*stats.UserDefined, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.joint != nil {
		return m.joint, nil
	}
	xs, ps := []float64{m.constant[0]}, []float64{1}
	for i, a := range m.atoms {
		ys, qs, ok := support(a)
		if !ok {
			return nil, errors.Wrapf(ErrNotYetImplemented, "atom %T has no enumerable support", a)
		}
		if len(xs)*len(ys) > m.cfg.MaxDiscreteSupport {
			return nil, errors.Wrapf(ErrNotYetImplemented, "discrete support would exceed %d points", m.cfg.MaxDiscreteSupport)
		}
		xs, ps = convolveSupport(xs, ps, m.cols[i][0], ys, qs)
	}
	m.joint = stats.NewUserDefined(xs, ps)
	m.log.WithFields(logrus.Fields{"points": len(xs)}).Debug("built joint discrete support")
	return m.joint, nil
}
