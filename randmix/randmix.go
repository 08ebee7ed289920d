// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"
	"sync"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// A RandomMixture is the distribution of Y = c + W·X for independent
// univariate atoms X.
//
// Evaluation methods may be called concurrently. Setters must not be
// called concurrently with anything else.
type RandomMixture struct {
	cfg Config
	log logrus.FieldLogger

	dim      int
	atoms    []stats.Atom
	weights  *mat.Dense  // dim × len(atoms)
	cols     [][]float64 // cols[i] is column i of weights
	constant []float64

	kind       stats.Kind
	path       evalPath
	analytical bool
	inverse    *mat.Dense // weights⁻¹ if analytical
	invDet     float64    // det(weights⁻¹) if analytical

	mean  []float64
	cov   *mat.SymDense
	sigma []float64

	exact   []stats.Interval // support of Y
	clipped []stats.Interval // exact ∩ [mean ± Beta·sigma]
	h       []float64        // reference bandwidth
	fixedH  bool

	cache *cfCache

	mu     sync.Mutex
	normal *equivalentNormal
	joint  *stats.UserDefined
}

// evalPath is the method used to evaluate a mixture.
type evalPath int

const (
	// analyticalPath inverts the weight matrix.
	analyticalPath evalPath = iota
	// discretePath convolves the supports of discrete atoms.
	discretePath
	// convolutionPath integrates one continuous atom against
	// another.
	convolutionPath
	// fourierPath sums the Poisson summation formula.
	fourierPath
	// unsupportedPath has no evaluation method.
	unsupportedPath
)

func (p evalPath) String() string {
	switch p {
	case analyticalPath:
		return "analytical"
	case discretePath:
		return "discrete"
	case convolutionPath:
		return "convolution"
	case fourierPath:
		return "fourier"
	}
	return "unsupported"
}

// New returns the mixture c + W·X of atoms X with weight matrix W and
// constant c. weights[j][i] is the weight of atom i in output
// coordinate j.
//
// If weights is nil, the mixture is univariate with unit weights. If
// constant is nil, it is zero.
func New(atoms []stats.Atom, weights [][]float64, constant []float64, cfg Config) (*RandomMixture, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(atoms) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "a random mixture needs at least one atom")
	}

	dim := 1
	if weights != nil {
		dim = len(weights)
	}
	if dim == 0 {
		return nil, errors.Wrap(ErrInvalidDimension, "weight matrix has no rows")
	}
	w := mat.NewDense(dim, len(atoms), nil)
	for j := 0; j < dim; j++ {
		if weights == nil {
			for i := range atoms {
				w.Set(0, i, 1)
			}
			continue
		}
		if len(weights[j]) != len(atoms) {
			return nil, errors.Wrapf(ErrInvalidDimension, "weight row %d has %d columns for %d atoms", j, len(weights[j]), len(atoms))
		}
		for i, v := range weights[j] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrInvalidArgument, "weight [%d][%d] is %v", j, i, v)
			}
		}
		w.SetRow(j, weights[j])
	}

	c := make([]float64, dim)
	if constant != nil {
		if len(constant) != dim {
			return nil, dimensionError("constant", len(constant), dim)
		}
		copy(c, constant)
	}

	m := &RandomMixture{cfg: cfg, log: cfg.Logger, dim: dim}
	if err := m.setTriple(atoms, w, c); err != nil {
		return nil, err
	}
	return m, nil
}

// New1D returns the univariate mixture c + Σ weights[i]·atoms[i]. If
// weights is nil, all weights are 1.
func New1D(atoms []stats.Atom, weights []float64, constant float64, cfg Config) (*RandomMixture, error) {
	var w [][]float64
	if weights != nil {
		w = [][]float64{weights}
	}
	return New(atoms, w, []float64{constant}, cfg)
}

func (m *RandomMixture) setTriple(atoms []stats.Atom, weights *mat.Dense, constant []float64) error {
	t, err := simplify(atoms, weights, constant, m.cfg)
	if err != nil {
		return err
	}
	m.atoms = make([]stats.Atom, len(t.terms))
	m.cols = make([][]float64, len(t.terms))
	m.weights = mat.NewDense(m.dim, len(t.terms), nil)
	for i, tm := range t.terms {
		m.atoms[i] = tm.atom
		m.cols[i] = tm.w
		m.weights.SetCol(i, tm.w)
	}
	m.constant = t.constant
	if err := m.update(); err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{
		"dimension": m.dim,
		"atomsIn":   len(atoms),
		"atomsOut":  len(m.atoms),
		"path":      m.path,
	}).Debug("random mixture simplified")
	return nil
}

// update recomputes everything derived from the triple.
func (m *RandomMixture) update() error {
	m.kind = kindOf(m.atoms)
	m.analytical = len(m.atoms) == m.dim
	m.inverse = nil
	if m.analytical {
		var inv mat.Dense
		if err := inv.Inverse(m.weights); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
				return errors.Mark(errors.Wrapf(err, "inverting %d×%d weight matrix", m.dim, m.dim), ErrSingular)
			}
			m.log.WithField("condition", float64(cond)).Warn("weight matrix is ill-conditioned")
		}
		m.inverse = &inv
		m.invDet = 1 / mat.Det(m.weights)
	}
	m.computeMoments()
	m.path = m.choosePath()
	m.computeRanges()
	m.reset()
	return nil
}

func kindOf(atoms []stats.Atom) stats.Kind {
	discrete := true
	for _, a := range atoms {
		switch a.Kind() {
		case stats.Continuous:
			return stats.Continuous
		case stats.Mixed:
			discrete = false
		}
	}
	if discrete {
		return stats.Discrete
	}
	return stats.Mixed
}

func (m *RandomMixture) choosePath() evalPath {
	switch {
	case m.analytical:
		return analyticalPath
	case m.dim == 1 && m.kind == stats.Discrete:
		return discretePath
	case m.dim == 1 && len(m.atoms) == 2 &&
		m.atoms[0].Kind() == stats.Continuous && m.atoms[1].Kind() == stats.Continuous:
		return convolutionPath
	case m.kind == stats.Continuous:
		return fourierPath
	}
	return unsupportedPath
}

// reset drops the lazily computed state.
func (m *RandomMixture) reset() {
	m.cache = newCFCache(m.cfg.MaxSize, m.log)
	m.mu.Lock()
	m.normal = nil
	m.joint = nil
	m.mu.Unlock()
}

// Dim returns the dimension of the mixture.
func (m *RandomMixture) Dim() int {
	return m.dim
}

// Atoms returns the atoms of the simplified mixture.
func (m *RandomMixture) Atoms() []stats.Atom {
	return append([]stats.Atom(nil), m.atoms...)
}

// Weights returns a copy of the weight matrix of the simplified
// mixture.
func (m *RandomMixture) Weights() *mat.Dense {
	return mat.DenseCopyOf(m.weights)
}

// Constant returns the constant of the simplified mixture.
func (m *RandomMixture) Constant() []float64 {
	return append([]float64(nil), m.constant...)
}

// IsAnalytical reports whether the mixture is evaluated exactly by a
// change of variables.
func (m *RandomMixture) IsAnalytical() bool {
	return m.analytical
}

// Config returns the mixture's configuration, with defaults filled
// in.
func (m *RandomMixture) Config() Config {
	return m.cfg
}

// MeanVector returns the mean of the mixture.
func (m *RandomMixture) MeanVector() []float64 {
	return append([]float64(nil), m.mean...)
}

// Covariance returns the covariance matrix of the mixture.
func (m *RandomMixture) Covariance() *mat.SymDense {
	cov := mat.NewSymDense(m.dim, nil)
	cov.CopySym(m.cov)
	return cov
}

// Ranges returns the support of each coordinate of the mixture.
func (m *RandomMixture) Ranges() []stats.Interval {
	return append([]stats.Interval(nil), m.exact...)
}

// ReferenceBandwidth returns the frequency step of the Poisson sum on
// each axis.
func (m *RandomMixture) ReferenceBandwidth() []float64 {
	return append([]float64(nil), m.h...)
}

// evalRange returns the range outside of which m's density and
// probabilities are treated as 0.
func (m *RandomMixture) evalRange() []stats.Interval {
	switch m.path {
	case analyticalPath, discretePath:
		return m.exact
	}
	return m.clipped
}

func inside(x []float64, r []stats.Interval) bool {
	for j, v := range x {
		if !r[j].Contains(v) {
			return false
		}
	}
	return true
}

func (m *RandomMixture) setConfig(f func(*Config)) error {
	cfg := m.cfg
	f(&cfg)
	if err := cfg.validate(); err != nil {
		return err
	}
	m.cfg = cfg
	m.log = cfg.Logger
	m.computeRanges()
	m.reset()
	return nil
}

// SetBlockMin sets the log2 of the minimum number of Fourier levels.
// n must be at least 1.
func (m *RandomMixture) SetBlockMin(n int) error {
	return m.setConfig(func(c *Config) { c.BlockMin = n })
}

// SetBlockMax sets the log2 of the maximum number of Fourier levels.
func (m *RandomMixture) SetBlockMax(n int) error {
	return m.setConfig(func(c *Config) { c.BlockMax = n })
}

// SetMaxSize sets the maximum number of cached characteristic values.
// n must be at least 1.
func (m *RandomMixture) SetMaxSize(n int) error {
	return m.setConfig(func(c *Config) { c.MaxSize = n })
}

// SetAlpha sets the minimum half-period, in standard deviations.
func (m *RandomMixture) SetAlpha(alpha float64) error {
	return m.setConfig(func(c *Config) { c.Alpha = alpha })
}

// SetBeta sets the half-width, in standard deviations, of the range
// used on the Fourier path.
func (m *RandomMixture) SetBeta(beta float64) error {
	return m.setConfig(func(c *Config) { c.Beta = beta })
}

func (m *RandomMixture) SetPDFPrecision(eps float64) error {
	return m.setConfig(func(c *Config) { c.PDFPrecision = eps })
}

func (m *RandomMixture) SetCDFPrecision(eps float64) error {
	return m.setConfig(func(c *Config) { c.CDFPrecision = eps })
}

func (m *RandomMixture) SetMaxDiscreteSupport(n int) error {
	return m.setConfig(func(c *Config) { c.MaxDiscreteSupport = n })
}

func (m *RandomMixture) SetConvolutionPrecision(eps float64) error {
	return m.setConfig(func(c *Config) { c.ConvolutionPrecision = eps })
}

// SetMaxNormalLevels sets the maximum number of lattice skins summed
// for the periodized equivalent normal density.
func (m *RandomMixture) SetMaxNormalLevels(n int) error {
	return m.setConfig(func(c *Config) { c.MaxNormalLevels = n })
}

// SetLogger sets the logger used for diagnostics. A nil logger
// restores the standard logger.
func (m *RandomMixture) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	m.cfg.Logger = l
	m.log = l
	m.cache.setLogger(l)
}

// SetReferenceBandwidth overrides the frequency step of the Poisson
// sum on each axis. Changing Alpha or Beta afterwards does not
// recompute it.
func (m *RandomMixture) SetReferenceBandwidth(h []float64) error {
	if len(h) != m.dim {
		return dimensionError("reference bandwidth", len(h), m.dim)
	}
	for _, v := range h {
		if err := positive("reference bandwidth", v); err != nil {
			return err
		}
	}
	m.h = append([]float64(nil), h...)
	m.fixedH = true
	m.reset()
	return nil
}
