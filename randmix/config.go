// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the tunables of a RandomMixture. A zero field takes its
// default, so the zero Config is the default configuration. Every
// tunable of a validated Config is non-zero, so a Config written out
// and read back yields the same configuration.
type Config struct {
	// DisableSimplification keeps the flattened atoms as given
	// instead of folding Dirac atoms and merging families.
	DisableSimplification bool `yaml:"disable_simplification,omitempty" toml:"disable_simplification,omitempty"`

	// BlockMin and BlockMax are the log2 bounds on the number of
	// Fourier terms: at least 2^BlockMin and at most 2^BlockMax
	// levels are summed. Defaults 3 and 16.
	BlockMin int `yaml:"block_min,omitempty" toml:"block_min,omitempty"`
	BlockMax int `yaml:"block_max,omitempty" toml:"block_max,omitempty"`

	// MaxSize is the maximum number of cached characteristic
	// values. Default 65536.
	MaxSize int `yaml:"max_size,omitempty" toml:"max_size,omitempty"`

	// MaxNormalLevels bounds the number of lattice skins summed
	// for the periodized equivalent normal density. Default 64.
	MaxNormalLevels int `yaml:"max_normal_levels,omitempty" toml:"max_normal_levels,omitempty"`

	// Alpha is the a-priori half-width, in standard deviations,
	// below which the period of the Poisson sum may not go.
	// Default 5.
	Alpha float64 `yaml:"alpha,omitempty" toml:"alpha,omitempty"`

	// Beta is the half-width, in standard deviations, of the
	// range used on the Fourier path. Default 8.5.
	Beta float64 `yaml:"beta,omitempty" toml:"beta,omitempty"`

	// PDFPrecision and CDFPrecision stop the Fourier series once a
	// block contributes less than them. Default 1e-10.
	PDFPrecision float64 `yaml:"pdf_precision,omitempty" toml:"pdf_precision,omitempty"`
	CDFPrecision float64 `yaml:"cdf_precision,omitempty" toml:"cdf_precision,omitempty"`

	// MaxDiscreteSupport bounds the support of discrete atoms
	// built by convolving supports. Default 100000.
	MaxDiscreteSupport int `yaml:"max_discrete_support,omitempty" toml:"max_discrete_support,omitempty"`

	// ConvolutionPrecision is the tolerance of the quadrature
	// used for mixtures of two continuous atoms. Default 1e-12.
	ConvolutionPrecision float64 `yaml:"convolution_precision,omitempty" toml:"convolution_precision,omitempty"`

	// Logger receives diagnostics. Default logrus.StandardLogger().
	Logger logrus.FieldLogger `yaml:"-" toml:"-"`
}

// DefaultConfig returns the default configuration with every field
// filled in.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.BlockMin == 0 {
		c.BlockMin = 3
	}
	if c.BlockMax == 0 {
		c.BlockMax = 16
	}
	if c.MaxSize == 0 {
		c.MaxSize = 65536
	}
	if c.MaxNormalLevels == 0 {
		c.MaxNormalLevels = 64
	}
	if c.Alpha == 0 {
		c.Alpha = 5
	}
	if c.Beta == 0 {
		c.Beta = 8.5
	}
	if c.PDFPrecision == 0 {
		c.PDFPrecision = 1e-10
	}
	if c.CDFPrecision == 0 {
		c.CDFPrecision = 1e-10
	}
	if c.MaxDiscreteSupport == 0 {
		c.MaxDiscreteSupport = 100000
	}
	if c.ConvolutionPrecision == 0 {
		c.ConvolutionPrecision = 1e-12
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return errors.Wrapf(ErrInvalidArgument, "%s must be positive and finite, got %v", name, v)
	}
	return nil
}

// validate checks a configuration that has had its defaults filled in.
func (c Config) validate() error {
	if c.BlockMin < 1 || c.BlockMax < c.BlockMin || c.BlockMax > 30 {
		return errors.Wrapf(ErrInvalidArgument, "need 1 <= BlockMin <= BlockMax <= 30, got %d, %d", c.BlockMin, c.BlockMax)
	}
	for _, p := range []struct {
		name string
		v    int
	}{
		{"MaxSize", c.MaxSize}, {"MaxNormalLevels", c.MaxNormalLevels},
		{"MaxDiscreteSupport", c.MaxDiscreteSupport},
	} {
		if p.v < 1 {
			return errors.Wrapf(ErrInvalidArgument, "%s must be positive, got %d", p.name, p.v)
		}
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"Alpha", c.Alpha}, {"Beta", c.Beta},
		{"PDFPrecision", c.PDFPrecision}, {"CDFPrecision", c.CDFPrecision},
		{"ConvolutionPrecision", c.ConvolutionPrecision},
	} {
		if err := positive(p.name, p.v); err != nil {
			return err
		}
	}
	return nil
}
