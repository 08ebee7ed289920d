// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// A Description is the persisted form of a RandomMixture: its atoms,
// weight matrix, constant and configuration. Everything else is
// recomputed by Build.
type Description struct {
	Atoms []AtomDesc `yaml:"atoms" toml:"atoms"`

	// Weights has one row per output coordinate. If it is empty,
	// the mixture is univariate with unit weights.
	Weights  [][]float64 `yaml:"weights,omitempty" toml:"weights,omitempty"`
	Constant []float64   `yaml:"constant,omitempty" toml:"constant,omitempty"`

	Config Config `yaml:"config" toml:"config"`

	// ReferenceBandwidth, if set, overrides the computed bandwidth.
	ReferenceBandwidth []float64 `yaml:"reference_bandwidth,omitempty" toml:"reference_bandwidth,omitempty"`
}

// An AtomDesc describes one atom. Type selects the family and Params
// holds its parameters in the order:
//
//	normal            mu, sigma
//	uniform           min, max
//	triangular        a, mode, b
//	trapezoidal       a, b, c, d
//	smoothed_uniform  a, b, sigma
//	gamma             k, lambda[, loc]
//	exponential       lambda[, loc]
//	chi_square        nu
//	dirac             x
//	poisson           lambda
//	binomial          n, p
//	bernoulli         p
//	affine            scale, shift (of Atoms[0])
//	truncated         lo, hi (of Atoms[0])
//
// user_defined uses Points and Probs, and mixture uses Atoms and
// Weights.
type AtomDesc struct {
	Type    string     `yaml:"type" toml:"type"`
	Params  []float64  `yaml:"params,omitempty" toml:"params,omitempty"`
	Points  []float64  `yaml:"points,omitempty" toml:"points,omitempty"`
	Probs   []float64  `yaml:"probs,omitempty" toml:"probs,omitempty"`
	Atoms   []AtomDesc `yaml:"atoms,omitempty" toml:"atoms,omitempty"`
	Weights []float64  `yaml:"weights,omitempty" toml:"weights,omitempty"`
}

// Describe returns the description of the simplified mixture.
func (m *RandomMixture) Describe() (*Description, error) {
	d := &Description{Constant: m.Constant(), Config: m.cfg}
	d.Config.Logger = nil
	for _, a := range m.atoms {
		ad, err := DescribeAtom(a)
		if err != nil {
			return nil, err
		}
		d.Atoms = append(d.Atoms, ad)
	}
	for j := 0; j < m.dim; j++ {
		d.Weights = append(d.Weights, m.weightRow(j))
	}
	if m.fixedH {
		d.ReferenceBandwidth = m.ReferenceBandwidth()
	}
	return d, nil
}

func (m *RandomMixture) weightRow(j int) []float64 {
	row := make([]float64, len(m.cols))
	for i, col := range m.cols {
		row[i] = col[j]
	}
	return row
}

// Build constructs the mixture described by d. The logger is taken
// from d.Config.
func (d *Description) Build() (*RandomMixture, error) {
	atoms := make([]stats.Atom, len(d.Atoms))
	for i, ad := range d.Atoms {
		a, err := ad.Atom()
		if err != nil {
			return nil, errors.Wrapf(err, "atom %d", i)
		}
		atoms[i] = a
	}
	var weights [][]float64
	if len(d.Weights) > 0 {
		weights = d.Weights
	}
	constant := d.Constant
	if len(constant) == 0 {
		constant = nil
	}
	m, err := New(atoms, weights, constant, d.Config)
	if err != nil {
		return nil, err
	}
	if len(d.ReferenceBandwidth) > 0 {
		if err := m.SetReferenceBandwidth(d.ReferenceBandwidth); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DescribeAtom returns the description of a.
func DescribeAtom(a stats.Atom) (AtomDesc, error) {
	switch a := a.(type) {
	case stats.Normal:
		return AtomDesc{Type: "normal", Params: []float64{a.Mu, a.Sigma}}, nil
	case stats.Uniform:
		return AtomDesc{Type: "uniform", Params: []float64{a.Min, a.Max}}, nil
	case stats.Triangular:
		return AtomDesc{Type: "triangular", Params: []float64{a.A, a.M, a.B}}, nil
	case stats.Trapezoidal:
		return AtomDesc{Type: "trapezoidal", Params: []float64{a.A, a.B, a.C, a.D}}, nil
	case stats.SmoothedUniform:
		return AtomDesc{Type: "smoothed_uniform", Params: []float64{a.A, a.B, a.Sigma}}, nil
	case stats.Gamma:
		return AtomDesc{Type: "gamma", Params: []float64{a.K, a.Lambda, a.Loc}}, nil
	case stats.Exponential:
		return AtomDesc{Type: "exponential", Params: []float64{a.Lambda, a.Loc}}, nil
	case stats.ChiSquare:
		return AtomDesc{Type: "chi_square", Params: []float64{a.Nu}}, nil
	case stats.Dirac:
		return AtomDesc{Type: "dirac", Params: []float64{a.X}}, nil
	case stats.Poisson:
		return AtomDesc{Type: "poisson", Params: []float64{a.Lambda}}, nil
	case stats.Binomial:
		return AtomDesc{Type: "binomial", Params: []float64{float64(a.N), a.P}}, nil
	case stats.Bernoulli:
		return AtomDesc{Type: "bernoulli", Params: []float64{a.P}}, nil
	case *stats.UserDefined:
		xs, ps := a.Support()
		return AtomDesc{Type: "user_defined", Points: xs, Probs: ps}, nil
	case *stats.Mixture:
		d := AtomDesc{Type: "mixture", Weights: append([]float64(nil), a.Weights...)}
		for _, sub := range a.Atoms {
			sd, err := DescribeAtom(sub)
			if err != nil {
				return AtomDesc{}, err
			}
			d.Atoms = append(d.Atoms, sd)
		}
		return d, nil
	case stats.Affine:
		sd, err := DescribeAtom(a.Atom)
		if err != nil {
			return AtomDesc{}, err
		}
		return AtomDesc{Type: "affine", Params: []float64{a.Scale, a.Shift}, Atoms: []AtomDesc{sd}}, nil
	case *stats.Truncated:
		sd, err := DescribeAtom(a.Atom)
		if err != nil {
			return AtomDesc{}, err
		}
		return AtomDesc{Type: "truncated", Params: []float64{a.Lo, a.Hi}, Atoms: []AtomDesc{sd}}, nil
	}
	return AtomDesc{}, errors.Wrapf(ErrInvalidArgument, "cannot describe atom of type %T", a)
}

// Atom returns the atom described by d.
func (d AtomDesc) Atom() (a stats.Atom, err error) {
	p := d.Params
	need := func(n int) error {
		if len(p) < n {
			return errors.Wrapf(ErrInvalidArgument, "%s atom needs %d parameters, got %d", d.Type, n, len(p))
		}
		return nil
	}
	opt := func(i int) float64 {
		if i < len(p) {
			return p[i]
		}
		return 0
	}
	inner := func() (stats.Atom, error) {
		if len(d.Atoms) != 1 {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s atom needs 1 inner atom, got %d", d.Type, len(d.Atoms))
		}
		return d.Atoms[0].Atom()
	}
	// The stats constructors panic on invalid parameters.
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, errors.Wrapf(ErrInvalidArgument, "%s atom: %v", d.Type, r)
		}
	}()

	switch strings.ToLower(d.Type) {
	case "normal":
		if err := need(2); err != nil {
			return nil, err
		}
		return stats.Normal{Mu: p[0], Sigma: p[1]}, nil
	case "uniform":
		if err := need(2); err != nil {
			return nil, err
		}
		return stats.Uniform{Min: p[0], Max: p[1]}, nil
	case "triangular":
		if err := need(3); err != nil {
			return nil, err
		}
		return stats.Triangular{A: p[0], M: p[1], B: p[2]}, nil
	case "trapezoidal":
		if err := need(4); err != nil {
			return nil, err
		}
		return stats.Trapezoidal{A: p[0], B: p[1], C: p[2], D: p[3]}, nil
	case "smoothed_uniform":
		if err := need(3); err != nil {
			return nil, err
		}
		return stats.SmoothedUniform{A: p[0], B: p[1], Sigma: p[2]}, nil
	case "gamma":
		if err := need(2); err != nil {
			return nil, err
		}
		return stats.Gamma{K: p[0], Lambda: p[1], Loc: opt(2)}, nil
	case "exponential":
		if err := need(1); err != nil {
			return nil, err
		}
		return stats.Exponential{Lambda: p[0], Loc: opt(1)}, nil
	case "chi_square":
		if err := need(1); err != nil {
			return nil, err
		}
		return stats.ChiSquare{Nu: p[0]}, nil
	case "dirac":
		if err := need(1); err != nil {
			return nil, err
		}
		return stats.Dirac{X: p[0]}, nil
	case "poisson":
		if err := need(1); err != nil {
			return nil, err
		}
		return stats.Poisson{Lambda: p[0]}, nil
	case "binomial":
		if err := need(2); err != nil {
			return nil, err
		}
		return stats.Binomial{N: int(p[0]), P: p[1]}, nil
	case "bernoulli":
		if err := need(1); err != nil {
			return nil, err
		}
		return stats.Bernoulli{P: p[0]}, nil
	case "user_defined":
		return stats.NewUserDefined(d.Points, d.Probs), nil
	case "mixture":
		atoms := make([]stats.Atom, len(d.Atoms))
		for i, sd := range d.Atoms {
			if atoms[i], err = sd.Atom(); err != nil {
				return nil, err
			}
		}
		return stats.NewMixture(atoms, d.Weights), nil
	case "affine":
		if err := need(2); err != nil {
			return nil, err
		}
		x, err := inner()
		if err != nil {
			return nil, err
		}
		return stats.Affine{Atom: x, Scale: p[0], Shift: p[1]}, nil
	case "truncated":
		if err := need(2); err != nil {
			return nil, err
		}
		x, err := inner()
		if err != nil {
			return nil, err
		}
		return stats.NewTruncated(x, p[0], p[1]), nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "unknown atom type %q", d.Type)
}

// Formats accepted by ParseDescription and Encode.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// formatOf returns the format of a description file from its
// extension.
func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(ErrInvalidArgument, "unknown description format for %q", path)
}

// LoadDescription reads a description from a .yaml, .yml or .toml
// file.
func LoadDescription(path string) (*Description, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading description")
	}
	d, err := ParseDescription(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return d, nil
}

// ParseDescription decodes a description in the given format.
func ParseDescription(data []byte, format string) (*Description, error) {
	d := new(Description)
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(d); err != nil && err != io.EOF {
			return nil, errors.Mark(errors.Wrap(err, "decoding yaml"), ErrInvalidArgument)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), d)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decoding toml"), ErrInvalidArgument)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "unknown toml keys %v", undec)
		}
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown description format %q", format)
	}
	return d, nil
}

// Encode writes d to w in the given format.
func (d *Description) Encode(w io.Writer, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(d), "encoding toml")
	}
	return errors.Wrapf(ErrInvalidArgument, "unknown description format %q", format)
}
