// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionRoundTrip(t *testing.T) {
	m := newMixed(t, true)
	for _, format := range []string{FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			d, err := m.Describe()
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, d.Encode(&buf, format))

			d2, err := ParseDescription(buf.Bytes(), format)
			require.NoError(t, err, "%s", buf.String())
			d2.Config.Logger = m.cfg.Logger
			m2, err := d2.Build()
			require.NoError(t, err)

			assert.Equal(t, m.Atoms(), m2.Atoms())
			assert.Equal(t, m.Constant(), m2.Constant())
			assert.Equal(t, m.Config().Beta, m2.Config().Beta)
			for _, x := range []float64{-1, 0.5, 2, 3.5} {
				assert.InDelta(t, m.PDF(x), m2.PDF(x), 1e-12, "x=%v", x)
			}
		})
	}
}

func TestDescriptionTunables(t *testing.T) {
	m := newMixed(t, true)
	assert.True(t, errors.Is(m.SetBlockMin(0), ErrInvalidArgument))
	assert.True(t, errors.Is(m.SetMaxSize(0), ErrInvalidArgument))
	require.NoError(t, m.SetBlockMin(1))
	require.NoError(t, m.SetMaxSize(1))
	require.NoError(t, m.SetMaxNormalLevels(5))
	require.NoError(t, m.SetAlpha(4))
	want := m.Config()
	want.Logger = nil

	for _, format := range []string{FormatYAML, FormatTOML} {
		d, err := m.Describe()
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, d.Encode(&buf, format))
		d2, err := ParseDescription(buf.Bytes(), format)
		require.NoError(t, err, "%s", buf.String())
		d2.Config.Logger = m.cfg.Logger
		m2, err := d2.Build()
		require.NoError(t, err)
		got := m2.Config()
		got.Logger = nil
		assert.Equal(t, want, got, "%s", buf.String())
		assert.InDelta(t, m.PDF(0.5), m2.PDF(0.5), 1e-12)
	}
}

func TestDescriptionBandwidth(t *testing.T) {
	m := newMixed(t, true)
	require.NoError(t, m.SetReferenceBandwidth([]float64{0.25}))
	d, err := m.Describe()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25}, d.ReferenceBandwidth)
	d.Config.Logger = m.cfg.Logger
	m2, err := d.Build()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25}, m2.ReferenceBandwidth())
}

func TestDescribeAtoms(t *testing.T) {
	atoms := []stats.Atom{
		stats.NewUserDefined([]float64{0, 1, 3}, []float64{0.2, 0.3, 0.5}),
		stats.NewMixture([]stats.Atom{stats.StdNormal, stats.Uniform{Min: 0, Max: 1}}, []float64{0.25, 0.75}),
		stats.Affine{Atom: stats.Exponential{Lambda: 1}, Scale: -2, Shift: 1},
		stats.Binomial{N: 4, P: 0.5},
		stats.ChiSquare{Nu: 3},
		stats.Triangular{A: 0, M: 1, B: 3},
		stats.SmoothedUniform{A: 0, B: 1, Sigma: 0.1},
	}
	for _, a := range atoms {
		d, err := DescribeAtom(a)
		require.NoError(t, err, "%T", a)
		b, err := d.Atom()
		require.NoError(t, err, "%T", a)
		for _, x := range []float64{-0.5, 0, 1, 2.5} {
			assert.InDelta(t, a.PDF(x), b.PDF(x), 1e-15, "%s at %v", d.Type, x)
		}
	}
}

func TestAtomDescErrors(t *testing.T) {
	for _, d := range []AtomDesc{
		{Type: "cauchy", Params: []float64{0, 1}},
		{Type: "normal", Params: []float64{1}},
		{Type: "affine", Params: []float64{1, 0}},
		{Type: "user_defined", Points: []float64{0, 1}, Probs: []float64{1}},
	} {
		_, err := d.Atom()
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%s: %v", d.Type, err)
	}
}

const triangleYAML = `
atoms:
  - type: uniform
    params: [0, 1]
  - type: uniform
    params: [0, 1]
constant: [1]
config:
  beta: 10
`

const normalTOML = `
constant = [0.5]

[config]
alpha = 6.0

[[atoms]]
type = "normal"
params = [0.0, 2.0]
`

func TestLoadDescription(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "tri.yml")
	require.NoError(t, os.WriteFile(yml, []byte(triangleYAML), 0o644))
	d, err := LoadDescription(yml)
	require.NoError(t, err)
	assert.Equal(t, 10.0, d.Config.Beta)
	cfg, _ := quiet()
	d.Config.Logger = cfg.Logger
	m, err := d.Build()
	require.NoError(t, err)
	assert.Equal(t, stats.Interval{Lo: 1, Hi: 3}, m.Range())
	assert.InDelta(t, 1, m.PDF(2), 1e-12)

	tml := filepath.Join(dir, "normal.toml")
	require.NoError(t, os.WriteFile(tml, []byte(normalTOML), 0o644))
	d, err = LoadDescription(tml)
	require.NoError(t, err)
	assert.Equal(t, 6.0, d.Config.Alpha)
	d.Config.Logger = cfg.Logger
	m, err = d.Build()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, m.CDF(0.5), 1e-12)

	_, err = LoadDescription(filepath.Join(dir, "mix.json"))
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
	_, err = LoadDescription(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseDescriptionErrors(t *testing.T) {
	_, err := ParseDescription([]byte("atoms: []\nbogus: 1\n"), FormatYAML)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
	_, err = ParseDescription([]byte("bogus = 1\n"), FormatTOML)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
	_, err = ParseDescription(nil, "json")
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)

	d, err := ParseDescription([]byte("atoms: []\n"), FormatYAML)
	require.NoError(t, err)
	_, err = d.Build()
	assert.True(t, errors.Is(err, ErrInvalidArgument), "%v", err)
}
