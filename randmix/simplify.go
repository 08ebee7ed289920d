// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"math"
	"sort"

	"github.com/aclements/go-randmix/stats"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// A term is one atom together with its column of the weight matrix.
type term struct {
	atom stats.Atom
	w    []float64
}

// A triple is the (atoms, weights, constant) representation of a
// mixture.
type triple struct {
	terms    []term
	constant []float64
}

func (t *triple) addConstant(col []float64, x float64) {
	for j, w := range col {
		t.constant[j] += w * x
	}
}

func scaled(col []float64, s float64) []float64 {
	out := make([]float64, len(col))
	for j, w := range col {
		out[j] = w * s
	}
	return out
}

func allZero(col []float64) bool {
	for _, w := range col {
		if w != 0 {
			return false
		}
	}
	return true
}

// flatten adds atom a with weight column col to t, inlining nested
// mixtures and composite atoms and dropping atoms whose weight is
// zero.
func (t *triple) flatten(a stats.Atom, col []float64) error {
	switch a := a.(type) {
	case *RandomMixture:
		if a.dim != 1 {
			return errors.Wrapf(ErrInvalidArgument, "nested mixture has dimension %d, want 1", a.dim)
		}
		t.addConstant(col, a.constant[0])
		for i, sub := range a.atoms {
			if err := t.flatten(sub, scaled(col, a.cols[i][0])); err != nil {
				return err
			}
		}
		return nil
	case stats.SmoothedUniform:
		u, n := a.Parts()
		if err := t.flatten(u, col); err != nil {
			return err
		}
		return t.flatten(n, col)
	case stats.Affine:
		t.addConstant(col, a.Shift)
		return t.flatten(a.Atom, scaled(col, a.Scale))
	case *stats.Truncated:
		if s, ok := a.Simplify(); ok {
			return t.flatten(s, col)
		}
	}
	if d := stats.Dim(a); d != 1 {
		return errors.Wrapf(ErrInvalidArgument, "atom %T has dimension %d, want 1", a, d)
	}
	if allZero(col) {
		return nil
	}
	t.terms = append(t.terms, term{a, col})
	return nil
}

// simplify computes the reduced triple for atoms, weights and
// constant.
func simplify(atoms []stats.Atom, weights *mat.Dense, constant []float64, cfg Config) (*triple, error) {
	dim, _ := weights.Dims()
	t := &triple{constant: append([]float64(nil), constant...)}
	for i, a := range atoms {
		if err := t.flatten(a, mat.Col(nil, i, weights)); err != nil {
			return nil, err
		}
	}

	if !cfg.DisableSimplification {
		// Fold Dirac atoms into the constant.
		kept := t.terms[:0]
		for _, tm := range t.terms {
			if d, ok := tm.atom.(stats.Dirac); ok {
				t.addConstant(tm.w, d.X)
				continue
			}
			kept = append(kept, tm)
		}
		t.terms = kept

		if dim == 1 {
			t.merge1D(cfg.MaxDiscreteSupport)
		}
	}

	if len(t.terms) == 0 {
		// The mixture is the constant. Keep it as an atom so
		// the collection is never empty.
		if dim == 1 {
			t.terms = []term{{stats.Dirac{X: t.constant[0]}, []float64{1}}}
		} else {
			t.terms = []term{{stats.Dirac{X: 1}, t.constant}}
		}
		t.constant = make([]float64, dim)
	}
	return t, nil
}

// A wterm is a univariate term.
type wterm struct {
	atom stats.Atom
	w    float64
}

type binomialKey struct {
	p, w float64
}

// merge1D merges atoms of known families in a univariate mixture.
func (t *triple) merge1D(maxSupport int) {
	var (
		cont, disc, other []wterm

		pending   *stats.Uniform
		normalVar float64
		hasNormal bool

		gammaShape = map[float64]float64{}
		poissons   = map[float64]float64{}
		binomials  = map[binomialKey]int{}
	)
	addGamma := func(g stats.Gamma, w float64) {
		// Gammas with the same signed scale w/λ add their shapes.
		gammaShape[w/g.Lambda] += g.K
		t.constant[0] += w * g.Loc
	}
	for _, tm := range t.terms {
		w := tm.w[0]
		switch a := tm.atom.(type) {
		case stats.Uniform:
			u := stats.Uniform{Min: math.Min(w*a.Min, w*a.Max), Max: math.Max(w*a.Min, w*a.Max)}
			if pending == nil {
				pending = &u
				continue
			}
			cont = append(cont, wterm{sumUniforms(*pending, u), 1})
			pending = nil
		case stats.Normal:
			t.constant[0] += w * a.Mu
			normalVar += w * w * a.Sigma * a.Sigma
			hasNormal = true
		case stats.Gamma:
			addGamma(a, w)
		case stats.Exponential:
			addGamma(a.Gamma(), w)
		case stats.ChiSquare:
			addGamma(a.Gamma(), w)
		case stats.Poisson:
			poissons[w] += a.Lambda
		case stats.Binomial:
			binomials[binomialKey{a.P, w}] += a.N
		case stats.Bernoulli:
			binomials[binomialKey{a.P, w}]++
		default:
			switch a.Kind() {
			case stats.Continuous:
				cont = append(cont, wterm{a, w})
			case stats.Discrete:
				disc = append(disc, wterm{a, w})
			default:
				other = append(other, wterm{a, w})
			}
		}
	}

	for _, key := range sortedKeys(gammaShape) {
		k, lambda := gammaShape[key], 1/math.Abs(key)
		var a stats.Atom = stats.Gamma{K: k, Lambda: lambda}
		if k == 1 {
			a = stats.Exponential{Lambda: lambda}
		}
		cont = append(cont, wterm{a, math.Copysign(1, key)})
	}
	switch {
	case pending != nil && hasNormal && normalVar > 0:
		cont = append(cont, wterm{stats.SmoothedUniform{A: pending.Min, B: pending.Max, Sigma: math.Sqrt(normalVar)}, 1})
	case pending != nil:
		cont = append(cont, wterm{*pending, 1})
	case hasNormal && normalVar > 0:
		cont = append(cont, wterm{stats.Normal{Mu: 0, Sigma: math.Sqrt(normalVar)}, 1})
	}

	var merged []wterm
	for _, w := range sortedKeys(poissons) {
		merged = append(merged, wterm{stats.Poisson{Lambda: poissons[w]}, w})
	}
	bkeys := make([]binomialKey, 0, len(binomials))
	for k := range binomials {
		bkeys = append(bkeys, k)
	}
	sort.Slice(bkeys, func(i, j int) bool {
		if bkeys[i].p != bkeys[j].p {
			return bkeys[i].p < bkeys[j].p
		}
		return bkeys[i].w < bkeys[j].w
	})
	for _, k := range bkeys {
		var a stats.Atom = stats.Binomial{N: binomials[k], P: k.p}
		if binomials[k] == 1 {
			a = stats.Bernoulli{P: k.p}
		}
		merged = append(merged, wterm{a, k.w})
	}
	disc = convolveDiscrete(append(merged, disc...), maxSupport)

	// Pair continuous and discrete atoms from the tails into
	// finite mixtures of shifted continuous atoms.
	var paired, unpaired []wterm
	for len(cont) > 0 && len(disc) > 0 {
		c, d := cont[len(cont)-1], disc[len(disc)-1]
		disc = disc[:len(disc)-1]
		xs, ps, ok := support(d.atom)
		if !ok || len(xs) > maxSupport {
			unpaired = append(unpaired, d)
			continue
		}
		cont = cont[:len(cont)-1]
		comps := make([]stats.Atom, len(xs))
		for j, x := range xs {
			comps[j] = stats.Affine{Atom: c.atom, Scale: c.w, Shift: d.w * x}
		}
		paired = append(paired, wterm{stats.NewMixture(comps, ps), 1})
	}

	t.terms = t.terms[:0]
	for _, group := range [][]wterm{cont, paired, disc, unpaired, other} {
		for _, wt := range group {
			t.terms = append(t.terms, term{wt.atom, []float64{wt.w}})
		}
	}
}

// sumUniforms returns the distribution of the sum of two independent
// uniform variables.
func sumUniforms(u, v stats.Uniform) stats.Atom {
	a, d := u.Min+v.Min, u.Max+v.Max
	narrow := math.Min(u.Max-u.Min, v.Max-v.Min)
	b, c := a+narrow, d-narrow
	if b >= c {
		return stats.Triangular{A: a, M: (a + d) / 2, B: d}
	}
	return stats.Trapezoidal{A: a, B: b, C: c, D: d}
}

func sortedKeys[V any](m map[float64]V) []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

// support returns the support of a if it is a discrete atom.
func support(a stats.Atom) (xs, ps []float64, ok bool) {
	d, isDiscrete := a.(stats.DiscreteAtom)
	if !isDiscrete || a.Kind() != stats.Discrete {
		return nil, nil, false
	}
	xs, ps = d.Support()
	return xs, ps, len(xs) > 0
}

// convolveSupport returns the support of X + w·Y where X has support
// (xs, ps) and Y has support (ys, qs). Coinciding points are merged.
func convolveSupport(xs, ps []float64, w float64, ys, qs []float64) ([]float64, []float64) {
	zs := make([]float64, 0, len(xs)*len(ys))
	rs := make([]float64, 0, len(xs)*len(ys))
	for i, x := range xs {
		for j, y := range ys {
			zs = append(zs, x+w*y)
			rs = append(rs, ps[i]*qs[j])
		}
	}
	return stats.NewUserDefined(zs, rs).Support()
}

// convolveDiscrete replaces runs of discrete atoms by the discrete
// distribution of their weighted sum, as long as that support has at
// most maxSupport points.
func convolveDiscrete(disc []wterm, maxSupport int) []wterm {
	var (
		out    []wterm
		xs, ps []float64
		first  wterm
		count  int
	)
	flush := func() {
		switch count {
		case 0:
		case 1:
			out = append(out, first)
		default:
			out = append(out, wterm{stats.NewUserDefined(xs, ps), 1})
		}
		xs, ps, count = nil, nil, 0
	}
	for _, d := range disc {
		ys, qs, ok := support(d.atom)
		if !ok || len(ys) > maxSupport {
			out = append(out, d)
			continue
		}
		if count > 0 && len(xs)*len(ys) > maxSupport {
			flush()
		}
		if count == 0 {
			first = d
			xs, ps = convolveSupport([]float64{0}, []float64{1}, d.w, ys, qs)
			count = 1
			continue
		}
		xs, ps = convolveSupport(xs, ps, d.w, ys, qs)
		count++
	}
	flush()
	return out
}
