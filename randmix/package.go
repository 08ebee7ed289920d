// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randmix evaluates the distribution of random mixtures: affine
// combinations
//
//	Y = c + W·X
//
// of independent univariate atoms X = (X_1, ..., X_n) with a d×n
// weight matrix W and a constant c.
//
// At construction, the atoms are flattened and simplified. Dirac atoms
// fold into the constant, and atoms of known families merge into fewer
// atoms (for example, two uniforms become a trapezoid and several
// exponentials with a common scale become a gamma). If this leaves as
// many atoms as dimensions, Y is evaluated exactly by a change of
// variables. Otherwise, densities and probabilities are computed by
// the Poisson summation formula: the periodized density is the sum of
// the periodized density of the normal distribution with the same
// first two moments and a Fourier series in the difference of the two
// characteristic functions. That series is summed in blocks of
// doubling size until it converges.
package randmix // import "github.com/aclements/go-randmix/randmix"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
