// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fftn implements multi-dimensional complex discrete Fourier
// transforms on row-major arrays, one axis at a time.
package fftn

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Direction selects the transform applied along one axis.
type Direction int

const (
	// None leaves an axis untransformed.
	None Direction = iota

	// Forward applies X[k] = Σ x[j] exp(-2πi jk/n).
	Forward

	// Backward applies the unnormalized inverse,
	// x[j] = Σ X[k] exp(+2πi jk/n).
	Backward
)

// A Plan transforms arrays of a fixed shape. A Plan is not safe for
// concurrent use.
type Plan struct {
	shape   []int
	strides []int
	size    int
	ffts    []*fourier.CmplxFFT
	in, out []complex128
}

// NewPlan returns a Plan for row-major arrays with the given shape.
// The last axis varies fastest.
func NewPlan(shape ...int) *Plan {
	p := &Plan{shape: append([]int(nil), shape...)}
	p.strides = make([]int, len(shape))
	p.size = 1
	maxLen := 0
	for a := len(shape) - 1; a >= 0; a-- {
		if shape[a] <= 0 {
			panic(fmt.Sprintf("fftn: bad axis length %d", shape[a]))
		}
		p.strides[a] = p.size
		p.size *= shape[a]
		maxLen = max(maxLen, shape[a])
	}
	p.ffts = make([]*fourier.CmplxFFT, len(shape))
	for a, n := range shape {
		// Share transforms between axes of the same length.
		for b := 0; b < a; b++ {
			if shape[b] == n {
				p.ffts[a] = p.ffts[b]
				break
			}
		}
		if p.ffts[a] == nil {
			p.ffts[a] = fourier.NewCmplxFFT(n)
		}
	}
	p.in = make([]complex128, maxLen)
	p.out = make([]complex128, maxLen)
	return p
}

// Shape returns the array shape of p.
func (p *Plan) Shape() []int {
	return p.shape
}

// Len returns the number of elements of an array of p's shape.
func (p *Plan) Len() int {
	return p.size
}

// Transform transforms data in place, applying dirs[a] along axis a.
// It panics if len(data) != p.Len() or len(dirs) != len(p.Shape()).
func (p *Plan) Transform(data []complex128, dirs ...Direction) {
	if len(data) != p.size {
		panic(fmt.Sprintf("fftn: data length %d, want %d", len(data), p.size))
	}
	if len(dirs) != len(p.shape) {
		panic(fmt.Sprintf("fftn: %d directions for %d axes", len(dirs), len(p.shape)))
	}
	for a, dir := range dirs {
		if dir == None {
			continue
		}
		n, stride := p.shape[a], p.strides[a]
		in, out := p.in[:n], p.out[:n]
		// Each line along axis a starts at an index whose
		// a'th coordinate is 0.
		for start := 0; start < p.size; start++ {
			if (start/stride)%n != 0 {
				continue
			}
			for j := range in {
				in[j] = data[start+j*stride]
			}
			switch dir {
			case Forward:
				p.ffts[a].Coefficients(out, in)
			case Backward:
				p.ffts[a].Sequence(out, in)
			default:
				panic(fmt.Sprintf("fftn: bad direction %d", dir))
			}
			for j, v := range out {
				data[start+j*stride] = v
			}
		}
	}
}
