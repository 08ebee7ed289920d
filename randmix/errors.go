// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import "github.com/cockroachdb/errors"

// Error kinds. Errors returned by this package wrap one of these, so
// callers can test them with errors.Is.
var (
	// ErrInvalidArgument reports an invalid value, such as a
	// probability outside [0, 1] or a multivariate atom.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidDimension reports a size mismatch between
	// points, weights, atoms or grids and the mixture.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrNotYetImplemented reports a computation this package
	// does not support, as opposed to a bad input.
	ErrNotYetImplemented = errors.New("not yet implemented")

	// ErrSingular reports a weight matrix that cannot be
	// inverted on the analytical path.
	ErrSingular = errors.New("singular weight matrix")

	// ErrInternal reports a broken invariant.
	ErrInternal = errors.New("internal error")
)

func dimensionError(what string, got, want int) error {
	return errors.Wrapf(ErrInvalidDimension, "%s has dimension %d, want %d", what, got, want)
}
