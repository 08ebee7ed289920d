// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelFor calls f(i) for each i in [0, n), splitting the range
// into chunks run on up to GOMAXPROCS goroutines. It returns the
// first error returned by f.
func parallelFor(n int, f func(i int) error) error {
	procs := runtime.GOMAXPROCS(0)
	chunk := (n + 4*procs - 1) / (4 * procs)
	if chunk < 1 {
		chunk = 1
	}
	var g errgroup.Group
	g.SetLimit(procs)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
