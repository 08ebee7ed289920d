// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randmix

// skin returns the points of the integer lattice Z^dim at L∞ distance
// level from the origin, in a fixed order. If half is set, only points
// whose first non-zero coordinate is positive are returned, which is
// one point of each pair ±p.
func skin(dim, level int, half bool) [][]int {
	if level == 0 {
		if half {
			return nil
		}
		return [][]int{make([]int, dim)}
	}
	var pts [][]int
	p := make([]int, dim)
	// Partition the skin by the first axis a with |p[a]| == level.
	// Axes before a are in (-level, level), axes after a are in
	// [-level, level].
	for a := 0; a < dim; a++ {
		for _, s := range []int{level, -level} {
			var rec func(b int)
			rec = func(b int) {
				if b == dim {
					if !half || firstNonZeroPositive(p) {
						pts = append(pts, append([]int(nil), p...))
					}
					return
				}
				if b == a {
					p[b] = s
					rec(b + 1)
					return
				}
				lim := level
				if b < a {
					lim = level - 1
				}
				for v := -lim; v <= lim; v++ {
					p[b] = v
					rec(b + 1)
				}
			}
			rec(0)
		}
	}
	return pts
}

func firstNonZeroPositive(p []int) bool {
	for _, v := range p {
		if v != 0 {
			return v > 0
		}
	}
	return false
}
