// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import "math"

const smallFactLimit = 20 // 20! => 62 bits

// Choose returns the binomial coefficient of n and k.
func Choose(n, k int) float64 {
	if k == 0 || k == n {
		return 1
	}
	if k < 0 || n < k {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	if n <= smallFactLimit {
		// Exact in float64: every partial product is an
		// integer below 2^53.
		res := 1.0
		for i := 1; i <= k; i++ {
			res = res * float64(n-k+i) / float64(i)
		}
		return math.Round(res)
	}
	return math.Exp(lchoose(n, k))
}

// lchoose returns math.Log(Choose(n, k)).
func lchoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
