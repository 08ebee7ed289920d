// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// An Interval is the closed interval [Lo, Hi]. Lo may be -Inf and Hi
// may be +Inf.
type Interval struct {
	Lo, Hi float64
}

// RealLine is the interval (-Inf, +Inf).
var RealLine = Interval{-inf, inf}

// Contains returns whether x is in i.
func (i Interval) Contains(x float64) bool {
	return i.Lo <= x && x <= i.Hi
}

// Width returns Hi - Lo.
func (i Interval) Width() float64 {
	return i.Hi - i.Lo
}

// Finite returns whether both bounds of i are finite.
func (i Interval) Finite() bool {
	return !math.IsInf(i.Lo, 0) && !math.IsInf(i.Hi, 0)
}

// Empty returns whether i contains no points.
func (i Interval) Empty() bool {
	return !(i.Lo <= i.Hi)
}

// Scale returns the image of i under x -> w*x. Scale panics if w is
// 0, since that would map infinite bounds to NaN.
func (i Interval) Scale(w float64) Interval {
	if w == 0 {
		panic("interval scaled by 0")
	}
	if w > 0 {
		return Interval{w * i.Lo, w * i.Hi}
	}
	return Interval{w * i.Hi, w * i.Lo}
}

// Shift returns i translated by c.
func (i Interval) Shift(c float64) Interval {
	return Interval{i.Lo + c, i.Hi + c}
}

// Add returns the Minkowski sum of i and o.
func (i Interval) Add(o Interval) Interval {
	return Interval{i.Lo + o.Lo, i.Hi + o.Hi}
}

// Intersect returns the intersection of i and o, which may be Empty.
func (i Interval) Intersect(o Interval) Interval {
	return Interval{math.Max(i.Lo, o.Lo), math.Min(i.Hi, o.Hi)}
}

// Hull returns the smallest interval containing i and o.
func (i Interval) Hull(o Interval) Interval {
	return Interval{math.Min(i.Lo, o.Lo), math.Max(i.Hi, o.Hi)}
}
