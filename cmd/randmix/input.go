// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// parsePoint parses comma- or space-separated coordinates.
func parsePoint(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, errors.Newf("empty point %q", s)
	}
	x := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing point %q", s)
		}
		x[i] = v
	}
	return x, nil
}

// readPoints returns the points in args, or one point per non-blank
// line of r if args is empty.
func readPoints(args []string, r io.Reader) ([][]float64, error) {
	var xs [][]float64
	if len(args) > 0 {
		for _, a := range args {
			x, err := parsePoint(a)
			if err != nil {
				return nil, err
			}
			xs = append(xs, x)
		}
		return xs, nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		x, err := parsePoint(l)
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	return xs, nil
}

// readScalars is readPoints for univariate values.
func readScalars(args []string, r io.Reader) ([]float64, error) {
	xs, err := readPoints(args, r)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		if len(x) != 1 {
			return nil, errors.Newf("got %d coordinates, want a single value", len(x))
		}
		out[i] = x[0]
	}
	return out, nil
}

func formatPoint(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
