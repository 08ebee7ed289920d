// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/aclements/go-randmix/randmix"
	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type densityRecord struct {
	X   string  `csv:"x"`
	PDF float64 `csv:"pdf"`
}

type cdfRecord struct {
	X   string  `csv:"x"`
	CDF float64 `csv:"cdf"`
}

type quantileRecord struct {
	Q float64 `csv:"q"`
	X float64 `csv:"x"`
}

type sampleRecord struct {
	Y string `csv:"y"`
}

var (
	describeFormat string
	upper          bool
	gridLo, gridHi string
	gridN          string
	sampleCount    int
	sampleSeed     uint64
)

func init() {
	describeCmd.Flags().StringVar(&describeFormat, "format", "", "Also print the simplified description as yaml or toml")
	cdfCmd.Flags().BoolVar(&upper, "upper", false, "Print the complementary CDF P(Y > x)")
	gridCmd.Flags().StringVar(&gridLo, "lo", "", "Lower grid corner, comma separated")
	gridCmd.Flags().StringVar(&gridHi, "hi", "", "Upper grid corner, comma separated")
	gridCmd.Flags().StringVar(&gridN, "n", "", "Points per axis, comma separated")
	for _, f := range []string{"lo", "hi", "n"} {
		gridCmd.MarkFlagRequired(f)
	}
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 1000, "Number of draws")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 1, "Random seed")
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the moments and simplified form of the mixture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMixture()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		printSummary(w, m)
		if describeFormat == "" {
			return nil
		}
		d, err := m.Describe()
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		return d.Encode(w, describeFormat)
	},
}

func printSummary(w io.Writer, m *randmix.RandomMixture) {
	fmt.Fprintf(w, "dimension %d  atoms %d  analytical %v\n", m.Dim(), len(m.Atoms()), m.IsAnalytical())
	fmt.Fprintf(w, "mean     %v\n", m.MeanVector())
	fmt.Fprintf(w, "std dev  %v\n", m.StdDev())
	fmt.Fprintf(w, "covariance\n%v\n", mat.Formatted(m.Covariance(), mat.Prefix("  "), mat.Squeeze()))
	for i, a := range m.Atoms() {
		fmt.Fprintf(w, "atom %d  %T %+v\n", i, a, a)
	}
	if m.Dim() == 1 {
		lo, hi := m.Bounds()
		fmt.Fprintf(w, "range    [%.6g, %.6g]\n", lo, hi)
		fmt.Fprintf(w, "skewness %.6g  excess kurtosis %.6g\n", m.Skewness(), m.ExKurtosis())
	}
}

var pdfCmd = &cobra.Command{
	Use:   "pdf [point...]",
	Short: "Print the density at each point",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMixture()
		if err != nil {
			return err
		}
		xs, err := readPoints(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		recs := make([]densityRecord, len(xs))
		for i, x := range xs {
			p, err := m.PDFAt(x)
			if err != nil {
				return err
			}
			recs[i] = densityRecord{formatPoint(x), p}
		}
		return gocsv.Marshal(recs, cmd.OutOrStdout())
	},
}

var cdfCmd = &cobra.Command{
	Use:   "cdf [x...]",
	Short: "Print the distribution function of a univariate mixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMixture()
		if err != nil {
			return err
		}
		xs, err := readPoints(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		recs := make([]cdfRecord, len(xs))
		for i, x := range xs {
			var p float64
			if upper {
				p, err = m.ComplementaryCDFAt(x)
			} else {
				p, err = m.CDFAt(x)
			}
			if err != nil {
				return err
			}
			recs[i] = cdfRecord{formatPoint(x), p}
		}
		return gocsv.Marshal(recs, cmd.OutOrStdout())
	},
}

var quantileCmd = &cobra.Command{
	Use:   "quantile [q...]",
	Short: "Print quantiles of a univariate mixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMixture()
		if err != nil {
			return err
		}
		qs, err := readScalars(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		xs, err := m.QuantileEach(qs)
		if err != nil {
			return err
		}
		recs := make([]quantileRecord, len(qs))
		for i := range qs {
			recs[i] = quantileRecord{qs[i], xs[i]}
		}
		return gocsv.Marshal(recs, cmd.OutOrStdout())
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the density on a regular grid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMixture()
		if err != nil {
			return err
		}
		lo, err := parsePoint(gridLo)
		if err != nil {
			return errors.Wrap(err, "--lo")
		}
		hi, err := parsePoint(gridHi)
		if err != nil {
			return errors.Wrap(err, "--hi")
		}
		n, err := parseInts(gridN)
		if err != nil {
			return errors.Wrap(err, "--n")
		}
		g, err := m.GridPDF(lo, hi, n)
		if err != nil {
			return err
		}
		recs := make([]densityRecord, g.Len())
		for i := range recs {
			recs[i] = densityRecord{formatPoint(g.Point(i)), g.Values[i]}
		}
		return gocsv.Marshal(recs, cmd.OutOrStdout())
	},
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print random draws from the mixture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMixture()
		if err != nil {
			return err
		}
		if sampleCount < 1 {
			return errors.Newf("sample count must be positive, got %d", sampleCount)
		}
		r := rand.New(rand.NewPCG(sampleSeed, sampleSeed))
		ys := m.SampleN(sampleCount, r)
		recs := make([]sampleRecord, sampleCount)
		for i := range recs {
			recs[i] = sampleRecord{formatPoint(ys.RawRowView(i))}
		}
		return gocsv.Marshal(recs, cmd.OutOrStdout())
	},
}
