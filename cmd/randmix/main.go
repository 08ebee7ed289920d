// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// randmix evaluates the distribution of a random mixture described by
// a YAML or TOML file.
//
// Points are read from the command line or, if there are none, one per
// line from stdin. A multivariate point is written as comma-separated
// coordinates. Results are written to stdout as CSV.
package main

import (
	"os"

	"github.com/aclements/go-randmix/randmix"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	mixturePath string
	verbose     bool

	log = logrus.New()
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVarP(&mixturePath, "mixture", "m", "", "Mixture description file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log evaluation details")
	rootCmd.MarkPersistentFlagRequired("mixture")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	rootCmd.AddCommand(describeCmd, pdfCmd, cdfCmd, quantileCmd, gridCmd, sampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "randmix",
	Short: "Evaluate the distribution of a random mixture",
	Long: `randmix computes the density, distribution function and quantiles of
Y = c + W·X, where X is a vector of independent univariate atoms.`,
	SilenceUsage: true,
}

// loadMixture builds the mixture named by the --mixture flag.
func loadMixture() (*randmix.RandomMixture, error) {
	d, err := randmix.LoadDescription(mixturePath)
	if err != nil {
		return nil, err
	}
	d.Config.Logger = log
	m, err := d.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "building %s", mixturePath)
	}
	log.WithFields(logrus.Fields{
		"file":      mixturePath,
		"dimension": m.Dim(),
		"atoms":     len(m.Atoms()),
	}).Debug("loaded mixture")
	return m, nil
}
