// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmd holds the command line interface of gocdo
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cpmech/gosl/chk"
)

var rootCmd = &cobra.Command{
	Use:   "gocdo",
	Short: "Cell-centred finite-volume solver for scalar transport equations",
	Long: `
Gocdo discretizes advection-diffusion-reaction equations over unstructured
meshes and solves the assembled sparse systems with direct or iterative
linear solvers, in serial or MPI-distributed runs.`,
	SilenceUsage: true,
}

// Execute runs the selected command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		chk.Panic("%v", err)
	}
}
