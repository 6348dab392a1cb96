// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocdo/msh"
)

var genCmd = &cobra.Command{
	Use:   "gen [mesh.msh]",
	Short: "Generate a Cartesian mesh file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		nx, _ := cmd.Flags().GetInt("nx")
		ny, _ := cmd.Flags().GetInt("ny")
		lx, _ := cmd.Flags().GetFloat64("lx")
		ly, _ := cmd.Flags().GetFloat64("ly")

		var m *msh.Mesh
		if ny < 1 {
			m = msh.GenChain1D(nx)
		} else {
			m = msh.GenGrid2D(nx, ny, lx, ly)
		}
		b, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			chk.Panic("cannot encode mesh:\n%v", err)
		}
		io.WriteFileSD(filepath.Dir(args[0]), filepath.Base(args[0]), string(b))
		io.Pf("wrote %s: %d cells, %d faces\n", args[0], len(m.Cells), len(m.Faces))
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().Int("nx", 10, "number of cells along x")
	genCmd.Flags().Int("ny", 0, "number of cells along y (0 = 1D chain)")
	genCmd.Flags().Float64("lx", 1, "domain length along x")
	genCmd.Flags().Float64("ly", 1, "domain length along y")
}
