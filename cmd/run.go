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
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/gocdo/eqn"
	"github.com/cpmech/gocdo/inp"
	"github.com/cpmech/gocdo/msh"
)

var runCmd = &cobra.Command{
	Use:   "run [case.yml]",
	Short: "Run a simulation case",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		nworkers, _ := cmd.Flags().GetInt("nworkers")
		verbose, _ := cmd.Flags().GetBool("verbose")
		outfn, _ := cmd.Flags().GetString("output")
		RunCase(args[0], nworkers, verbose, outfn)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntP("nworkers", "w", 0, "number of assembly workers (0 = case file setting)")
	runCmd.Flags().BoolP("verbose", "v", false, "print convergence history")
	runCmd.Flags().StringP("output", "o", "", "result file (default <case>-res.json)")
}

// RunCase reads a case file, runs it to completion and writes the resulting
// fields. Returns after the final solve so callers can inspect the system.
func RunCase(fn string, nworkers int, verbose bool, outfn string) *eqn.System {

	c := inp.ReadCase(fn)
	if nworkers > 0 {
		c.Nworkers = nworkers
	}
	if verbose {
		c.Verbose = true
	}
	m := msh.Read(c.MeshPath())

	cfg := c.MakeConfig()
	sys := eqn.NewSystem(m, c.MakeParams(m.Ndim), cfg, c.Nworkers)

	if mpi.Rank() == 0 && c.Verbose {
		io.Pf("gocdo: %s\n", c.Title)
		io.Pf("  cells=%d  faces=%d  equations=%d  unknowns=%d\n",
			len(m.Cells), len(m.Faces), len(c.Eqs), sys.Rs.N)
	}

	if c.Steady {
		sys.Solve(c.Tini)
	} else {
		for t := c.Tini; t < c.Tfin-1e-12; t += c.Dt {
			sys.AdvanceImplicit(t, c.Dt)
		}
	}

	if mpi.Rank() == 0 {
		writeResults(c, sys, fn, outfn)
	}
	return sys
}

func writeResults(c *inp.Case, sys *eqn.System, fn, outfn string) {
	res := make(map[string][]float64)
	for _, e := range c.Eqs {
		res[e.Name] = sys.Field(e.Name)
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		chk.Panic("cannot encode results:\n%v", err)
	}
	dir := c.Dir
	if outfn == "" {
		outfn = io.FnKey(fn) + "-res.json"
	} else {
		dir = filepath.Dir(outfn)
		outfn = filepath.Base(outfn)
	}
	io.WriteFileSD(dir, outfn, string(b))
	if c.Verbose {
		io.PfGreen("results written to %s\n", filepath.Join(dir, outfn))
	}
}
