// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gocdo/asm"
)

// Direct solves via sparse factorization: umfpack in serial runs, mumps in
// distributed ones. The symbolic analysis is performed on the first Setup
// only; later Setup calls refactorize with the same pattern.
type Direct struct {
	cfg *Config
	tri la.Triplet
	ls  la.LinSol
}

func init() {
	allocators["direct"] = func(cfg *Config) Solver { return &Direct{cfg: cfg} }
}

// Setup copies the matrix into triplet form and factorizes it
func (o *Direct) Setup(m *asm.Matrix) {
	m.Triplet(&o.tri)
	if o.ls == nil {
		o.ls = la.GetSolver(o.cfg.Name)
		err := o.ls.InitR(&o.tri, o.cfg.Symmetric, o.cfg.Verbose, o.cfg.Timing)
		if err != nil {
			chk.Panic("sle: cannot initialise %q solver:\n%v", o.cfg.Name, err)
		}
	}
	err := o.ls.Fact()
	if err != nil {
		chk.Panic("sle: factorization failed:\n%v", err)
	}
}

// Solve computes x = A⁻¹ b
func (o *Direct) Solve(x, b []float64) *Stats {
	if o.ls == nil {
		chk.Panic("sle: direct solver must be set up before solving")
	}
	err := o.ls.SolveR(x, b, false)
	if err != nil {
		chk.Panic("sle: triangular solve failed:\n%v", err)
	}
	return &Stats{State: Converged}
}

// Free releases the backend factorization
func (o *Direct) Free() {
	if o.ls != nil {
		o.ls.Free()
		o.ls = nil
	}
}
