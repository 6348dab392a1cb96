// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gocdo/asm"
)

// JacobiPrec is the diagonal (Jacobi) preconditioner
type JacobiPrec struct {
	idiag []float64
}

func (o *JacobiPrec) Build(m *asm.Matrix) {
	n := m.N()
	if len(o.idiag) != n {
		o.idiag = make([]float64, n)
	}
	m.Diag(o.idiag)
	for i, d := range o.idiag {
		if math.Abs(d) <= tiny {
			chk.Panic("sle: zero diagonal at row %d. cannot build jacobi preconditioner", i)
		}
		o.idiag[i] = 1.0 / d
	}
}

func (o *JacobiPrec) Apply(z, r []float64) {
	for i := range z {
		z[i] = o.idiag[i] * r[i]
	}
}

// SgsPrec is the symmetric Gauss-Seidel preconditioner
// M = (D+L) D⁻¹ (D+U), applied with one forward and one backward sweep
type SgsPrec struct {
	m    *asm.Matrix
	diag []float64
	y    []float64
}

func (o *SgsPrec) Build(m *asm.Matrix) {
	o.m = m
	n := m.N()
	if len(o.diag) != n {
		o.diag = make([]float64, n)
		o.y = make([]float64, n)
	}
	m.Diag(o.diag)
	for i, d := range o.diag {
		if math.Abs(d) <= tiny {
			chk.Panic("sle: zero diagonal at row %d. cannot build sgs preconditioner", i)
		}
	}
}

func (o *SgsPrec) Apply(z, r []float64) {
	n := o.m.N()

	// forward: (D+L) y = r
	for i := 0; i < n; i++ {
		sum := r[i]
		cols, vals := o.m.Row(i)
		for k, j := range cols {
			if j < i {
				sum -= vals[k] * o.y[j]
			}
		}
		o.y[i] = sum / o.diag[i]
	}

	// backward: (D+U) z = D y
	for i := n - 1; i >= 0; i-- {
		sum := o.diag[i] * o.y[i]
		cols, vals := o.m.Row(i)
		for k, j := range cols {
			if j > i {
				sum -= vals[k] * z[j]
			}
		}
		z[i] = sum / o.diag[i]
	}
}

// BlockPrec applies the inverted diagonal blocks of the matrix, coupling
// the unknowns of each entity while decoupling entities from each other
type BlockPrec struct {
	Inv *BlockInv
}

func (o *BlockPrec) Build(m *asm.Matrix) {
	o.Inv.Setup(m)
}

func (o *BlockPrec) Apply(z, r []float64) {
	o.Inv.Apply(z, r)
}

// Jacobi is the stationary Jacobi iteration x ← x + D⁻¹(b - A*x), useful
// as a smoother and for nearly diagonal systems
type Jacobi struct {
	cfg   *Config
	m     *asm.Matrix
	idiag []float64
	r     []float64
}

func init() {
	allocators["jacobi"] = func(cfg *Config) Solver { return &Jacobi{cfg: cfg} }
}

func (o *Jacobi) Setup(m *asm.Matrix) {
	o.m = m
	n := m.N()
	if len(o.idiag) != n {
		o.idiag = make([]float64, n)
		o.r = make([]float64, n)
	}
	m.Diag(o.idiag)
	for i, d := range o.idiag {
		if math.Abs(d) <= tiny {
			chk.Panic("sle: zero diagonal at row %d. cannot run jacobi iteration", i)
		}
		o.idiag[i] = 1.0 / d
	}
}

func (o *Jacobi) Solve(x, b []float64) *Stats {
	n := o.m.N()
	checkDims(n, x, b)
	mon := monitor{cfg: o.cfg}

	o.m.MatVec(o.r, x)
	floats.AddScaledTo(o.r, b, -1, o.r)
	if mon.start(floats.Norm(o.r, 2)) {
		return &mon.stats
	}

	for it := 1; ; it++ {
		for i := 0; i < n; i++ {
			x[i] += o.idiag[i] * o.r[i]
		}
		o.m.MatVec(o.r, x)
		floats.AddScaledTo(o.r, b, -1, o.r)
		res := floats.Norm(o.r, 2)
		if o.cfg.Verbose {
			io.Pf("jacobi: it=%4d res=%23.15e\n", it, res)
		}
		if mon.check(it, res) {
			break
		}
	}
	return &mon.stats
}

func (o *Jacobi) Free() {}

// Sgs is the stationary symmetric Gauss-Seidel iteration: one forward and
// one backward sweep per step, sharing the sweeps with SgsPrec
type Sgs struct {
	cfg  *Config
	m    *asm.Matrix
	prec SgsPrec
	r    []float64
	z    []float64
}

func init() {
	allocators["sgs"] = func(cfg *Config) Solver { return &Sgs{cfg: cfg} }
}

func (o *Sgs) Setup(m *asm.Matrix) {
	o.m = m
	o.prec.Build(m)
	n := m.N()
	if len(o.r) != n {
		o.r = make([]float64, n)
		o.z = make([]float64, n)
	}
}

func (o *Sgs) Solve(x, b []float64) *Stats {
	n := o.m.N()
	checkDims(n, x, b)
	mon := monitor{cfg: o.cfg}

	o.m.MatVec(o.r, x)
	floats.AddScaledTo(o.r, b, -1, o.r)
	if mon.start(floats.Norm(o.r, 2)) {
		return &mon.stats
	}

	for it := 1; ; it++ {
		o.prec.Apply(o.z, o.r)
		floats.Add(x, o.z)
		o.m.MatVec(o.r, x)
		floats.AddScaledTo(o.r, b, -1, o.r)
		res := floats.Norm(o.r, 2)
		if o.cfg.Verbose {
			io.Pf("sgs: it=%4d res=%23.15e\n", it, res)
		}
		if mon.check(it, res) {
			break
		}
	}
	return &mon.stats
}

func (o *Sgs) Free() {}
