// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gocdo/asm"
)

// Cg is the preconditioned conjugate gradient method, for symmetric
// positive definite systems
type Cg struct {
	cfg *Config
	pc  Precond
	m   *asm.Matrix

	// workspace
	r, z, p, q []float64
}

// BiCgStab is the stabilized bi-conjugate gradient method, for general
// nonsymmetric systems
type BiCgStab struct {
	cfg *Config
	pc  Precond
	m   *asm.Matrix

	// workspace
	r, rt, p, ph, v, s, sh, t []float64
}

func init() {
	allocators["cg"] = func(cfg *Config) Solver { return &Cg{cfg: cfg, pc: NewPrecond(cfg.Prec)} }
	allocators["bicgstab"] = func(cfg *Config) Solver { return &BiCgStab{cfg: cfg, pc: NewPrecond(cfg.Prec)} }
}

// Setup stores the matrix and rebuilds the preconditioner
func (o *Cg) Setup(m *asm.Matrix) {
	o.m = m
	o.pc.Build(m)
	n := m.N()
	if len(o.r) != n {
		o.r = make([]float64, n)
		o.z = make([]float64, n)
		o.p = make([]float64, n)
		o.q = make([]float64, n)
	}
}

// Solve runs the preconditioned CG iteration starting from the content of x
func (o *Cg) Solve(x, b []float64) *Stats {
	n := o.m.N()
	checkDims(n, x, b)
	mon := monitor{cfg: o.cfg}

	// r = b - A*x
	o.m.MatVec(o.r, x)
	floats.AddScaledTo(o.r, b, -1, o.r)
	if mon.start(floats.Norm(o.r, 2)) {
		return &mon.stats
	}

	o.pc.Apply(o.z, o.r)
	copy(o.p, o.z)
	rz := floats.Dot(o.r, o.z)

	for it := 1; ; it++ {
		o.m.MatVec(o.q, o.p)
		den := floats.Dot(o.p, o.q)
		if den <= 0 {
			mon.breakdown(it, mon.stats.Res)
			break
		}
		alpha := rz / den
		floats.AddScaled(x, alpha, o.p)
		floats.AddScaled(o.r, -alpha, o.q)

		res := floats.Norm(o.r, 2)
		if o.cfg.Verbose {
			io.Pf("cg: it=%4d res=%23.15e\n", it, res)
		}
		if mon.check(it, res) {
			break
		}

		o.pc.Apply(o.z, o.r)
		rzNew := floats.Dot(o.r, o.z)
		beta := rzNew / rz
		rz = rzNew
		floats.AddScaledTo(o.p, o.z, beta, o.p)
	}
	return &mon.stats
}

func (o *Cg) Free() {}

// Setup stores the matrix and rebuilds the preconditioner
func (o *BiCgStab) Setup(m *asm.Matrix) {
	o.m = m
	o.pc.Build(m)
	n := m.N()
	if len(o.r) != n {
		o.r = make([]float64, n)
		o.rt = make([]float64, n)
		o.p = make([]float64, n)
		o.ph = make([]float64, n)
		o.v = make([]float64, n)
		o.s = make([]float64, n)
		o.sh = make([]float64, n)
		o.t = make([]float64, n)
	}
}

// Solve runs the preconditioned BiCGStab iteration starting from the
// content of x
func (o *BiCgStab) Solve(x, b []float64) *Stats {
	n := o.m.N()
	checkDims(n, x, b)
	mon := monitor{cfg: o.cfg}

	// r = b - A*x, with the shadow residual frozen at r0
	o.m.MatVec(o.r, x)
	floats.AddScaledTo(o.r, b, -1, o.r)
	if mon.start(floats.Norm(o.r, 2)) {
		return &mon.stats
	}
	copy(o.rt, o.r)

	var rho, rhoOld, alpha, omega float64
	for it := 1; ; it++ {
		rho = floats.Dot(o.rt, o.r)
		if math.Abs(rho) <= tiny {
			mon.breakdown(it, mon.stats.Res)
			break
		}
		if it == 1 {
			copy(o.p, o.r)
		} else {
			beta := (rho / rhoOld) * (alpha / omega)
			for i := 0; i < n; i++ {
				o.p[i] = o.r[i] + beta*(o.p[i]-omega*o.v[i])
			}
		}
		o.pc.Apply(o.ph, o.p)
		o.m.MatVec(o.v, o.ph)
		den := floats.Dot(o.rt, o.v)
		if math.Abs(den) <= tiny {
			mon.breakdown(it, mon.stats.Res)
			break
		}
		alpha = rho / den
		floats.AddScaledTo(o.s, o.r, -alpha, o.v)

		// early exit on the half step
		if res := floats.Norm(o.s, 2); res <= o.cfg.Tol*mon.stats.Res0 {
			floats.AddScaled(x, alpha, o.ph)
			mon.check(it, res)
			break
		}

		o.pc.Apply(o.sh, o.s)
		o.m.MatVec(o.t, o.sh)
		tt := floats.Dot(o.t, o.t)
		if tt <= tiny {
			mon.breakdown(it, mon.stats.Res)
			break
		}
		omega = floats.Dot(o.t, o.s) / tt
		floats.AddScaled(x, alpha, o.ph)
		floats.AddScaled(x, omega, o.sh)
		floats.AddScaledTo(o.r, o.s, -omega, o.t)
		rhoOld = rho

		res := floats.Norm(o.r, 2)
		if o.cfg.Verbose {
			io.Pf("bicgstab: it=%4d res=%23.15e\n", it, res)
		}
		if mon.check(it, res) {
			break
		}
		if math.Abs(omega) <= tiny {
			mon.breakdown(it, res)
			break
		}
	}
	return &mon.stats
}

func (o *BiCgStab) Free() {}
