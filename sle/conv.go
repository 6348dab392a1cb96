// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sle solves the sparse linear systems produced by assembly:
// direct factorizations, preconditioned Krylov iterations and the
// block-diagonal preconditioning kernels they share
package sle

import "github.com/cpmech/gosl/chk"

// ConvState tracks the convergence of an iterative solve
type ConvState int

const (
	Unconverged ConvState = iota // not started
	Iterating                    // running, tolerance not reached
	Converged                    // residual tolerance reached
	MaxIter                      // iteration limit hit
	Diverged                     // residual grew past the divergence factor
	Breakdown                    // algorithmic breakdown (zero inner product)
)

func (o ConvState) String() string {
	switch o {
	case Unconverged:
		return "unconverged"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIter:
		return "max-iterations"
	case Diverged:
		return "diverged"
	case Breakdown:
		return "breakdown"
	}
	return "unknown"
}

// Stats reports the outcome of one solve
type Stats struct {
	State ConvState
	NIter int
	Res0  float64 // initial residual norm
	Res   float64 // final residual norm
}

// Config selects and parametrises a solver
type Config struct {
	Kind      string  // solver kind: direct, cg, bicgstab, jacobi
	Name      string  // direct backend: umfpack (serial) or mumps (distributed)
	Symmetric bool    // matrix is symmetric (direct backends exploit this)
	Verbose   bool    // print convergence history
	Timing    bool    // print factorization timings
	MaxIt     int     // iteration limit
	Tol       float64 // relative residual tolerance
	DivTol    float64 // divergence factor w.r.t. the initial residual
	Prec      string  // preconditioner: none, jacobi, sgs, block
}

// NewConfig returns a configuration with default values
func NewConfig() *Config {
	return &Config{
		Kind:   "direct",
		Name:   "umfpack",
		MaxIt:  1000,
		Tol:    1e-10,
		DivTol: 1e4,
		Prec:   "jacobi",
	}
}

// FixForDistr adjusts the configuration for a distributed run: the serial
// direct backend is replaced by its distributed counterpart
func (o *Config) FixForDistr(distr bool) {
	if distr && o.Kind == "direct" && o.Name == "umfpack" {
		o.Name = "mumps"
	}
}

// monitor implements the convergence state machine shared by the iterative
// solvers. check classifies the residual of iteration it and reports
// whether the iteration should stop.
type monitor struct {
	cfg   *Config
	stats Stats
}

func (o *monitor) start(res0 float64) (done bool) {
	o.stats.State = Unconverged
	o.stats.NIter = 0
	o.stats.Res0 = res0
	o.stats.Res = res0
	if res0 <= tiny {
		o.stats.State = Converged
		return true
	}
	o.stats.State = Iterating
	return false
}

func (o *monitor) check(it int, res float64) (done bool) {
	o.stats.NIter = it
	o.stats.Res = res
	if res <= o.cfg.Tol*o.stats.Res0 || res <= tiny {
		o.stats.State = Converged
		return true
	}
	if o.cfg.DivTol > 0 && res > o.cfg.DivTol*o.stats.Res0 {
		o.stats.State = Diverged
		return true
	}
	if it >= o.cfg.MaxIt {
		o.stats.State = MaxIter
		return true
	}
	o.stats.State = Iterating
	return false
}

func (o *monitor) breakdown(it int, res float64) {
	o.stats.NIter = it
	o.stats.Res = res
	o.stats.State = Breakdown
}

// tiny is the absolute residual below which any system counts as solved
const tiny = 1e-30

// checkDims asserts that x and b match the matrix dimension
func checkDims(n int, x, b []float64) {
	chk.IntAssert(len(x), n)
	chk.IntAssert(len(b), n)
}
