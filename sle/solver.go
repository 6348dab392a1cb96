// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocdo/asm"
)

// Solver solves the assembled systems of one equation. Setup is called
// whenever the matrix values change; Solve may then be called any number of
// times with different right-hand sides.
type Solver interface {
	Setup(m *asm.Matrix)         // factorize or (re)build preconditioner
	Solve(x, b []float64) *Stats // solve A*x = b
	Free()                       // release backend resources
}

// allocators maps solver kinds to allocators
var allocators = map[string]func(cfg *Config) Solver{}

// New allocates a solver according to cfg.Kind
func New(cfg *Config) Solver {
	alloc, ok := allocators[cfg.Kind]
	if !ok {
		chk.Panic("sle: cannot find solver kind %q", cfg.Kind)
	}
	return alloc(cfg)
}

// Precond applies an approximate inverse: z = M⁻¹ r
type Precond interface {
	Build(m *asm.Matrix)
	Apply(z, r []float64)
}

// precAllocators maps preconditioner names to allocators
var precAllocators = map[string]func() Precond{
	"none":   func() Precond { return new(Identity) },
	"jacobi": func() Precond { return new(JacobiPrec) },
	"sgs":    func() Precond { return new(SgsPrec) },
	"block":  func() Precond { return &BlockPrec{Inv: NewBlockInv()} },
}

// NewPrecond allocates a preconditioner by name
func NewPrecond(name string) Precond {
	alloc, ok := precAllocators[name]
	if !ok {
		chk.Panic("sle: cannot find preconditioner %q", name)
	}
	return alloc()
}

// Identity is the trivial preconditioner
type Identity struct{}

func (o *Identity) Build(m *asm.Matrix) {}

func (o *Identity) Apply(z, r []float64) {
	copy(z, r)
}
