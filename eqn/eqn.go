// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eqn drives the solution of scalar transport equations on a mesh:
// it numbers the unknowns, runs the cellwise builders over worker
// goroutines, assembles the global system and dispatches the linear solver.
// Several equations may be coupled through volumetric exchange terms, in
// which case they are solved together as one block system.
package eqn

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gocdo/ele"
	"github.com/cpmech/gocdo/msh"
)

// Params defines one scalar equation
type Params struct {
	Name string // unique equation name

	// advection
	Scheme   string     // advection scheme keyword (see ele)
	UpwRatio float64    // upwind fraction for the hybrid scheme
	Consv    bool       // conservative formulation
	Velocity []fun.Func // velocity components; nil disables advection

	// diffusion
	Diffusion bool
	Kappa     float64
	Tensor    [][]float64 // anisotropic tensor; nil for isotropic
	StabCoef  float64     // jump penalization coefficient

	// reaction and source
	Reaction float64
	Source   fun.Func

	// boundary conditions per face zone tag
	Bcs map[int]*ele.BC

	// volumetric coupling: name of another equation => exchange
	// coefficient multiplying that equation's unknown
	Coupling map[string]float64
}

// Validate checks the parameter set
func (o *Params) Validate() {
	if o.Name == "" {
		chk.Panic("eqn: equation must have a name")
	}
	if o.Scheme == "" {
		o.Scheme = "upwind"
	}
	if o.Velocity == nil && !o.Diffusion && o.Reaction == 0 && o.Coupling == nil {
		chk.Panic("eqn: equation %q has no advection, diffusion, reaction or coupling term", o.Name)
	}
}

// builder allocates the cellwise builder of the diagonal block of one
// equation
func (o *Params) builder(m *msh.Mesh) *ele.Builder {
	b := &ele.Builder{
		Msh:      m,
		Scheme:   ele.SchemeByName(o.Scheme),
		UpwRatio: o.UpwRatio,
		Consv:    o.Consv,
		StabCoef: o.StabCoef,
		HasDiff:  o.Diffusion,
		Kappa:    o.Kappa,
		Tensor:   o.Tensor,
		Reac:     o.Reaction,
		Source:   o.Source,
		Bcs:      o.Bcs,
	}
	if o.Velocity != nil {
		chk.IntAssert(len(o.Velocity), m.Ndim)
		b.Flux = make([]float64, len(m.Faces))
	}
	b.Init()
	return b
}
