// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocdo/msh"
)

func cteFun(c float64) fun.Func {
	f, err := fun.New("cte", fun.Prms{&fun.Prm{N: "c", V: c}})
	if err != nil {
		chk.Panic("cannot allocate cte function: %v", err)
	}
	return f
}

// chainFlux fills the face fluxes of a 1D chain for a uniform unit velocity
// pointing right
func chainFlux(m *msh.Mesh) []float64 {
	flux := make([]float64, len(m.Faces))
	ComputeFlux(m, []fun.Func{cteFun(1)}, 0, flux)
	return flux
}

func freeBcs() map[int]*BC {
	return map[int]*BC{
		msh.TagLeft:  {Kind: Outflow},
		msh.TagRight: {Kind: Outflow},
	}
}

func Test_builder01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder01. advective pair updates are conservative")

	m := msh.GenChain1D(4)
	flux := chainFlux(m)

	// for every scheme the rows of the two cells sharing a face must be
	// exact negations of each other
	for name, scheme := range schemes {
		o := Builder{Msh: m, Scheme: scheme, UpwRatio: 0.4, Consv: true, Flux: flux, Bcs: freeBcs()}
		o.Init()
		s := NewSys(o.MaxDofs())
		o.BuildCell(1, 0, s) // interior cell: owns the face to cell 2
		j := -1
		for k, g := range s.Dmap {
			if g == 2 {
				j = k
			}
		}
		if j < 0 {
			tst.Errorf("cell 2 is not in the local map")
			return
		}
		for k := 0; k < s.N; k++ {
			chk.Scalar(tst, io.Sf("%s: K[0][%d]+K[%d][%d]", name, k, j, k), 1e-15, s.K[0][k]+s.K[j][k], 0)
		}
	}
}

func Test_builder02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder02. upwind picks the upstream value")

	m := msh.GenChain1D(3)
	flux := chainFlux(m)

	o := Builder{Msh: m, Scheme: Upwind, Consv: true, Flux: flux, Bcs: freeBcs()}
	o.Init()
	s := NewSys(o.MaxDofs())
	o.BuildCell(0, 0, s)

	// owner row: the outgoing face carries u0 only; the downstream column
	// must stay empty
	j := -1
	for k, g := range s.Dmap {
		if g == 1 {
			j = k
		}
	}
	chk.Scalar(tst, "K[0][0]", 1e-15, s.K[0][0], 1)
	chk.Scalar(tst, "K[0][j]", 1e-15, s.K[0][j], 0)
	chk.Scalar(tst, "K[j][0]", 1e-15, s.K[j][0], -1)
}

func Test_builder03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder03. two-point diffusion is symmetric")

	m := msh.GenChain1D(3)
	o := Builder{Msh: m, Scheme: Centered, Consv: true, HasDiff: true, Kappa: 2.5,
		Bcs: map[int]*BC{
			msh.TagLeft:  {Kind: Dirichlet},
			msh.TagRight: {Kind: Dirichlet},
		}}
	o.Init()
	s := NewSys(o.MaxDofs())
	o.BuildCell(1, 0, s)

	for i := 0; i < s.N; i++ {
		for j := 0; j < s.N; j++ {
			chk.Scalar(tst, io.Sf("K[%d][%d]=K[%d][%d]", i, j, j, i), 1e-15, s.K[i][j], s.K[j][i])
		}
	}

	// transmissivity of a unit interior face with kappa=2.5 is 2.5
	j := -1
	for k, g := range s.Dmap {
		if g == 2 {
			j = k
		}
	}
	chk.Scalar(tst, "K[0][j]", 1e-15, s.K[0][j], -2.5)
}

func Test_builder04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder04. tensor diffusion projects along the normal")

	m := msh.GenGrid2D(2, 2, 2, 2)
	tensor := [][]float64{
		{4, 1},
		{1, 9},
	}
	o := Builder{Msh: m, Scheme: Centered, Consv: true, HasDiff: true, Tensor: tensor,
		Bcs: map[int]*BC{
			msh.TagLeft:   {Kind: Dirichlet},
			msh.TagRight:  {Kind: Dirichlet},
			msh.TagBottom: {Kind: Symmetry},
			msh.TagTop:    {Kind: Symmetry},
		}}
	o.Init()

	// x-normal face: n.K.n = Kxx = 4; y-normal face: n.K.n = Kyy = 9.
	// the off-diagonal entries must not leak into axis-aligned normals
	fx := &msh.Face{Id: 0, Area: 1, Dist: 1, Normal: []float64{1, 0}}
	fy := &msh.Face{Id: 1, Area: 1, Dist: 1, Normal: []float64{0, 1}}
	chk.Scalar(tst, "T(nx)", 1e-15, o.trans(fx), 4)
	chk.Scalar(tst, "T(ny)", 1e-15, o.trans(fy), 9)
}

func Test_builder05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder05. degenerate cell gets a unit diagonal")

	m := msh.GenChain1D(2)
	o := Builder{Msh: m, Scheme: Upwind, Consv: true, Bcs: freeBcs()}
	o.Init()
	s := NewSys(o.MaxDofs())
	o.BuildCell(0, 0, s)

	chk.Scalar(tst, "K[0][0]", 1e-15, s.K[0][0], 1)
	for k := 1; k < s.N; k++ {
		chk.Scalar(tst, "K[0][k]", 1e-15, s.K[0][k], 0)
	}
	chk.Scalar(tst, "F[0]", 1e-15, s.F[0], 0)
}

func Test_builder06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder06. disabled cell produces an empty system")

	m := msh.GenChain1D(3)
	m.Cells[1].Disabled = true
	o := Builder{Msh: m, Scheme: Upwind, Consv: true, Flux: chainFlux(m), Bcs: freeBcs()}
	o.Init()
	s := NewSys(o.MaxDofs())
	o.BuildCell(1, 0, s)
	chk.IntAssert(s.N, 0)
}

func Test_builder07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder07. boundary advection: inflow loads rhs, outflow loads diagonal")

	m := msh.GenChain1D(2)
	flux := chainFlux(m)

	o := Builder{Msh: m, Scheme: Upwind, Consv: true, Flux: flux,
		Bcs: map[int]*BC{
			msh.TagLeft:  {Kind: Dirichlet, Fcn: cteFun(5)},
			msh.TagRight: {Kind: Outflow},
		}}
	o.Init()
	s := NewSys(o.MaxDofs())

	// inflow cell: rhs receives |beta|*g = 5, interior face gives +u0
	o.BuildCell(0, 0, s)
	chk.Scalar(tst, "F[0] inflow", 1e-15, s.F[0], 5)
	chk.Scalar(tst, "K[0][0] inflow", 1e-15, s.K[0][0], 1)

	// outflow cell: diagonal receives the outgoing flux
	o.BuildCell(1, 0, s)
	chk.Scalar(tst, "K[0][0] outflow", 1e-15, s.K[0][0], 1)
	chk.Scalar(tst, "F[0] outflow", 1e-15, s.F[0], 0)
}

func Test_builder08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder08. missing boundary condition panics")

	m := msh.GenChain1D(2)
	o := Builder{Msh: m, Scheme: Upwind, Consv: true,
		Bcs: map[int]*BC{msh.TagLeft: {Kind: Outflow}}}
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("test should have panicked")
		}
	}()
	o.Init()
}

func Test_builder09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("builder09. centered-dde saturates to upwind and relaxes to centered")

	m := msh.GenChain1D(3)
	flux := chainFlux(m)

	build := func(o Builder) *Sys {
		o.Msh = m
		o.Consv = true
		o.Bcs = freeBcs()
		o.Init()
		s := NewSys(o.MaxDofs())
		o.BuildCell(1, 0, s)
		return s
	}

	// without diffusion the fitted stabilization is the hard upwind correction
	a := build(Builder{Scheme: CenteredDDE, Flux: flux})
	b := build(Builder{Scheme: Upwind, Flux: flux})
	for i := 0; i < a.N; i++ {
		chk.Vector(tst, io.Sf("K[%d] pure advection", i), 1e-15, a.K[i][:a.N], b.K[i][:b.N])
	}

	// at vanishing Peclet number the stabilization vanishes
	small := make([]float64, len(flux))
	for i, f := range flux {
		small[i] = 1e-8 * f
	}
	a = build(Builder{Scheme: CenteredDDE, HasDiff: true, Kappa: 1, Flux: small})
	b = build(Builder{Scheme: Centered, HasDiff: true, Kappa: 1, Flux: small})
	for i := 0; i < a.N; i++ {
		chk.Vector(tst, io.Sf("K[%d] small Peclet", i), 1e-12, a.K[i][:a.N], b.K[i][:b.N])
	}
}
