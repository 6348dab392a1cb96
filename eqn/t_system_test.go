// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqn

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocdo/ele"
	"github.com/cpmech/gocdo/msh"
	"github.com/cpmech/gocdo/sle"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func cteFun(c float64) fun.Func {
	f, err := fun.New("cte", fun.Prms{&fun.Prm{N: "c", V: c}})
	if err != nil {
		chk.Panic("cannot allocate cte function: %v", err)
	}
	return f
}

func cgConfig() *sle.Config {
	cfg := sle.NewConfig()
	cfg.Kind = "cg"
	cfg.Tol = 1e-13
	return cfg
}

func bicgConfig() *sle.Config {
	cfg := sle.NewConfig()
	cfg.Kind = "bicgstab"
	cfg.Tol = 1e-13
	return cfg
}

func Test_system01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system01. diffusion chain reproduces the linear profile")

	// unit conductivity, u=0 on the left wall and u=10 on the right wall of
	// a 10-cell chain: the discrete solution is exact at the cell centres
	m := msh.GenChain1D(10)
	eq := &Params{
		Name: "temp", Diffusion: true, Kappa: 1,
		Bcs: map[int]*ele.BC{
			msh.TagLeft:  {Kind: ele.Dirichlet, Fcn: cteFun(0)},
			msh.TagRight: {Kind: ele.Dirichlet, Fcn: cteFun(10)},
		},
	}
	sys := NewSystem(m, []*Params{eq}, cgConfig(), 1)
	st := sys.Solve(0)
	if st.State != sle.Converged {
		tst.Errorf("solver did not converge: %v", st.State)
		return
	}
	u := sys.Field("temp")
	for i := 0; i < 10; i++ {
		chk.Scalar(tst, io.Sf("u[%d]", i), 1e-9, u[i], float64(i)+0.5)
	}
}

func Test_system02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system02. upwind transport carries the inlet value")

	m := msh.GenChain1D(12)
	eq := &Params{
		Name: "c", Scheme: "upwind", Consv: true,
		Velocity: []fun.Func{cteFun(1)},
		Bcs: map[int]*ele.BC{
			msh.TagLeft:  {Kind: ele.Dirichlet, Fcn: cteFun(5)},
			msh.TagRight: {Kind: ele.Outflow},
		},
	}
	sys := NewSystem(m, []*Params{eq}, bicgConfig(), 1)
	st := sys.Solve(0)
	if st.State != sle.Converged {
		tst.Errorf("solver did not converge: %v", st.State)
		return
	}
	for i, v := range sys.Field("c") {
		chk.Scalar(tst, io.Sf("c[%d]", i), 1e-9, v, 5)
	}
}

func Test_system03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system03. solution is independent of worker count")

	newSys := func(nw int) *System {
		m := msh.GenGrid2D(6, 5, 3, 2.5)
		eq := &Params{
			Name: "phi", Scheme: "samarskii", Consv: true,
			Diffusion: true, Kappa: 0.8,
			Velocity: []fun.Func{cteFun(1), cteFun(0.3)},
			Source:   cteFun(2),
			Bcs: map[int]*ele.BC{
				msh.TagLeft:   {Kind: ele.Dirichlet, Fcn: cteFun(1)},
				msh.TagRight:  {Kind: ele.Outflow},
				msh.TagBottom: {Kind: ele.Symmetry},
				msh.TagTop:    {Kind: ele.Neumann, Fcn: cteFun(0.5)},
			},
		}
		return NewSystem(m, []*Params{eq}, bicgConfig(), nw)
	}

	ref := newSys(1)
	ref.Solve(0)
	for _, nw := range []int{2, 4, 7} {
		sys := newSys(nw)
		sys.Solve(0)
		chk.Vector(tst, io.Sf("phi (%d workers)", nw), 1e-9, sys.Field("phi"), ref.Field("phi"))
	}
}

func Test_system04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system04. zero coupling equals independent solves")

	mkeqs := func(coupled bool) []*Params {
		a := &Params{
			Name: "a", Diffusion: true, Kappa: 1,
			Bcs: map[int]*ele.BC{
				msh.TagLeft:  {Kind: ele.Dirichlet, Fcn: cteFun(0)},
				msh.TagRight: {Kind: ele.Dirichlet, Fcn: cteFun(1)},
			},
		}
		b := &Params{
			Name: "b", Diffusion: true, Kappa: 2, Source: cteFun(1),
			Bcs: map[int]*ele.BC{
				msh.TagLeft:  {Kind: ele.Dirichlet, Fcn: cteFun(3)},
				msh.TagRight: {Kind: ele.Neumann, Fcn: cteFun(0)},
			},
		}
		if coupled {
			a.Coupling = map[string]float64{"b": 0}
			b.Coupling = map[string]float64{"a": 0}
		}
		return []*Params{a, b}
	}

	m := msh.GenChain1D(8)
	both := NewSystem(m, mkeqs(true), cgConfig(), 2)
	both.Solve(0)

	for _, name := range []string{"a", "b"} {
		m2 := msh.GenChain1D(8)
		var one *System
		if name == "a" {
			one = NewSystem(m2, mkeqs(false)[:1], cgConfig(), 1)
		} else {
			one = NewSystem(m2, mkeqs(false)[1:], cgConfig(), 1)
		}
		one.Solve(0)
		chk.Vector(tst, io.Sf("field %q", name), 1e-9, both.Field(name), one.Field(name))
	}
}

func Test_system05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system05. reaction coupling against the dense solution")

	// single cell, two unknowns:
	//   2 a +   b = 3
	//  -1 a + 4 b = 1   =>  a = 11/9, b = 5/9
	m := msh.GenChain1D(1)
	free := map[int]*ele.BC{
		msh.TagLeft:  {Kind: ele.Outflow},
		msh.TagRight: {Kind: ele.Outflow},
	}
	a := &Params{Name: "a", Reaction: 2, Source: cteFun(3), Bcs: free,
		Coupling: map[string]float64{"b": 1}}
	b := &Params{Name: "b", Reaction: 4, Source: cteFun(1), Bcs: free,
		Coupling: map[string]float64{"a": -1}}

	cfg := bicgConfig()
	cfg.Prec = "block"
	sys := NewSystem(m, []*Params{a, b}, cfg, 1)
	st := sys.Solve(0)
	if st.State != sle.Converged {
		tst.Errorf("solver did not converge: %v", st.State)
		return
	}
	chk.Scalar(tst, "a", 1e-10, sys.Field("a")[0], 11.0/9.0)
	chk.Scalar(tst, "b", 1e-10, sys.Field("b")[0], 5.0/9.0)
}

func Test_system06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system06. implicit decay step")

	// du/dt = -2u with backward Euler: u1 = u0 / (1 + 2 dt)
	m := msh.GenChain1D(1)
	eq := &Params{
		Name: "u", Reaction: 2,
		Bcs: map[int]*ele.BC{
			msh.TagLeft:  {Kind: ele.Outflow},
			msh.TagRight: {Kind: ele.Outflow},
		},
	}
	cfg := sle.NewConfig()
	cfg.Kind = "jacobi"
	cfg.Tol = 1e-14
	sys := NewSystem(m, []*Params{eq}, cfg, 1)
	sys.Field("u")[0] = 1

	dt := 0.25
	u := 1.0
	for k := 0; k < 4; k++ {
		sys.AdvanceImplicit(float64(k)*dt, dt)
		u /= 1.0 + 2.0*dt
		chk.Scalar(tst, io.Sf("u after step %d", k+1), 1e-10, sys.Field("u")[0], u)
	}
}

func Test_system07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system07. disabled cells keep their value")

	m := msh.GenChain1D(5)
	m.Cells[2].Disabled = true
	eq := &Params{
		Name: "t", Diffusion: true, Kappa: 1,
		Bcs: map[int]*ele.BC{
			msh.TagLeft:  {Kind: ele.Dirichlet, Fcn: cteFun(4)},
			msh.TagRight: {Kind: ele.Dirichlet, Fcn: cteFun(9)},
		},
	}
	sys := NewSystem(m, []*Params{eq}, cgConfig(), 1)
	sys.Field("t")[2] = 123
	sys.Solve(0)

	u := sys.Field("t")
	chk.Scalar(tst, "solid cell", 1e-12, u[2], 123)

	// each side decouples into a sub-chain insulated at the solid wall:
	// constant at the Dirichlet wall value
	chk.Scalar(tst, "u[0]", 1e-9, u[0], 4)
	chk.Scalar(tst, "u[1]", 1e-9, u[1], 4)
	chk.Scalar(tst, "u[3]", 1e-9, u[3], 9)
	chk.Scalar(tst, "u[4]", 1e-9, u[4], 9)
}

func Test_system08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system08. duplicate equation names panic")

	m := msh.GenChain1D(2)
	free := map[int]*ele.BC{
		msh.TagLeft:  {Kind: ele.Outflow},
		msh.TagRight: {Kind: ele.Outflow},
	}
	a := &Params{Name: "u", Reaction: 1, Bcs: free}
	b := &Params{Name: "u", Reaction: 1, Bcs: free}
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("test should have panicked")
		}
	}()
	NewSystem(m, []*Params{a, b}, cgConfig(), 1)
}
