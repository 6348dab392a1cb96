// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqn

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gocdo/asm"
	"github.com/cpmech/gocdo/dof"
	"github.com/cpmech/gocdo/ele"
	"github.com/cpmech/gocdo/msh"
	"github.com/cpmech/gocdo/sle"
)

// System solves one or more coupled equations on a mesh. The sparsity
// pattern, the unknown numbering and the worker scratch systems are built
// once; assemblies and solves may then be repeated, e.g. over time steps.
type System struct {
	Msh      *msh.Mesh
	Eqs      []*Params
	Cfg      *sle.Config
	Nworkers int

	// numbering and assembly
	Rs  *dof.RangeSet
	St  *dof.Structure
	Asm *asm.Assembler
	Sol sle.Solver

	// solution in scatter layout: one block of ncells values per equation
	U []float64

	// outcome of the last solve
	LastStats   *sle.Stats
	LastRhsNorm float64

	builders []*ele.Builder
	eqIdx    map[string]int
	nc       int
}

// NewSystem builds the numbering, pattern and solver for a set of equations
func NewSystem(m *msh.Mesh, eqs []*Params, cfg *sle.Config, nworkers int) (o *System) {
	if len(eqs) < 1 {
		chk.Panic("eqn: at least one equation is required")
	}
	if nworkers < 1 {
		nworkers = 1
	}
	o = new(System)
	o.Msh = m
	o.Eqs = eqs
	o.Cfg = cfg
	o.Nworkers = nworkers
	o.nc = len(m.Cells)

	o.eqIdx = make(map[string]int)
	for i, eq := range eqs {
		eq.Validate()
		if _, ok := o.eqIdx[eq.Name]; ok {
			chk.Panic("eqn: equation name %q is not unique", eq.Name)
		}
		o.eqIdx[eq.Name] = i
	}
	for _, eq := range eqs {
		for name := range eq.Coupling {
			if _, ok := o.eqIdx[name]; !ok {
				chk.Panic("eqn: equation %q couples to unknown equation %q", eq.Name, name)
			}
		}
	}

	proc := 0
	o.Rs = dof.NewRangeSet(o.nc, o.nc, 1, len(eqs))
	if o.Rs.Distr {
		proc = o.Rs.Proc
		o.Rs = dof.NewRangeSet(o.nc, o.Msh.NumOwned(proc), 1, len(eqs))
	}
	o.St = dof.NewStructure(o.Rs, m.C2c)
	o.St.Finalize()
	o.Asm = asm.NewAssembler(o.St)

	o.builders = make([]*ele.Builder, len(eqs))
	for i, eq := range eqs {
		o.builders[i] = eq.builder(m)
	}

	cfg.FixForDistr(o.Rs.Distr)
	o.Sol = sle.New(cfg)
	o.U = make([]float64, o.Rs.N)
	return
}

// Field returns the values of one equation over the cells, as a view into
// the solution vector
func (o *System) Field(name string) []float64 {
	i, ok := o.eqIdx[name]
	if !ok {
		chk.Panic("eqn: cannot find equation %q", name)
	}
	return o.U[i*o.nc : (i+1)*o.nc]
}

// assemble runs the builders over all owned cells with worker goroutines
// and accumulates the global system. invDt > 0 adds the implicit
// time-derivative terms using uold as the previous state.
func (o *System) assemble(t, invDt float64, uold []float64) {
	o.Asm.Reset()

	// face fluxes are shared by all workers and must be ready first
	for i, eq := range o.Eqs {
		if eq.Velocity != nil {
			ele.ComputeFlux(o.Msh, eq.Velocity, t, o.builders[i].Flux)
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < o.Nworkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			s := ele.NewSys(o.maxDofs())
			cpl := ele.NewSys(1)
			for ic := w; ic < o.nc; ic += o.Nworkers {
				cell := o.Msh.Cells[ic]
				if o.Rs.Distr && cell.Part != o.Rs.Proc {
					continue
				}
				for bi := range o.Eqs {
					shift := bi * o.nc
					gi := shift + ic

					// inactive cells keep their value
					if cell.Disabled {
						o.Asm.Add(gi, gi, 1.0)
						o.Asm.AddRhs(gi, o.U[gi])
						continue
					}

					o.builders[bi].BuildCell(ic, t, s)
					if invDt > 0 {
						s.K[0][0] += invDt * cell.Vol
						s.F[0] += invDt * cell.Vol * uold[gi]
					}
					o.Asm.AddSys(s, shift, shift)

					// volumetric exchange with the other equations
					for name, c := range o.Eqs[bi].Coupling {
						if c == 0 {
							continue
						}
						bj := o.eqIdx[name]
						cpl.Reset(1)
						cpl.Dmap[0] = ic
						cpl.K[0][0] = c * cell.Vol
						o.Asm.AddSys(cpl, shift, bj*o.nc)
					}
				}
			}
		}(w)
	}
	wg.Wait()
}

func (o *System) maxDofs() (n int) {
	n = 1
	for _, b := range o.builders {
		if b.MaxDofs() > n {
			n = b.MaxDofs()
		}
	}
	return
}

// Solve assembles and solves the steady system at time t. The current
// solution is the initial guess for iterative solvers.
func (o *System) Solve(t float64) *sle.Stats {
	o.assemble(t, 0, nil)
	return o.commit(t)
}

// AdvanceImplicit performs one implicit (backward Euler) step of size dt
// from time t, updating the solution to time t+dt
func (o *System) AdvanceImplicit(t, dt float64) *sle.Stats {
	if dt <= 0 {
		chk.Panic("eqn: time step must be positive. dt=%g is invalid", dt)
	}
	uold := make([]float64, len(o.U))
	copy(uold, o.U)
	o.assemble(t+dt, 1.0/dt, uold)
	return o.commit(t + dt)
}

// commit finalizes the assembly, runs the solver and checks convergence
func (o *System) commit(t float64) *sle.Stats {
	m := o.Asm.Finalize()
	o.LastRhsNorm = floats.Norm(o.Asm.Rhs, 2)
	o.Sol.Setup(m)
	stats := o.Sol.Solve(o.U, o.Asm.Rhs)
	o.LastStats = stats
	switch stats.State {
	case sle.Diverged, sle.Breakdown:
		chk.Panic("eqn: linear solver failed at t=%g: %v (res=%g)", t, stats.State, stats.Res)
	}
	if o.Cfg.Verbose {
		io.Pf("eqn: t=%12.6f  %-12v it=%4d  |b|=%14.7e  res=%14.7e\n",
			t, stats.State, stats.NIter, o.LastRhsNorm, stats.Res)
	}
	return stats
}
