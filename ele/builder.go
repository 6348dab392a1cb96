// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gocdo/msh"
)

// big saturating criterion used when diffusion vanishes: the fitted weight
// functions then collapse to hard upwind
const bigCriterion = 1e30

// Builder computes the local system of one cell. Interior faces are handled
// from the owner side only, with symmetric pair updates touching both the
// owner row and the neighbour row, so each face is visited exactly once and
// the advective operator is locally conservative: what one cell gains the
// other loses.
type Builder struct {

	// mesh and scheme
	Msh      *msh.Mesh
	Scheme   Scheme
	UpwRatio float64 // upwind fraction for the Hybrid scheme
	Consv    bool    // conservative formulation of advection
	StabCoef float64 // jump penalization coefficient for diffusion

	// properties
	HasDiff bool        // diffusion term is present
	Kappa   float64     // isotropic diffusion coefficient
	Tensor  [][]float64 // anisotropic diffusion tensor (nil => isotropic)
	Flux    []float64   // [nfaces] integrated flux along each face normal
	Reac    float64     // linear reaction coefficient
	Source  fun.Func    // volumetric source s(t,x)

	// boundary conditions
	Bcs map[int]*BC // boundary zone tag => condition

	// derived
	wfn WeightFunc
}

// Init validates properties and resolves the weight function
func (o *Builder) Init() {
	if o.Msh == nil {
		chk.Panic("ele: mesh must be set before initialising builder")
	}
	o.wfn = WeightFn(o.Scheme, o.UpwRatio)
	if o.Tensor != nil {
		if !o.HasDiff {
			chk.Panic("ele: diffusion tensor given but diffusion term is disabled")
		}
		chk.IntAssert(len(o.Tensor), o.Msh.Ndim)
		for _, row := range o.Tensor {
			chk.IntAssert(len(row), o.Msh.Ndim)
		}
	}
	if o.HasDiff && o.Tensor == nil && o.Kappa <= 0 {
		chk.Panic("ele: isotropic diffusion needs a positive coefficient. kappa=%g is invalid", o.Kappa)
	}
	if o.Flux != nil {
		chk.IntAssert(len(o.Flux), len(o.Msh.Faces))
	}
	for tag := range o.Msh.FaceTag2faces {
		if _, ok := o.Bcs[tag]; !ok {
			chk.Panic("ele: boundary zone with tag=%d has no boundary condition", tag)
		}
	}
}

// MaxDofs returns the largest number of local dofs over all cells
func (o *Builder) MaxDofs() (n int) {
	n = 1
	for i := range o.Msh.Cells {
		if 1+len(o.Msh.C2c[i]) > n {
			n = 1 + len(o.Msh.C2c[i])
		}
	}
	return
}

// trans returns the diffusive transmissivity of a face: the normal component
// of the diffusion property times the face measure over the centroid distance
func (o *Builder) trans(f *msh.Face) float64 {
	if !o.HasDiff {
		return 0
	}
	kn := o.Kappa
	if o.Tensor != nil {
		kn = 0
		for i := 0; i < o.Msh.Ndim; i++ {
			for j := 0; j < o.Msh.Ndim; j++ {
				kn += f.Normal[i] * o.Tensor[i][j] * f.Normal[j]
			}
		}
		if kn <= 0 {
			chk.Panic("ele: diffusion tensor is not positive along face normal. n.K.n=%g", kn)
		}
	}
	if f.Dist <= 0 {
		chk.Panic("ele: face %d has non-positive centroid distance", f.Id)
	}
	return kn * f.Area / f.Dist
}

// BuildCell computes the local system of cell ic at time t. The result is
// written into s, which is reset first. Disabled cells produce an empty
// system.
func (o *Builder) BuildCell(ic int, t float64, s *Sys) {

	cell := o.Msh.Cells[ic]
	if cell.Disabled {
		s.Reset(0)
		return
	}

	// local numbering: position 0 is the cell itself, then its neighbours
	nbs := o.Msh.C2c[ic]
	s.Reset(1 + len(nbs))
	s.Dmap[0] = ic
	loc := make(map[int]int, len(nbs))
	for k, nb := range nbs {
		s.Dmap[1+k] = nb
		loc[nb] = 1 + k
	}

	// reaction and source
	if o.Reac != 0 {
		s.K[0][0] += o.Reac * cell.Vol
	}
	if o.Source != nil {
		s.F[0] += o.Source.F(t, cell.Cen) * cell.Vol
	}

	active := o.HasDiff || o.Reac != 0

	for _, fid := range cell.Faces {
		f := o.Msh.Faces[fid]

		beta := 0.0
		if o.Flux != nil {
			beta = o.Flux[fid]
		}

		// boundary face: the owner is always this cell
		if f.Neigh < 0 {
			if math.Abs(beta) > epZero {
				active = true
			}
			if o.buildBoundary(f, beta, t, s) {
				active = true
			}
			continue
		}

		// faces against inactive (solid) cells carry no flux
		if o.Msh.Cells[f.Neigh].Disabled || o.Msh.Cells[f.Owner].Disabled {
			continue
		}

		if math.Abs(beta) > epZero {
			active = true
		}

		// interior face: built from the owner side only
		if f.Owner != ic {
			continue
		}
		j := loc[f.Neigh]

		// diffusion: two-point flux with jump penalization
		T := o.trans(f)
		ts := T
		if o.HasDiff && o.StabCoef > 0 {
			ts += o.StabCoef * f.Area / f.Dist
		}
		if o.Scheme == CenteredDDE && math.Abs(beta) > epZero {
			ts += o.stab(beta, T)
		}
		if ts > 0 {
			s.K[0][0] += ts
			s.K[0][j] -= ts
			s.K[j][j] += ts
			s.K[j][0] -= ts
		}

		// advection: symmetric pair update weighted towards upstream
		if math.Abs(beta) > epZero {
			w := o.wfn(o.criterion(beta, T))
			s.K[0][0] += beta * w
			s.K[0][j] += beta * (1.0 - w)
			s.K[j][0] -= beta * w
			s.K[j][j] -= beta * (1.0 - w)
			if !o.Consv {
				s.K[0][0] -= beta
				s.K[j][j] += beta
			}
		}
	}

	// a cell with no diffusion, no reaction and vanishing fluxes would
	// produce a singular row; couple it to itself with a unit term
	if !active {
		s.K[0][0] += 1.0
	}
}

// stab returns the exponentially fitted artificial diffusion of the
// centered-dde scheme, written as a jump coefficient added on top of the
// centered flux and the consistent transmissivity. It saturates to the hard
// upwind correction at large Peclet numbers and when diffusion vanishes.
func (o *Builder) stab(beta, T float64) float64 {
	if T <= epZero {
		return 0.5 * math.Abs(beta)
	}
	pe := 0.5 * beta / T
	if math.Abs(pe) <= epZero {
		return 0
	}
	if math.Abs(pe) > 5.0 {
		return 0.5*math.Abs(beta) - T
	}
	return T * (pe/math.Tanh(pe) - 1.0)
}

// criterion returns the argument of the weight function: the local Peclet
// ratio when diffusion is present, otherwise a saturating value of the sign
// of the flux
func (o *Builder) criterion(beta, T float64) float64 {
	if T > epZero {
		return beta / T
	}
	if beta > 0 {
		return bigCriterion
	}
	return -bigCriterion
}

// buildBoundary adds the weak contribution of one boundary face to row 0.
// The advective part splits the flux into its outgoing part, which goes to
// the diagonal, and its incoming part, which carries the prescribed value
// into the right-hand side. Reports whether the face contributes anything.
func (o *Builder) buildBoundary(f *msh.Face, beta, t float64, s *Sys) (contributed bool) {

	bc, ok := o.Bcs[f.Tag]
	if !ok {
		chk.Panic("ele: boundary face %d with tag=%d has no boundary condition", f.Id, f.Tag)
	}

	betaPlus := 0.5 * (math.Abs(beta) + beta)  // outgoing part
	betaMinus := 0.5 * (math.Abs(beta) - beta) // incoming part

	switch bc.Kind {

	case Dirichlet:
		g := bc.Value(t, f.Cen)
		if T := o.trans(f); T > 0 {
			s.K[0][0] += T
			s.F[0] += T * g
			contributed = true
		}
		s.K[0][0] += betaPlus
		s.F[0] += betaMinus * g

	case Neumann:
		s.F[0] += bc.Value(t, f.Cen) * f.Area
		s.K[0][0] += betaPlus

	case Robin:
		s.K[0][0] += bc.Alpha * f.Area
		s.F[0] += bc.Alpha * bc.Value(t, f.Cen) * f.Area
		s.K[0][0] += betaPlus
		if bc.Alpha != 0 {
			contributed = true
		}

	case Symmetry, Outflow:
		s.K[0][0] += betaPlus

	default:
		chk.Panic("ele: boundary condition kind %d is invalid", bc.Kind)
	}

	if !o.Consv && math.Abs(beta) > epZero {
		s.K[0][0] -= beta
	}
	if betaPlus > 0 {
		contributed = true
	}
	return
}

// ComputeFlux evaluates a velocity field at the face centroids and fills
// flux with the integrated normal flux of each face
func ComputeFlux(m *msh.Mesh, vel []fun.Func, t float64, flux []float64) {
	chk.IntAssert(len(vel), m.Ndim)
	chk.IntAssert(len(flux), len(m.Faces))
	for i, f := range m.Faces {
		b := 0.0
		for d := 0; d < m.Ndim; d++ {
			b += vel[d].F(t, f.Cen) * f.Normal[d]
		}
		flux[i] = b * f.Area
	}
}
