// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// BcKind classifies boundary conditions
type BcKind int

const (
	Dirichlet BcKind = iota + 1 // prescribed value, enforced weakly
	Neumann                     // prescribed diffusive flux
	Robin                       // flux = alpha * (u - uref)
	Symmetry                    // zero normal flux
	Outflow                     // free advective outlet
)

// bcKinds maps input keywords to boundary-condition kinds
var bcKinds = map[string]BcKind{
	"dirichlet": Dirichlet,
	"neumann":   Neumann,
	"robin":     Robin,
	"symmetry":  Symmetry,
	"outflow":   Outflow,
}

// BcKindByName returns the boundary-condition kind for a keyword
func BcKindByName(name string) BcKind {
	k, ok := bcKinds[name]
	if !ok {
		chk.Panic("ele: unknown boundary condition kind %q", name)
	}
	return k
}

// BC holds one boundary condition attached to a face zone.
//
//	Dirichlet: Fcn is the prescribed value g(t,x)
//	Neumann:   Fcn is the prescribed inward flux q(t,x) per unit area
//	Robin:     Fcn is the reference value uref(t,x) and Alpha the transfer
//	           coefficient; Symmetry and Outflow carry no data
type BC struct {
	Kind  BcKind
	Fcn   fun.Func
	Alpha float64
}

// Value evaluates the boundary function at time t and position x, returning
// zero when no function is attached
func (o *BC) Value(t float64, x []float64) float64 {
	if o.Fcn == nil {
		return 0
	}
	return o.Fcn.F(t, x)
}
