// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sle

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocdo/asm"
)

// BlockInv caches the factorized diagonal blocks of an assembled matrix:
// one dense nb×nb block per entity, where nb is the number of unknowns
// carried by each entity. Factorizations are LU without pivoting, stored in
// place with unit lower diagonal. The cache is invalidated and rebuilt by
// Setup and may be shared by several preconditioners through Share: a
// shared cache set up for the same matrix is reused, not refactorized.
type BlockInv struct {
	Nb    int       // block size
	NEnts int       // number of entities
	fac   []float64 // [NEnts*Nb*Nb] factorized blocks
	y     []float64 // [Nb] forward-solve workspace
	m     *asm.Matrix
	valid bool
	nrefs int
}

// NewBlockInv returns an empty cache
func NewBlockInv() *BlockInv {
	return &BlockInv{nrefs: 1}
}

// Share registers another user of this cache and returns it
func (o *BlockInv) Share() *BlockInv {
	o.nrefs++
	return o
}

// Valid tells whether the cache holds factorizations for the current matrix
func (o *BlockInv) Valid() bool { return o.valid }

// Invalidate forces the next Setup to refactorize
func (o *BlockInv) Invalidate() { o.valid = false }

// Setup extracts and factorizes the diagonal blocks of m. A cache still
// valid for the same matrix is left untouched.
func (o *BlockInv) Setup(m *asm.Matrix) {
	if o.valid && o.m == m {
		return
	}
	o.valid = false
	rs := m.St.Rs
	o.m = m
	o.Nb = rs.K * rs.B
	o.NEnts = rs.NEnts
	if len(o.fac) != o.NEnts*o.Nb*o.Nb {
		o.fac = make([]float64, o.NEnts*o.Nb*o.Nb)
		o.y = make([]float64, o.Nb)
	}
	for e := 0; e < o.NEnts; e++ {
		blk := o.fac[e*o.Nb*o.Nb : (e+1)*o.Nb*o.Nb]
		m.DiagBlock(e, blk)
		switch o.Nb {
		case 1:
			if math.Abs(blk[0]) <= tiny {
				chk.Panic("sle: zero diagonal block at entity %d", e)
			}
			blk[0] = 1.0 / blk[0]
		case 3:
			factLU33(blk, e)
		default:
			factLU(blk, o.Nb, e)
		}
	}
	o.valid = true
}

// Apply computes z = M⁻¹ r blockwise. The unknowns of entity e sit at the
// strided positions given by the layout; they are gathered, solved against
// the cached factors and scattered back.
func (o *BlockInv) Apply(z, r []float64) {
	if !o.valid {
		chk.Panic("sle: block-inverse cache must be set up before applying")
	}
	rs := o.m.St.Rs
	nb := o.Nb
	for e := 0; e < o.NEnts; e++ {
		blk := o.fac[e*nb*nb : (e+1)*nb*nb]
		if nb == 1 {
			z[e] = blk[0] * r[e]
			continue
		}

		// forward: y = L⁻¹ r_e
		for b := 0; b < rs.B; b++ {
			for d := 0; d < rs.K; d++ {
				i := b*rs.K + d
				sum := r[rs.Idx(e, d, b)]
				for j := 0; j < i; j++ {
					sum -= blk[i*nb+j] * o.y[j]
				}
				o.y[i] = sum
			}
		}

		// backward: z_e = U⁻¹ y
		for i := nb - 1; i >= 0; i-- {
			sum := o.y[i]
			for j := i + 1; j < nb; j++ {
				sum -= blk[i*nb+j] * o.y[j]
			}
			o.y[i] = sum / blk[i*nb+i]
		}
		for b := 0; b < rs.B; b++ {
			for d := 0; d < rs.K; d++ {
				z[rs.Idx(e, d, b)] = o.y[b*rs.K+d]
			}
		}
	}
}

// factLU33 factorizes a 3×3 block in place with the closed-form Doolittle
// decomposition (unit lower diagonal, no pivoting)
func factLU33(a []float64, e int) {
	if math.Abs(a[0]) <= tiny {
		chk.Panic("sle: zero pivot in diagonal block of entity %d", e)
	}
	a[3] /= a[0]        // l21
	a[4] -= a[3] * a[1] // u22
	a[5] -= a[3] * a[2] // u23
	if math.Abs(a[4]) <= tiny {
		chk.Panic("sle: zero pivot in diagonal block of entity %d", e)
	}
	a[6] /= a[0]                     // l31
	a[7] = (a[7] - a[6]*a[1]) / a[4] // l32
	a[8] -= a[6]*a[2] + a[7]*a[5]    // u33
	if math.Abs(a[8]) <= tiny {
		chk.Panic("sle: zero pivot in diagonal block of entity %d", e)
	}
}

// factLU factorizes an n×n block in place (Doolittle, no pivoting)
func factLU(a []float64, n, e int) {
	for k := 0; k < n; k++ {
		piv := a[k*n+k]
		if math.Abs(piv) <= tiny {
			chk.Panic("sle: zero pivot in diagonal block of entity %d", e)
		}
		for i := k + 1; i < n; i++ {
			a[i*n+k] /= piv
			l := a[i*n+k]
			for j := k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}
}
