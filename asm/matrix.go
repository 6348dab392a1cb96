// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"github.com/james-bowman/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gocdo/dof"
)

// Matrix is an assembled sparse matrix in compressed-row form. It shares
// the index arrays of its structure and the value array of the assembler
// that produced it.
type Matrix struct {
	St  *dof.Structure
	Vx  []float64
	csr *sparse.CSR
}

func newMatrix(st *dof.Structure, vx []float64) (o *Matrix) {
	o = new(Matrix)
	o.St = st
	o.Vx = vx
	o.csr = sparse.NewCSR(st.N, st.N, st.Ptr, st.Cols, vx)
	return
}

// N returns the matrix dimension
func (o *Matrix) N() int { return o.St.N }

// Value returns entry (i, j), with zero outside the pattern
func (o *Matrix) Value(i, j int) float64 {
	k := o.St.Index(i, j)
	if k < 0 {
		return 0
	}
	return o.Vx[k]
}

// MatVec computes y = A*x
func (o *Matrix) MatVec(y, x []float64) {
	chk.IntAssert(len(x), o.St.N)
	chk.IntAssert(len(y), o.St.N)
	sparse.MulMatRawVec(o.csr, x, y)
}

// Row returns the column indices and values of row i
func (o *Matrix) Row(i int) (cols []int, vals []float64) {
	lo, hi := o.St.Ptr[i], o.St.Ptr[i+1]
	return o.St.Cols[lo:hi], o.Vx[lo:hi]
}

// Diag extracts the diagonal into d. A structurally missing diagonal entry
// is fatal.
func (o *Matrix) Diag(d []float64) {
	chk.IntAssert(len(d), o.St.N)
	for i := 0; i < o.St.N; i++ {
		k := o.St.Index(i, i)
		if k < 0 {
			chk.Panic("asm: row %d has no diagonal entry", i)
		}
		d[i] = o.Vx[k]
	}
}

// DiagBlock extracts the dense diagonal block of entity e: the nb×nb block
// coupling all DOFs of e with each other, where nb = K*B of the layout. The
// block is written row-major into blk. Entries outside the pattern read as
// zero.
func (o *Matrix) DiagBlock(e int, blk []float64) {
	rs := o.St.Rs
	nb := rs.K * rs.B
	chk.IntAssert(len(blk), nb*nb)
	for bi := 0; bi < rs.B; bi++ {
		for di := 0; di < rs.K; di++ {
			i := bi*rs.K + di
			gi := rs.Idx(e, di, bi)
			for bj := 0; bj < rs.B; bj++ {
				for dj := 0; dj < rs.K; dj++ {
					j := bj*rs.K + dj
					blk[i*nb+j] = o.Value(gi, rs.Idx(e, dj, bj))
				}
			}
		}
	}
}

// Triplet fills a sparse triplet with the matrix entries, for the direct
// solvers. The triplet is (re)initialized to the exact size.
func (o *Matrix) Triplet(tri *la.Triplet) {
	tri.Init(o.St.N, o.St.N, o.St.Nnz())
	for i := 0; i < o.St.N; i++ {
		for k := o.St.Ptr[i]; k < o.St.Ptr[i+1]; k++ {
			tri.Put(i, o.St.Cols[k], o.Vx[k])
		}
	}
}
