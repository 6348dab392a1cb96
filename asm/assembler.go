// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package asm accumulates local (cellwise) systems into a global sparse
// matrix and right-hand side. Assembly is thread safe: concurrent workers
// may add their contributions in any order since all updates are sums.
package asm

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/gocdo/dof"
	"github.com/cpmech/gocdo/ele"
)

// number of lock stripes protecting the accumulation arrays
const nstripes = 64

// Assembler accumulates values into the entries declared by a sparsity
// structure. Writes outside the declared pattern are fatal. After all
// contributions are in, Finalize commits the accumulation exactly once,
// returning the assembled matrix.
type Assembler struct {
	St  *dof.Structure // declared sparsity pattern (finalized)
	Vx  []float64      // [nnz] matrix accumulation array
	Rhs []float64      // [N] right-hand side accumulation array

	locks [nstripes]sync.Mutex
	done  bool
	wv    []float64 // workspace for distributed matrix reduction
}

// NewAssembler returns an assembler over a finalized structure
func NewAssembler(st *dof.Structure) (o *Assembler) {
	if !st.Final() {
		chk.Panic("asm: structure must be finalized before assembling")
	}
	o = new(Assembler)
	o.St = st
	o.Vx = make([]float64, st.Nnz())
	o.Rhs = make([]float64, st.N)
	if st.Rs.Distr {
		o.wv = make([]float64, st.Nnz())
	}
	return
}

// Reset clears the accumulation arrays so the same pattern can be
// re-assembled, e.g. at the next time step
func (o *Assembler) Reset() {
	for i := range o.Vx {
		o.Vx[i] = 0
	}
	for i := range o.Rhs {
		o.Rhs[i] = 0
	}
	o.done = false
}

// Add accumulates v into entry (i, j)
func (o *Assembler) Add(i, j int, v float64) {
	k := o.St.Index(i, j)
	if k < 0 {
		chk.Panic("asm: entry (%d,%d) is outside the declared sparsity pattern", i, j)
	}
	l := &o.locks[i%nstripes]
	l.Lock()
	o.Vx[k] += v
	l.Unlock()
}

// AddRhs accumulates v into right-hand side entry i
func (o *Assembler) AddRhs(i int, v float64) {
	l := &o.locks[i%nstripes]
	l.Lock()
	o.Rhs[i] += v
	l.Unlock()
}

// AddSys accumulates a whole local system. The local-to-global map of s
// gives entity indices; rowShift and colShift displace them into the
// equation blocks of a coupled system. The local right-hand side goes to
// the shifted rows.
func (o *Assembler) AddSys(s *ele.Sys, rowShift, colShift int) {
	for i := 0; i < s.N; i++ {
		gi := s.Dmap[i] + rowShift
		l := &o.locks[gi%nstripes]
		l.Lock()
		for j := 0; j < s.N; j++ {
			k := o.St.Index(gi, s.Dmap[j]+colShift)
			if k < 0 {
				l.Unlock()
				chk.Panic("asm: entry (%d,%d) is outside the declared sparsity pattern", gi, s.Dmap[j]+colShift)
			}
			o.Vx[k] += s.K[i][j]
		}
		o.Rhs[gi] += s.F[i]
		l.Unlock()
	}
}

// Finalize commits the accumulation: in distributed runs the matrix values
// and the right-hand side are sum-reduced over all processors so every rank
// holds the fully assembled system. Must be called exactly once per
// assembly; the returned matrix shares the accumulation arrays.
func (o *Assembler) Finalize() *Matrix {
	if o.done {
		chk.Panic("asm: assembly finalized twice")
	}
	o.done = true
	if o.St.Rs.Distr {
		mpi.AllReduceSum(o.Vx, o.wv)
		o.St.Rs.Sync(o.Rhs)
	}
	return newMatrix(o.St, o.Vx)
}
