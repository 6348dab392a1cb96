// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dof implements the numbering of degrees of freedom: parallel
// consistent range sets mapping per-entity (scatter) storage to compact
// algebraic (gather) vectors, and the sparse matrix structures derived from
// entity adjacency.
package dof

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// RangeSet maps between the per-entity (scatter) layout of field values and
// the compact block (gather) layout of algebraic vectors. For B coupled
// unknowns with K DOFs per entity, the unknown (entity e, dof d, block b)
// occupies index e + (b*K+d)*nEntities: blocks are laid out one after the
// other, not interleaved. A RangeSet is immutable once built and may be
// shared by all equations using the same (K, B) layout.
type RangeSet struct {
	NEnts  int // local entities, owned + ghost
	NOwned int // entities owned by this processor
	K      int // DOFs per entity
	B      int // number of coupled unknowns (equation blocks)
	N      int // total scatter size = NEnts*K*B
	NGath  int // gather size = NOwned*K*B

	// distributed runs
	Distr bool // more than one processor
	Proc  int  // this processor

	wb []float64 // workspace for sum-reductions
}

// NewRangeSet returns a new range set. Zero entities is valid and produces
// an empty (but usable) set.
func NewRangeSet(nEnts, nOwned, k, b int) (o *RangeSet) {
	if nOwned > nEnts || k < 1 || b < 1 {
		chk.Panic("dof: invalid range set layout: nEnts=%d nOwned=%d k=%d b=%d", nEnts, nOwned, k, b)
	}
	o = new(RangeSet)
	o.NEnts = nEnts
	o.NOwned = nOwned
	o.K = k
	o.B = b
	o.N = nEnts * k * b
	o.NGath = nOwned * k * b
	if mpi.IsOn() {
		o.Distr = mpi.Size() > 1
		o.Proc = mpi.Rank()
	}
	if o.Distr {
		o.wb = make([]float64, o.N)
	}
	return
}

// Idx returns the scatter index of (entity e, dof d, block b)
func (o *RangeSet) Idx(e, d, b int) int {
	return e + (b*o.K+d)*o.NEnts
}

// GatherIdx returns the gather index of an owned (entity e, dof d, block b)
func (o *RangeSet) GatherIdx(e, d, b int) int {
	return e + (b*o.K+d)*o.NOwned
}

// Gather compacts a scatter-layout vector x (length N) into the gather
// layout dst (length NGath), keeping one value per owned DOF
func (o *RangeSet) Gather(dst, x []float64) {
	chk.IntAssert(len(x), o.N)
	chk.IntAssert(len(dst), o.NGath)
	for b := 0; b < o.B; b++ {
		for d := 0; d < o.K; d++ {
			for e := 0; e < o.NOwned; e++ {
				dst[o.GatherIdx(e, d, b)] = x[o.Idx(e, d, b)]
			}
		}
	}
}

// Scatter expands a gather-layout vector g (length NGath) back to the
// scatter layout dst (length N). Ghost entries are refreshed afterwards by
// Sync in distributed runs.
func (o *RangeSet) Scatter(dst, g []float64) {
	chk.IntAssert(len(g), o.NGath)
	chk.IntAssert(len(dst), o.N)
	for b := 0; b < o.B; b++ {
		for d := 0; d < o.K; d++ {
			for e := 0; e < o.NOwned; e++ {
				dst[o.Idx(e, d, b)] = g[o.GatherIdx(e, d, b)]
			}
		}
	}
}

// Sync performs the sum-reduction of a scatter-layout vector over all
// processors. Entries owned by more than one processor (cellwise
// contributions assembled on each side of a partition boundary) end up with
// the total sum everywhere. No-op in serial runs.
func (o *RangeSet) Sync(x []float64) {
	if !o.Distr {
		return
	}
	chk.IntAssert(len(x), o.N)
	mpi.AllReduceSum(x, o.wb)
}
