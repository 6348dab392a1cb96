// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dof

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Structure holds the sparsity pattern of an assembled matrix: the set of
// (row, column) pairs that may receive contributions. The pattern is declared
// entity by entity from adjacency information, then finalized into immutable
// compressed-row index arrays which can be reused for any number of
// assemblies as long as the topology and the block count do not change.
type Structure struct {
	Rs *RangeSet // layout this structure was built for
	N  int       // number of rows/columns

	rows  [][]int // build phase: columns appended per row (with duplicates)
	Ptr   []int   // finalized: compressed row pointers
	Cols  []int   // finalized: sorted column indices per row
	final bool
}

// NewStructure declares the block pattern implied by the entity adjacency
// adj (entity => adjacent entities): for each entity, the diagonal block plus
// one block per neighbour, across all B×B sub-blocks of coupled unknowns.
// Rows and columns for one entity are submitted in a single batch.
func NewStructure(rs *RangeSet, adj [][]int) (o *Structure) {
	o = new(Structure)
	o.Rs = rs
	o.N = rs.N
	o.rows = make([][]int, o.N)
	nb := rs.K * rs.B
	batchRows := make([]int, 0, nb*nb*8)
	batchCols := make([]int, 0, nb*nb*8)
	for e := 0; e < rs.NEnts; e++ {
		batchRows = batchRows[:0]
		batchCols = batchCols[:0]
		for bi := 0; bi < rs.B; bi++ {
			for di := 0; di < rs.K; di++ {
				i := rs.Idx(e, di, bi)
				for bj := 0; bj < rs.B; bj++ {
					for dj := 0; dj < rs.K; dj++ {
						batchRows = append(batchRows, i)
						batchCols = append(batchCols, rs.Idx(e, dj, bj))
						if e < len(adj) {
							for _, n := range adj[e] {
								batchRows = append(batchRows, i)
								batchCols = append(batchCols, rs.Idx(n, dj, bj))
							}
						}
					}
				}
			}
		}
		o.AddBatch(batchRows, batchCols)
	}
	return
}

// AddBatch submits a batch of (row, column) pairs to the pattern.
// Duplicates are allowed and removed during Finalize.
func (o *Structure) AddBatch(rows, cols []int) {
	if o.final {
		chk.Panic("dof: cannot add entries to a finalized structure")
	}
	chk.IntAssert(len(rows), len(cols))
	for k, i := range rows {
		o.rows[i] = append(o.rows[i], cols[k])
	}
}

// Finalize deduplicates and compacts the pattern. It must be called exactly
// once before the structure is used for assembly.
func (o *Structure) Finalize() {
	if o.final {
		chk.Panic("dof: structure finalized twice")
	}
	o.Ptr = make([]int, o.N+1)
	nnz := 0
	for i := 0; i < o.N; i++ {
		r := o.rows[i]
		sort.Ints(r)
		m := 0
		for k := 0; k < len(r); k++ {
			if k == 0 || r[k] != r[k-1] {
				r[m] = r[k]
				m++
			}
		}
		o.rows[i] = r[:m]
		nnz += m
	}
	o.Cols = make([]int, 0, nnz)
	for i := 0; i < o.N; i++ {
		o.Ptr[i+1] = o.Ptr[i] + len(o.rows[i])
		o.Cols = append(o.Cols, o.rows[i]...)
	}
	o.rows = nil
	o.final = true
}

// Final tells whether Finalize has been called
func (o *Structure) Final() bool { return o.final }

// Nnz returns the number of stored entries
func (o *Structure) Nnz() int {
	if !o.final {
		chk.Panic("dof: structure must be finalized before Nnz")
	}
	return len(o.Cols)
}

// Index returns the storage index of entry (i, j), or -1 if (i, j) is
// outside the declared pattern
func (o *Structure) Index(i, j int) int {
	if !o.final {
		chk.Panic("dof: structure must be finalized before Index")
	}
	lo, hi := o.Ptr[i], o.Ptr[i+1]
	k := lo + sort.SearchInts(o.Cols[lo:hi], j)
	if k < hi && o.Cols[k] == j {
		return k
	}
	return -1
}
