// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/la"

// Sys holds the local (cellwise) system of one cell: a small dense matrix,
// the corresponding right-hand side and the map from local rows/columns to
// global entity indices. One Sys instance is reused across the cells handled
// by one worker.
type Sys struct {
	N    int         // number of active local dofs
	K    [][]float64 // [N][N] local matrix
	F    []float64   // [N] local right-hand side
	Dmap []int       // [N] local to global entity map
}

// NewSys returns a local system with capacity for nmax local dofs
func NewSys(nmax int) *Sys {
	return &Sys{
		N:    0,
		K:    la.MatAlloc(nmax, nmax),
		F:    make([]float64, nmax),
		Dmap: make([]int, nmax),
	}
}

// Reset clears the system and sets the number of active dofs, growing the
// backing storage if needed
func (o *Sys) Reset(n int) {
	if n > len(o.F) {
		o.K = la.MatAlloc(n, n)
		o.F = make([]float64, n)
		o.Dmap = make([]int, n)
	}
	o.N = n
	for i := 0; i < n; i++ {
		o.F[i] = 0
		o.Dmap[i] = -1
		for j := 0; j < n; j++ {
			o.K[i][j] = 0
		}
	}
}
