// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import "github.com/cpmech/gosl/chk"

// boundary zone tags used by the generators
const (
	TagLeft   = -1
	TagRight  = -2
	TagBottom = -3
	TagTop    = -4
)

// GenChain1D generates a 1D chain of n unit cells:
//
//	-1 |0|1|2| ... |n-1| -2
//
// Unit spacing, unit face areas. The left and right boundary faces carry the
// TagLeft and TagRight zone tags and sit half a cell away from the end cells.
func GenChain1D(n int) *Mesh {
	if n < 1 {
		chk.Panic("GenChain1D: n must be at least 1. n=%d is invalid", n)
	}
	o := new(Mesh)
	o.Ndim = 1
	o.Cells = make([]*Cell, n)
	for i := 0; i < n; i++ {
		x := float64(i) + 0.5
		o.Cells[i] = &Cell{Id: i, Vol: 1, Cen: []float64{x}}
	}
	// interior faces between cells i and i+1
	for i := 0; i < n-1; i++ {
		f := &Face{
			Id: len(o.Faces), Owner: i, Neigh: i + 1,
			Area: 1, Normal: []float64{1}, Dist: 1, Cen: []float64{float64(i + 1)},
		}
		o.Cells[i].Faces = append(o.Cells[i].Faces, f.Id)
		o.Cells[i+1].Faces = append(o.Cells[i+1].Faces, f.Id)
		o.Faces = append(o.Faces, f)
	}
	// boundary faces
	fl := &Face{
		Id: len(o.Faces), Owner: 0, Neigh: -1, Tag: TagLeft,
		Area: 1, Normal: []float64{-1}, Dist: 0.5, Cen: []float64{0},
	}
	o.Cells[0].Faces = append(o.Cells[0].Faces, fl.Id)
	o.Faces = append(o.Faces, fl)
	fr := &Face{
		Id: len(o.Faces), Owner: n - 1, Neigh: -1, Tag: TagRight,
		Area: 1, Normal: []float64{1}, Dist: 0.5, Cen: []float64{float64(n)},
	}
	o.Cells[n-1].Faces = append(o.Cells[n-1].Faces, fr.Id)
	o.Faces = append(o.Faces, fr)
	o.CalcDerived()
	return o
}

// GenGrid2D generates a Cartesian nx × ny grid of cells covering lx × ly.
// Boundary faces are tagged TagLeft/TagRight/TagBottom/TagTop.
func GenGrid2D(nx, ny int, lx, ly float64) *Mesh {
	if nx < 1 || ny < 1 {
		chk.Panic("GenGrid2D: nx=%d and ny=%d must be at least 1", nx, ny)
	}
	o := new(Mesh)
	o.Ndim = 2
	dx, dy := lx/float64(nx), ly/float64(ny)
	cid := func(i, j int) int { return i + j*nx }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			o.Cells = append(o.Cells, &Cell{
				Id: cid(i, j), Vol: dx * dy,
				Cen: []float64{(float64(i) + 0.5) * dx, (float64(j) + 0.5) * dy},
			})
		}
	}
	addFace := func(owner, neigh, tag int, area, dist float64, nrm, cen []float64) {
		f := &Face{Id: len(o.Faces), Owner: owner, Neigh: neigh, Tag: tag,
			Area: area, Normal: nrm, Dist: dist, Cen: cen}
		o.Cells[owner].Faces = append(o.Cells[owner].Faces, f.Id)
		if neigh >= 0 {
			o.Cells[neigh].Faces = append(o.Cells[neigh].Faces, f.Id)
		}
		o.Faces = append(o.Faces, f)
	}
	for j := 0; j < ny; j++ {
		y := (float64(j) + 0.5) * dy
		addFace(cid(0, j), -1, TagLeft, dy, dx/2, []float64{-1, 0}, []float64{0, y})
		for i := 0; i < nx-1; i++ {
			addFace(cid(i, j), cid(i+1, j), 0, dy, dx, []float64{1, 0}, []float64{float64(i+1) * dx, y})
		}
		addFace(cid(nx-1, j), -1, TagRight, dy, dx/2, []float64{1, 0}, []float64{lx, y})
	}
	for i := 0; i < nx; i++ {
		x := (float64(i) + 0.5) * dx
		addFace(cid(i, 0), -1, TagBottom, dx, dy/2, []float64{0, -1}, []float64{x, 0})
		for j := 0; j < ny-1; j++ {
			addFace(cid(i, j), cid(i, j+1), 0, dx, dy, []float64{0, 1}, []float64{x, float64(j+1) * dy})
		}
		addFace(cid(i, ny-1), -1, TagTop, dx, dy/2, []float64{0, 1}, []float64{x, ly})
	}
	o.CalcDerived()
	return o
}
