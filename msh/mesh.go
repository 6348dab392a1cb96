// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh holds the polyhedral mesh structures consumed by the
// discretization core. The mesh, its adjacency and its geometric quantities
// are computed elsewhere (mesh generator / partitioner) and are read-only
// within this module.
package msh

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"i"` // id
	Tag int       `json:"t"` // tag
	C   []float64 `json:"c"` // coordinates
}

// Face holds face data, including the geometric quantities needed by
// two-point flux and upwind computations. Normal points from Owner towards
// Neigh; for boundary faces Neigh is -1, the normal points outwards, and Tag
// identifies the boundary zone.
type Face struct {
	Id     int       `json:"i"`   // id
	Owner  int       `json:"o"`   // owner cell
	Neigh  int       `json:"n"`   // neighbour cell or -1 on the boundary
	Tag    int       `json:"t"`   // boundary zone tag (0 for interior faces)
	Area   float64   `json:"a"`   // face measure
	Normal []float64 `json:"nv"`  // unit normal (owner -> neighbour/outside)
	Dist   float64   `json:"d"`   // owner-to-neighbour (or owner-to-face) centroid distance
	Cen    []float64 `json:"cen"` // face centroid
}

// Cell holds cell data
type Cell struct {
	Id       int       `json:"i"`   // id
	Tag      int       `json:"t"`   // tag
	Part     int       `json:"p"`   // partition (processor) id
	Disabled bool      `json:"dis"` // inactive (solid) cell: contributes nothing
	Verts    []int     `json:"v"`   // vertices
	Faces    []int     `json:"f"`   // faces
	Vol      float64   `json:"vol"` // volume
	Cen      []float64 `json:"cen"` // centroid
}

// Mesh holds a mesh for the discretization core
type Mesh struct {

	// input
	Ndim  int     `json:"ndim"`  // space dimension
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells
	Faces []*Face `json:"faces"` // faces

	// derived
	C2c           [][]int       // [ncells] cell-to-cell adjacency through shared faces
	C2cFace       [][]int       // [ncells] face id realising each C2c link
	BryFaces      []int         // ids of boundary faces
	FaceTag2faces map[int][]int // boundary zone tag => face ids
}

// Read reads a mesh from a JSON file and computes the derived adjacency
func Read(fn string) *Mesh {
	b, err := io.ReadFile(fn)
	if err != nil {
		chk.Panic("msh.Read: cannot read mesh file %q", fn)
	}
	var o Mesh
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("msh.Read: cannot unmarshal mesh file %q:\n%v", fn, err)
	}
	o.CalcDerived()
	return &o
}

// CalcDerived computes cell-to-cell adjacency and boundary face maps.
// It must be called after any direct construction of a Mesh.
func (o *Mesh) CalcDerived() {
	nc := len(o.Cells)
	o.C2c = make([][]int, nc)
	o.C2cFace = make([][]int, nc)
	o.BryFaces = nil
	o.FaceTag2faces = make(map[int][]int)
	for _, f := range o.Faces {
		if f.Neigh < 0 {
			if f.Tag == 0 {
				chk.Panic("msh: boundary face %d has no zone tag", f.Id)
			}
			o.BryFaces = append(o.BryFaces, f.Id)
			o.FaceTag2faces[f.Tag] = append(o.FaceTag2faces[f.Tag], f.Id)
			continue
		}
		o.C2c[f.Owner] = append(o.C2c[f.Owner], f.Neigh)
		o.C2cFace[f.Owner] = append(o.C2cFace[f.Owner], f.Id)
		o.C2c[f.Neigh] = append(o.C2c[f.Neigh], f.Owner)
		o.C2cFace[f.Neigh] = append(o.C2cFace[f.Neigh], f.Id)
	}
}

// NumOwned returns the number of cells owned by processor proc. With a
// single partition all cells are owned.
func (o *Mesh) NumOwned(proc int) (n int) {
	for _, c := range o.Cells {
		if c.Part == proc {
			n++
		}
	}
	return
}

// FaceSign returns the orientation of face f as seen from cell c:
// +1 if c owns the face (normal points away from c), -1 otherwise
func (o *Mesh) FaceSign(f *Face, c int) float64 {
	if f.Owner == c {
		return 1
	}
	chk.IntAssert(f.Neigh, c)
	return -1
}

// Other returns the cell on the other side of face f with respect to c,
// or -1 for boundary faces
func (o *Mesh) Other(f *Face, c int) int {
	if f.Owner == c {
		return f.Neigh
	}
	return f.Owner
}
