// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_mesh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh01. 1D chain topology")

	m := GenChain1D(5)
	chk.IntAssert(len(m.Cells), 5)
	chk.IntAssert(len(m.Faces), 6)
	chk.IntAssert(len(m.BryFaces), 2)

	// interior cells see two neighbours, end cells one
	chk.Ints(tst, "C2c[0]", m.C2c[0], []int{1})
	chk.Ints(tst, "C2c[2]", m.C2c[2], []int{1, 3})
	chk.Ints(tst, "C2c[4]", m.C2c[4], []int{3})

	chk.IntAssert(len(m.FaceTag2faces[TagLeft]), 1)
	chk.IntAssert(len(m.FaceTag2faces[TagRight]), 1)

	f := m.Faces[0] // between cells 0 and 1
	chk.Scalar(tst, "sign owner", 1e-17, m.FaceSign(f, 0), 1)
	chk.Scalar(tst, "sign neigh", 1e-17, m.FaceSign(f, 1), -1)
	chk.IntAssert(m.Other(f, 0), 1)
	chk.IntAssert(m.Other(f, 1), 0)
	chk.IntAssert(m.Other(m.Faces[5], 4), -1)
}

func Test_mesh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh02. 2D grid measures")

	m := GenGrid2D(4, 3, 2, 1.5)
	chk.IntAssert(len(m.Cells), 12)
	// faces: 3 rows * 5 x-faces + 4 cols * 4 y-faces
	chk.IntAssert(len(m.Faces), 31)
	chk.IntAssert(len(m.BryFaces), 14)

	vol := 0.0
	for _, c := range m.Cells {
		vol += c.Vol
	}
	chk.Scalar(tst, "total volume", 1e-14, vol, 3.0)

	// all cells owned by the single partition
	chk.IntAssert(m.NumOwned(0), 12)
	chk.IntAssert(m.NumOwned(1), 0)
}

func Test_mesh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh03. read mesh file")

	m := Read("../examples/chain10.msh")
	chk.IntAssert(m.Ndim, 1)
	chk.IntAssert(len(m.Cells), 10)
	chk.IntAssert(len(m.Faces), 11)
	chk.IntAssert(len(m.C2c[4]), 2)
	chk.Scalar(tst, "boundary distance", 1e-17, m.Faces[9].Dist, 0.5)
}

func Test_mesh04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh04. untagged boundary face panics")

	m := GenChain1D(2)
	m.Faces[1].Tag = 0 // strip the tag of the left boundary face
	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("test should have panicked")
		}
	}()
	m.CalcDerived()
}
