// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_run01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run01. heated rod case end to end")

	sys := RunCase("../examples/rod-heat.yml", 2, false, "/tmp/gocdo/rod-heat-res.json")
	u := sys.Field("temp")
	chk.IntAssert(len(u), 10)
	for i := 0; i < 10; i++ {
		chk.Scalar(tst, io.Sf("u[%d]", i), 1e-8, u[i], float64(i)+0.5)
	}
}

func Test_run02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("run02. tracer case steps to the inlet value")

	sys := RunCase("../examples/rod-transport.yml", 1, false, "/tmp/gocdo/rod-transport-res.json")
	u := sys.Field("tracer")
	// the advected front decays monotonically from the inlet value
	if u[0] < 4 || u[0] > 5.5 {
		tst.Errorf("tracer[0] = %g is far from the inlet value", u[0])
	}
	for i := 1; i < len(u); i++ {
		if u[i] > u[i-1]+1e-10 {
			tst.Errorf("tracer profile is not monotonic at cell %d: %g > %g", i, u[i], u[i-1])
		}
	}
}
