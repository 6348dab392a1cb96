// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp reads simulation case files: mesh location, equations with
// their properties and boundary conditions, function definitions, the
// linear solver setup and the time stepping control
package inp

import (
	"path/filepath"

	"github.com/ghodss/yaml"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocdo/ele"
	"github.com/cpmech/gocdo/eqn"
	"github.com/cpmech/gocdo/sle"
)

// FuncData holds one named function definition
type FuncData struct {
	Name string   `json:"name"` // unique name
	Type string   `json:"type"` // function type keyword: cte, rmp, ...
	Prms fun.Prms `json:"prms"` // parameters
}

// BcData attaches a boundary condition to a face zone
type BcData struct {
	Tag   int     `json:"tag"`   // face zone tag
	Kind  string  `json:"kind"`  // dirichlet, neumann, robin, symmetry, outflow
	Func  string  `json:"func"`  // value function name (optional)
	Alpha float64 `json:"alpha"` // robin transfer coefficient
}

// EqData defines one equation
type EqData struct {
	Name     string             `json:"name"`
	Scheme   string             `json:"scheme"`   // advection scheme keyword
	UpwRatio float64            `json:"upwratio"` // hybrid upwind fraction
	Nonconsv bool               `json:"nonconservative"`
	Kappa    float64            `json:"kappa"`  // isotropic diffusion
	Tensor   [][]float64        `json:"tensor"` // anisotropic diffusion
	StabCoef float64            `json:"stabcoef"`
	Reaction float64            `json:"reaction"`
	Velocity []string           `json:"velocity"` // function names, one per dimension
	Source   string             `json:"source"`   // function name
	Bcs      []BcData           `json:"bcs"`
	Coupling map[string]float64 `json:"coupling"`
}

// LinSolData selects the linear solver
type LinSolData struct {
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	Prec      string  `json:"prec"`
	MaxIt     int     `json:"maxit"`
	Tol       float64 `json:"tol"`
	DivTol    float64 `json:"divtol"`
	Symmetric bool    `json:"symmetric"`
}

// Case holds a complete simulation setup
type Case struct {
	Title    string      `json:"title"`
	MeshFile string      `json:"mesh"` // mesh path, relative to the case file
	Nworkers int         `json:"nworkers"`
	Steady   bool        `json:"steady"`
	Tini     float64     `json:"tini"`
	Tfin     float64     `json:"tfin"`
	Dt       float64     `json:"dt"`
	Verbose  bool        `json:"verbose"`
	Funcs    []*FuncData `json:"funcs"`
	LinSol   LinSolData  `json:"linsol"`
	Eqs      []*EqData   `json:"eqs"`

	// derived
	Dir string // directory of the case file
}

// ReadCase reads and validates a case file
func ReadCase(fn string) (o *Case) {
	b, err := io.ReadFile(fn)
	if err != nil {
		chk.Panic("inp: cannot read case file:\n%v", err)
	}
	o = ParseCase(b)
	o.Dir = filepath.Dir(fn)
	return
}

// ParseCase parses and validates the content of a case file
func ParseCase(b []byte) (o *Case) {
	o = new(Case)
	err := yaml.Unmarshal(b, o)
	if err != nil {
		chk.Panic("inp: cannot parse case file:\n%v", err)
	}
	if o.MeshFile == "" {
		chk.Panic("inp: case file does not name a mesh")
	}
	if len(o.Eqs) < 1 {
		chk.Panic("inp: case file defines no equations")
	}
	if !o.Steady {
		if o.Dt <= 0 || o.Tfin <= o.Tini {
			chk.Panic("inp: transient case needs dt>0 and tfin>tini. dt=%g tini=%g tfin=%g", o.Dt, o.Tini, o.Tfin)
		}
	}
	return
}

// MeshPath returns the mesh location resolved against the case directory
func (o *Case) MeshPath() string {
	if filepath.IsAbs(o.MeshFile) {
		return o.MeshFile
	}
	return filepath.Join(o.Dir, o.MeshFile)
}

// GetFunc resolves a function by name. The names "" , "zero" and "none"
// yield nil.
func (o *Case) GetFunc(name string) fun.Func {
	if name == "" || name == "zero" || name == "none" {
		return nil
	}
	for _, f := range o.Funcs {
		if f.Name == name {
			fcn, err := fun.New(f.Type, f.Prms)
			if err != nil {
				chk.Panic("inp: cannot allocate function %q:\n%v", name, err)
			}
			return fcn
		}
	}
	chk.Panic("inp: cannot find function named %q", name)
	return nil
}

// MakeParams materializes the equation parameter sets. ndim is the space
// dimension of the mesh, needed to size velocity fields.
func (o *Case) MakeParams(ndim int) (eqs []*eqn.Params) {
	for _, e := range o.Eqs {
		p := &eqn.Params{
			Name:      e.Name,
			Scheme:    e.Scheme,
			UpwRatio:  e.UpwRatio,
			Consv:     !e.Nonconsv,
			Diffusion: e.Kappa > 0 || e.Tensor != nil,
			Kappa:     e.Kappa,
			Tensor:    e.Tensor,
			StabCoef:  e.StabCoef,
			Reaction:  e.Reaction,
			Source:    o.GetFunc(e.Source),
			Coupling:  e.Coupling,
		}
		if len(e.Velocity) > 0 {
			chk.IntAssert(len(e.Velocity), ndim)
			p.Velocity = make([]fun.Func, ndim)
			for d, name := range e.Velocity {
				v := o.GetFunc(name)
				if v == nil {
					v = zeroFunc()
				}
				p.Velocity[d] = v
			}
		}
		p.Bcs = make(map[int]*ele.BC)
		for _, bd := range e.Bcs {
			if _, ok := p.Bcs[bd.Tag]; ok {
				chk.Panic("inp: equation %q has two boundary conditions for tag=%d", e.Name, bd.Tag)
			}
			p.Bcs[bd.Tag] = &ele.BC{
				Kind:  ele.BcKindByName(bd.Kind),
				Fcn:   o.GetFunc(bd.Func),
				Alpha: bd.Alpha,
			}
		}
		eqs = append(eqs, p)
	}
	return
}

// MakeConfig materializes the linear solver configuration
func (o *Case) MakeConfig() *sle.Config {
	cfg := sle.NewConfig()
	if o.LinSol.Kind != "" {
		cfg.Kind = o.LinSol.Kind
	}
	if o.LinSol.Name != "" {
		cfg.Name = o.LinSol.Name
	}
	if o.LinSol.Prec != "" {
		cfg.Prec = o.LinSol.Prec
	}
	if o.LinSol.MaxIt > 0 {
		cfg.MaxIt = o.LinSol.MaxIt
	}
	if o.LinSol.Tol > 0 {
		cfg.Tol = o.LinSol.Tol
	}
	if o.LinSol.DivTol > 0 {
		cfg.DivTol = o.LinSol.DivTol
	}
	cfg.Symmetric = o.LinSol.Symmetric
	cfg.Verbose = o.Verbose
	return cfg
}

func zeroFunc() fun.Func {
	f, err := fun.New("cte", fun.Prms{&fun.Prm{N: "c", V: 0}})
	if err != nil {
		chk.Panic("inp: cannot allocate zero function:\n%v", err)
	}
	return f
}
