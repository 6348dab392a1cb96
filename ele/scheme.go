// Copyright 2016 The Gocdo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele builds local (cellwise) algebraic operators: small dense
// matrices and right-hand sides holding the advection, diffusion, reaction
// and boundary-condition contributions of one cell
package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Scheme selects the discretization of the advective term
type Scheme int

const (
	Upwind      Scheme = iota + 1 // hard upwind: weight = sign of flux
	Centered                      // pure centered: weight = 0.5
	Hybrid                        // fixed blend of upwind and centered
	Samarskii                     // Samarskii rational blend
	SG                            // Scharfetter-Gummel exponential fitting
	CenteredDDE                   // centered flux plus Peclet-fitted face stabilization
)

// schemes maps input keywords to scheme kinds
var schemes = map[string]Scheme{
	"upwind":       Upwind,
	"centered":     Centered,
	"hybrid":       Hybrid,
	"samarskii":    Samarskii,
	"sg":           SG,
	"centered-dde": CenteredDDE,
}

// SchemeByName returns the scheme corresponding to a keyword
func SchemeByName(name string) Scheme {
	s, ok := schemes[name]
	if !ok {
		chk.Panic("ele: unknown advection scheme %q", name)
	}
	return s
}

func (o Scheme) String() string {
	for name, s := range schemes {
		if s == o {
			return name
		}
	}
	return "unknown"
}

// zero threshold below which a flux criterion is considered to vanish
const epZero = 1e-30

// WeightFunc computes the upwind weight in [0, 1] from a criterion: the
// signed flux itself, or a local Peclet-type ratio for the fitted schemes.
// All weight functions return exactly 0.5 at zero.
type WeightFunc func(criterion float64) float64

// UpwindWeight is the hard upwind weight: 1, 0, or 0.5 at the tie
func UpwindWeight(criterion float64) float64 {
	if criterion > epZero {
		return 1
	}
	if criterion < -epZero {
		return 0
	}
	return 0.5
}

// CenteredWeight always attributes half of the flux to each side
func CenteredWeight(criterion float64) float64 {
	return 0.5
}

// SamarskiiWeight is the Samarskii rational blend
func SamarskiiWeight(criterion float64) float64 {
	if criterion < 0 {
		return 1.0 / (2.0 - criterion)
	}
	return (1.0 + criterion) / (2.0 + criterion)
}

// SGWeight is the Scharfetter-Gummel exponential-fitted weight. It remains
// well behaved as diffusion vanishes (criterion -> +/-inf saturates to 1/0)
func SGWeight(criterion float64) float64 {
	if criterion < 0 {
		return 0.5 * math.Exp(criterion)
	}
	return 1.0 - 0.5*math.Exp(-criterion)
}

// WeightFn returns the weight function of a scheme. The Hybrid scheme blends
// the hard upwind weight with the centered value using the fixed upwind
// ratio in [0, 1].
func WeightFn(scheme Scheme, upwRatio float64) WeightFunc {
	switch scheme {
	case Upwind:
		return UpwindWeight
	case Centered, CenteredDDE:
		return CenteredWeight
	case Samarskii:
		return SamarskiiWeight
	case SG:
		return SGWeight
	case Hybrid:
		if upwRatio < 0 || upwRatio > 1 {
			chk.Panic("ele: upwind ratio must be within [0,1]. r=%g is invalid", upwRatio)
		}
		r := upwRatio
		return func(criterion float64) float64 {
			return r*UpwindWeight(criterion) + (1.0-r)*0.5
		}
	}
	chk.Panic("ele: cannot find weight function for scheme %v", scheme)
	return nil
}
