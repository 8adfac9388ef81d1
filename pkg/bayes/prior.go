// Package bayes declares the prior distributions the regression places on
// its parameters before seeing any data.
package bayes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Prior is an assumed distribution over a single parameter.
type Prior interface {
	// LogProb returns the log density of the prior at x.
	LogProb(x float64) float64
	fmt.Stringer
}

// Normal is a normal prior with the given location and scale. A wide scale
// (e.g. Normal(0, 10)) is weakly informative for standardized-magnitude
// regression coefficients.
type Normal struct {
	dist distuv.Normal
}

// NewNormal returns a Normal prior with location mu and scale sigma.
func NewNormal(mu, sigma float64) Normal {
	return Normal{dist: distuv.Normal{Mu: mu, Sigma: sigma}}
}

func (p Normal) LogProb(x float64) float64 { return p.dist.LogProb(x) }

// Mean returns the prior location.
func (p Normal) Mean() float64 { return p.dist.Mu }

// StdDev returns the prior scale.
func (p Normal) StdDev() float64 { return p.dist.Sigma }

func (p Normal) String() string {
	return fmt.Sprintf("normal(%g, %g)", p.dist.Mu, p.dist.Sigma)
}

// HalfNormal is a normal prior folded at zero, used for strictly positive
// parameters such as the residual scale. The density is twice the normal
// density on x >= 0 and zero below.
type HalfNormal struct {
	dist distuv.Normal
}

// NewHalfNormal returns a HalfNormal prior with scale sigma.
func NewHalfNormal(sigma float64) HalfNormal {
	return HalfNormal{dist: distuv.Normal{Mu: 0, Sigma: sigma}}
}

func (p HalfNormal) LogProb(x float64) float64 {
	if x < 0 {
		return math.Inf(-1)
	}
	return math.Ln2 + p.dist.LogProb(x)
}

func (p HalfNormal) String() string {
	return fmt.Sprintf("half-normal(%g)", p.dist.Sigma)
}
