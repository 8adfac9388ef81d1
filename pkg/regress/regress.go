// Package regress fits a Bayesian linear regression of one dataset column
// on others. The posterior over coefficients and noise scale is sampled by
// gonum's Metropolis-Hastings implementation; this package supplies the log
// posterior density, the chain orchestration, and the least-squares
// preconditioning of the proposal.
package regress

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/biagzi/week1-blog/pkg/bayes"
	"github.com/biagzi/week1-blog/pkg/dataset"
	"github.com/biagzi/week1-blog/pkg/posterior"
)

// InterceptName is the parameter name of the regression intercept.
const InterceptName = "(intercept)"

// ScaleName is the parameter name of the residual noise scale.
const ScaleName = "sigma"

// Model is a linear-Gaussian regression with priors on its parameters,
// estimated by MCMC.
type Model struct {
	Formula    Formula
	CoefPrior  bayes.Normal     // prior on intercept and slopes
	ScalePrior bayes.HalfNormal // prior on the residual scale
	Chains     int
	Iterations int // kept draws per chain
	BurnIn     int // discarded draws per chain before keeping
	Seed       uint64
}

// NewModel returns a Model for the formula with the defaults used in the
// write-up: normal(0, 10) coefficient prior, half-normal(5) scale prior,
// 4 chains of 500 kept draws after 500 burn-in, seed 123.
func NewModel(f Formula) *Model {
	return &Model{
		Formula:    f,
		CoefPrior:  bayes.NewNormal(0, 10),
		ScalePrior: bayes.NewHalfNormal(5),
		Chains:     4,
		Iterations: 500,
		BurnIn:     500,
		Seed:       123,
	}
}

// design builds the n x (p+1) design matrix (leading intercept column) and
// the response vector from the table.
func (m *Model) design(tbl *dataset.Table) (X [][]float64, y []float64, err error) {
	y, err = tbl.Column(m.Formula.Response)
	if err != nil {
		return nil, nil, errors.Wrap(err, "response")
	}
	cols := make([][]float64, len(m.Formula.Predictors))
	for j, name := range m.Formula.Predictors {
		cols[j], err = tbl.Column(name)
		if err != nil {
			return nil, nil, errors.Wrap(err, "predictor")
		}
	}
	X = make([][]float64, len(y))
	for i := range X {
		row := make([]float64, len(cols)+1)
		row[0] = 1
		for j := range cols {
			row[j+1] = cols[j][i]
		}
		X[i] = row
	}
	return X, y, nil
}

// logPosterior is the unnormalized log density handed to the sampler. The
// parameter vector is the coefficients followed by log(sigma); sampling on
// the log scale keeps the chain unconstrained.
type logPosterior struct {
	x          [][]float64
	y          []float64
	coefPrior  bayes.Normal
	scalePrior bayes.HalfNormal
}

func (t *logPosterior) LogProb(theta []float64) float64 {
	d := len(theta)
	logSigma := theta[d-1]
	sigma := math.Exp(logSigma)

	// Priors. The extra logSigma term is the Jacobian of the log transform.
	lp := t.scalePrior.LogProb(sigma) + logSigma
	for _, b := range theta[:d-1] {
		lp += t.coefPrior.LogProb(b)
	}

	// Gaussian likelihood.
	sse := 0.0
	for i, row := range t.x {
		pred := 0.0
		for j, v := range row {
			pred += theta[j] * v
		}
		r := t.y[i] - pred
		sse += r * r
	}
	n := float64(len(t.y))
	lp += -0.5*n*math.Log(2*math.Pi*sigma*sigma) - sse/(2*sigma*sigma)
	return lp
}

// Fit draws from the posterior of the model given the table. Chain c uses
// seed Seed+c, so a fixed Seed reproduces the run draw for draw.
func (m *Model) Fit(tbl *dataset.Table) (*posterior.Chains, error) {
	if m.Chains < 1 || m.Iterations < 1 {
		return nil, errors.Errorf("regress: need at least 1 chain and 1 iteration, got %d and %d", m.Chains, m.Iterations)
	}
	X, y, err := m.design(tbl)
	if err != nil {
		return nil, err
	}
	p := len(m.Formula.Predictors) + 1 // coefficients incl. intercept
	d := p + 1                         // plus log(sigma)

	center, propCov, err := precondition(X, y)
	if err != nil {
		return nil, err
	}
	target := &logPosterior{x: X, y: y, coefPrior: m.CoefPrior, scalePrior: m.ScalePrior}

	names := make([]string, 0, d)
	names = append(names, InterceptName)
	names = append(names, m.Formula.Predictors...)
	names = append(names, ScaleName)

	log := logrus.WithFields(logrus.Fields{
		"formula": m.Formula.String(),
		"chains":  m.Chains,
		"iter":    m.Iterations,
		"seed":    m.Seed,
	})
	log.Debug("sampling posterior")

	draws := make([][][]float64, m.Chains)
	for c := 0; c < m.Chains; c++ {
		src := rand.NewSource(m.Seed + uint64(c))
		proposal, ok := samplemv.NewProposalNormal(propCov, src)
		if !ok {
			return nil, errors.New("regress: proposal covariance not positive definite")
		}

		// Overdisperse the starting points so the convergence diagnostic
		// actually measures mixing rather than shared initialization.
		jitter := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
		start := make([]float64, d)
		for j := range start {
			start[j] = center[j] + 2*math.Sqrt(propCov.At(j, j))*jitter.Rand()
		}

		mh := samplemv.MetropolisHastingser{
			Initial:  start,
			Target:   target,
			Proposal: proposal,
			Src:      src,
			BurnIn:   m.BurnIn,
		}
		batch := mat.NewDense(m.Iterations, d, nil)
		mh.Sample(batch)

		chain := make([][]float64, m.Iterations)
		for i := 0; i < m.Iterations; i++ {
			draw := make([]float64, d)
			mat.Row(draw, i, batch)
			// Report sigma itself, not the log the chain walks on.
			draw[d-1] = math.Exp(draw[d-1])
			chain[i] = draw
		}
		draws[c] = chain
		log.WithField("chain", c).Debug("chain finished")
	}
	return posterior.NewChains(names, draws)
}

// precondition computes the least-squares solution and a proposal covariance
// scaled from the coefficient covariance. A random-walk proposal shaped like
// the posterior is what lets a few hundred Metropolis-Hastings iterations
// mix on a correlated coefficient space.
func precondition(X [][]float64, y []float64) ([]float64, *mat.SymDense, error) {
	n := len(X)
	p := len(X[0])
	if n <= p {
		return nil, nil, errors.Errorf("regress: %d rows cannot identify %d coefficients", n, p)
	}
	flat := make([]float64, 0, n*p)
	for _, row := range X {
		flat = append(flat, row...)
	}
	xm := mat.NewDense(n, p, flat)
	yv := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(xm)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yv); err != nil {
		return nil, nil, errors.Wrap(err, "regress: least-squares solve")
	}

	sse := 0.0
	for i, row := range X {
		pred := 0.0
		for j, v := range row {
			pred += beta.AtVec(j) * v
		}
		r := y[i] - pred
		sse += r * r
	}
	s2 := sse / float64(n-p)

	xtx := mat.NewSymDense(p, nil)
	xtx.SymOuterK(1, xm.T())
	var chol mat.Cholesky
	if !chol.Factorize(xtx) {
		return nil, nil, errors.New("regress: design matrix is rank deficient")
	}
	var xtxInv mat.SymDense
	if err := chol.InverseTo(&xtxInv); err != nil {
		return nil, nil, errors.Wrap(err, "regress: inverting normal equations")
	}

	// 2.38^2/d is the standard random-walk scaling; log(sigma) gets the
	// asymptotic 1/(2(n-p)) variance and no cross terms.
	d := p + 1
	scale := 2.38 * 2.38 / float64(d)
	cov := mat.NewSymDense(d, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			cov.SetSym(i, j, scale*s2*xtxInv.At(i, j))
		}
	}
	cov.SetSym(p, p, scale/(2*float64(n-p)))

	center := make([]float64, d)
	for j := 0; j < p; j++ {
		center[j] = beta.AtVec(j)
	}
	center[p] = 0.5 * math.Log(s2)
	return center, cov, nil
}
