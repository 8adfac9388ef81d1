package regress

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/biagzi/week1-blog/pkg/dataset"
	"github.com/biagzi/week1-blog/pkg/posterior"
)

// Simulate draws nDraws replicated response vectors from the posterior: for
// each replicate a posterior draw is picked at random and a response is
// simulated from the linear-Gaussian likelihood at that draw. Comparing the
// replicates to the observed response is the posterior-predictive check.
func (m *Model) Simulate(tbl *dataset.Table, chains *posterior.Chains, nDraws int, seed uint64) ([][]float64, error) {
	if nDraws < 1 {
		return nil, errors.Errorf("regress: need at least 1 predictive draw, got %d", nDraws)
	}
	X, _, err := m.design(tbl)
	if err != nil {
		return nil, err
	}
	p := len(X[0])
	if len(chains.Names()) != p+1 {
		return nil, errors.Errorf("regress: chains have %d parameters, model wants %d", len(chains.Names()), p+1)
	}

	src := rand.NewSource(seed)
	rng := rand.New(src)
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	out := make([][]float64, nDraws)
	for k := 0; k < nDraws; k++ {
		draw := chains.Draw(rng.Intn(chains.NumChains()), rng.Intn(chains.Len()))
		sigma := draw[p]
		sim := make([]float64, len(X))
		for i, row := range X {
			mu := 0.0
			for j, v := range row {
				mu += draw[j] * v
			}
			sim[i] = mu + sigma*noise.Rand()
		}
		out[k] = sim
	}
	return out, nil
}
