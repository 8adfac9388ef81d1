// Package posterior holds the draws produced by a fitted model and the
// summaries read off them: point estimates, credible intervals, and the
// between/within chain convergence diagnostic.
package posterior

import (
	"math"

	"github.com/pkg/errors"

	"github.com/biagzi/week1-blog/pkg/stats"
)

// Chains is the immutable output of a sampling run: one block of draws per
// independent chain, all over the same named parameters.
type Chains struct {
	names []string
	// draws[chain][iteration][param]
	draws [][][]float64
}

// NewChains builds a Chains from raw draws. Every chain must have the same
// length and every draw the same dimension as names.
func NewChains(names []string, draws [][][]float64) (*Chains, error) {
	if len(draws) == 0 {
		return nil, errors.New("posterior: no chains")
	}
	n := len(draws[0])
	for c, chain := range draws {
		if len(chain) != n {
			return nil, errors.Errorf("posterior: chain %d has %d draws, chain 0 has %d", c, len(chain), n)
		}
		for i, draw := range chain {
			if len(draw) != len(names) {
				return nil, errors.Errorf("posterior: chain %d draw %d has %d params, want %d", c, i, len(draw), len(names))
			}
		}
	}
	return &Chains{names: names, draws: draws}, nil
}

// Names returns the parameter names in draw order.
func (c *Chains) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// NumChains returns the number of independent chains.
func (c *Chains) NumChains() int { return len(c.draws) }

// Len returns the number of kept draws per chain.
func (c *Chains) Len() int { return len(c.draws[0]) }

// Draw returns one parameter vector. The returned slice is shared; callers
// must not modify it.
func (c *Chains) Draw(chain, iter int) []float64 { return c.draws[chain][iter] }

func (c *Chains) paramIndex(name string) (int, error) {
	for i, n := range c.names {
		if n == name {
			return i, nil
		}
	}
	return 0, errors.Errorf("posterior: unknown parameter %q", name)
}

// Param returns the draws of one parameter, per chain.
func (c *Chains) Param(name string) ([][]float64, error) {
	idx, err := c.paramIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(c.draws))
	for ci, chain := range c.draws {
		col := make([]float64, len(chain))
		for i, draw := range chain {
			col[i] = draw[idx]
		}
		out[ci] = col
	}
	return out, nil
}

// Pooled returns the draws of one parameter with all chains concatenated.
func (c *Chains) Pooled(name string) ([]float64, error) {
	perChain, err := c.Param(name)
	if err != nil {
		return nil, err
	}
	var out []float64
	for _, col := range perChain {
		out = append(out, col...)
	}
	return out, nil
}

// Summary reports the posterior of one parameter: mean, standard deviation,
// central 95% credible interval, and the convergence diagnostic.
type Summary struct {
	Name  string
	Mean  float64
	Std   float64
	Lower float64 // 2.5% quantile
	Upper float64 // 97.5% quantile
	RHat  float64
}

// Summarize computes the Summary for one parameter.
func (c *Chains) Summarize(name string) (Summary, error) {
	perChain, err := c.Param(name)
	if err != nil {
		return Summary{}, err
	}
	pooled, _ := c.Pooled(name)
	return Summary{
		Name:  name,
		Mean:  stats.Mean(pooled),
		Std:   stats.Std(pooled),
		Lower: stats.Quantile(pooled, 0.025),
		Upper: stats.Quantile(pooled, 0.975),
		RHat:  rhat(perChain),
	}, nil
}

// SummarizeAll computes Summaries for every parameter in draw order.
func (c *Chains) SummarizeAll() ([]Summary, error) {
	out := make([]Summary, 0, len(c.names))
	for _, name := range c.names {
		s, err := c.Summarize(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// rhat is the split Gelman-Rubin statistic: each chain is halved, then the
// potential scale reduction is the ratio of the pooled variance estimate to
// the mean within-chain variance. Values near 1.0 indicate the chains have
// mixed into the same distribution.
func rhat(perChain [][]float64) float64 {
	var halves [][]float64
	for _, chain := range perChain {
		mid := len(chain) / 2
		if mid == 0 {
			return math.NaN()
		}
		halves = append(halves, chain[:mid], chain[mid:mid*2])
	}
	m := float64(len(halves))
	n := float64(len(halves[0]))
	if n < 2 {
		return math.NaN()
	}

	means := make([]float64, len(halves))
	within := 0.0
	for i, h := range halves {
		means[i] = stats.Mean(h)
		within += stats.SampleVariance(h)
	}
	within /= m
	between := n * stats.SampleVariance(means)
	if within == 0 {
		return math.NaN()
	}
	varPlus := (n-1)/n*within + between/n
	return math.Sqrt(varPlus / within)
}
