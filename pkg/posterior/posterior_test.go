package posterior

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainOf(values ...float64) [][]float64 {
	out := make([][]float64, len(values))
	for i, v := range values {
		out[i] = []float64{v}
	}
	return out
}

func TestNewChainsValidation(t *testing.T) {
	_, err := NewChains([]string{"a"}, nil)
	require.Error(t, err)

	_, err = NewChains([]string{"a"}, [][][]float64{chainOf(1, 2), chainOf(1)})
	require.Error(t, err)

	_, err = NewChains([]string{"a", "b"}, [][][]float64{chainOf(1, 2)})
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	c, err := NewChains([]string{"a"}, [][][]float64{chainOf(vals...)})
	require.NoError(t, err)

	s, err := c.Summarize("a")
	require.NoError(t, err)
	assert.Equal(t, "a", s.Name)
	assert.InDelta(t, 50.5, s.Mean, 1e-12)
	assert.InDelta(t, 28.866, s.Std, 0.001)
	assert.InDelta(t, 3.475, s.Lower, 1e-9)
	assert.InDelta(t, 97.525, s.Upper, 1e-9)

	_, err = c.Summarize("nope")
	require.Error(t, err)
}

func TestSummarizeAllOrder(t *testing.T) {
	draws := [][]float64{{1, 10}, {3, 30}}
	c, err := NewChains([]string{"a", "b"}, [][][]float64{draws})
	require.NoError(t, err)

	all, err := c.SummarizeAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.InDelta(t, 2, all[0].Mean, 1e-12)
	assert.Equal(t, "b", all[1].Name)
	assert.InDelta(t, 20, all[1].Mean, 1e-12)
}

func TestRHatDisagreeingChains(t *testing.T) {
	// Trending, offset chains: the diagnostic must flag them.
	c, err := NewChains([]string{"a"}, [][][]float64{
		chainOf(1, 2, 3, 4),
		chainOf(2, 3, 4, 5),
	})
	require.NoError(t, err)

	s, err := c.Summarize("a")
	require.NoError(t, err)
	assert.InDelta(t, 1.958, s.RHat, 0.001)
}

func TestRHatStationaryChains(t *testing.T) {
	// Stationary chains with identical halves: no between-half variance,
	// so the statistic sits at its sqrt((n-1)/n) floor.
	c, err := NewChains([]string{"a"}, [][][]float64{
		chainOf(1, 2, 1, 2, 1, 2, 1, 2),
		chainOf(2, 1, 2, 1, 2, 1, 2, 1),
	})
	require.NoError(t, err)

	s, err := c.Summarize("a")
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.75), s.RHat, 1e-9)
}

func TestRHatTooShort(t *testing.T) {
	c, err := NewChains([]string{"a"}, [][][]float64{chainOf(1, 2)})
	require.NoError(t, err)
	s, err := c.Summarize("a")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(s.RHat))
}

func TestPooled(t *testing.T) {
	c, err := NewChains([]string{"a"}, [][][]float64{chainOf(1, 2), chainOf(3, 4)})
	require.NoError(t, err)
	pooled, err := c.Pooled("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, pooled)
}

func TestCheckPredictive(t *testing.T) {
	check := CheckPredictive([][]float64{{1, 2, 3}, {3, 4, 5}}, []float64{2, 3, 4})
	assert.InDelta(t, 3.0, check.ObservedMean, 1e-12)
	assert.InDelta(t, 2.0/3.0, check.ObservedVar, 1e-12)
	assert.InDelta(t, 3.0, check.SimulatedMean, 1e-12)
	assert.InDelta(t, 2.0/3.0, check.SimulatedVar, 1e-12)
}
