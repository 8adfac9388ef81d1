package bayes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalLogProb(t *testing.T) {
	p := NewNormal(0, 1)
	// Standard normal density at 0 is 1/sqrt(2*pi).
	assert.InDelta(t, -0.5*math.Log(2*math.Pi), p.LogProb(0), 1e-12)
	// Symmetry.
	assert.InDelta(t, p.LogProb(-1.3), p.LogProb(1.3), 1e-12)
}

func TestNormalWide(t *testing.T) {
	p := NewNormal(0, 10)
	assert.Equal(t, 0.0, p.Mean())
	assert.Equal(t, 10.0, p.StdDev())
	// A wide prior barely distinguishes nearby values.
	assert.InDelta(t, p.LogProb(0), p.LogProb(1), 0.01)
	assert.Equal(t, "normal(0, 10)", p.String())
}

func TestHalfNormalLogProb(t *testing.T) {
	p := NewHalfNormal(5)
	n := NewNormal(0, 5)
	// Twice the normal density on the positive half line.
	assert.InDelta(t, math.Ln2+n.LogProb(1.7), p.LogProb(1.7), 1e-12)
	assert.True(t, math.IsInf(p.LogProb(-0.001), -1))
	assert.Equal(t, "half-normal(5)", p.String())
}
