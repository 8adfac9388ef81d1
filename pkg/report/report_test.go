package report

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biagzi/week1-blog/pkg/posterior"
)

func fixtureDocument() Document {
	return Document{
		Meta: FrontMatter{
			Title:      "A first walk through Bayesian regression",
			Author:     "Beatriz",
			Date:       "January 15, 2026",
			Categories: []string{"bayesian-statistics", "regression"},
			Thumbnail:  "ppc.png",
			RunID:      "run-0001",
		},
		Formula:    "petal_length ~ sepal_length + sepal_width",
		CoefPrior:  "normal(0, 10)",
		ScalePrior: "half-normal(5)",
		Chains:     4,
		Iterations: 500,
		Seed:       123,
		Rows:       150,
		Histograms: []Figure{
			{Path: "hist_sepal_length.png", Caption: "Histogram of sepal_length"},
			{Path: "hist_sepal_width.png", Caption: "Histogram of sepal_width"},
		},
		Summaries: []posterior.Summary{
			{Name: "(intercept)", Mean: -2.525, Std: 0.563, Lower: -3.628, Upper: -1.421, RHat: 1.001},
			{Name: "sepal_length", Mean: 1.776, Std: 0.064, Lower: 1.649, Upper: 1.902, RHat: 1.002},
			{Name: "sepal_width", Mean: -1.339, Std: 0.122, Lower: -1.579, Upper: -1.098, RHat: 0.999},
			{Name: "sigma", Mean: 0.647, Std: 0.038, Lower: 0.576, Upper: 0.726, RHat: 1.000},
		},
		Densities: []Figure{
			{Path: "density_sepal_length.png", Caption: "Posterior density of sepal_length"},
			{Path: "density_sepal_width.png", Caption: "Posterior density of sepal_width"},
		},
		Traces: []Figure{
			{Path: "trace_sepal_length.png", Caption: "Trace of sepal_length"},
			{Path: "trace_sepal_width.png", Caption: "Trace of sepal_width"},
		},
		Predictive: Figure{Path: "ppc.png", Caption: "Observed vs simulated response"},
		Check: posterior.PredictiveCheck{
			ObservedMean:  3.758,
			ObservedVar:   3.096,
			SimulatedMean: 3.76,
			SimulatedVar:  3.11,
		},
	}
}

func TestRenderGolden(t *testing.T) {
	md, err := Render(fixtureDocument())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "report", []byte(md))
}

func TestRenderFrontMatter(t *testing.T) {
	md, err := Render(fixtureDocument())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(md, "---\n"))
	head := strings.SplitN(md, "---", 3)[1]
	assert.Contains(t, head, "title: A first walk through Bayesian regression")
	assert.Contains(t, head, "categories: [bayesian-statistics, regression]")
	assert.Contains(t, head, "image: ppc.png")
	assert.Contains(t, head, "run_id: run-0001")
}

func TestRenderOmitsEmptyMetadata(t *testing.T) {
	doc := fixtureDocument()
	doc.Meta.Thumbnail = ""
	doc.Meta.RunID = ""
	md, err := Render(doc)
	require.NoError(t, err)
	assert.NotContains(t, md, "image:")
	assert.NotContains(t, md, "run_id:")
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(fixtureDocument())
	require.NoError(t, err)
	b, err := Render(fixtureDocument())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewRunID(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
	assert.Len(t, NewRunID(), 36)
}
