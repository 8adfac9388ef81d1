// Package report renders the analysis write-up: a markdown document with
// YAML front matter for the publishing tool, the narrative around the
// model, the coefficient table, and references to the generated figures.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/biagzi/week1-blog/pkg/posterior"
)

// FrontMatter is the metadata block consumed by the publishing tool.
type FrontMatter struct {
	Title      string   `yaml:"title"`
	Author     string   `yaml:"author"`
	Date       string   `yaml:"date"`
	Categories []string `yaml:"categories,flow"`
	Thumbnail  string   `yaml:"image,omitempty"`
	RunID      string   `yaml:"run_id,omitempty"`
}

// NewRunID returns a fresh identifier tying a rendered document to the run
// that produced it.
func NewRunID() string { return uuid.NewString() }

// Figure is a rendered image referenced from the document.
type Figure struct {
	Path    string
	Caption string
}

// Document is everything Render needs. All fields are plain values so the
// output is deterministic for a fixed input.
type Document struct {
	Meta       FrontMatter
	Formula    string
	CoefPrior  string
	ScalePrior string
	Chains     int
	Iterations int
	Seed       uint64

	Rows       int
	Histograms []Figure

	Summaries  []posterior.Summary
	Densities  []Figure
	Traces     []Figure
	Predictive Figure
	Check      posterior.PredictiveCheck
}

// Render produces the full markdown document.
func Render(doc Document) (string, error) {
	meta, err := yaml.Marshal(doc.Meta)
	if err != nil {
		return "", errors.Wrap(err, "report: front matter")
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "Bayes' rule tells us how to update a belief after seeing data: the\n")
	fmt.Fprintf(&b, "posterior is proportional to the prior times the likelihood. This post\n")
	fmt.Fprintf(&b, "walks through that update on the classic iris measurements, fitting a\n")
	fmt.Fprintf(&b, "linear regression whose coefficients are distributions rather than\n")
	fmt.Fprintf(&b, "point estimates.\n\n")

	b.WriteString("## The data\n\n")
	fmt.Fprintf(&b, "The dataset holds %d flowers, three species with fifty samples each,\n", doc.Rows)
	fmt.Fprintf(&b, "and four measurements per flower. A histogram per feature shows the\n")
	fmt.Fprintf(&b, "scales we are working with:\n\n")
	for _, fig := range doc.Histograms {
		fmt.Fprintf(&b, "![%s](%s)\n", fig.Caption, fig.Path)
	}

	b.WriteString("\n## The model\n\n")
	fmt.Fprintf(&b, "We regress `%s`. Before seeing any data the coefficients get a\n", doc.Formula)
	fmt.Fprintf(&b, "weakly-informative %s prior and the residual scale a %s prior:\n", doc.CoefPrior, doc.ScalePrior)
	fmt.Fprintf(&b, "wide enough to be honest about our ignorance, proper enough to keep\n")
	fmt.Fprintf(&b, "the sampler on the road. The posterior is drawn by Markov chain Monte\n")
	fmt.Fprintf(&b, "Carlo: %d independent chains of %d kept iterations, seed %d.\n\n", doc.Chains, doc.Iterations, doc.Seed)

	b.WriteString("## The posterior\n\n")
	b.WriteString("| Parameter | Mean | Std | 2.5% | 97.5% | R-hat |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range doc.Summaries {
		fmt.Fprintf(&b, "| %s | %.3f | %.3f | %.3f | %.3f | %.3f |\n", s.Name, s.Mean, s.Std, s.Lower, s.Upper, s.RHat)
	}
	fmt.Fprintf(&b, "\nAn R-hat near 1.0 for every row says the chains agree with each\n")
	fmt.Fprintf(&b, "other; a 95%% interval that stays on one side of zero says the data\n")
	fmt.Fprintf(&b, "left little doubt about the sign of the effect.\n\n")
	for _, fig := range doc.Densities {
		fmt.Fprintf(&b, "![%s](%s)\n", fig.Caption, fig.Path)
	}
	b.WriteString("\n")
	for _, fig := range doc.Traces {
		fmt.Fprintf(&b, "![%s](%s)\n", fig.Caption, fig.Path)
	}

	b.WriteString("\n## Does the model believe in the data?\n\n")
	fmt.Fprintf(&b, "A posterior-predictive check simulates datasets from the fitted model\n")
	fmt.Fprintf(&b, "and lays them over the real one. Simulated responses average %.2f\n", doc.Check.SimulatedMean)
	fmt.Fprintf(&b, "(observed %.2f) with variance %.2f (observed %.2f).\n\n",
		doc.Check.ObservedMean, doc.Check.SimulatedVar, doc.Check.ObservedVar)
	if doc.Predictive.Path != "" {
		fmt.Fprintf(&b, "![%s](%s)\n", doc.Predictive.Caption, doc.Predictive.Path)
	}

	return b.String(), nil
}
