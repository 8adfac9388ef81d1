package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/biagzi/week1-blog/pkg/dataset"
	"github.com/biagzi/week1-blog/pkg/posterior"
	"github.com/biagzi/week1-blog/pkg/regress"
	"github.com/biagzi/week1-blog/pkg/report"
	"github.com/biagzi/week1-blog/pkg/stats"
	"github.com/biagzi/week1-blog/pkg/viz"
)

type runOptions struct {
	Formula    string
	Chains     int
	Iterations int
	BurnIn     int
	Seed       uint64
	Draws      int
	Out        string
	Title      string
	Author     string
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fit the model and write the rendered post with figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(opts)
		},
	}
	cmd.Flags().StringVar(&opts.Formula, "formula", "petal_length ~ sepal_length + sepal_width", "model formula")
	cmd.Flags().IntVar(&opts.Chains, "chains", 4, "independent sampling chains")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 500, "kept draws per chain")
	cmd.Flags().IntVar(&opts.BurnIn, "burnin", 500, "discarded draws per chain")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 123, "random seed")
	cmd.Flags().IntVar(&opts.Draws, "draws", 200, "posterior-predictive replicates")
	cmd.Flags().StringVar(&opts.Out, "out", "post", "output directory")
	cmd.Flags().StringVar(&opts.Title, "title", "A first walk through Bayesian regression", "post title")
	cmd.Flags().StringVar(&opts.Author, "author", "", "post author")
	return cmd
}

func runAnalysis(opts *runOptions) error {
	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	tbl, err := dataset.Load()
	if err != nil {
		return err
	}
	logrus.WithField("rows", tbl.Len()).Info("dataset loaded")

	// Stage 2: per-feature histograms.
	var histFigs []report.Figure
	for _, name := range tbl.Names() {
		col, err := tbl.Column(name)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"feature": name,
			"mean":    fmt.Sprintf("%.3f", stats.Mean(col)),
			"std":     fmt.Sprintf("%.3f", stats.Std(col)),
		}).Debug("feature summary")
		file := "hist_" + name + ".png"
		if err := viz.Histogram(col, name, name+" (cm)", filepath.Join(opts.Out, file)); err != nil {
			return err
		}
		histFigs = append(histFigs, report.Figure{Path: file, Caption: "Histogram of " + name})
	}

	// Stages 3 and 4: prior, fit.
	formula, err := regress.ParseFormula(opts.Formula)
	if err != nil {
		return err
	}
	model := regress.NewModel(formula)
	model.Chains = opts.Chains
	model.Iterations = opts.Iterations
	model.BurnIn = opts.BurnIn
	model.Seed = opts.Seed

	chains, err := model.Fit(tbl)
	if err != nil {
		return err
	}
	summaries, err := chains.SummarizeAll()
	if err != nil {
		return err
	}
	for _, s := range summaries {
		logrus.WithFields(logrus.Fields{
			"param": s.Name,
			"mean":  fmt.Sprintf("%.3f", s.Mean),
			"rhat":  fmt.Sprintf("%.3f", s.RHat),
		}).Info("posterior summary")
	}

	// Stage 5: posterior plots and the predictive check.
	var densFigs, traceFigs []report.Figure
	for _, name := range formula.Predictors {
		pooled, err := chains.Pooled(name)
		if err != nil {
			return err
		}
		perChain, err := chains.Param(name)
		if err != nil {
			return err
		}
		dFile := "density_" + name + ".png"
		if err := viz.Density(pooled, "Posterior of "+name, "Coefficient", filepath.Join(opts.Out, dFile)); err != nil {
			return err
		}
		densFigs = append(densFigs, report.Figure{Path: dFile, Caption: "Posterior density of " + name})
		tFile := "trace_" + name + ".png"
		if err := viz.Trace(perChain, "Trace of "+name, filepath.Join(opts.Out, tFile)); err != nil {
			return err
		}
		traceFigs = append(traceFigs, report.Figure{Path: tFile, Caption: "Trace of " + name})
	}

	simulated, err := model.Simulate(tbl, chains, opts.Draws, opts.Seed)
	if err != nil {
		return err
	}
	observed, err := tbl.Column(formula.Response)
	if err != nil {
		return err
	}
	check := posterior.CheckPredictive(simulated, observed)
	ppcFile := "ppc.png"
	if err := viz.PredictiveOverlay(observed, simulated, "Posterior-predictive check", filepath.Join(opts.Out, ppcFile)); err != nil {
		return err
	}

	doc := report.Document{
		Meta: report.FrontMatter{
			Title:      opts.Title,
			Author:     opts.Author,
			Date:       time.Now().Format("2006-01-02"),
			Categories: []string{"bayesian-statistics", "regression"},
			Thumbnail:  ppcFile,
			RunID:      report.NewRunID(),
		},
		Formula:    formula.String(),
		CoefPrior:  model.CoefPrior.String(),
		ScalePrior: model.ScalePrior.String(),
		Chains:     model.Chains,
		Iterations: model.Iterations,
		Seed:       model.Seed,
		Rows:       tbl.Len(),
		Histograms: histFigs,
		Summaries:  summaries,
		Densities:  densFigs,
		Traces:     traceFigs,
		Predictive: report.Figure{Path: ppcFile, Caption: "Observed vs simulated response"},
		Check:      check,
	}
	md, err := report.Render(doc)
	if err != nil {
		return err
	}
	out := filepath.Join(opts.Out, "index.md")
	if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
		return errors.Wrap(err, "writing post")
	}
	logrus.WithField("path", out).Info("post written")
	return nil
}
