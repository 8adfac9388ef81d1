package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/biagzi/week1-blog/pkg/dataset"
	"github.com/biagzi/week1-blog/pkg/regress"
)

func newSummaryCommand() *cobra.Command {
	formulaStr := ""
	chains, iterations, burnin := 4, 500, 500
	var seed uint64 = 123

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fit the model and print the coefficient table",
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := dataset.Load()
			if err != nil {
				return err
			}
			formula, err := regress.ParseFormula(formulaStr)
			if err != nil {
				return err
			}
			model := regress.NewModel(formula)
			model.Chains = chains
			model.Iterations = iterations
			model.BurnIn = burnin
			model.Seed = seed

			ch, err := model.Fit(tbl)
			if err != nil {
				return err
			}
			summaries, err := ch.SummarizeAll()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "parameter\tmean\tstd\t2.5%\t97.5%\tR-hat")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n", s.Name, s.Mean, s.Std, s.Lower, s.Upper, s.RHat)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&formulaStr, "formula", "petal_length ~ sepal_length + sepal_width", "model formula")
	cmd.Flags().IntVar(&chains, "chains", 4, "independent sampling chains")
	cmd.Flags().IntVar(&iterations, "iterations", 500, "kept draws per chain")
	cmd.Flags().IntVar(&burnin, "burnin", 500, "discarded draws per chain")
	cmd.Flags().Uint64Var(&seed, "seed", 123, "random seed")
	return cmd
}
