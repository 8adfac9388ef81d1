// Command irisblog runs the Bayesian iris regression analysis end to end
// and writes the rendered post (markdown plus PNG figures) to a directory.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	verbose := false
	cmd := &cobra.Command{
		Use:   "irisblog",
		Short: "Bayesian linear regression on the iris dataset",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newSummaryCommand())
	return cmd
}
