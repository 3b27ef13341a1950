package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gruppe-adler/meh-plots/internal/demhist"
	"github.com/gruppe-adler/meh-plots/internal/elevhist"
	"github.com/gruppe-adler/meh-plots/internal/grad"
	"github.com/gruppe-adler/meh-plots/internal/preview"
	"github.com/gruppe-adler/meh-plots/internal/slopedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var subCommands []*cobra.Command

func init() {
	subCommands = []*cobra.Command{
		demhist.Command(),
		elevhist.Command(),
		grad.Command(),
		slopedir.Command(),
		preview.Command(),
	}
}

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "meh-plots",
		Short: "Plot terrain statistics and fit models to them.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.AddCommand(subCommands...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logrus.Fatal(err)
	}
}
