// Command zephyrctl operates on progression records outside the running service
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "zephyrctl",
		Short:         "Inspect and operate the zephyr progression store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")

	root.AddCommand(
		newMigrateCmd(),
		newDoctorCmd(),
		newCatalogCmd(),
		newListCmd(),
		newInspectCmd(),
		newReportCmd(),
		newPurchaseCmd(),
		newUseCmd(),
		newStreakCmd(),
		newDeadLettersCmd(),
	)
	return root
}
