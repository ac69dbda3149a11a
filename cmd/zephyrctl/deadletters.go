package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/event"
)

func newDeadLettersCmd() *cobra.Command {
	var identity string

	cmd := &cobra.Command{
		Use:   "deadletters",
		Short: "List events that exhausted their publish retries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			entries, err := event.ReadDeadLetters(cfg.DeadLetterPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				printSuccess(out, "no dead letters in %s", cfg.DeadLetterPath)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tTYPE\tIDENTITY\tATTEMPTS\tERROR")
			for _, e := range entries {
				if identity != "" && e.Event.Identity() != identity {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					e.Timestamp.Format(time.RFC3339), e.Event.Type, e.Event.Identity(), e.Attempts, e.LastError)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&identity, "identity", "", "only show events of this student")
	return cmd
}
