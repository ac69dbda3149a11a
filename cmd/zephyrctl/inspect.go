package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/zephyr/internal/domain"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every identity with a stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, backend, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			ids, err := backend.Repo.ListIdentities(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <identity>",
		Short: "Print the stored progression record of a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, backend, err := openBackend(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			state, err := backend.Repo.LoadState(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			}
			return printState(cmd, args[0], state)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw record")
	return cmd
}

func printState(cmd *cobra.Command, identity string, s *domain.ProgressionState) error {
	out := cmd.OutOrStdout()
	printHeader(out, identity)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "revision\t%d\n", s.Revision)
	fmt.Fprintf(tw, "xp\t%d (level %d)\n", s.XP, s.Level)
	fmt.Fprintf(tw, "stars\t%d\n", s.Stars)

	lastDay := "never"
	if s.LastCreditDay != nil {
		lastDay = s.LastCreditDay.String()
	}
	fmt.Fprintf(tw, "streak\t%d (last credit %s, %d shields)\n", s.Streak, lastDay, s.StreakShields)
	if s.RepairOffer != nil {
		fmt.Fprintf(tw, "repair offer\tstreak %d broken %s\n", s.RepairOffer.PreviousStreak, s.RepairOffer.BrokenAt.Format(time.RFC3339))
	}

	fmt.Fprintf(tw, "completed levels\t%d\n", s.CompletedLevels.Len())
	fmt.Fprintf(tw, "achievements\t%v\n", sortedStrings(s.Achievements.Items()))

	for _, kind := range domain.ConsumableKinds {
		fmt.Fprintf(tw, "%s\t%d\n", displayName(string(kind)), s.ConsumableCount(kind))
	}

	title := "none"
	if s.Cosmetics.ActiveTitle != nil {
		title = *s.Cosmetics.ActiveTitle
	}
	fmt.Fprintf(tw, "title\t%s of %v\n", title, sortedStrings(s.Cosmetics.OwnedTitles.Items()))
	fmt.Fprintf(tw, "theme\t%s of %v\n", s.Cosmetics.ActiveTheme, sortedStrings(s.Cosmetics.OwnedThemes.Items()))

	vip := "inactive"
	if s.VIPExpiry != nil {
		vip = "until " + s.VIPExpiry.Format(time.RFC3339)
	}
	fmt.Fprintf(tw, "vip\t%s\n", vip)
	fmt.Fprintf(tw, "updated\t%s\n", s.UpdatedAt.Format(time.RFC3339))
	return tw.Flush()
}

func sortedStrings[T ~string](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item)
	}
	sort.Strings(out)
	return out
}
