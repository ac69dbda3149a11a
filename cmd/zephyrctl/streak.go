package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/osse101/zephyr/internal/streak"
)

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Resolve a pending streak repair offer",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "repair <identity>",
			Short: "Pay to restore a broken streak",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, func(ctx context.Context, s *session) error {
					r, err := s.engine.Student.RepairStreak(ctx, args[0])
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					switch r.Status {
					case streak.RepairStatusRepaired:
						printSuccess(out, "streak restored to %d for %d xp (balance %d)", r.Streak, r.Cost, r.Balance)
					case streak.RepairStatusInsufficientFunds:
						printError(out, "repair costs %d xp, balance %d", r.Cost, r.Balance)
					default:
						printWarning(out, "no repair offer")
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "dismiss <identity>",
			Short: "Forfeit the repair offer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, func(ctx context.Context, s *session) error {
					dismissed, err := s.engine.Student.DismissRepairOffer(ctx, args[0])
					if err != nil {
						return err
					}
					if dismissed {
						printSuccess(cmd.OutOrStdout(), "repair offer dismissed")
					} else {
						printWarning(cmd.OutOrStdout(), "no repair offer")
					}
					return nil
				})
			},
		},
	)
	return cmd
}
