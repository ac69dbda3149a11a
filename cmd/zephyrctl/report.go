package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osse101/zephyr/internal/domain"
)

// withSession runs fn against a freshly opened engine and drains its writes afterwards
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) (err error) {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(ctx); err == nil {
			err = cerr
		}
	}()
	return fn(ctx, s)
}

func parseLevelKey(args []string) (domain.LevelKey, error) {
	level, err := strconv.Atoi(args[2])
	if err != nil {
		return domain.LevelKey{}, fmt.Errorf("level %q: %w", args[2], err)
	}
	return domain.LevelKey{Subject: args[0], Topic: args[1], Level: level}, nil
}

func parseAmount(arg string) (int, error) {
	amount, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", arg, err)
	}
	return amount, nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Feed learning activity into a student's record",
	}
	cmd.AddCommand(newReportLevelCmd(), newReportStartCmd(), newReportXPCmd(), newReportStarsCmd())
	return cmd
}

func newReportLevelCmd() *cobra.Command {
	var xp int

	cmd := &cobra.Command{
		Use:   "level <identity> <subject> <topic> <level>",
		Short: "Record a completed level",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseLevelKey(args[1:])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				c, err := s.engine.Student.ReportLevelCompleted(ctx, args[0], key, xp)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printSuccess(out, "%s completed (+%d xp, total %d, level %d)", c.Key, c.XPAwarded, c.XP, c.Level)
				if c.OutOfOrder {
					printWarning(out, "completed before the previous level")
				}
				if c.LeveledUp {
					printSuccess(out, "level up!")
				}
				printSuccess(out, "streak %d (%s)", c.Streak.Streak, c.Streak.Outcome)
				for _, a := range c.Achievements {
					printSuccess(out, "achievement unlocked: %s", displayName(string(a)))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&xp, "xp", 0, "xp awarded; 0 uses the topic reward")
	return cmd
}

func newReportStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <identity> <subject> <topic> <level>",
		Short: "Record that a level was opened",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseLevelKey(args[1:])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				first, err := s.engine.Student.ReportLevelStarted(ctx, args[0], key)
				if err != nil {
					return err
				}
				if first {
					printSuccess(cmd.OutOrStdout(), "%s started", key)
				} else {
					printWarning(cmd.OutOrStdout(), "%s was already started", key)
				}
				return nil
			})
		},
	}
}

func newReportXPCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "xp <identity> <amount>",
		Short: "Grant XP outside of a level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				award, err := s.engine.Student.ReportXPGranted(ctx, args[0], amount, source)
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "+%d xp (total %d, level %d)", award.Amount, award.XP, award.Level)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "grant source: level_completion, challenge or bonus")
	return cmd
}

func newReportStarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stars <identity> <amount>",
		Short: "Credit stars",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				total, err := s.engine.Student.ReportStarsEarned(ctx, args[0], amount)
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "+%d stars (total %d)", amount, total)
				return nil
			})
		},
	}
}
