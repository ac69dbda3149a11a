package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/zephyr/internal/domain"
)

func newPurchaseCmd() *cobra.Command {
	var subject, topic string

	cmd := &cobra.Command{
		Use:   "purchase <identity> <kind> <item>",
		Short: "Buy a catalog entry (consumable, title, theme, vip or challenge)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.PurchaseRequest{
				Kind:    domain.PurchaseKind(args[1]),
				ItemID:  args[2],
				Subject: subject,
				Topic:   topic,
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				result, err := s.engine.Student.Purchase(ctx, args[0], req)
				if err != nil {
					return err
				}
				printPurchase(cmd, result)
				return result.Err()
			})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "subject of a challenge unlock")
	cmd.Flags().StringVar(&topic, "topic", "", "topic of a challenge unlock")
	return cmd
}

func printPurchase(cmd *cobra.Command, r domain.PurchaseResult) {
	out := cmd.OutOrStdout()
	switch r.Status {
	case domain.StatusPurchased:
		printSuccess(out, "bought %s %s for %d %s (balance %d)", r.Kind, r.ItemID, r.Cost, r.Currency, r.Balance)
		if r.VIPExpiry != nil {
			printSuccess(out, "vip until %s", r.VIPExpiry.Format(time.RFC3339))
		}
	case domain.StatusEquipped, domain.StatusUnequipped, domain.StatusOwned:
		printSuccess(out, "%s %s: %s", r.Kind, r.ItemID, r.Status)
	case domain.StatusInsufficientFunds:
		printError(out, "%s %s costs %d %s, short %d", r.Kind, r.ItemID, r.Cost, r.Currency, r.Shortfall)
	case domain.StatusOnCooldown:
		printError(out, "purchases locked for %s", r.RetryAfter.Round(time.Second))
	}
}

func newUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <identity> <consumable>",
		Short: "Spend one charge of a consumable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.ConsumableKind(args[1])
			return withSession(cmd, func(ctx context.Context, s *session) error {
				used, err := s.engine.Student.UseConsumable(ctx, args[0], kind)
				if err != nil {
					return err
				}
				if !used {
					printWarning(cmd.OutOrStdout(), "no %s left", displayName(string(kind)))
					return nil
				}
				printSuccess(cmd.OutOrStdout(), "used one %s", displayName(string(kind)))
				return nil
			})
		},
	}
}
