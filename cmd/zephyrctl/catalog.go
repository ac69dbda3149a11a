package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/zephyr/internal/bootstrap"
	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/domain"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the curriculum and the shop price list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			curriculum, shop, err := bootstrap.LoadCatalogs(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printHeader(out, "Curriculum")
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SUBJECT\tGRADE\tTOPIC\tLEVELS\tXP")
			for _, subject := range curriculum.Subjects() {
				for grade := domain.MinGrade; grade <= domain.MaxGrade; grade++ {
					topics, err := curriculum.Topics(subject, grade)
					if err != nil {
						return err
					}
					for _, t := range topics {
						name := t.Name
						if name == "" {
							name = displayName(t.ID)
						}
						fmt.Fprintf(tw, "%s\t%d\t%s (%s)\t%d\t%d\n", displayName(subject), grade, name, t.ID, t.LevelCount(), t.XP)
					}
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			c := shop.Catalog()
			printHeader(out, "Shop")
			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tID\tNAME\tCOST")
			for _, item := range c.Consumables {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d %s\n", domain.PurchaseConsumable, item.Kind, item.Name, item.Cost, domain.CurrencyXP)
			}
			for _, item := range c.Titles {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d %s\n", domain.PurchaseTitle, item.ID, item.Name, item.Cost, domain.CurrencyXP)
			}
			for _, item := range c.Themes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d %s\n", domain.PurchaseTheme, item.ID, item.Name, item.Cost, domain.CurrencyXP)
			}
			for _, plan := range c.VIPPlans {
				fmt.Fprintf(tw, "%s\t%s\t%s (%d days)\t%d %s\n", domain.PurchaseVIP, plan.ID, plan.Name, plan.DurationDays, plan.CostStars, domain.CurrencyStars)
			}
			for _, item := range c.Challenges {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d %s\n", domain.PurchaseChallenge, item.Type, item.Name, item.Cost, domain.CurrencyXP)
			}
			return tw.Flush()
		},
	}
}
