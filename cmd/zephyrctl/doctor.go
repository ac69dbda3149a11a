package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/zephyr/internal/bootstrap"
	"github.com/osse101/zephyr/internal/config"
)

const doctorTimeout = 10 * time.Second

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, catalogs and backend reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printHeader(out, "Running Doctor...")

			ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				printError(out, "Configuration invalid: %v", err)
				return err
			}
			printSuccess(out, "Configuration OK (backend %s, timezone %s)", cfg.StoreBackend, cfg.Timezone)

			warnings, err := config.ValidateEnvWithWarnings()
			if err != nil {
				printWarning(out, "%v", err)
			}
			for _, w := range warnings {
				printWarning(out, "%s", w)
			}

			hasError := false
			if _, _, err := bootstrap.LoadCatalogs(cfg); err != nil {
				printError(out, "Catalog check failed: %v", err)
				hasError = true
			} else {
				printSuccess(out, "Catalogs OK")
			}

			backend, err := bootstrap.OpenBackend(ctx, cfg)
			if err == nil {
				err = backend.Repo.Ping(ctx)
				_ = backend.Close()
			}
			if err != nil {
				printError(out, "Backend check failed: %v", err)
				hasError = true
			} else {
				printSuccess(out, "Backend OK")
			}

			if hasError {
				return errors.New("doctor found issues")
			}
			printSuccess(out, "All systems operational!")
			return nil
		},
	}
}
