package cmd

import (
	"time"

	"dashboard/routes"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the latest index closes once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, cleanup, err := routes.Bootstrap(ctx, sysConfigs)
		if err != nil {
			return err
		}
		defer cleanup()

		start := time.Now()
		result, err := svc.Refresh.Refresh(ctx)
		if err != nil {
			return err
		}
		log.Info().
			Int("instruments", result.Instruments).
			Int("rows", result.Rows).
			Dur("took", time.Since(start)).
			Msg("Refresh complete")
		return nil
	},
}
