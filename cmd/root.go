package cmd

import (
	"dashboard/config"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var sysConfigs *config.SystemConfigs

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Index returns dashboard backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfigs()
		if err != nil {
			return err
		}
		sysConfigs = cfg

		if cfg.Config.LogLevel != "" {
			level, err := zerolog.ParseLevel(cfg.Config.LogLevel)
			if err != nil {
				log.Warn().Str("logLevel", cfg.Config.LogLevel).Msg("Unknown log level, keeping info")
			} else {
				zerolog.SetGlobalLevel(level)
			}
		}
		return nil
	},
	// no subcommand starts the server
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, refreshCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
