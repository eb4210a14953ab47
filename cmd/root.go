// Package cmd holds the portfolio command line: the API server, schema
// migrations and local user provisioning.
package cmd

import (
	"portfolio-api/config"
	Logger "portfolio-api/utils/log"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Portfolio and blog API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		Logger.InitLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, userCmd)
}

// Execute runs the command named on the command line.
func Execute() error {
	return rootCmd.Execute()
}
