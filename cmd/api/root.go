package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/logger"
)

// newRootCommand arranca el servidor por defecto
func newRootCommand() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront catalog API and admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.LoadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			_, err := logger.Setup(cfg.LogMode, cfg.LogFile)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	getConfig := func() *config.Config { return cfg }

	serve := newServeCommand(getConfig)
	root.RunE = serve.RunE
	root.AddCommand(serve, newSeedCommand(getConfig), newAdminCommand(getConfig))
	return root
}
