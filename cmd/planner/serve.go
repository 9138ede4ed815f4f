package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"agentsville/cmd/fx/core_fx"
	"agentsville/cmd/fx/server_fx"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(false)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.HTTP.Port = port
			}

			app := fx.New(
				fx.Supply(cfg),
				core_fx.Module,
				server_fx.Module,
				fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
					return &fxevent.ZapLogger{Logger: logger.Named("fx")}
				}),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides config)")
	return cmd
}
