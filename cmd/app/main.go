package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"agentsville/cmd/fx/config_fx"
	"agentsville/cmd/fx/core_fx"
	"agentsville/cmd/fx/server_fx"
)

func main() {
	app := fx.New(
		config_fx.Module,
		core_fx.Module,
		server_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
	)

	app.Run()
}
