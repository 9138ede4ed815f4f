package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"agentsville/internal/config"
	"agentsville/internal/infra"
)

var Module = fx.Provide(ProvideLogger)

func ProvideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := infra.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings {
		logger.Warn("config value ignored", zap.String("detail", w))
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}
