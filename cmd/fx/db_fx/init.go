package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"agentsville/internal/config"
	"agentsville/internal/infra"
	"agentsville/internal/models/db_models"
	"agentsville/internal/repositories"
	mem "agentsville/pkg/memcache"
)

var Module = fx.Provide(provideRunRepository)

// provideRunRepository uses Postgres when POSTGRES_URL is set and the
// in-memory TTL store otherwise.
func provideRunRepository(
	lc fx.Lifecycle,
	cfg *config.Config,
	store mem.TTLStore[db_models.ItineraryRun],
	logger *zap.Logger,
) (repositories.IItineraryRunRepository, error) {
	if cfg.PostgresURL == "" {
		logger.Info("POSTGRES_URL not set, keeping runs in memory", zap.Duration("ttl", cfg.RunCacheDuration()))
		return repositories.NewMemoryRunRepository(store, cfg.RunCacheDuration()), nil
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return repositories.NewItineraryRunRepository(db), nil
}
