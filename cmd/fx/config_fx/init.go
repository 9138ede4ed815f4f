package config_fx

import (
	"os"

	"go.uber.org/fx"

	"agentsville/internal/config"
)

var Module = fx.Provide(ProvideConfig)

// ProvideConfig loads PLANNER_CONFIG (if set) and ./.env over the defaults.
func ProvideConfig() (*config.Config, error) {
	return config.Load(os.Getenv(config.ConfigPathEnv), ".env")
}
