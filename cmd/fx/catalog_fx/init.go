package catalog_fx

import (
	"go.uber.org/fx"

	"agentsville/internal/repositories"
	"agentsville/internal/services"
)

var Module = fx.Provide(
	repositories.NewActivityRepository,
	repositories.NewWeatherRepository,
	services.NewCatalogService)
