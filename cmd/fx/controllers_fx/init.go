package controllers_fx

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"agentsville/internal/api"
	"agentsville/internal/api/controllers"
	"agentsville/internal/config"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewHealthController),
	fx.Provide(ProvideRouter))

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	itineraryController *controllers.ItineraryController,
	catalogController *controllers.CatalogController,
	healthController *controllers.HealthController,
) *gin.Engine {
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(api.RouterParams{
		Logger:              logger.Named("http"),
		JWTSecret:           []byte(cfg.JWTSecret),
		ItineraryController: itineraryController,
		CatalogController:   catalogController,
		HealthController:    healthController,
	})
}
