package planner_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"agentsville/internal/agent"
	"agentsville/internal/config"
	"agentsville/internal/repositories"
	"agentsville/internal/services"
	"agentsville/pkg/llm"
)

var Module = fx.Provide(
	agent.NewCalculator,
	services.NewValidatorService,
	services.NewInterestRanker,
	ProvideItineraryService,
	ProvideRevisionService,
	services.NewPlannerService)

func ProvideItineraryService(
	client llm.ReasoningClient,
	catalog services.CatalogServiceInterface,
	ranker services.InterestRankerInterface,
	cfg *config.Config,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(client, catalog, ranker, cfg.Planner.GeneratorTemperature, logger.Named("generator"))
}

func ProvideRevisionService(
	client llm.ReasoningClient,
	catalog services.CatalogServiceInterface,
	validator services.ValidatorServiceInterface,
	activityRepo repositories.IActivityRepository,
	calculator *agent.Calculator,
	cfg *config.Config,
	logger *zap.Logger,
) services.RevisionServiceInterface {
	return services.NewRevisionService(
		client,
		catalog,
		validator,
		activityRepo,
		calculator,
		cfg.Planner.MaxIterations,
		cfg.Planner.Temperature,
		logger.Named("revision"),
	)
}
