package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"agentsville/internal/models/plan_models"
	"agentsville/internal/repositories"
	"agentsville/pkg/utils"
)

type CatalogServiceInterface interface {
	Snapshot(ctx context.Context, info plan_models.VacationInfo) (Catalog, error)
	ActivitiesByDate(ctx context.Context, date, city string) ([]plan_models.Activity, error)
	ActivityByID(ctx context.Context, activityID string) (*plan_models.Activity, error)
	WeatherByDate(ctx context.Context, date, city string) (*plan_models.Weather, error)
}

type CatalogService struct {
	activityRepo repositories.IActivityRepository
	weatherRepo  repositories.IWeatherRepository
	logger       *zap.Logger
}

func NewCatalogService(
	activityRepo repositories.IActivityRepository,
	weatherRepo repositories.IWeatherRepository,
	logger *zap.Logger,
) CatalogServiceInterface {
	return &CatalogService{
		activityRepo: activityRepo,
		weatherRepo:  weatherRepo,
		logger:       logger,
	}
}

// Snapshot collects activities and weather for every date of the trip. Dates
// without a forecast are left out of the weather map.
func (s *CatalogService) Snapshot(ctx context.Context, info plan_models.VacationInfo) (Catalog, error) {
	dates := info.Dates()
	if len(dates) == 0 {
		return Catalog{}, fmt.Errorf("no dates between %q and %q: %w", info.StartDate, info.EndDate, utils.ErrInvalidInput)
	}

	var (
		acts    []plan_models.Activity
		weather []plan_models.Weather
	)
	for _, date := range dates {
		dayActs, err := s.activityRepo.ListByDate(ctx, date, info.City)
		if err != nil {
			return Catalog{}, err
		}
		acts = append(acts, dayActs...)

		w, err := s.weatherRepo.GetByDate(ctx, date, info.City)
		switch {
		case errors.Is(err, utils.ErrWeatherNotFound):
			s.logger.Debug("no forecast", zap.String("date", date), zap.String("city", info.City))
		case err != nil:
			return Catalog{}, err
		default:
			weather = append(weather, *w)
		}
	}

	return CatalogFromActivities(info.City, acts, weather), nil
}

func (s *CatalogService) ActivitiesByDate(ctx context.Context, date, city string) ([]plan_models.Activity, error) {
	if city == "" {
		city = plan_models.DefaultCity
	}
	return s.activityRepo.ListByDate(ctx, date, city)
}

func (s *CatalogService) ActivityByID(ctx context.Context, activityID string) (*plan_models.Activity, error) {
	if activityID == "" {
		return nil, utils.ErrInvalidInput
	}
	return s.activityRepo.GetByID(ctx, activityID)
}

func (s *CatalogService) WeatherByDate(ctx context.Context, date, city string) (*plan_models.Weather, error) {
	if city == "" {
		city = plan_models.DefaultCity
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, err
	}
	return s.weatherRepo.GetByDate(ctx, date, city)
}
