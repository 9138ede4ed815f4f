package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

type IWeatherRepository interface {
	GetByDate(ctx context.Context, date, city string) (*plan_models.Weather, error)
}

type WeatherRepository struct {
	forecasts []plan_models.Weather
}

func NewWeatherRepository() (IWeatherRepository, error) {
	raw, err := fixtureFS.ReadFile("fixtures/weather.json")
	if err != nil {
		return nil, fmt.Errorf("read weather fixture: %w", err)
	}
	var forecasts []plan_models.Weather
	if err := json.Unmarshal(raw, &forecasts); err != nil {
		return nil, fmt.Errorf("decode weather fixture: %w", err)
	}
	return &WeatherRepository{forecasts: forecasts}, nil
}

func (r *WeatherRepository) GetByDate(ctx context.Context, date, city string) (*plan_models.Weather, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, err
	}
	for _, w := range r.forecasts {
		if w.Date == date && strings.EqualFold(w.City, city) {
			out := w
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", date, city, utils.ErrWeatherNotFound)
}
