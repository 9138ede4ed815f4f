package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/llm"
	"agentsville/pkg/utils"
)

const itinerarySystemPrompt = `You are an expert travel planner for the fictional city AgentsVille.

Task:
- Create a day-by-day itinerary from the vacation info (city, dates, travelers, interests, budget). Use ONLY activities from the provided catalog, on the date they are offered.
- Plan at least one and preferably two activities per day, respecting times and interests.
- Avoid outdoor activities on days with rain, thunderstorms or snow.
- Stay within the budget.

Output STRICTLY one JSON object of this shape (no extra keys, no commentary):
{
  "city": "AgentsVille",
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD",
  "travelers": ["..."],
  "currency": "USD",
  "total_cost": 0,
  "days": [
    {
      "date": "YYYY-MM-DD",
      "activities": [
        {
          "activity_id": "event-...",
          "name": "...",
          "start_time": "YYYY-MM-DD HH:MM",
          "end_time": "YYYY-MM-DD HH:MM",
          "location": "...",
          "description": "...",
          "price": 0,
          "related_interests": ["art"],
          "setting": "indoor"
        }
      ],
      "notes": "optional"
    }
  ]
}

Set total_cost to the exact sum of the included activities' prices.`

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, info plan_models.VacationInfo) (*plan_models.TravelItinerary, error)
}

type ItineraryService struct {
	client      llm.ReasoningClient
	catalog     CatalogServiceInterface
	ranker      InterestRankerInterface
	temperature float32
	logger      *zap.Logger
}

func NewItineraryService(
	client llm.ReasoningClient,
	catalog CatalogServiceInterface,
	ranker InterestRankerInterface,
	temperature float32,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		client:      client,
		catalog:     catalog,
		ranker:      ranker,
		temperature: temperature,
		logger:      logger,
	}
}

// Generate makes exactly one reasoning call. The reply is parsed strictly,
// repaired once if needed, and must be a well-formed itinerary.
func (s *ItineraryService) Generate(ctx context.Context, info plan_models.VacationInfo) (*plan_models.TravelItinerary, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.catalog.Snapshot(ctx, info)
	if err != nil {
		return nil, err
	}

	userPrompt, err := s.buildUserPrompt(ctx, info, snapshot)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: itinerarySystemPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
		Temperature: s.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %v: %w", err, utils.ErrUnexpectedBehaviorOfAI)
	}

	itinerary, err := decodeItineraryReply(resp)
	if err != nil {
		s.logger.Warn("itinerary reply rejected",
			zap.Error(err),
			zap.String("raw", truncate(resp, 500)),
		)
		return nil, err
	}

	attachWeather(itinerary, snapshot)
	s.logger.Info("itinerary generated",
		zap.Int("days", len(itinerary.Days)),
		zap.Int("activities", itinerary.ActivityCount()),
	)
	return itinerary, nil
}

func (s *ItineraryService) buildUserPrompt(ctx context.Context, info plan_models.VacationInfo, snapshot Catalog) (string, error) {
	interests := info.AllInterests()
	activitiesByDate := make(map[string][]plan_models.Activity, len(snapshot.Activities))
	for date, acts := range snapshot.Activities {
		ranked, err := s.ranker.Rank(ctx, interests, acts)
		if err != nil {
			return "", err
		}
		activitiesByDate[date] = ranked
	}

	vj, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	aj, err := json.Marshal(activitiesByDate)
	if err != nil {
		return "", err
	}
	wj, err := json.Marshal(snapshot.Weather)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("VacationInfo:\n")
	sb.Write(vj)
	sb.WriteString("\n\nActivitiesByDate (use only these, best matches first):\n")
	sb.Write(aj)
	sb.WriteString("\n\nWeatherByDate:\n")
	sb.Write(wj)
	sb.WriteString("\n\nReturn ONLY the TravelItinerary JSON as specified.")
	return sb.String(), nil
}

func decodeItineraryReply(resp string) (*plan_models.TravelItinerary, error) {
	var itinerary plan_models.TravelItinerary

	raw, err := utils.ExtractJSONObject(resp)
	if err != nil || json.Unmarshal([]byte(raw), &itinerary) != nil {
		itinerary = plan_models.TravelItinerary{}
		if err := json.Unmarshal([]byte(utils.RepairJSON(resp)), &itinerary); err != nil {
			return nil, fmt.Errorf("itinerary reply is not JSON: %v: %w", err, utils.ErrSchemaViolation)
		}
	}

	if err := itinerary.Validate(); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func attachWeather(itinerary *plan_models.TravelItinerary, snapshot Catalog) {
	for i := range itinerary.Days {
		if w, ok := snapshot.Weather[itinerary.Days[i].Date]; ok {
			w := w
			itinerary.Days[i].Weather = &w
		}
	}
}
