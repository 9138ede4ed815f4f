package request_models

import "agentsville/internal/models/plan_models"

type PlanItineraryRequest struct {
	Vacation plan_models.VacationInfo `json:"vacation"`
	Feedback string                   `json:"feedback"`
	// Revise defaults to true when omitted.
	Revise        *bool `json:"revise"`
	MaxIterations int   `json:"max_iterations" binding:"gte=0,lte=20"`
}

func (r PlanItineraryRequest) ShouldRevise() bool {
	return r.Revise == nil || *r.Revise
}

type EvaluateItineraryRequest struct {
	Vacation     plan_models.VacationInfo     `json:"vacation"`
	Itinerary    *plan_models.TravelItinerary `json:"itinerary" binding:"required"`
	Feedback     string                       `json:"feedback"`
	PostRevision bool                         `json:"post_revision"`
}

type ReviseItineraryRequest struct {
	Vacation      plan_models.VacationInfo     `json:"vacation"`
	Itinerary     *plan_models.TravelItinerary `json:"itinerary" binding:"required"`
	Feedback      string                       `json:"feedback"`
	MaxIterations int                          `json:"max_iterations" binding:"gte=0,lte=20"`
}

type SimilarRunsRequest struct {
	Vacation plan_models.VacationInfo `json:"vacation"`
	Limit    int                      `json:"limit" binding:"gte=0,lte=100"`
}
