package response_models

import (
	"agentsville/internal/models/db_models"
	"agentsville/internal/models/plan_models"
)

// RunSummary is the list view of a stored run.
type RunSummary struct {
	ID         string              `json:"id"`
	City       string              `json:"city"`
	StartDate  string              `json:"start_date"`
	EndDate    string              `json:"end_date"`
	Travelers  []string            `json:"travelers"`
	Status     db_models.RunStatus `json:"status"`
	Iterations int                 `json:"iterations"`
	CreatedAt  int64               `json:"created_at"`
	Similarity *float64            `json:"similarity,omitempty"`
}

func NewRunSummary(run db_models.ItineraryRun) RunSummary {
	return RunSummary{
		ID:         run.ID.String(),
		City:       run.City,
		StartDate:  run.StartDate,
		EndDate:    run.EndDate,
		Travelers:  []string(run.Travelers),
		Status:     run.Status,
		Iterations: run.Iterations,
		CreatedAt:  run.CreatedAt,
	}
}

func NewRunSummaries(runs []db_models.ItineraryRun) []RunSummary {
	out := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, NewRunSummary(run))
	}
	return out
}

func NewSimilarRunSummaries(runs []db_models.RunWithSimilarity) []RunSummary {
	out := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		s := NewRunSummary(run.ItineraryRun)
		similarity := run.Similarity
		s.Similarity = &similarity
		out = append(out, s)
	}
	return out
}

type EvaluationResponse struct {
	AllPassed bool                     `json:"all_passed"`
	Outcomes  []plan_models.RuleOutcome `json:"outcomes"`
}

func NewEvaluationResponse(res plan_models.EvaluationResult) EvaluationResponse {
	return EvaluationResponse{AllPassed: res.AllPassed(), Outcomes: res.Outcomes}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
