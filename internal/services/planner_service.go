package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"agentsville/internal/models/db_models"
	"agentsville/internal/models/plan_models"
	"agentsville/internal/repositories"
	"agentsville/pkg/llm"
	"agentsville/pkg/utils"
)

const maxPageSize = 100

type PlanRequest struct {
	Vacation      plan_models.VacationInfo
	Feedback      string
	Revise        bool
	MaxIterations int
}

type PlanOutcome struct {
	RunID             string                       `json:"run_id,omitempty"`
	Status            db_models.RunStatus          `json:"status"`
	InitialPlan       *plan_models.TravelItinerary `json:"initial_plan"`
	InitialEvaluation plan_models.EvaluationResult `json:"initial_evaluation"`
	Revision          *RevisionResult              `json:"revision,omitempty"`
	Plan              *plan_models.TravelItinerary `json:"plan"`
	Evaluation        plan_models.EvaluationResult `json:"evaluation"`
}

type EvaluateRequest struct {
	Plan         *plan_models.TravelItinerary
	Vacation     plan_models.VacationInfo
	Feedback     string
	PostRevision bool
}

type PlannerServiceInterface interface {
	Plan(ctx context.Context, req PlanRequest) (*PlanOutcome, error)
	Evaluate(ctx context.Context, req EvaluateRequest) (plan_models.EvaluationResult, error)
	ListRuns(ctx context.Context, page, pageSize int) ([]db_models.ItineraryRun, error)
	GetRun(ctx context.Context, runID string) (*db_models.ItineraryRun, error)
	SimilarRuns(ctx context.Context, info plan_models.VacationInfo, limit int) ([]db_models.RunWithSimilarity, error)
}

type PlannerService struct {
	generator ItineraryServiceInterface
	validator ValidatorServiceInterface
	revision  RevisionServiceInterface
	catalog   CatalogServiceInterface
	runRepo   repositories.IItineraryRunRepository
	embedder  llm.Embedder
	logger    *zap.Logger
}

func NewPlannerService(
	generator ItineraryServiceInterface,
	validator ValidatorServiceInterface,
	revision RevisionServiceInterface,
	catalog CatalogServiceInterface,
	runRepo repositories.IItineraryRunRepository,
	embedder llm.Embedder,
	logger *zap.Logger,
) PlannerServiceInterface {
	return &PlannerService{
		generator: generator,
		validator: validator,
		revision:  revision,
		catalog:   catalog,
		runRepo:   runRepo,
		embedder:  embedder,
		logger:    logger,
	}
}

// Plan runs generate, evaluate, revise when needed, and a confirming
// evaluation. The run is persisted; a storage failure is logged and leaves
// RunID empty.
func (p *PlannerService) Plan(ctx context.Context, req PlanRequest) (*PlanOutcome, error) {
	if err := req.Vacation.Validate(); err != nil {
		return nil, err
	}

	initial, err := p.generator.Generate(ctx, req.Vacation)
	if err != nil {
		return nil, err
	}

	snapshot, err := p.catalog.Snapshot(ctx, req.Vacation)
	if err != nil {
		return nil, err
	}

	outcome := &PlanOutcome{
		InitialPlan: initial,
		InitialEvaluation: p.validator.Evaluate(EvaluationInput{
			Plan:     initial,
			Vacation: req.Vacation,
			Catalog:  snapshot,
			Feedback: req.Feedback,
		}),
		Plan: initial,
	}
	outcome.Evaluation = outcome.InitialEvaluation

	needsRevision := !outcome.InitialEvaluation.AllPassed() || strings.TrimSpace(req.Feedback) != ""
	if needsRevision && req.Revise {
		rev, err := p.revision.Revise(ctx, RevisionRequest{
			Vacation:      req.Vacation,
			Plan:          initial,
			Feedback:      req.Feedback,
			MaxIterations: req.MaxIterations,
		})
		if err != nil {
			return nil, err
		}
		outcome.Revision = rev
		outcome.Plan = rev.LatestPlan
		if rev.FinalPlan != nil {
			outcome.Plan = rev.FinalPlan
		}
		outcome.Evaluation = p.validator.Evaluate(EvaluationInput{
			Plan:         outcome.Plan,
			Vacation:     req.Vacation,
			Catalog:      snapshot,
			Feedback:     req.Feedback,
			PostRevision: true,
		})
	}

	switch {
	case outcome.Revision != nil && outcome.Revision.Status == StatusIncomplete:
		outcome.Status = db_models.RunStatusIncomplete
	case outcome.Evaluation.AllPassed():
		outcome.Status = db_models.RunStatusValidated
	default:
		outcome.Status = db_models.RunStatusFailedValidation
	}

	if runID, err := p.persist(ctx, req, outcome); err != nil {
		p.logger.Warn("run not persisted", zap.Error(err))
	} else {
		outcome.RunID = runID
	}

	p.logger.Info("plan finished",
		zap.String("status", string(outcome.Status)),
		zap.String("run_id", outcome.RunID),
		zap.Int("failed_rules", len(outcome.Evaluation.Failures())),
	)
	return outcome, nil
}

func (p *PlannerService) persist(ctx context.Context, req PlanRequest, outcome *PlanOutcome) (string, error) {
	initialJSON, err := json.Marshal(outcome.InitialPlan)
	if err != nil {
		return "", err
	}
	finalJSON, err := json.Marshal(outcome.Plan)
	if err != nil {
		return "", err
	}
	evalJSON, err := json.Marshal(outcome.Evaluation)
	if err != nil {
		return "", err
	}

	interests := make([]string, 0)
	for _, in := range req.Vacation.AllInterests() {
		interests = append(interests, string(in))
	}

	run := &db_models.ItineraryRun{
		City:         req.Vacation.City,
		StartDate:    req.Vacation.StartDate,
		EndDate:      req.Vacation.EndDate,
		Travelers:    req.Vacation.TravelerNames(),
		Interests:    interests,
		BudgetAmount: req.Vacation.BudgetAmount,
		Currency:     req.Vacation.BudgetCurrency,
		Feedback:     req.Feedback,
		Status:       outcome.Status,
		InitialPlan:  datatypes.JSON(initialJSON),
		FinalPlan:    datatypes.JSON(finalJSON),
		Evaluation:   datatypes.JSON(evalJSON),
	}
	if outcome.Revision != nil {
		run.Iterations = outcome.Revision.Iterations
	}

	if vec, err := p.embedder.Embed(ctx, tripText(req.Vacation)); err != nil {
		p.logger.Warn("trip embedding failed", zap.Error(err))
	} else {
		run.Embedding = &vec
	}

	if err := p.runRepo.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID.String(), nil
}

func (p *PlannerService) Evaluate(ctx context.Context, req EvaluateRequest) (plan_models.EvaluationResult, error) {
	if err := req.Vacation.Validate(); err != nil {
		return plan_models.EvaluationResult{}, err
	}
	if req.Plan == nil {
		return plan_models.EvaluationResult{}, fmt.Errorf("itinerary is required: %w", utils.ErrInvalidInput)
	}

	snapshot, err := p.catalog.Snapshot(ctx, req.Vacation)
	if err != nil {
		return plan_models.EvaluationResult{}, err
	}
	return p.validator.Evaluate(EvaluationInput{
		Plan:         req.Plan,
		Vacation:     req.Vacation,
		Catalog:      snapshot,
		Feedback:     req.Feedback,
		PostRevision: req.PostRevision,
	}), nil
}

func (p *PlannerService) ListRuns(ctx context.Context, page, pageSize int) ([]db_models.ItineraryRun, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}
	return p.runRepo.ListRuns(ctx, page, pageSize)
}

func (p *PlannerService) GetRun(ctx context.Context, runID string) (*db_models.ItineraryRun, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, utils.ErrInvalidInput
	}
	return p.runRepo.GetRunByID(ctx, runID)
}

func (p *PlannerService) SimilarRuns(ctx context.Context, info plan_models.VacationInfo, limit int) ([]db_models.RunWithSimilarity, error) {
	if limit < 1 || limit > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}
	vec, err := p.embedder.Embed(ctx, tripText(info))
	if err != nil {
		return nil, fmt.Errorf("embed trip: %v: %w", err, utils.ErrUnexpectedBehaviorOfAI)
	}
	return p.runRepo.SimilarRuns(ctx, vec, limit)
}

func tripText(info plan_models.VacationInfo) string {
	parts := []string{info.City}
	for _, in := range info.AllInterests() {
		parts = append(parts, string(in))
	}
	return strings.Join(parts, " ")
}
