package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"agentsville/internal/agent"
	"agentsville/internal/models/plan_models"
	"agentsville/internal/repositories"
	"agentsville/pkg/llm"
	"agentsville/pkg/utils"
)

type RevisionStatus string

const (
	StatusCompleted  RevisionStatus = "completed"
	StatusIncomplete RevisionStatus = "incomplete"
)

type LoopState string

const (
	StateAwaitingAction      LoopState = "AWAITING_ACTION"
	StateActionDispatched    LoopState = "ACTION_DISPATCHED"
	StateObservationRecorded LoopState = "OBSERVATION_RECORDED"
	StateTerminated          LoopState = "TERMINATED"
)

const DefaultMaxIterations = 6

// Step is one THOUGHT -> ACTION -> OBSERVATION turn of the loop.
type Step struct {
	Iteration   int            `json:"iteration"`
	Thought     string         `json:"thought,omitempty"`
	Tool        agent.ToolName `json:"tool,omitempty"`
	Repaired    bool           `json:"repaired,omitempty"`
	Observation string         `json:"observation"`
	Error       string         `json:"error,omitempty"`
}

type RevisionRequest struct {
	Vacation      plan_models.VacationInfo
	Plan          *plan_models.TravelItinerary
	Feedback      string
	MaxIterations int
}

type RevisionResult struct {
	Status         RevisionStatus                `json:"status"`
	FinalPlan      *plan_models.TravelItinerary  `json:"final_plan,omitempty"`
	LatestPlan     *plan_models.TravelItinerary  `json:"latest_plan"`
	Message        string                        `json:"message,omitempty"`
	Iterations     int                           `json:"iterations"`
	LastEvaluation *plan_models.EvaluationResult `json:"last_evaluation,omitempty"`
	Steps          []Step                        `json:"steps"`
}

// Err reports ErrIterationExhausted when the loop ran out of iterations.
func (r *RevisionResult) Err() error {
	if r.Status == StatusIncomplete {
		return fmt.Errorf("after %d iterations: %w", r.Iterations, utils.ErrIterationExhausted)
	}
	return nil
}

type RevisionServiceInterface interface {
	Revise(ctx context.Context, req RevisionRequest) (*RevisionResult, error)
}

type RevisionService struct {
	client        llm.ReasoningClient
	catalog       CatalogServiceInterface
	validator     ValidatorServiceInterface
	activityRepo  repositories.IActivityRepository
	calculator    *agent.Calculator
	maxIterations int
	temperature   float32
	logger        *zap.Logger
}

func NewRevisionService(
	client llm.ReasoningClient,
	catalog CatalogServiceInterface,
	validator ValidatorServiceInterface,
	activityRepo repositories.IActivityRepository,
	calculator *agent.Calculator,
	maxIterations int,
	temperature float32,
	logger *zap.Logger,
) RevisionServiceInterface {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &RevisionService{
		client:        client,
		catalog:       catalog,
		validator:     validator,
		activityRepo:  activityRepo,
		calculator:    calculator,
		maxIterations: maxIterations,
		temperature:   temperature,
		logger:        logger,
	}
}

// runEvaluator evaluates plans for one revision run, feedback included.
type runEvaluator struct {
	validator ValidatorServiceInterface
	vacation  plan_models.VacationInfo
	catalog   Catalog
	feedback  string
}

func (e runEvaluator) EvaluatePlan(_ context.Context, plan *plan_models.TravelItinerary) (plan_models.EvaluationResult, error) {
	return e.validator.Evaluate(EvaluationInput{
		Plan:         plan,
		Vacation:     e.vacation,
		Catalog:      e.catalog,
		Feedback:     e.feedback,
		PostRevision: true,
	}), nil
}

// Revise runs the ReAct loop until an accepted finalize or the iteration cap.
// Only context cancellation and invalid input are returned as errors; every
// other failure becomes a step in the transcript.
func (s *RevisionService) Revise(ctx context.Context, req RevisionRequest) (*RevisionResult, error) {
	if err := req.Vacation.Validate(); err != nil {
		return nil, err
	}
	if req.Plan == nil {
		return nil, fmt.Errorf("revision needs an itinerary: %w", utils.ErrInvalidInput)
	}
	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = s.maxIterations
	}

	snapshot, err := s.catalog.Snapshot(ctx, req.Vacation)
	if err != nil {
		return nil, err
	}
	dispatcher := agent.NewDispatcher(s.calculator, s.activityRepo, runEvaluator{
		validator: s.validator,
		vacation:  req.Vacation,
		catalog:   snapshot,
		feedback:  req.Feedback,
	})

	working := req.Plan.Clone()
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: agent.SystemPrompt()},
		{Role: llm.RoleUser, Content: agent.KickoffPrompt(req.Vacation, working, req.Feedback)},
	}
	result := &RevisionResult{Status: StatusIncomplete}

	for iter := 1; iter <= maxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("revision stopped at iteration %d: %w", iter, err)
		}
		result.Iterations = iter
		s.transition(iter, StateAwaitingAction, "")

		resp, err := s.client.Complete(ctx, llm.CompletionRequest{
			Messages:    messages,
			Temperature: s.temperature,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("revision stopped at iteration %d: %w", iter, ctxErr)
			}
			s.logger.Warn("reasoning call failed", zap.Int("iteration", iter), zap.Error(err))
			result.Steps = append(result.Steps, Step{
				Iteration:   iter,
				Observation: "reasoning call failed",
				Error:       err.Error(),
			})
			continue
		}
		messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: resp})

		parsed := agent.ParseAction(resp)
		if parsed.Err != nil {
			text := fmt.Sprintf("Could not parse ACTION. Error: %v. Please retry with one ACTION in the exact JSON format.", parsed.Err)
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: "OBSERVATION: " + text})
			result.Steps = append(result.Steps, Step{
				Iteration:   iter,
				Thought:     parsed.Thought,
				Repaired:    parsed.Repaired,
				Observation: text,
				Error:       parsed.Err.Error(),
			})
			s.observe(iter, "", text)
			continue
		}

		tool := parsed.Action.Tool()
		s.transition(iter, StateActionDispatched, tool)
		obs := dispatcher.Dispatch(ctx, parsed.Action, agent.State{Plan: working, City: req.Vacation.City})
		s.transition(iter, StateObservationRecorded, tool)

		if obs.Plan != nil {
			working = obs.Plan
		}
		if obs.Evaluation != nil {
			result.LastEvaluation = obs.Evaluation
		}

		step := Step{
			Iteration:   iter,
			Thought:     parsed.Thought,
			Tool:        tool,
			Repaired:    parsed.Repaired,
			Observation: obs.Text,
		}
		if obs.Err != nil {
			step.Error = obs.Err.Error()
		}
		result.Steps = append(result.Steps, step)
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: "OBSERVATION: " + obs.Text})
		s.observe(iter, tool, obs.Text)

		if obs.Final {
			result.Status = StatusCompleted
			result.FinalPlan = working.Clone()
			result.Message = obs.Message
			break
		}
	}

	result.LatestPlan = working
	s.transition(result.Iterations, StateTerminated, "")
	s.logger.Info("revision finished",
		zap.String("status", string(result.Status)),
		zap.Int("iterations", result.Iterations),
	)
	return result, nil
}

func (s *RevisionService) transition(iter int, state LoopState, tool agent.ToolName) {
	s.logger.Debug("revision state",
		zap.Int("iteration", iter),
		zap.String("state", string(state)),
		zap.String("tool", string(tool)),
	)
}

func (s *RevisionService) observe(iter int, tool agent.ToolName, text string) {
	s.logger.Info("observation",
		zap.Int("iteration", iter),
		zap.String("tool", string(tool)),
		zap.String("state", string(StateObservationRecorded)),
		zap.String("observation", truncate(text, 300)),
	)
}
