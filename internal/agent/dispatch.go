package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

type ActivityLister interface {
	ListByDate(ctx context.Context, date, city string) ([]plan_models.Activity, error)
}

type PlanEvaluator interface {
	EvaluatePlan(ctx context.Context, plan *plan_models.TravelItinerary) (plan_models.EvaluationResult, error)
}

// State is what the dispatcher can see of the loop.
type State struct {
	Plan *plan_models.TravelItinerary
	City string
}

// Observation is the outcome of one tool call. Plan, when set, is a full
// replacement for the working plan.
type Observation struct {
	Text       string
	Plan       *plan_models.TravelItinerary
	Evaluation *plan_models.EvaluationResult
	Final      bool
	Message    string
	Err        error
}

type Dispatcher struct {
	calculator *Calculator
	activities ActivityLister
	evaluator  PlanEvaluator
}

func NewDispatcher(calculator *Calculator, activities ActivityLister, evaluator PlanEvaluator) *Dispatcher {
	return &Dispatcher{
		calculator: calculator,
		activities: activities,
		evaluator:  evaluator,
	}
}

// Dispatch runs one action to completion. Tool failures are reported in the
// observation, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, state State) Observation {
	switch a := action.(type) {
	case ComputeExpression:
		return d.compute(ctx, a)
	case FetchActivities:
		return d.fetch(ctx, a, state)
	case RunValidator:
		return d.validate(ctx, a, state)
	case Finalize:
		return d.finalize(a)
	default:
		return failed(ToolName("unknown"), fmt.Errorf("%w %T", ErrUnknownTool, action))
	}
}

func (d *Dispatcher) compute(ctx context.Context, a ComputeExpression) Observation {
	if a.Expression == "" {
		if a.Itinerary == nil {
			return failed(a.Tool(), fmt.Errorf("nothing to compute: %w", utils.ErrInvalidInput))
		}
		plan := a.Itinerary.Clone()
		plan.TotalCost = float64(plan.SumPriceCents()) / 100
		return Observation{
			Text: render(map[string]any{
				"ok":                true,
				"total_cost":        plan.TotalCost,
				"updated_itinerary": plan,
				"message":           fmt.Sprintf("Calculated total cost: %s %s", utils.FormatCents(plan.SumPriceCents()), plan.Currency),
			}),
			Plan: plan,
		}
	}

	value, err := d.calculator.Evaluate(ctx, a.Expression)
	if err != nil {
		return failed(a.Tool(), err)
	}
	return Observation{Text: render(map[string]any{
		"ok":         true,
		"expression": a.Expression,
		"result":     value,
	})}
}

func (d *Dispatcher) fetch(ctx context.Context, a FetchActivities, state State) Observation {
	city := a.City
	if city == "" {
		city = state.City
	}
	if city == "" {
		city = plan_models.DefaultCity
	}

	acts, err := d.activities.ListByDate(ctx, a.Date, city)
	if err != nil {
		return failed(a.Tool(), err)
	}
	return Observation{Text: render(map[string]any{
		"ok":         true,
		"date":       a.Date,
		"activities": acts,
		"message":    fmt.Sprintf("Retrieved %d activities for %s in %s", len(acts), a.Date, city),
	})}
}

func (d *Dispatcher) validate(ctx context.Context, a RunValidator, state State) Observation {
	target := state.Plan
	var replacement *plan_models.TravelItinerary
	if a.Itinerary != nil {
		replacement = a.Itinerary.Clone()
		target = replacement
	}
	if target == nil {
		return failed(a.Tool(), fmt.Errorf("no itinerary to evaluate: %w", utils.ErrInvalidInput))
	}

	result, err := d.evaluator.EvaluatePlan(ctx, target)
	if err != nil {
		return failed(a.Tool(), err)
	}
	return Observation{
		Text: render(map[string]any{
			"ok":         true,
			"all_passed": result.AllPassed(),
			"outcomes":   result.Outcomes,
		}),
		Plan:       replacement,
		Evaluation: &result,
	}
}

func (d *Dispatcher) finalize(a Finalize) Observation {
	if err := a.Itinerary.Validate(); err != nil {
		return failed(a.Tool(), err)
	}
	return Observation{
		Text: render(map[string]any{
			"ok":      true,
			"message": a.Message,
		}),
		Plan:    a.Itinerary.Clone(),
		Final:   true,
		Message: a.Message,
	}
}

func failed(tool ToolName, cause error) Observation {
	err := fmt.Errorf("%s: %w: %w", tool, utils.ErrToolExecution, cause)
	return Observation{
		Text: fmt.Sprintf("Tool error: %v", err),
		Err:  err,
	}
}

func render(payload map[string]any) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(b)
}
