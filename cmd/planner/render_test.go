package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"agentsville/internal/agent"
	"agentsville/internal/models/plan_models"
	"agentsville/internal/services"
)

func TestRenderItinerary(t *testing.T) {
	plan := &plan_models.TravelItinerary{
		City:      plan_models.DefaultCity,
		StartDate: "2025-06-10",
		EndDate:   "2025-06-10",
		Travelers: []string{"Yuri"},
		Currency:  "USD",
		TotalCost: 43.05,
		Days: []plan_models.DayPlan{{
			Date:    "2025-06-10",
			Weather: &plan_models.Weather{Condition: "sunny"},
			Activities: []plan_models.Activity{{
				ActivityID: "event-1",
				Name:       "Gallery walk",
				StartTime:  "2025-06-10 10:00",
				EndTime:    "2025-06-10 12:00",
				Price:      43.05,
			}},
		}},
	}

	out := renderItinerary("Plan", plan)
	assert.Contains(t, out, "2025-06-10 (sunny)")
	assert.Contains(t, out, "10:00-12:00  Gallery walk  43.05 USD")
	assert.Contains(t, out, "Total: 43.05 USD")
	assert.Contains(t, renderItinerary("Plan", nil), "no itinerary")
}

func TestRenderEvaluationAndSteps(t *testing.T) {
	out := renderEvaluation("Checks", plan_models.EvaluationResult{Outcomes: []plan_models.RuleOutcome{
		{Rule: plan_models.RuleCostSum, Passed: true},
		{Rule: plan_models.RuleBudget, Reason: "total 520 exceeds budget 500 by 20"},
	}})
	assert.Contains(t, out, "PASS cost_sum")
	assert.Contains(t, out, "FAIL budget: total 520 exceeds budget 500 by 20")

	out = renderSteps([]services.Step{
		{Iteration: 1, Tool: agent.ToolRunValidator, Thought: "check first"},
		{Iteration: 2, Error: "connection reset"},
	})
	assert.Contains(t, out, "#1 run_evals")
	assert.Contains(t, out, "#2 -")
	assert.Contains(t, out, "connection reset")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "two words", truncate("  two\n words ", 20))
	got := truncate("Café Lumière opens", 4)
	assert.True(t, utf8.ValidString(got), got)
	assert.Equal(t, "Caf...", got)
}

func TestClock(t *testing.T) {
	assert.Equal(t, "09:30", clock("2025-06-10 09:30"))
	assert.Equal(t, "soon", clock("soon"))
}
