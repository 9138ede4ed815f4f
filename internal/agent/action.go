// Package agent holds the typed tool set of the revision loop: actions, the
// parser that turns a model reply into one action, and the dispatcher that
// executes it.
package agent

import (
	"strings"

	"agentsville/internal/models/plan_models"
)

type ToolName string

const (
	ToolComputeExpression ToolName = "compute_expression"
	ToolFetchActivities   ToolName = "get_activities_by_date"
	ToolRunValidator      ToolName = "run_evals"
	ToolFinalize          ToolName = "final_answer"
)

// Tools in the order they are presented to the model.
var Tools = []ToolName{
	ToolComputeExpression,
	ToolFetchActivities,
	ToolRunValidator,
	ToolFinalize,
}

var toolAliases = map[string]ToolName{
	"calculator":                  ToolComputeExpression,
	"calculator_tool":             ToolComputeExpression,
	"get_activities_by_date_tool": ToolFetchActivities,
	"run_evals_tool":              ToolRunValidator,
	"final_answer_tool":           ToolFinalize,
}

// LookupTool resolves a canonical tool name or one of its aliases.
func LookupTool(name string) (ToolName, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Tools {
		if string(t) == name {
			return t, true
		}
	}
	t, ok := toolAliases[name]
	return t, ok
}

// Action is one of ComputeExpression, FetchActivities, RunValidator or Finalize.
type Action interface {
	Tool() ToolName
	isAction()
}

// ComputeExpression evaluates an arithmetic expression. With an itinerary
// and no expression it recomputes the itinerary's total cost instead.
type ComputeExpression struct {
	Expression string
	Itinerary  *plan_models.TravelItinerary
}

type FetchActivities struct {
	Date string
	City string
}

// RunValidator evaluates Itinerary, or the working plan when it is nil.
// A non-nil Itinerary replaces the working plan.
type RunValidator struct {
	Itinerary *plan_models.TravelItinerary
}

type Finalize struct {
	Message   string
	Itinerary *plan_models.TravelItinerary
}

func (ComputeExpression) Tool() ToolName { return ToolComputeExpression }
func (FetchActivities) Tool() ToolName   { return ToolFetchActivities }
func (RunValidator) Tool() ToolName      { return ToolRunValidator }
func (Finalize) Tool() ToolName          { return ToolFinalize }

func (ComputeExpression) isAction() {}
func (FetchActivities) isAction()   {}
func (RunValidator) isAction()      {}
func (Finalize) isAction()          {}
