package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

type toolSpec struct {
	Name        ToolName
	Description string
	Parameters  map[string]any
}

var toolSpecs = []toolSpec{
	{
		Name: ToolComputeExpression,
		Description: "Evaluate an arithmetic expression (numbers, + - * / and parentheses). " +
			"Pass an itinerary instead of an expression to recompute its total_cost from activity prices; " +
			"the updated itinerary replaces the current one.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{"type": "string", "description": "e.g. 60 + 15 + 0"},
				"itinerary":  map[string]any{"type": "object", "description": "TravelItinerary JSON"},
			},
		},
	},
	{
		Name:        ToolFetchActivities,
		Description: "Retrieve the activities available on a date in the city.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date": map[string]any{"type": "string", "description": "Date in YYYY-MM-DD"},
				"city": map[string]any{"type": "string", "description": "City name", "default": "AgentsVille"},
			},
			"required": []string{"date"},
		},
	},
	{
		Name: ToolRunValidator,
		Description: "Evaluate an itinerary against every rule: dates and city, cost sum, budget, " +
			"activity existence, traveler interests, weather and traveler feedback. " +
			"A supplied itinerary replaces the current one; without it the current itinerary is evaluated.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"itinerary": map[string]any{"type": "object", "description": "Full TravelItinerary JSON"},
			},
		},
	},
	{
		Name:        ToolFinalize,
		Description: "Finish the revision with the final itinerary. Must include the complete itinerary JSON.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message":         map[string]any{"type": "string", "description": "Final message to the travelers"},
				"final_itinerary": map[string]any{"type": "object", "description": "Final TravelItinerary JSON"},
			},
			"required": []string{"message", "final_itinerary"},
		},
	},
}

// ToolCatalog lists every tool with its parameter schema.
func ToolCatalog() string {
	lines := make([]string, 0, len(toolSpecs))
	for _, spec := range toolSpecs {
		schema, _ := json.Marshal(spec.Parameters)
		lines = append(lines, fmt.Sprintf("- %s: %s\n  parameters JSON schema: %s", spec.Name, spec.Description, schema))
	}
	return strings.Join(lines, "\n")
}

// SystemPrompt is the instruction for the revision agent.
func SystemPrompt() string {
	return strings.TrimSpace(fmt.Sprintf(`
You are ItineraryRevisionAgent, an assistant that refines travel itineraries for AgentsVille using a THOUGHT -> ACTION -> OBSERVATION cycle.

Task:
- First, call %[1]s to see which rules the current itinerary fails.
- Fix failures by replacing activities with ones returned by %[2]s. Never invent activity ids.
- Every change is a complete new itinerary, never a patch. Keep total_cost equal to the sum of prices.
- Call %[1]s again on the revised itinerary, then call %[3]s when every rule passes.

Available tools (name, purpose, parameters):
%[4]s

Action format (exact JSON on a single line after the word ACTION:):
{"tool_name": "<tool name>", "arguments": {"arg1": "value1"}}

Respond with a single message containing both sections:
THOUGHT: your reasoning about what to do next.
ACTION: the JSON tool call.
Only one ACTION per response.
`, ToolRunValidator, ToolFetchActivities, ToolFinalize, ToolCatalog()))
}

// KickoffPrompt carries the trip, the current itinerary and the travelers' feedback.
func KickoffPrompt(vacation, itinerary any, feedback string) string {
	vj, _ := json.MarshalIndent(vacation, "", "  ")
	ij, _ := json.MarshalIndent(itinerary, "", "  ")

	var sb strings.Builder
	sb.WriteString("Vacation info:\n")
	sb.Write(vj)
	sb.WriteString("\n\nCurrent itinerary:\n")
	sb.Write(ij)
	if strings.TrimSpace(feedback) != "" {
		sb.WriteString("\n\nTraveler feedback:\n")
		sb.WriteString(strings.TrimSpace(feedback))
	}
	sb.WriteString(fmt.Sprintf("\n\nStart with %s, iterate as needed, and run it again before %s.", ToolRunValidator, ToolFinalize))
	return sb.String()
}
