package agent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

var ErrUnknownTool = errors.New("unknown tool")

var (
	actionMarker  = regexp.MustCompile(`(?i)ACTION\s*:`)
	thoughtMarker = regexp.MustCompile(`(?is)THOUGHT\s*:\s*(.*?)\s*(?:ACTION\s*:|$)`)
)

// ParseOutcome is the result of reading one model reply. Exactly one of
// Action and Err is set.
type ParseOutcome struct {
	Action   Action
	Thought  string
	Repaired bool
	Err      error
}

type toolCall struct {
	ToolName  string          `json:"tool_name"`
	Arguments json.RawMessage `json:"arguments"`
}

type computeArgs struct {
	Expression string          `json:"expression"`
	Itinerary  json.RawMessage `json:"itinerary"`
}

type fetchArgs struct {
	Date    string `json:"date"`
	DateStr string `json:"date_str"`
	City    string `json:"city"`
}

type evalArgs struct {
	Itinerary json.RawMessage `json:"itinerary"`
}

type finalArgs struct {
	Message        string          `json:"message"`
	FinalItinerary json.RawMessage `json:"final_itinerary"`
	Itinerary      json.RawMessage `json:"itinerary"`
}

// ParseAction reads THOUGHT and ACTION sections from a reply. The ACTION JSON
// is parsed strictly first; if that fails, one RepairJSON pass is attempted.
func ParseAction(text string) ParseOutcome {
	out := ParseOutcome{Thought: extractThought(text)}

	segment := text
	if loc := actionMarker.FindStringIndex(text); loc != nil {
		segment = text[loc[1]:]
	}

	call, repaired, err := readToolCall(segment)
	out.Repaired = repaired
	if err != nil {
		out.Err = err
		return out
	}

	action, err := decodeAction(call)
	if err != nil {
		out.Err = err
		return out
	}
	out.Action = action
	return out
}

func readToolCall(segment string) (toolCall, bool, error) {
	var call toolCall
	if raw, err := utils.ExtractJSONObject(segment); err == nil {
		if err := json.Unmarshal([]byte(raw), &call); err == nil {
			return call, false, nil
		}
	}

	call = toolCall{}
	if err := json.Unmarshal([]byte(utils.RepairJSON(segment)), &call); err != nil {
		return toolCall{}, true, fmt.Errorf("could not parse ACTION JSON: %v: %w", err, utils.ErrSchemaViolation)
	}
	return call, true, nil
}

func extractThought(text string) string {
	m := thoughtMarker.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func decodeAction(call toolCall) (Action, error) {
	if strings.TrimSpace(call.ToolName) == "" {
		return nil, fmt.Errorf("tool_name is missing: %w", utils.ErrSchemaViolation)
	}
	tool, ok := LookupTool(call.ToolName)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTool, call.ToolName)
	}

	args := call.Arguments
	if isEmptyJSON(args) {
		args = json.RawMessage("{}")
	}

	switch tool {
	case ToolComputeExpression:
		var a computeArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("%s arguments: %v: %w", tool, err, utils.ErrSchemaViolation)
		}
		itinerary, err := decodeItinerary(a.Itinerary)
		if err != nil {
			return nil, fmt.Errorf("%s itinerary: %w", tool, err)
		}
		if strings.TrimSpace(a.Expression) == "" && itinerary == nil {
			return nil, fmt.Errorf("%s needs an expression or an itinerary: %w", tool, utils.ErrSchemaViolation)
		}
		return ComputeExpression{Expression: a.Expression, Itinerary: itinerary}, nil

	case ToolFetchActivities:
		var a fetchArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("%s arguments: %v: %w", tool, err, utils.ErrSchemaViolation)
		}
		date := a.Date
		if date == "" {
			date = a.DateStr
		}
		if strings.TrimSpace(date) == "" {
			return nil, fmt.Errorf("%s needs a date: %w", tool, utils.ErrSchemaViolation)
		}
		return FetchActivities{Date: strings.TrimSpace(date), City: strings.TrimSpace(a.City)}, nil

	case ToolRunValidator:
		var a evalArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("%s arguments: %v: %w", tool, err, utils.ErrSchemaViolation)
		}
		itinerary, err := decodeItinerary(a.Itinerary)
		if err != nil {
			return nil, fmt.Errorf("%s itinerary: %w", tool, err)
		}
		return RunValidator{Itinerary: itinerary}, nil

	case ToolFinalize:
		var a finalArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("%s arguments: %v: %w", tool, err, utils.ErrSchemaViolation)
		}
		raw := a.FinalItinerary
		if isEmptyJSON(raw) {
			raw = a.Itinerary
		}
		if isEmptyJSON(raw) {
			return nil, fmt.Errorf("%s needs final_itinerary: %w", tool, utils.ErrSchemaViolation)
		}
		itinerary, err := decodeItinerary(raw)
		if err != nil {
			return nil, fmt.Errorf("%s itinerary: %w", tool, err)
		}
		return Finalize{Message: a.Message, Itinerary: itinerary}, nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownTool, call.ToolName)
}

// decodeItinerary returns nil for an absent payload and an error wrapping
// ErrSchemaViolation for one that is not a well-formed plan.
func decodeItinerary(raw json.RawMessage) (*plan_models.TravelItinerary, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}
	var it plan_models.TravelItinerary
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, fmt.Errorf("%v: %w", err, utils.ErrSchemaViolation)
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return &it, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
