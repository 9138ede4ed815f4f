package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentsville/internal/models/plan_models"
	"agentsville/internal/repositories"
	"agentsville/pkg/utils"
)

const validItinerary = `{"city":"AgentsVille","start_date":"2025-06-10","end_date":"2025-06-10","travelers":["Yuri"],"currency":"USD","total_cost":75,
"days":[{"date":"2025-06-10","activities":[
{"activity_id":"event-2025-06-10-0","name":"Salsa Night","start_time":"2025-06-10 19:00","end_time":"2025-06-10 22:00","location":"Plaza","description":"dance","price":60,"related_interests":["dancing","music"]},
{"activity_id":"event-2025-06-10-1","name":"Digital Art Lab","start_time":"2025-06-10 10:00","end_time":"2025-06-10 12:00","location":"Museum","description":"art","price":15,"related_interests":["art","technology"]}]}]}`

func TestLookupTool(t *testing.T) {
	tests := []struct {
		in   string
		want ToolName
		ok   bool
	}{
		{"run_evals", ToolRunValidator, true},
		{"run_evals_tool", ToolRunValidator, true},
		{" Final_Answer_Tool ", ToolFinalize, true},
		{"calculator_tool", ToolComputeExpression, true},
		{"get_activities_by_date_tool", ToolFetchActivities, true},
		{"book_flight", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LookupTool(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseActionStrict(t *testing.T) {
	out := ParseAction("THOUGHT: I should check the plan first.\nACTION: {\"tool_name\": \"run_evals\", \"arguments\": {}}")
	require.NoError(t, out.Err)
	assert.False(t, out.Repaired)
	assert.Equal(t, "I should check the plan first.", out.Thought)
	assert.Equal(t, RunValidator{}, out.Action)
}

func TestParseActionAliasesAndArguments(t *testing.T) {
	out := ParseAction(`ACTION: {"tool_name": "calculator_tool", "arguments": {"expression": "60 + 15"}}`)
	require.NoError(t, out.Err)
	assert.Equal(t, ComputeExpression{Expression: "60 + 15"}, out.Action)

	out = ParseAction(`THOUGHT: need options ACTION: {"tool_name": "get_activities_by_date_tool", "arguments": {"date_str": "2025-06-11"}}`)
	require.NoError(t, out.Err)
	assert.Equal(t, FetchActivities{Date: "2025-06-11"}, out.Action)
	assert.Equal(t, "need options", out.Thought)
}

func TestParseActionRepairsOnce(t *testing.T) {
	t.Run("trailing comma", func(t *testing.T) {
		out := ParseAction(`ACTION: {"tool_name": "run_evals", "arguments": {},}`)
		require.NoError(t, out.Err)
		assert.True(t, out.Repaired)
		assert.Equal(t, ToolRunValidator, out.Action.Tool())
	})

	t.Run("truncated", func(t *testing.T) {
		out := ParseAction(`ACTION: {"tool_name": "get_activities_by_date", "arguments": {"date": "2025-06-10"`)
		require.NoError(t, out.Err)
		assert.True(t, out.Repaired)
		assert.Equal(t, FetchActivities{Date: "2025-06-10"}, out.Action)
	})

	t.Run("python dict", func(t *testing.T) {
		out := ParseAction("THOUGHT: x\nACTION: {'tool_name': 'run_evals', 'arguments': {}}")
		require.NoError(t, out.Err)
		assert.True(t, out.Repaired)
		assert.Equal(t, ToolRunValidator, out.Action.Tool())
	})

	t.Run("bare keys", func(t *testing.T) {
		out := ParseAction(`ACTION: {tool_name: "get_activities_by_date", arguments: {date: "2025-06-11", city: 'AgentsVille'}}`)
		require.NoError(t, out.Err)
		assert.True(t, out.Repaired)
		assert.Equal(t, FetchActivities{Date: "2025-06-11", City: "AgentsVille"}, out.Action)
	})

	t.Run("hopeless", func(t *testing.T) {
		out := ParseAction("THOUGHT: I am done.\nACTION: call the validator please")
		assert.Nil(t, out.Action)
		assert.ErrorIs(t, out.Err, utils.ErrSchemaViolation)
	})
}

func TestParseActionRejects(t *testing.T) {
	out := ParseAction(`ACTION: {"tool_name": "book_flight", "arguments": {}}`)
	assert.ErrorIs(t, out.Err, ErrUnknownTool)

	out = ParseAction(`ACTION: {"arguments": {}}`)
	assert.ErrorIs(t, out.Err, utils.ErrSchemaViolation)

	out = ParseAction(`ACTION: {"tool_name": "get_activities_by_date", "arguments": {"city": "AgentsVille"}}`)
	assert.ErrorIs(t, out.Err, utils.ErrSchemaViolation)
}

func TestParseActionFinalize(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		out := ParseAction(`ACTION: {"tool_name": "final_answer", "arguments": {"message": "Enjoy!", "final_itinerary": ` + validItinerary + `}}`)
		require.NoError(t, out.Err)
		fin, ok := out.Action.(Finalize)
		require.True(t, ok)
		assert.Equal(t, "Enjoy!", fin.Message)
		assert.Equal(t, 2, fin.Itinerary.ActivityCount())
	})

	t.Run("missing itinerary", func(t *testing.T) {
		out := ParseAction(`ACTION: {"tool_name": "final_answer_tool", "arguments": {"message": "Enjoy!"}}`)
		assert.ErrorIs(t, out.Err, utils.ErrSchemaViolation)
	})

	t.Run("not a plan", func(t *testing.T) {
		out := ParseAction(`ACTION: {"tool_name": "final_answer", "arguments": {"message": "x", "final_itinerary": {"city": "AgentsVille", "start_date": "soon"}}}`)
		assert.Nil(t, out.Action)
		assert.ErrorIs(t, out.Err, utils.ErrSchemaViolation)
	})

	t.Run("activity without id", func(t *testing.T) {
		var it plan_models.TravelItinerary
		require.NoError(t, json.Unmarshal([]byte(validItinerary), &it))
		it.Days[0].Activities[0].ActivityID = ""
		raw, err := json.Marshal(map[string]any{
			"tool_name": "final_answer",
			"arguments": map[string]any{"message": "x", "final_itinerary": it},
		})
		require.NoError(t, err)

		out := ParseAction("ACTION: " + string(raw))
		assert.ErrorIs(t, out.Err, utils.ErrSchemaViolation)
	})
}

func TestCalculator(t *testing.T) {
	c := NewCalculator()
	ctx := context.Background()

	tests := []struct {
		expr string
		want float64
	}{
		{"7/2", 3.5},
		{"(60 + 15) * 2", 150},
		{"-3 + 1.5", -1.5},
		{".5 + 1.", 1.5},
		{"60+15+0", 75},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := c.Evaluate(ctx, tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	for _, bad := range []string{"", "os.Exit(1)", "1/0", "2 +", `"a" + "b"`} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := c.Evaluate(ctx, bad)
			assert.Error(t, err)
		})
	}
}

type fakeEvaluator struct {
	result    plan_models.EvaluationResult
	err       error
	evaluated []*plan_models.TravelItinerary
}

func (f *fakeEvaluator) EvaluatePlan(_ context.Context, plan *plan_models.TravelItinerary) (plan_models.EvaluationResult, error) {
	f.evaluated = append(f.evaluated, plan)
	return f.result, f.err
}

func newTestDispatcher(t *testing.T, eval *fakeEvaluator) *Dispatcher {
	t.Helper()
	acts, err := repositories.NewActivityRepository()
	require.NoError(t, err)
	return NewDispatcher(NewCalculator(), acts, eval)
}

func mustItinerary(t *testing.T) *plan_models.TravelItinerary {
	t.Helper()
	var it plan_models.TravelItinerary
	require.NoError(t, json.Unmarshal([]byte(validItinerary), &it))
	return &it
}

func TestDispatchCompute(t *testing.T) {
	d := newTestDispatcher(t, &fakeEvaluator{})
	ctx := context.Background()

	obs := d.Dispatch(ctx, ComputeExpression{Expression: "60 + 15"}, State{})
	require.NoError(t, obs.Err)
	assert.Contains(t, obs.Text, `"result":75`)
	assert.Nil(t, obs.Plan)

	it := mustItinerary(t)
	it.TotalCost = 999
	obs = d.Dispatch(ctx, ComputeExpression{Itinerary: it}, State{})
	require.NoError(t, obs.Err)
	require.NotNil(t, obs.Plan)
	assert.Equal(t, 75.0, obs.Plan.TotalCost)
	assert.Equal(t, 999.0, it.TotalCost)

	obs = d.Dispatch(ctx, ComputeExpression{Expression: "rm -rf /"}, State{})
	assert.ErrorIs(t, obs.Err, utils.ErrToolExecution)
	assert.Contains(t, obs.Text, "Tool error")
}

func TestDispatchFetch(t *testing.T) {
	d := newTestDispatcher(t, &fakeEvaluator{})
	ctx := context.Background()

	obs := d.Dispatch(ctx, FetchActivities{Date: "2025-06-11"}, State{})
	require.NoError(t, obs.Err)
	assert.Contains(t, obs.Text, "event-2025-06-11-0")
	assert.Contains(t, obs.Text, "Retrieved 3 activities")

	obs = d.Dispatch(ctx, FetchActivities{Date: "tomorrow"}, State{})
	assert.ErrorIs(t, obs.Err, utils.ErrToolExecution)
	assert.ErrorIs(t, obs.Err, utils.ErrInvalidInput)
}

func TestDispatchRunValidator(t *testing.T) {
	eval := &fakeEvaluator{result: plan_models.EvaluationResult{Outcomes: []plan_models.RuleOutcome{
		{Rule: plan_models.RuleBudget, Passed: false, Reason: "total 520 exceeds budget 500 by 20"},
	}}}
	d := newTestDispatcher(t, eval)
	ctx := context.Background()
	working := mustItinerary(t)

	obs := d.Dispatch(ctx, RunValidator{}, State{Plan: working})
	require.NoError(t, obs.Err)
	assert.Nil(t, obs.Plan)
	require.NotNil(t, obs.Evaluation)
	assert.False(t, obs.Evaluation.AllPassed())
	assert.Contains(t, obs.Text, "exceeds budget 500 by 20")
	assert.Same(t, working, eval.evaluated[0])

	replacement := mustItinerary(t)
	replacement.Days[0].Activities = replacement.Days[0].Activities[:1]
	obs = d.Dispatch(ctx, RunValidator{Itinerary: replacement}, State{Plan: working})
	require.NoError(t, obs.Err)
	require.NotNil(t, obs.Plan)
	assert.Equal(t, 1, obs.Plan.ActivityCount())

	obs = d.Dispatch(ctx, RunValidator{}, State{})
	assert.ErrorIs(t, obs.Err, utils.ErrToolExecution)

	eval.err = errors.New("boom")
	obs = d.Dispatch(ctx, RunValidator{}, State{Plan: working})
	assert.ErrorIs(t, obs.Err, utils.ErrToolExecution)
}

func TestDispatchFinalize(t *testing.T) {
	d := newTestDispatcher(t, &fakeEvaluator{})
	ctx := context.Background()

	obs := d.Dispatch(ctx, Finalize{Message: "done", Itinerary: mustItinerary(t)}, State{})
	require.NoError(t, obs.Err)
	assert.True(t, obs.Final)
	assert.Equal(t, "done", obs.Message)
	require.NotNil(t, obs.Plan)

	broken := mustItinerary(t)
	broken.StartDate = "June"
	obs = d.Dispatch(ctx, Finalize{Message: "done", Itinerary: broken}, State{})
	assert.False(t, obs.Final)
	assert.ErrorIs(t, obs.Err, utils.ErrToolExecution)
	assert.ErrorIs(t, obs.Err, utils.ErrSchemaViolation)

	obs = d.Dispatch(ctx, Finalize{Message: "done"}, State{})
	assert.False(t, obs.Final)
	assert.ErrorIs(t, obs.Err, utils.ErrSchemaViolation)
}

func TestSystemPromptListsEveryTool(t *testing.T) {
	prompt := SystemPrompt()
	for _, tool := range Tools {
		assert.Contains(t, prompt, string(tool))
	}
	assert.Contains(t, prompt, "ACTION:")

	kick := KickoffPrompt(map[string]string{"city": "AgentsVille"}, mustItinerary(t), "at least two activities per day")
	assert.Contains(t, kick, "Traveler feedback")
	assert.Contains(t, kick, "event-2025-06-10-1")
}
