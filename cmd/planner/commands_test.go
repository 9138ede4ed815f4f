package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentsville/internal/models/plan_models"
	"agentsville/internal/repositories"
	"agentsville/pkg/utils"
)

// hermeticEnv keeps the host environment out of command tests.
func hermeticEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PLANNER_CONFIG", "POSTGRES_URL", "JWT_SECRET", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("EMBEDDING_PROVIDER", "hash")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), ".env")))
	err := cmd.Execute()
	return out.String(), err
}

func writePlan(t *testing.T, days [][]string) string {
	t.Helper()
	acts, err := repositories.NewActivityRepository()
	require.NoError(t, err)

	plan := plan_models.TravelItinerary{
		City:      plan_models.DefaultCity,
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Travelers: []string{"Yuri", "Hiro"},
		Currency:  "USD",
	}
	for i, ids := range days {
		day := plan_models.DayPlan{Date: []string{"2025-06-10", "2025-06-11", "2025-06-12"}[i]}
		for _, id := range ids {
			act, err := acts.GetByID(context.Background(), id)
			require.NoError(t, err)
			day.Activities = append(day.Activities, *act)
		}
		plan.Days = append(plan.Days, day)
	}
	plan.TotalCost = float64(plan.SumPriceCents()) / 100

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

var passingDays = [][]string{
	{"event-2025-06-10-1", "event-2025-06-10-2"},
	{"event-2025-06-11-0", "event-2025-06-11-2"},
	{"event-2025-06-12-0", "event-2025-06-12-2"},
}

var tripFlags = []string{
	"--start", "2025-06-10", "--end", "2025-06-12",
	"--traveler", "Yuri=art,tennis", "--traveler", "Hiro=music,technology",
}

func TestTokenCommand(t *testing.T) {
	hermeticEnv(t)

	_, err := execute(t, "token")
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	out, err := execute(t, "token", "--subject", "ci")
	require.NoError(t, err)

	claims, err := utils.ValidateToken([]byte("s3cret"), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ci", claims.Subject)
	assert.Equal(t, "planner", claims.Role)
}

func TestCatalogCommands(t *testing.T) {
	hermeticEnv(t)

	out, err := execute(t, "catalog", "activities", "--date", "2025-06-10")
	require.NoError(t, err)
	assert.Contains(t, out, "event-2025-06-10-0")
	assert.Contains(t, out, "Activities on 2025-06-10")

	out, err = execute(t, "catalog", "weather", "--date", "2025-06-12", "--json")
	require.NoError(t, err)
	var w plan_models.Weather
	require.NoError(t, json.Unmarshal([]byte(out), &w))
	assert.Equal(t, "rainy", w.Condition)

	_, err = execute(t, "catalog", "weather", "--date", "2031-01-01")
	assert.ErrorIs(t, err, utils.ErrWeatherNotFound)
}

func TestEvaluateCommand(t *testing.T) {
	hermeticEnv(t)
	path := writePlan(t, passingDays)

	out, err := execute(t, append([]string{"evaluate", "--file", path, "--budget", "130"}, tripFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS budget")
	assert.NotContains(t, out, "FAIL")

	out, err = execute(t, append([]string{"evaluate", "--file", path, "--budget", "100"}, tripFlags...)...)
	assert.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, out, "FAIL budget: total 123 exceeds budget 100 by 23")

	thin := writePlan(t, [][]string{passingDays[0], {"event-2025-06-11-0"}, passingDays[2]})
	out, err = execute(t, append([]string{"evaluate", "--file", thin, "--budget", "130", "--json",
		"--feedback", "at least two activities per day"}, tripFlags...)...)
	assert.ErrorIs(t, err, errChecksFailed)
	var res plan_models.EvaluationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	fb, ok := res.Outcome(plan_models.RuleFeedback)
	require.True(t, ok)
	assert.Equal(t, "day 2 (2025-06-11) has 1 activities, want at least 2", fb.Reason)
}

func TestEvaluateRejectsBadFile(t *testing.T) {
	hermeticEnv(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"city": "AgentsVille", "start_date": "June"}`), 0o600))

	_, err := execute(t, append([]string{"evaluate", "--file", path}, tripFlags...)...)
	assert.ErrorIs(t, err, utils.ErrSchemaViolation)
}

func TestPlanRequiresDates(t *testing.T) {
	hermeticEnv(t)
	_, err := execute(t, "plan", "--traveler", "Yuri=art")
	assert.ErrorContains(t, err, "required flag")
}
