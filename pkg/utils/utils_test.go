package utils

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("ignores braces inside strings", func(t *testing.T) {
		got, err := ExtractJSONObject(`THOUGHT: ok ACTION: {"a": {"b": "}"}} trailing`)
		require.NoError(t, err)
		assert.Equal(t, `{"a": {"b": "}"}}`, got)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ExtractJSONObject("nothing here")
		assert.Error(t, err)
	})

	t.Run("unterminated object", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"a": 1`)
		assert.Error(t, err)
	})
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced with trailing comma", "```json\n{\"a\": 1,}\n```", `{"a": 1}`},
		{"truncated nested object", `ACTION: {"tool_name": "run_evals", "arguments": {`, `{"tool_name": "run_evals", "arguments": {}}`},
		{"python literals", `{"ok": True, "x": None, "s": "True"}`, `{"ok": true, "x": null, "s": "True"}`},
		{"trailing comma in array", `{"xs": [1, 2, ], "y": 3}`, `{"xs": [1, 2 ], "y": 3}`},
		{"prose around payload", `Here is the JSON: {"a": "b"} hope it helps`, `{"a": "b"}`},
		{"unterminated string", `{"a": "b`, `{"a": "b"}`},
		{"single quotes", `{'tool_name': 'run_evals', 'arguments': {}}`, `{"tool_name": "run_evals", "arguments": {}}`},
		{"single quotes with inner quotes", `{'msg': 'say "hi"', 'note': 'it\'s fine'}`, `{"msg": "say \"hi\"", "note": "it's fine"}`},
		{"apostrophe in double quotes", `{"note": "it's fine",}`, `{"note": "it's fine"}`},
		{"bare keys", `{tool_name: "run_evals", arguments: {day2: "x"}}`, `{"tool_name": "run_evals", "arguments": {"day2": "x"}}`},
		{"python dict", `{'ok': True, 'x': None}`, `{"ok": true, "x": null}`},
		{"no json at all", "sorry", "sorry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairJSON(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.want != "sorry" {
				assert.True(t, json.Valid([]byte(got)), "repaired output should be valid JSON: %s", got)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, int64(4305), ToCents(43.05))
	assert.Equal(t, int64(10), ToCents(0.1))
	assert.Equal(t, int64(30), ToCents(0.1+0.2))
	assert.Equal(t, "520", FormatCents(52000))
	assert.Equal(t, "43.05", FormatCents(4305))
	assert.Equal(t, "-0.50", FormatCents(-50))
	assert.Equal(t, 12.34, RoundMoney(12.344))
}

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   bool
	}{
		{0, true},
		{43.05, true},
		{MaxAmount, true},
		{-0.01, false},
		{1e17, false},
		{math.NaN(), false},
		{math.Inf(1), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidAmount(tt.amount), "%v", tt.amount)
	}
}

func TestDatesBetween(t *testing.T) {
	start, err := ParseDate("2025-06-10")
	require.NoError(t, err)
	end, err := ParseDate("2025-06-12")
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12"}, DatesBetween(start, end))
	assert.Nil(t, DatesBetween(end, start))

	_, err = ParseDate("06/10/2025")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := CreateToken(secret, "ada", "planner", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Subject)
	assert.Equal(t, "planner", claims.Role)

	_, err = ValidateToken([]byte("other-secret"), token)
	assert.Error(t, err)

	expired, err := CreateToken(secret, "ada", "planner", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(secret, expired)
	assert.Error(t, err)

	_, err = CreateToken(nil, "ada", "", time.Minute)
	assert.Error(t, err)
}
