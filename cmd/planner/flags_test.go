package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

func TestParseTravelers(t *testing.T) {
	defaults := []plan_models.Interest{plan_models.InterestHiking}

	tests := []struct {
		name    string
		specs   []string
		want    []plan_models.Traveler
		wantErr bool
	}{
		{
			name:  "no specs gives one traveler with defaults",
			specs: nil,
			want:  []plan_models.Traveler{{Name: "Traveler", Interests: defaults}},
		},
		{
			name:  "explicit interests",
			specs: []string{"Yuri=art, tennis", "Hiro=music"},
			want: []plan_models.Traveler{
				{Name: "Yuri", Interests: []plan_models.Interest{plan_models.InterestArt, plan_models.InterestTennis}},
				{Name: "Hiro", Interests: []plan_models.Interest{plan_models.InterestMusic}},
			},
		},
		{
			name:  "bare name takes defaults",
			specs: []string{"Ada"},
			want:  []plan_models.Traveler{{Name: "Ada", Interests: defaults}},
		},
		{
			name:  "empty interest list",
			specs: []string{"Ada="},
			want:  []plan_models.Traveler{{Name: "Ada"}},
		},
		{name: "unknown interest", specs: []string{"Ada=knitting"}, wantErr: true},
		{name: "missing name", specs: []string{"=art"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTravelers(tt.specs, defaults)
			if tt.wantErr {
				assert.ErrorIs(t, err, utils.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVacationFlags(t *testing.T) {
	f := vacationFlags{
		start:     "2025-06-10",
		end:       "2025-06-12",
		city:      plan_models.DefaultCity,
		travelers: []string{"Yuri=art"},
		budget:    130,
		currency:  "usd",
	}
	info, err := f.vacation()
	require.NoError(t, err)
	assert.Equal(t, "USD", info.BudgetCurrency)
	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12"}, info.Dates())

	f.end = "2025-06-01"
	_, err = f.vacation()
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	f.end = "2025-06-12"
	f.interests = "art,unknown"
	_, err = f.vacation()
	assert.Error(t, err)
}
