package plan_models

import (
	"fmt"
	"strings"

	"agentsville/pkg/utils"
)

const DefaultCity = "AgentsVille"

// MaxTripDays caps the inclusive date window of a trip.
const MaxTripDays = 31

type Traveler struct {
	Name      string     `json:"name" yaml:"name"`
	Interests []Interest `json:"interests" yaml:"interests"`
}

// VacationInfo holds the fixed inputs of a trip: where, when, who and how much.
type VacationInfo struct {
	City           string     `json:"city"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Travelers      []Traveler `json:"travelers"`
	BudgetCurrency string     `json:"budget_currency"`
	BudgetAmount   float64    `json:"budget_amount"`
}

func (v VacationInfo) Validate() error {
	if strings.TrimSpace(v.City) == "" {
		return fmt.Errorf("city is required: %w", utils.ErrInvalidInput)
	}
	start, err := utils.ParseDate(v.StartDate)
	if err != nil {
		return fmt.Errorf("start_date: %w", err)
	}
	end, err := utils.ParseDate(v.EndDate)
	if err != nil {
		return fmt.Errorf("end_date: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s: %w", v.EndDate, v.StartDate, utils.ErrInvalidInput)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxTripDays {
		return fmt.Errorf("trip spans %d days, at most %d allowed: %w", days, MaxTripDays, utils.ErrInvalidInput)
	}
	if !utils.ValidAmount(v.BudgetAmount) {
		return fmt.Errorf("budget_amount %v out of range: %w", v.BudgetAmount, utils.ErrInvalidInput)
	}
	if len(v.Travelers) == 0 {
		return fmt.Errorf("at least one traveler is required: %w", utils.ErrInvalidInput)
	}
	for i, t := range v.Travelers {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("traveler %d has no name: %w", i+1, utils.ErrInvalidInput)
		}
	}
	return nil
}

// Dates returns the inclusive date window. Invalid dates yield nil.
func (v VacationInfo) Dates() []string {
	start, err := utils.ParseDate(v.StartDate)
	if err != nil {
		return nil
	}
	end, err := utils.ParseDate(v.EndDate)
	if err != nil {
		return nil
	}
	return utils.DatesBetween(start, end)
}

// AllInterests returns the union of traveler interests in first-seen order.
func (v VacationInfo) AllInterests() []Interest {
	seen := make(map[Interest]bool)
	var out []Interest
	for _, t := range v.Travelers {
		for _, in := range t.Interests {
			if !seen[in] {
				seen[in] = true
				out = append(out, in)
			}
		}
	}
	return out
}

func (v VacationInfo) TravelerNames() []string {
	names := make([]string, 0, len(v.Travelers))
	for _, t := range v.Travelers {
		names = append(names, t.Name)
	}
	return names
}
