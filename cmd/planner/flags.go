package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

// vacationFlags are shared by plan and evaluate.
type vacationFlags struct {
	start     string
	end       string
	city      string
	travelers []string
	interests string
	budget    float64
	currency  string
}

func (f *vacationFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.start, "start", "", "first day of the trip (YYYY-MM-DD)")
	fl.StringVar(&f.end, "end", "", "last day of the trip (YYYY-MM-DD)")
	fl.StringVar(&f.city, "city", plan_models.DefaultCity, "destination city")
	fl.StringArrayVar(&f.travelers, "traveler", nil, `traveler as "Name=interest,interest" (repeatable)`)
	fl.StringVar(&f.interests, "interests", "", "interests for travelers given without any")
	fl.Float64Var(&f.budget, "budget", 0, "total budget")
	fl.StringVar(&f.currency, "currency", "USD", "budget currency")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func (f *vacationFlags) vacation() (plan_models.VacationInfo, error) {
	defaults, err := plan_models.ParseInterests(f.interests)
	if err != nil {
		return plan_models.VacationInfo{}, err
	}
	travelers, err := parseTravelers(f.travelers, defaults)
	if err != nil {
		return plan_models.VacationInfo{}, err
	}

	info := plan_models.VacationInfo{
		City:           f.city,
		StartDate:      f.start,
		EndDate:        f.end,
		Travelers:      travelers,
		BudgetCurrency: strings.ToUpper(f.currency),
		BudgetAmount:   f.budget,
	}
	return info, info.Validate()
}

// parseTravelers reads "Name=art,music" specs. A bare name takes defaults;
// no specs at all yields a single traveler.
func parseTravelers(specs []string, defaults []plan_models.Interest) ([]plan_models.Traveler, error) {
	if len(specs) == 0 {
		return []plan_models.Traveler{{Name: "Traveler", Interests: defaults}}, nil
	}

	out := make([]plan_models.Traveler, 0, len(specs))
	for _, spec := range specs {
		name, csv, hasInterests := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("traveler %q has no name: %w", spec, utils.ErrInvalidInput)
		}
		interests := defaults
		if hasInterests {
			parsed, err := plan_models.ParseInterests(csv)
			if err != nil {
				return nil, fmt.Errorf("traveler %s: %w", name, err)
			}
			interests = parsed
		}
		out = append(out, plan_models.Traveler{Name: name, Interests: interests})
	}
	return out, nil
}
