package plan_models

import (
	"fmt"
	"strings"

	"agentsville/pkg/utils"
)

type Setting string

const (
	SettingIndoor  Setting = "indoor"
	SettingOutdoor Setting = "outdoor"
)

type Activity struct {
	ActivityID       string     `json:"activity_id"`
	Name             string     `json:"name"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	Location         string     `json:"location"`
	Description      string     `json:"description"`
	Price            float64    `json:"price"`
	RelatedInterests []Interest `json:"related_interests"`
	Setting          Setting    `json:"setting,omitempty"`
}

// Date returns the YYYY-MM-DD prefix of the start time.
func (a Activity) Date() string {
	if len(a.StartTime) < len(utils.DateLayout) {
		return ""
	}
	return a.StartTime[:len(utils.DateLayout)]
}

type Weather struct {
	Date            string  `json:"date"`
	City            string  `json:"city"`
	Condition       string  `json:"condition"`
	Temperature     float64 `json:"temperature"`
	TemperatureUnit string  `json:"temperature_unit"`
	Description     string  `json:"description"`
}

var inclementConditions = map[string]bool{
	"rainy":        true,
	"thunderstorm": true,
	"snowy":        true,
	"stormy":       true,
}

func (w Weather) Inclement() bool {
	return inclementConditions[strings.ToLower(w.Condition)]
}

type DayPlan struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
	Weather    *Weather   `json:"weather,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// TravelItinerary is the plan. It is only ever replaced as a whole.
type TravelItinerary struct {
	City      string    `json:"city"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Travelers []string  `json:"travelers"`
	Currency  string    `json:"currency"`
	TotalCost float64   `json:"total_cost"`
	Days      []DayPlan `json:"days"`
}

// Validate checks that the itinerary is well formed. Business rules live in
// the validator service.
func (t *TravelItinerary) Validate() error {
	if t == nil {
		return fmt.Errorf("itinerary is missing: %w", utils.ErrSchemaViolation)
	}
	if strings.TrimSpace(t.City) == "" {
		return fmt.Errorf("city is empty: %w", utils.ErrSchemaViolation)
	}
	if _, err := utils.ParseDate(t.StartDate); err != nil {
		return fmt.Errorf("start_date: %v: %w", err, utils.ErrSchemaViolation)
	}
	if _, err := utils.ParseDate(t.EndDate); err != nil {
		return fmt.Errorf("end_date: %v: %w", err, utils.ErrSchemaViolation)
	}
	if !utils.ValidAmount(t.TotalCost) {
		return fmt.Errorf("total_cost %v out of range: %w", t.TotalCost, utils.ErrSchemaViolation)
	}
	for i, day := range t.Days {
		if _, err := utils.ParseDate(day.Date); err != nil {
			return fmt.Errorf("days[%d].date: %v: %w", i, err, utils.ErrSchemaViolation)
		}
		for j, act := range day.Activities {
			if err := act.validate(); err != nil {
				return fmt.Errorf("days[%d].activities[%d]: %v: %w", i, j, err, utils.ErrSchemaViolation)
			}
		}
	}
	return nil
}

func (a Activity) validate() error {
	if strings.TrimSpace(a.ActivityID) == "" {
		return fmt.Errorf("activity_id is empty")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is empty")
	}
	if !utils.ValidAmount(a.Price) {
		return fmt.Errorf("price %v out of range", a.Price)
	}
	if _, err := utils.ParseDateTime(a.StartTime); err != nil {
		return err
	}
	if _, err := utils.ParseDateTime(a.EndTime); err != nil {
		return err
	}
	return nil
}

// SumPriceCents is the arithmetic sum of every activity price, in cents.
func (t *TravelItinerary) SumPriceCents() int64 {
	var total int64
	for _, day := range t.Days {
		for _, act := range day.Activities {
			total += utils.ToCents(act.Price)
		}
	}
	return total
}

func (t *TravelItinerary) ActivityCount() int {
	n := 0
	for _, day := range t.Days {
		n += len(day.Activities)
	}
	return n
}

func (t *TravelItinerary) Clone() *TravelItinerary {
	if t == nil {
		return nil
	}
	out := *t
	out.Travelers = append([]string(nil), t.Travelers...)
	out.Days = make([]DayPlan, len(t.Days))
	for i, day := range t.Days {
		d := day
		d.Activities = make([]Activity, len(day.Activities))
		for j, act := range day.Activities {
			a := act
			a.RelatedInterests = append([]Interest(nil), act.RelatedInterests...)
			d.Activities[j] = a
		}
		if day.Weather != nil {
			w := *day.Weather
			d.Weather = &w
		}
		out.Days[i] = d
	}
	return &out
}
