package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

type ConstraintKind string

const (
	ConstraintMinPerDay   ConstraintKind = "min_activities_per_day"
	ConstraintMaxPerDay   ConstraintKind = "max_activities_per_day"
	ConstraintMaxPrice    ConstraintKind = "max_activity_price"
	ConstraintMinInterest ConstraintKind = "min_interest_activities"
)

// FeedbackConstraint is one checkable requirement extracted from free-text
// traveler feedback.
type FeedbackConstraint struct {
	Kind     ConstraintKind
	N        float64
	Interest plan_models.Interest
}

const numberPattern = `(\d+(?:\.\d+)?|one|two|three|four|five|six|seven|eight|nine|ten)`

var (
	minPerDayPattern   = regexp.MustCompile(`at\s+least\s+` + numberPattern + `\s+activit(?:y|ies)\s+(?:per|a|each|every)\s+day`)
	maxPerDayPattern   = regexp.MustCompile(`(?:at\s+most|no\s+more\s+than)\s+` + numberPattern + `\s+activit(?:y|ies)\s+(?:per|a|each|every)\s+day`)
	maxPricePattern    = regexp.MustCompile(`no\s+(?:single\s+)?activit(?:y|ies)\s+(?:costing\s+)?(?:over|above|more\s+than)\s+\$?` + numberPattern)
	minInterestPattern = regexp.MustCompile(`at\s+least\s+` + numberPattern + `\s+([a-z]+)\s+activit(?:y|ies)`)
)

var numberWords = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

func parseNumber(s string) (float64, bool) {
	if n, ok := numberWords[s]; ok {
		return n, true
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// ParseFeedback extracts every supported constraint from text. An empty
// result means the feedback is not machine-checkable.
func ParseFeedback(text string) []FeedbackConstraint {
	lower := strings.ToLower(text)
	var out []FeedbackConstraint

	for _, m := range minPerDayPattern.FindAllStringSubmatch(lower, -1) {
		if n, ok := parseNumber(m[1]); ok {
			out = append(out, FeedbackConstraint{Kind: ConstraintMinPerDay, N: n})
		}
	}
	for _, m := range maxPerDayPattern.FindAllStringSubmatch(lower, -1) {
		if n, ok := parseNumber(m[1]); ok {
			out = append(out, FeedbackConstraint{Kind: ConstraintMaxPerDay, N: n})
		}
	}
	for _, m := range maxPricePattern.FindAllStringSubmatch(lower, -1) {
		if n, ok := parseNumber(m[1]); ok {
			out = append(out, FeedbackConstraint{Kind: ConstraintMaxPrice, N: n})
		}
	}
	for _, m := range minInterestPattern.FindAllStringSubmatch(lower, -1) {
		in, err := plan_models.ParseInterest(m[2])
		if err != nil {
			continue
		}
		if n, ok := parseNumber(m[1]); ok {
			out = append(out, FeedbackConstraint{Kind: ConstraintMinInterest, N: n, Interest: in})
		}
	}
	return out
}

// Check returns one reason per violation, in day order.
func (c FeedbackConstraint) Check(plan *plan_models.TravelItinerary) []string {
	var reasons []string
	switch c.Kind {
	case ConstraintMinPerDay:
		for i, day := range plan.Days {
			if float64(len(day.Activities)) < c.N {
				reasons = append(reasons, fmt.Sprintf("day %d (%s) has %d activities, want at least %s",
					i+1, day.Date, len(day.Activities), formatNumber(c.N)))
			}
		}
	case ConstraintMaxPerDay:
		for i, day := range plan.Days {
			if float64(len(day.Activities)) > c.N {
				reasons = append(reasons, fmt.Sprintf("day %d (%s) has %d activities, want at most %s",
					i+1, day.Date, len(day.Activities), formatNumber(c.N)))
			}
		}
	case ConstraintMaxPrice:
		limit := utils.ToCents(c.N)
		for _, day := range plan.Days {
			for _, act := range day.Activities {
				if utils.ToCents(act.Price) > limit {
					reasons = append(reasons, fmt.Sprintf("%s costs %s, over limit %s",
						act.ActivityID, utils.FormatCents(utils.ToCents(act.Price)), utils.FormatCents(limit)))
				}
			}
		}
	case ConstraintMinInterest:
		count := 0
		for _, day := range plan.Days {
			for _, act := range day.Activities {
				if plan_models.SharesInterest(act.RelatedInterests, []plan_models.Interest{c.Interest}) {
					count++
				}
			}
		}
		if float64(count) < c.N {
			reasons = append(reasons, fmt.Sprintf("found %d %s activities, want at least %s",
				count, c.Interest, formatNumber(c.N)))
		}
	}
	return reasons
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
