package services

import (
	"fmt"
	"sort"
	"strings"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

// Catalog is the snapshot of mocked activities and weather the validator
// checks a plan against.
type Catalog struct {
	City       string
	Activities map[string][]plan_models.Activity
	Weather    map[string]plan_models.Weather
}

func (c Catalog) Lookup(date, activityID string) (plan_models.Activity, bool) {
	for _, a := range c.Activities[date] {
		if a.ActivityID == activityID {
			return a, true
		}
	}
	return plan_models.Activity{}, false
}

type EvaluationInput struct {
	Plan     *plan_models.TravelItinerary
	Vacation plan_models.VacationInfo
	Catalog  Catalog
	Feedback string
	// PostRevision enables the feedback rule.
	PostRevision bool
}

type ValidatorServiceInterface interface {
	Evaluate(input EvaluationInput) plan_models.EvaluationResult
}

type ValidatorService struct{}

func NewValidatorService() ValidatorServiceInterface {
	return &ValidatorService{}
}

type ruleCheck struct {
	rule  plan_models.Rule
	check func(EvaluationInput) []string
}

var ruleChecks = []ruleCheck{
	{plan_models.RuleDateRange, checkDateRange},
	{plan_models.RuleCostSum, checkCostSum},
	{plan_models.RuleBudget, checkBudget},
	{plan_models.RuleActivityExistence, checkActivityExistence},
	{plan_models.RuleInterestCoverage, checkInterestCoverage},
	{plan_models.RuleWeatherCompatibility, checkWeather},
	{plan_models.RuleFeedback, checkFeedback},
}

// Evaluate runs every rule and reports them in declaration order. It has no
// side effects and never fails; a missing plan fails every rule.
func (v *ValidatorService) Evaluate(input EvaluationInput) plan_models.EvaluationResult {
	result := plan_models.EvaluationResult{Outcomes: make([]plan_models.RuleOutcome, 0, len(ruleChecks))}
	for _, rc := range ruleChecks {
		outcome := plan_models.RuleOutcome{Rule: rc.rule, Passed: true}
		if input.Plan == nil {
			outcome.Passed = false
			outcome.Reason = "no itinerary"
		} else if reasons := rc.check(input); len(reasons) > 0 {
			outcome.Passed = false
			outcome.Reason = strings.Join(reasons, "; ")
		}
		if rc.rule == plan_models.RuleFeedback && outcome.Passed && outcome.Reason == "" {
			outcome.Reason = feedbackPassReason(input)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}

func checkDateRange(in EvaluationInput) []string {
	plan, vac := in.Plan, in.Vacation
	var reasons []string

	if !strings.EqualFold(strings.TrimSpace(plan.City), strings.TrimSpace(vac.City)) {
		reasons = append(reasons, fmt.Sprintf("city %s != %s", plan.City, vac.City))
	}
	if len(plan.Days) == 0 {
		reasons = append(reasons, "itinerary has no days")
	}

	window := fmt.Sprintf("%s..%s", vac.StartDate, vac.EndDate)
	inWindow := func(date string) bool {
		if _, err := utils.ParseDate(date); err != nil {
			return false
		}
		return date >= vac.StartDate && date <= vac.EndDate
	}

	if !inWindow(plan.StartDate) {
		reasons = append(reasons, fmt.Sprintf("start_date %s outside window %s", plan.StartDate, window))
	}
	if !inWindow(plan.EndDate) {
		reasons = append(reasons, fmt.Sprintf("end_date %s outside window %s", plan.EndDate, window))
	}

	seen := make(map[string]bool, len(plan.Days))
	prev := ""
	for _, day := range plan.Days {
		if !inWindow(day.Date) {
			reasons = append(reasons, fmt.Sprintf("day %s outside window %s", day.Date, window))
		}
		if seen[day.Date] {
			reasons = append(reasons, fmt.Sprintf("day %s appears more than once", day.Date))
		} else if prev != "" && day.Date < prev {
			reasons = append(reasons, fmt.Sprintf("day %s comes after %s", day.Date, prev))
		}
		seen[day.Date] = true
		prev = day.Date
	}
	return reasons
}

// invalidAmounts lists prices that cannot be summed safely in cents.
func invalidAmounts(plan *plan_models.TravelItinerary) []string {
	var reasons []string
	for _, day := range plan.Days {
		for _, act := range day.Activities {
			if !utils.ValidAmount(act.Price) {
				reasons = append(reasons, fmt.Sprintf("%s price %v out of range", act.ActivityID, act.Price))
			}
		}
	}
	return reasons
}

func checkCostSum(in EvaluationInput) []string {
	if reasons := invalidAmounts(in.Plan); len(reasons) > 0 {
		return reasons
	}
	if !utils.ValidAmount(in.Plan.TotalCost) {
		return []string{fmt.Sprintf("total_cost %v out of range", in.Plan.TotalCost)}
	}
	declared := utils.ToCents(in.Plan.TotalCost)
	sum := in.Plan.SumPriceCents()
	if declared != sum {
		return []string{fmt.Sprintf("total_cost %s != sum %s", utils.FormatCents(declared), utils.FormatCents(sum))}
	}
	return nil
}

func checkBudget(in EvaluationInput) []string {
	reasons := invalidAmounts(in.Plan)
	planCur, budgetCur := strings.TrimSpace(in.Plan.Currency), strings.TrimSpace(in.Vacation.BudgetCurrency)
	if planCur != "" && budgetCur != "" && !strings.EqualFold(planCur, budgetCur) {
		reasons = append(reasons, fmt.Sprintf("currency %s != budget currency %s", planCur, budgetCur))
	}

	if !utils.ValidAmount(in.Vacation.BudgetAmount) {
		reasons = append(reasons, fmt.Sprintf("budget %v out of range", in.Vacation.BudgetAmount))
	}
	if len(reasons) > 0 {
		return reasons
	}

	sum := in.Plan.SumPriceCents()
	budget := utils.ToCents(in.Vacation.BudgetAmount)
	if sum > budget {
		reasons = append(reasons, fmt.Sprintf("total %s exceeds budget %s by %s",
			utils.FormatCents(sum), utils.FormatCents(budget), utils.FormatCents(sum-budget)))
	}
	return reasons
}

func checkActivityExistence(in EvaluationInput) []string {
	cityMatches := strings.EqualFold(strings.TrimSpace(in.Plan.City), strings.TrimSpace(in.Catalog.City))

	var unknown, repriced []string
	for _, day := range in.Plan.Days {
		for _, act := range day.Activities {
			known, ok := in.Catalog.Lookup(day.Date, act.ActivityID)
			if !ok || !cityMatches {
				unknown = append(unknown, day.Date+":"+act.ActivityID)
				continue
			}
			if !utils.ValidAmount(act.Price) || utils.ToCents(act.Price) != utils.ToCents(known.Price) {
				repriced = append(repriced, fmt.Sprintf("%s price %v != catalog %s",
					act.ActivityID, act.Price, utils.FormatCents(utils.ToCents(known.Price))))
			}
		}
	}

	var reasons []string
	if len(unknown) > 0 {
		reasons = append(reasons, "unknown activities: "+strings.Join(unknown, ", "))
	}
	return append(reasons, repriced...)
}

// resolve prefers the catalog's copy of an activity over what the plan claims.
func resolve(in EvaluationInput, date string, act plan_models.Activity) plan_models.Activity {
	if known, ok := in.Catalog.Lookup(date, act.ActivityID); ok {
		return known
	}
	return act
}

func checkInterestCoverage(in EvaluationInput) []string {
	var planned [][]plan_models.Interest
	for _, day := range in.Plan.Days {
		for _, act := range day.Activities {
			planned = append(planned, resolve(in, day.Date, act).RelatedInterests)
		}
	}

	var reasons []string
	for _, traveler := range in.Vacation.Travelers {
		if len(traveler.Interests) == 0 {
			continue
		}
		covered := false
		for _, interests := range planned {
			if plan_models.SharesInterest(traveler.Interests, interests) {
				covered = true
				break
			}
		}
		if !covered {
			names := make([]string, 0, len(traveler.Interests))
			for _, i := range traveler.Interests {
				names = append(names, string(i))
			}
			reasons = append(reasons, fmt.Sprintf("%s has no activity matching %s", traveler.Name, strings.Join(names, ", ")))
		}
	}
	return reasons
}

func checkWeather(in EvaluationInput) []string {
	var reasons []string
	for _, day := range in.Plan.Days {
		weather, ok := in.Catalog.Weather[day.Date]
		if !ok && day.Weather != nil {
			weather, ok = *day.Weather, true
		}
		if !ok || !weather.Inclement() {
			continue
		}
		for _, act := range day.Activities {
			if resolve(in, day.Date, act).Setting == plan_models.SettingOutdoor {
				reasons = append(reasons, fmt.Sprintf("%s is outdoors on %s (%s)", act.ActivityID, day.Date, weather.Condition))
			}
		}
	}
	return reasons
}

func checkFeedback(in EvaluationInput) []string {
	if !in.PostRevision || strings.TrimSpace(in.Feedback) == "" {
		return nil
	}
	var reasons []string
	for _, c := range ParseFeedback(in.Feedback) {
		reasons = append(reasons, c.Check(in.Plan)...)
	}
	return reasons
}

func feedbackPassReason(in EvaluationInput) string {
	switch {
	case strings.TrimSpace(in.Feedback) == "":
		return "no feedback"
	case !in.PostRevision:
		return "checked after revision"
	case len(ParseFeedback(in.Feedback)) == 0:
		return "unrecognized feedback"
	default:
		return ""
	}
}

// CatalogFromActivities groups activities by date. Used when a caller holds a
// flat list rather than a snapshot.
func CatalogFromActivities(city string, acts []plan_models.Activity, weather []plan_models.Weather) Catalog {
	c := Catalog{
		City:       city,
		Activities: make(map[string][]plan_models.Activity),
		Weather:    make(map[string]plan_models.Weather),
	}
	for _, a := range acts {
		c.Activities[a.Date()] = append(c.Activities[a.Date()], a)
	}
	for date := range c.Activities {
		list := c.Activities[date]
		sort.SliceStable(list, func(i, j int) bool { return list[i].StartTime < list[j].StartTime })
	}
	for _, w := range weather {
		c.Weather[w.Date] = w
	}
	return c
}
