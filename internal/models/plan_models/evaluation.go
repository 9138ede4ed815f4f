package plan_models

type Rule string

// Rules in reporting order.
const (
	RuleDateRange            Rule = "date_range"
	RuleCostSum              Rule = "cost_sum"
	RuleBudget               Rule = "budget"
	RuleActivityExistence    Rule = "activity_existence"
	RuleInterestCoverage     Rule = "interest_coverage"
	RuleWeatherCompatibility Rule = "weather_compatibility"
	RuleFeedback             Rule = "feedback"
)

type RuleOutcome struct {
	Rule   Rule   `json:"rule"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

type EvaluationResult struct {
	Outcomes []RuleOutcome `json:"outcomes"`
}

func (e EvaluationResult) AllPassed() bool {
	for _, o := range e.Outcomes {
		if !o.Passed {
			return false
		}
	}
	return true
}

// Failures returns failing outcomes in rule order.
func (e EvaluationResult) Failures() []RuleOutcome {
	var out []RuleOutcome
	for _, o := range e.Outcomes {
		if !o.Passed {
			out = append(out, o)
		}
	}
	return out
}

func (e EvaluationResult) Outcome(rule Rule) (RuleOutcome, bool) {
	for _, o := range e.Outcomes {
		if o.Rule == rule {
			return o, true
		}
	}
	return RuleOutcome{}, false
}
