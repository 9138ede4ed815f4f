package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"agentsville/internal/models/plan_models"
	"agentsville/internal/services"
	"agentsville/pkg/utils"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func box(title, body string) string {
	return boxStyle.Render(titleStyle.Render(title) + "\n\n" + strings.TrimRight(body, "\n"))
}

func money(amount float64) string {
	return utils.FormatCents(utils.ToCents(amount))
}

func clock(ts string) string {
	if len(ts) >= len(utils.DateTimeLayout) {
		return ts[len(utils.DateLayout)+1 : len(utils.DateTimeLayout)]
	}
	return ts
}

func renderItinerary(title string, p *plan_models.TravelItinerary) string {
	if p == nil {
		return box(title, dimStyle.Render("no itinerary"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s to %s\n", p.City, p.StartDate, p.EndDate)
	if len(p.Travelers) > 0 {
		fmt.Fprintf(&b, "Travelers: %s\n", strings.Join(p.Travelers, ", "))
	}
	for _, day := range p.Days {
		b.WriteString("\n")
		header := day.Date
		if day.Weather != nil {
			header += " (" + day.Weather.Condition + ")"
		}
		b.WriteString(titleStyle.Render(header) + "\n")
		if len(day.Activities) == 0 {
			b.WriteString(dimStyle.Render("  free day") + "\n")
		}
		for _, a := range day.Activities {
			fmt.Fprintf(&b, "  %s-%s  %s  %s %s\n", clock(a.StartTime), clock(a.EndTime), a.Name, money(a.Price), p.Currency)
		}
		if day.Notes != "" {
			b.WriteString(dimStyle.Render("  "+day.Notes) + "\n")
		}
	}
	fmt.Fprintf(&b, "\nTotal: %s %s\n", money(p.TotalCost), p.Currency)
	return box(title, b.String())
}

func renderEvaluation(title string, res plan_models.EvaluationResult) string {
	var b strings.Builder
	for _, o := range res.Outcomes {
		if o.Passed {
			fmt.Fprintf(&b, "%s %s\n", passStyle.Render("PASS"), o.Rule)
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s\n", failStyle.Render("FAIL"), o.Rule, o.Reason)
	}
	return box(title, b.String())
}

func renderSteps(steps []services.Step) string {
	var b strings.Builder
	for _, s := range steps {
		tool := string(s.Tool)
		if tool == "" {
			tool = "-"
		}
		fmt.Fprintf(&b, "#%d %s\n", s.Iteration, tool)
		if s.Thought != "" {
			b.WriteString(dimStyle.Render("   "+truncate(s.Thought, 100)) + "\n")
		}
		if s.Error != "" {
			b.WriteString(failStyle.Render("   "+truncate(s.Error, 100)) + "\n")
		}
	}
	return box("Revision steps", b.String())
}

func renderActivities(date string, acts []plan_models.Activity) string {
	if len(acts) == 0 {
		return box("Activities on "+date, dimStyle.Render("none"))
	}
	var b strings.Builder
	for _, a := range acts {
		interests := make([]string, 0, len(a.RelatedInterests))
		for _, in := range a.RelatedInterests {
			interests = append(interests, string(in))
		}
		fmt.Fprintf(&b, "%s  %s-%s  %s\n", a.ActivityID, clock(a.StartTime), clock(a.EndTime), a.Name)
		fmt.Fprintf(&b, "   %s, %s, %s [%s]\n", a.Location, money(a.Price), a.Setting, strings.Join(interests, ", "))
	}
	return box("Activities on "+date, b.String())
}

func renderWeather(w *plan_models.Weather) string {
	body := fmt.Sprintf("%s, %g %s\n%s", w.Condition, w.Temperature, w.TemperatureUnit, w.Description)
	return box("Weather in "+w.City+" on "+w.Date, body)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
