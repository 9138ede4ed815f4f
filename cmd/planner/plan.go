package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"agentsville/internal/services"
)

type planOptions struct {
	vacation      vacationFlags
	feedback      string
	revise        bool
	maxIterations int
	asJSON        bool
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate, check and revise an itinerary",
		Example: `  planner plan --start 2025-06-10 --end 2025-06-12 \
    --traveler "Yuri=art,tennis" --traveler "Hiro=music,technology" \
    --budget 130 --feedback "at least two activities per day"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, root, opts)
		},
	}
	opts.vacation.bind(cmd)
	cmd.Flags().StringVar(&opts.feedback, "feedback", "", "traveler feedback the final plan must satisfy")
	cmd.Flags().BoolVar(&opts.revise, "revise", true, "run the revision loop when checks fail or feedback is given")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "revision iteration cap (0 uses the configured value)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the outcome as JSON")
	return cmd
}

func runPlan(cmd *cobra.Command, root *rootOptions, opts *planOptions) error {
	info, err := opts.vacation.vacation()
	if err != nil {
		return err
	}
	cfg, err := root.loadConfig(true)
	if err != nil {
		return err
	}

	return withPlanner(cmd.Context(), cfg, func(planner services.PlannerServiceInterface) error {
		outcome, err := planner.Plan(cmd.Context(), services.PlanRequest{
			Vacation:      info,
			Feedback:      opts.feedback,
			Revise:        opts.revise,
			MaxIterations: opts.maxIterations,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if opts.asJSON {
			return writeJSON(out, outcome)
		}

		fmt.Fprintln(out, renderItinerary("Initial itinerary", outcome.InitialPlan))
		fmt.Fprintln(out, renderEvaluation("Initial checks", outcome.InitialEvaluation))
		if outcome.Revision != nil {
			fmt.Fprintln(out, renderSteps(outcome.Revision.Steps))
			if outcome.Revision.Message != "" {
				fmt.Fprintln(out, box("Agent message", outcome.Revision.Message))
			}
			fmt.Fprintln(out, renderItinerary("Revised itinerary", outcome.Plan))
			fmt.Fprintln(out, renderEvaluation("Final checks", outcome.Evaluation))
		}
		fmt.Fprintf(out, "Status: %s", outcome.Status)
		if outcome.RunID != "" {
			fmt.Fprintf(out, " (run %s)", outcome.RunID)
		}
		fmt.Fprintln(out)
		return nil
	})
}
