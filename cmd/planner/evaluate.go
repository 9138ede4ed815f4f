package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agentsville/internal/models/plan_models"
	"agentsville/internal/services"
	"agentsville/pkg/utils"
)

var errChecksFailed = errors.New("itinerary failed checks")

type evaluateOptions struct {
	vacation     vacationFlags
	file         string
	feedback     string
	postRevision bool
	asJSON       bool
}

func newEvaluateCmd(root *rootOptions) *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Check an itinerary JSON file against the catalog and budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, root, opts)
		},
	}
	opts.vacation.bind(cmd)
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "itinerary JSON file")
	cmd.Flags().StringVar(&opts.feedback, "feedback", "", "traveler feedback to check")
	cmd.Flags().BoolVar(&opts.postRevision, "post-revision", true, "apply the feedback check")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readItinerary(path string) (*plan_models.TravelItinerary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan plan_models.TravelItinerary
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, utils.ErrSchemaViolation)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &plan, nil
}

func runEvaluate(cmd *cobra.Command, root *rootOptions, opts *evaluateOptions) error {
	info, err := opts.vacation.vacation()
	if err != nil {
		return err
	}
	plan, err := readItinerary(opts.file)
	if err != nil {
		return err
	}
	cfg, err := root.loadConfig(true)
	if err != nil {
		return err
	}

	return withPlanner(cmd.Context(), cfg, func(planner services.PlannerServiceInterface) error {
		res, err := planner.Evaluate(cmd.Context(), services.EvaluateRequest{
			Plan:         plan,
			Vacation:     info,
			Feedback:     opts.feedback,
			PostRevision: opts.postRevision,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if opts.asJSON {
			if err := writeJSON(out, res); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(out, renderEvaluation("Checks for "+opts.file, res))
		}
		if failed := len(res.Failures()); failed > 0 {
			return fmt.Errorf("%d of %d rules: %w", failed, len(res.Outcomes), errChecksFailed)
		}
		return nil
	})
}
