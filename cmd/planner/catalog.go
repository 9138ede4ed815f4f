package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"agentsville/internal/models/plan_models"
	"agentsville/internal/services"
)

type catalogOptions struct {
	date   string
	city   string
	asJSON bool
}

func newCatalogCmd(root *rootOptions) *cobra.Command {
	opts := &catalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the activity and weather catalog",
	}
	cmd.PersistentFlags().StringVar(&opts.date, "date", "", "date to look up (YYYY-MM-DD)")
	cmd.PersistentFlags().StringVar(&opts.city, "city", plan_models.DefaultCity, "city to look up")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print as JSON")
	_ = cmd.MarkPersistentFlagRequired("date")

	cmd.AddCommand(&cobra.Command{
		Use:   "activities",
		Short: "List activities on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, root, func(catalog services.CatalogServiceInterface) error {
				acts, err := catalog.ActivitiesByDate(cmd.Context(), opts.date, opts.city)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), acts)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderActivities(opts.date, acts))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "weather",
		Short: "Show the forecast for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, root, func(catalog services.CatalogServiceInterface) error {
				w, err := catalog.WeatherByDate(cmd.Context(), opts.date, opts.city)
				if err != nil {
					return err
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), w)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderWeather(w))
				return nil
			})
		},
	})
	return cmd
}

func runCatalog(cmd *cobra.Command, root *rootOptions, fn func(services.CatalogServiceInterface) error) error {
	cfg, err := root.loadConfig(true)
	if err != nil {
		return err
	}
	return withCatalog(cmd.Context(), cfg, fn)
}
