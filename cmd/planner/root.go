package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"agentsville/cmd/fx/catalog_fx"
	"agentsville/cmd/fx/core_fx"
	"agentsville/cmd/fx/logger_fx"
	"agentsville/internal/config"
	"agentsville/internal/services"
)

type rootOptions struct {
	configPath string
	envFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "planner",
		Short:        "Plan and revise AgentsVille trips",
		Long:         `planner drafts a trip itinerary with a language model, checks it against the activity catalog, weather and budget, and revises it until it passes.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (defaults to $"+config.ConfigPathEnv+")")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level to stderr")

	cmd.AddCommand(
		newPlanCmd(opts),
		newEvaluateCmd(opts),
		newCatalogCmd(opts),
		newTokenCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// loadConfig resolves the config; quiet raises the default info level to
// warn so one-shot commands keep stderr clean.
func (o *rootOptions) loadConfig(quiet bool) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(config.ConfigPathEnv)
	}
	cfg, err := config.Load(path, o.envFile)
	if err != nil {
		return nil, err
	}
	if o.verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	} else if quiet && cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	return cfg, nil
}

// runApp starts a container built from modules, fills targets and stops it
// once fn returns.
func runApp(ctx context.Context, cfg *config.Config, modules fx.Option, fn func() error, targets ...any) error {
	app := fx.New(
		fx.Supply(cfg),
		modules,
		fx.NopLogger,
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()
	return fn()
}

func withPlanner(ctx context.Context, cfg *config.Config, fn func(services.PlannerServiceInterface) error) error {
	var planner services.PlannerServiceInterface
	return runApp(ctx, cfg, core_fx.Module, func() error { return fn(planner) }, &planner)
}

func withCatalog(ctx context.Context, cfg *config.Config, fn func(services.CatalogServiceInterface) error) error {
	var catalog services.CatalogServiceInterface
	return runApp(ctx, cfg, fx.Options(logger_fx.Module, catalog_fx.Module), func() error { return fn(catalog) }, &catalog)
}
