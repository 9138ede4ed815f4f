// Package core_fx groups everything the planner needs except config and HTTP.
package core_fx

import (
	"go.uber.org/fx"

	"agentsville/cmd/fx/catalog_fx"
	"agentsville/cmd/fx/db_fx"
	"agentsville/cmd/fx/llm_fx"
	"agentsville/cmd/fx/logger_fx"
	"agentsville/cmd/fx/memcache_fx"
	"agentsville/cmd/fx/planner_fx"
)

var Module = fx.Options(
	logger_fx.Module,
	memcache_fx.Module,
	db_fx.Module,
	llm_fx.Module,
	catalog_fx.Module,
	planner_fx.Module,
)
