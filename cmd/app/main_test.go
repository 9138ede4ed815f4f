package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"agentsville/cmd/fx/config_fx"
	"agentsville/cmd/fx/core_fx"
	"agentsville/cmd/fx/server_fx"
)

func TestDependencyGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(
		config_fx.Module,
		core_fx.Module,
		server_fx.Module,
	))
}
