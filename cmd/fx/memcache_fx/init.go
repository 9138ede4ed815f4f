package memcache_fx

import (
	"go.uber.org/fx"

	"agentsville/internal/models/db_models"
	mem "agentsville/pkg/memcache"
)

var Module = fx.Provide(provideRunStore)

func provideRunStore() mem.TTLStore[db_models.ItineraryRun] {
	return mem.NewStore[db_models.ItineraryRun]()
}
