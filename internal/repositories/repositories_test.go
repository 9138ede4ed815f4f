package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentsville/internal/models/db_models"
	"agentsville/internal/models/plan_models"
	mem "agentsville/pkg/memcache"
	"agentsville/pkg/utils"
)

func TestActivityRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewActivityRepository()
	require.NoError(t, err)

	acts, err := repo.ListByDate(ctx, "2025-06-10", "agentsville")
	require.NoError(t, err)
	require.Len(t, acts, 3)
	for _, a := range acts {
		assert.Equal(t, "2025-06-10", a.Date())
	}
	assert.True(t, acts[0].StartTime <= acts[1].StartTime)

	none, err := repo.ListByDate(ctx, "2025-06-10", "Elsewhere")
	require.NoError(t, err)
	assert.Empty(t, none)

	outside, err := repo.ListByDate(ctx, "2025-07-01", plan_models.DefaultCity)
	require.NoError(t, err)
	assert.Empty(t, outside)

	_, err = repo.ListByDate(ctx, "June 10", plan_models.DefaultCity)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	act, err := repo.GetByID(ctx, "event-2025-06-12-1")
	require.NoError(t, err)
	assert.Equal(t, plan_models.SettingOutdoor, act.Setting)

	_, err = repo.GetByID(ctx, "event-made-up")
	assert.ErrorIs(t, err, utils.ErrActivityNotFound)
}

func TestActivityRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo, err := NewActivityRepository()
	require.NoError(t, err)

	first, err := repo.GetByID(ctx, "event-2025-06-10-1")
	require.NoError(t, err)
	first.RelatedInterests[0] = plan_models.InterestComedy

	again, err := repo.GetByID(ctx, "event-2025-06-10-1")
	require.NoError(t, err)
	assert.Equal(t, plan_models.InterestArt, again.RelatedInterests[0])
}

func TestWeatherRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewWeatherRepository()
	require.NoError(t, err)

	w, err := repo.GetByDate(ctx, "2025-06-12", plan_models.DefaultCity)
	require.NoError(t, err)
	assert.True(t, w.Inclement())

	w, err = repo.GetByDate(ctx, "2025-06-10", plan_models.DefaultCity)
	require.NoError(t, err)
	assert.False(t, w.Inclement())

	_, err = repo.GetByDate(ctx, "2025-08-01", plan_models.DefaultCity)
	assert.ErrorIs(t, err, utils.ErrWeatherNotFound)
}

func TestMemoryRunRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRunRepository(mem.NewStore[db_models.ItineraryRun](), time.Hour)

	older := &db_models.ItineraryRun{City: "AgentsVille", Status: db_models.RunStatusValidated}
	older.CreatedAt = 100
	require.NoError(t, repo.SaveRun(ctx, older))
	newer := &db_models.ItineraryRun{City: "AgentsVille", Status: db_models.RunStatusIncomplete}
	newer.CreatedAt = 200
	require.NoError(t, repo.SaveRun(ctx, newer))

	got, err := repo.GetRunByID(ctx, older.ID.String())
	require.NoError(t, err)
	assert.Equal(t, db_models.RunStatusValidated, got.Status)

	runs, err := repo.ListRuns(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)

	page2, err := repo.ListRuns(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, older.ID, page2[0].ID)

	empty, err := repo.ListRuns(ctx, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = repo.GetRunByID(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrRunNotFound)
}

func TestMemoryRunRepositorySimilarRuns(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRunRepository(mem.NewStore[db_models.ItineraryRun](), time.Hour)

	near := pgvector.NewVector([]float32{1, 0.1})
	far := pgvector.NewVector([]float32{0, 1})
	require.NoError(t, repo.SaveRun(ctx, &db_models.ItineraryRun{City: "near", Embedding: &near}))
	require.NoError(t, repo.SaveRun(ctx, &db_models.ItineraryRun{City: "far", Embedding: &far}))
	require.NoError(t, repo.SaveRun(ctx, &db_models.ItineraryRun{City: "none"}))

	got, err := repo.SimilarRuns(ctx, pgvector.NewVector([]float32{1, 0}), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].City)
	assert.Greater(t, got[0].Similarity, got[1].Similarity)

	got, err = repo.SimilarRuns(ctx, pgvector.NewVector([]float32{1, 0}), 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
