package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"agentsville/internal/models/db_models"
	"agentsville/pkg/llm"
	mem "agentsville/pkg/memcache"
	"agentsville/pkg/utils"
)

type IItineraryRunRepository interface {
	SaveRun(ctx context.Context, run *db_models.ItineraryRun) error
	GetRunByID(ctx context.Context, runID string) (*db_models.ItineraryRun, error)
	ListRuns(ctx context.Context, page, pageSize int) ([]db_models.ItineraryRun, error)
	SimilarRuns(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.RunWithSimilarity, error)
}

type ItineraryRunRepository struct {
	db *gorm.DB
}

func NewItineraryRunRepository(db *gorm.DB) IItineraryRunRepository {
	return &ItineraryRunRepository{db: db}
}

func (r *ItineraryRunRepository) SaveRun(ctx context.Context, run *db_models.ItineraryRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("save run: %v: %w", err, utils.ErrDatabaseError)
	}
	return nil
}

func (r *ItineraryRunRepository) GetRunByID(ctx context.Context, runID string) (*db_models.ItineraryRun, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("run id %q: %w", runID, utils.ErrInvalidInput)
	}

	var run db_models.ItineraryRun
	err := r.db.WithContext(ctx).First(&run, "id = ?", runID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", runID, utils.ErrRunNotFound)
		}
		return nil, fmt.Errorf("get run: %v: %w", err, utils.ErrDatabaseError)
	}
	return &run, nil
}

func (r *ItineraryRunRepository) ListRuns(ctx context.Context, page, pageSize int) ([]db_models.ItineraryRun, error) {
	var runs []db_models.ItineraryRun
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %v: %w", err, utils.ErrDatabaseError)
	}
	return runs, nil
}

func (r *ItineraryRunRepository) SimilarRuns(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.RunWithSimilarity, error) {
	var results []db_models.RunWithSimilarity

	query := `
        SELECT *, (1 - (embedding <=> ?::vector)) AS similarity
        FROM itinerary_runs
        WHERE embedding IS NOT NULL AND deleted_at IS NULL
        ORDER BY embedding <=> ?::vector
        LIMIT ?
    `
	literal := vector.String()
	if err := r.db.WithContext(ctx).Raw(query, literal, literal, limit).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("similar runs: %v: %w", err, utils.ErrDatabaseError)
	}
	return results, nil
}

// MemoryRunRepository keeps runs in a TTL store when no database is configured.
type MemoryRunRepository struct {
	store mem.TTLStore[db_models.ItineraryRun]
	ttl   time.Duration
}

func NewMemoryRunRepository(store mem.TTLStore[db_models.ItineraryRun], ttl time.Duration) IItineraryRunRepository {
	return &MemoryRunRepository{store: store, ttl: ttl}
}

func (r *MemoryRunRepository) SaveRun(ctx context.Context, run *db_models.ItineraryRun) error {
	run.EnsureIdentity()
	r.store.Set(run.ID.String(), *run, r.ttl)
	return nil
}

func (r *MemoryRunRepository) GetRunByID(ctx context.Context, runID string) (*db_models.ItineraryRun, error) {
	run, ok := r.store.Peek(runID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", runID, utils.ErrRunNotFound)
	}
	return &run, nil
}

func (r *MemoryRunRepository) ListRuns(ctx context.Context, page, pageSize int) ([]db_models.ItineraryRun, error) {
	runs := r.store.Values()
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt != runs[j].CreatedAt {
			return runs[i].CreatedAt > runs[j].CreatedAt
		}
		return runs[i].ID.String() < runs[j].ID.String()
	})

	start := (page - 1) * pageSize
	if start >= len(runs) {
		return []db_models.ItineraryRun{}, nil
	}
	end := start + pageSize
	if end > len(runs) {
		end = len(runs)
	}
	return runs[start:end], nil
}

func (r *MemoryRunRepository) SimilarRuns(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.RunWithSimilarity, error) {
	var results []db_models.RunWithSimilarity
	for _, run := range r.store.Values() {
		if run.Embedding == nil {
			continue
		}
		results = append(results, db_models.RunWithSimilarity{
			ItineraryRun: run,
			Similarity:   llm.CosineSimilarity(vector, *run.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// StorageName reports which backend repo persists to.
func StorageName(repo IItineraryRunRepository) string {
	switch repo.(type) {
	case *ItineraryRunRepository:
		return "postgres"
	case *MemoryRunRepository:
		return "memory"
	default:
		return "unknown"
	}
}
