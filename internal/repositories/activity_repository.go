package repositories

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/utils"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

type IActivityRepository interface {
	ListByDate(ctx context.Context, date, city string) ([]plan_models.Activity, error)
	GetByID(ctx context.Context, activityID string) (*plan_models.Activity, error)
}

type catalogActivity struct {
	plan_models.Activity
	City string `json:"city"`
}

// ActivityRepository serves the mocked activity calendar from memory.
type ActivityRepository struct {
	byID   map[string]catalogActivity
	byDate map[string][]catalogActivity
}

func NewActivityRepository() (IActivityRepository, error) {
	raw, err := fixtureFS.ReadFile("fixtures/activities.json")
	if err != nil {
		return nil, fmt.Errorf("read activity fixture: %w", err)
	}
	var records []catalogActivity
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode activity fixture: %w", err)
	}
	return newActivityRepositoryFrom(records), nil
}

func newActivityRepositoryFrom(records []catalogActivity) *ActivityRepository {
	repo := &ActivityRepository{
		byID:   make(map[string]catalogActivity, len(records)),
		byDate: make(map[string][]catalogActivity),
	}
	for _, rec := range records {
		repo.byID[rec.ActivityID] = rec
		repo.byDate[rec.Date()] = append(repo.byDate[rec.Date()], rec)
	}
	for date := range repo.byDate {
		acts := repo.byDate[date]
		sort.SliceStable(acts, func(i, j int) bool { return acts[i].StartTime < acts[j].StartTime })
	}
	return repo
}

func (r *ActivityRepository) ListByDate(ctx context.Context, date, city string) ([]plan_models.Activity, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, err
	}
	var out []plan_models.Activity
	for _, rec := range r.byDate[date] {
		if strings.EqualFold(rec.City, city) {
			out = append(out, cloneActivity(rec.Activity))
		}
	}
	return out, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, activityID string) (*plan_models.Activity, error) {
	rec, ok := r.byID[activityID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", activityID, utils.ErrActivityNotFound)
	}
	act := cloneActivity(rec.Activity)
	return &act, nil
}

func cloneActivity(a plan_models.Activity) plan_models.Activity {
	a.RelatedInterests = append([]plan_models.Interest(nil), a.RelatedInterests...)
	return a
}
