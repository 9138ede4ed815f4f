package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pgvector/pgvector-go"

	"agentsville/internal/models/plan_models"
	"agentsville/pkg/llm"
)

type InterestRankerInterface interface {
	Rank(ctx context.Context, interests []plan_models.Interest, acts []plan_models.Activity) ([]plan_models.Activity, error)
}

// InterestRanker orders activities by cosine similarity between the
// travelers' interests and each activity's text.
type InterestRanker struct {
	embedder llm.Embedder

	mu    sync.Mutex
	cache map[string]pgvector.Vector
}

func NewInterestRanker(embedder llm.Embedder) InterestRankerInterface {
	return &InterestRanker{
		embedder: embedder,
		cache:    make(map[string]pgvector.Vector),
	}
}

// Rank returns a reordered copy; ties keep their input order.
func (r *InterestRanker) Rank(ctx context.Context, interests []plan_models.Interest, acts []plan_models.Activity) ([]plan_models.Activity, error) {
	out := append([]plan_models.Activity(nil), acts...)
	if len(interests) == 0 || len(out) < 2 {
		return out, nil
	}

	query, err := r.embed(ctx, interestText(interests))
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(out))
	for _, a := range out {
		v, err := r.embed(ctx, activityText(a))
		if err != nil {
			return nil, err
		}
		score := llm.CosineSimilarity(query, v)
		if plan_models.SharesInterest(interests, a.RelatedInterests) {
			score += 1
		}
		scores[a.ActivityID] = score
	}

	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i].ActivityID] > scores[out[j].ActivityID]
	})
	return out, nil
}

func (r *InterestRanker) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	r.mu.Lock()
	v, ok := r.cache[text]
	r.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := r.embedder.Embed(ctx, text)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("embed %q: %w", truncate(text, 40), err)
	}

	r.mu.Lock()
	r.cache[text] = v
	r.mu.Unlock()
	return v, nil
}

func interestText(interests []plan_models.Interest) string {
	parts := make([]string, 0, len(interests))
	for _, i := range interests {
		parts = append(parts, string(i))
	}
	return strings.Join(parts, " ")
}

func activityText(a plan_models.Activity) string {
	return fmt.Sprintf("%s %s %s", a.Name, a.Description, interestText(a.RelatedInterests))
}

// truncate keeps at most n bytes of s without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
