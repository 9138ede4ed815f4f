package llm

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
)

type Embedder interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
}

const hashDimensions = 1536

// HashEmbedder is an offline embedder: every word spreads a deterministic
// sine pattern across the vector, and the result is unit length.
type HashEmbedder struct {
	dimensions int
}

func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{dimensions: hashDimensions}
}

func (e *HashEmbedder) Embed(_ context.Context, text string) (pgvector.Vector, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	vector := make([]float32, e.dimensions)

	for _, word := range words {
		h := hashWord(word)
		for i := 0; i < e.dimensions; i++ {
			vector[i] += float32(math.Sin(float64(h+uint32(i))) * 0.1)
		}
	}

	var magnitude float64
	for _, v := range vector {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / magnitude)
		}
	}
	return pgvector.NewVector(vector), nil
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(word))
	return h.Sum32()
}

// CosineSimilarity returns 0 when either vector is empty or their lengths differ.
func CosineSimilarity(a, b pgvector.Vector) float64 {
	x, y := a.Slice(), b.Slice()
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}
	var dot, nx, ny float64
	for i := range x {
		dot += float64(x[i]) * float64(y[i])
		nx += float64(x[i]) * float64(x[i])
		ny += float64(y[i]) * float64(y[i])
	}
	if nx == 0 || ny == 0 {
		return 0
	}
	return dot / (math.Sqrt(nx) * math.Sqrt(ny))
}
