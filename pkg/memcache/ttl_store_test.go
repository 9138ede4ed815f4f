package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreExpiry(t *testing.T) {
	clock := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := NewStore[string]()
	s.now = func() time.Time { return clock }

	s.Set("a", "alpha", time.Minute)
	s.Set("b", "beta", time.Hour)

	v, ok := s.Peek("a")
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, s.Values())

	clock = clock.Add(2 * time.Minute)
	_, ok = s.Peek("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"beta"}, s.Values())
}

func TestStoreConsume(t *testing.T) {
	s := NewStore[int]()
	s.Set("k", 42, time.Minute)

	v, ok := s.Consume("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = s.Consume("k")
	assert.False(t, ok)
	_, ok = s.Peek("k")
	assert.False(t, ok)
}
