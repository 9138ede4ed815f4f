package mem

import (
	"sync"
	"time"
)

type TTLStore[V any] interface {
	Set(key string, value V, ttl time.Duration)

	// Peek reads without consuming. Expired entries are reported missing.
	Peek(key string) (V, bool)

	// Consume returns the value and removes it (single-use).
	Consume(key string) (V, bool)

	// Values returns every live value, in no particular order.
	Values() []V
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Store[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	now  func() time.Time
}

func NewStore[V any]() *Store[V] {
	return &Store[V]{
		data: make(map[string]entry[V]),
		now:  time.Now,
	}
}

func (s *Store[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	s.sweepLocked()
}

func (s *Store[V]) Peek(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Consume(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.data[key]
	if !ok {
		return zero, false
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	out := make([]V, 0, len(s.data))
	for _, e := range s.data {
		if !now.After(e.expiresAt) {
			out = append(out, e.value)
		}
	}
	return out
}

// sweepLocked drops expired entries once the map grows past a soft limit.
func (s *Store[V]) sweepLocked() {
	if len(s.data) <= 1000 {
		return
	}
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
