// Package repository keeps short-lived snapshots of provider data so that
// repeated reads inside the TTL do not hit the league provider.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/fflboard/pkg/metrics"
)

type snapshot[V any] struct {
	value    V
	storedAt time.Time
}

// Store holds the latest snapshot per key. A snapshot older than the TTL is
// treated as missing. Store is safe for concurrent use.
type Store[V any] struct {
	mu    sync.RWMutex
	items map[string]snapshot[V]

	ttl time.Duration
	now func() time.Time
}

// NewStore creates an empty Store. Without WithTTL nothing is ever served.
func NewStore[V any](opts ...Option) *Store[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[V]{
		items: make(map[string]snapshot[V]),
		ttl:   o.ttl,
		now:   o.now,
	}
}

// Get returns the snapshot stored under key and when it was stored.
// Returns ErrNotFound for unknown keys and ErrExpired for stale ones.
func (s *Store[V]) Get(_ context.Context, key string) (V, time.Time, error) {
	s.mu.RLock()
	snap, ok := s.items[key]
	s.mu.RUnlock()

	var zero V
	if !ok {
		metrics.RecordCacheLookup(false)
		return zero, time.Time{}, ErrNotFound
	}
	if s.now().Sub(snap.storedAt) >= s.ttl {
		metrics.RecordCacheLookup(false)
		return zero, time.Time{}, ErrExpired
	}
	metrics.RecordCacheLookup(true)
	return snap.value, snap.storedAt, nil
}

// Put replaces the snapshot under key.
func (s *Store[V]) Put(_ context.Context, key string, v V) {
	s.mu.Lock()
	s.items[key] = snapshot[V]{value: v, storedAt: s.now()}
	s.mu.Unlock()
}

// Invalidate drops key.
func (s *Store[V]) Invalidate(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// Len returns the number of stored snapshots, fresh or not.
func (s *Store[V]) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// TTL returns how long snapshots stay fresh.
func (s *Store[V]) TTL() time.Duration {
	return s.ttl
}
