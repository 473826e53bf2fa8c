package memostore

import (
	"context"
	"sync"
	"time"
)

const defaultMaxEntries = 4096

type localEntry struct {
	value []byte
	exp   time.Time // zero => no TTL
}

// Local is a mutex-guarded in-process store with a hard entry cap and an
// optional per-store TTL evaluated lazily on read. Writes past the cap are
// declined rather than evicting, which is the right trade for a memo: the
// hot early keys stay, late churn is refetched.
type Local struct {
	mu      sync.Mutex
	entries map[string]localEntry
	max     int
	ttl     time.Duration
}

type LocalConfig struct {
	MaxEntries int           // 0 => 4096
	TTL        time.Duration // 0 => entries never expire
}

func NewLocal(cfg LocalConfig) *Local {
	max := cfg.MaxEntries
	if max <= 0 {
		max = defaultMaxEntries
	}
	return &Local{
		entries: make(map[string]localEntry),
		max:     max,
		ttl:     cfg.TTL,
	}
}

func (s *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *Local) Set(_ context.Context, key string, value []byte) (bool, error) {
	// Copy to decouple from the caller's buffer.
	v := make([]byte, len(value))
	copy(v, value)

	var exp time.Time
	if s.ttl > 0 {
		exp = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.max {
		return false, nil
	}
	s.entries[key] = localEntry{value: v, exp: exp}
	return true, nil
}

func (s *Local) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *Local) Close(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]localEntry)
	s.mu.Unlock()
	return nil
}

// Len returns the number of entries currently held (expired included).
func (s *Local) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
