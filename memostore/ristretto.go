package memostore

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"
)

// Ristretto bounds the memo by admission-controlled cost (bytes). Writes
// the admission policy rejects come back as ok=false.
type Ristretto struct {
	c   *rc.Cache
	ttl time.Duration
}

type RistrettoConfig struct {
	NumCounters int64         // ~10x expected entries
	MaxCostMB   int64         // memory budget
	TTL         time.Duration // 0 => entries never expire
}

func NewRistretto(cfg RistrettoConfig) (*Ristretto, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCostMB <= 0 {
		return nil, errors.New("memostore: invalid ristretto config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCostMB << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{c: c, ttl: cfg.TTL}, nil
}

func (s *Ristretto) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		s.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Ristretto) Set(_ context.Context, key string, value []byte) (bool, error) {
	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}
	if s.ttl > 0 {
		return s.c.SetWithTTL(key, value, cost, s.ttl), nil
	}
	return s.c.Set(key, value, cost), nil
}

func (s *Ristretto) Del(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

func (s *Ristretto) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Wait blocks until buffered writes are applied. Useful in tests; Set is
// asynchronous in ristretto.
func (s *Ristretto) Wait() { s.c.Wait() }
