package memostore

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"
)

// BigCache bounds the memo by total memory. Entries share one global
// LifeWindow; per-entry TTLs are not supported by the backend.
type BigCache struct {
	c *bc.BigCache
}

type BigCacheConfig struct {
	LifeWindow         time.Duration // 0 => 10m
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func NewBigCache(cfg BigCacheConfig) (*BigCache, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = 10 * time.Minute
	}
	conf := bc.DefaultConfig(life)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &BigCache{c: c}, nil
}

func (s *BigCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := s.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (s *BigCache) Set(_ context.Context, key string, value []byte) (bool, error) {
	return true, s.c.Set(key, value)
}

func (s *BigCache) Del(_ context.Context, key string) error {
	err := s.c.Delete(key)
	if err == bc.ErrEntryNotFound {
		return nil
	}
	return err
}

func (s *BigCache) Close(_ context.Context) error {
	return s.c.Close()
}
