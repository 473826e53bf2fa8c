package pokedata

import (
	"context"
	"sync"
	"time"

	"github.com/edgedx/pokedata/codec"
	"github.com/edgedx/pokedata/pin"
)

const (
	// DefaultCacheTTL is applied when CacheOptions.TTL is zero.
	DefaultCacheTTL = 30 * time.Minute

	defaultMaxPayload = 8 << 20
)

// pinPayload is the JSON envelope uploaded to the pinning service.
type pinPayload struct {
	Timestamp int64   `json:"timestamp"`
	CacheKey  string  `json:"cache_key"`
	Data      *Result `json:"data"`
}

type dirEntry struct {
	cid      string
	storedAt time.Time
}

// PinCache fronts a pin.Pinner with a request-fingerprint directory.
//
// The directory (fingerprint -> {CID, storedAt}) lives only in process
// memory; restarting forgets every pin. Entries expire lazily: age is
// checked on Lookup and Stats, never by a background sweep. A nil Pinner
// disables the cache entirely - Lookup always misses and Store always
// declines, silently.
//
// Safe for concurrent use.
type PinCache struct {
	pinner pin.Pinner
	ttl    time.Duration
	log    Logger
	dec    codec.Limit[pinPayload]

	mu  sync.Mutex
	dir map[string]dirEntry
}

type CacheOptions struct {
	// Pinner is the pin/retrieve capability. Nil disables the cache.
	// Note this is interface nil: a typed-nil concrete pointer boxed into
	// the interface counts as configured.
	Pinner pin.Pinner

	// TTL after which a stored entry is a miss; 0 => DefaultCacheTTL.
	TTL time.Duration

	// Logger; nil disables logging.
	Logger Logger

	// MaxPayloadBytes caps a retrieved payload before decoding; 0 => 8MB.
	MaxPayloadBytes int
}

func NewPinCache(opts CacheOptions) *PinCache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &PinCache{
		pinner: opts.Pinner,
		ttl:    ttl,
		log:    coalesce[Logger](opts.Logger, NopLogger{}),
		dir:    make(map[string]dirEntry),
	}
	c.dec = codec.Limit[pinPayload]{
		Inner:     codec.JSON[pinPayload]{},
		MaxDecode: coalesce(opts.MaxPayloadBytes, defaultMaxPayload),
	}
	if c.pinner == nil {
		c.log.Warn("pinning service not configured, cache disabled", nil)
	}
	return c
}

// Enabled reports whether a pinning capability is configured.
func (c *PinCache) Enabled() bool { return c.pinner != nil }

// Lookup resolves a request through the cache. A false return is always a
// silent miss: unknown fingerprint, expired entry, gateway failure or a
// corrupt payload all land here. Expired and unretrievable entries are
// evicted as a side effect.
//
// On a hit the returned Result is the payload's data field; callers still
// need to check its shape (see Tool.Generate).
func (c *PinCache) Lookup(ctx context.Context, req Request) (*Result, bool) {
	if c.pinner == nil {
		return nil, false
	}
	fp := Fingerprint(req)

	c.mu.Lock()
	e, ok := c.dir[fp]
	if ok && time.Since(e.storedAt) > c.ttl {
		delete(c.dir, fp)
		ok = false
		c.log.Debug("cache entry expired", Fields{"fingerprint": fp})
	}
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	raw, err := c.pinner.Retrieve(ctx, e.cid)
	if err != nil {
		c.log.Warn("cache retrieve failed, evicting entry",
			Fields{"fingerprint": fp, "cid": e.cid, "err": err})
		c.evict(fp)
		return nil, false
	}

	payload, err := c.dec.Decode(raw)
	if err != nil {
		c.log.Warn("cached payload undecodable, evicting entry",
			Fields{"fingerprint": fp, "cid": e.cid, "err": err})
		c.evict(fp)
		return nil, false
	}

	c.log.Info("cache hit", Fields{"fingerprint": fp, "cid": e.cid})
	return payload.Data, true
}

// Store pins the result and records its CID under the request's
// fingerprint, overwriting any previous entry. Returns false (never an
// error) when the cache is disabled or the upload fails.
func (c *PinCache) Store(ctx context.Context, req Request, res *Result) bool {
	if c.pinner == nil {
		return false
	}
	fp := Fingerprint(req)

	payload := pinPayload{
		Timestamp: time.Now().Unix(),
		CacheKey:  fp,
		Data:      res,
	}
	cid, err := c.pinner.Pin(ctx, payload, "pokemon_cache_"+fp, map[string]string{
		"type":      "pokemon_cache",
		"cache_key": fp,
	})
	if err != nil {
		c.log.Warn("cache store failed", Fields{"fingerprint": fp, "err": err})
		return false
	}

	c.mu.Lock()
	c.dir[fp] = dirEntry{cid: cid, storedAt: time.Now()}
	c.mu.Unlock()

	c.log.Info("cache store", Fields{"fingerprint": fp, "cid": cid})
	return true
}

func (c *PinCache) evict(fp string) {
	c.mu.Lock()
	delete(c.dir, fp)
	c.mu.Unlock()
}

// CacheStats is a point-in-time view of the directory.
type CacheStats struct {
	TotalEntries   int   `json:"total_entries"`
	ValidEntries   int   `json:"valid_entries"`
	ExpiredEntries int   `json:"expired_entries"`
	TTLSeconds     int64 `json:"ttl_seconds"`
	Available      bool  `json:"available"`
}

func (c *PinCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	valid := 0
	for _, e := range c.dir {
		if time.Since(e.storedAt) <= c.ttl {
			valid++
		}
	}
	return CacheStats{
		TotalEntries:   len(c.dir),
		ValidEntries:   valid,
		ExpiredEntries: len(c.dir) - valid,
		TTLSeconds:     int64(c.ttl / time.Second),
		Available:      c.pinner != nil,
	}
}

// SweepExpired removes every entry past TTL and returns how many went.
// This is the only bulk mutation; day-to-day expiry happens lazily in
// Lookup.
func (c *PinCache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for fp, e := range c.dir {
		if time.Since(e.storedAt) > c.ttl {
			delete(c.dir, fp)
			removed++
		}
	}
	if removed > 0 {
		c.log.Info("swept expired cache entries", Fields{"removed": removed})
	}
	return removed
}
