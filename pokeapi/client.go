// Package pokeapi is the read-only adapter for the public PokéAPI.
//
// Every accessor returns (record, ok): transport errors, timeouts,
// non-200 statuses and undecodable bodies are logged and reported as
// absent, never as errors. Responses are memoized per URL in a bounded
// memostore.Store, and concurrent fetches for the same URL are collapsed
// through singleflight.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/edgedx/pokedata/memostore"
)

const (
	// DefaultBaseURL is the public v2 REST endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	defaultTimeout  = 10 * time.Second
	defaultThrottle = 100 * time.Millisecond

	// maxResponseSize bounds a single response body (the largest pokemon
	// resources are well under 1MB).
	maxResponseSize = 4 << 20
)

type Config struct {
	// BaseURL without trailing slash; empty means DefaultBaseURL.
	BaseURL string

	// Timeout per request; 0 means 10s.
	Timeout time.Duration

	// Throttle is the politeness delay applied after each network fetch
	// (memo hits pay nothing). 0 means 100ms; negative disables it.
	Throttle time.Duration

	// Memo stores raw response bodies keyed by URL. Nil means an in-process
	// bounded store (memostore.NewLocal).
	Memo memostore.Store
}

type Client struct {
	base     string
	http     *http.Client
	memo     memostore.Store
	group    singleflight.Group
	throttle time.Duration
	logger   *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	throttle := cfg.Throttle
	if throttle == 0 {
		throttle = defaultThrottle
	}

	memo := cfg.Memo
	if memo == nil {
		memo = memostore.NewLocal(memostore.LocalConfig{})
	}

	return &Client{
		base:     base,
		http:     &http.Client{Timeout: timeout},
		memo:     memo,
		throttle: throttle,
		logger:   logger,
	}
}

// Close releases the memo store.
func (c *Client) Close(ctx context.Context) error {
	return c.memo.Close(ctx)
}

// get fetches a relative path, serving repeats from the memo.
func (c *Client) get(ctx context.Context, path string) ([]byte, bool) {
	url := c.base + "/" + path

	if b, ok, err := c.memo.Get(ctx, url); err == nil && ok {
		return b, true
	}

	v, err, _ := c.group.Do(url, func() (any, error) {
		// Re-check under singleflight: a concurrent flight may have
		// populated the memo while we queued.
		if b, ok, err := c.memo.Get(ctx, url); err == nil && ok {
			return b, nil
		}
		body, err := c.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		if _, err := c.memo.Set(ctx, url, body); err != nil {
			c.logger.Debug("memo set failed", zap.String("url", url), zap.Error(err))
		}
		if c.throttle > 0 {
			time.Sleep(c.throttle)
		}
		return body, nil
	})
	if err != nil {
		c.logger.Warn("pokeapi fetch failed", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	return v.([]byte), true
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 120))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON (%d bytes)", len(body))
	}
	return body, nil
}

// Pokemon fetches one pokemon by name or decimal ID.
func (c *Client) Pokemon(ctx context.Context, target string) (*Pokemon, bool) {
	return decodeResource[Pokemon](c, ctx, "pokemon/"+strings.ToLower(target))
}

func (c *Client) Move(ctx context.Context, id int) (*Move, bool) {
	return decodeResource[Move](c, ctx, "move/"+strconv.Itoa(id))
}

func (c *Client) Ability(ctx context.Context, id int) (*Ability, bool) {
	return decodeResource[Ability](c, ctx, "ability/"+strconv.Itoa(id))
}

func (c *Client) Type(ctx context.Context, name string) (*Type, bool) {
	return decodeResource[Type](c, ctx, "type/"+strings.ToLower(name))
}

func (c *Client) EvolutionChain(ctx context.Context, id int) (*EvolutionChain, bool) {
	return decodeResource[EvolutionChain](c, ctx, "evolution-chain/"+strconv.Itoa(id))
}

func decodeResource[T any](c *Client, ctx context.Context, path string) (*T, bool) {
	b, ok := c.get(ctx, path)
	if !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		c.logger.Warn("pokeapi decode failed", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return &v, true
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
