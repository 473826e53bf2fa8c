// Package pinata implements pin.Pinner against the hosted Pinata service.
//
// Uploads go to the pinJSONToIPFS endpoint, authenticated with a JWT
// bearer token when configured, else with the api-key/secret header pair.
// Retrieval tries the Pinata gateway first, then the public ipfs.io
// gateway; the first 200 wins.
package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultEndpoint     = "https://api.pinata.cloud/pinning/pinJSONToIPFS"
	defaultPinTimeout   = 30 * time.Second
	defaultFetchTimeout = 10 * time.Second

	// maxRetrieveSize bounds a single gateway response body.
	maxRetrieveSize = 16 << 20
)

// DefaultGateways are CID URL templates tried in order by Retrieve.
var DefaultGateways = []string{
	"https://gateway.pinata.cloud/ipfs/%s",
	"https://ipfs.io/ipfs/%s",
}

type Config struct {
	// JWT bearer token; preferred when set.
	JWT string

	// APIKey/SecretKey pair, used when JWT is empty.
	APIKey    string
	SecretKey string

	Endpoint     string        // 0 => pinJSONToIPFS
	Gateways     []string      // CID URL templates; empty => DefaultGateways
	PinTimeout   time.Duration // 0 => 30s
	FetchTimeout time.Duration // 0 => 10s per gateway
}

// FromEnv reads PINATA_JWT_TOKEN, PINATA_API_KEY and PINATA_SECRET_API_KEY.
func FromEnv() Config {
	return Config{
		JWT:       os.Getenv("PINATA_JWT_TOKEN"),
		APIKey:    os.Getenv("PINATA_API_KEY"),
		SecretKey: os.Getenv("PINATA_SECRET_API_KEY"),
	}
}

// Configured reports whether either credential form is present. An
// unconfigured client cannot be constructed; callers should run without a
// cache instead.
func (c Config) Configured() bool {
	return c.JWT != "" || (c.APIKey != "" && c.SecretKey != "")
}

type Client struct {
	cfg      Config
	pinHTTP  *http.Client
	gateHTTP *http.Client
}

func New(cfg Config) (*Client, error) {
	if !cfg.Configured() {
		return nil, errors.New("pinata: missing credentials (JWT or api key pair)")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if len(cfg.Gateways) == 0 {
		cfg.Gateways = DefaultGateways
	}
	if cfg.PinTimeout <= 0 {
		cfg.PinTimeout = defaultPinTimeout
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	return &Client{
		cfg:      cfg,
		pinHTTP:  &http.Client{Timeout: cfg.PinTimeout},
		gateHTTP: &http.Client{Timeout: cfg.FetchTimeout},
	}, nil
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

func (c *Client) Pin(ctx context.Context, content any, name string, keyvalues map[string]string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"pinataContent": content,
		"pinataMetadata": map[string]any{
			"name":      name,
			"keyvalues": keyvalues,
		},
	})
	if err != nil {
		return "", fmt.Errorf("pinata: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("pinata: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.JWT != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)
	} else {
		req.Header.Set("pinata_api_key", c.cfg.APIKey)
		req.Header.Set("pinata_secret_api_key", c.cfg.SecretKey)
	}

	resp, err := c.pinHTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinata: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return "", fmt.Errorf("pinata: upload status %d: %s", resp.StatusCode, string(b))
	}

	var pr pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("pinata: decode response: %w", err)
	}
	if pr.IpfsHash == "" {
		return "", errors.New("pinata: response missing IpfsHash")
	}
	return pr.IpfsHash, nil
}

func (c *Client) Retrieve(ctx context.Context, cid string) ([]byte, error) {
	var lastErr error
	for _, tmpl := range c.cfg.Gateways {
		url := fmt.Sprintf(tmpl, cid)
		b, err := c.fetchGateway(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		return b, nil
	}
	return nil, fmt.Errorf("pinata: retrieve %s: all gateways failed: %w", cid, lastErr)
}

func (c *Client) fetchGateway(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.gateHTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxRetrieveSize))
}
