package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/edgedx/pokedata"
	"github.com/edgedx/pokedata/internal/httpserver"
	"github.com/edgedx/pokedata/internal/metrics"
	logzap "github.com/edgedx/pokedata/log/zap"
	"github.com/edgedx/pokedata/memostore"
	"github.com/edgedx/pokedata/pin"
	"github.com/edgedx/pokedata/pin/pinata"
	"github.com/edgedx/pokedata/pokeapi"
)

type config struct {
	Port            string
	CacheTTLMinutes int
	MemoBackend     string // "local", "bigcache" or "ristretto"
	PokeAPIBaseURL  string
}

func loadConfig() config {
	return config{
		Port:            getenv("PORT", "8080"),
		CacheTTLMinutes: getenvInt("CACHE_TTL_MINUTES", 30),
		MemoBackend:     getenv("MEMO_BACKEND", "local"),
		PokeAPIBaseURL:  getenv("POKEAPI_BASE_URL", pokeapi.DefaultBaseURL),
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("pokedatad exited with error: %v", err)
	}
}

func run() error {
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	metrics.Register()

	memo, err := buildMemo(cfg.MemoBackend)
	if err != nil {
		return err
	}

	fetcher := pokeapi.NewClient(pokeapi.Config{
		BaseURL: cfg.PokeAPIBaseURL,
		Memo:    memo,
	}, logger.Named("pokeapi"))
	defer fetcher.Close(context.Background())

	var pinner pin.Pinner
	if pc := pinata.FromEnv(); pc.Configured() {
		client, err := pinata.New(pc)
		if err != nil {
			return fmt.Errorf("pinata client: %w", err)
		}
		pinner = client
		logger.Info("pinning cache enabled",
			zap.Int("ttl_minutes", cfg.CacheTTLMinutes))
	} else {
		logger.Warn("pinata credentials absent, pinning cache disabled")
	}

	cache := pokedata.NewPinCache(pokedata.CacheOptions{
		Pinner: pinner,
		TTL:    time.Duration(cfg.CacheTTLMinutes) * time.Minute,
		Logger: logzap.ZapLogger{L: logger.Named("pincache")},
	})

	tool, err := pokedata.New(pokedata.Options{
		Fetcher: fetcher,
		Cache:   cache,
		Logger:  logzap.ZapLogger{L: logger.Named("tool")},
	})
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	httpserver.New(tool, cache, logger).Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func buildMemo(backend string) (memostore.Store, error) {
	switch backend {
	case "local", "":
		return memostore.NewLocal(memostore.LocalConfig{}), nil
	case "bigcache":
		return memostore.NewBigCache(memostore.BigCacheConfig{
			LifeWindow:         time.Hour,
			HardMaxCacheSizeMB: 64,
		})
	case "ristretto":
		return memostore.NewRistretto(memostore.RistrettoConfig{
			NumCounters: 50_000,
			MaxCostMB:   64,
		})
	default:
		return nil, fmt.Errorf("unknown memo backend %q", backend)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
