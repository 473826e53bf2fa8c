// Package httpserver is the thin HTTP shell over the pokedata library.
// It owns no domain logic: decode, validate, dispatch, encode.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/edgedx/pokedata"
	"github.com/edgedx/pokedata/internal/metrics"
)

type Server struct {
	tool   *pokedata.Tool
	cache  *pokedata.PinCache
	logger *zap.Logger
}

func New(tool *pokedata.Tool, cache *pokedata.PinCache, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{tool: tool, cache: cache, logger: logger}
}

func (s *Server) Routes(r *chi.Mux) {
	r.Use(metrics.Middleware)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(2 * time.Minute))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/datasets", s.handleGenerate)
		r.Get("/capabilities", s.handleCapabilities)
		r.Get("/cache/stats", s.handleCacheStats)
		r.Post("/cache/sweep", s.handleCacheSweep)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req pokedata.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.logger.Warn("invalid request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !s.tool.Validate(req) {
		writeError(w, http.StatusBadRequest, "request cannot be served (unknown category or record count too large)")
		return
	}

	res, err := s.tool.Generate(r.Context(), req)
	if err != nil {
		var uc *pokedata.UnsupportedCategoryError
		status := http.StatusBadGateway
		if errors.As(err, &uc) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("generate failed", zap.Error(err))
		writeError(w, status, err.Error())
		return
	}

	if res.Cached {
		metrics.CacheHitsTotal.Inc()
	} else {
		metrics.GeneratedTotal.WithLabelValues(res.DataType).Inc()
	}

	s.logger.Info("dataset served",
		zap.String("category", res.DataType),
		zap.Int("count", res.Count),
		zap.Bool("cached", res.Cached),
		zap.Duration("latency", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tool.Capabilities())
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	if s.cache == nil {
		writeJSON(w, http.StatusOK, pokedata.CacheStats{})
		return
	}
	writeJSON(w, http.StatusOK, s.cache.Stats())
}

func (s *Server) handleCacheSweep(w http.ResponseWriter, _ *http.Request) {
	removed := 0
	if s.cache != nil {
		removed = s.cache.SweepExpired()
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
