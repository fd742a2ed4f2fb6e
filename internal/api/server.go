// Package api exposes the scraper over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"

	"github.com/wearstack/scout/internal/config"
	"github.com/wearstack/scout/internal/observability"
	"github.com/wearstack/scout/internal/storage"
	"github.com/wearstack/scout/internal/types"
)

// ProductScraper runs one scrape end to end.
type ProductScraper interface {
	Scrape(ctx context.Context, url string) (*types.ScrapeResult, error)
}

// Server provides the scrape REST API.
type Server struct {
	mux     *http.ServeMux
	srv     *http.Server
	scraper ProductScraper
	archive storage.Archive
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewServer creates the API server. archive and metrics may be nil.
func NewServer(cfg *config.ServerConfig, scraper ProductScraper, archive storage.Archive, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		scraper: scraper,
		archive: archive,
		metrics: metrics,
		logger:  logger.With("component", "api_server"),
	}

	s.registerRoutes(cfg.RequestsPerSec)
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.mux,
	}
	return s
}

func (s *Server) registerRoutes(requestsPerSec float64) {
	lmt := tollbooth.NewLimiter(requestsPerSec, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Hour,
	})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})

	s.mux.Handle("POST /api/scrape", tollbooth.LimitFuncHandler(lmt, s.handleScrape))
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
}

// Start runs the server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductURL string `json:"product_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if body.ProductURL == "" {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "product_url is required"})
		return
	}

	result, err := s.scraper.Scrape(r.Context(), body.ProductURL)
	if err != nil {
		s.scrapeError(w, body.ProductURL, err)
		return
	}

	if s.archive != nil {
		if err := s.archive.Store(result); err != nil {
			s.logger.Error("archive store failed", "url", body.ProductURL, "error", err)
		} else if s.metrics != nil {
			s.metrics.ResultsStored.Add(1)
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) scrapeError(w http.ResponseWriter, url string, err error) {
	s.logger.Error("scrape failed", "url", url, "error", err)

	var fetchErr *types.FetchError
	switch {
	case errors.Is(err, types.ErrInvalidURL):
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &fetchErr):
		s.jsonResponse(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		s.jsonResponse(w, http.StatusOK, map[string]int64{})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
