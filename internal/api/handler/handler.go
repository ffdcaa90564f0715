// Package handler provides HTTP handlers for all API endpoints.
// Handlers read and write whole documents through the docstore; there is no
// row-level data access anywhere in this service.
package handler

import (
	"net/http"
	"time"

	"github.com/marsdencc/clubdata/internal/api/respond"
	"github.com/marsdencc/clubdata/internal/cache"
	"github.com/marsdencc/clubdata/internal/config"
	"github.com/marsdencc/clubdata/internal/db"
	"github.com/marsdencc/clubdata/internal/docstore"
	"github.com/marsdencc/clubdata/internal/fixtures"
	"github.com/marsdencc/clubdata/internal/ladder"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	scraper  *ladder.Scraper
	importer *fixtures.Importer
	mirror   docstore.Store
	cache    *cache.Cache
	cfg      *config.Config
	pool     *db.Pool // nil when no database is configured
}

// New creates a Handler with shared dependencies.
func New(scraper *ladder.Scraper, importer *fixtures.Importer, mirror docstore.Store,
	c *cache.Cache, cfg *config.Config, pool *db.Pool) *Handler {
	return &Handler{
		scraper:  scraper,
		importer: importer,
		mirror:   mirror,
		cache:    c,
		cfg:      cfg,
		pool:     pool,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Marsden CC Club Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity. Reports "not configured"
// rather than unhealthy when the service runs file-only.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
