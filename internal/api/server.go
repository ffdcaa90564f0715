package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/marsdencc/clubdata/internal/api/handler"
	"github.com/marsdencc/clubdata/internal/auth"
	"github.com/marsdencc/clubdata/internal/cache"
	"github.com/marsdencc/clubdata/internal/config"
	"github.com/marsdencc/clubdata/internal/db"
	"github.com/marsdencc/clubdata/internal/docstore"
	"github.com/marsdencc/clubdata/internal/fixtures"
	"github.com/marsdencc/clubdata/internal/ladder"
)

// Deps are the wired pipeline pieces the router exposes over HTTP.
type Deps struct {
	Scraper  *ladder.Scraper
	Importer *fixtures.Importer
	Mirror   docstore.Store
	Cache    *cache.Cache
	Pool     *db.Pool // nil when no database is configured
	Verifier auth.Verifier
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps Deps, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(deps.Scraper, deps.Importer, deps.Mirror, deps.Cache, cfg, deps.Pool)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI over the static OpenAPI document in docs/.
	r.Get("/docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "docs/openapi.json")
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/standings", h.GetStandings)
		r.Get("/fixtures", h.GetFixtures)

		// Admin-gated mutations
		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(deps.Verifier))
			r.Get("/standings/scrape", h.ScrapeStandings)
			r.Post("/fixtures/import", h.ImportFixtures)
		})
	})

	return r
}
