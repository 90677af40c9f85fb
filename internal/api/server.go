package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rinkstat/rinkstat-data/internal/api/handler"
	"github.com/rinkstat/rinkstat-data/internal/cache"
	"github.com/rinkstat/rinkstat-data/internal/config"
	"github.com/rinkstat/rinkstat-data/internal/metrics"
	"github.com/rinkstat/rinkstat-data/internal/store"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *store.Pool, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/schedule/{season}", h.GetSchedule)
		r.Get("/status/{season}", h.GetIngestStatus)
		r.Get("/games/{season}/{gameID}", h.GetGame)
		r.Get("/games/{season}/{gameID}/events", h.GetGameEvents)
		r.Get("/games/{season}/{gameID}/shifts", h.GetGameShifts)
	})

	return r
}
