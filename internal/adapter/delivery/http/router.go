// Package http provides the HTTP delivery layer for the URL analytics service.
// This package contains the HTTP handlers and related types used for processing
// incoming requests, validating input, and formatting responses.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/url-analytics/docs"
	"github.com/vadimbarashkov/url-analytics/pkg/middleware/recoverer"
)

// ReservedPaths are the top-level path segments owned by fixed routes.
// Short codes must never take one of these values.
var ReservedPaths = []string{"shorten", "analytics", "api", "swagger", "docs"}

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the URL analytics API.
// baseURL is the origin used to build shortened links.
func NewRouter(logger *httplog.Logger, urlUseCase urlUseCase, metrics *Metrics, baseURL string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", PasswordHeader},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(nameSpanByRoute)
	r.Use(recoverer.New(logger.Logger))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(docs.Swagger) //nolint:errcheck
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	})

	h := newURLHandler(urlUseCase, validator.New(), baseURL)

	r.Post("/shorten", h.shortenURL)
	r.Get("/analytics/{shortCode}", h.getAnalytics)
	r.Get("/{shortCode}", h.redirect)

	return r
}
