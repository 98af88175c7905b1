// Package observability sets up logging and tracing for the service.
package observability

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/url-analytics/internal/config"
)

// NewLogger returns the request logger shared by the router and the application.
// Production logs are JSON at info level, other environments get concise debug output.
func NewLogger(serviceName, env string) *httplog.Logger {
	return newLogger(os.Stdout, serviceName, env)
}

func newLogger(w io.Writer, serviceName, env string) *httplog.Logger {
	opts := httplog.Options{
		LogLevel:        slog.LevelDebug,
		Concise:         true,
		QuietDownRoutes: []string{"/api/v1/ping", "/api/v1/metrics"},
		QuietDownPeriod: 10 * time.Second,
		Tags: map[string]string{
			"env": env,
		},
		Writer: w,
	}

	if env == config.EnvProd {
		opts.LogLevel = slog.LevelInfo
		opts.JSON = true
		opts.Concise = false
	}

	return httplog.NewLogger(serviceName, opts)
}
