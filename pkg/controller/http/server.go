package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/m-mizutani/ctxlog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/covidash/frontend"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/usecase"
)

// DefaultBasePath is the sub-path the dashboard is served under
const DefaultBasePath = "/dash"

// Config holds the server configuration
type Config struct {
	addr            string
	basePath        string
	queryRateLimit  int
	queryRateWindow time.Duration
	frontendFS      http.FileSystem
}

// ConfigOption configures Config
type ConfigOption func(*Config)

// WithBasePath overrides the sub-path of the dashboard
func WithBasePath(p string) ConfigOption {
	return func(c *Config) {
		c.basePath = "/" + strings.Trim(p, "/")
	}
}

// WithQueryRateLimit limits free-text queries per client IP
func WithQueryRateLimit(limit int, window time.Duration) ConfigOption {
	return func(c *Config) {
		c.queryRateLimit = limit
		c.queryRateWindow = window
	}
}

// WithFrontendFS serves the dashboard from fsys instead of the embedded build
func WithFrontendFS(fsys http.FileSystem) ConfigOption {
	return func(c *Config) {
		c.frontendFS = fsys
	}
}

// NewConfig creates a new server configuration
func NewConfig(addr string, opts ...ConfigOption) *Config {
	c := &Config{
		addr:            addr,
		basePath:        DefaultBasePath,
		queryRateLimit:  10,
		queryRateWindow: time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UseCases bundles the use cases the server dispatches to
type UseCases struct {
	dashboard usecase.DashboardUseCase
	query     usecase.QueryUseCase
	auth      usecase.AuthUseCase
}

// NewUseCases creates the use case bundle. auth may be nil, which disables free-text queries.
func NewUseCases(dashboard usecase.DashboardUseCase, query usecase.QueryUseCase, auth usecase.AuthUseCase) *UseCases {
	return &UseCases{
		dashboard: dashboard,
		query:     query,
		auth:      auth,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, cfg *Config, uc *UseCases) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(AuthContextMiddleware(uc.auth))
	router.Use(middleware.Recoverer)

	dashboard := NewDashboardHandler(uc.dashboard)
	query := NewQueryHandler(uc.query)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	base := cfg.basePath
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, base+"/", http.StatusFound)
	})
	router.Get(base, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, base+"/", http.StatusMovedPermanently)
	})

	router.Route(base+"/api", func(r chi.Router) {
		r.Get("/countries", dashboard.HandleCountries)
		r.Get("/countries/{country}/view", dashboard.HandleView)
		r.Get("/countries/{country}/comments", dashboard.HandleListComments)
		r.Post("/select", dashboard.HandleSelect)

		r.Get("/presets", query.HandlePresets)
		r.Post("/presets/{name}", query.HandleRunPreset)

		if uc.auth != nil {
			r.Group(func(r chi.Router) {
				r.Use(RequireScope(model.ScopeQuery))
				if cfg.queryRateLimit > 0 {
					r.Use(httprate.LimitByIP(cfg.queryRateLimit, cfg.queryRateWindow))
				}
				r.Post("/query", query.HandleRunAdHoc)
			})
		} else {
			ctxlog.From(ctx).Warn("Token secret is not configured, free-text query endpoint is disabled")
		}
	})

	fsys := cfg.frontendFS
	if fsys == nil {
		embedded, err := frontend.Assets()
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback", "error", err)
		} else {
			fsys = embedded
		}
	}

	if fsys != nil {
		assets, err := NewAssetHandler(fsys)
		if err != nil {
			return nil, err
		}
		router.Handle(base+"/*", http.StripPrefix(base, assets))
	} else {
		router.Get(base+"/*", handleFallbackHome)
	}

	return &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "covidash",
	})
}

// handleFallbackHome handles the dashboard path when the frontend is not available
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>covidash</title></head>
<body>
  <h1>COVID-19 Data Visualization</h1>
  <p>The dashboard frontend is not bundled in this build. The JSON API is available under <code>api/</code>.</p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
