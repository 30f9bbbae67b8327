package config

import (
	"log/slog"
	"net/http"
	"time"

	controller "github.com/secmon-lab/covidash/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr            string
	BasePath        string
	FrontendDir     string
	QueryRateLimit  int
	QueryRateWindow time.Duration
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("COVIDASH_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "base-path",
			Usage:       "URL sub-path the dashboard is served under",
			Value:       controller.DefaultBasePath,
			Sources:     cli.EnvVars("COVIDASH_BASE_PATH"),
			Destination: &s.BasePath,
		},
		&cli.StringFlag{
			Name:        "frontend-dir",
			Usage:       "Serve the dashboard from this directory instead of the embedded build",
			Sources:     cli.EnvVars("COVIDASH_FRONTEND_DIR"),
			Destination: &s.FrontendDir,
		},
		&cli.IntFlag{
			Name:        "query-rate-limit",
			Usage:       "Free-text queries allowed per client IP and window (0 disables the limit)",
			Value:       10,
			Sources:     cli.EnvVars("COVIDASH_QUERY_RATE_LIMIT"),
			Destination: &s.QueryRateLimit,
		},
		&cli.DurationFlag{
			Name:        "query-rate-window",
			Usage:       "Window of the free-text query rate limit",
			Value:       time.Minute,
			Sources:     cli.EnvVars("COVIDASH_QUERY_RATE_WINDOW"),
			Destination: &s.QueryRateWindow,
		},
	}
}

// Configure builds the HTTP server configuration
func (s *Server) Configure() *controller.Config {
	opts := []controller.ConfigOption{
		controller.WithBasePath(s.BasePath),
		controller.WithQueryRateLimit(s.QueryRateLimit, s.QueryRateWindow),
	}
	if s.FrontendDir != "" {
		opts = append(opts, controller.WithFrontendFS(http.Dir(s.FrontendDir)))
	}
	return controller.NewConfig(s.Addr, opts...)
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.String("base_path", s.BasePath),
		slog.String("frontend_dir", s.FrontendDir),
		slog.Int("query_rate_limit", s.QueryRateLimit),
		slog.Duration("query_rate_window", s.QueryRateWindow),
	)
}
