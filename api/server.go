package api

import (
	"log/slog"
	"strings"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/poiesic/granttag/metrics"
)

// Option configures the fiber application.
type Option func(*serverOptions) error

type serverOptions struct {
	allowedOrigins string
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// WithAllowedOrigins sets the CORS origins: "*" or a comma-separated list.
// Default is "*".
func WithAllowedOrigins(origins string) Option {
	return func(o *serverOptions) error {
		o.allowedOrigins = normalizeOrigins(origins)
		return nil
	}
}

// WithMetrics instruments requests and serves m at /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *serverOptions) error {
		o.metrics = m
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *serverOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewApp builds the fiber application serving catalog.
func NewApp(catalog Catalog, opts ...Option) (*fiber.App, error) {
	o := &serverOptions{
		allowedOrigins: "*",
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               "granttag",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: o.allowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	if o.metrics != nil {
		prom := fiberprometheus.NewWithRegistry(o.metrics.Registry(), "granttag", "granttag", "http", nil)
		app.Use(prom.Middleware)
		app.Get("/metrics", adaptor.HTTPHandler(o.metrics.Handler()))
	}

	NewHandler(catalog, o.logger).Register(app)
	return app, nil
}

func normalizeOrigins(origins string) string {
	origins = strings.TrimSpace(origins)
	if origins == "" || origins == "*" {
		return "*"
	}
	parts := strings.Split(origins, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ",")
}
