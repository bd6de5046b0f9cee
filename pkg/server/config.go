package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/uploadkit/pkg/render"
)

// Config holds configuration for the preview server.
type Config struct {
	// Address is the address to listen on.
	// Default: ":8080".
	Address string

	// Title is the page title.
	// Default: "uploadkit".
	Title string

	// Loader inlines preview images; typically the widget's blob.Registry.
	Loader render.Loader

	// Gatherer serves /metrics.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// CheckOrigin validates websocket origins.
	// Default: same-origin check by gorilla/websocket.
	CheckOrigin func(r *http.Request) bool

	// ReadHeaderTimeout is the maximum duration for reading request headers.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Logger is the structured logger.
	// Default: slog.Default().
	Logger *slog.Logger

	// TracerProvider traces websocket commands.
	// Default: otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		Title:             "uploadkit",
		Gatherer:          prometheus.DefaultGatherer,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		Logger:            slog.Default(),
		TracerProvider:    otel.GetTracerProvider(),
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.Title == "" {
		out.Title = defaults.Title
	}
	if out.Gatherer == nil {
		out.Gatherer = defaults.Gatherer
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.Logger == nil {
		out.Logger = defaults.Logger
	}
	if out.TracerProvider == nil {
		out.TracerProvider = defaults.TracerProvider
	}
	return &out
}
