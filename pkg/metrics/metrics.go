// Package metrics exposes Prometheus collectors for upload widget activity.
//
// A nil *Recorder is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upload outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeNoFiles   = "no_files"
	OutcomeNoURL     = "no_url"
	OutcomeTransport = "transport_error"
)

// Config configures the metric collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "uploadkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for upload duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metric collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the upload duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "uploadkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Recorder holds the widget collectors.
type Recorder struct {
	uploadsTotal     *prometheus.CounterVec
	uploadDuration   prometheus.Histogram
	filesSelected    prometheus.Histogram
	previewsRendered prometheus.Counter
	notifications    *prometheus.CounterVec
	wsClients        prometheus.Gauge
}

// New registers the collectors and returns a Recorder.
//
// Metrics collected:
//   - uploadkit_uploads_total: Counter of submit outcomes
//   - uploadkit_upload_duration_seconds: Histogram of POST round trips
//   - uploadkit_files_selected: Histogram of files per selection
//   - uploadkit_previews_rendered_total: Counter of preview images built
//   - uploadkit_notifications_total: Counter of toasts by level
//   - uploadkit_websocket_clients: Gauge of connected preview pages
//
// New panics if the collectors are already registered with the registry.
func New(opts ...Option) *Recorder {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if len(config.Buckets) == 0 {
		config.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(config.Registry)

	return &Recorder{
		uploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "uploads_total",
			Help:        "Total number of submit attempts by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		uploadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "upload_duration_seconds",
			Help:        "Upload request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		filesSelected: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "files_selected",
			Help:        "Number of files in each selection",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 25, 50},
		}),

		previewsRendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "previews_rendered_total",
			Help:        "Total number of preview images rendered",
			ConstLabels: config.ConstLabels,
		}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of notifications by level",
			ConstLabels: config.ConstLabels,
		}, []string{"level"}),

		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_clients",
			Help:        "Number of connected preview pages",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordUpload records a submit outcome. A positive duration is observed
// for attempts that reached the network.
func (r *Recorder) RecordUpload(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.uploadsTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		r.uploadDuration.Observe(duration.Seconds())
	}
}

// RecordSelection records the size of a file selection.
func (r *Recorder) RecordSelection(n int) {
	if r == nil {
		return
	}
	r.filesSelected.Observe(float64(n))
}

// RecordPreviews adds n rendered preview images.
func (r *Recorder) RecordPreviews(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.previewsRendered.Add(float64(n))
}

// RecordNotification counts a toast.
func (r *Recorder) RecordNotification(level string) {
	if r == nil {
		return
	}
	r.notifications.WithLabelValues(level).Inc()
}

// ClientConnected increments the connected page gauge.
func (r *Recorder) ClientConnected() {
	if r == nil {
		return
	}
	r.wsClients.Inc()
}

// ClientDisconnected decrements the connected page gauge.
func (r *Recorder) ClientDisconnected() {
	if r == nil {
		return
	}
	r.wsClients.Dec()
}
