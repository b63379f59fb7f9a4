package weft

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "weft").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration seconds.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the pass-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the driver's Prometheus instruments.
type Metrics struct {
	passes       prometheus.Counter
	passDuration prometheus.Histogram
	mutations    prometheus.Counter
	effectsRun   prometheus.Counter
	sweptPaths   prometheus.Counter
	hookPaths    prometheus.Gauge
}

// NewMetrics registers and returns the driver metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{
		Namespace: "weft",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "render_passes_total",
			Help:        "Total committed render passes.",
			ConstLabels: cfg.ConstLabels,
		}),
		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "render_pass_duration_seconds",
			Help:        "Duration of render passes including sweep and effect flush.",
			Buckets:     cfg.Buckets,
			ConstLabels: cfg.ConstLabels,
		}),
		mutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "surface_mutations_total",
			Help:        "Total mutations applied to the render surface.",
			ConstLabels: cfg.ConstLabels,
		}),
		effectsRun: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "effects_run_total",
			Help:        "Total effect callbacks executed.",
			ConstLabels: cfg.ConstLabels,
		}),
		sweptPaths: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "swept_paths_total",
			Help:        "Total unmounted hook identities garbage-collected.",
			ConstLabels: cfg.ConstLabels,
		}),
		hookPaths: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "hook_paths",
			Help:        "Live hook identities.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

func (m *Metrics) observePass(elapsed time.Duration, mutations uint64, swept, effects, livePaths int) {
	m.passes.Inc()
	m.passDuration.Observe(elapsed.Seconds())
	m.mutations.Add(float64(mutations))
	m.effectsRun.Add(float64(effects))
	m.sweptPaths.Add(float64(swept))
	m.hookPaths.Set(float64(livePaths))
}
