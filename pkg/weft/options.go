package weft

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// defaultStormBudget caps consecutive synchronous passes in Flush. A
// well-behaved tree settles in a handful of passes; hitting the budget
// means an effect or setter re-triggers renders unconditionally.
const defaultStormBudget = 64

// defaultTracerName is the tracer resolved by WithTracing.
const defaultTracerName = "weft"

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus metrics to the driver.
func WithMetrics(m *Metrics) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

// WithTracer sets an explicit OpenTelemetry tracer; one span is emitted
// per render pass.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Driver) {
		d.tracer = tracer
	}
}

// WithTracing enables tracing with the globally registered provider.
func WithTracing() Option {
	return func(d *Driver) {
		d.tracer = otel.Tracer(defaultTracerName)
	}
}

// WithStormBudget overrides the Flush pass budget.
func WithStormBudget(budget int) Option {
	return func(d *Driver) {
		if budget > 0 {
			d.budget = budget
		}
	}
}

// WithDebug enables the hook runtime's slot-kind protocol check.
func WithDebug() Option {
	return func(d *Driver) {
		d.debug = true
	}
}
