package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry bundles logging, tracing, metrics and events.
type Telemetry struct {
	Logger  *Logger
	Tracer  *Tracer
	Metrics *Metrics
	Events  *EventPublisher
	Config  *Config
}

// telemetryContextKey is the context key for telemetry instances.
type telemetryContextKey struct{}

// NewTelemetry creates a new telemetry instance from configuration.
func NewTelemetry(cfg *Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	tracer, err := NewTracer(cfg.Tracing, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, err
	}

	metrics, err := NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	events, err := NewEventPublisher(cfg.Events)
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		Logger:  logger,
		Tracer:  tracer,
		Metrics: metrics,
		Events:  events,
		Config:  cfg,
	}, nil
}

// WithContext adds the telemetry instance and its logger to the context.
func (t *Telemetry) WithContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, telemetryContextKey{}, t)
	return t.Logger.WithContext(ctx)
}

// FromTelemetryContext retrieves the telemetry instance from the context.
// If no telemetry is found, it returns nil.
func FromTelemetryContext(ctx context.Context) *Telemetry {
	if t, ok := ctx.Value(telemetryContextKey{}).(*Telemetry); ok {
		return t
	}
	return nil
}

// Shutdown delivers pending events, flushes spans and writes the metrics
// textfile. All steps run; the first error is returned.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.Events.Shutdown(ctx),
		t.Tracer.Shutdown(ctx),
		t.Metrics.WriteTextfile(),
	)
}

// InstrumentedContext carries the span, logger and timer of one operation.
type InstrumentedContext struct {
	Ctx       context.Context
	Span      trace.Span
	Logger    *Logger
	Timer     *Timer
	operation string
	metrics   *Metrics
}

// StartOperation begins an instrumented operation with logging, tracing and timing.
func (t *Telemetry) StartOperation(ctx context.Context, component, operation string, attrs ...attribute.KeyValue) *InstrumentedContext {
	attrs = append(attrs, AttrOperation.String(operation))
	spanCtx, span := t.Tracer.StartSpan(ctx, component+"."+operation, attrs...)

	logger := t.Logger.NewComponentLogger(component).WithField("operation", operation)
	if span.SpanContext().IsValid() {
		logger = logger.WithFields(map[string]interface{}{
			"trace_id": span.SpanContext().TraceID().String(),
			"span_id":  span.SpanContext().SpanID().String(),
		})
	}

	return &InstrumentedContext{
		Ctx:       logger.WithContext(spanCtx),
		Span:      span,
		Logger:    logger,
		Timer:     NewTimer(),
		operation: operation,
		metrics:   t.Metrics,
	}
}

// StartOperation begins an instrumented operation using the telemetry stored
// in ctx. Without telemetry only the logger and timer are populated.
func StartOperation(ctx context.Context, component, operation string, attrs ...attribute.KeyValue) *InstrumentedContext {
	if tel := FromTelemetryContext(ctx); tel != nil {
		return tel.StartOperation(ctx, component, operation, attrs...)
	}
	return &InstrumentedContext{
		Ctx:       ctx,
		Logger:    FromContext(ctx),
		Timer:     NewTimer(),
		operation: operation,
	}
}

// End finishes the operation with StatusOK or StatusError depending on err.
func (ic *InstrumentedContext) End(err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	ic.EndWithStatus(status, err)
}

// EndWithStatus finishes the operation, recording status and err on the
// span, the metrics and the log.
func (ic *InstrumentedContext) EndWithStatus(status string, err error) {
	duration := ic.Timer.Duration()

	if ic.Span != nil {
		if err != nil {
			RecordError(ic.Span, err)
		} else {
			RecordSuccess(ic.Span)
		}
		ic.Span.End()
	}

	if ic.metrics != nil {
		ic.metrics.RecordOperation(ic.operation, status, duration)
	}

	logger := ic.Logger.WithFields(map[string]interface{}{
		"status":      status,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	})
	if err != nil {
		logger.WithError(err).Error("operation failed")
		return
	}
	logger.Debug("operation completed")
}
