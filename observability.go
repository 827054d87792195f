package sqltour

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	tracerName = "github.com/rowanlith/sqltour"
	meterName  = "github.com/rowanlith/sqltour"
)

// Metrics holds the OpenTelemetry metric instruments.
type Metrics struct {
	StatementCount    metric.Int64Counter
	StatementDuration metric.Float64Histogram
	StatementErrors   metric.Int64Counter
}

// obsConfig holds logging, tracing, and metrics configuration for a Session.
type obsConfig struct {
	Logger             *zap.Logger
	Tracer             trace.Tracer
	Meter              metric.Meter
	Metrics            *Metrics
	SlowQueryThreshold time.Duration
	LogStatements      bool // Log every statement with its SQL text (echo mode)
}

func defaultObsConfig() *obsConfig {
	return &obsConfig{
		SlowQueryThreshold: 200 * time.Millisecond,
	}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger for the session.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		s.obs.Logger = logger
	}
}

// WithTracer sets the OpenTelemetry tracer for the session.
func WithTracer(tracer trace.Tracer) SessionOption {
	return func(s *Session) {
		s.obs.Tracer = tracer
	}
}

// WithDefaultTracer uses the global OpenTelemetry tracer.
func WithDefaultTracer() SessionOption {
	return func(s *Session) {
		s.obs.Tracer = otel.Tracer(tracerName)
	}
}

// WithMeter sets the OpenTelemetry meter for metrics.
func WithMeter(meter metric.Meter) SessionOption {
	return func(s *Session) {
		s.obs.Meter = meter
		s.obs.Metrics = initMetrics(meter)
	}
}

// WithDefaultMeter uses the global OpenTelemetry meter.
func WithDefaultMeter() SessionOption {
	return func(s *Session) {
		meter := otel.Meter(meterName)
		s.obs.Meter = meter
		s.obs.Metrics = initMetrics(meter)
	}
}

// WithSlowQueryThreshold sets the slow query threshold for logging.
func WithSlowQueryThreshold(d time.Duration) SessionOption {
	return func(s *Session) {
		s.obs.SlowQueryThreshold = d
	}
}

// WithStatementLogging enables logging of every statement, including its SQL
// text. This is the toolkit's echo mode.
func WithStatementLogging(enabled bool) SessionOption {
	return func(s *Session) {
		s.obs.LogStatements = enabled
	}
}

func initMetrics(meter metric.Meter) *Metrics {
	count, _ := meter.Int64Counter("sqltour.statement.count",
		metric.WithDescription("Total number of SQL statements executed"),
		metric.WithUnit("{statement}"),
	)

	duration, _ := meter.Float64Histogram("sqltour.statement.duration",
		metric.WithDescription("Statement execution duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)

	errors, _ := meter.Int64Counter("sqltour.statement.errors",
		metric.WithDescription("Total number of statement errors"),
		metric.WithUnit("{error}"),
	)

	return &Metrics{
		StatementCount:    count,
		StatementDuration: duration,
		StatementErrors:   errors,
	}
}

// spanWrapper wraps a trace.Span to handle nil spans gracefully.
type spanWrapper struct {
	span trace.Span
}

func (w spanWrapper) End() {
	if w.span != nil {
		w.span.End()
	}
}

func (w spanWrapper) RecordError(err error) {
	if w.span != nil {
		w.span.RecordError(err)
	}
}

func (w spanWrapper) SetStatus(code codes.Code, description string) {
	if w.span != nil {
		w.span.SetStatus(code, description)
	}
}

func (w spanWrapper) SetAttributes(kv ...attribute.KeyValue) {
	if w.span != nil {
		w.span.SetAttributes(kv...)
	}
}

// startSpan starts a new span if tracing is enabled.
func (s *Session) startSpan(ctx context.Context, name string) (context.Context, spanWrapper) {
	if s.obs.Tracer == nil {
		return ctx, spanWrapper{nil}
	}
	ctx, span := s.obs.Tracer.Start(ctx, name)
	return ctx, spanWrapper{span}
}

// observe records the outcome of one statement on the span, the metric
// instruments and the logger. Called from every Session operation.
func (s *Session) observe(ctx context.Context, span spanWrapper, operation, query string, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.String("db.operation", operation),
		attribute.String("db.system", s.dialect.Name()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	s.recordMetrics(ctx, operation, duration, err)
	s.logStatement(operation, query, duration, err)
}

func (s *Session) recordMetrics(ctx context.Context, operation string, duration time.Duration, err error) {
	if s.obs.Metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("db.operation", operation),
		attribute.String("db.system", s.dialect.Name()),
	)

	s.obs.Metrics.StatementCount.Add(ctx, 1, attrs)
	s.obs.Metrics.StatementDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		s.obs.Metrics.StatementErrors.Add(ctx, 1, attrs)
	}
}

func (s *Session) logStatement(operation, query string, duration time.Duration, err error) {
	if s.obs.Logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("operation", operation),
		zap.Duration("duration", duration),
	}
	if s.obs.LogStatements {
		fields = append(fields, zap.String("statement", query))
	}

	switch {
	case err != nil:
		s.obs.Logger.Error("statement failed", append(fields, zap.Error(err))...)
	case duration > s.obs.SlowQueryThreshold:
		s.obs.Logger.Warn("slow statement", fields...)
	case s.obs.LogStatements:
		s.obs.Logger.Info("statement executed", fields...)
	}
}
