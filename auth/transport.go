package auth

import (
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/tokengate/observe"
)

// Middleware authenticates each request through a pipeline and hands the
// verified claims to the wrapped handler via the request context. Every
// failure becomes the same 401 response; the internal failure kind goes to
// the logger and metrics only.
type Middleware[T any] struct {
	pipeline *Pipeline[T]
	logger   observe.Logger
	tracer   trace.Tracer
	attempts metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMiddleware creates authentication middleware. A nil observer disables
// telemetry.
func NewMiddleware[T any](pipeline *Pipeline[T], obs observe.Observer) (*Middleware[T], error) {
	if pipeline == nil {
		return nil, errors.New("auth: middleware requires a pipeline")
	}

	logger := observe.NopLogger()
	tracer := tracenoop.NewTracerProvider().Tracer("tokengate")
	var meter metric.Meter = metricnoop.NewMeterProvider().Meter("tokengate")
	if obs != nil {
		logger = obs.Logger()
		tracer = obs.Tracer()
		meter = obs.Meter()
	}

	attempts, err := meter.Int64Counter("auth.attempts",
		metric.WithDescription("Authentication attempts by outcome"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("auth.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Token verification duration"))
	if err != nil {
		return nil, err
	}

	return &Middleware[T]{
		pipeline: pipeline,
		logger:   logger,
		tracer:   tracer,
		attempts: attempts,
		duration: duration,
	}, nil
}

// Handler wraps next so it only runs for authenticated requests. Verified
// claims are available to next through ClaimsFrom.
func (m *Middleware[T]) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "auth.verify")
		start := time.Now()

		claims, err := m.pipeline.Authenticate(ctx, r.Header)

		elapsed := time.Since(start).Seconds()
		if err != nil {
			kind := Kind(err)
			span.SetAttributes(attribute.String("auth.failure", kind))
			span.End()
			m.record(r, elapsed, "failure", kind)
			m.logger.Warn(ctx, "authentication failed",
				observe.Field{Key: "kind", Value: kind},
				observe.Field{Key: "path", Value: r.URL.Path})
			Unauthorized(w)
			return
		}
		span.End()
		m.record(r, elapsed, "success", "")

		next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
	})
}

func (m *Middleware[T]) record(r *http.Request, elapsed float64, outcome, kind string) {
	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if kind != "" {
		attrs = append(attrs, attribute.String("kind", kind))
	}
	m.attempts.Add(r.Context(), 1, metric.WithAttributes(attrs...))
	m.duration.Record(r.Context(), elapsed, metric.WithAttributes(attrs...))
}

// Require wraps next with authentication and no telemetry. It is the
// common path for callers that do not run an observer.
func Require[T any](pipeline *Pipeline[T], next http.Handler) http.Handler {
	m, err := NewMiddleware(pipeline, nil)
	if err != nil {
		panic(err)
	}
	return m.Handler(next)
}

// Unauthorized writes the uniform rejection response: a 401 with a Bearer
// challenge and a generic body. Internal failure detail is never echoed to
// the client.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
