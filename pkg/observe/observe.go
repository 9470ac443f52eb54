// Package observe wraps function execution in OpenTelemetry spans and
// records structured-error attributes on failure.
//
// Tracing here is strictly an observer: a wrapped function's error is
// returned unchanged, a panic propagates unchanged, and a missing or
// broken tracer never affects the primary control flow.
package observe

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tendant/simple-consent/pkg/errs"
)

const tracerName = "github.com/tendant/simple-consent"

// tracer resolves through the active span's provider when one exists, so
// spans nest under whatever provider the caller configured; otherwise the
// global provider applies.
func tracer(ctx context.Context) trace.Tracer {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return span.TracerProvider().Tracer(tracerName)
	}
	return otel.Tracer(tracerName)
}

// WithSpan runs fn inside a span. On success the span status is OK; on
// error the span records error attributes and an Error status, and the
// original error is returned unchanged. A panic inside fn is recorded and
// re-raised.
func WithSpan(ctx context.Context, name string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := tracer(ctx).Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			span.SetStatus(codes.Error, "panic")
			span.AddEvent("panic")
			panic(rec)
		}
	}()

	if err := fn(ctx); err != nil {
		RecordError(ctx, err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// WithChildSpan is WithSpan for callers that only want a span when a
// parent is already active on the context; without one, fn runs with no
// new span.
func WithChildSpan(ctx context.Context, name string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return fn(ctx)
	}
	return WithSpan(ctx, name, fn, attrs...)
}

// RecordError attaches error attributes to the span on ctx, best-effort.
// Structured errors contribute code, status, category and metadata;
// anything else just the message. Never panics, never modifies err.
func RecordError(ctx context.Context, err error) {
	defer func() {
		_ = recover()
	}()
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	if e, ok := errs.AsError(err); ok {
		attrs := []attribute.KeyValue{
			attribute.String("error.code", string(e.Code())),
			attribute.Int("error.status", e.Status()),
			attribute.String("error.category", string(e.Category())),
		}
		if meta := e.Meta(); len(meta) > 0 {
			if raw, jerr := json.Marshal(meta); jerr == nil {
				attrs = append(attrs, attribute.String("error.meta", string(raw)))
			}
		}
		span.SetAttributes(attrs...)
		return
	}
	span.SetAttributes(attribute.String("error.message", err.Error()))
}
