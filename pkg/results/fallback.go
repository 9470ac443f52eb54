package results

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tendant/simple-consent/pkg/errs"
)

// WithFallbackForCodes substitutes def for a failure whose code is in
// codes. Successful Results and non-matching failures are returned
// unchanged, error pointer included. The span on ctx, if any, gets a
// best-effort attribute record; tracing can never affect the returned
// value.
func WithFallbackForCodes[T any](ctx context.Context, r Result[T], codes []errs.Code, def T) Result[T] {
	if r.IsOk() {
		return r
	}
	matched := slices.Contains(codes, r.Err().Code())
	recordFallback(ctx, r.Err(), "code", matched)
	if matched {
		return Ok(def)
	}
	return r
}

// WithFallbackForCategory substitutes def for a failure whose category
// equals category. Same passthrough contract as WithFallbackForCodes.
func WithFallbackForCategory[T any](ctx context.Context, r Result[T], category errs.Category, def T) Result[T] {
	if r.IsOk() {
		return r
	}
	matched := r.Err().Category() == category
	recordFallback(ctx, r.Err(), "category", matched)
	if matched {
		return Ok(def)
	}
	return r
}

// recordFallback is a fire-and-forget observer. It must never panic into
// the combinator's return path, so everything is recover-guarded.
func recordFallback(ctx context.Context, e *errs.Error, by string, recovered bool) {
	defer func() {
		_ = recover()
	}()
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent("result.fallback", trace.WithAttributes(
		attribute.String("error.code", string(e.Code())),
		attribute.String("error.category", string(e.Category())),
		attribute.Int("error.status", e.Status()),
		attribute.String("fallback.by", by),
		attribute.Bool("fallback.recovered", recovered),
	))
}
