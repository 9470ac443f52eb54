package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tendant/simple-consent/pkg/errs"
	"github.com/tendant/simple-consent/pkg/results"
)

// RetrievalOption configures a retrieval pipeline.
type RetrievalOption func(*retrievalConfig)

type retrievalConfig struct {
	errorCode errs.Code
	custom    bool
}

// WithErrorCode overrides the pipeline's default not-found error code.
// With a custom code, every non-structured fetch failure is wrapped using
// that code with status 400 regardless of the message.
func WithErrorCode(code errs.Code) RetrievalOption {
	return func(c *retrievalConfig) {
		if code != "" && code != errs.CodeNotFound {
			c.errorCode = code
			c.custom = true
		}
	}
}

// Retrieval builds a function that fetches a resource, null-checks it and
// transforms it, resolving to an Async result with not-found semantics:
//
//   - a fetch rejection becomes a structured error per resolveFetchError
//   - nil fetched data is treated as "resource not found" before anything
//     else
//   - a transform error or panic always yields code "bad request" with
//     status 400, even when a custom error code is configured; transform
//     failures are client-shaped, not resource-shaped
func Retrieval[T any](fetch func(context.Context) (any, error), transform func(any) (T, error), opts ...RetrievalOption) func(context.Context) *results.Async[T] {
	cfg := retrievalConfig{errorCode: errs.CodeNotFound}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context) *results.Async[T] {
		return results.Go(ctx, func(ctx context.Context) results.Result[T] {
			raw, err := runFetch(fetch, ctx)
			if err != nil {
				return results.Failure[T](resolveFetchError(err, cfg))
			}
			if isNil(raw) {
				return results.Failure[T](resolveFetchError(errors.New("resource not found"), cfg))
			}

			out, err := runTransform(transform, raw)
			if err != nil {
				return results.Failure[T](errs.New("failed to transform retrieved data", errs.Options{
					Code:   errs.CodeBadRequest,
					Status: 400,
					Cause:  err,
				}))
			}
			return results.Ok(out)
		})
	}
}

func runFetch(fetch func(context.Context) (any, error), ctx context.Context) (raw any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if recErr, ok := rec.(error); ok {
				err = recErr
				return
			}
			err = fmt.Errorf("fetch panic: %v", rec)
		}
	}()
	return fetch(ctx)
}

// resolveFetchError wraps a fetch failure. A structured error always
// passes through unchanged. With a custom code every other failure is
// wrapped as <custom>/400; with the default code the message decides:
// "not found" (case-insensitive) maps to not found/404, anything else to
// bad request/400.
func resolveFetchError(err error, cfg retrievalConfig) *errs.Error {
	if e, ok := err.(*errs.Error); ok {
		return e
	}
	if cfg.custom {
		return errs.New(err.Error(), errs.Options{
			Code:   cfg.errorCode,
			Status: 400,
			Cause:  err,
		})
	}
	if strings.Contains(strings.ToLower(err.Error()), "not found") {
		return errs.New(err.Error(), errs.Options{
			Code:   errs.CodeNotFound,
			Status: 404,
			Cause:  err,
		})
	}
	return errs.New(err.Error(), errs.Options{
		Code:   errs.CodeBadRequest,
		Status: 400,
		Cause:  err,
	})
}

// isNil catches both nil interfaces and typed nil pointers, maps and
// slices hiding inside a non-nil interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
