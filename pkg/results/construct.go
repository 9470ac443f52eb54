package results

import (
	"context"

	"github.com/tendant/simple-consent/pkg/errs"
)

// ErrorMapper converts a caught error into a structured error. When a
// mapper is supplied to TryCatch or TryCatchAsync its output is used
// verbatim as the failure.
type ErrorMapper func(error) *errs.Error

// TryCatch runs fn and captures its outcome into a Result. A returned
// error or a panic becomes the failure; neither escapes. Mapping rules:
//
//   - mapper non-nil: the failure is exactly mapper's return value.
//   - the error is already a *errs.Error: passed through, never re-wrapped.
//   - otherwise: wrapped with code (CodeUnknownError when empty), the
//     original error preserved as the cause.
func TryCatch[T any](fn func() (T, error), code errs.Code, mapper ErrorMapper) (res Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Failure[T](mapCaught(panicError(rec), code, mapper))
		}
	}()
	v, err := fn()
	if err != nil {
		return Failure[T](mapCaught(err, code, mapper))
	}
	return Ok(v)
}

// TryCatchAsync is the asynchronous counterpart of TryCatch. The returned
// promise always settles to a Result whose eventual error, if any, is a
// structured error built with the same mapping rules.
func TryCatchAsync[T any](ctx context.Context, fn func(context.Context) (T, error), code errs.Code, mapper ErrorMapper) *Async[T] {
	return Go(ctx, func(ctx context.Context) Result[T] {
		return TryCatch(func() (T, error) { return fn(ctx) }, code, mapper)
	})
}

// FromFuture converts an in-flight computation into an Async, wrapping a
// rejection into a structured error with the given code. The raw error
// text is kept under meta["error"] for debugging.
func FromFuture[T any](ctx context.Context, future func(context.Context) (T, error), code errs.Code) *Async[T] {
	if code == "" {
		code = errs.CodeUnknownError
	}
	return Go(ctx, func(ctx context.Context) Result[T] {
		v, err := future(ctx)
		if err != nil {
			if e, ok := err.(*errs.Error); ok {
				return Failure[T](e)
			}
			return Failure[T](errs.New(err.Error(), errs.Options{
				Code:  code,
				Cause: err,
				Meta:  map[string]any{"error": err.Error()},
			}))
		}
		return Ok(v)
	})
}

func mapCaught(err error, code errs.Code, mapper ErrorMapper) *errs.Error {
	if mapper != nil {
		return mapper(err)
	}
	if e, ok := err.(*errs.Error); ok {
		return e
	}
	if code == "" {
		code = errs.CodeUnknownError
	}
	return errs.New(err.Error(), errs.Options{Code: code, Cause: err})
}
