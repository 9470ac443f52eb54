package results

import (
	"fmt"

	"github.com/tendant/simple-consent/pkg/errs"
)

// Result holds either a value of type T or a structured error. Exactly one
// side is populated. The zero value is Ok with T's zero value; use the
// constructors.
type Result[T any] struct {
	value T
	err   *errs.Error
}

// Ok builds a successful Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure builds a failed Result from an existing structured error.
func Failure[T any](err *errs.Error) Result[T] {
	if err == nil {
		err = errs.New("failure constructed without an error", errs.Options{Code: errs.CodeUnexpectedError})
	}
	return Result[T]{err: err}
}

// Fail builds a failed Result from an error description.
func Fail[T any](message string, opts errs.Options) Result[T] {
	return Result[T]{err: errs.New(message, opts)}
}

// IsOk reports whether the Result holds a value.
func (r Result[T]) IsOk() bool { return r.err == nil }

// IsErr reports whether the Result holds an error.
func (r Result[T]) IsErr() bool { return r.err != nil }

// Err returns the error, or nil for a successful Result.
func (r Result[T]) Err() *errs.Error { return r.err }

// Value returns the value and whether the Result is successful.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

// UnwrapOr returns the value, or def when the Result is a failure.
func (r Result[T]) UnwrapOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// MustValue returns the value or panics. For test assertions only;
// production code consumes Results through Match, Map and AndThen.
func (r Result[T]) MustValue() T {
	if r.err != nil {
		panic(fmt.Sprintf("MustValue called on failed result: %v", r.err))
	}
	return r.value
}

// OrElse chains a recovery function on failure. Successful Results pass
// through unchanged.
func (r Result[T]) OrElse(f func(*errs.Error) Result[T]) Result[T] {
	if r.err == nil {
		return r
	}
	return f(r.err)
}

// Map applies f to the value of a successful Result. Failures pass through
// unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Ok(f(r.value))
}

// AndThen chains a Result-returning function on success, short-circuiting
// on failure.
func AndThen[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return f(r.value)
}

// Match consumes the Result exhaustively, returning whichever branch ran.
func Match[T, R any](r Result[T], onOk func(T) R, onErr func(*errs.Error) R) R {
	if r.err != nil {
		return onErr(r.err)
	}
	return onOk(r.value)
}
