package results

import (
	"context"
	"fmt"

	"github.com/tendant/simple-consent/pkg/errs"
)

// Async is a promise that resolves to a Result[T]. It is created by Go,
// Resolved or the async constructors and consumed with Await. Combinators
// attached to an Async run strictly in attachment order once the
// underlying computation settles.
type Async[T any] struct {
	done chan struct{}
	res  Result[T]
}

// Go launches fn on its own goroutine. A panic inside fn is captured into
// the failure channel; it never escapes the promise. Cancellation of the
// underlying work is fn's business via the supplied context; the promise
// itself adds no timeout.
func Go[T any](ctx context.Context, fn func(context.Context) Result[T]) *Async[T] {
	a := &Async[T]{done: make(chan struct{})}
	go func() {
		defer close(a.done)
		defer func() {
			if rec := recover(); rec != nil {
				a.res = Failure[T](panicError(rec))
			}
		}()
		a.res = fn(ctx)
	}()
	return a
}

// Resolved wraps an already-computed Result into an Async.
func Resolved[T any](r Result[T]) *Async[T] {
	a := &Async[T]{done: make(chan struct{}), res: r}
	close(a.done)
	return a
}

// FailAsync builds an Async pre-resolved to a failure.
func FailAsync[T any](message string, opts errs.Options) *Async[T] {
	return Resolved(Fail[T](message, opts))
}

// Await blocks until the promise settles and returns its Result. Awaiting
// more than once returns the same Result. If the caller's context ends
// first, Await returns a timeout-coded failure; the underlying computation
// keeps running and later Awaits can still observe its outcome.
func (a *Async[T]) Await(ctx context.Context) Result[T] {
	select {
	case <-a.done:
		return a.res
	case <-ctx.Done():
		return Fail[T]("await interrupted", errs.Options{
			Code:     errs.CodeTimeout,
			Status:   408,
			Category: errs.CategoryNetwork,
			Cause:    ctx.Err(),
		})
	}
}

// MapAsync applies f to the eventual value. Failures pass through.
func MapAsync[T, U any](a *Async[T], f func(T) U) *Async[U] {
	out := &Async[U]{done: make(chan struct{})}
	go func() {
		defer close(out.done)
		<-a.done
		out.res = Map(a.res, f)
	}()
	return out
}

// AndThenAsync chains a Result-returning function on the eventual success.
func AndThenAsync[T, U any](a *Async[T], f func(T) Result[U]) *Async[U] {
	out := &Async[U]{done: make(chan struct{})}
	go func() {
		defer close(out.done)
		<-a.done
		out.res = AndThen(a.res, f)
	}()
	return out
}

// OrElseAsync chains a recovery function on the eventual failure.
func OrElseAsync[T any](a *Async[T], f func(*errs.Error) Result[T]) *Async[T] {
	out := &Async[T]{done: make(chan struct{})}
	go func() {
		defer close(out.done)
		<-a.done
		out.res = a.res.OrElse(f)
	}()
	return out
}

func panicError(rec any) *errs.Error {
	if e, ok := rec.(*errs.Error); ok {
		return e
	}
	var cause error
	if err, ok := rec.(error); ok {
		cause = err
	}
	return errs.New(fmt.Sprintf("panic: %v", rec), errs.Options{
		Code:  errs.CodeUnexpectedError,
		Cause: cause,
		Meta:  map[string]any{"panic": fmt.Sprintf("%v", rec)},
	})
}
