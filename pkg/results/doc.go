// Package results provides a typed success/failure container used instead
// of bare error returns on the expected failure paths of the consent
// platform.
//
// A Result[T] holds either a value or a *errs.Error, never both. Results
// are immutable; every combinator returns a new Result. Async[T] is the
// asynchronous counterpart: a goroutine-backed promise that resolves to a
// Result and is awaited with a context.
//
// # Basic Usage
//
//	import "github.com/tendant/simple-consent/pkg/results"
//
//	func findRecord(id string) results.Result[Record] {
//		rec, ok := store[id]
//		if !ok {
//			return results.Fail[Record]("record not found", errs.Options{
//				Code:   errs.CodeNotFound,
//				Status: 404,
//			})
//		}
//		return results.Ok(rec)
//	}
//
//	name := results.Match(findRecord(id),
//		func(r Record) string { return r.Name },
//		func(e *errs.Error) string { return "unknown" },
//	)
//
// # Wrapping fallible code
//
// TryCatch and TryCatchAsync run a function that may return an error or
// panic and capture either outcome into the failure channel. An error that
// is already a *errs.Error passes through untouched; anything else is
// wrapped with the supplied code.
//
// # Recovery
//
// WithFallbackForCodes and WithFallbackForCategory substitute a default
// value for failures matching a code list or a category, passing
// everything else through unchanged. Successful results are never
// replaced.
//
// No combinator in this package retries: a failed Result is the terminal
// outcome of its invocation.
package results
