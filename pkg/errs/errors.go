package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// DefaultStatus is used when Options.Status is not set.
const DefaultStatus = 500

// Error is the canonical structured error value. Fields are private to
// keep instances immutable after construction; enrichment goes through
// WithMeta, which returns a new value.
type Error struct {
	message  string
	code     Code
	status   int
	category Category
	cause    error
	meta     map[string]any
	kind     *Kind
	pcs      []uintptr
}

// Options configures a new Error. Code is the only field callers are
// expected to always set; everything else has a sensible default.
type Options struct {
	Code     Code
	Status   int
	Category Category
	Cause    error
	Meta     map[string]any
	Kind     *Kind
}

// New creates an Error. Construction never fails: a missing code defaults
// to CodeUnknownError, a missing status to DefaultStatus, a missing
// category to CategoryUnexpected. The metadata map is copied; the caller's
// map stays untouched. A stack trace is captured at the call site.
func New(message string, opts Options) *Error {
	e := &Error{
		message:  message,
		code:     opts.Code,
		status:   opts.Status,
		category: opts.Category,
		cause:    opts.Cause,
		kind:     opts.Kind,
	}
	if e.code == "" {
		e.code = CodeUnknownError
	}
	if e.status <= 0 {
		e.status = DefaultStatus
	}
	if e.category == "" {
		e.category = CategoryUnexpected
	}
	e.meta = make(map[string]any, len(opts.Meta))
	for k, v := range opts.Meta {
		e.meta[k] = v
	}
	e.pcs = callers(3)
	return e
}

// Error returns "message" or "message: cause".
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Message returns the human-readable message without the cause suffix.
func (e *Error) Message() string { return e.message }

// Code returns the fine-grained error code.
func (e *Error) Code() Code { return e.code }

// Status returns the HTTP-style status.
func (e *Error) Status() int { return e.status }

// Category returns the coarse failure category.
func (e *Error) Category() Category { return e.category }

// Unwrap returns the wrapped cause for errors.Is / errors.As traversal.
func (e *Error) Unwrap() error { return e.cause }

// Meta returns a shallow copy of the metadata map. Mutating the copy does
// not affect the error.
func (e *Error) Meta() map[string]any {
	out := make(map[string]any, len(e.meta))
	for k, v := range e.meta {
		out[k] = v
	}
	return out
}

// MetaValue looks up a single metadata key.
func (e *Error) MetaValue(key string) (any, bool) {
	v, ok := e.meta[key]
	return v, ok
}

// WithMeta returns a new Error whose metadata is the shallow merge of the
// receiver's metadata and extra, with extra winning on conflicts. The
// receiver is not modified.
func (e *Error) WithMeta(extra map[string]any) *Error {
	merged := make(map[string]any, len(e.meta)+len(extra))
	for k, v := range e.meta {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	out := *e
	out.meta = merged
	return &out
}

// Is supports errors.Is against a Kind sentinel or against the same
// *Error instance.
func (e *Error) Is(target error) bool {
	if k, ok := target.(*Kind); ok {
		return e.kind == k
	}
	if other, ok := target.(*Error); ok {
		return e == other
	}
	return false
}

// IsError reports whether v is a non-nil *Error. Safe for nil, primitives
// and plain error values. This is an instance check, not a chain search;
// use AsError to look through wrapped causes.
func IsError(v any) bool {
	if v == nil {
		return false
	}
	e, ok := v.(*Error)
	return ok && e != nil
}

// AsError extracts the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Ensure wraps an arbitrary error into an *Error with the given code,
// passing an existing *Error through unchanged. Never double-wraps.
func Ensure(err error, code Code) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return New(err.Error(), Options{Code: code, Cause: err})
}

// Stack renders the stack captured at construction, one frame per line.
func (e *Error) Stack() string {
	if len(e.pcs) == 0 {
		return ""
	}
	var b strings.Builder
	frames := runtime.CallersFrames(e.pcs)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

// Kind names a family of errors, playing the role of an error subclass.
// Membership is tested with errors.Is(err, kind) or kind.Is(err).
type Kind struct {
	name string
}

// NewKind creates a named error family.
func NewKind(name string) *Kind {
	return &Kind{name: name}
}

// Name returns the family name.
func (k *Kind) Name() string { return k.name }

// Error makes Kind usable as an errors.Is target.
func (k *Kind) Error() string { return k.name }

// New constructs an Error belonging to this family.
func (k *Kind) New(message string, opts Options) *Error {
	opts.Kind = k
	return New(message, opts)
}

// Is reports whether err (or anything in its chain) belongs to this family.
func (k *Kind) Is(err error) bool {
	return errors.Is(err, k)
}

// KindOf returns the family of the first *Error in err's chain, if any.
func KindOf(err error) (*Kind, bool) {
	e, ok := AsError(err)
	if !ok || e.kind == nil {
		return nil, false
	}
	return e.kind, true
}
