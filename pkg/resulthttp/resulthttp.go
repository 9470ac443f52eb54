// Package resulthttp is the HTTP boundary adapter for structured errors.
//
// It converts a failed Result (or a thrown *errs.Error) into a JSON error
// response with the appropriate status code, and wraps error-returning
// handlers so this conversion happens in exactly one place. How much of
// the error's metadata reaches the client is a deployment decision:
// production responses carry only code, category and a generic message
// for 5xx failures.
package resulthttp

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/simple-consent/pkg/errs"
	"github.com/tendant/simple-consent/pkg/results"
)

// ErrorResponse is the JSON body written for a failed request.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Category  string         `json:"category"`
	RequestID string         `json:"requestId"`
	Meta      map[string]any `json:"meta,omitempty"`
	Stack     string         `json:"stack,omitempty"`
}

// Options configures the boundary.
type Options struct {
	// ExposeMeta allows error metadata and stack traces into responses.
	// Keep this off outside development.
	ExposeMeta bool
	// Logger receives one structured log line per rendered error.
	// Defaults to slog.Default.
	Logger *slog.Logger
}

// Handler renders errors and wraps endpoint functions. A single Handler is
// shared by all routes of a service.
type Handler struct {
	opts Options
}

// NewHandler creates a boundary handler.
func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{opts: opts}
}

// Render writes err as a JSON error response. A structured error supplies
// status, code, category and metadata; anything else becomes a generic
// 500. Internal (5xx) messages are replaced by a generic one unless
// metadata exposure is enabled.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request, err error) {
	e := errs.Ensure(err, errs.CodeUnexpectedError)
	if e == nil {
		return
	}

	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	body := ErrorResponse{
		Code:      string(e.Code()),
		Message:   e.Message(),
		Category:  string(e.Category()),
		RequestID: requestID,
	}
	if h.opts.ExposeMeta {
		if meta := e.Meta(); len(meta) > 0 {
			body.Meta = meta
		}
		body.Stack = e.Stack()
	} else if e.Status() >= http.StatusInternalServerError {
		body.Message = "internal server error"
	} else if issues, ok := e.MetaValue(errs.MetaKeyValidationErrors); ok {
		// Field-level validation detail is client-facing even in
		// production.
		body.Meta = map[string]any{errs.MetaKeyValidationErrors: issues}
	}

	logLevel := slog.LevelWarn
	if e.Status() >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	h.opts.Logger.LogAttrs(r.Context(), logLevel, "request failed",
		slog.String("requestId", requestID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", e.Status()),
		slog.String("code", string(e.Code())),
		slog.String("category", string(e.Category())),
		slog.String("error", e.Error()),
	)

	render.Status(r, e.Status())
	render.JSON(w, r, body)
}

// Respond writes a Result: the value as JSON with okStatus on success,
// the rendered error on failure.
func Respond[T any](h *Handler, w http.ResponseWriter, r *http.Request, res results.Result[T], okStatus int) {
	if res.IsErr() {
		h.Render(w, r, res.Err())
		return
	}
	v, _ := res.Value()
	render.Status(r, okStatus)
	render.JSON(w, r, v)
}

// HandlerFunc is an endpoint that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap converts a HandlerFunc into an http.HandlerFunc. A returned error
// is rendered; a panicked *errs.Error is treated as thrown and rendered
// the same way; any other panic becomes a generic 500. This is the only
// place the error channel turns into transport shape.
func (h *Handler) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if e, ok := rec.(*errs.Error); ok {
					h.Render(w, r, e)
					return
				}
				h.Render(w, r, errs.New(fmt.Sprintf("panic: %v", rec), errs.Options{
					Code:   errs.CodeUnexpectedError,
					Status: http.StatusInternalServerError,
				}))
			}
		}()
		if err := fn(w, r); err != nil {
			h.Render(w, r, err)
		}
	}
}

// Recoverer is a chi middleware catching structured errors thrown from
// handlers that are not wrapped with Wrap.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if e, ok := rec.(*errs.Error); ok {
					h.Render(w, r, e)
					return
				}
				panic(rec)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
