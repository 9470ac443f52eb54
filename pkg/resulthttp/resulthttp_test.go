package resulthttp

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-consent/pkg/errs"
	"github.com/tendant/simple-consent/pkg/results"
)

func newTestHandler(expose bool) *Handler {
	return NewHandler(Options{
		ExposeMeta: expose,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRenderStructuredError(t *testing.T) {
	h := newTestHandler(false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/consents/42", nil)

	h.Render(rec, req, errs.New("consent not found", errs.Options{
		Code:     errs.CodeNotFound,
		Status:   404,
		Category: errs.CategoryStorage,
		Meta:     map[string]any{"consentId": "42"},
	}))

	assert.Equal(t, 404, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "not found", body.Code)
	assert.Equal(t, "consent not found", body.Message)
	assert.Equal(t, "storage", body.Category)
	assert.NotEmpty(t, body.RequestID)
	// Meta is suppressed outside development.
	assert.Nil(t, body.Meta)
	assert.Empty(t, body.Stack)
}

func TestRenderGenericErrorIs500(t *testing.T) {
	h := newTestHandler(false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.Render(rec, req, errors.New("pq: connection refused"))

	assert.Equal(t, 500, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, string(errs.CodeUnexpectedError), body.Code)
	// Internal details never leak in production mode.
	assert.Equal(t, "internal server error", body.Message)
}

func TestRenderExposeMeta(t *testing.T) {
	h := newTestHandler(true)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.Render(rec, req, errs.New("boom", errs.Options{
		Code:   errs.CodeInternalServerError,
		Status: 500,
		Meta:   map[string]any{"db": "consents"},
	}))

	body := decodeBody(t, rec)
	assert.Equal(t, "boom", body.Message)
	assert.Equal(t, "consents", body.Meta["db"])
	assert.NotEmpty(t, body.Stack)
}

func TestRenderValidationMetaAlwaysExposed(t *testing.T) {
	h := newTestHandler(false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/consents", nil)

	h.Render(rec, req, errs.New("validation failed", errs.Options{
		Code:   errs.CodeInvalidRequest,
		Status: 400,
		Meta: map[string]any{
			errs.MetaKeyValidationErrors: []map[string]any{{"path": []string{"age"}}},
			"internalDetail":             "secret",
		},
	}))

	assert.Equal(t, 400, rec.Code)
	body := decodeBody(t, rec)
	require.NotNil(t, body.Meta)
	assert.Contains(t, body.Meta, errs.MetaKeyValidationErrors)
	assert.NotContains(t, body.Meta, "internalDetail")
}

func TestRespond(t *testing.T) {
	h := newTestHandler(false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/consents", nil)
	Respond(h, rec, req, results.Ok(map[string]string{"id": "c-1"}), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"c-1"`)

	rec = httptest.NewRecorder()
	Respond(h, rec, req, results.Fail[map[string]string]("nope", errs.Options{
		Code:   errs.CodeConflict,
		Status: 409,
	}), http.StatusCreated)

	assert.Equal(t, 409, rec.Code)
}

func TestWrapReturnedError(t *testing.T) {
	h := newTestHandler(false)
	handler := h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return errs.New("forbidden", errs.Options{Code: errs.CodeForbidden, Status: 403})
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 403, rec.Code)
}

func TestWrapThrownStructuredError(t *testing.T) {
	h := newTestHandler(false)
	handler := h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		panic(errs.New("conflict", errs.Options{Code: errs.CodeConflict, Status: 409}))
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 409, rec.Code)
	assert.Equal(t, "conflict", decodeBody(t, rec).Code)
}

func TestWrapUnknownPanicIs500(t *testing.T) {
	h := newTestHandler(false)
	handler := h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		panic("slice index out of range")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 500, rec.Code)
	assert.Equal(t, "internal server error", decodeBody(t, rec).Message)
}

func TestRecovererPassesUnknownPanics(t *testing.T) {
	h := newTestHandler(false)

	thrown := h.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errs.New("gone", errs.Options{Code: errs.CodeNotFound, Status: 404}))
	}))
	rec := httptest.NewRecorder()
	thrown.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 404, rec.Code)

	opaque := h.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("not ours")
	}))
	assert.Panics(t, func() {
		opaque.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
