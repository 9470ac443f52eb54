package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	err := New("boom", Options{})

	assert.Equal(t, "boom", err.Message())
	assert.Equal(t, CodeUnknownError, err.Code())
	assert.Equal(t, DefaultStatus, err.Status())
	assert.Equal(t, CategoryUnexpected, err.Category())
	assert.Nil(t, err.Unwrap())
	assert.NotNil(t, err.Meta())
	assert.Empty(t, err.Meta())
}

func TestNewWithOptions(t *testing.T) {
	cause := errors.New("row missing")
	err := New("User not found", Options{
		Code:     CodeNotFound,
		Status:   404,
		Category: CategoryStorage,
		Cause:    cause,
		Meta:     map[string]any{"userId": "123"},
	})

	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, 404, err.Status())
	assert.Equal(t, CategoryStorage, err.Category())
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "123", err.Meta()["userId"])
	assert.Equal(t, "User not found: row missing", err.Error())
}

func TestNewCopiesMeta(t *testing.T) {
	meta := map[string]any{"a": 1}
	err := New("boom", Options{Code: CodeBadRequest, Meta: meta})

	meta["a"] = 2
	meta["b"] = 3

	assert.Equal(t, 1, err.Meta()["a"])
	_, ok := err.MetaValue("b")
	assert.False(t, ok)
}

func TestWithMetaDoesNotMutateOriginal(t *testing.T) {
	orig := New("boom", Options{Code: Code("X")})
	enriched := orig.WithMeta(map[string]any{"a": 1})

	assert.Empty(t, orig.Meta())
	assert.Equal(t, map[string]any{"a": 1}, enriched.Meta())

	// Unchanged fields carry over.
	assert.Equal(t, orig.Message(), enriched.Message())
	assert.Equal(t, orig.Code(), enriched.Code())
	assert.Equal(t, orig.Status(), enriched.Status())
	assert.Equal(t, orig.Category(), enriched.Category())
}

func TestWithMetaMergeNewKeysWin(t *testing.T) {
	orig := New("boom", Options{Code: Code("X"), Meta: map[string]any{"a": 1, "b": 2}})
	enriched := orig.WithMeta(map[string]any{"b": 20, "c": 30})

	assert.Equal(t, map[string]any{"a": 1, "b": 2}, orig.Meta())
	assert.Equal(t, map[string]any{"a": 1, "b": 20, "c": 30}, enriched.Meta())
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError(New("boom", Options{Code: CodeBadRequest})))

	assert.False(t, IsError(nil))
	assert.False(t, IsError((*Error)(nil)))
	assert.False(t, IsError("boom"))
	assert.False(t, IsError(42))
	assert.False(t, IsError(struct{ Message string }{"boom"}))
	assert.False(t, IsError(errors.New("plain")))
	assert.False(t, IsError(fmt.Errorf("wrapped: %w", errors.New("plain"))))
}

func TestAsErrorChain(t *testing.T) {
	inner := New("inner", Options{Code: CodeNotFound})
	wrapped := fmt.Errorf("outer: %w", inner)

	found, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, found)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestEnsure(t *testing.T) {
	assert.Nil(t, Ensure(nil, CodeUnknownError))

	already := New("boom", Options{Code: CodeConflict})
	assert.Same(t, already, Ensure(already, CodeUnknownError))

	plain := errors.New("disk full")
	wrapped := Ensure(plain, CodeDatabaseQueryError)
	assert.Equal(t, CodeDatabaseQueryError, wrapped.Code())
	assert.Equal(t, "disk full", wrapped.Message())
	assert.Equal(t, plain, wrapped.Unwrap())
}

func TestKindMembership(t *testing.T) {
	paymentError := NewKind("PaymentError")
	otherKind := NewKind("OtherError")

	err := paymentError.New("card expired", Options{Code: Code("payment declined")})

	assert.Equal(t, "PaymentError", paymentError.Name())
	assert.True(t, errors.Is(err, paymentError))
	assert.True(t, paymentError.Is(err))
	assert.False(t, errors.Is(err, otherKind))
	assert.True(t, IsError(err))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Same(t, paymentError, kind)

	// Kind survives wrapping.
	wrapped := fmt.Errorf("charging: %w", err)
	assert.True(t, errors.Is(wrapped, paymentError))

	// Plain errors have no kind.
	_, ok = KindOf(New("boom", Options{Code: CodeBadRequest}))
	assert.False(t, ok)
}

func TestStackCaptured(t *testing.T) {
	err := New("boom", Options{Code: CodeBadRequest})
	assert.Contains(t, err.Stack(), "errors_test.go")
}
