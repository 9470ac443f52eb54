package results

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-consent/pkg/errs"
)

func TestOkIdentity(t *testing.T) {
	r := Ok(42)

	assert.True(t, r.IsOk())
	assert.False(t, r.IsErr())
	assert.Nil(t, r.Err())

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 42, r.MustValue())
	assert.Equal(t, 42, r.UnwrapOr(0))
}

func TestFail(t *testing.T) {
	r := Fail[string]("User not found", errs.Options{
		Code:   errs.CodeNotFound,
		Status: 404,
		Meta:   map[string]any{"userId": "123"},
	})

	require.True(t, r.IsErr())
	e := r.Err()
	assert.Equal(t, "User not found", e.Message())
	assert.Equal(t, errs.CodeNotFound, e.Code())
	assert.Equal(t, 404, e.Status())
	assert.Equal(t, "123", e.Meta()["userId"])

	assert.Equal(t, "fallback", r.UnwrapOr("fallback"))
	_, ok := r.Value()
	assert.False(t, ok)
	assert.Panics(t, func() { r.MustValue() })
}

func TestFailureNilError(t *testing.T) {
	r := Failure[int](nil)
	require.True(t, r.IsErr())
	assert.Equal(t, errs.CodeUnexpectedError, r.Err().Code())
}

func TestMap(t *testing.T) {
	doubled := Map(Ok(21), func(v int) int { return v * 2 })
	assert.Equal(t, 42, doubled.MustValue())

	str := Map(Ok(42), strconv.Itoa)
	assert.Equal(t, "42", str.MustValue())

	failed := Fail[int]("boom", errs.Options{Code: errs.CodeBadRequest})
	mapped := Map(failed, func(v int) int { return v * 2 })
	require.True(t, mapped.IsErr())
	assert.Same(t, failed.Err(), mapped.Err())
}

func TestAndThen(t *testing.T) {
	parse := func(s string) Result[int] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Fail[int]("not a number", errs.Options{Code: errs.CodeBadRequest, Status: 400})
		}
		return Ok(n)
	}

	assert.Equal(t, 7, AndThen(Ok("7"), parse).MustValue())

	bad := AndThen(Ok("seven"), parse)
	require.True(t, bad.IsErr())
	assert.Equal(t, errs.CodeBadRequest, bad.Err().Code())

	// Short-circuit: the chained function never runs on failure.
	called := false
	failed := Fail[string]("boom", errs.Options{Code: errs.CodeConflict})
	out := AndThen(failed, func(string) Result[int] {
		called = true
		return Ok(0)
	})
	assert.False(t, called)
	assert.Same(t, failed.Err(), out.Err())
}

func TestOrElse(t *testing.T) {
	recovered := Fail[int]("boom", errs.Options{Code: errs.CodeNotFound}).
		OrElse(func(e *errs.Error) Result[int] { return Ok(0) })
	assert.Equal(t, 0, recovered.MustValue())

	// No-op on success.
	called := false
	ok := Ok(1).OrElse(func(e *errs.Error) Result[int] {
		called = true
		return Ok(2)
	})
	assert.False(t, called)
	assert.Equal(t, 1, ok.MustValue())
}

func TestMatch(t *testing.T) {
	okBranch := Match(Ok(42),
		func(v int) string { return "value " + strconv.Itoa(v) },
		func(e *errs.Error) string { return "error " + string(e.Code()) },
	)
	assert.Equal(t, "value 42", okBranch)

	errBranch := Match(Fail[int]("boom", errs.Options{Code: errs.CodeConflict}),
		func(v int) string { return "value" },
		func(e *errs.Error) string { return "error " + string(e.Code()) },
	)
	assert.Equal(t, "error conflict", errBranch)
}
