package pipeline

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/tendant/simple-consent/pkg/errs"
	"github.com/tendant/simple-consent/pkg/results"
)

// Issue is one structured validation failure, suitable for the
// validationErrors metadata block.
type Issue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
	Value   any      `json:"value,omitempty"`
}

// Validation builds a function that validates untyped input against an
// OpenAPI schema and transforms the validated data. The returned function
// never returns an error outside the Result:
//
//   - schema violations yield a failure with code "invalid request",
//     status 400 and the issue list under meta["validationErrors"]
//   - a transform error or panic yields a failure with code "bad request",
//     status 400, the thrown error as the cause and the validated input
//     under meta["inputData"]
func Validation[T any](schema *openapi3.Schema, transform func(any) (T, error)) func(any) results.Result[T] {
	return func(data any) results.Result[T] {
		normalized := normalizeFormValues(data)

		if err := schema.VisitJSON(normalized, openapi3.MultiErrors()); err != nil {
			return results.Fail[T]("validation failed", errs.Options{
				Code:     errs.CodeInvalidRequest,
				Status:   400,
				Category: errs.CategoryValidation,
				Meta:     map[string]any{errs.MetaKeyValidationErrors: collectIssues(err)},
			})
		}

		out, err := runTransform(transform, normalized)
		if err != nil {
			return results.Failure[T](errs.New("failed to transform validated data", errs.Options{
				Code:     errs.CodeBadRequest,
				Status:   400,
				Category: errs.CategoryValidation,
				Cause:    err,
				Meta:     map[string]any{"inputData": normalized},
			}))
		}
		return results.Ok(out)
	}
}

// runTransform shields the pipeline from panicking transformers.
func runTransform[T any](transform func(any) (T, error), input any) (out T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if recErr, ok := rec.(error); ok {
				err = recErr
				return
			}
			err = fmt.Errorf("transform panic: %v", rec)
		}
	}()
	return transform(input)
}

func collectIssues(err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		issues := make([]Issue, 0, len(e))
		for _, sub := range e {
			issues = append(issues, collectIssues(sub)...)
		}
		return issues
	case *openapi3.SchemaError:
		msg := e.Reason
		if msg == "" {
			msg = e.Error()
		}
		return []Issue{{Path: e.JSONPointer(), Message: msg, Value: e.Value}}
	default:
		return []Issue{{Message: err.Error()}}
	}
}
