// Package errs provides the structured error type shared across the consent
// platform.
//
// Every failure that crosses a package boundary is represented as an *Error
// carrying a machine-readable code, an HTTP-style status, a coarse category,
// an optional cause and free-form metadata. Errors are immutable once
// constructed; enrichment always produces a new value.
//
// # Basic Usage
//
//	import "github.com/tendant/simple-consent/pkg/errs"
//
//	err := errs.New("consent record not found", errs.Options{
//		Code:   errs.CodeNotFound,
//		Status: 404,
//		Meta:   map[string]any{"consentId": id},
//	})
//
//	// Attach more context without mutating the original
//	err2 := err.WithMeta(map[string]any{"subjectId": subjectID})
//
// # Error Codes and Categories
//
// Codes are fine-grained identifiers ("not found", "invalid request"),
// categories group failures for recovery and telemetry ("validation",
// "storage"). Both come from sealed registries; domain packages extend them
// with NewCodes / NewCategories and Merge rather than mutating the shipped
// sets:
//
//	billingCodes := errs.NewCodes(map[errs.Code]string{
//		"payment declined": "The payment provider declined the charge",
//	})
//	all := errs.MergeCodes(errs.ErrorCodes, billingCodes)
//
// # Error Families
//
// NewKind creates a named error family. Members match both the family
// sentinel and the generic guard:
//
//	var PaymentError = errs.NewKind("PaymentError")
//
//	err := PaymentError.New("card expired", errs.Options{Code: "payment declined"})
//	errors.Is(err, PaymentError) // true
//	errs.IsError(err)            // true
//
// The package integrates with the standard library: *Error implements
// error, Unwrap, errors.Is and errors.As all behave as expected.
package errs
