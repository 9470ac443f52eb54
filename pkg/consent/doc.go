// Package consent provides consent-record management: recording a
// subject's privacy choices for a domain, retrieving and withdrawing
// them, and verifying whether a purpose is currently allowed.
//
// The package is the reference consumer of the results subsystem: every
// service method returns a Result or an Async Result built with the
// validation and retrieval pipelines, and the HTTP handler converts those
// through the resulthttp boundary.
//
// # Basic Usage
//
//	repo := consent.NewInMemoryRepository()
//	service := consent.NewService(repo)
//
//	res := service.CreateConsent(ctx, map[string]any{
//		"subjectId":     "u-42",
//		"domain":        "app.example.com",
//		"purposes":      map[string]any{"analytics": true},
//		"policyVersion": "2026-01",
//	})
//
//	verdict := service.VerifyConsent(ctx, "u-42", "app.example.com", "analytics")
package consent
