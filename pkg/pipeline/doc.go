// Package pipeline provides the two higher-order processing pipelines the
// consent endpoints are built from.
//
// Validation composes schema validation and transformation over untyped
// input, producing a Result. Retrieval composes an asynchronous fetch, a
// nil check with not-found semantics and a transformation, producing an
// Async result. Both catch every internal failure (schema violations,
// nil resources, transformer errors, panics) and convert it into the
// failure channel; neither ever lets an error escape its function
// boundary.
//
//	createConsent := pipeline.Validation(consentSchema, buildRecord)
//	res := createConsent(requestBody) // results.Result[ConsentRecord]
//
//	getConsent := pipeline.Retrieval(fetchRecord, toResponse)
//	res := getConsent(ctx).Await(ctx) // resolves with not-found semantics
package pipeline
