package errs

// Code identifies a specific failure condition. Codes are short human
// phrases rather than SCREAMING_CASE tokens so they can double as the
// user-facing summary when no better message is available.
type Code string

// Common error codes
const (
	// Request errors
	CodeBadRequest     Code = "bad request"
	CodeInvalidRequest Code = "invalid request"
	CodeConflict       Code = "conflict"
	CodeNotFound       Code = "not found"
	CodeTimeout        Code = "request timeout"

	// Authorization errors
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"

	// Storage errors
	CodeDatabaseConnectionError Code = "database connection error"
	CodeDatabaseQueryError      Code = "database query error"

	// Validation errors
	CodeValidationError Code = "validation error"

	// Network errors
	CodeNetworkError Code = "network error"

	// Plugin errors
	CodePluginInitFailed Code = "plugin initialization failed"

	// Consent domain errors
	CodeConsentNotFound Code = "consent not found"
	CodeConsentExpired  Code = "consent expired"
	CodePurposeRejected Code = "purpose rejected"

	// Generic errors
	CodeInternalServerError Code = "internal server error"
	CodeUnknownError        Code = "unknown error"
	CodeUnexpectedError     Code = "unexpected error"
)

// ErrorCodes is the registry of codes shipped with the library. Domain
// packages compose their own registries with NewCodes and MergeCodes.
var ErrorCodes = NewCodes(map[Code]string{
	CodeBadRequest:              "The request could not be processed",
	CodeInvalidRequest:          "The request payload failed validation",
	CodeConflict:                "The request conflicts with the current state of the resource",
	CodeNotFound:                "The requested resource was not found",
	CodeTimeout:                 "The operation did not complete in time",
	CodeUnauthorized:            "The request lacks valid authentication credentials",
	CodeForbidden:               "The authenticated subject may not perform this operation",
	CodeDatabaseConnectionError: "A database connection could not be established",
	CodeDatabaseQueryError:      "A database query failed",
	CodeValidationError:         "The data failed validation",
	CodeNetworkError:            "A network operation failed",
	CodePluginInitFailed:        "A plugin failed to initialize",
	CodeConsentNotFound:         "No consent record exists for the subject",
	CodeConsentExpired:          "The consent record has expired",
	CodePurposeRejected:         "The subject rejected the requested purpose",
	CodeInternalServerError:     "An internal error occurred",
	CodeUnknownError:            "An unknown error occurred",
	CodeUnexpectedError:         "An unexpected error occurred",
})
