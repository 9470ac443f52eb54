package errs

// Category groups failures coarsely for recovery decisions and telemetry.
// Orthogonal to Code: a "database query error" code belongs to the
// "storage" category.
type Category string

// Common error categories
const (
	CategoryValidation    Category = "validation"
	CategoryAuthorization Category = "authorization"
	CategoryStorage       Category = "storage"
	CategoryNetwork       Category = "network"
	CategoryPlugin        Category = "plugin"
	CategoryConfiguration Category = "configuration"
	CategoryConsent       Category = "consent"
	CategoryUnexpected    Category = "unexpected"
)

// ErrorCategories is the registry of categories shipped with the library.
var ErrorCategories = NewCategories(map[Category]string{
	CategoryValidation:    "Input failed validation",
	CategoryAuthorization: "The caller is not allowed to perform the operation",
	CategoryStorage:       "A storage backend failed",
	CategoryNetwork:       "A remote call failed",
	CategoryPlugin:        "A plugin or extension failed",
	CategoryConfiguration: "The system is misconfigured",
	CategoryConsent:       "A consent rule was violated",
	CategoryUnexpected:    "An unanticipated failure",
})
