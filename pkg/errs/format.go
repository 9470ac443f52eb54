package errs

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatValidationError renders an error as a multi-line human string for
// logs and CLI output: the message and code on the first line, a pretty
// printed validation-errors block when present, and any remaining
// metadata under "Additional Context".
func FormatValidationError(e *Error) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", e.Message(), e.Code())

	meta := e.Meta()
	if issues, ok := meta[MetaKeyValidationErrors]; ok && issues != nil {
		delete(meta, MetaKeyValidationErrors)
		b.WriteString("\n\nValidation Errors:\n")
		b.WriteString(prettyJSON(issues))
	}
	if len(meta) > 0 {
		b.WriteString("\n\nAdditional Context:\n")
		b.WriteString(prettyJSON(meta))
	}
	return b.String()
}

func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
