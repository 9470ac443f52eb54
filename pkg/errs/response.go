package errs

import (
	"fmt"
	"net/http"
)

// FromResponse builds an Error from an HTTP response, typically after a
// remote consent API call failed. body is the already-parsed response
// body, or nil when it was absent or unparseable; a body carrying
// "message", "code" and "data" fields overrides the defaults, with "data"
// merged into the metadata. Parsing is tolerant: a malformed body silently
// falls back to the status-derived defaults.
func FromResponse(resp *http.Response, body map[string]any) *Error {
	status := DefaultStatus
	if resp != nil {
		status = resp.StatusCode
	}
	message := fmt.Sprintf("HTTP error %d", status)
	code := Code(fmt.Sprintf("HTTP %d", status))
	meta := map[string]any{}

	if body != nil {
		if m, ok := body["message"].(string); ok && m != "" {
			message = m
		}
		if c, ok := body["code"].(string); ok && c != "" {
			code = Code(c)
		}
		if data, ok := body["data"].(map[string]any); ok {
			for k, v := range data {
				meta[k] = v
			}
		}
	}

	return New(message, Options{
		Code:   code,
		Status: status,
		Meta:   meta,
	})
}
