package errs

import (
	"encoding/json"
)

// MetaKeyValidationErrors is the metadata key under which pipelines store
// structured validation issues. When present, the serialized message is
// replaced by the stringified issues so field-level detail surfaces as the
// primary message; the original summary is preserved under originalMessage.
const MetaKeyValidationErrors = "validationErrors"

// errorJSON is the wire shape produced by MarshalJSON.
type errorJSON struct {
	Name            string         `json:"name"`
	Message         string         `json:"message"`
	OriginalMessage string         `json:"originalMessage,omitempty"`
	Code            Code           `json:"code"`
	Status          int            `json:"status"`
	Category        Category       `json:"category"`
	Meta            map[string]any `json:"meta"`
	Stack           string         `json:"stack,omitempty"`
	Cause           string         `json:"cause,omitempty"`
}

// MarshalJSON serializes the error as a flat object containing name,
// message, code, status, category, meta, stack and cause.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := errorJSON{
		Name:     e.jsonName(),
		Message:  e.message,
		Code:     e.code,
		Status:   e.status,
		Category: e.category,
		Meta:     e.Meta(),
		Stack:    e.Stack(),
	}
	if e.cause != nil {
		out.Cause = e.cause.Error()
	}
	if issues, ok := e.meta[MetaKeyValidationErrors]; ok && issues != nil {
		if rendered, err := json.Marshal(issues); err == nil {
			out.Message = string(rendered)
			out.OriginalMessage = e.message
		}
	}
	return json.Marshal(out)
}

func (e *Error) jsonName() string {
	if e.kind != nil {
		return e.kind.Name()
	}
	return "Error"
}
