package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError is a failure the backend reported in its own vocabulary: either
// a generic `detail` message or per-field validation errors (notably a
// month conflict keyed on `payment_month`). Both shapes must stay
// distinguishable so the caller can surface field errors verbatim.
type APIError struct {
	StatusCode  int
	Detail      string
	FieldErrors map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Detail, e.StatusCode)
	}

	if len(e.FieldErrors) > 0 {
		fields := make([]string, 0, len(e.FieldErrors))
		for f := range e.FieldErrors {
			fields = append(fields, f)
		}

		sort.Strings(fields)

		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f+": "+strings.Join(e.FieldErrors[f], "; "))
		}

		return fmt.Sprintf("backend: %s (status %d)", strings.Join(parts, " | "), e.StatusCode)
	}

	return fmt.Sprintf("backend: status %d", e.StatusCode)
}

// FieldError returns the first message reported for a field, or "".
func (e *APIError) FieldError(field string) string {
	msgs := e.FieldErrors[field]
	if len(msgs) == 0 {
		return ""
	}

	return msgs[0]
}

// parseAPIError decodes an error response body. DRF-style bodies are maps
// of either `detail` → string or field → list of messages; anything else
// degrades to a bare status error.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return apiErr
	}

	for field, raw := range fields {
		if field == "detail" {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				apiErr.Detail = s
			}

			continue
		}

		var msgs []string
		if err := json.Unmarshal(raw, &msgs); err != nil {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				continue
			}

			msgs = []string{s}
		}

		if len(msgs) == 0 {
			continue
		}

		if apiErr.FieldErrors == nil {
			apiErr.FieldErrors = make(map[string][]string)
		}

		apiErr.FieldErrors[field] = msgs
	}

	return apiErr
}
