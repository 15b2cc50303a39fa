// Package validate enforces the minimal response contract before remote data
// is trusted. A 2xx response with the wrong shape is terminal: the backend
// already "succeeded" at the transport level, so retrying cannot help.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ShapeError reports a 2xx response whose body breaks the contract.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected summarize response: %s", e.Reason)
}

// SummarizeResult is a validated summarize response: the summary text plus
// the untouched raw body for callers that want the extra fields.
type SummarizeResult struct {
	Summary string
	Raw     json.RawMessage
}

// Summarize checks that body is a JSON object whose "summary" field holds a
// non-empty string. All other fields pass through untouched in Raw.
func Summarize(body json.RawMessage) (*SummarizeResult, error) {
	var payload struct {
		Summary any `json:"summary"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ShapeError{Reason: "body is not a JSON object"}
	}
	switch v := payload.Summary.(type) {
	case nil:
		return nil, &ShapeError{Reason: `missing "summary" field`}
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, &ShapeError{Reason: `"summary" is empty`}
		}
		return &SummarizeResult{Summary: v, Raw: body}, nil
	default:
		return nil, &ShapeError{Reason: fmt.Sprintf(`"summary" is %T, want string`, v)}
	}
}
