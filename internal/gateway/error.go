package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is a remote rejection: the backend answered with a non-2xx status.
// Body holds the best-effort response text; it may be empty when reading the
// body failed, which never masks the status itself.
type Error struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

func (e *Error) Error() string {
	status := fmt.Sprintf("%d", e.StatusCode)
	if text := http.StatusText(e.StatusCode); text != "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, text)
	}
	msg := formatRemoteError(status, e.Body)
	if e.RequestID != "" {
		return fmt.Sprintf("%s (request_id: %s)", msg, e.RequestID)
	}
	return msg
}

func formatRemoteError(status string, rawBody []byte) string {
	if msg := extractErrorMessage(rawBody); msg != "" {
		return fmt.Sprintf("remote returned HTTP %s: %s", status, msg)
	}
	if preview := compactBodyPreview(rawBody, 280); preview != "" {
		return fmt.Sprintf("remote returned HTTP %s with unparsed body: %s", status, preview)
	}
	return fmt.Sprintf("remote returned HTTP %s with empty error body", status)
}

// extractErrorMessage digs a human-readable message out of common error body
// shapes; the backend reports rejections as {"detail": "..."}.
func extractErrorMessage(rawBody []byte) string {
	trimmed := strings.TrimSpace(string(rawBody))
	if trimmed == "" {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return ""
	}
	return extractErrorMessageFromMap(payload)
}

func extractErrorMessageFromMap(payload map[string]any) string {
	if payload == nil {
		return ""
	}
	for _, key := range []string{"detail", "message", "title", "reason"} {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if nested, ok := payload["error"].(map[string]any); ok {
		if msg := extractErrorMessageFromMap(nested); msg != "" {
			return msg
		}
	}
	if v, ok := payload["error"].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return ""
}

func compactBodyPreview(rawBody []byte, maxLen int) string {
	trimmed := strings.TrimSpace(string(rawBody))
	if trimmed == "" {
		return ""
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	if len(clean) <= maxLen {
		return clean
	}
	return clean[:maxLen] + "..."
}
