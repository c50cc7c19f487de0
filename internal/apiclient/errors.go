package apiclient

import (
	"fmt"
	"strings"
)

// maxBodySnippet bounds how much of a response body is carried in error messages.
const maxBodySnippet = 300

// NetworkError represents a request that never produced an HTTP response: connection
// refused, DNS failure, timeout or cancellation.
type NetworkError struct {
	Op      string
	URL     string
	Timeout bool
	Cause   error
}

func (e *NetworkError) Error() string {
	kind := "request failed"
	if e.Timeout {
		kind = "request timed out"
	}
	if e.Cause != nil {
		return RedactSecrets(fmt.Sprintf("%s: %s for %s: %v", e.Op, kind, e.URL, e.Cause))
	}
	return RedactSecrets(fmt.Sprintf("%s: %s for %s", e.Op, kind, e.URL))
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ProtocolError represents a response whose status or shape the caller did not accept.
type ProtocolError struct {
	Op         string
	StatusCode int
	Message    string
	Body       string
}

func (e *ProtocolError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.StatusCode != 0 {
		sb.WriteString(fmt.Sprintf(": HTTP %d", e.StatusCode))
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if body := snippet(e.Body); body != "" {
		sb.WriteString(" - ")
		sb.WriteString(body)
	}
	return RedactSecrets(sb.String())
}

func snippet(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) > maxBodySnippet {
		return string(runes[:maxBodySnippet]) + "..."
	}
	return body
}
