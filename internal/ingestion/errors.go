// Package ingestion uploads a candidate document to the backend and decodes the extracted
// career data.
package ingestion

import "fmt"

// DocumentError represents a local document that cannot be uploaded.
type DocumentError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("document error: %s: %s", e.Path, e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
