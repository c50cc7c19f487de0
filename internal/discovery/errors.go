// Package discovery queries the backend's job search, which derives its queries from the
// extraction data previously stored for the identity.
package discovery

import (
	"errors"
	"fmt"
)

// ErrNoExtractionData is matched by errors.Is when the backend has no extraction data to
// derive a search from.
var ErrNoExtractionData = errors.New("no extraction data for this identity")

// NoExtractionDataError is returned for HTTP 404 from job search. It tells the user to run
// document ingestion first rather than reporting a generic failure.
type NoExtractionDataError struct {
	Detail string
}

func (e *NoExtractionDataError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s (upload a document first)", ErrNoExtractionData, e.Detail)
	}
	return fmt.Sprintf("%v (upload a document first)", ErrNoExtractionData)
}

func (e *NoExtractionDataError) Is(target error) bool {
	return target == ErrNoExtractionData
}
