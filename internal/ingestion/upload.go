package ingestion

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jonathan/career-pipeline/internal/apiclient"
	"github.com/jonathan/career-pipeline/internal/types"
)

// DocumentContentType is the content type documents are uploaded with.
const DocumentContentType = "application/pdf"

// Ingestor uploads documents to the extraction endpoint.
type Ingestor struct {
	client  *apiclient.Client
	timeout time.Duration
}

// NewIngestor creates an Ingestor. Extraction is slow server-side, so timeout should be long.
func NewIngestor(client *apiclient.Client, timeout time.Duration) *Ingestor {
	return &Ingestor{client: client, timeout: timeout}
}

// Upload sends the document at path for extraction. The token is attached when non-empty so
// the backend stores the extraction against the identity, which job discovery relies on.
// A missing file fails before any request is made.
func (i *Ingestor) Upload(ctx context.Context, path, token string) (*types.ExtractionResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Message: "file not found", Cause: err}
	}
	if info.IsDir() {
		return nil, &DocumentError{Path: path, Message: "path is a directory"}
	}

	resp, err := i.client.Do(ctx, apiclient.Request{
		Op:     "extract-text",
		Method: http.MethodPost,
		Path:   "/extract-text",
		File: &apiclient.FilePart{
			FieldName:   "file",
			Path:        path,
			ContentType: DocumentContentType,
		},
		Token:   token,
		Timeout: i.timeout,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.Unexpected("extract-text")
	}

	result := decodeExtraction(resp.Body)
	return &result, nil
}
