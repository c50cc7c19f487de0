package discovery

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonathan/career-pipeline/internal/apiclient"
	"github.com/jonathan/career-pipeline/internal/types"
)

// Discovery runs job searches against the backend.
type Discovery struct {
	client  *apiclient.Client
	timeout time.Duration
	now     func() time.Time
}

// NewDiscovery creates a Discovery. Searches scrape external job boards, so timeout should
// be long.
func NewDiscovery(client *apiclient.Client, timeout time.Duration) *Discovery {
	return &Discovery{client: client, timeout: timeout, now: time.Now}
}

// Search looks up jobs in city using the career fields and skills stored for the identity.
// maxPages is clamped to [MinPages, MaxPages]. A 404 yields *NoExtractionDataError.
func (d *Discovery) Search(ctx context.Context, city string, maxPages int) (*types.JobSearchResult, error) {
	query := url.Values{}
	query.Set("city", city)
	query.Set("max_pages", strconv.Itoa(ClampPages(maxPages)))

	start := d.now()
	resp, err := d.client.Do(ctx, apiclient.Request{
		Op:      "scrape-jobs",
		Method:  http.MethodGet,
		Path:    "/scrape-jobs",
		Query:   query,
		Timeout: d.timeout,
	})
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		result := decodeSearch(resp.Body)
		result.Elapsed = d.now().Sub(start)
		return &result, nil
	case http.StatusNotFound:
		return nil, &NoExtractionDataError{Detail: resp.Detail()}
	default:
		return nil, resp.Unexpected("scrape-jobs")
	}
}
