// Package favorites saves a discovered job as a favorite and reads the favorites list back.
package favorites

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/career-pipeline/internal/apiclient"
	"github.com/jonathan/career-pipeline/internal/types"
)

// Recorder persists favorites for an authenticated identity.
type Recorder struct {
	client  *apiclient.Client
	timeout time.Duration
	logger  *log.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(client *apiclient.Client, timeout time.Duration, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{client: client, timeout: timeout, logger: logger}
}

// PickCandidate chooses the job to favorite: the first career-field job, otherwise the first
// skills job. It reports false when neither bucket has jobs.
func PickCandidate(result types.JobSearchResult) (types.Job, bool) {
	if jobs := result.CareerFieldSearch.Jobs; len(jobs) > 0 {
		return jobs[0], true
	}
	if jobs := result.SkillsSearch.Jobs; len(jobs) > 0 {
		return jobs[0], true
	}
	return types.Job{}, false
}

// NewPayload derives the save request for a job.
func NewPayload(job types.Job) types.FavoritePayload {
	return types.FavoritePayload{
		Title:     job.Title,
		URN:       nullable(job.URN),
		Company:   nullable(job.Company),
		Location:  nullable(job.Location),
		ApplyLink: nullable(job.ApplyLink),
		Source:    types.FavoriteSourceLinkedIn,
	}
}

// Save stores job as a favorite and then lists favorites as a read-after-write check.
// A failing list call does not fail the save; the record is returned with an empty list.
func (r *Recorder) Save(ctx context.Context, job types.Job, token string) (*types.FavoriteRecord, error) {
	resp, err := r.client.Do(ctx, apiclient.Request{
		Op:      "save-favorite",
		Method:  http.MethodPost,
		Path:    "/favorites",
		JSON:    NewPayload(job),
		Token:   token,
		Timeout: r.timeout,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, resp.Unexpected("save-favorite")
	}

	var saved favoriteResponse
	types.DecodeLenient(resp.Body, &saved)
	record := &types.FavoriteRecord{Saved: saved.favorite(), All: []types.Favorite{}}

	all, err := r.List(ctx, token)
	if err != nil {
		r.logger.Printf("Warning: could not list favorites after saving: %v", err)
		return record, nil
	}
	record.All = all
	return record, nil
}

// List returns the identity's saved favorites.
func (r *Recorder) List(ctx context.Context, token string) ([]types.Favorite, error) {
	resp, err := r.client.Do(ctx, apiclient.Request{
		Op:      "list-favorites",
		Method:  http.MethodGet,
		Path:    "/favorites",
		Token:   token,
		Timeout: r.timeout,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.Unexpected("list-favorites")
	}

	var items types.List[favoriteResponse]
	types.DecodeLenient(resp.Body, &items)

	out := make([]types.Favorite, 0, len(items))
	for _, item := range items {
		out = append(out, item.favorite())
	}
	return out, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
