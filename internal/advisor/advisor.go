// Package advisor sends a free-text question to the backend's career coach.
package advisor

import (
	"context"
	"net/http"
	"time"

	"github.com/jonathan/career-pipeline/internal/apiclient"
)

// DefaultQuestion is asked when no question is configured.
const DefaultQuestion = "What should I change in my profile to become more oriented towards data analytics?"

// Advisor talks to the career chat endpoint.
type Advisor struct {
	client  *apiclient.Client
	timeout time.Duration
}

// NewAdvisor creates an Advisor.
func NewAdvisor(client *apiclient.Client, timeout time.Duration) *Advisor {
	return &Advisor{client: client, timeout: timeout}
}

// Ask sends question and returns the full answer. The response must be HTTP 200 with a
// string answer field.
func (a *Advisor) Ask(ctx context.Context, question, token string) (string, error) {
	resp, err := a.client.Do(ctx, apiclient.Request{
		Op:      "career-chat",
		Method:  http.MethodPost,
		Path:    "/career-chat",
		JSON:    map[string]string{"message": question},
		Token:   token,
		Timeout: a.timeout,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", resp.Unexpected("career-chat")
	}

	var payload struct {
		Answer *string `json:"answer"`
	}
	if err := resp.DecodeJSON(&payload); err != nil || payload.Answer == nil {
		return "", &apiclient.ProtocolError{
			Op:         "career-chat",
			StatusCode: resp.StatusCode,
			Message:    "response has no answer",
			Body:       string(resp.Body),
		}
	}

	if *payload.Answer == "" {
		return "", &apiclient.ProtocolError{
			Op:         "career-chat",
			StatusCode: resp.StatusCode,
			Message:    "response has an empty answer",
			Body:       string(resp.Body),
		}
	}

	return *payload.Answer, nil
}
