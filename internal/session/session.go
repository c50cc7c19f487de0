// Package session registers and authenticates the test identity a pipeline run uses.
package session

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/jonathan/career-pipeline/internal/apiclient"
	"github.com/jonathan/career-pipeline/internal/types"
)

// DefaultPassword is the password used for generated identities.
const DefaultPassword = "test123"

// RegisterOutcome classifies the result of a registration attempt.
type RegisterOutcome string

const (
	// Registered means the backend created the account (HTTP 201).
	Registered RegisterOutcome = "registered"
	// AlreadyExists means the backend refused with HTTP 400, most likely a duplicate username.
	AlreadyExists RegisterOutcome = "already_exists"
	// Unexpected covers any other status and transport failures.
	Unexpected RegisterOutcome = "unexpected"
)

// Bootstrapper obtains a bearer token for a test identity.
type Bootstrapper struct {
	client  *apiclient.Client
	timeout time.Duration
	logger  *log.Logger
}

// NewBootstrapper creates a Bootstrapper. timeout bounds each of the register and login calls.
func NewBootstrapper(client *apiclient.Client, timeout time.Duration, logger *log.Logger) *Bootstrapper {
	if logger == nil {
		logger = log.Default()
	}
	return &Bootstrapper{client: client, timeout: timeout, logger: logger}
}

// NewIdentity returns the identity for a run. An empty username yields a random
// test_user_NNNN name; an empty password yields DefaultPassword.
func NewIdentity(username, password string) types.TestIdentity {
	if username == "" {
		username = fmt.Sprintf("test_user_%d", 1000+rand.IntN(9000))
	}
	if password == "" {
		password = DefaultPassword
	}
	return types.TestIdentity{Username: username, Password: password}
}

// Register submits the identity for account creation. The returned error is informational:
// every outcome allows the caller to proceed to Login.
func (b *Bootstrapper) Register(ctx context.Context, identity types.TestIdentity) (RegisterOutcome, error) {
	resp, err := b.client.Do(ctx, apiclient.Request{
		Op:      "register",
		Method:  http.MethodPost,
		Path:    "/register",
		JSON:    map[string]string{"username": identity.Username, "password": identity.Password},
		Timeout: b.timeout,
	})
	if err != nil {
		return Unexpected, err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		return Registered, nil
	case http.StatusBadRequest:
		return AlreadyExists, nil
	default:
		return Unexpected, resp.Unexpected("register")
	}
}

// Login exchanges the identity's credentials for a bearer token.
func (b *Bootstrapper) Login(ctx context.Context, identity types.TestIdentity) (string, error) {
	resp, err := b.client.Do(ctx, apiclient.Request{
		Op:      "login",
		Method:  http.MethodPost,
		Path:    "/login",
		Form:    url.Values{"username": {identity.Username}, "password": {identity.Password}},
		Timeout: b.timeout,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", resp.Unexpected("login")
	}

	var payload struct {
		AccessToken types.Text `json:"access_token"`
	}
	types.DecodeLenient(resp.Body, &payload)
	if payload.AccessToken == "" {
		return "", &apiclient.ProtocolError{
			Op:         "login",
			StatusCode: resp.StatusCode,
			Message:    "response has no access_token",
		}
	}

	return payload.AccessToken.String(), nil
}

// Bootstrap registers the identity, logs any registration problem as a warning, and logs in.
// A login failure leaves the run without credentials.
func (b *Bootstrapper) Bootstrap(ctx context.Context, identity types.TestIdentity) (types.Session, error) {
	outcome, err := b.Register(ctx, identity)
	switch outcome {
	case Registered:
		b.logger.Printf("Registered user %s", identity.Username)
	case AlreadyExists:
		b.logger.Printf("Warning: registration refused for %s (user may already exist), continuing to login", identity.Username)
	default:
		b.logger.Printf("Warning: registration failed for %s: %v; continuing to login", identity.Username, err)
	}

	token, err := b.Login(ctx, identity)
	if err != nil {
		return types.Session{}, fmt.Errorf("login failed for %s: %w", identity.Username, err)
	}

	return types.NewSession(identity, token), nil
}
