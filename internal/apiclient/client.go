// Package apiclient provides the HTTP transport shared by every pipeline stage.
// It knows how to shape requests for the career backend but not what any endpoint means;
// status interpretation is left to the stage that issued the call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout applies when a request does not set its own.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for backend requests.
const DefaultUserAgent = "career-pipeline-harness/1.0"

// Options configures a Client.
type Options struct {
	BaseURL   string
	UserAgent string

	// RateLimitRPS paces outgoing requests. Zero disables pacing.
	RateLimitRPS float64

	// HTTPClient overrides the underlying client. Per-request timeouts are applied through
	// the request context, so the client itself should not carry a timeout.
	HTTPClient *http.Client
}

// Client issues requests against a single backend base URL.
type Client struct {
	baseURL    *url.URL
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// FilePart describes a file sent as multipart form data.
type FilePart struct {
	FieldName   string
	Path        string
	ContentType string
}

// Request describes a single backend call.
type Request struct {
	// Op names the call in errors and logs, e.g. "login".
	Op     string
	Method string
	Path   string
	Query  url.Values

	// At most one body kind is used; JSON wins over Form, Form over File.
	JSON any
	Form url.Values
	File *FilePart

	// Token is sent as a bearer credential when non-empty.
	Token   string
	Timeout time.Duration
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// New creates a Client for the given options.
func New(opts Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	return &Client{
		baseURL:    parsed,
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Endpoint resolves a path against the base URL.
func (c *Client) Endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Do performs the request and reads the whole body. Any HTTP status is returned as a
// Response; only transport failures produce an error, always a *NetworkError.
// Requests are never retried.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	endpoint := c.Endpoint(r.Path, r.Query)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Op: r.Op, URL: endpoint, Timeout: isTimeout(err), Cause: err}
		}
	}

	body, contentType, err := encodeBody(r)
	if err != nil {
		return nil, &NetworkError{Op: r.Op, URL: endpoint, Cause: err}
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &NetworkError{Op: r.Op, URL: endpoint, Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: r.Op, URL: endpoint, Timeout: isTimeout(err), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: r.Op, URL: endpoint, Timeout: isTimeout(err), Cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// DecodeJSON decodes the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Detail returns the error detail sent by the backend, falling back to the raw body.
func (r *Response) Detail() string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		return string(payload.Detail)
	}
	return strings.TrimSpace(string(r.Body))
}

// Unexpected builds the ProtocolError for a status the caller does not accept.
func (r *Response) Unexpected(op string) *ProtocolError {
	return &ProtocolError{
		Op:         op,
		StatusCode: r.StatusCode,
		Message:    "unexpected status",
		Body:       string(r.Body),
	}
}

func encodeBody(r Request) (io.Reader, string, error) {
	switch {
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode JSON body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	case r.Form != nil:
		return strings.NewReader(r.Form.Encode()), "application/x-www-form-urlencoded", nil
	case r.File != nil:
		return encodeMultipart(r.File)
	default:
		return nil, "", nil
	}
}

func encodeMultipart(part *FilePart) (io.Reader, string, error) {
	f, err := os.Open(part.Path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", part.Path, err)
	}
	defer func() { _ = f.Close() }()

	fieldName := part.FieldName
	if fieldName == "" {
		fieldName = "file"
	}
	contentType := part.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, filepath.Base(part.Path)))
	header.Set("Content-Type", contentType)
	pw, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(pw, f); err != nil {
		return nil, "", fmt.Errorf("failed to copy %s: %w", part.Path, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
