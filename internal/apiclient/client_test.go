package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Options{BaseURL: server.URL})
	require.NoError(t, err)
	return client, server
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "not-a-url"})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: ""})
	assert.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	client, err := New(Options{BaseURL: "http://localhost:8000/"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/register", client.Endpoint("/register", nil))
	assert.Equal(t, "http://localhost:8000/scrape-jobs?city=New+York&max_pages=2",
		client.Endpoint("scrape-jobs", url.Values{"city": {"New York"}, "max_pages": {"2"}}))
}

func TestDo_JSONBodyWithBearer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/career-chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hi", body["message"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"answer":"hello"}`))
	})

	resp, err := client.Do(context.Background(), Request{
		Op:     "chat",
		Method: http.MethodPost,
		Path:   "/career-chat",
		JSON:   map[string]string{"message": "hi"},
		Token:  "abc",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded map[string]string
	require.NoError(t, resp.DecodeJSON(&decoded))
	assert.Equal(t, "hello", decoded["answer"])
}

func TestDo_FormBodyWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test_user_4821", r.PostForm.Get("username"))
		assert.Equal(t, "test123", r.PostForm.Get("password"))
		w.WriteHeader(http.StatusOK)
	})

	resp, err := client.Do(context.Background(), Request{
		Op:     "login",
		Method: http.MethodPost,
		Path:   "/login",
		Form:   url.Values{"username": {"test_user_4821"}, "password": {"test123"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDo_MultipartFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()

		assert.Equal(t, "sample.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(file)
		assert.Equal(t, "%PDF-1.4 test", string(data))
		w.WriteHeader(http.StatusOK)
	})

	resp, err := client.Do(context.Background(), Request{
		Op:     "extract",
		Method: http.MethodPost,
		Path:   "/extract-text",
		File:   &FilePart{FieldName: "file", Path: path, ContentType: "application/pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDo_NonSuccessStatusIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"No career fields found"}`))
	})

	resp, err := client.Do(context.Background(), Request{Op: "scrape", Path: "/scrape-jobs"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No career fields found", resp.Detail())

	perr := resp.Unexpected("scrape")
	assert.Contains(t, perr.Error(), "HTTP 404")
}

func TestDo_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := New(Options{BaseURL: baseURL})
	require.NoError(t, err)

	_, err = client.Do(context.Background(), Request{Op: "register", Path: "/register"})
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "register", netErr.Op)
	assert.False(t, netErr.Timeout)
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	_, err := client.Do(context.Background(), Request{Op: "extract", Path: "/extract-text", Timeout: 50 * time.Millisecond})
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.True(t, netErr.Timeout)
	assert.Contains(t, err.Error(), "timed out")
}

func TestDo_RateLimitedClientStillDelivers(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := New(Options{BaseURL: server.URL, RateLimitRPS: 50})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := client.Do(context.Background(), Request{Op: "list", Path: "/favorites"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestResponse_DetailFallsBackToBody(t *testing.T) {
	resp := &Response{Body: []byte("  plain failure \n")}
	assert.Equal(t, "plain failure", resp.Detail())

	resp = &Response{Body: []byte(`{"detail":[{"msg":"field required"}]}`)}
	assert.Contains(t, resp.Detail(), "field required")
}
