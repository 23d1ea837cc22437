package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ursisterbtw/gh-analyzer/pkg/analyzer"
	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
	"github.com/ursisterbtw/gh-analyzer/pkg/integrations/github"
)

// stubAPI answers analyzer calls from fields; nil funcs use canned data.
type stubAPI struct {
	rateLimitFn  func() (*github.RateLimitStatus, error)
	repositoryFn func() (github.RepoInfo, github.RepoStats, error)

	mu      sync.Mutex
	fetched []string
}

func (s *stubAPI) RateLimit(context.Context) (*github.RateLimitStatus, error) {
	if s.rateLimitFn != nil {
		return s.rateLimitFn()
	}
	return &github.RateLimitStatus{Remaining: 10}, nil
}

func (s *stubAPI) Repository(context.Context, github.RepoRef) (github.RepoInfo, github.RepoStats, error) {
	if s.repositoryFn != nil {
		return s.repositoryFn()
	}
	return github.RepoInfo{Name: "x", Stars: 5}, github.RepoStats{OpenIssues: 1}, nil
}

func (s *stubAPI) Languages(context.Context, github.RepoRef) (github.Languages, error) {
	return github.Languages{"Go": 100}, nil
}

func (s *stubAPI) FetchFile(_ context.Context, _ github.RepoRef, name string) (string, bool, error) {
	s.mu.Lock()
	s.fetched = append(s.fetched, name)
	s.mu.Unlock()
	if name == "README.md" {
		return "Hello", true, nil
	}
	return "", false, nil
}

func newTestServer(t *testing.T, api analyzer.API) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(api, analyzer.Options{}, log.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubAPI{})
	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestSummary(t *testing.T) {
	api := &stubAPI{}
	srv := newTestServer(t, api)

	resp, body := get(t, srv.URL+"/v1/repos/owner/x/summary?files=Makefile,%20Dockerfile")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := uuid.Parse(resp.Header.Get(HeaderAnalysisID))
	assert.NoError(t, err, "analysis id should be a uuid")
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	assert.Equal(t, "x", body["repo"].(map[string]any)["name"])
	assert.Equal(t, map[string]any{"README.md": "Hello"}, body["content"])
	assert.Equal(t, map[string]any{"Go": float64(100)}, body["languages"])

	assert.Contains(t, api.fetched, "Makefile")
	assert.Contains(t, api.fetched, "Dockerfile")
	assert.Len(t, api.fetched, len(analyzer.DefaultFiles)+2)
}

func TestSummaryErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		api    *stubAPI
		status int
		code   errors.Code
	}{
		{
			name:   "invalid owner",
			path:   "/v1/repos/-bad/x/summary",
			api:    &stubAPI{},
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidInput,
		},
		{
			name:   "invalid extra file",
			path:   "/v1/repos/owner/x/summary?files=..%2Fsecret",
			api:    &stubAPI{},
			status: http.StatusBadRequest,
			code:   errors.ErrCodeInvalidPath,
		},
		{
			name: "unauthorized",
			path: "/v1/repos/owner/x/summary",
			api: &stubAPI{rateLimitFn: func() (*github.RateLimitStatus, error) {
				return nil, errors.New(errors.ErrCodeUnauthorized, "bad credentials")
			}},
			status: http.StatusUnauthorized,
			code:   errors.ErrCodeUnauthorized,
		},
		{
			name: "not found",
			path: "/v1/repos/owner/x/summary",
			api: &stubAPI{repositoryFn: func() (github.RepoInfo, github.RepoStats, error) {
				return github.RepoInfo{}, github.RepoStats{}, errors.New(errors.ErrCodeRepoNotFound, "repository not found: owner/x")
			}},
			status: http.StatusNotFound,
			code:   errors.ErrCodeRepoNotFound,
		},
		{
			name: "network",
			path: "/v1/repos/owner/x/summary",
			api: &stubAPI{repositoryFn: func() (github.RepoInfo, github.RepoStats, error) {
				return github.RepoInfo{}, github.RepoStats{}, errors.New(errors.ErrCodeNetwork, "boom")
			}},
			status: http.StatusBadGateway,
			code:   errors.ErrCodeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.api)
			resp, body := get(t, srv.URL+tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			detail := body["error"].(map[string]any)
			assert.Equal(t, string(tt.code), detail["code"])
			assert.NotEmpty(t, detail["message"])
		})
	}
}

func TestSummaryRateLimited(t *testing.T) {
	now := time.Unix(1700000000, 0)
	reset := now.Add(90 * time.Second)
	api := &stubAPI{rateLimitFn: func() (*github.RateLimitStatus, error) {
		return &github.RateLimitStatus{Remaining: 0, Reset: reset}, nil
	}}

	h := newHandler(api, analyzer.Options{}, log.New(io.Discard))
	h.now = func() time.Time { return now }
	srv := httptest.NewServer(h.routes())
	defer srv.Close()

	resp, body := get(t, srv.URL+"/v1/repos/owner/x/summary")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "90", resp.Header.Get("Retry-After"))
	assert.Equal(t, "1700000090", resp.Header.Get("X-RateLimit-Reset"))

	detail := body["error"].(map[string]any)
	assert.Equal(t, string(errors.ErrCodeRateLimited), detail["code"])
	assert.Contains(t, detail["message"], "API rate limit exceeded")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.ErrCodeInternal))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(""))
	assert.Equal(t, http.StatusBadRequest, StatusFor(errors.ErrCodeInvalidPath))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}
