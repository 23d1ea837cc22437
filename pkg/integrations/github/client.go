package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
	"github.com/ursisterbtw/gh-analyzer/pkg/integrations"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultUserAgent identifies the client to GitHub.
	DefaultUserAgent = "gh-analyzer-go"

	// MediaType pins the v3 JSON representation.
	MediaType = "application/vnd.github.v3+json"
)

// Options configures a [Client]. The zero value talks to [DefaultBaseURL]
// without pacing or request logging.
type Options struct {
	BaseURL   string            // API root; DefaultBaseURL if empty
	UserAgent string            // DefaultUserAgent if empty
	Limiter   *rate.Limiter     // optional client-side pacing
	Logger    *log.Logger       // optional debug request log
	Transport http.RoundTripper // optional base transport
}

// Client fetches repository data from the GitHub REST API.
// It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client. An empty token makes unauthenticated
// requests, which GitHub limits to 60 per hour.
// No request is made until a fetch method is called.
func NewClient(token string, opts Options) (*Client, error) {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	headers := map[string]string{
		"Accept":     MediaType,
		"User-Agent": ua,
	}
	c, err := integrations.NewClient(headers,
		integrations.WithToken(token),
		integrations.WithLimiter(opts.Limiter),
		integrations.WithLogger(opts.Logger),
		integrations.WithTransport(opts.Transport),
	)
	if err != nil {
		return nil, err
	}
	return &Client{Client: c, baseURL: base}, nil
}

// RateLimit returns the current core API quota.
// A 401 fails with AUTH_REQUIRED; any other failure is a NETWORK_ERROR.
func (c *Client) RateLimit(ctx context.Context) (*RateLimitStatus, error) {
	var data apiRateLimitResponse
	if err := c.Get(ctx, c.baseURL+"/rate_limit", &data); err != nil {
		if stderrors.Is(err, integrations.ErrUnauthorized) {
			return nil, errors.Wrap(errors.ErrCodeUnauthorized, err,
				"GitHub rejected the credentials; supply a valid token")
		}
		return nil, networkError(err, "check rate limit")
	}
	return &RateLimitStatus{
		Remaining: looseCount(data.Rate.Remaining),
		Reset:     time.Unix(looseCount(data.Rate.Reset), 0),
	}, nil
}

// Repository fetches the attributes and counters of a repository.
// A 404 fails with REPO_NOT_FOUND; any other failure is a NETWORK_ERROR.
func (c *Client) Repository(ctx context.Context, ref RepoRef) (RepoInfo, RepoStats, error) {
	body, err := c.GetBytes(ctx, c.repoURL(ref))
	if err != nil {
		if stderrors.Is(err, integrations.ErrNotFound) {
			return RepoInfo{}, RepoStats{}, errors.Wrap(errors.ErrCodeRepoNotFound, err,
				"repository not found: %s", ref)
		}
		return RepoInfo{}, RepoStats{}, networkError(err, "fetch repository %s", ref)
	}

	var info RepoInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return RepoInfo{}, RepoStats{}, networkError(err, "decode repository %s", ref)
	}

	// Stats are read separately and tolerate any shape: GitHub omits some
	// counters depending on the caller's permissions.
	var raw apiStatsResponse
	_ = json.Unmarshal(body, &raw)
	stats := RepoStats{
		OpenIssues: looseCount(raw.OpenIssues),
		Watchers:   looseCount(raw.Watchers),
		Network:    looseCount(raw.Network),
		SizeKB:     looseCount(raw.Size),
	}
	return info, stats, nil
}

// Languages fetches the per-language byte counts of a repository.
// Any failure, including 404, is a NETWORK_ERROR.
func (c *Client) Languages(ctx context.Context, ref RepoRef) (Languages, error) {
	langs := Languages{}
	if err := c.Get(ctx, c.repoURL(ref)+"/languages", &langs); err != nil {
		return nil, networkError(err, "fetch languages for %s", ref)
	}
	return langs, nil
}

// FetchFile fetches a file from the root of the repository's default branch.
//
// It reports ok=false without error when the path does not exist or is not a
// regular file. Directories come back as a JSON array of entries and files
// too large for the contents API carry an encoding other than base64; both
// are reported as absent. Content that is not valid base64-encoded UTF-8 text
// is a NETWORK_ERROR, as is any status other than 2xx and 404.
func (c *Client) FetchFile(ctx context.Context, ref RepoRef, name string) (content string, ok bool, err error) {
	if err := errors.ValidateFilename(name); err != nil {
		return "", false, err
	}

	body, err := c.GetBytes(ctx, c.repoURL(ref)+"/contents/"+escapePath(name))
	if err != nil {
		if stderrors.Is(err, integrations.ErrNotFound) {
			return "", false, nil
		}
		return "", false, networkError(err, "fetch %s from %s", name, ref)
	}
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("[")) {
		return "", false, nil
	}

	var data apiContentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", false, networkError(err, "decode %s from %s", name, ref)
	}
	if data.Type != "file" || data.Content == nil {
		return "", false, nil
	}
	// A missing encoding is taken as base64; "none" marks oversized files.
	if data.Encoding != "" && data.Encoding != "base64" {
		return "", false, nil
	}

	text, err := DecodeContent(*data.Content)
	if err != nil {
		return "", false, networkError(err, "decode %s from %s", name, ref)
	}
	return text, true, nil
}

// DecodeContent decodes the base64 body of a contents response.
// GitHub wraps the encoded text with newlines; they are removed first.
// The decoded bytes must be valid UTF-8.
func DecodeContent(encoded string) (string, error) {
	clean := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)
	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return "", fmt.Errorf("invalid base64 content: %w", err)
	}
	if !utf8.Valid(b) {
		return "", stderrors.New("content is not valid UTF-8 text")
	}
	return string(b), nil
}

func (c *Client) repoURL(ref RepoRef) string {
	return fmt.Sprintf("%s/repos/%s/%s", c.baseURL, integrations.URLEncode(ref.Owner), integrations.URLEncode(ref.Name))
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = integrations.URLEncode(s)
	}
	return strings.Join(parts, "/")
}

func networkError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case integrations.StatusCode(err) != 0:
		msg = fmt.Sprintf("%s: unexpected status %d", msg, integrations.StatusCode(err))
	case stderrors.Is(err, context.DeadlineExceeded):
		msg += ": request timed out"
	case stderrors.Is(err, context.Canceled):
		msg += ": cancelled"
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "%s", msg)
}

// looseCount reads a JSON value as a non-negative integer.
// Anything else, including null, strings, fractions, and negative numbers,
// yields 0.
func looseCount(raw json.RawMessage) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
