package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
	"github.com/ursisterbtw/gh-analyzer/pkg/httputil"
)

// Client provides shared HTTP functionality for REST API clients.
// It applies fixed headers and optional bearer authentication to every
// request and translates response statuses into sentinel errors.
//
// Client holds no per-request state and is safe for concurrent use.
type Client struct {
	http *http.Client
}

// Option configures a [Client].
type Option func(*options)

type options struct {
	token   string
	base    http.RoundTripper
	limiter *rate.Limiter
	logger  *log.Logger
}

// WithToken authenticates every request with "Authorization: Bearer <token>".
// An empty token leaves requests unauthenticated.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithTransport sets the underlying round tripper (http.DefaultTransport by default).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithLimiter paces outgoing requests with l.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// WithLogger logs each request at debug level. Authorization is redacted.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewClient creates a Client that sends headers on every request.
// Building the client performs no network call. It fails only when the token
// cannot be encoded as an HTTP header value.
func NewClient(headers map[string]string, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}

	var rt http.RoundTripper = &httputil.Transport{
		Base:    o.base,
		Headers: h,
		Limiter: o.limiter,
		Logger:  o.logger,
	}

	if o.token != "" {
		if !httpguts.ValidHeaderFieldValue("Bearer " + o.token) {
			// The token itself is never echoed back.
			return nil, errors.New(errors.ErrCodeInvalidInput, "token contains characters not allowed in an HTTP header")
		}
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token, TokenType: "Bearer"}),
			Base:   rt,
		}
	}

	return &Client{http: NewHTTPClient(rt)}, nil
}

// Get performs an HTTP GET request and JSON-decodes a success response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrNetwork, url, err)
	}
	return nil
}

// GetBytes performs an HTTP GET request and returns the body of a success
// response. Non-success statuses are returned as a [*StatusError].
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if err := CheckStatus(resp.StatusCode, url); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrNetwork, url, err)
	}
	return data, nil
}

// CheckStatus translates an HTTP status into nil for 2xx, or a [*StatusError]
// wrapping [ErrUnauthorized] (401), [ErrNotFound] (404), or [ErrNetwork].
func CheckStatus(code int, url string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return &StatusError{StatusCode: code, URL: url, Err: ErrUnauthorized}
	case code == http.StatusNotFound:
		return &StatusError{StatusCode: code, URL: url, Err: ErrNotFound}
	default:
		return &StatusError{StatusCode: code, URL: url, Err: ErrNetwork}
	}
}
