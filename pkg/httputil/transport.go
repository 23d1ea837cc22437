package httputil

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Redacted replaces the value of sensitive headers in log output.
const Redacted = "REDACTED"

var sensitiveHeaders = []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie"}

// Transport adds fixed headers to every outgoing request.
//
// A zero Transport forwards requests to [http.DefaultTransport] unchanged.
// Transport is safe for concurrent use as long as its fields are not
// modified after the first request.
type Transport struct {
	// Base is the underlying round tripper. Nil means http.DefaultTransport.
	Base http.RoundTripper

	// Headers are set on each request unless the request already carries them.
	Headers http.Header

	// Limiter paces requests when non-nil.
	Limiter *rate.Limiter

	// Logger receives one debug line per request when non-nil.
	Logger *log.Logger
}

// RoundTrip implements [http.RoundTripper].
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	r := req.Clone(req.Context())
	for k, vs := range t.Headers {
		if r.Header.Get(k) == "" {
			r.Header[k] = append([]string(nil), vs...)
		}
	}

	start := time.Now()
	resp, err := t.base().RoundTrip(r)
	if t.Logger != nil {
		if err != nil {
			t.Logger.Debug("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		} else {
			t.Logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", resp.StatusCode,
				"duration", time.Since(start).Round(time.Millisecond),
				"headers", Redact(r.Header))
		}
	}
	return resp, err
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// Redact returns a copy of h with sensitive header values replaced by [Redacted].
func Redact(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range sensitiveHeaders {
		if _, ok := out[k]; ok {
			out[k] = []string{Redacted}
		}
	}
	return out
}

// NewLimiter returns a limiter allowing rps requests per second with a burst
// of one. A non-positive rps disables pacing and returns nil.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}
