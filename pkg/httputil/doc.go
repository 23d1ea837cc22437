// Package httputil provides HTTP plumbing shared by the API clients.
//
// # Overview
//
// This package provides infrastructure used by the GitHub client and the CLI:
//
//   - [Transport]: an [http.RoundTripper] that stamps fixed headers on every
//     request, optionally paces requests, and logs them at debug level
//   - [Probe]: a fixed-interval liveness loop
//
// # Headers
//
// [Transport] never overwrites headers the caller set explicitly on a
// request, so per-request overrides still work. Sensitive headers
// (Authorization, Cookie) are replaced with "REDACTED" by [Redact] before
// anything is logged.
//
// # Pacing
//
// When [Transport.Limiter] is set, each request waits for a token from a
// golang.org/x/time/rate limiter. Pacing only delays requests; it never
// retries or fails them, except when the request context ends while waiting.
//
// # Probe
//
// [Probe] runs a check immediately and then once per interval until the
// context is cancelled. Failures are reported and the loop continues with the
// same delay: there is no backoff growth and no retry cap.
//
//	err := httputil.Probe(ctx, 5*time.Second, check, func(err error) {
//	    if err != nil {
//	        logger.Warn("health check failed", "err", err)
//	    }
//	})
package httputil
