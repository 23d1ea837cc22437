// Package integrations provides the shared HTTP client used by REST API
// clients.
//
// # Overview
//
// [Client] wraps an [http.Client] with a fixed request timeout
// ([RequestTimeout]), a set of headers applied to every request, optional
// bearer authentication, and optional client-side pacing. API-specific
// clients such as [github] embed it and only deal with URLs and response
// shapes.
//
// # Status Translation
//
// Every response goes through [CheckStatus]:
//
//   - 2xx: success
//   - 401: [ErrUnauthorized]
//   - 404: [ErrNotFound]
//   - anything else: [ErrNetwork]
//
// Non-success statuses are returned as a [*StatusError] that unwraps to one of
// the sentinels, so callers use [errors.Is]. Transport failures (timeouts,
// DNS, connection resets) and undecodable bodies also wrap [ErrNetwork].
// Context cancellation stays visible through the wrap chain.
//
// # Authentication
//
// [WithToken] installs an [oauth2.Transport] over a static token source.
// The Authorization header is redacted in debug logs and the token never
// appears in returned errors.
//
// [github]: github.com/ursisterbtw/gh-analyzer/pkg/integrations/github
// [oauth2.Transport]: golang.org/x/oauth2.Transport
package integrations
