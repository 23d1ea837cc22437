// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// The client covers the four endpoints a repository analysis needs:
//
//   - [Client.RateLimit]: GET /rate_limit
//   - [Client.Repository]: GET /repos/{owner}/{name}
//   - [Client.Languages]: GET /repos/{owner}/{name}/languages
//   - [Client.FetchFile]: GET /repos/{owner}/{name}/contents/{path}
//
// # Usage
//
//	client, err := github.NewClient(token, github.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ref, err := github.ParseRepoRef("pallets/flask")
//	info, stats, err := client.Repository(ctx, ref)
//
// # Authentication
//
// A GitHub personal access token is optional but recommended. Without a
// token, the client is limited to 60 requests/hour. With a token, the limit
// is 5000 requests/hour.
//
// # Errors
//
// Failures carry a code from [errors]: AUTH_REQUIRED for a rejected token on
// the quota check, REPO_NOT_FOUND for a missing repository, and
// NETWORK_ERROR for everything else. A missing file is not an error.
//
// [errors]: github.com/ursisterbtw/gh-analyzer/pkg/errors
package github
