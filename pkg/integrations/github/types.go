package github

import (
	"encoding/json"
	"time"
)

// RepoInfo holds the core attributes of a repository, copied verbatim from
// the API. Timestamps are kept as the opaque strings the API returns.
type RepoInfo struct {
	Name          string   `json:"name" yaml:"name"`
	Description   *string  `json:"description" yaml:"description"`
	HTMLURL       string   `json:"html_url" yaml:"html_url"`
	Stars         int64    `json:"stargazers_count" yaml:"stargazers_count"`
	Forks         int64    `json:"forks_count" yaml:"forks_count"`
	CreatedAt     string   `json:"created_at" yaml:"created_at"`
	UpdatedAt     string   `json:"updated_at" yaml:"updated_at"`
	DefaultBranch string   `json:"default_branch" yaml:"default_branch"`
	License       *License `json:"license" yaml:"license"`
	Topics        []string `json:"topics" yaml:"topics"`
	Visibility    string   `json:"visibility" yaml:"visibility"`
}

// License describes a repository license.
type License struct {
	Key    string  `json:"key" yaml:"key"`
	Name   string  `json:"name" yaml:"name"`
	SPDXID *string `json:"spdx_id" yaml:"spdx_id"`
}

// RepoStats holds derived repository counters. Each is non-negative and
// defaults to 0 when the API omits it or returns something that is not a
// non-negative integer.
type RepoStats struct {
	OpenIssues int64 `json:"open_issues_count" yaml:"open_issues_count"`
	Watchers   int64 `json:"watchers_count" yaml:"watchers_count"`
	Network    int64 `json:"network_count" yaml:"network_count"`
	SizeKB     int64 `json:"size" yaml:"size"`
}

// Languages maps a language name to the number of bytes written in it.
type Languages map[string]int64

// RateLimitStatus is the core API quota at the time of the request.
type RateLimitStatus struct {
	Remaining int64
	Reset     time.Time
}

// Exhausted reports whether no calls remain in the current window.
func (s *RateLimitStatus) Exhausted() bool { return s.Remaining == 0 }

// apiRateLimitResponse is the GitHub API response for /rate_limit.
// Fields are decoded loosely so that missing values default to 0.
type apiRateLimitResponse struct {
	Rate struct {
		Remaining json.RawMessage `json:"remaining"`
		Reset     json.RawMessage `json:"reset"`
	} `json:"rate"`
}

// apiStatsResponse picks the stats fields out of the repository response.
type apiStatsResponse struct {
	OpenIssues json.RawMessage `json:"open_issues_count"`
	Watchers   json.RawMessage `json:"watchers_count"`
	Network    json.RawMessage `json:"network_count"`
	Size       json.RawMessage `json:"size"`
}

// apiContentResponse is the GitHub API response for a single contents entry.
type apiContentResponse struct {
	Type     string  `json:"type"`
	Content  *string `json:"content"`
	Encoding string  `json:"encoding"`
}
