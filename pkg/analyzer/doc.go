// Package analyzer builds a summary of a GitHub repository.
//
// # Pipeline
//
// [Analyzer.Analyze] runs a fixed sequence against the API:
//
//  1. Check the rate limit. An exhausted quota stops the run before any
//     other request, with a [errors.RateLimitedError] naming the reset time.
//  2. Fetch repository metadata. A missing repository stops the run.
//  3. Fetch the language breakdown.
//  4. Fetch each candidate file ([DefaultFiles] plus extras) concurrently.
//     Missing files and directories are skipped.
//  5. [Assemble] the [Summary].
//
// Every failure is terminal: no partial summary is ever returned.
//
// # Progress
//
// Progress is reported through an [Observer] passed in [Options]. The default
// observer does nothing, so the analyzer has no display dependency.
//
// [errors.RateLimitedError]: github.com/ursisterbtw/gh-analyzer/pkg/errors.RateLimitedError
package analyzer
