// Package pkg provides the libraries behind gh-analyzer.
//
// # Overview
//
// gh-analyzer turns one GitHub repository into a single summary document:
// core metadata, counters, the language breakdown, and the text of
// well-known root files. The pkg directory is organized into:
//
//  1. [analyzer] - The analysis pipeline and the [analyzer.Summary] type
//  2. [integrations] - The shared HTTP client and the GitHub REST client
//  3. [httputil] - Header/pacing transport and the periodic liveness probe
//  4. [output] - JSON and YAML serialization of summaries
//  5. [errors] - Coded errors shared by every layer
//  6. [buildinfo] - Version information set at build time
//
// # Architecture
//
// The data flow of one analysis:
//
//	rate limit check
//	       ↓
//	repository metadata → languages
//	       ↓
//	candidate files (bounded fan-out)
//	       ↓
//	[analyzer.Assemble] → [output.Write]
//
// # Quick Start
//
//	client, err := github.NewClient(os.Getenv("GITHUB_TOKEN"), github.Options{})
//	if err != nil {
//	    return err
//	}
//	a, err := analyzer.New(client, analyzer.Options{})
//	if err != nil {
//	    return err
//	}
//	summary, err := a.Analyze(ctx, "pallets/flask")
//	if err != nil {
//	    return err
//	}
//	return output.Write(os.Stdout, summary, output.FormatJSON)
//
// [analyzer]: github.com/ursisterbtw/gh-analyzer/pkg/analyzer
// [analyzer.Summary]: github.com/ursisterbtw/gh-analyzer/pkg/analyzer.Summary
// [analyzer.Assemble]: github.com/ursisterbtw/gh-analyzer/pkg/analyzer.Assemble
// [integrations]: github.com/ursisterbtw/gh-analyzer/pkg/integrations
// [httputil]: github.com/ursisterbtw/gh-analyzer/pkg/httputil
// [output]: github.com/ursisterbtw/gh-analyzer/pkg/output
// [output.Write]: github.com/ursisterbtw/gh-analyzer/pkg/output.Write
// [errors]: github.com/ursisterbtw/gh-analyzer/pkg/errors
// [buildinfo]: github.com/ursisterbtw/gh-analyzer/pkg/buildinfo
package pkg
