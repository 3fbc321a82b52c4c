// Package pkg provides the core libraries for the metadex metadata builder.
//
// # Overview
//
// metadex aggregates descriptive metadata for a catalog of component
// libraries. The pkg directory is organized along the pipeline's stages:
//
//  1. [manifest] - JSONL manifest reading and validation
//  2. [source/git] - Checkout of library source trees via the git CLI
//  3. [pyproject] - Extraction of the [project] table from pyproject.toml
//  4. [metadata] - Merging, defaulting, and JSON persistence
//  5. [pipeline] - Orchestration of the complete build
//  6. [errors] - Structured, code-bearing errors shared by all stages
//
// # Architecture
//
// The data flow through metadex:
//
//	JSONL manifest
//	       ↓
//	  [manifest] package (parse + validate entries)
//	       ↓
//	  [source/git] package (clone at the configured ref)
//	       ↓
//	  [pyproject] package (typed [project] table, per-field presence)
//	       ↓
//	  [metadata] package (merge + placeholder defaults)
//	       ↓
//	  per-library JSON files + index.json
//
// # Quick Start
//
// Run the complete build:
//
//	import (
//	    "context"
//	    "github.com/componentforge/metadex/pkg/pipeline"
//	    "github.com/componentforge/metadex/pkg/source/git"
//	)
//
//	runner := pipeline.NewRunner(git.NewClient(""), logger)
//	result, err := runner.Execute(context.Background(), pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("generated %d metadata files\n", result.Count)
//
// Parse a single pyproject.toml:
//
//	proj, found, err := pyproject.Load("/path/to/checkout")
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/pipeline/... # Specific package
//
// Tests in [source/git] exercise the real git binary and skip
// themselves when it is not installed.
//
// [manifest]: https://pkg.go.dev/github.com/componentforge/metadex/pkg/manifest
// [source/git]: https://pkg.go.dev/github.com/componentforge/metadex/pkg/source/git
// [pyproject]: https://pkg.go.dev/github.com/componentforge/metadex/pkg/pyproject
// [metadata]: https://pkg.go.dev/github.com/componentforge/metadex/pkg/metadata
// [pipeline]: https://pkg.go.dev/github.com/componentforge/metadex/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/componentforge/metadex/pkg/errors
package pkg
