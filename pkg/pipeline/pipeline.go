// Package pipeline implements the metadata build: read the manifest,
// materialize each library with git, extract its [project] table, merge,
// and persist per-library metadata files plus the global index.
//
// The pipeline is sequential and fail-fast by design. Each manifest
// entry is processed to completion before the next begins, and the only
// recoverable condition is a missing pyproject.toml, which is logged as
// a warning and filled with placeholders.
//
// # Usage
//
//	runner := pipeline.NewRunner(git.NewClient(""), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ManifestPath: "xai_components_manifest.jsonl",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("generated %d metadata files\n", result.Count)
package pipeline

import (
	"time"
)

// Default paths, overridable per Options. These mirror the recognized
// configuration options of the manifest-driven build.
const (
	// DefaultManifestPath is the JSONL manifest enumerating libraries.
	DefaultManifestPath = "xai_components_manifest.jsonl"

	// DefaultIndexPath is where the global index is written.
	DefaultIndexPath = "index.json"

	// DefaultMetadataDir holds the per-library metadata files.
	DefaultMetadataDir = "metadata"

	// DefaultCloneRoot is the scratch directory for checkouts.
	DefaultCloneRoot = ".clones"
)

// Options contains the configuration for one build run.
type Options struct {
	// ManifestPath is the JSONL manifest file to read.
	ManifestPath string

	// IndexPath is the output path for the global index.
	IndexPath string

	// MetadataDir is the output directory for per-library files.
	MetadataDir string

	// CloneRoot is the scratch directory checkouts are placed under.
	CloneRoot string

	// KeepClones disables removal of checkout directories after each
	// entry is processed.
	KeepClones bool
}

// ValidateAndSetDefaults applies the default path for every option left
// empty. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.ManifestPath == "" {
		o.ManifestPath = DefaultManifestPath
	}
	if o.IndexPath == "" {
		o.IndexPath = DefaultIndexPath
	}
	if o.MetadataDir == "" {
		o.MetadataDir = DefaultMetadataDir
	}
	if o.CloneRoot == "" {
		o.CloneRoot = DefaultCloneRoot
	}
	return nil
}

// Result contains the outputs of a build run.
type Result struct {
	// RunID identifies this run in log output.
	RunID string

	// Count is the number of metadata files generated.
	Count int

	// MissingProject counts entries whose checkout had no pyproject.toml.
	MissingProject int

	// Duplicates lists library IDs that occurred more than once in the
	// manifest (last write wins for their metadata files).
	Duplicates []string

	// IndexPath is where the index was written.
	IndexPath string

	// Duration is the total elapsed wall-clock time.
	Duration time.Duration
}
