package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/componentforge/metadex/pkg/errors"
	"github.com/componentforge/metadex/pkg/manifest"
	"github.com/componentforge/metadex/pkg/metadata"
	"github.com/componentforge/metadex/pkg/pyproject"
	"github.com/componentforge/metadex/pkg/source/git"
)

// Runner executes the metadata build. It is stateless between runs;
// all per-run state lives on the stack of Execute.
type Runner struct {
	Fetcher git.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner with the given fetcher and logger.
// A nil fetcher falls back to the git CLI; a nil logger discards output.
func NewRunner(fetcher git.Fetcher, logger *log.Logger) *Runner {
	if fetcher == nil {
		fetcher = git.NewClient("")
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Fetcher: fetcher, Logger: logger}
}

// Execute runs the complete read → fetch → extract → merge → write
// pipeline. Any clone, parse, or write failure aborts the run with
// files already written left in place; the accumulated index is only
// persisted after every entry succeeded.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()
	logger := r.Logger.With("run_id", runID[:8])

	entries, err := manifest.ReadFile(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	logger.Info("read manifest", "path", opts.ManifestPath, "entries", len(entries))

	dups := manifest.Duplicates(entries)
	for _, id := range dups {
		logger.Warn("duplicate library_id, last write wins", "library_id", id)
	}

	if err := os.MkdirAll(opts.CloneRoot, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeWriteFailed, err, "create clone root %s", opts.CloneRoot)
	}

	index := make([]metadata.IndexEntry, 0, len(entries))
	missing := 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.processEntry(ctx, logger, opts, entry, &index, &missing); err != nil {
			return nil, err
		}
	}

	if !opts.KeepClones {
		// Only succeeds once every clone directory is gone.
		_ = os.Remove(opts.CloneRoot)
	}

	if err := metadata.WriteIndex(index, opts.IndexPath); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:          runID,
		Count:          len(index),
		MissingProject: missing,
		Duplicates:     dups,
		IndexPath:      opts.IndexPath,
		Duration:       time.Since(start),
	}
	logger.Info("build complete",
		"metadata_files", result.Count,
		"index", result.IndexPath,
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// processEntry handles one manifest entry: checkout, extract, merge,
// write, and index. The clone directory is removed afterwards unless
// KeepClones is set.
func (r *Runner) processEntry(ctx context.Context, logger *log.Logger, opts Options, entry manifest.Entry, index *[]metadata.IndexEntry, missing *int) error {
	dest := filepath.Join(opts.CloneRoot, strings.ToLower(entry.LibraryID))

	// A leftover checkout from an earlier run would make git clone fail.
	if err := os.RemoveAll(dest); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "clear checkout dir %s", dest)
	}

	logger.Debug("fetching", "library_id", entry.LibraryID, "url", entry.URL, "ref", entry.GitRef)
	if err := r.Fetcher.Fetch(ctx, entry.URL, entry.GitRef, dest); err != nil {
		return err
	}

	proj, found, err := pyproject.Load(dest)
	if err != nil {
		return err
	}
	if !found {
		logger.Warn("pyproject.toml not found, filling N/A", "library_id", entry.LibraryID)
		*missing++
	}

	meta := metadata.Merge(entry, proj)
	path, err := metadata.Write(meta, opts.MetadataDir)
	if err != nil {
		return err
	}
	logger.Info("wrote metadata", "library_id", entry.LibraryID, "file", path)

	*index = append(*index, metadata.IndexEntry{
		LibraryID: entry.LibraryID,
		Path:      entry.Path,
		Metadata:  path,
	})

	if !opts.KeepClones {
		if err := os.RemoveAll(dest); err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "remove checkout dir %s", dest)
		}
	}
	return nil
}
