// Package metadata merges manifest entries with extracted project
// descriptions and persists the per-library files and the global index.
//
// Field defaulting follows fixed placeholder rules: absent scalars
// become "N/A", the description gets a readable fallback, list fields
// become empty arrays, and readme/repository stay JSON null so
// consumers can tell "never declared" from "declared empty".
package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/componentforge/metadex/pkg/errors"
	"github.com/componentforge/metadex/pkg/manifest"
	"github.com/componentforge/metadex/pkg/pyproject"
)

// Placeholder values substituted for absent project fields.
const (
	PlaceholderScalar      = "N/A"
	PlaceholderDescription = "No description available."
)

// LibraryMetadata is the merged record for one library. Field order
// matches the serialized output.
type LibraryMetadata struct {
	LibraryID    string   `json:"library_id"`
	Path         string   `json:"path"`
	URL          string   `json:"url"`
	GitRef       string   `json:"git_ref"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Authors      []any    `json:"authors"`
	License      any      `json:"license"`
	Readme       any      `json:"readme"`
	Repository   any      `json:"repository"`
	Keywords     []string `json:"keywords"`
	Requirements []string `json:"requirements"`
}

// IndexEntry is the projection of one LibraryMetadata kept in the index.
type IndexEntry struct {
	LibraryID string `json:"library_id"`
	Path      string `json:"path"`
	Metadata  string `json:"metadata"`
}

// Merge combines a manifest entry with its extracted project info.
// proj may be nil when no pyproject.toml was found; every project field
// then takes its placeholder.
func Merge(entry manifest.Entry, proj *pyproject.Project) LibraryMetadata {
	meta := LibraryMetadata{
		LibraryID:    entry.LibraryID,
		Path:         entry.Path,
		URL:          entry.URL,
		GitRef:       entry.GitRef,
		Version:      PlaceholderScalar,
		Description:  PlaceholderDescription,
		Authors:      []any{},
		License:      PlaceholderScalar,
		Keywords:     []string{},
		Requirements: []string{},
	}
	if proj == nil {
		return meta
	}

	if proj.Version != nil {
		meta.Version = *proj.Version
	}
	if proj.Description != nil {
		meta.Description = *proj.Description
	}
	if proj.Authors != nil {
		meta.Authors = proj.Authors
	}
	if proj.License != nil {
		meta.License = proj.License
	}
	if proj.Readme != nil {
		meta.Readme = proj.Readme
	}
	if proj.Repository != nil {
		meta.Repository = *proj.Repository
	}
	if proj.Keywords != nil {
		meta.Keywords = proj.Keywords
	}
	if proj.Dependencies != nil {
		meta.Requirements = proj.Dependencies
	}
	return meta
}

// FileName returns the per-library output filename: the case-folded
// library ID with a .json suffix.
func FileName(libraryID string) string {
	return strings.ToLower(libraryID) + ".json"
}

// Write persists the merged record under dir, creating the directory if
// needed and overwriting any previous file. It returns the written path
// in slash form, as recorded in the index.
func Write(meta LibraryMetadata, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, err, "create metadata dir %s", dir)
	}

	path := filepath.Join(dir, FileName(meta.LibraryID))
	if err := writeJSON(path, meta); err != nil {
		return "", err
	}
	return filepath.ToSlash(path), nil
}

// WriteIndex persists the accumulated index as a JSON array at path,
// overwriting any previous file. A nil slice is written as [].
func WriteIndex(entries []IndexEntry, path string) error {
	if entries == nil {
		entries = []IndexEntry{}
	}
	return writeJSON(path, entries)
}

// writeJSON writes v as 2-space-indented JSON at path.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "encode %s", path)
	}
	return nil
}
