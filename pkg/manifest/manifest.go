// Package manifest reads the newline-delimited JSON manifest that
// enumerates component libraries to process.
//
// Each line is one JSON object:
//
//	{"library_id": "xai-learning", "path": "xai_components/xai_learning", "url": "https://...", "git_ref": "main"}
//
// library_id, path, and url are required; git_ref defaults to "main".
// Parsing is fail-fast: the first malformed or invalid line aborts the
// whole read, matching the pipeline's no-partial-recovery contract.
package manifest

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/componentforge/metadex/pkg/errors"
)

// DefaultRef is the revision checked out when a manifest line omits git_ref.
const DefaultRef = "main"

// Entry is one line of the manifest. Immutable once read.
type Entry struct {
	LibraryID string `json:"library_id"`
	Path      string `json:"path"`
	URL       string `json:"url"`
	GitRef    string `json:"git_ref,omitempty"`
}

// Validate checks the entry's required fields and rejects values that
// could escape the clone or metadata directories.
func (e Entry) Validate() error {
	if err := errors.ValidateLibraryID(e.LibraryID); err != nil {
		return err
	}
	if err := errors.ValidateRepoPath(e.Path); err != nil {
		return err
	}
	return errors.ValidateRepoURL(e.URL)
}

// Read parses a JSONL manifest from r. Entries are returned in input
// order with git_ref defaulted. Blank lines are skipped; any other
// malformed line fails the read with the 1-based line number.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "line %d: malformed JSON", line)
		}
		if err := entry.Validate(); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "line %d", line)
		}
		if entry.GitRef == "" {
			entry.GitRef = DefaultRef
		}

		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest")
	}

	return entries, nil
}

// ReadFile reads a JSONL manifest from the file at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "open manifest %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Duplicates returns library IDs that occur more than once, compared
// case-insensitively because the case-folded ID names both the clone
// directory and the metadata file. Each duplicate is reported once, in
// first-occurrence order, using its original casing.
func Duplicates(entries []Entry) []string {
	seen := make(map[string]int, len(entries))
	reported := make(map[string]bool)
	var dups []string

	for _, e := range entries {
		key := strings.ToLower(e.LibraryID)
		seen[key]++
		if seen[key] == 2 && !reported[key] {
			reported[key] = true
			dups = append(dups, e.LibraryID)
		}
	}
	return dups
}
