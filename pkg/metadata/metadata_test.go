package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/componentforge/metadex/pkg/manifest"
	"github.com/componentforge/metadex/pkg/pyproject"
)

func strptr(s string) *string { return &s }

func TestMerge_AllDefaults(t *testing.T) {
	entry := manifest.Entry{
		LibraryID: "Foo",
		Path:      "libs/foo",
		URL:       "https://example/foo.git",
		GitRef:    "main",
	}

	meta := Merge(entry, nil)

	if meta.LibraryID != "Foo" || meta.Path != "libs/foo" || meta.URL != "https://example/foo.git" || meta.GitRef != "main" {
		t.Errorf("manifest fields not preserved: %+v", meta)
	}
	if meta.Version != "N/A" {
		t.Errorf("Version = %q, want N/A", meta.Version)
	}
	if meta.Description != "No description available." {
		t.Errorf("Description = %q", meta.Description)
	}
	if len(meta.Authors) != 0 || meta.Authors == nil {
		t.Errorf("Authors = %v, want empty non-nil slice", meta.Authors)
	}
	if meta.License != "N/A" {
		t.Errorf("License = %v, want N/A", meta.License)
	}
	if meta.Readme != nil {
		t.Errorf("Readme = %v, want nil", meta.Readme)
	}
	if meta.Repository != nil {
		t.Errorf("Repository = %v, want nil", meta.Repository)
	}
	if len(meta.Keywords) != 0 || meta.Keywords == nil {
		t.Errorf("Keywords = %v, want empty non-nil slice", meta.Keywords)
	}
	if len(meta.Requirements) != 0 || meta.Requirements == nil {
		t.Errorf("Requirements = %v, want empty non-nil slice", meta.Requirements)
	}
}

func TestMerge_SubsetOfFields(t *testing.T) {
	entry := manifest.Entry{LibraryID: "foo", Path: "p", URL: "https://e/foo.git", GitRef: "main"}
	proj := &pyproject.Project{
		Version:     strptr("1.2.3"),
		Description: strptr("A thing."),
	}

	meta := Merge(entry, proj)

	if meta.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", meta.Version)
	}
	if meta.Description != "A thing." {
		t.Errorf("Description = %q", meta.Description)
	}
	// Everything else still defaults.
	if meta.License != "N/A" || meta.Readme != nil || meta.Repository != nil {
		t.Errorf("unexpected deviation from defaults: %+v", meta)
	}
	if len(meta.Authors) != 0 || len(meta.Keywords) != 0 || len(meta.Requirements) != 0 {
		t.Errorf("list fields should default to empty: %+v", meta)
	}
}

func TestMerge_DependenciesRenamed(t *testing.T) {
	entry := manifest.Entry{LibraryID: "foo", Path: "p", URL: "https://e/foo.git", GitRef: "main"}
	proj := &pyproject.Project{Dependencies: []string{"numpy", "pandas>=2.0"}}

	meta := Merge(entry, proj)
	if !reflect.DeepEqual(meta.Requirements, []string{"numpy", "pandas>=2.0"}) {
		t.Errorf("Requirements = %v", meta.Requirements)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"Foo", "foo.json"},
		{"XAI-Learning", "xai-learning.json"},
		{"already_lower", "already_lower.json"},
	}

	for _, tt := range tests {
		if got := FileName(tt.id); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	metaDir := filepath.Join(dir, "metadata")

	entry := manifest.Entry{LibraryID: "Foo", Path: "libs/foo", URL: "https://example/foo.git", GitRef: "main"}
	meta := Merge(entry, nil)

	path, err := Write(meta, metaDir)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if filepath.Base(path) != "foo.json" {
		t.Errorf("path = %q, want foo.json basename", path)
	}

	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["library_id"] != "Foo" {
		t.Errorf("library_id = %v, want Foo", decoded["library_id"])
	}
	if v, present := decoded["readme"]; !present || v != nil {
		t.Errorf("readme = %v (present=%v), want explicit null", v, present)
	}
	if !strings.Contains(string(data), "\n  \"") {
		t.Error("output should be 2-space indented")
	}
}

func TestWrite_KeyOrder(t *testing.T) {
	dir := t.TempDir()
	entry := manifest.Entry{LibraryID: "foo", Path: "p", URL: "https://e/foo.git", GitRef: "main"}

	path, err := Write(Merge(entry, nil), dir)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		t.Fatal(err)
	}

	keys := []string{
		"library_id", "path", "url", "git_ref", "version", "description",
		"authors", "license", "readme", "repository", "keywords", "requirements",
	}
	last := -1
	for _, key := range keys {
		idx := strings.Index(string(data), `"`+key+`"`)
		if idx < 0 {
			t.Fatalf("key %q missing from output", key)
		}
		if idx < last {
			t.Errorf("key %q out of order", key)
		}
		last = idx
	}
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	entry := manifest.Entry{LibraryID: "foo", Path: "p", URL: "https://e/foo.git", GitRef: "main"}

	first := Merge(entry, &pyproject.Project{Version: strptr("1.0.0")})
	if _, err := Write(first, dir); err != nil {
		t.Fatal(err)
	}

	second := Merge(entry, &pyproject.Project{Version: strptr("2.0.0")})
	path, err := Write(second, dir)
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(filepath.FromSlash(path))
	if !strings.Contains(string(data), "2.0.0") || strings.Contains(string(data), "1.0.0") {
		t.Errorf("rewrite should replace prior contents, got %s", data)
	}
}

func TestWriteIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	entries := []IndexEntry{
		{LibraryID: "Foo", Path: "libs/foo", Metadata: "metadata/foo.json"},
		{LibraryID: "bar", Path: "libs/bar", Metadata: "metadata/bar.json"},
	}

	if err := WriteIndex(entries, path); err != nil {
		t.Fatalf("WriteIndex failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []IndexEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("index is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded, entries) {
		t.Errorf("round-trip = %+v, want %+v", decoded, entries)
	}
}

func TestWriteIndex_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := WriteIndex(nil, path); err != nil {
		t.Fatalf("WriteIndex failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty index = %q, want []", data)
	}
}
