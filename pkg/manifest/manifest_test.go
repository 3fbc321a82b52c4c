package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/componentforge/metadex/pkg/errors"
)

func TestRead(t *testing.T) {
	input := `{"library_id":"xai-learning","path":"xai_components/xai_learning","url":"https://example.com/xai-learning.git"}
{"library_id":"xai-vision","path":"xai_components/xai_vision","url":"https://example.com/xai-vision.git","git_ref":"v1.2.0"}
`
	entries, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	want := []Entry{
		{LibraryID: "xai-learning", Path: "xai_components/xai_learning", URL: "https://example.com/xai-learning.git", GitRef: "main"},
		{LibraryID: "xai-vision", Path: "xai_components/xai_vision", URL: "https://example.com/xai-vision.git", GitRef: "v1.2.0"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Read = %+v, want %+v", entries, want)
	}
}

func TestRead_DefaultRef(t *testing.T) {
	input := `{"library_id":"Foo","path":"libs/foo","url":"https://example/foo.git"}`

	entries, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if entries[0].GitRef != "main" {
		t.Errorf("GitRef = %q, want %q", entries[0].GitRef, "main")
	}
	// Original casing is preserved; only the derived filenames fold case.
	if entries[0].LibraryID != "Foo" {
		t.Errorf("LibraryID = %q, want %q", entries[0].LibraryID, "Foo")
	}
}

func TestRead_SkipsBlankLines(t *testing.T) {
	input := "\n{\"library_id\":\"a\",\"path\":\"p\",\"url\":\"https://e/a.git\"}\n\n"

	entries, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestRead_MalformedLine(t *testing.T) {
	input := `{"library_id":"a","path":"p","url":"https://e/a.git"}
{not json}
`
	_, err := Read(strings.NewReader(input))
	if err == nil {
		t.Fatal("Read should fail on malformed JSON")
	}
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidManifest)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the failing line, got %q", err.Error())
	}
}

func TestRead_InvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		line string
		code errors.Code
	}{
		{"missing library_id", `{"path":"p","url":"https://e/a.git"}`, errors.ErrCodeInvalidLibraryID},
		{"missing path", `{"library_id":"a","url":"https://e/a.git"}`, errors.ErrCodeInvalidPath},
		{"missing url", `{"library_id":"a","path":"p"}`, errors.ErrCodeInvalidURL},
		{"traversal id", `{"library_id":"../a","path":"p","url":"https://e/a.git"}`, errors.ErrCodeInvalidLibraryID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.line))
			if err == nil {
				t.Fatal("Read should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.jsonl")
	content := `{"library_id":"a","path":"p","url":"https://e/a.git"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err == nil {
		t.Fatal("ReadFile should fail for a missing manifest")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestDuplicates(t *testing.T) {
	entries := []Entry{
		{LibraryID: "foo"},
		{LibraryID: "bar"},
		{LibraryID: "Foo"}, // collides with foo after case folding
		{LibraryID: "foo"},
		{LibraryID: "baz"},
	}

	dups := Duplicates(entries)
	if len(dups) != 1 || strings.ToLower(dups[0]) != "foo" {
		t.Errorf("Duplicates = %v, want one entry folding to foo", dups)
	}
}

func TestDuplicates_None(t *testing.T) {
	entries := []Entry{{LibraryID: "a"}, {LibraryID: "b"}}
	if dups := Duplicates(entries); len(dups) != 0 {
		t.Errorf("Duplicates = %v, want none", dups)
	}
}
