// Package pyproject extracts the [project] table from a pyproject.toml
// file at the root of a checked-out source tree.
//
// Every field is independently optional: pointer and slice fields are
// nil when the table omits them, so the merge step can distinguish "not
// declared" from "declared empty". Fields that PEP 621 allows to be
// either a string or an inline table (license, readme, authors entries)
// are kept as untyped values and pass through to JSON unchanged.
package pyproject

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the project-description file looked up at a checkout root.
const FileName = "pyproject.toml"

// Project holds the [project] table of a pyproject.toml.
type Project struct {
	Version      *string  `toml:"version"`
	Description  *string  `toml:"description"`
	Authors      []any    `toml:"authors"`
	License      any      `toml:"license"`
	Readme       any      `toml:"readme"`
	Repository   *string  `toml:"repository"`
	Keywords     []string `toml:"keywords"`
	Dependencies []string `toml:"dependencies"`
}

// document is the top-level pyproject.toml structure; tables other than
// [project] are ignored.
type document struct {
	Project Project `toml:"project"`
}

// Parse decodes pyproject.toml contents and returns its [project] table.
// A file without a [project] table yields a zero Project (all absent).
func Parse(data []byte) (*Project, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return &doc.Project, nil
}

// Load reads the pyproject.toml at the root of dir.
// The second return value reports whether the file exists; a missing
// file is not an error, it is the caller's recoverable condition.
func Load(dir string) (*Project, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", FileName, err)
	}

	proj, err := Parse(data)
	if err != nil {
		return nil, true, err
	}
	return proj, true, nil
}
