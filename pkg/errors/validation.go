package errors

import (
	"strings"
	"unicode"
)

// ValidateLibraryID validates a library identifier for safety.
// The case-folded ID becomes both a clone directory name and a metadata
// filename, so anything that could escape those directories is rejected.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateLibraryID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidLibraryID, "library_id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidLibraryID, "library_id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLibraryID, "library_id contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidLibraryID, "library_id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateRepoPath validates a library's path within the larger aggregate.
// It prevents traversal sequences and enforces a reasonable length; the
// path is recorded verbatim in output, never resolved on disk.
func ValidateRepoPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain traversal sequences (..)")
	}

	return nil
}

// ValidateRepoURL validates a version-control source URL.
// Anything git itself can clone is acceptable: http(s), git and ssh
// schemes, plus scp-like git@host:path shorthand.
func ValidateRepoURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "url cannot be empty")
	}

	for _, prefix := range []string{"http://", "https://", "git://", "ssh://"} {
		if strings.HasPrefix(rawURL, prefix) {
			return nil
		}
	}

	// scp-like syntax: git@github.com:owner/repo.git
	if strings.HasPrefix(rawURL, "git@") && strings.Contains(rawURL, ":") {
		return nil
	}

	return New(ErrCodeInvalidURL, "url must use an http(s), git, or ssh scheme: %q", rawURL)
}
