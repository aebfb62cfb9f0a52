package search

import (
	"path/filepath"
	"strings"
)

// normalizeRoot cleans the root so that every key is computed against the same prefix.
// Trailing separators are dropped and "" becomes ".".
func normalizeRoot(root string) string {
	return filepath.Clean(root)
}

// dirKey returns the result key of dir, a directory at or below root
func dirKey(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return RootKey
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}
