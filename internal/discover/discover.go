// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover locates notebook files under a directory tree.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every notebook under the search root.
const DefaultPattern = "**/*.ipynb"

// Notebooks returns the paths under root matching the doublestar pattern,
// sorted, with Jupyter checkpoint copies excluded. Returned paths are
// joined with root. An empty pattern falls back to DefaultPattern.
func Notebooks(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("searching %s: not a directory", root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("matching pattern %q: %w", pattern, err)
	}

	var out []string
	for _, m := range matches {
		if isCheckpoint(m) {
			continue
		}
		out = append(out, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(out)
	return out, nil
}

// isCheckpoint reports whether the slash-separated path lies inside a
// .ipynb_checkpoints directory.
func isCheckpoint(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == ".ipynb_checkpoints" {
			return true
		}
	}
	return false
}
