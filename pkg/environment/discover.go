package environment

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/condadeps/pkg/errors"
)

// Descriptor patterns in priority order. Every .yml match beats every .yaml
// match. Patterns are matched against lower-cased, slash-separated paths
// relative to the search root.
var descriptorPatterns = []string{
	"**/env*.yml",
	"**/env*.yaml",
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git": true,
}

// Discover returns the path of the environment file under root.
//
// The tree is walked in lexical order. The first file matching the first
// pattern wins; if none does, the first file matching the next pattern is
// used, and so on. The returned path is root joined with the relative match.
// When nothing matches, the error code is NO_DESCRIPTOR_FOUND.
func Discover(root string) (string, error) {
	if root == "" {
		root = "."
	}
	if _, err := os.Stat(root); err != nil {
		return "", errors.Wrap(errors.ErrCodeNoDescriptorFound, err, "cannot search %s", root)
	}

	matches := make([]string, len(descriptorPatterns))
	err := fs.WalkDir(os.DirFS(root), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, the rest of the tree is still searched.
			if d != nil && d.IsDir() && p != "." {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != "." && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		rank := matchRank(p)
		if rank < 0 || matches[rank] != "" {
			return nil
		}
		matches[rank] = p
		if rank == 0 {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNoDescriptorFound, err, "search %s", root)
	}

	for _, m := range matches {
		if m != "" {
			return filepath.Join(root, filepath.FromSlash(m)), nil
		}
	}
	return "", errors.New(errors.ErrCodeNoDescriptorFound,
		"no files matching env*.yml or env*.yaml under %s", root)
}

// matchRank returns the index of the first pattern matching p, or -1.
func matchRank(p string) int {
	lower := strings.ToLower(p)
	for i, pattern := range descriptorPatterns {
		if ok, _ := doublestar.Match(pattern, lower); ok {
			return i
		}
	}
	return -1
}
