package frontend

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// argFileGlob is the pattern every discoverable argument file must match,
// relative to the walk root.
const argFileGlob = "**/*.gnargs.toml"

// DiscoverArgFiles walks the directory tree rooted at root collecting every
// path matching "**/*.gnargs.toml". There may be many argument files -- one
// per toolchain subtree -- so the walk goes down, returning every match
// instead of stopping at the first.
//
// Paths pruned by an *ImportIgnore (if non-nil) are skipped entirely,
// including their subtrees.
func DiscoverArgFiles(root string, ignore *ImportIgnore) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if ignore != nil && ignore.IsIgnored(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		ok, matchErr := doublestar.Match(argFileGlob, rel)
		if matchErr != nil {
			return fmt.Errorf("gnargs: matching %s against %s: %w", rel, argFileGlob, matchErr)
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gnargs: discovering arg files under %s: %w", root, err)
	}

	sort.Strings(matches)
	return matches, nil
}
