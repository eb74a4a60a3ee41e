package frontend

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ImportIgnore loads and evaluates .gnargsignore patterns hierarchically,
// pruning which subtrees DiscoverArgFiles descends into. It is a direct
// port of discovery.GitignoreMatcher's shape, applied to one file name
// (".gnargsignore" instead of ".gitignore") and one purpose (argument-file
// discovery instead of repository-wide content discovery).
type ImportIgnore struct {
	root     string
	matchers map[string]*gitignore.GitIgnore
	dirs     []string
	logger   *slog.Logger
}

// NewImportIgnore creates an ImportIgnore rooted at root, compiling every
// .gnargsignore file found in the tree. A tree with no .gnargsignore files
// returns a matcher whose IsIgnored always reports false.
func NewImportIgnore(root string) (*ImportIgnore, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("gnargs: resolving root path %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("gnargs: stat root path %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("gnargs: root path %s is not a directory", absRoot)
	}

	logger := slog.Default().With("component", "import-ignore")
	m := &ImportIgnore{
		root:     absRoot,
		matchers: make(map[string]*gitignore.GitIgnore),
		logger:   logger,
	}

	if err := m.discover(); err != nil {
		return nil, fmt.Errorf("gnargs: discovering .gnargsignore files in %s: %w", absRoot, err)
	}
	return m, nil
}

func (m *ImportIgnore) discover() error {
	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return filepath.SkipDir
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if d.IsDir() || d.Name() != ".gnargsignore" {
			return nil
		}

		dirPath := filepath.Dir(path)
		relDir, relErr := filepath.Rel(m.root, dirPath)
		if relErr != nil {
			m.logger.Debug("skipping .gnargsignore, cannot compute relative path",
				"path", path, "error", relErr)
			return nil
		}

		compiled, compileErr := gitignore.CompileIgnoreFile(path)
		if compileErr != nil {
			m.logger.Debug("skipping unreadable .gnargsignore", "path", path, "error", compileErr)
			return nil
		}

		if relDir == "" {
			relDir = "."
		}
		m.matchers[relDir] = compiled
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory tree: %w", err)
	}

	m.dirs = make([]string, 0, len(m.matchers))
	for dir := range m.matchers {
		m.dirs = append(m.dirs, dir)
	}
	sort.Strings(m.dirs)
	return nil
}

// IsIgnored reports whether path (relative to the matcher's root, forward
// slashes) should be pruned from argument-file discovery.
func (m *ImportIgnore) IsIgnored(path string, isDir bool) bool {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalized == "" || normalized == "." {
		return false
	}

	matchPath := normalized
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}

	for _, dir := range m.dirs {
		if dir != "." && !strings.HasPrefix(normalized, dir+"/") {
			continue
		}
		relPath := matchPath
		if dir != "." {
			relPath = strings.TrimPrefix(matchPath, dir+"/")
		}
		if m.matchers[dir].MatchesPath(relPath) {
			return true
		}
	}
	return false
}
