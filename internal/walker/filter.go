package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	".idea",
	".vscode",
}

func shouldExcludeDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude reports whether relPath is selected by the include
// patterns. No patterns selects everything.
func MatchesInclude(relPath string, patterns []string) bool {
	return len(patterns) == 0 || matchesAny(relPath, patterns)
}

// MatchesExclude reports whether relPath is dropped by the exclude
// patterns. No patterns drops nothing.
func MatchesExclude(relPath string, patterns []string) bool {
	return len(patterns) > 0 && matchesAny(relPath, patterns)
}

// matchesAny tries each doublestar pattern against the slash-separated
// path and then against its base name, so "*.yml" also selects
// "teams/tssm.yml".
func matchesAny(relPath string, patterns []string) bool {
	p := filepath.ToSlash(relPath)
	candidates := []string{p, filepath.Base(p)}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		for _, c := range candidates {
			if ok, err := doublestar.PathMatch(pattern, c); err == nil && ok {
				return true
			}
		}
	}
	return false
}
