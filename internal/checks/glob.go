package checks

import (
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// PathMatches reports whether filePath matches the glob pattern, either
// against the full path or against its final component. Trigger patterns are
// often filename-only ("*.rs") while changed-file entries carry directory
// prefixes, so the bare-filename fallback keeps both forms working.
func PathMatches(pattern, filePath string) bool {
	if ok, err := doublestar.Match(pattern, filePath); err == nil && ok {
		return true
	}

	ok, err := doublestar.Match(pattern, path.Base(filePath))
	return err == nil && ok
}

// ValidPattern reports whether pattern compiles as a glob. An invalid
// pattern is a per-check failure, not a silent non-match.
func ValidPattern(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}
