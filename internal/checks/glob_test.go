package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{
			name:    "full path match with doublestar",
			pattern: "**/*.rs",
			path:    "src/checks/runner.rs",
			want:    true,
		},
		{
			name:    "doublestar matches zero directories",
			pattern: "**/*.rs",
			path:    "main.rs",
			want:    true,
		},
		{
			name:    "filename-only pattern matches nested path via basename",
			pattern: "*.rs",
			path:    "src/lib.rs",
			want:    true,
		},
		{
			name:    "absolute path matches via basename",
			pattern: "*.ts",
			path:    "/home/user/project/src/index.ts",
			want:    true,
		},
		{
			name:    "exact filename pattern",
			pattern: "version.toml",
			path:    "crates/foo/version.toml",
			want:    true,
		},
		{
			name:    "different extension does not match",
			pattern: "**/*.rs",
			path:    "README.md",
			want:    false,
		},
		{
			name:    "directory-qualified pattern does not match basename",
			pattern: "journal/*.md",
			path:    "docs/notes.md",
			want:    false,
		},
		{
			name:    "directory-qualified pattern matches full path",
			pattern: "journal/*.md",
			path:    "journal/2026-08.md",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathMatches(tt.pattern, tt.path))
		})
	}
}

func TestValidPattern(t *testing.T) {
	assert.True(t, ValidPattern("**/*.rs"))
	assert.True(t, ValidPattern("version.toml"))
	assert.False(t, ValidPattern("[unclosed"))
}
