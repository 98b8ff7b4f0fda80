package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rufio-sh/rufio-hooks/internal/command"
)

// projectMarkers are the files whose presence marks a project boundary
// inside a larger repository (e.g. one project of a monorepo).
var projectMarkers = []string{"shell.nix", "CLAUDE.md"}

// GitHelper provides the working-tree snapshot the checks run against.
type GitHelper interface {
	// ChangedFiles returns the paths changed in the working tree at cwd,
	// filtered to the project boundary. Any git failure degrades to an
	// empty set: no changed files means no triggered checks.
	ChangedFiles(cwd string) []string

	// RepoRoot returns the git repository root for cwd, or cwd itself when
	// not inside a repository.
	RepoRoot(cwd string) string
}

// realGitHelper implements GitHelper as an adapter over command.GitRunner.
type realGitHelper struct {
	runner command.GitRunner
	logger zerolog.Logger
}

// NewGitHelper creates a new GitHelper instance using command.GitRunner.
func NewGitHelper(logger zerolog.Logger) GitHelper {
	return NewGitHelperWithRunner(command.NewGitRunner(command.NewRunner()), logger)
}

// NewGitHelperWithRunner creates a new GitHelper with a custom runner for testing.
func NewGitHelperWithRunner(runner command.GitRunner, logger zerolog.Logger) GitHelper {
	return &realGitHelper{
		runner: runner,
		logger: logger,
	}
}

// ChangedFiles returns the changed-file set for cwd.
func (g *realGitHelper) ChangedFiles(cwd string) []string {
	files, err := g.runner.StatusPorcelain(context.Background(), cwd)
	if err != nil {
		g.logger.Debug().Err(err).Msg("failed to collect changed files")
		return nil
	}
	return g.filterToProject(cwd, files)
}

// RepoRoot returns the repository root, falling back to cwd outside a repo.
func (g *realGitHelper) RepoRoot(cwd string) string {
	root, err := g.runner.ShowToplevel(context.Background(), cwd)
	if err != nil || root == "" {
		return cwd
	}
	return root
}

// filterToProject narrows the changed-file set to the project containing
// cwd. Paths stay relative to the repository root; only entries under the
// project's prefix survive. Without a project marker the whole repository is
// the project.
func (g *realGitHelper) filterToProject(cwd string, files []string) []string {
	gitRoot, err := g.runner.ShowToplevel(context.Background(), cwd)
	if err != nil {
		return files
	}

	projectRoot, found := findProjectRoot(cwd, gitRoot)
	if !found || projectRoot == gitRoot {
		return files
	}

	prefix, err := filepath.Rel(gitRoot, projectRoot)
	if err != nil {
		return files
	}

	var filtered []string
	for _, file := range files {
		if strings.HasPrefix(file, prefix) {
			filtered = append(filtered, file)
		}
	}
	return filtered
}

// findProjectRoot walks up from cwd looking for a project marker file,
// stopping at gitRoot. Returns false when no marker is found.
func findProjectRoot(cwd, gitRoot string) (string, bool) {
	current := cwd
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current, true
			}
		}

		if current == gitRoot {
			return "", false
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
