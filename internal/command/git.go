package command

import (
	"context"
	"fmt"
	"strings"
)

// GitRunner abstracts the git operations used by the hook
type GitRunner interface {
	// StatusPorcelain returns the paths of changed files in the working
	// tree at dir, including untracked files
	StatusPorcelain(ctx context.Context, dir string) ([]string, error)
	// ShowToplevel returns the repository root directory for dir
	ShowToplevel(ctx context.Context, dir string) (string, error)
}

type gitRunner struct {
	runner Runner
}

// NewGitRunner creates a new GitRunner instance
func NewGitRunner(runner Runner) GitRunner {
	return &gitRunner{
		runner: runner,
	}
}

// StatusPorcelain returns the changed paths reported by git status
func (g *gitRunner) StatusPorcelain(ctx context.Context, dir string) ([]string, error) {
	stdout, stderr, err := g.runner.RunInDir(ctx, dir, "git", "status", "--porcelain", "-uall")
	if err != nil {
		return nil, fmt.Errorf("failed to get git status: %w (stderr: %s)", err, strings.TrimSpace(stderr))
	}

	var files []string
	for _, line := range strings.Split(stdout, "\n") {
		// Porcelain format: two status characters and a space, then the path.
		if len(line) > 3 {
			files = append(files, line[3:])
		}
	}
	return files, nil
}

// ShowToplevel returns the git repository root directory
func (g *gitRunner) ShowToplevel(ctx context.Context, dir string) (string, error) {
	stdout, stderr, err := g.runner.RunInDir(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to get repository root: %w (stderr: %s)", err, strings.TrimSpace(stderr))
	}

	return strings.TrimSpace(stdout), nil
}
