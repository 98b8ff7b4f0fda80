package command

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner abstracts subprocess execution for testability.
type Runner interface {
	// RunInDir executes a command in a specific directory and returns raw
	// stdout and stderr. Output is not trimmed; callers that need trimmed
	// output trim it themselves, and callers that parse line-oriented
	// output (like git status porcelain) rely on it staying intact.
	RunInDir(ctx context.Context, dir string, name string, args ...string) (stdout string, stderr string, err error)
}

// runner implements Runner using os/exec
type runner struct{}

// NewRunner creates a new command runner
func NewRunner() Runner {
	return &runner{}
}

// RunInDir executes a command in a specific directory
func (r *runner) RunInDir(ctx context.Context, dir string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
