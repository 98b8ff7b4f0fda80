package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rufio-sh/rufio-hooks/internal/transcript"
)

// Engine evaluates checks against a changed-file snapshot and the ordered
// tool-use event log. Evaluation is a pure pass over the two inputs; each
// check depends only on its own definition, so an error in one check never
// aborts the others.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a new check engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger,
	}
}

// Evaluate runs every check against the changed files and event log,
// returning one result per check in the same order. configDir anchors
// relative path_exists gates.
func (e *Engine) Evaluate(cs []Check, configDir string, changedFiles []string, events []transcript.ToolUseEvent) []Result {
	results := make([]Result, 0, len(cs))
	for _, c := range cs {
		result := e.evaluateCheck(c, configDir, changedFiles, events)
		if result.Passed() {
			e.logger.Debug().Str("check", c.Name).Msg("check passed")
		} else {
			e.logger.Debug().Str("check", c.Name).Str("reason", result.Reason).Msg("check failed")
		}
		results = append(results, result)
	}
	return results
}

func (e *Engine) evaluateCheck(c Check, configDir string, changedFiles []string, events []transcript.ToolUseEvent) Result {
	if c.When.PathExists != "" {
		gate := filepath.Join(configDir, c.When.PathExists)
		if _, err := os.Stat(gate); err != nil {
			// Gate path absent: the check does not apply this run.
			return NewPassResult(c.Name)
		}
	}

	pattern := c.When.PathsChanged
	if !ValidPattern(pattern) {
		return NewFailResult(c.Name, fmt.Sprintf("Invalid glob pattern %q in check %q", pattern, c.Name))
	}

	triggered := false
	for _, file := range changedFiles {
		if PathMatches(pattern, file) {
			triggered = true
			break
		}
	}
	if !triggered {
		return NewPassResult(c.Name)
	}

	switch action := c.Then.(type) {
	case CommandsRequired:
		return evaluateCommandsRequired(c.Name, pattern, action.Patterns, events)
	case PathsRequired:
		return evaluatePathsRequired(c.Name, action.Paths, changedFiles)
	default:
		// Preset checks without an action always pass.
		return NewPassResult(c.Name)
	}
}

// evaluateCommandsRequired verifies that every required command ran after the
// last file write matching the trigger pattern. The policy is "run again
// after your last change": a command that ran only before the last matching
// edit does not count.
func evaluateCommandsRequired(checkName, pattern string, required []string, events []transcript.ToolUseEvent) Result {
	lastWrite := lastWriteIndex(pattern, events)

	var missing []string
	for _, cmd := range required {
		if !commandRanAfter(cmd, lastWrite, events) {
			missing = append(missing, cmd)
		}
	}

	if len(missing) == 0 {
		return NewPassResult(checkName)
	}
	return NewFailResult(checkName, fmt.Sprintf(
		"[%s] Required commands not run after last edit: %s",
		checkName, strings.Join(missing, ", "),
	))
}

// lastWriteIndex returns the highest index among file-write events whose
// path matches the trigger pattern, or -1 when no such event exists. The -1
// acts as "no lower bound": with no matching write, a command anywhere in
// the log satisfies the ordering test.
func lastWriteIndex(pattern string, events []transcript.ToolUseEvent) int {
	last := -1
	for _, event := range events {
		if event.IsFileWrite() && event.FilePath != "" && PathMatches(pattern, event.FilePath) && event.Index > last {
			last = event.Index
		}
	}
	return last
}

func commandRanAfter(cmd string, lastWrite int, events []transcript.ToolUseEvent) bool {
	for _, event := range events {
		if event.IsShellCommand() && event.Index > lastWrite && strings.Contains(event.Command, cmd) {
			return true
		}
	}
	return false
}

// evaluatePathsRequired verifies that at least one required path appears in
// the changed-file set, either verbatim or as a path-separator-bounded
// suffix. The suffix form lets a repo-root-relative declaration match a
// nested-directory-relative changed file and vice versa.
func evaluatePathsRequired(checkName string, required []string, changedFiles []string) Result {
	for _, requiredPath := range required {
		for _, file := range changedFiles {
			if file == requiredPath || strings.HasSuffix(file, "/"+requiredPath) {
				return NewPassResult(checkName)
			}
		}
	}

	return NewFailResult(checkName, fmt.Sprintf(
		"[%s] Required files not modified: %s",
		checkName, strings.Join(required, ", "),
	))
}
