// Package zellij updates the Zellij tab of a coding-agent session to reflect
// its state: an animated spinner while the agent works, a question mark
// pattern while it waits for permission, and a done pattern when it stops.
// Everything in this package is best-effort; a missing zellij binary or pane
// environment never fails the hook.
package zellij

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/rufio-sh/rufio-hooks/internal/command"
)

// paneIDEnv is set by Zellij inside every pane.
const paneIDEnv = "ZELLIJ_PANE_ID"

// spinnerFrames is a 10-frame braille cycle shown while the agent is active.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	askingChar = "⣿" // all 8 dots: waiting on the user
	doneChar   = "⠶" // 4-dot square: stopped
)

// PaneState is the tri-state signal shown in the tab title.
type PaneState int

const (
	// PaneStateStopped means the agent stopped normally and is ready for review.
	PaneStateStopped PaneState = iota
	// PaneStateAskingQuestion means the agent is waiting for the user.
	PaneStateAskingQuestion
	// PaneStateActive means the agent is working; each update advances the spinner.
	PaneStateActive
)

func (s PaneState) String() string {
	switch s {
	case PaneStateStopped:
		return "Stopped"
	case PaneStateAskingQuestion:
		return "AskingQuestion"
	case PaneStateActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// Client renames Zellij tabs and tracks per-session spinner and marker state
// in the temp directory.
type Client struct {
	runner command.Runner
	logger zerolog.Logger
	// stateDir holds the spinner and marker files; os.TempDir outside tests.
	stateDir string
	// zellijPath overrides binary discovery in tests.
	zellijPath string
}

// NewClient creates a Zellij client storing session state under the system
// temp directory.
func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		runner:   command.NewRunner(),
		logger:   logger,
		stateDir: os.TempDir(),
	}
}

// UpdateTabName renames the session's tab according to state. It addresses
// the tab through the pane ID so renaming works even when the tab is not
// focused. Fails silently: this is a non-critical notification feature.
func (c *Client) UpdateTabName(state PaneState, cwd, sessionID string) {
	paneID := os.Getenv(paneIDEnv)
	if paneID == "" {
		c.logger.Debug().Msg("ZELLIJ_PANE_ID not set, skipping tab update")
		return
	}

	zellijPath := c.zellijPath
	if zellijPath == "" {
		zellijPath = findZellij()
	}
	if zellijPath == "" {
		c.logger.Debug().Msg("zellij binary not found, skipping tab update")
		return
	}

	name := deriveTabName(cwd)
	if name == "tmp" {
		c.logger.Debug().Msg("cwd is tmp, skipping tab update")
		return
	}

	var prefix string
	switch state {
	case PaneStateStopped:
		c.resetSpinner(sessionID)
		prefix = doneChar
	case PaneStateAskingQuestion:
		prefix = askingChar
	default:
		prefix = c.advanceSpinner(sessionID)
	}

	payload, err := json.Marshal(map[string]string{
		"pane_id": paneID,
		"name":    prefix + " " + name,
	})
	if err != nil {
		return
	}

	c.logger.Debug().
		Stringer("state", state).
		Str("pane_id", paneID).
		Str("title", prefix+" "+name).
		Msg("updating tab")

	_, stderr, err := c.runner.RunInDir(context.Background(), "", zellijPath, "pipe", "--name", "rename-tab", "--", string(payload))
	if err != nil {
		c.logger.Debug().Err(err).Str("stderr", stderr).Msg("zellij pipe failed")
	}
}

// SetAskingMarker records that the session is waiting on the user. The
// marker survives across hook invocations until a later event clears it.
func (c *Client) SetAskingMarker(sessionID string) {
	if err := os.WriteFile(c.askingMarkerPath(sessionID), nil, 0644); err != nil {
		c.logger.Debug().Err(err).Msg("failed to write asking marker")
	}
}

// ClearAskingMarker removes the asking marker if present.
func (c *Client) ClearAskingMarker(sessionID string) {
	if err := os.Remove(c.askingMarkerPath(sessionID)); err != nil && !os.IsNotExist(err) {
		c.logger.Debug().Err(err).Msg("failed to remove asking marker")
	}
}

// HasAskingMarker reports whether the asking marker is set for the session.
func (c *Client) HasAskingMarker(sessionID string) bool {
	_, err := os.Stat(c.askingMarkerPath(sessionID))
	return err == nil
}

func (c *Client) askingMarkerPath(sessionID string) string {
	return filepath.Join(c.stateDir, "rufio-asking-"+sessionID)
}

func (c *Client) spinnerStatePath(sessionID string) string {
	return filepath.Join(c.stateDir, "rufio-spinner-"+sessionID)
}

// advanceSpinner returns the current frame and persists the next index. The
// file lock keeps overlapping hook invocations from racing on the
// read-increment-write cycle.
func (c *Client) advanceSpinner(sessionID string) string {
	lock := flock.New(c.spinnerStatePath(sessionID) + ".lock")
	if err := lock.Lock(); err == nil {
		defer func() {
			_ = lock.Unlock()
		}()
	}

	index := c.spinnerIndex(sessionID)
	frame := spinnerFrames[index]
	next := (index + 1) % len(spinnerFrames)
	if err := os.WriteFile(c.spinnerStatePath(sessionID), []byte(strconv.Itoa(next)), 0644); err != nil {
		c.logger.Debug().Err(err).Msg("failed to persist spinner state")
	}
	return frame
}

// spinnerIndex reads the persisted frame index, defaulting to 0.
func (c *Client) spinnerIndex(sessionID string) int {
	data, err := os.ReadFile(c.spinnerStatePath(sessionID))
	if err != nil {
		return 0
	}
	index, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || index < 0 || index >= len(spinnerFrames) {
		return 0
	}
	return index
}

func (c *Client) resetSpinner(sessionID string) {
	if err := os.Remove(c.spinnerStatePath(sessionID)); err != nil && !os.IsNotExist(err) {
		c.logger.Debug().Err(err).Msg("failed to reset spinner state")
	}
}

// deriveTabName derives a short tab title from the working directory:
// worktrees under ~/.meow/trees are named after their branch, projects under
// ~/src after the project directory, everything else after the last path
// component.
func deriveTabName(cwd string) string {
	if home, err := os.UserHomeDir(); err == nil {
		if rel, ok := relativeTo(cwd, filepath.Join(home, ".meow", "trees")); ok {
			if branch := firstComponent(rel); branch != "" {
				return branch
			}
		}

		if rel, ok := relativeTo(cwd, filepath.Join(home, "src")); ok {
			components := strings.Split(rel, string(filepath.Separator))
			// src/projects/foo names the project foo; src/foo names it foo.
			if len(components) >= 2 {
				return components[1]
			}
			if components[0] != "" && components[0] != "." {
				return components[0]
			}
		}
	}

	if name := filepath.Base(cwd); name != "." && name != string(filepath.Separator) {
		return name
	}
	return "claude"
}

// relativeTo returns cwd relative to root when cwd is inside root.
func relativeTo(cwd, root string) (string, bool) {
	rel, err := filepath.Rel(root, cwd)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func firstComponent(rel string) string {
	return strings.Split(rel, string(filepath.Separator))[0]
}

// findZellij locates the zellij binary, checking PATH first and then common
// nix and homebrew locations.
func findZellij() string {
	if path, err := exec.LookPath("zellij"); err == nil {
		return path
	}

	candidates := []string{
		"/run/current-system/sw/bin/zellij",
		"/usr/local/bin/zellij",
		"/opt/homebrew/bin/zellij",
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
