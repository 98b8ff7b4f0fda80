// Package hooks dispatches coding-agent hook events. The Stop event runs the
// configured checks against the session's changed files and tool history and
// blocks the agent when any check fails; the other events only maintain the
// Zellij tab state.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rufio-sh/rufio-hooks/internal/checks"
	"github.com/rufio-sh/rufio-hooks/internal/config"
	"github.com/rufio-sh/rufio-hooks/internal/transcript"
	"github.com/rufio-sh/rufio-hooks/internal/zellij"
)

// Pane is the Zellij surface the handler drives. Satisfied by zellij.Client.
type Pane interface {
	UpdateTabName(state zellij.PaneState, cwd, sessionID string)
	SetAskingMarker(sessionID string)
	ClearAskingMarker(sessionID string)
	HasAskingMarker(sessionID string) bool
}

// blockDecision is the JSON object the agent understands as "do not stop".
type blockDecision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

// Handler routes hook events to their behavior.
type Handler struct {
	git    GitHelper
	pane   Pane
	engine *checks.Engine
	logger zerolog.Logger
	out    io.Writer
}

// NewHandler creates a hook event handler writing its decision to out.
func NewHandler(git GitHelper, pane Pane, engine *checks.Engine, logger zerolog.Logger, out io.Writer) *Handler {
	return &Handler{
		git:    git,
		pane:   pane,
		engine: engine,
		logger: logger,
		out:    out,
	}
}

// Handle dispatches a single hook event. It returns an error only for
// failures the caller should surface; a Stop event with failing checks is a
// normal outcome reported through the output decision, not an error.
func (h *Handler) Handle(input *HookInput) error {
	h.logger.Debug().
		Str("event", input.HookEventName).
		Str("cwd", input.Cwd).
		Str("tool", input.ToolName).
		Msg("handling hook event")

	switch input.HookEventName {
	case "Stop":
		return h.handleStop(input)
	case "PostToolUse", "PreToolUse", "UserPromptSubmit":
		// The agent is working again; any pending question was answered.
		h.pane.ClearAskingMarker(input.SessionID)
		h.pane.UpdateTabName(zellij.PaneStateActive, input.Cwd, input.SessionID)
		return nil
	case "PermissionRequest":
		h.pane.SetAskingMarker(input.SessionID)
		h.pane.UpdateTabName(zellij.PaneStateAskingQuestion, input.Cwd, input.SessionID)
		return nil
	default:
		h.logger.Debug().Str("event", input.HookEventName).Msg("ignoring unknown hook event")
		return nil
	}
}

// handleStop evaluates the configured checks and emits a block decision when
// any fail. The tab is updated after evaluation so the title reflects the
// outcome: stopped when clean, still active when the agent is sent back to
// work.
func (h *Handler) handleStop(input *HookInput) error {
	reasons := h.runChecks(input)

	switch {
	case h.pane.HasAskingMarker(input.SessionID):
		// Stopping right after a permission prompt: the question is moot.
		h.pane.ClearAskingMarker(input.SessionID)
		h.pane.UpdateTabName(zellij.PaneStateStopped, input.Cwd, input.SessionID)
	case len(reasons) == 0:
		h.pane.UpdateTabName(zellij.PaneStateStopped, input.Cwd, input.SessionID)
	default:
		h.pane.UpdateTabName(zellij.PaneStateActive, input.Cwd, input.SessionID)
	}

	if len(reasons) == 0 {
		return nil
	}

	decision := blockDecision{
		Decision: "block",
		Reason:   strings.Join(reasons, " | "),
	}
	if err := json.NewEncoder(h.out).Encode(decision); err != nil {
		return fmt.Errorf("failed to write block decision: %w", err)
	}
	return nil
}

// runChecks loads the nearest configuration and evaluates it, returning the
// failure reasons in check order. No configuration or no changed files means
// no failures.
func (h *Handler) runChecks(input *HookInput) []string {
	changedFiles := h.git.ChangedFiles(input.Cwd)
	if len(changedFiles) == 0 {
		h.logger.Debug().Msg("no changed files, skipping checks")
		return nil
	}

	repoRoot := h.git.RepoRoot(input.Cwd)
	loaded := config.FindNearest(input.Cwd, repoRoot, h.logger)
	if loaded == nil {
		h.logger.Debug().Msg("no config found, skipping checks")
		return nil
	}

	events, err := transcript.ExtractToolEvents(input.TranscriptPath)
	if err != nil {
		// A corrupt transcript must not wedge the session; commands cannot
		// be verified without it, so ordering checks will report honestly.
		h.logger.Debug().Err(err).Msg("failed to read transcript, treating as empty")
		events = nil
	}

	results := h.engine.Evaluate(loaded.Checks, loaded.Dir, changedFiles, events)

	var reasons []string
	for _, result := range results {
		if !result.Passed() {
			reasons = append(reasons, result.Reason)
		}
	}
	return reasons
}
