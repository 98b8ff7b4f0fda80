package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// HookInput represents one hook event from the coding agent.
type HookInput struct {
	HookEventName  string `json:"hook_event_name"`
	Cwd            string `json:"cwd"`
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	// ToolName is only present for PreToolUse/PostToolUse events.
	ToolName string `json:"tool_name"`
}

// ParseHookInput reads and parses one hook event JSON object from a reader.
func ParseHookInput(reader io.Reader) (*HookInput, error) {
	var input HookInput
	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if input.HookEventName == "" {
		return nil, fmt.Errorf("hook_event_name is required")
	}

	return &input, nil
}
