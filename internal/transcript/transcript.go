package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Tool names that appear in session transcripts and carry fields the checks
// care about.
const (
	toolBash  = "Bash"
	toolEdit  = "Edit"
	toolWrite = "Write"
)

// ToolUseEvent is one tool invocation extracted from the session transcript.
// Index is strictly increasing and reflects chronological order within the
// session.
type ToolUseEvent struct {
	ToolName string
	// Command is set for shell-execution events.
	Command string
	// FilePath is set for file-write events.
	FilePath string
	Index    int
}

// IsFileWrite reports whether the event wrote a file.
func (e ToolUseEvent) IsFileWrite() bool {
	return e.ToolName == toolEdit || e.ToolName == toolWrite
}

// IsShellCommand reports whether the event executed a shell command.
func (e ToolUseEvent) IsShellCommand() bool {
	return e.ToolName == toolBash && e.Command != ""
}

// transcriptLine is one JSONL entry of a session transcript. Only assistant
// messages with tool_use content items are relevant; everything else is
// skipped.
type transcriptLine struct {
	Message *messageContent `json:"message"`
}

type messageContent struct {
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type  string          `json:"type"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

type toolUseInput struct {
	Command  string `json:"command"`
	FilePath string `json:"file_path"`
}

// ExtractToolEvents reads the transcript file at path and returns all tool
// use events in chronological order. A missing transcript yields an empty
// event list rather than an error: a session may stop before any tool ran.
func ExtractToolEvents(path string) ([]ToolUseEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open transcript %s: %w", path, err)
	}
	defer file.Close()

	var events []ToolUseEvent
	index := 0

	scanner := bufio.NewScanner(file)
	// Transcript lines include full tool inputs and can be large.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry transcriptLine
		if err := json.Unmarshal(line, &entry); err != nil {
			// Not every transcript line is a message entry.
			continue
		}
		if entry.Message == nil {
			continue
		}

		for _, item := range entry.Message.Content {
			if item.Type != "tool_use" || item.Name == "" {
				continue
			}

			event := ToolUseEvent{
				ToolName: item.Name,
				Index:    index,
			}
			if len(item.Input) > 0 {
				var input toolUseInput
				if err := json.Unmarshal(item.Input, &input); err == nil {
					switch item.Name {
					case toolBash:
						event.Command = input.Command
					case toolEdit, toolWrite:
						event.FilePath = input.FilePath
					}
				}
			}

			events = append(events, event)
			index++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	return events, nil
}
