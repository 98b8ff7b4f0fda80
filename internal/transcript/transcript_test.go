package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractToolEvents_MissingFile(t *testing.T) {
	events, err := ExtractToolEvents(filepath.Join(t.TempDir(), "nonexistent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestExtractToolEvents(t *testing.T) {
	transcript := `{"message":{"content":[{"type":"tool_use","name":"Write","input":{"file_path":"src/lib.rs","content":"fn main() {}"}}]}}
{"type":"user","uuid":"abc"}
not json at all

{"message":{"content":[{"type":"text","text":"running tests"},{"type":"tool_use","name":"Bash","input":{"command":"cargo test"}}]}}
{"message":{"content":[{"type":"tool_use","name":"Read","input":{"file_path":"README.md"}}]}}
{"message":{"content":[{"type":"tool_use","name":"Edit","input":{"file_path":"src/main.rs","old_string":"a","new_string":"b"}}]}}
`
	path := writeTranscript(t, transcript)

	events, err := ExtractToolEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, ToolUseEvent{ToolName: "Write", FilePath: "src/lib.rs", Index: 0}, events[0])
	assert.Equal(t, ToolUseEvent{ToolName: "Bash", Command: "cargo test", Index: 1}, events[1])
	// Unrelated tools keep their place in the ordering but carry no fields.
	assert.Equal(t, ToolUseEvent{ToolName: "Read", Index: 2}, events[2])
	assert.Equal(t, ToolUseEvent{ToolName: "Edit", FilePath: "src/main.rs", Index: 3}, events[3])
}

func TestExtractToolEvents_IndexIsStrictlyIncreasing(t *testing.T) {
	transcript := `{"message":{"content":[{"type":"tool_use","name":"Write","input":{"file_path":"a.go"}},{"type":"tool_use","name":"Bash","input":{"command":"go test ./..."}}]}}
{"message":{"content":[{"type":"tool_use","name":"Edit","input":{"file_path":"b.go"}}]}}
`
	path := writeTranscript(t, transcript)

	events, err := ExtractToolEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, event := range events {
		assert.Equal(t, i, event.Index)
	}
}

func TestToolUseEvent_IsFileWrite(t *testing.T) {
	tests := []struct {
		name  string
		event ToolUseEvent
		want  bool
	}{
		{
			name:  "Write is a file write",
			event: ToolUseEvent{ToolName: "Write", FilePath: "a.go"},
			want:  true,
		},
		{
			name:  "Edit is a file write",
			event: ToolUseEvent{ToolName: "Edit", FilePath: "a.go"},
			want:  true,
		},
		{
			name:  "Bash is not a file write",
			event: ToolUseEvent{ToolName: "Bash", Command: "rm a.go"},
			want:  false,
		},
		{
			name:  "Read is not a file write",
			event: ToolUseEvent{ToolName: "Read"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.IsFileWrite())
		})
	}
}

func TestToolUseEvent_IsShellCommand(t *testing.T) {
	assert.True(t, ToolUseEvent{ToolName: "Bash", Command: "cargo test"}.IsShellCommand())
	assert.False(t, ToolUseEvent{ToolName: "Bash"}.IsShellCommand())
	assert.False(t, ToolUseEvent{ToolName: "Write", FilePath: "a.rs"}.IsShellCommand())
}
