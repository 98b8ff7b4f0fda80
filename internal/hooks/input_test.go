package hooks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHookInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *HookInput
		wantErr bool
	}{
		{
			name:  "stop event",
			input: `{"hook_event_name": "Stop", "cwd": "/work/project", "session_id": "abc", "transcript_path": "/tmp/t.jsonl"}`,
			want: &HookInput{
				HookEventName:  "Stop",
				Cwd:            "/work/project",
				SessionID:      "abc",
				TranscriptPath: "/tmp/t.jsonl",
			},
		},
		{
			name:  "tool event carries tool_name",
			input: `{"hook_event_name": "PostToolUse", "cwd": "/work", "session_id": "abc", "tool_name": "Bash"}`,
			want: &HookInput{
				HookEventName: "PostToolUse",
				Cwd:           "/work",
				SessionID:     "abc",
				ToolName:      "Bash",
			},
		},
		{
			name:  "unknown fields are ignored",
			input: `{"hook_event_name": "Stop", "cwd": "/work", "stop_hook_active": true}`,
			want: &HookInput{
				HookEventName: "Stop",
				Cwd:           "/work",
			},
		},
		{
			name:    "missing hook_event_name",
			input:   `{"cwd": "/work"}`,
			wantErr: true,
		},
		{
			name:    "empty hook_event_name",
			input:   `{"hook_event_name": "", "cwd": "/work"}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `{invalid json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHookInput(strings.NewReader(tt.input))

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
