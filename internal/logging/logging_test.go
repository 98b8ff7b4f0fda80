package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.txt")

	logger := FileLogger(path)
	logger.Debug().Str("event", "Stop").Msg("checks passed")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "checks passed")
	assert.Contains(t, string(content), "Stop")
}

func TestFileLogger_UnwritablePathIsDisabled(t *testing.T) {
	logger := FileLogger(filepath.Join(t.TempDir(), "missing", "nested", "session.txt"))
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())

	// Logging to the disabled logger must not panic.
	logger.Debug().Msg("dropped")
}

func TestSessionLogger_DisabledOutsideZellij(t *testing.T) {
	t.Setenv("ZELLIJ_PANE_ID", "")
	logger := SessionLogger("some-session")
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
