package hooks

import (
	"github.com/stretchr/testify/mock"

	"github.com/rufio-sh/rufio-hooks/internal/zellij"
)

// MockGitHelper is a mock implementation of GitHelper for testing.
type MockGitHelper struct {
	mock.Mock
}

// ChangedFiles is a mock implementation of GitHelper.ChangedFiles.
func (m *MockGitHelper) ChangedFiles(cwd string) []string {
	args := m.Called(cwd)
	if files, ok := args.Get(0).([]string); ok {
		return files
	}
	return nil
}

// RepoRoot is a mock implementation of GitHelper.RepoRoot.
func (m *MockGitHelper) RepoRoot(cwd string) string {
	args := m.Called(cwd)
	return args.String(0)
}

// MockPane is a mock implementation of Pane for testing.
type MockPane struct {
	mock.Mock
}

// UpdateTabName is a mock implementation of Pane.UpdateTabName.
func (m *MockPane) UpdateTabName(state zellij.PaneState, cwd, sessionID string) {
	m.Called(state, cwd, sessionID)
}

// SetAskingMarker is a mock implementation of Pane.SetAskingMarker.
func (m *MockPane) SetAskingMarker(sessionID string) {
	m.Called(sessionID)
}

// ClearAskingMarker is a mock implementation of Pane.ClearAskingMarker.
func (m *MockPane) ClearAskingMarker(sessionID string) {
	m.Called(sessionID)
}

// HasAskingMarker is a mock implementation of Pane.HasAskingMarker.
func (m *MockPane) HasAskingMarker(sessionID string) bool {
	args := m.Called(sessionID)
	return args.Bool(0)
}
