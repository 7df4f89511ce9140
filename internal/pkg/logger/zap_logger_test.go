package logger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.log")
	l := NewIsolatedLogger(path)

	l.Debug("Hub", "dropped below file level", nil)
	l.Info("Hub", "client registered", map[string]interface{}{"session_id": "s-1"})
	l.Warn("Hub", "slow client", nil)
	l.Error("Hub", "redis publish failed", map[string]interface{}{"error": errors.New("boom")})
	require.NoError(t, l.Sync())

	all, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "redis publish failed", all[0].Message, "newest first")
	assert.Equal(t, "Hub", all[2].Module)
	assert.Equal(t, "s-1", all[2].Details["session_id"])

	warnings, err := l.GetLogs("WARN", 10, 0)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "slow client", warnings[0].Message)

	page, err := l.GetLogs("", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "slow client", page[0].Message)

	empty, err := l.GetLogs("", 10, 50)
	require.NoError(t, err)
	assert.Empty(t, empty)

	found, err := l.GetLogById(all[1].Id)
	require.NoError(t, err)
	assert.Equal(t, all[1].Message, found.Message)

	_, err = l.GetLogById("nope")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestGetLogsMissingFile(t *testing.T) {
	l := NewIsolatedLogger(filepath.Join(t.TempDir(), "never-written.log"))
	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("Test", "ignored", nil)
	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
