package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionWritesToFileAndTerminal(t *testing.T) {
	var terminal bytes.Buffer
	logDir := filepath.Join(t.TempDir(), "logs")

	session := NewSession(&terminal, logDir)
	t.Cleanup(func() { _ = session.Close() })

	require.NotNil(t, session.Logger)
	require.NotEmpty(t, session.ID)
	require.NotEmpty(t, session.Path)

	session.Logger.Warn("something happened", "key", "value")
	session.Logger.Info("only in the file")

	assert.Contains(t, terminal.String(), "something happened")
	assert.NotContains(t, terminal.String(), "only in the file")

	content, err := os.ReadFile(session.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "something happened")
	assert.Contains(t, string(content), "only in the file")
	assert.Contains(t, string(content), session.ID)
}

func TestNewSessionWithoutLogDir(t *testing.T) {
	var terminal bytes.Buffer

	session := NewSession(&terminal, "")
	t.Cleanup(func() { _ = session.Close() })

	assert.Empty(t, session.Path)
	session.Logger.Warn("terminal only")
	assert.Contains(t, terminal.String(), "terminal only")
}

func TestSessionLogFileNameCarriesShortID(t *testing.T) {
	var terminal bytes.Buffer
	logDir := t.TempDir()

	session := NewSession(&terminal, logDir)
	t.Cleanup(func() { _ = session.Close() })

	base := filepath.Base(session.Path)
	assert.True(t, strings.HasPrefix(base, "session-"))
	assert.Contains(t, base, session.ID[:8])
}
