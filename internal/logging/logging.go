// Package logging builds the session logger: human-readable output on the
// terminal, JSON lines in a per-session file, fanned out through one
// handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

// SetDebug lowers the log level to debug for the whole process.
func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Session is a configured logger plus the resources behind it.
type Session struct {
	Logger *slog.Logger
	// ID identifies this session in the log file name and every record.
	ID string
	// Path is the session log file, empty when file logging is off.
	Path string

	file *os.File
}

// Close releases the session log file.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// NewSession creates the session logger. Terminal output goes to terminal
// at warn level and above; the full record stream goes to a JSON file
// under logDir when it is non-empty. File creation failure degrades to
// terminal-only logging.
func NewSession(terminal io.Writer, logDir string) *Session {
	session := &Session{ID: uuid.NewString()}

	handlers := []slog.Handler{
		slog.NewTextHandler(terminal, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}

	if logDir != "" {
		name := fmt.Sprintf("session-%s-%s.log", time.Now().Format("20060102-150405"), session.ID[:8])
		path := filepath.Join(logDir, name)
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				session.file = file
				session.Path = path
				handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
			}
		}
	}

	session.Logger = slog.New(slogmulti.Fanout(handlers...)).With("session", session.ID)
	return session
}
