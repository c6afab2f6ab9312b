package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logger records what happened during a battery administration.
type Logger interface {
	Log(event Event) error
	Close() error
}

// JSONLogger appends administration events as newline-delimited JSON, one
// event per line. Writes are serialized so the conductor's watcher
// goroutine and the task loop can both log.
type JSONLogger struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
	path string
}

// NewJSONLogger opens (or creates) the administration log at path,
// creating parent directories as needed. An existing log is appended to,
// so re-running against the same path keeps earlier administrations.
func NewJSONLogger(path string) (*JSONLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating administration log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening administration log: %w", err)
	}

	return &JSONLogger{
		file: f,
		enc:  json.NewEncoder(f),
		path: path,
	}, nil
}

// Log appends one event line.
func (l *JSONLogger) Log(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(event)
}

// Close syncs and closes the log. The record is clinical data, so it is
// flushed to disk even when the process is about to exit on a signal.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.file.Sync(); err != nil {
		l.file.Close() //nolint:errcheck
		return err
	}
	return l.file.Close()
}

// Path returns where the administration log is written.
func (l *JSONLogger) Path() string {
	return l.path
}

// NopLogger discards all events. The conductor uses it when no log path
// was configured.
type NopLogger struct{}

func (NopLogger) Log(Event) error { return nil }
func (NopLogger) Close() error    { return nil }

// DefaultLogPath names an administration log inside dir after the
// session it records, falling back to a UTC timestamp when the session
// ID is blank. The suffix is what ListSessions scans for.
func DefaultLogPath(dir, sessionID string) string {
	stem := strings.TrimSpace(sessionID)
	if stem == "" {
		stem = time.Now().UTC().Format("20060102T150405Z")
	}
	return filepath.Join(dir, stem+"-session.jsonl")
}
