// Package transcript archives what was said and scored during one task
// run as a JSON file, so an administration can be reviewed after the
// fact without the store.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/liamoiknine/wolram/internal/models"
)

// sanitize replaces characters that are unsafe in filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// Filename returns the transcript filename for a task.
func Filename(task string, ts time.Time) string {
	return fmt.Sprintf("%s-%s.json", sanitizeName(task), ts.Format("20060102-150405"))
}

// TaskTranscript is the reviewable record of one task run: every line
// spoken to the subject plus the scored responses it produced.
type TaskTranscript struct {
	SessionID   string                `json:"session_id"`
	Task        models.TaskKind       `json:"task"`
	Title       string                `json:"title"`
	StartedAt   time.Time             `json:"started_at"`
	CompletedAt time.Time             `json:"completed_at"`
	DurationMs  int64                 `json:"duration_ms"`
	Spoken      []string              `json:"spoken,omitempty"`
	Responses   []models.ItemResponse `json:"responses,omitempty"`
}

// Build constructs a TaskTranscript from one task's run artifacts.
func Build(sessionID string, task models.TaskKind, title string, spoken []string,
	responses []models.ItemResponse, startedAt, completedAt time.Time) *TaskTranscript {
	return &TaskTranscript{
		SessionID:   sessionID,
		Task:        task,
		Title:       title,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		DurationMs:  completedAt.Sub(startedAt).Milliseconds(),
		Spoken:      spoken,
		Responses:   responses,
	}
}

// Write serializes a TaskTranscript and writes it to dir, returning the
// file path.
func Write(dir string, t *TaskTranscript) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	name := Filename(string(t.Task), t.StartedAt)
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return path, nil
}
