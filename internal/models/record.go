package models

import (
	"time"
)

// SessionStatus represents the lifecycle state of an assessment session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// Patient identifies the person being assessed.
type Patient struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	// DOB carries date precision only; the time portion is ignored.
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "First Last", tolerating missing parts.
func (p *Patient) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Session represents one sitting of the battery for a patient.
type Session struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id,omitempty"`
	Status    SessionStatus     `json:"status"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   *time.Time        `json:"ended_at,omitempty"`
	// Notes holds small per-session facts tasks need to share across the
	// sitting, e.g. the word list read during working memory so delayed
	// recall scores against the same words.
	Notes     map[string]string `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NoteWordList is the Notes key under which the working-memory task
// records the word list it read aloud.
const NoteWordList = "word_list"

// Open reports whether the session is still accepting responses.
func (s *Session) Open() bool {
	return s.Status == SessionInProgress
}

// AudioClip references one captured recording segment. Transcription is
// backfilled asynchronously after capture stops and may arrive after the
// owning trial has already been scored.
type AudioClip struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	File          string    `json:"file"`
	DurationSec   float64   `json:"duration_sec"`
	Transcription string    `json:"transcription,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
