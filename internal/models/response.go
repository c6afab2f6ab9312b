package models

import "time"

// ItemResponse is one recorded answer: exactly one per recording segment
// (or per synthesized zero-score entry when a trial is cancelled before
// anything was captured). Score, ResponseText and the word lists stay
// absent until the owning task attaches them; absent fields survive a
// marshal/unmarshal round trip unchanged.
type ItemResponse struct {
	ID            string     `json:"id"`
	SessionID     string     `json:"session_id"`
	Task          TaskKind   `json:"task"`
	ResponseText  *string    `json:"response_text,omitempty"`
	AudioClipID   string     `json:"audio_clip_id,omitempty"`
	Score         *float64   `json:"score,omitempty"`
	CorrectWords  []string   `json:"correct_words,omitempty"`
	ExpectedWords []string   `json:"expected_words,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Scored reports whether a score has been attached.
func (r *ItemResponse) Scored() bool {
	return r.Score != nil
}

// ScoreValue returns the attached score, or 0 when none is set.
func (r *ItemResponse) ScoreValue() float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

// Text returns the response text, or "" when none is set.
func (r *ItemResponse) Text() string {
	if r.ResponseText == nil {
		return ""
	}
	return *r.ResponseText
}
