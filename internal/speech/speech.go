package speech

import (
	"context"
	"time"
)

// Cue identifies a short earcon played around a response window.
type Cue string

const (
	// CueBegin tells the subject the recording window just opened.
	CueBegin Cue = "begin"
	// CueEnd tells the subject the recording window closed.
	CueEnd Cue = "end"
)

// Device is the spoken I/O collaborator: it reads prompts aloud, plays
// cues and captures the subject's audio. Speak and PlayCue suspend until
// the utterance finishes, so callers can take timestamps around them.
// At most one capture session may be active per device; StartRecording
// fails while a previous capture is still running.
type Device interface {
	// Speak reads text aloud, returning once it has been spoken.
	Speak(ctx context.Context, text string) error

	// PlayCue plays the named earcon.
	PlayCue(ctx context.Context, cue Cue) error

	// StartRecording begins capturing audio into destination.
	StartRecording(ctx context.Context, destination string) error

	// StopRecording halts capture and reports the captured duration.
	StopRecording(ctx context.Context) (time.Duration, error)

	// Recording reports whether a capture session is active.
	Recording() bool
}

// TapSource is implemented by devices that can report tap gestures for
// the sustained-attention trial. Devices without a tap surface simply
// don't implement it.
type TapSource interface {
	// BeginTapCapture starts collecting tap timestamps.
	BeginTapCapture()

	// EndTapCapture stops collecting and returns the taps seen since
	// BeginTapCapture, in order.
	EndTapCapture() []time.Time
}
