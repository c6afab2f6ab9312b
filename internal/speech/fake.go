package speech

import (
	"context"
	"sync"
	"time"
)

// FakeDevice is an instant, scriptable Device (and TapSource) for tests.
type FakeDevice struct {
	mu sync.Mutex

	// Spoken and Cues record everything the device was asked to say.
	Spoken []string
	Cues   []Cue

	// Recordings lists every destination a capture was started for.
	Recordings []string

	// Taps is returned by EndTapCapture.
	Taps []time.Time

	// SpeakErr, CueErr, StartErr and StopErr make the corresponding
	// call fail, for exercising the degraded paths.
	SpeakErr error
	CueErr   error
	StartErr error
	StopErr  error

	// StopDuration is reported by StopRecording. Defaults to a second.
	StopDuration time.Duration

	// OnSpeak, when set, observes each utterance as it happens.
	OnSpeak func(text string)

	active bool
}

func (f *FakeDevice) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.Spoken = append(f.Spoken, text)
	hook := f.OnSpeak
	f.mu.Unlock()
	if hook != nil {
		hook(text)
	}
	return f.SpeakErr
}

func (f *FakeDevice) PlayCue(ctx context.Context, cue Cue) error {
	f.mu.Lock()
	f.Cues = append(f.Cues, cue)
	f.mu.Unlock()
	return f.CueErr
}

func (f *FakeDevice) StartRecording(ctx context.Context, destination string) error {
	if f.StartErr != nil {
		return f.StartErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Recordings = append(f.Recordings, destination)
	f.active = true
	return nil
}

func (f *FakeDevice) StopRecording(ctx context.Context) (time.Duration, error) {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
	if f.StopErr != nil {
		return 0, f.StopErr
	}
	if f.StopDuration > 0 {
		return f.StopDuration, nil
	}
	return time.Second, nil
}

func (f *FakeDevice) Recording() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *FakeDevice) BeginTapCapture() {}

func (f *FakeDevice) EndTapCapture() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Taps
}

// SpokenLines returns a copy of everything spoken so far.
func (f *FakeDevice) SpokenLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Spoken))
	copy(out, f.Spoken)
	return out
}
