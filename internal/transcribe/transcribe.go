package transcribe

import "context"

// Result is the outcome of one transcription job. An empty Text with a
// nil Err is legal: silent audio transcribes to nothing.
type Result struct {
	Text string
	Err  error
}

// Service runs speech-to-text jobs. Start returns immediately; done is
// invoked exactly once, from another goroutine, whenever the job
// finishes. Jobs are deliberately detached: a caller that has stopped
// waiting simply never observes the callback, and the transcript is
// backfilled onto the stored clip instead.
type Service interface {
	Start(ctx context.Context, audioFile string, done func(Result))
}

// NopService resolves every job immediately with an empty transcript.
// Used when no transcriber is configured.
type NopService struct{}

func (NopService) Start(_ context.Context, _ string, done func(Result)) {
	go done(Result{})
}
