package transcribe

import (
	"context"
	"sync"
	"time"
)

// FakeService is a scriptable Service for tests: each Start consumes the
// next queued Result (or an empty one) and delivers it after Delay.
type FakeService struct {
	mu sync.Mutex

	// Results are consumed one per Start call.
	Results []Result

	// Delay postpones each callback, for racing against timeouts.
	Delay time.Duration

	// Files records every audio file submitted.
	Files []string
}

func (f *FakeService) Start(_ context.Context, audioFile string, done func(Result)) {
	f.mu.Lock()
	f.Files = append(f.Files, audioFile)
	var res Result
	if len(f.Results) > 0 {
		res = f.Results[0]
		f.Results = f.Results[1:]
	}
	delay := f.Delay
	f.mu.Unlock()

	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		done(res)
	}()
}

// Submitted returns a copy of the submitted file list.
func (f *FakeService) Submitted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Files))
	copy(out, f.Files)
	return out
}
