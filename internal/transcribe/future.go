package transcribe

import "sync"

// Future is a single-assignment slot for a transcription Result. Resolve
// may be called any number of times; only the first value sticks. Done
// yields that value to a single receiver.
type Future struct {
	once sync.Once
	ch   chan Result
}

// NewFuture creates an unresolved future.
func NewFuture() *Future {
	return &Future{ch: make(chan Result, 1)}
}

// Resolve sets the result. Later calls are ignored.
func (f *Future) Resolve(res Result) {
	f.once.Do(func() { f.ch <- res })
}

// Done returns the channel the result is delivered on.
func (f *Future) Done() <-chan Result {
	return f.ch
}
