package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Console is a Device for terminal runs: prompts are printed rather
// than synthesized, speech is paced by an approximate per-word delay so
// trial timing resembles a real administration, and "capture" writes a
// placeholder file since there is no microphone. Taps are read as Enter
// presses, so the letter-tapping trial works at a plain terminal.
type Console struct {
	out       io.Writer
	in        io.Reader
	wordDelay time.Duration

	capture *semaphore.Weighted

	mu      sync.Mutex
	dest    string
	started time.Time
	active  bool

	tapOnce sync.Once
	tapMu   sync.Mutex
	tapping bool
	taps    []time.Time
}

// ConsoleArgs configures a console device.
type ConsoleArgs struct {
	// Out receives the printed prompts. Defaults to os.Stdout.
	Out io.Writer
	// In supplies tap input, one tap per line. Defaults to os.Stdin.
	In io.Reader
	// WordDelay paces Speak per word to imitate text-to-speech. Zero
	// means no pacing.
	WordDelay time.Duration
}

// NewConsole creates a console device.
func NewConsole(args ConsoleArgs) *Console {
	out := args.Out
	if out == nil {
		out = os.Stdout
	}
	in := args.In
	if in == nil {
		in = os.Stdin
	}
	return &Console{
		out:       out,
		in:        in,
		wordDelay: args.WordDelay,
		capture:   semaphore.NewWeighted(1),
	}
}

func (c *Console) Speak(ctx context.Context, text string) error {
	fmt.Fprintf(c.out, "  🗣  %s\n", text)
	if c.wordDelay <= 0 {
		return nil
	}
	words := len(strings.Fields(text))
	return sleepCtx(ctx, time.Duration(words)*c.wordDelay)
}

func (c *Console) PlayCue(ctx context.Context, cue Cue) error {
	switch cue {
	case CueBegin:
		fmt.Fprintln(c.out, "  ♪  (begin)")
	case CueEnd:
		fmt.Fprintln(c.out, "  ♪  (end)")
	default:
		return fmt.Errorf("unknown cue %q", cue)
	}
	return nil
}

func (c *Console) StartRecording(ctx context.Context, destination string) error {
	if !c.capture.TryAcquire(1) {
		return fmt.Errorf("capture already active")
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		c.capture.Release(1)
		return err
	}
	if err := os.WriteFile(destination, []byte{}, 0o644); err != nil {
		c.capture.Release(1)
		return err
	}

	c.mu.Lock()
	c.dest = destination
	c.started = time.Now()
	c.active = true
	c.mu.Unlock()
	return nil
}

func (c *Console) StopRecording(ctx context.Context) (time.Duration, error) {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return 0, fmt.Errorf("no active capture")
	}
	dur := time.Since(c.started)
	c.active = false
	c.dest = ""
	c.mu.Unlock()

	c.capture.Release(1)
	return dur, nil
}

func (c *Console) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// BeginTapCapture starts counting Enter presses as taps. The first call
// spawns the line reader; a blocked stdin read cannot be cancelled, so
// the reader lives for the rest of the process and lines arriving
// outside a capture window are discarded.
func (c *Console) BeginTapCapture() {
	c.tapOnce.Do(func() { go c.readTaps() })

	c.tapMu.Lock()
	c.taps = nil
	c.tapping = true
	c.tapMu.Unlock()

	fmt.Fprintln(c.out, "  ⏎  (press Enter to tap)")
}

// EndTapCapture stops counting and returns the taps seen since
// BeginTapCapture, in order.
func (c *Console) EndTapCapture() []time.Time {
	c.tapMu.Lock()
	defer c.tapMu.Unlock()
	c.tapping = false
	taps := c.taps
	c.taps = nil
	return taps
}

func (c *Console) readTaps() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		now := time.Now()
		c.tapMu.Lock()
		if c.tapping {
			c.taps = append(c.taps, now)
		}
		c.tapMu.Unlock()
	}
}

// sleepCtx pauses for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
