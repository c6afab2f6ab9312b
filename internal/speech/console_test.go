package speech

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsoleCaptureLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := NewConsole(ConsoleArgs{Out: &bytes.Buffer{}})

	dest := filepath.Join(dir, "clips", "r1.wav")
	require.NoError(t, c.StartRecording(ctx, dest))
	require.True(t, c.Recording())

	_, err := os.Stat(dest)
	require.NoError(t, err)

	t.Run("second capture rejected while active", func(t *testing.T) {
		err := c.StartRecording(ctx, filepath.Join(dir, "r2.wav"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "capture already active")
	})

	dur, err := c.StopRecording(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, dur, time.Duration(0))
	require.False(t, c.Recording())

	t.Run("capture can start again after stop", func(t *testing.T) {
		require.NoError(t, c.StartRecording(ctx, filepath.Join(dir, "r3.wav")))
		_, err := c.StopRecording(ctx)
		require.NoError(t, err)
	})

	t.Run("stop without start fails", func(t *testing.T) {
		_, err := c.StopRecording(ctx)
		require.Error(t, err)
	})
}

func TestConsoleSpeakAndCue(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(ConsoleArgs{Out: &buf})

	require.NoError(t, c.Speak(context.Background(), "Hello there"))
	require.NoError(t, c.PlayCue(context.Background(), CueBegin))
	require.NoError(t, c.PlayCue(context.Background(), CueEnd))
	require.Error(t, c.PlayCue(context.Background(), Cue("chirp")))

	out := buf.String()
	require.Contains(t, out, "Hello there")
	require.Contains(t, out, "(begin)")
	require.Contains(t, out, "(end)")
}

func TestConsoleTapCapture(t *testing.T) {
	var _ TapSource = (*Console)(nil)

	pr, pw := io.Pipe()
	defer pw.Close() //nolint:errcheck
	var buf bytes.Buffer
	c := NewConsole(ConsoleArgs{Out: &buf, In: pr})

	c.BeginTapCapture()
	require.Contains(t, buf.String(), "press Enter to tap")

	for range 3 {
		_, err := pw.Write([]byte("\n"))
		require.NoError(t, err)
	}
	require.Eventually(t, func() bool {
		c.tapMu.Lock()
		defer c.tapMu.Unlock()
		return len(c.taps) == 3
	}, 2*time.Second, 10*time.Millisecond)

	taps := c.EndTapCapture()
	require.Len(t, taps, 3)
	require.True(t, taps[0].Before(taps[2]) || taps[0].Equal(taps[2]))

	// A fresh window starts empty.
	c.BeginTapCapture()
	require.Empty(t, c.EndTapCapture())
}

func TestConsoleSpeakHonorsCancel(t *testing.T) {
	c := NewConsole(ConsoleArgs{Out: &bytes.Buffer{}, WordDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Speak(ctx, "one two three") }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Speak did not return after cancellation")
	}
}
