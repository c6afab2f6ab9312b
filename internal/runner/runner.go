// Package runner drives one subtest at a time through the
// presenting/recording/evaluating lifecycle, owning the side effects
// that happen on each transition: allocating capture destinations,
// creating response and clip records, and kicking off detached
// transcription jobs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/speech"
	"github.com/liamoiknine/wolram/internal/store"
	"github.com/liamoiknine/wolram/internal/transcribe"
)

var (
	// ErrInvalidState is returned when an operation is attempted in a
	// runner state that does not allow it.
	ErrInvalidState = errors.New("invalid runner state")

	// ErrNoActiveTask is returned when a response is captured while
	// nothing is running.
	ErrNoActiveTask = errors.New("no active task")
)

// State is the runner's published lifecycle phase.
type State string

const (
	StateIdle       State = "idle"
	StatePresenting State = "presenting"
	StateRecording  State = "recording"
	StateEvaluating State = "evaluating"
	StateCompleted  State = "completed"
)

// pollInterval is how often wait loops re-check the store. It is the
// cancellation-observation granularity for the whole engine.
const pollInterval = 500 * time.Millisecond

// Runner executes one Task against one session. It is single-flight:
// Start runs the task in the calling goroutine, while Stop may be
// called from any other goroutine to cancel it. The only background
// work a runner ever spawns is the detached transcription callback,
// which may outlive the trial that triggered it.
type Runner struct {
	store    *store.Store
	device   speech.Device
	scribe   transcribe.Service
	audioDir string
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	task       Task
	sessionID  string
	responseID string
	clipID     string
	prompt     string
	log        []string
	future     *transcribe.Future
	capturing  bool
	cancel     context.CancelFunc
	stopped    bool
}

// Args configures a Runner.
type Args struct {
	Store  *store.Store
	Device speech.Device

	// Scribe produces transcripts for captured clips. Defaults to the
	// no-op service, which yields empty transcripts immediately.
	Scribe transcribe.Service

	// AudioDir is where capture destinations are allocated.
	AudioDir string

	Logger *slog.Logger
}

// New builds an idle Runner.
func New(args Args) *Runner {
	logger := args.Logger
	if logger == nil {
		logger = slog.Default()
	}
	scribe := args.Scribe
	if scribe == nil {
		scribe = transcribe.NopService{}
	}
	audioDir := args.AudioDir
	if audioDir == "" {
		audioDir = filepath.Join(os.TempDir(), "wolram-audio")
	}
	return &Runner{
		store:    args.Store,
		device:   args.Device,
		scribe:   scribe,
		audioDir: audioDir,
		logger:   logger,
		state:    StateIdle,
	}
}

// Start runs task against sessionID in the calling goroutine. It fails
// with ErrInvalidState unless the runner is idle. On a task error the
// runner returns to idle and the error is propagated; on normal return
// the runner is forced to completed if the task did not get there
// itself. A Stop from another goroutine makes Start return nil.
func (r *Runner) Start(ctx context.Context, task Task, sessionID string) error {
	r.mu.Lock()
	if r.state != StateIdle {
		st := r.state
		r.mu.Unlock()
		return fmt.Errorf("start %s in state %q: %w", task.Kind(), st, ErrInvalidState)
	}
	r.resetLocked()
	r.task = task
	r.sessionID = sessionID
	taskCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()
	defer cancel()

	if err := r.Transition(taskCtx, StatePresenting); err != nil {
		return err
	}

	if err := task.Run(taskCtx, r); err != nil {
		r.mu.Lock()
		stopped := r.stopped
		r.mu.Unlock()
		if stopped {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("%s: %w", task.Kind(), err)
		}
		r.mu.Lock()
		r.state = StateIdle
		r.mu.Unlock()
		return fmt.Errorf("%s: %w", task.Kind(), err)
	}

	r.mu.Lock()
	done := r.state == StateCompleted
	r.mu.Unlock()
	if !done {
		return r.Transition(context.WithoutCancel(ctx), StateCompleted)
	}
	return nil
}

// Stop cancels the running task and finalizes the run. Cancellation is
// signalled before capture is touched so the task's wait loops unblock
// first. Fails with ErrInvalidState when nothing is running.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.state == StateIdle || r.state == StateCompleted {
		st := r.state
		r.mu.Unlock()
		return fmt.Errorf("stop in state %q: %w", st, ErrInvalidState)
	}
	r.stopped = true
	cancel := r.cancel
	clipID := r.clipID
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	ctx = context.WithoutCancel(ctx)
	r.haltCapture(ctx, clipID)
	if err := r.Transition(ctx, StateCompleted); err != nil {
		return err
	}

	r.mu.Lock()
	r.clearTaskLocked()
	r.mu.Unlock()
	return nil
}

// Transition publishes the new state, then executes its entry side
// effects. Idle and presenting have none.
func (r *Runner) Transition(ctx context.Context, next State) error {
	r.mu.Lock()
	r.state = next
	r.mu.Unlock()

	switch next {
	case StateRecording:
		return r.enterRecording(ctx)
	case StateEvaluating:
		return r.enterEvaluating(ctx)
	case StateCompleted:
		return r.enterCompleted(ctx)
	}
	return nil
}

// Reset clears all scratch state back to idle. It fails with
// ErrInvalidState while a task is mid-run.
func (r *Runner) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case StateIdle, StateCompleted:
		r.resetLocked()
		return nil
	default:
		return fmt.Errorf("reset in state %q: %w", r.state, ErrInvalidState)
	}
}

// CaptureResponse upserts text onto the current response record, for
// answers that arrive typed rather than spoken. Before any recording
// has opened a response it adopts the task's latest unscored record, or
// starts a text-only one, and takes that as the current handle.
func (r *Runner) CaptureResponse(ctx context.Context, text string) error {
	r.mu.Lock()
	task := r.task
	sessionID := r.sessionID
	responseID := r.responseID
	r.mu.Unlock()
	if task == nil {
		return ErrNoActiveTask
	}

	if responseID == "" {
		all, err := r.store.Responses().List(ctx)
		if err != nil {
			return fmt.Errorf("list responses: %w", err)
		}
		prior := store.LatestPreferUnscored(all, sessionID, task.Kind())
		if prior == nil || prior.Scored() {
			resp := &models.ItemResponse{
				SessionID:    sessionID,
				Task:         task.Kind(),
				ResponseText: &text,
			}
			if err := r.store.Responses().Create(ctx, resp); err != nil {
				return fmt.Errorf("create response: %w", err)
			}
			r.mu.Lock()
			r.responseID = resp.ID
			r.mu.Unlock()
			return nil
		}
		responseID = prior.ID
		r.mu.Lock()
		r.responseID = responseID
		r.mu.Unlock()
	}

	resp, err := r.store.Responses().Get(ctx, responseID)
	if err != nil {
		return fmt.Errorf("fetch response %s: %w", responseID, err)
	}
	resp.ResponseText = &text
	return r.store.Responses().Update(ctx, resp)
}

// AwaitTranscript waits up to timeout for the current clip's transcript.
// It returns as soon as the transcription job resolves or the stored
// clip row has a transcript, whichever happens first. Running out of
// time is not an error: the degraded answer is the empty string.
func (r *Runner) AwaitTranscript(ctx context.Context, timeout time.Duration) string {
	r.mu.Lock()
	clipID := r.clipID
	future := r.future
	r.mu.Unlock()

	var futureCh <-chan transcribe.Result
	if future != nil {
		futureCh = future.Done()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case res := <-futureCh:
			if res.Err == nil {
				return res.Text
			}
			// The job failed; keep polling in case a transcript is
			// backfilled some other way, until the timeout hits.
			futureCh = nil
		case <-ticker.C:
			if clipID == "" {
				continue
			}
			clip, err := r.store.Clips().Get(ctx, clipID)
			if err == nil && clip.Transcription != "" {
				return clip.Transcription
			}
		case <-timer.C:
			return ""
		case <-ctx.Done():
			return ""
		}
	}
}

// Wait blocks until d elapses or ctx is cancelled.
func (r *Runner) Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Say displays text as the current prompt and reads it aloud. Speech
// failures are logged and swallowed so a mute device still runs the
// trial on schedule.
func (r *Runner) Say(ctx context.Context, text string) {
	r.mu.Lock()
	r.prompt = text
	r.log = append(r.log, text)
	r.mu.Unlock()
	r.speak(ctx, text)
}

// Speak reads text aloud without replacing the displayed prompt.
func (r *Runner) Speak(ctx context.Context, text string) {
	r.mu.Lock()
	r.log = append(r.log, text)
	r.mu.Unlock()
	r.speak(ctx, text)
}

// Cue plays an earcon, swallowing playback failures.
func (r *Runner) Cue(ctx context.Context, cue speech.Cue) {
	if err := r.device.PlayCue(ctx, cue); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Warn("cue playback failed", "cue", cue, "error", err)
	}
}

func (r *Runner) speak(ctx context.Context, text string) {
	if err := r.device.Speak(ctx, text); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Warn("speech playback failed", "error", err)
	}
}

// State returns the published lifecycle phase.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SessionID returns the session the runner was started against.
func (r *Runner) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// CurrentResponseID returns the ID of the response record created by
// the most recent recording transition, or "" before the first one.
func (r *Runner) CurrentResponseID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responseID
}

// PromptText returns the currently displayed prompt.
func (r *Runner) PromptText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompt
}

// TranscriptLog returns a copy of every line spoken so far this run.
func (r *Runner) TranscriptLog() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.log))
	copy(out, r.log)
	return out
}

// Store exposes the backing store to tasks.
func (r *Runner) Store() *store.Store { return r.store }

// Device exposes the speech device to tasks.
func (r *Runner) Device() speech.Device { return r.device }

// Logger exposes the runner's logger to tasks.
func (r *Runner) Logger() *slog.Logger { return r.logger }

// enterRecording starts audio capture when the task wants it and always
// creates a fresh response record, so the task has something to attach
// scores to even when the hardware failed.
func (r *Runner) enterRecording(ctx context.Context) error {
	r.mu.Lock()
	task := r.task
	sessionID := r.sessionID
	r.mu.Unlock()
	if task == nil {
		return ErrNoActiveTask
	}

	clipID := ""
	if task.ExpectsAudio() && ctx.Err() == nil {
		dest := filepath.Join(r.audioDir, uuid.NewString()+".wav")
		if err := r.device.StartRecording(ctx, dest); err != nil {
			r.logger.Warn("audio capture unavailable, continuing without a clip",
				"task", task.Kind(), "error", err)
		} else {
			r.mu.Lock()
			r.capturing = true
			r.mu.Unlock()

			clip := &models.AudioClip{SessionID: sessionID, File: dest}
			if err := r.store.Clips().Create(ctx, clip); err != nil {
				r.logger.Warn("persist clip failed, continuing without one", "error", err)
				r.haltCapture(ctx, "")
			} else {
				clipID = clip.ID
			}
		}
	}

	resp := &models.ItemResponse{
		SessionID:   sessionID,
		Task:        task.Kind(),
		AudioClipID: clipID,
	}
	if err := r.store.Responses().Create(ctx, resp); err != nil {
		r.haltCapture(ctx, clipID)
		return fmt.Errorf("create response: %w", err)
	}

	r.mu.Lock()
	r.clipID = clipID
	r.responseID = resp.ID
	r.future = transcribe.NewFuture()
	r.mu.Unlock()
	return nil
}

// enterEvaluating stops capture, persists the clip's duration and fires
// the transcription job. The job is detached: nothing in the trial
// waits on its completion, and it may land after scoring is done.
func (r *Runner) enterEvaluating(ctx context.Context) error {
	r.mu.Lock()
	clipID := r.clipID
	future := r.future
	r.mu.Unlock()

	r.haltCapture(ctx, clipID)

	if clipID == "" || future == nil {
		return nil
	}
	clip, err := r.store.Clips().Get(ctx, clipID)
	if err != nil {
		r.logger.Warn("clip lookup failed, skipping transcription", "clip", clipID, "error", err)
		return nil
	}

	r.scribe.Start(context.WithoutCancel(ctx), clip.File, r.backfill(clipID, future))
	return nil
}

// enterCompleted re-fetches the current response and touches only its
// update timestamp, preserving whatever scoring fields the task wrote.
func (r *Runner) enterCompleted(ctx context.Context) error {
	r.mu.Lock()
	responseID := r.responseID
	r.mu.Unlock()
	if responseID == "" {
		return nil
	}

	ctx = context.WithoutCancel(ctx)
	resp, err := r.store.Responses().Get(ctx, responseID)
	if err != nil {
		r.logger.Warn("finalize response lookup failed", "response", responseID, "error", err)
		return nil
	}
	if err := r.store.Responses().Update(ctx, resp); err != nil {
		r.logger.Warn("finalize response failed", "response", responseID, "error", err)
	}
	return nil
}

// backfill builds the detached callback for one clip's transcription.
// It may fire long after the owning trial gave up waiting. Last write
// wins; scoring fields are only ever written by the task itself.
func (r *Runner) backfill(clipID string, future *transcribe.Future) func(transcribe.Result) {
	return func(res transcribe.Result) {
		defer future.Resolve(res)
		if res.Err != nil {
			r.logger.Warn("transcription failed", "clip", clipID, "error", res.Err)
			return
		}
		ctx := context.Background()
		clip, err := r.store.Clips().Get(ctx, clipID)
		if err != nil {
			r.logger.Warn("transcription arrived for unknown clip", "clip", clipID, "error", err)
			return
		}
		clip.Transcription = res.Text
		if err := r.store.Clips().Update(ctx, clip); err != nil {
			r.logger.Warn("persist transcription failed", "clip", clipID, "error", err)
		}
	}
}

// haltCapture stops an active capture and backfills the clip's
// duration. Safe to call when nothing is recording.
func (r *Runner) haltCapture(ctx context.Context, clipID string) {
	r.mu.Lock()
	active := r.capturing
	r.capturing = false
	r.mu.Unlock()
	if !active {
		return
	}

	dur, err := r.device.StopRecording(ctx)
	if err != nil {
		r.logger.Warn("stop capture failed", "error", err)
		return
	}
	if clipID == "" {
		return
	}
	clip, err := r.store.Clips().Get(ctx, clipID)
	if err != nil {
		r.logger.Warn("clip lookup failed after capture", "clip", clipID, "error", err)
		return
	}
	clip.DurationSec = dur.Seconds()
	if err := r.store.Clips().Update(ctx, clip); err != nil {
		r.logger.Warn("persist clip duration failed", "clip", clipID, "error", err)
	}
}

func (r *Runner) clearTaskLocked() {
	r.task = nil
	r.responseID = ""
	r.clipID = ""
	r.future = nil
	r.cancel = nil
}

func (r *Runner) resetLocked() {
	r.clearTaskLocked()
	r.sessionID = ""
	r.prompt = ""
	r.log = nil
	r.stopped = false
	r.state = StateIdle
}
