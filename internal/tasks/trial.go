// Package tasks implements the six subtests of the battery. Each task
// runs one or more trials through a shared skeleton: announce, present
// the stimulus, open a cued recording window, then score whatever
// transcript comes back before the wait runs out.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/scoring"
	"github.com/liamoiknine/wolram/internal/speech"
)

// Trial is one scored recording segment.
type Trial struct {
	// Kind is stamped on any response this trial has to synthesize
	// itself (the usual response record is created by the runner).
	Kind models.TaskKind

	// Announce is instruction text spoken before the stimulus. Empty
	// skips it.
	Announce string

	// Present speaks the stimulus. Called in the presenting state; may
	// be nil for trials whose announcement is the whole stimulus.
	Present func(ctx context.Context, r *runner.Runner) error

	// TimePrompt is spoken right before the start cue, e.g. "Now you
	// repeat them." Empty skips it.
	TimePrompt string

	// Window is how long the recording stays open.
	Window time.Duration

	// Wait bounds the transcript poll after the window closes.
	Wait time.Duration

	// Scorer grades the transcript.
	Scorer scoring.Scorer

	// ZeroOnCancel makes a cancelled trial persist a zero score instead
	// of leaving no score behind.
	ZeroOnCancel bool
}

// runTrial drives one trial through the shared skeleton. A cancellation
// mid-trial degrades rather than rolls back: whatever was captured
// before the cancel is still scored and persisted where the task policy
// wants it.
func runTrial(ctx context.Context, r *runner.Runner, tr Trial) error {
	if err := ctx.Err(); err != nil {
		return cancelledBeforeCapture(ctx, r, tr, err)
	}

	if tr.Announce != "" {
		r.Say(ctx, tr.Announce)
	}

	if err := r.Transition(ctx, runner.StatePresenting); err != nil {
		return err
	}
	if tr.Present != nil {
		if err := tr.Present(ctx, r); err != nil {
			return cancelledBeforeCapture(ctx, r, tr, err)
		}
	}
	if tr.TimePrompt != "" {
		r.Speak(ctx, tr.TimePrompt)
	}
	if err := ctx.Err(); err != nil {
		return cancelledBeforeCapture(ctx, r, tr, err)
	}

	r.Cue(ctx, speech.CueBegin)
	if err := r.Transition(ctx, runner.StateRecording); err != nil {
		return err
	}

	if err := r.Wait(ctx, tr.Window); err != nil {
		// Cancelled mid-window: evaluation is skipped, and the response
		// either keeps no score or is forced to zero.
		if tr.ZeroOnCancel {
			if perr := persistScore(ctx, r, tr, ""); perr != nil {
				return perr
			}
		}
		return err
	}

	r.Cue(ctx, speech.CueEnd)
	if err := r.Transition(ctx, runner.StateEvaluating); err != nil {
		return err
	}

	transcript := r.AwaitTranscript(ctx, tr.Wait)
	if err := persistScore(ctx, r, tr, transcript); err != nil {
		return err
	}
	return ctx.Err()
}

// persistScore grades the transcript and writes score, text and word
// lists onto the trial's response record. Persistence outlives
// cancellation so a degraded trial still lands its zero.
func persistScore(ctx context.Context, r *runner.Runner, tr Trial, transcript string) error {
	ctx = context.WithoutCancel(ctx)
	res := tr.Scorer.Score(transcript)

	id := r.CurrentResponseID()
	if id == "" {
		return fmt.Errorf("score %s: %w", tr.Scorer.Name(), runner.ErrNoActiveTask)
	}
	resp, err := r.Store().Responses().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("score %s: %w", tr.Scorer.Name(), err)
	}
	resp.ResponseText = &transcript
	resp.Score = &res.Score
	resp.CorrectWords = res.Correct
	resp.ExpectedWords = res.Expected
	if err := r.Store().Responses().Update(ctx, resp); err != nil {
		return fmt.Errorf("score %s: %w", tr.Scorer.Name(), err)
	}
	return nil
}

// cancelledBeforeCapture handles a cancel that arrives before the
// trial's recording segment exists. Zero-on-cancel trials synthesize a
// zero-score response so the run is still visible in results; everyone
// else leaves nothing.
func cancelledBeforeCapture(ctx context.Context, r *runner.Runner, tr Trial, cause error) error {
	if !tr.ZeroOnCancel {
		return cause
	}
	if err := synthesizeZero(ctx, r, tr); err != nil {
		r.Logger().Warn("zero-score synthesis failed", "task", tr.Kind, "error", err)
	}
	return cause
}

func synthesizeZero(ctx context.Context, r *runner.Runner, tr Trial) error {
	ctx = context.WithoutCancel(ctx)
	res := tr.Scorer.Score("")
	resp := &models.ItemResponse{
		SessionID:     r.SessionID(),
		Task:          tr.Kind,
		Score:         &res.Score,
		ExpectedWords: res.Expected,
	}
	return r.Store().Responses().Create(ctx, resp)
}

// finishTask speaks the completion line and moves the runner to
// completed. Skipped entirely when the run was cancelled; the stop path
// finalizes the state itself.
func finishTask(ctx context.Context, r *runner.Runner, completion string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Say(ctx, completion)
	return r.Transition(ctx, runner.StateCompleted)
}
