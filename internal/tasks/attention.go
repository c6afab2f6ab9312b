package tasks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/scoring"
	"github.com/liamoiknine/wolram/internal/speech"
)

const (
	// digitPause is the gap between spoken span digits, and
	// letterPause the gap between spoken tapping letters.
	digitPause  = time.Second
	letterPause = time.Second

	// tapTarget is the letter the subject taps on.
	tapTarget = 'a'

	// tapLetterCount is the length of the spoken letter sequence;
	// between tapTargetMin and tapTargetMax of them are targets.
	tapLetterCount = 30
	tapTargetMin   = 5
	tapTargetMax   = 15
)

const (
	attentionForwardInstruction  = "Now for the attention task. I am going to say some numbers. When I am through, repeat them back to me exactly as I said them. You'll have 10 seconds to respond."
	attentionBackwardInstruction = "Now I am going to say some more numbers. But this time, when I am through, I want you to repeat them back to me in backwards order. You'll have 10 seconds to respond."
	attentionTappingInstruction  = "Next, I am going to read you a sequence of letters. Every time I say the letter A, tap once. If I say a different letter, do not tap."
	attentionSerialInstruction   = "Now, I will ask you to keep subtracting 7 from 100 out loud, until I tell you to stop. Start from 100. You'll have about 40 seconds."
	attentionCompletion          = "Great job! You've completed the attention task."
)

// AttentionParams configures the attention task.
type AttentionParams struct {
	// ForwardDigits overrides the forward span sequence. Default: five
	// random digits.
	ForwardDigits []int `mapstructure:"forward_digits"`

	// BackwardDigits overrides the backward span sequence as spoken
	// (the subject answers it reversed). Default: two random digits.
	BackwardDigits []int `mapstructure:"backward_digits"`

	// Letters overrides the tapping sequence. Default: a shuffled
	// 30-letter sequence with 5 to 15 A's.
	Letters string `mapstructure:"letters"`

	// SpanWindowSec is the response window for both spans. Default 10.
	SpanWindowSec int `mapstructure:"span_window_seconds"`

	// SerialWindowSec is the continuous serial-sevens window. Default 42.
	SerialWindowSec int `mapstructure:"serial_window_seconds"`
}

// attention runs four phases: forward digit span, backward digit span,
// sustained-attention letter tapping and serial sevens. The tapping
// phase has no recording window; it scores tap timestamps against the
// spoken letter timeline and writes its own response record.
type attention struct {
	forward      []int
	backward     []int
	letters      []rune
	spanWindow   time.Duration
	serialWindow time.Duration
	digitGap     time.Duration
	letterGap    time.Duration
}

// NewAttention builds the task from params, generating the random
// sequences that were not overridden.
func NewAttention(p AttentionParams) (*attention, error) {
	forward := p.ForwardDigits
	if len(forward) == 0 {
		forward = randomDigits(5)
	}
	backward := p.BackwardDigits
	if len(backward) == 0 {
		backward = randomDigits(2)
	}
	for _, d := range append(append([]int(nil), forward...), backward...) {
		if d < 0 || d > 9 {
			return nil, fmt.Errorf("attention: %d is not a digit", d)
		}
	}

	letters := strings.ToLower(p.Letters)
	if letters == "" {
		letters = tapLetters()
	}
	if !strings.ContainsRune(letters, tapTarget) {
		return nil, fmt.Errorf("attention: letter sequence %q has no %q to tap on", letters, tapTarget)
	}

	return &attention{
		forward:      forward,
		backward:     backward,
		letters:      []rune(letters),
		spanWindow:   secondsOr(p.SpanWindowSec, 10*time.Second),
		serialWindow: secondsOr(p.SerialWindowSec, 42*time.Second),
		digitGap:     digitPause,
		letterGap:    letterPause,
	}, nil
}

func randomDigits(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rand.IntN(10)
	}
	return out
}

// tapLetters builds a shuffled sequence of tapLetterCount letters with a
// random number of targets in the allowed band.
func tapLetters() string {
	targets := tapTargetMin + rand.IntN(tapTargetMax-tapTargetMin+1)
	distractors := []rune("bcdefjklmnop")

	letters := make([]rune, 0, tapLetterCount)
	for i := 0; i < targets; i++ {
		letters = append(letters, tapTarget)
	}
	for len(letters) < tapLetterCount {
		letters = append(letters, distractors[rand.IntN(len(distractors))])
	}
	rand.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
	return string(letters)
}

func (t *attention) Kind() models.TaskKind { return models.TaskAttention }
func (t *attention) Title() string         { return models.TaskAttention.Title() }
func (t *attention) ExpectsAudio() bool    { return true }

// Trials covers the four phases: forward span, backward span, letter
// tapping, serial sevens.
func (t *attention) Trials() int { return 4 }

func (t *attention) Run(ctx context.Context, r *runner.Runner) error {
	forward, err := scoring.NewDigitSequence(scoring.DigitSequenceArgs{
		Name:   "digit-span-forward",
		Digits: t.forward,
	})
	if err != nil {
		return err
	}
	backward, err := scoring.NewDigitSequence(scoring.DigitSequenceArgs{
		Name:   "digit-span-backward",
		Digits: reversed(t.backward),
	})
	if err != nil {
		return err
	}
	serial, err := scoring.NewSerialSevens(scoring.SerialSevensArgs{Name: "serial-sevens"})
	if err != nil {
		return err
	}

	spans := []Trial{
		{
			Kind:     models.TaskAttention,
			Announce: attentionForwardInstruction,
			Present:  t.presentDigits(t.forward),
			Window:   t.spanWindow,
			Wait:     5 * time.Second,
			Scorer:   forward,
		},
		{
			Kind:     models.TaskAttention,
			Announce: attentionBackwardInstruction,
			Present:  t.presentDigits(t.backward),
			Window:   t.spanWindow,
			Wait:     5 * time.Second,
			Scorer:   backward,
		},
	}
	for _, trial := range spans {
		if err := runTrial(ctx, r, trial); err != nil {
			return err
		}
	}

	if err := t.runTapping(ctx, r); err != nil {
		return err
	}

	serialTrial := Trial{
		Kind:     models.TaskAttention,
		Announce: attentionSerialInstruction,
		Window:   t.serialWindow,
		Wait:     30 * time.Second,
		Scorer:   serial,
	}
	if err := runTrial(ctx, r, serialTrial); err != nil {
		return err
	}

	return finishTask(ctx, r, attentionCompletion)
}

// presentDigits reads a span one digit at a time, a beat apart.
func (t *attention) presentDigits(digits []int) func(context.Context, *runner.Runner) error {
	return func(ctx context.Context, r *runner.Runner) error {
		for i, d := range digits {
			if i > 0 {
				if err := r.Wait(ctx, t.digitGap); err != nil {
					return err
				}
			}
			r.Speak(ctx, scoring.SpellNumber(d))
		}
		return nil
	}
}

// runTapping reads the letter sequence while collecting tap timestamps,
// attributes each tap to the letter being spoken when it landed, and
// records pass or fail. There is no recording window, so the phase
// creates its own response record instead of going through recording
// and evaluating.
func (t *attention) runTapping(ctx context.Context, r *runner.Runner) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	taps, ok := r.Device().(speech.TapSource)
	if !ok {
		r.Logger().Warn("device cannot report taps, skipping the tapping phase")
		return nil
	}

	r.Say(ctx, attentionTappingInstruction)
	if err := r.Transition(ctx, runner.StatePresenting); err != nil {
		return err
	}
	r.Cue(ctx, speech.CueBegin)

	taps.BeginTapCapture()
	starts := make([]time.Time, 0, len(t.letters))
	for i, l := range t.letters {
		if i > 0 {
			if err := r.Wait(ctx, t.letterGap); err != nil {
				taps.EndTapCapture()
				return err
			}
		}
		starts = append(starts, time.Now())
		r.Speak(ctx, strings.ToUpper(string(l)))
	}

	// Let a tap on the final letter land before the timeline closes.
	lastWindow := 2 * t.letterGap
	if err := r.Wait(ctx, lastWindow); err != nil {
		taps.EndTapCapture()
		return err
	}
	tapped := scoring.AttributeTaps(starts, lastWindow, taps.EndTapCapture())
	r.Cue(ctx, speech.CueEnd)

	res := scoring.ScoreTaps(t.letters, tapTarget, tapped)
	resp := &models.ItemResponse{
		SessionID:     r.SessionID(),
		Task:          models.TaskAttention,
		Score:         &res.Score,
		ExpectedWords: res.Expected,
	}
	if err := r.Store().Responses().Create(context.WithoutCancel(ctx), resp); err != nil {
		return fmt.Errorf("record tapping result: %w", err)
	}
	return nil
}

func reversed(digits []int) []int {
	out := make([]int, len(digits))
	for i, d := range digits {
		out[len(digits)-1-i] = d
	}
	return out
}
