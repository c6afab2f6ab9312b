package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/scoring"
)

const (
	delayedRecallInstruction = "Earlier I read you a list of 5 words and asked you to remember them. Now, tell me as many of those words as you can remember, in any order. You'll have 15 seconds to respond."
	delayedRecallCompletion  = "Great job! You've completed the delayed recall task."
)

// DelayedRecallParams configures the delayed recall task.
type DelayedRecallParams struct {
	// Words overrides the expected list. Normally left empty: the task
	// reads the list the working memory run stored on the session.
	Words []string `mapstructure:"words"`

	// WindowSec is the response window. Default 15.
	WindowSec int `mapstructure:"window_seconds"`

	// WaitSec bounds the transcript poll. Default 10.
	WaitSec int `mapstructure:"wait_seconds"`
}

// delayedRecall asks for the working-memory words back without reading
// them again. Recall order doesn't matter and near-miss words earn
// credit, unlike the strict first pass.
type delayedRecall struct {
	words  []string
	window time.Duration
	wait   time.Duration
}

// NewDelayedRecall builds the task from params.
func NewDelayedRecall(p DelayedRecallParams) (*delayedRecall, error) {
	return &delayedRecall{
		words:  p.Words,
		window: secondsOr(p.WindowSec, 15*time.Second),
		wait:   secondsOr(p.WaitSec, 10*time.Second),
	}, nil
}

func (t *delayedRecall) Kind() models.TaskKind { return models.TaskDelayedRecall }
func (t *delayedRecall) Title() string         { return models.TaskDelayedRecall.Title() }
func (t *delayedRecall) ExpectsAudio() bool    { return true }
func (t *delayedRecall) Trials() int           { return 1 }

func (t *delayedRecall) Run(ctx context.Context, r *runner.Runner) error {
	words := t.words
	if len(words) == 0 {
		words = sessionWordList(ctx, r.Store(), r.SessionID())
	}
	if len(words) == 0 {
		// No working memory run stored a list this session; test
		// against the fixed one rather than nothing.
		words = fixedWordList
	}

	scorer, err := scoring.NewAnyOrderWords(scoring.AnyOrderWordsArgs{
		Name:  "delayed-recall",
		Words: words,
	})
	if err != nil {
		return fmt.Errorf("delayed recall: %w", err)
	}

	trial := Trial{
		Kind:         models.TaskDelayedRecall,
		Announce:     delayedRecallInstruction,
		Window:       t.window,
		Wait:         t.wait,
		Scorer:       scorer,
		ZeroOnCancel: true,
	}
	if err := runTrial(ctx, r, trial); err != nil {
		return err
	}

	return finishTask(ctx, r, delayedRecallCompletion)
}
