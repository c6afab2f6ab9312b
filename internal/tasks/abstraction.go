package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/scoring"
)

const (
	abstractionInstruction = "Now for the abstraction task. For this task, I'm going to say two words that are related in some way. I want you to respond with what category these words both belong to. We'll do this twice, and you'll have %d seconds to respond each time."
	abstractionTrial       = "The two words are %s and %s. What category do they both belong to?"
	abstractionRetrial     = "Alright now let's do that one more time, again, you'll have %d seconds to respond. This time your words are %s and %s. What category do they both belong to?"
	abstractionCompletion  = "Great job! You've completed the abstraction task."
)

// WordPair is one abstraction item: two words and the category answers
// that earn the point.
type WordPair struct {
	First  string   `mapstructure:"first"`
	Second string   `mapstructure:"second"`
	Accept []string `mapstructure:"accept"`
}

// defaultPairs returns the standard two items.
func defaultPairs() []WordPair {
	return []WordPair{
		{
			First:  "train",
			Second: "bicycle",
			Accept: []string{"transportation", "transport", "vehicle", "vehicles", "travel"},
		},
		{
			First:  "banana",
			Second: "orange",
			Accept: []string{"fruit", "fruits"},
		},
	}
}

// AbstractionParams configures the abstraction task.
type AbstractionParams struct {
	// Pairs overrides the word pairs.
	Pairs []WordPair `mapstructure:"pairs"`

	// WindowSec is the response window per pair. Default 15.
	WindowSec int `mapstructure:"window_seconds"`

	// WaitSec bounds the transcript wait per pair. Default 5.
	WaitSec int `mapstructure:"wait_seconds"`
}

// abstraction asks for the shared category of each word pair.
type abstraction struct {
	pairs []WordPair
	// announceSecs is the response window as spoken in the prompts,
	// fixed at construction from the configured window.
	announceSecs int
	window       time.Duration
	wait         time.Duration
}

// NewAbstraction builds the task from params.
func NewAbstraction(p AbstractionParams) (*abstraction, error) {
	pairs := p.Pairs
	if len(pairs) == 0 {
		pairs = defaultPairs()
	}
	for i, pair := range pairs {
		if strings.TrimSpace(pair.First) == "" || strings.TrimSpace(pair.Second) == "" {
			return nil, fmt.Errorf("abstraction: pair %d needs two words", i+1)
		}
	}
	window := secondsOr(p.WindowSec, 15*time.Second)
	return &abstraction{
		pairs:        pairs,
		announceSecs: int(window / time.Second),
		window:       window,
		wait:         secondsOr(p.WaitSec, 5*time.Second),
	}, nil
}

func (t *abstraction) Kind() models.TaskKind { return models.TaskAbstraction }
func (t *abstraction) Title() string         { return models.TaskAbstraction.Title() }
func (t *abstraction) ExpectsAudio() bool    { return true }
func (t *abstraction) Trials() int           { return len(t.pairs) }

func (t *abstraction) Run(ctx context.Context, r *runner.Runner) error {
	for i, pair := range t.pairs {
		scorer, err := scoring.NewCategoryMatch(scoring.CategoryMatchArgs{
			Name:   fmt.Sprintf("abstraction-%d", i+1),
			Accept: pair.Accept,
		})
		if err != nil {
			return fmt.Errorf("abstraction: %w", err)
		}

		trial := Trial{
			Kind:   models.TaskAbstraction,
			Window: t.window,
			Wait:   t.wait,
			Scorer: scorer,
		}
		if i == 0 {
			trial.Announce = fmt.Sprintf(abstractionInstruction, t.announceSecs)
			question := fmt.Sprintf(abstractionTrial, pair.First, pair.Second)
			trial.Present = func(ctx context.Context, r *runner.Runner) error {
				r.Say(ctx, question)
				return ctx.Err()
			}
		} else {
			// The retrial line carries the words itself, so there is
			// no separate presentation step.
			trial.Announce = fmt.Sprintf(abstractionRetrial, t.announceSecs, pair.First, pair.Second)
		}
		if err := runTrial(ctx, r, trial); err != nil {
			return err
		}
	}

	return finishTask(ctx, r, abstractionCompletion)
}
