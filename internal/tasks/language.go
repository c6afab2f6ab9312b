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

// defaultSentences are the two repetition sentences, deliberately of
// different lengths.
var defaultSentences = []string{
	"I only know that John is the one to help today.",
	"The cat always hid under the couch when dogs were in the room.",
}

const (
	languageFirstSentence  = "Now for the language task. I am going to read you a sentence. When I am through, repeat it after me, exactly as I say it. You'll have 10 seconds to respond."
	languageSecondSentence = "Now I am going to read you another sentence. Again, repeat it after me, exactly as I say it. You'll have 10 seconds to respond."
	languageFluencyIntro   = "Now, tell me as many words as you can think of that begin with the letter F. Any word except proper names. You'll have 30 seconds. Go ahead."
	languageCompletion     = "Great job! You've completed the language task."
)

// LanguageParams configures the language task.
type LanguageParams struct {
	// Sentences overrides the repetition sentences.
	Sentences []string `mapstructure:"sentences"`

	// Letter is the fluency initial. Default "f".
	Letter string `mapstructure:"letter"`

	// MinWords is the unique-word count the fluency phase must exceed.
	// Default 10.
	MinWords int `mapstructure:"min_words"`

	// SentenceWindowSec is the response window per sentence. Default 10.
	SentenceWindowSec int `mapstructure:"sentence_window_seconds"`

	// FluencyWindowSec is the fluency response window. Default 30.
	FluencyWindowSec int `mapstructure:"fluency_window_seconds"`
}

// language runs two verbatim sentence repetitions and a letter fluency
// phase.
type language struct {
	sentences      []string
	letter         string
	minWords       int
	sentenceWindow time.Duration
	fluencyWindow  time.Duration
}

// NewLanguage builds the task from params.
func NewLanguage(p LanguageParams) (*language, error) {
	sentences := p.Sentences
	if len(sentences) == 0 {
		sentences = append([]string(nil), defaultSentences...)
	}
	for i, s := range sentences {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("language: sentence %d is empty", i+1)
		}
	}
	return &language{
		sentences:      sentences,
		letter:         p.Letter,
		minWords:       p.MinWords,
		sentenceWindow: secondsOr(p.SentenceWindowSec, 10*time.Second),
		fluencyWindow:  secondsOr(p.FluencyWindowSec, 30*time.Second),
	}, nil
}

func (t *language) Kind() models.TaskKind { return models.TaskLanguage }
func (t *language) Title() string         { return models.TaskLanguage.Title() }
func (t *language) ExpectsAudio() bool    { return true }
func (t *language) Trials() int           { return len(t.sentences) + 1 }

func (t *language) Run(ctx context.Context, r *runner.Runner) error {
	for i, sentence := range t.sentences {
		scorer, err := scoring.NewSentenceEcho(scoring.SentenceEchoArgs{
			Name:     fmt.Sprintf("sentence-%d", i+1),
			Sentence: sentence,
		})
		if err != nil {
			return fmt.Errorf("language: %w", err)
		}

		announce := languageFirstSentence
		if i > 0 {
			announce = languageSecondSentence
		}
		trial := Trial{
			Kind:     models.TaskLanguage,
			Announce: announce,
			Present: func(ctx context.Context, r *runner.Runner) error {
				r.Say(ctx, sentence)
				return ctx.Err()
			},
			Window: t.sentenceWindow,
			Wait:   10 * time.Second,
			Scorer: scorer,
		}
		if err := runTrial(ctx, r, trial); err != nil {
			return err
		}
	}

	fluency, err := scoring.NewLetterFluency(scoring.LetterFluencyArgs{
		Name:     "letter-fluency",
		Letter:   t.letter,
		MinWords: t.minWords,
	})
	if err != nil {
		return fmt.Errorf("language: %w", err)
	}
	fluencyTrial := Trial{
		Kind:     models.TaskLanguage,
		Announce: languageFluencyIntro,
		Window:   t.fluencyWindow,
		Wait:     30 * time.Second,
		Scorer:   fluency,
	}
	if err := runTrial(ctx, r, fluencyTrial); err != nil {
		return err
	}

	return finishTask(ctx, r, languageCompletion)
}
