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
	"github.com/liamoiknine/wolram/internal/store"
)

// wordPause is the gap between spoken list words.
const wordPause = time.Second

// fixedWordList is the default five-word list, read identically on both
// trials.
var fixedWordList = []string{"chair", "book", "hand", "road", "cloud"}

// Word pools for the randomized list: three words are drawn from the
// high-frequency pool and two from the medium-frequency pool.
var (
	highFrequencyWords = []string{
		"chair", "book", "hand", "house", "bread", "light",
		"phone", "table", "clock", "door", "cup", "shoe",
		"bed", "car", "tree", "dog", "ball", "rain",
	}
	mediumFrequencyWords = []string{
		"cloud", "stone", "road", "field", "bridge", "lake",
		"grass", "coat", "leaf", "key", "fence", "hill",
	}
)

const (
	workingMemoryInstruction = "We'll start with the working memory task. For this task, I will read you 5 words. After I finish, I want you to repeat these words back to me in the same order that you heard them. We will repeat this for two trials, and you'll have 10 seconds to respond each time. Here are the words:"
	workingMemoryRetrial     = "Well done, now let's do that one more time. Again, you'll have 10 seconds to respond. Here are the words:"
	workingMemoryPrompt      = "Now you repeat them."
	workingMemoryCompletion  = "Great job! You've completed the working memory task."
)

// WorkingMemoryParams configures the working memory task.
type WorkingMemoryParams struct {
	// Words overrides the list read to the subject. Defaults to the
	// fixed five-word list.
	Words []string `mapstructure:"words"`

	// RandomizeWords draws a fresh list from the word pools instead of
	// using the fixed one. Ignored when Words is set.
	RandomizeWords bool `mapstructure:"randomize_words"`

	// Trials is how many times the list is read and recalled. Default 2.
	Trials int `mapstructure:"trials"`

	// WindowSec is the response window per trial. Default 10.
	WindowSec int `mapstructure:"window_seconds"`

	// WaitSec bounds the transcript poll per trial. Default 10.
	WaitSec int `mapstructure:"wait_seconds"`
}

// workingMemory reads a five-word list and scores ordered recall, twice.
// The list is stored in the session notes so delayed recall can test
// the same words later without re-reading them.
type workingMemory struct {
	words  []string
	trials int
	window time.Duration
	wait   time.Duration
	pause  time.Duration
	scorer scoring.Scorer
}

// NewWorkingMemory builds the task from params, drawing the word list
// if randomization was asked for.
func NewWorkingMemory(p WorkingMemoryParams) (*workingMemory, error) {
	words := p.Words
	if len(words) == 0 {
		if p.RandomizeWords {
			words = drawWordList()
		} else {
			words = append([]string(nil), fixedWordList...)
		}
	}

	trials := p.Trials
	if trials == 0 {
		trials = 2
	}
	if trials < 1 {
		return nil, fmt.Errorf("working memory: trials must be positive, got %d", trials)
	}

	scorer, err := scoring.NewOrderedWords(scoring.OrderedWordsArgs{
		Name:  "word-recall",
		Words: words,
	})
	if err != nil {
		return nil, fmt.Errorf("working memory: %w", err)
	}

	return &workingMemory{
		words:  words,
		trials: trials,
		window: secondsOr(p.WindowSec, 10*time.Second),
		wait:   secondsOr(p.WaitSec, 10*time.Second),
		pause:  wordPause,
		scorer: scorer,
	}, nil
}

// drawWordList picks 3 high-frequency and 2 medium-frequency words and
// shuffles their reading order.
func drawWordList() []string {
	words := append(sample(highFrequencyWords, 3), sample(mediumFrequencyWords, 2)...)
	rand.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	return words
}

func sample(pool []string, n int) []string {
	picks := rand.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, p := range picks {
		out[i] = pool[p]
	}
	return out
}

func secondsOr(sec int, fallback time.Duration) time.Duration {
	if sec <= 0 {
		return fallback
	}
	return time.Duration(sec) * time.Second
}

func (t *workingMemory) Kind() models.TaskKind { return models.TaskWorkingMemory }
func (t *workingMemory) Title() string         { return models.TaskWorkingMemory.Title() }
func (t *workingMemory) ExpectsAudio() bool    { return true }
func (t *workingMemory) Trials() int           { return t.trials }

func (t *workingMemory) Run(ctx context.Context, r *runner.Runner) error {
	if err := noteWordList(ctx, r, t.words); err != nil {
		// Delayed recall falls back to the fixed list if the note is
		// missing, so a failed write degrades rather than aborts.
		r.Logger().Warn("storing word list on session failed", "error", err)
	}

	for i := 0; i < t.trials; i++ {
		announce := workingMemoryInstruction
		if i > 0 {
			announce = workingMemoryRetrial
		}
		trial := Trial{
			Kind:         models.TaskWorkingMemory,
			Announce:     announce,
			Present:      t.presentWords,
			TimePrompt:   workingMemoryPrompt,
			Window:       t.window,
			Wait:         t.wait,
			Scorer:       t.scorer,
			ZeroOnCancel: true,
		}
		if err := runTrial(ctx, r, trial); err != nil {
			return err
		}
	}

	return finishTask(ctx, r, workingMemoryCompletion)
}

// presentWords reads the list one word at a time with a beat between
// words, so the subject hears five distinct items rather than a phrase.
func (t *workingMemory) presentWords(ctx context.Context, r *runner.Runner) error {
	for i, w := range t.words {
		if i > 0 {
			if err := r.Wait(ctx, t.pause); err != nil {
				return err
			}
		}
		r.Speak(ctx, w)
	}
	return nil
}

// noteWordList records the spoken list on the session so delayed recall
// scores against the same words.
func noteWordList(ctx context.Context, r *runner.Runner, words []string) error {
	sess, err := r.Store().Sessions().Get(ctx, r.SessionID())
	if err != nil {
		return err
	}
	if sess.Notes == nil {
		sess.Notes = make(map[string]string)
	}
	sess.Notes[models.NoteWordList] = strings.Join(words, " ")
	return r.Store().Sessions().Update(ctx, sess)
}

// sessionWordList reads back the list stored by the working memory run,
// or nothing if no run stored one.
func sessionWordList(ctx context.Context, st *store.Store, sessionID string) []string {
	sess, err := st.Sessions().Get(ctx, sessionID)
	if err != nil {
		return nil
	}
	note := sess.Notes[models.NoteWordList]
	if note == "" {
		return nil
	}
	return strings.Fields(note)
}
