package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liamoiknine/wolram/internal/models"
)

func TestNewLanguageDefaults(t *testing.T) {
	task, err := NewLanguage(LanguageParams{})
	require.NoError(t, err)
	require.Equal(t, defaultSentences, task.sentences)
	require.Equal(t, 10*time.Second, task.sentenceWindow)
	require.Equal(t, 30*time.Second, task.fluencyWindow)
	require.Equal(t, models.TaskLanguage, task.Kind())
}

func TestNewLanguageRejectsBlankSentence(t *testing.T) {
	_, err := NewLanguage(LanguageParams{Sentences: []string{"fine", "  "}})
	require.Error(t, err)
}

func TestLanguageRun(t *testing.T) {
	f := newFixture(t)
	f.transcripts(
		"I only know that John is the one to help today",
		"the cat always hid under the sofa when dogs were in the room",
		"fish fog fun face fall farm fig fox fast fit flag",
	)

	task, err := NewLanguage(LanguageParams{})
	require.NoError(t, err)
	task.sentenceWindow = 50 * time.Millisecond
	task.fluencyWindow = 50 * time.Millisecond

	f.run(t, task)

	// Verbatim repetition passes, one swapped word fails, and eleven
	// unique F words clear the fluency bar.
	require.Equal(t, []float64{1, 0, 1}, f.scores(t, models.TaskLanguage))

	responses := f.responses(t, models.TaskLanguage)
	require.Len(t, responses, 3)
	require.Len(t, responses[2].CorrectWords, 11)

	spoken := f.device.SpokenLines()
	require.Contains(t, spoken, defaultSentences[0])
	require.Contains(t, spoken, defaultSentences[1])
	require.Contains(t, spoken, languageFluencyIntro)
	require.Contains(t, spoken, languageCompletion)
}

func TestLanguageFluencyBelowThreshold(t *testing.T) {
	f := newFixture(t)
	f.transcripts(
		"I only know that John is the one to help today",
		"the cat always hid under the couch when dogs were in the room",
		"fish fog fish fog fun",
	)

	task, err := NewLanguage(LanguageParams{})
	require.NoError(t, err)
	task.sentenceWindow = 50 * time.Millisecond
	task.fluencyWindow = 50 * time.Millisecond

	f.run(t, task)

	// Repeats only count once; three unique words is nowhere near ten.
	require.Equal(t, []float64{1, 1, 0}, f.scores(t, models.TaskLanguage))
}
