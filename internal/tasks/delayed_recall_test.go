package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liamoiknine/wolram/internal/models"
)

func TestDelayedRecallUsesSessionWordList(t *testing.T) {
	f := newFixture(t)

	sess, err := f.store.Sessions().Get(context.Background(), f.session.ID)
	require.NoError(t, err)
	sess.Notes = map[string]string{models.NoteWordList: "tree lake coat door cup"}
	require.NoError(t, f.store.Sessions().Update(context.Background(), sess))

	f.transcripts("cup i think tree and maybe coat")

	task, err := NewDelayedRecall(DelayedRecallParams{})
	require.NoError(t, err)
	task.window = 50 * time.Millisecond
	task.wait = 2 * time.Second

	f.run(t, task)

	responses := f.responses(t, models.TaskDelayedRecall)
	require.Len(t, responses, 1)
	require.Equal(t, []string{"tree", "lake", "coat", "door", "cup"}, responses[0].ExpectedWords)
	require.Equal(t, []string{"tree", "coat", "cup"}, responses[0].CorrectWords)
	require.InDelta(t, 0.6, responses[0].ScoreValue(), 1e-9)

	// The list must never be read back to the subject.
	for _, line := range f.device.SpokenLines() {
		require.NotContains(t, line, "tree")
	}
}

func TestDelayedRecallFallsBackToFixedList(t *testing.T) {
	f := newFixture(t)
	f.transcripts("")

	task, err := NewDelayedRecall(DelayedRecallParams{})
	require.NoError(t, err)
	task.window = 50 * time.Millisecond
	task.wait = time.Second

	f.run(t, task)

	responses := f.responses(t, models.TaskDelayedRecall)
	require.Len(t, responses, 1)
	require.Equal(t, fixedWordList, responses[0].ExpectedWords)
	require.Zero(t, responses[0].ScoreValue())
	require.NotNil(t, responses[0].ResponseText, "an empty transcript is still an answer")
}

func TestDelayedRecallCancelledScoresZero(t *testing.T) {
	f := newFixture(t)

	task, err := NewDelayedRecall(DelayedRecallParams{Words: []string{"pen", "sun"}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = f.runner.Start(ctx, task, f.session.ID)
	require.ErrorIs(t, err, context.Canceled)

	responses := f.responses(t, models.TaskDelayedRecall)
	require.Len(t, responses, 1)
	require.True(t, responses[0].Scored())
	require.Zero(t, responses[0].ScoreValue())
	require.Equal(t, []string{"pen", "sun"}, responses[0].ExpectedWords)
}
