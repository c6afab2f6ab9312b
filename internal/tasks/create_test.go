package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liamoiknine/wolram/internal/models"
)

func TestCreateKnownKinds(t *testing.T) {
	for _, kind := range models.TaskKinds() {
		t.Run(string(kind), func(t *testing.T) {
			task, err := Create(kind, nil)
			require.NoError(t, err)
			require.Equal(t, kind, task.Kind())
			require.NotEmpty(t, task.Title())
			require.True(t, task.ExpectsAudio())
		})
	}
}

func TestCreateDecodesParams(t *testing.T) {
	task, err := Create(models.TaskWorkingMemory, map[string]any{
		"words":          []string{"pen", "sun"},
		"trials":         1,
		"window_seconds": 3,
	})
	require.NoError(t, err)

	wm, ok := task.(*workingMemory)
	require.True(t, ok)
	require.Equal(t, []string{"pen", "sun"}, wm.words)
	require.Equal(t, 1, wm.trials)
	require.Equal(t, 3*time.Second, wm.window)
}

func TestCreateDecodesNestedParams(t *testing.T) {
	task, err := Create(models.TaskAbstraction, map[string]any{
		"pairs": []map[string]any{
			{"first": "sun", "second": "moon", "accept": []string{"sky", "space"}},
		},
	})
	require.NoError(t, err)

	ab, ok := task.(*abstraction)
	require.True(t, ok)
	require.Len(t, ab.pairs, 1)
	require.Equal(t, "moon", ab.pairs[0].Second)
	require.Equal(t, []string{"sky", "space"}, ab.pairs[0].Accept)
}

func TestCreateUnknownKind(t *testing.T) {
	_, err := Create("juggling", nil)
	require.ErrorContains(t, err, "not a valid task kind")
}

func TestCreateRejectsBadParams(t *testing.T) {
	t.Run("wrong type", func(t *testing.T) {
		_, err := Create(models.TaskWorkingMemory, map[string]any{"window_seconds": "ten"})
		require.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := Create(models.TaskWorkingMemory, map[string]any{"trials": -2})
		require.Error(t, err)
	})

	t.Run("incomplete pair", func(t *testing.T) {
		_, err := Create(models.TaskAbstraction, map[string]any{
			"pairs": []map[string]any{{"first": "train"}},
		})
		require.Error(t, err)
	})
}
