package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestItemResponseRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("absent optionals stay absent", func(t *testing.T) {
		orig := ItemResponse{
			ID:        "r1",
			SessionID: "s1",
			Task:      TaskWorkingMemory,
			CreatedAt: now,
			UpdatedAt: now,
		}

		data, err := json.Marshal(orig)
		require.NoError(t, err)
		require.NotContains(t, string(data), "score")
		require.NotContains(t, string(data), "response_text")
		require.NotContains(t, string(data), "correct_words")

		var back ItemResponse
		require.NoError(t, json.Unmarshal(data, &back))
		require.Nil(t, back.Score)
		require.Nil(t, back.ResponseText)
		require.Nil(t, back.CorrectWords)
		require.Nil(t, back.ExpectedWords)
		require.Equal(t, orig, back)
	})

	t.Run("populated fields survive", func(t *testing.T) {
		score := 0.6
		text := "book chair hand road cloud"
		orig := ItemResponse{
			ID:            "r2",
			SessionID:     "s1",
			Task:          TaskWorkingMemory,
			ResponseText:  &text,
			AudioClipID:   "c1",
			Score:         &score,
			CorrectWords:  []string{"hand", "road", "cloud"},
			ExpectedWords: []string{"chair", "book", "hand", "road", "cloud"},
			CreatedAt:     now,
			UpdatedAt:     now.Add(12 * time.Second),
		}

		data, err := json.Marshal(orig)
		require.NoError(t, err)

		var back ItemResponse
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, orig, back)
		require.True(t, back.Scored())
		require.InDelta(t, 0.6, back.ScoreValue(), 1e-9)
		require.Equal(t, text, back.Text())
	})

	t.Run("zero score is still a score", func(t *testing.T) {
		zero := 0.0
		r := ItemResponse{Score: &zero}
		data, err := json.Marshal(r)
		require.NoError(t, err)
		require.Contains(t, string(data), `"score":0`)

		var back ItemResponse
		require.NoError(t, json.Unmarshal(data, &back))
		require.True(t, back.Scored())
		require.Equal(t, 0.0, back.ScoreValue())
	})
}

func TestItemResponseAccessorsOnEmpty(t *testing.T) {
	var r ItemResponse
	require.False(t, r.Scored())
	require.Equal(t, 0.0, r.ScoreValue())
	require.Equal(t, "", r.Text())
}
