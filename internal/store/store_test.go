package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liamoiknine/wolram/internal/models"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	bb, err := NewBadger(BadgerOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bb.Close() })
	return map[string]Backend{
		"memory": NewMemory(),
		"badger": bb,
	}
}

func TestCollectionCRUD(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := New(backend)

			sess := &models.Session{Status: models.SessionInProgress}
			require.NoError(t, st.Sessions().Create(ctx, sess))
			require.NotEmpty(t, sess.ID)
			require.False(t, sess.CreatedAt.IsZero())
			require.False(t, sess.UpdatedAt.IsZero())

			got, err := st.Sessions().Get(ctx, sess.ID)
			require.NoError(t, err)
			require.Equal(t, models.SessionInProgress, got.Status)

			got.Status = models.SessionCompleted
			before := got.UpdatedAt
			time.Sleep(2 * time.Millisecond)
			require.NoError(t, st.Sessions().Update(ctx, got))
			require.True(t, got.UpdatedAt.After(before))

			again, err := st.Sessions().Get(ctx, sess.ID)
			require.NoError(t, err)
			require.Equal(t, models.SessionCompleted, again.Status)
			require.Equal(t, got.CreatedAt.Unix(), again.CreatedAt.Unix())

			require.NoError(t, st.Sessions().Delete(ctx, sess.ID))
			_, err = st.Sessions().Get(ctx, sess.ID)
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestCollectionUpdateMissing(t *testing.T) {
	ctx := context.Background()
	st := New(NewMemory())

	err := st.Patients().Update(ctx, &models.Patient{ID: "nope"})
	require.ErrorIs(t, err, ErrNotFound)

	err = st.Patients().Update(ctx, &models.Patient{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing id")
}

func TestCollectionListOrder(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := New(backend)
			base := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)

			// Creation timestamps are honored when pre-set, so List order
			// is by time rather than by random UUID.
			for i, id := range []string{"z-last", "a-mid", "m-first"} {
				r := &models.ItemResponse{
					ID:        id,
					SessionID: "s1",
					Task:      models.TaskAttention,
					CreatedAt: base.Add(time.Duration(2-i) * time.Minute),
				}
				require.NoError(t, st.Responses().Create(ctx, r))
			}

			list, err := st.Responses().List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 3)
			require.Equal(t, "m-first", list[0].ID)
			require.Equal(t, "a-mid", list[1].ID)
			require.Equal(t, "z-last", list[2].ID)
		})
	}
}

func TestResponseOptionalsSurviveStore(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := New(backend)

			r := &models.ItemResponse{SessionID: "s1", Task: models.TaskLanguage}
			require.NoError(t, st.Responses().Create(ctx, r))

			got, err := st.Responses().Get(ctx, r.ID)
			require.NoError(t, err)
			require.Nil(t, got.Score)
			require.Nil(t, got.ResponseText)
			require.False(t, got.Scored())
		})
	}
}
