package tasks

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/speech"
	"github.com/liamoiknine/wolram/internal/store"
	"github.com/liamoiknine/wolram/internal/transcribe"
)

// fixture wires a runner over fakes and an in-memory store, with one
// open session for tasks to run against.
type fixture struct {
	runner  *runner.Runner
	device  *speech.FakeDevice
	scribe  *transcribe.FakeService
	store   *store.Store
	session *models.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New(store.NewMemory())
	t.Cleanup(func() { _ = st.Close() })

	sess := &models.Session{Status: models.SessionInProgress, StartedAt: time.Now()}
	require.NoError(t, st.Sessions().Create(context.Background(), sess))

	device := &speech.FakeDevice{}
	scribe := &transcribe.FakeService{}
	return &fixture{
		runner: runner.New(runner.Args{
			Store:    st,
			Device:   device,
			Scribe:   scribe,
			AudioDir: t.TempDir(),
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		}),
		device:  device,
		scribe:  scribe,
		store:   st,
		session: sess,
	}
}

// transcripts queues what the transcriber returns, one per recording
// segment in order.
func (f *fixture) transcripts(texts ...string) {
	for _, text := range texts {
		f.scribe.Results = append(f.scribe.Results, transcribe.Result{Text: text})
	}
}

// run drives the task to completion on the fixture's session.
func (f *fixture) run(t *testing.T, task runner.Task) {
	t.Helper()
	require.NoError(t, f.runner.Start(context.Background(), task, f.session.ID))
	require.Equal(t, runner.StateCompleted, f.runner.State())
}

// responses returns the session's responses for one task kind in
// creation order.
func (f *fixture) responses(t *testing.T, kind models.TaskKind) []models.ItemResponse {
	t.Helper()
	all, err := f.store.Responses().List(context.Background())
	require.NoError(t, err)
	return store.SortResponses(store.FilterResponses(all, f.session.ID, kind))
}

// scores flattens the responses' score values in creation order.
func (f *fixture) scores(t *testing.T, kind models.TaskKind) []float64 {
	t.Helper()
	var out []float64
	for _, resp := range f.responses(t, kind) {
		require.True(t, resp.Scored(), "response %s has no score", resp.ID)
		out = append(out, resp.ScoreValue())
	}
	return out
}
