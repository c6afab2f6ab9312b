// Package battery runs an ordered list of subtests against one session:
// it opens the session record, drives each task through a fresh runner
// cycle, mirrors progress to listeners and the session event log, and
// closes the session out as completed or cancelled.
package battery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/session"
	"github.com/liamoiknine/wolram/internal/store"
	"github.com/liamoiknine/wolram/internal/tasks"
	"github.com/liamoiknine/wolram/internal/transcript"
)

// EventType identifies a progress event.
type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventSessionEnd   EventType = "session_end"
	EventTaskStart    EventType = "task_start"
	EventTaskComplete EventType = "task_complete"
	EventStateChange  EventType = "state_change"
	EventPrompt       EventType = "prompt"
)

// ProgressEvent mirrors the runner's UI-facing surface out to listeners:
// the published state, the current prompt, and task boundaries.
type ProgressEvent struct {
	Type       EventType
	Task       models.TaskKind
	Title      string
	TaskNum    int
	TotalTasks int
	State      runner.State
	Prompt     string
	Responses  int
	DurationMs int64
}

// ProgressListener receives progress updates.
type ProgressListener func(ev ProgressEvent)

// watchInterval is how often the conductor samples the runner's state
// and prompt for listeners. Everything in this engine observes change
// by polling, and the conductor is no exception.
const watchInterval = 250 * time.Millisecond

// Conductor administers one battery per Run call.
type Conductor struct {
	store  *store.Store
	runner *runner.Runner
	spec   *models.BatterySpec
	logger *slog.Logger

	events        session.Logger
	transcriptDir string

	mu        sync.Mutex
	listeners []ProgressListener
}

// Args configures a Conductor.
type Args struct {
	Store  *store.Store
	Runner *runner.Runner
	Spec   *models.BatterySpec

	// Events receives the NDJSON session event stream. Defaults to the
	// discard logger.
	Events session.Logger

	// TranscriptDir, when set, receives one JSON transcript file per
	// task run.
	TranscriptDir string

	Logger *slog.Logger
}

// New builds a Conductor.
func New(args Args) *Conductor {
	logger := args.Logger
	if logger == nil {
		logger = slog.Default()
	}
	events := args.Events
	if events == nil {
		events = session.NopLogger{}
	}
	return &Conductor{
		store:         args.Store,
		runner:        args.Runner,
		spec:          args.Spec,
		logger:        logger,
		events:        events,
		transcriptDir: args.TranscriptDir,
	}
}

// OnProgress registers a progress listener.
func (c *Conductor) OnProgress(listener ProgressListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Conductor) notify(ev ProgressEvent) {
	c.mu.Lock()
	listeners := make([]ProgressListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}

// TaskResult groups one task's responses with their score sum.
type TaskResult struct {
	Task      models.TaskKind
	Title     string
	Responses []models.ItemResponse
	Total     float64
}

// Outcome is the result of one battery administration.
type Outcome struct {
	Session    models.Session
	Results    []TaskResult
	Total      float64
	DurationMs int64
}

// Run administers the battery for patientID. It creates the session,
// runs every task in order, and finalizes the session as completed, or
// as cancelled when ctx is cancelled mid-battery. Cancellation is not an
// error: the partial outcome is returned so already-scored responses
// stay visible.
func (c *Conductor) Run(ctx context.Context, patientID string) (*Outcome, error) {
	start := time.Now()

	sess := &models.Session{
		PatientID: patientID,
		Status:    models.SessionInProgress,
		StartedAt: start.UTC(),
	}
	if err := c.store.Sessions().Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.logEvent(session.EventSessionStart,
		session.SessionStartData(sess.ID, c.spec.Name, patientID, len(c.spec.Tasks)))
	c.notify(ProgressEvent{Type: EventSessionStart, TotalTasks: len(c.spec.Tasks)})

	// A cancelled ctx must reach the runner as a Stop so an in-flight
	// capture is halted and the current response finalized.
	stopCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	go func() {
		select {
		case <-ctx.Done():
			if err := c.runner.Stop(context.Background()); err != nil && !errors.Is(err, runner.ErrInvalidState) {
				c.logger.Warn("stop after cancellation failed", "error", err)
			}
		case <-stopCtx.Done():
		}
	}()

	var runErr error
	for i, tc := range c.spec.Tasks {
		if ctx.Err() != nil {
			break
		}
		if err := c.runTask(ctx, sess, tc, i+1); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			runErr = err
			break
		}
		if pause := c.spec.Config.PauseSec; pause > 0 && i < len(c.spec.Tasks)-1 {
			c.wait(ctx, time.Duration(pause)*time.Second)
		}
	}
	stopWatcher()

	outcome, err := c.finalize(ctx, sess, start, ctx.Err() != nil)
	if err != nil {
		return outcome, err
	}
	return outcome, runErr
}

// runTask drives one task through a full runner cycle, then assembles
// its responses for events and the transcript archive.
func (c *Conductor) runTask(ctx context.Context, sess *models.Session, tc models.TaskConfig, num int) error {
	task, err := tasks.Create(tc.Kind, tc.Params)
	if err != nil {
		return err
	}

	if err := c.runner.Reset(); err != nil {
		return fmt.Errorf("reset before %s: %w", tc.Kind, err)
	}

	taskStart := time.Now()
	c.logEvent(session.EventTaskStart,
		session.TaskStartData(string(tc.Kind), num, len(c.spec.Tasks)))
	c.notify(ProgressEvent{
		Type: EventTaskStart, Task: tc.Kind, Title: task.Title(),
		TaskNum: num, TotalTasks: len(c.spec.Tasks),
	})

	watchDone := c.watchRunner(tc.Kind)
	runErr := c.runner.Start(ctx, task, sess.ID)
	spoken := c.runner.TranscriptLog()
	watchDone()

	taskEnd := time.Now()
	responses := c.taskResponses(ctx, sess.ID, tc.Kind, taskStart)

	for _, resp := range responses {
		if resp.Score == nil {
			continue
		}
		c.logEvent(session.EventTrialScored,
			session.TrialScoredData(string(tc.Kind), resp.ID, *resp.Score, detailFor(resp)))
	}
	c.logEvent(session.EventTaskComplete,
		session.TaskCompleteData(string(tc.Kind), len(responses), taskEnd.Sub(taskStart).Milliseconds()))
	c.notify(ProgressEvent{
		Type: EventTaskComplete, Task: tc.Kind, Title: task.Title(),
		TaskNum: num, TotalTasks: len(c.spec.Tasks),
		Responses: len(responses), DurationMs: taskEnd.Sub(taskStart).Milliseconds(),
	})

	c.archiveTranscript(sess.ID, task, spoken, responses, taskStart, taskEnd)

	if runErr != nil {
		c.logEvent(session.EventError,
			session.ErrorData(runErr.Error(), map[string]any{"task": string(tc.Kind)}))
		return fmt.Errorf("task %s: %w", tc.Kind, runErr)
	}
	return ctx.Err()
}

// watchRunner samples the runner's state and prompt until the returned
// func is called, emitting change events to listeners and the log.
func (c *Conductor) watchRunner(kind models.TaskKind) func() {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		lastState := c.runner.State()
		lastPrompt := c.runner.PromptText()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if st := c.runner.State(); st != lastState {
					lastState = st
					c.logEvent(session.EventStateChange,
						session.StateChangeData(string(kind), string(st)))
					c.notify(ProgressEvent{Type: EventStateChange, Task: kind, State: st})
				}
				if p := c.runner.PromptText(); p != lastPrompt {
					lastPrompt = p
					c.notify(ProgressEvent{Type: EventPrompt, Task: kind, Prompt: p})
				}
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

// taskResponses lists the responses one task run produced, oldest first.
func (c *Conductor) taskResponses(ctx context.Context, sessionID string, kind models.TaskKind, since time.Time) []models.ItemResponse {
	ctx = context.WithoutCancel(ctx)
	all, err := c.store.Responses().List(ctx)
	if err != nil {
		c.logger.Warn("list responses failed", "task", kind, "error", err)
		return nil
	}
	matched := store.SortResponses(store.FilterResponses(all, sessionID, kind))
	var out []models.ItemResponse
	for _, r := range matched {
		if r.CreatedAt.Before(since.Add(-time.Second)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c *Conductor) archiveTranscript(sessionID string, task runner.Task,
	spoken []string, responses []models.ItemResponse, start, end time.Time) {
	if c.transcriptDir == "" {
		return
	}
	tr := transcript.Build(sessionID, task.Kind(), task.Title(), spoken, responses, start, end)
	if _, err := transcript.Write(c.transcriptDir, tr); err != nil {
		c.logger.Warn("write transcript failed", "task", task.Kind(), "error", err)
	}
}

// finalize closes the session record and assembles the outcome.
func (c *Conductor) finalize(ctx context.Context, sess *models.Session, start time.Time, cancelled bool) (*Outcome, error) {
	ctx = context.WithoutCancel(ctx)

	status := models.SessionCompleted
	if cancelled {
		status = models.SessionCancelled
	}
	current, err := c.store.Sessions().Get(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("finalize session: %w", err)
	}
	ended := time.Now().UTC()
	current.Status = status
	current.EndedAt = &ended
	if err := c.store.Sessions().Update(ctx, current); err != nil {
		return nil, fmt.Errorf("finalize session: %w", err)
	}

	outcome, err := c.Results(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	outcome.DurationMs = time.Since(start).Milliseconds()

	c.logEvent(session.EventSessionEnd,
		session.SessionEndData(sess.ID, string(status), countResponses(outcome), outcome.DurationMs))
	c.notify(ProgressEvent{Type: EventSessionEnd, DurationMs: outcome.DurationMs})
	return outcome, nil
}

// Results assembles the per-task response collections and score totals
// for a session, in the battery's task order.
func (c *Conductor) Results(ctx context.Context, sessionID string) (*Outcome, error) {
	sess, err := c.store.Sessions().Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	all, err := c.store.Responses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	outcome := &Outcome{Session: *sess}
	for _, tc := range c.spec.Tasks {
		rs := store.SortResponses(store.FilterResponses(all, sessionID, tc.Kind))
		result := TaskResult{Task: tc.Kind, Title: tc.Kind.Title(), Responses: rs}
		for _, r := range rs {
			if r.Score != nil {
				result.Total += *r.Score
			}
		}
		outcome.Results = append(outcome.Results, result)
		outcome.Total += result.Total
	}
	return outcome, nil
}

func (c *Conductor) logEvent(t session.EventType, data map[string]any) {
	if err := c.events.Log(session.NewEvent(t, data)); err != nil {
		c.logger.Warn("session event log failed", "event", t, "error", err)
	}
}

func (c *Conductor) wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func countResponses(o *Outcome) int {
	n := 0
	for _, r := range o.Results {
		n += len(r.Responses)
	}
	return n
}

func detailFor(r models.ItemResponse) string {
	if len(r.CorrectWords) == 0 || len(r.ExpectedWords) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", len(r.CorrectWords), len(r.ExpectedWords))
}
