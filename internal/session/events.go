package session

import "time"

// EventType identifies the kind of session event.
type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventSessionEnd   EventType = "session_end"
	EventTaskStart    EventType = "task_start"
	EventTaskComplete EventType = "task_complete"
	EventStateChange  EventType = "state_change"
	EventTrialScored  EventType = "trial_scored"
	EventError        EventType = "error"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// SessionStartData returns event data for a session start.
func SessionStartData(sessionID, battery, patientID string, taskCount int) map[string]any {
	return map[string]any{
		"session_id": sessionID,
		"battery":    battery,
		"patient_id": patientID,
		"task_count": taskCount,
	}
}

// SessionEndData returns event data for a session end.
func SessionEndData(sessionID, status string, responses int, durationMs int64) map[string]any {
	return map[string]any{
		"session_id":  sessionID,
		"status":      status,
		"responses":   responses,
		"duration_ms": durationMs,
	}
}

// TaskStartData returns event data for a task start.
func TaskStartData(task string, taskNum, totalTasks int) map[string]any {
	return map[string]any{
		"task":        task,
		"task_num":    taskNum,
		"total_tasks": totalTasks,
	}
}

// TaskCompleteData returns event data for a task completion.
func TaskCompleteData(task string, responses int, durationMs int64) map[string]any {
	return map[string]any{
		"task":        task,
		"responses":   responses,
		"duration_ms": durationMs,
	}
}

// StateChangeData returns event data for a runner state change.
func StateChangeData(task, state string) map[string]any {
	return map[string]any{
		"task":  task,
		"state": state,
	}
}

// TrialScoredData returns event data for one scored trial.
func TrialScoredData(task, responseID string, score float64, detail string) map[string]any {
	return map[string]any{
		"task":        task,
		"response_id": responseID,
		"score":       score,
		"detail":      detail,
	}
}

// ErrorData returns event data for an error.
func ErrorData(message string, details map[string]any) map[string]any {
	d := map[string]any{
		"message": message,
	}
	for k, v := range details {
		d[k] = v
	}
	return d
}
