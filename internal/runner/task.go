package runner

import (
	"context"

	"github.com/liamoiknine/wolram/internal/models"
)

// Task is one subtest of the battery. Run drives a started Runner
// through the task's trials and must observe ctx at every suspension
// point so a stop request is seen promptly.
type Task interface {
	// Kind identifies the subtest on stored responses.
	Kind() models.TaskKind

	// Title is the human-readable subtest name.
	Title() string

	// ExpectsAudio reports whether trials capture spoken responses.
	ExpectsAudio() bool

	// Run executes the task. The runner is already in the presenting
	// state when Run is called.
	Run(ctx context.Context, r *Runner) error
}
