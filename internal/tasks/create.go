package tasks

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
)

// Create builds the named task, decoding params into its config struct.
// A nil params map yields the task's defaults.
func Create(kind models.TaskKind, params map[string]any) (runner.Task, error) {
	switch kind {
	case models.TaskWorkingMemory:
		var p WorkingMemoryParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return nil, fmt.Errorf("task %s: %w", kind, err)
		}
		return NewWorkingMemory(p)
	case models.TaskDelayedRecall:
		var p DelayedRecallParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return nil, fmt.Errorf("task %s: %w", kind, err)
		}
		return NewDelayedRecall(p)
	case models.TaskAttention:
		var p AttentionParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return nil, fmt.Errorf("task %s: %w", kind, err)
		}
		return NewAttention(p)
	case models.TaskLanguage:
		var p LanguageParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return nil, fmt.Errorf("task %s: %w", kind, err)
		}
		return NewLanguage(p)
	case models.TaskAbstraction:
		var p AbstractionParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return nil, fmt.Errorf("task %s: %w", kind, err)
		}
		return NewAbstraction(p)
	case models.TaskOrientation:
		var p OrientationParams
		if err := mapstructure.Decode(params, &p); err != nil {
			return nil, fmt.Errorf("task %s: %w", kind, err)
		}
		return NewOrientation(p)
	default:
		return nil, fmt.Errorf("'%s' is not a valid task kind, expected one of %v", kind, models.TaskKinds())
	}
}
