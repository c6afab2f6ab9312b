package models

// TaskKind identifies one subtest of the battery.
type TaskKind string

const (
	TaskWorkingMemory TaskKind = "working_memory"
	TaskDelayedRecall TaskKind = "delayed_recall"
	TaskAttention     TaskKind = "attention"
	TaskLanguage      TaskKind = "language"
	TaskAbstraction   TaskKind = "abstraction"
	TaskOrientation   TaskKind = "orientation"
)

// TaskKinds lists every known kind in the default battery order.
func TaskKinds() []TaskKind {
	return []TaskKind{
		TaskWorkingMemory,
		TaskAttention,
		TaskLanguage,
		TaskAbstraction,
		TaskDelayedRecall,
		TaskOrientation,
	}
}

// Valid reports whether k names a known task kind.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskWorkingMemory, TaskDelayedRecall, TaskAttention,
		TaskLanguage, TaskAbstraction, TaskOrientation:
		return true
	}
	return false
}

// Title returns the human-readable subtest name.
func (k TaskKind) Title() string {
	switch k {
	case TaskWorkingMemory:
		return "Working Memory"
	case TaskDelayedRecall:
		return "Delayed Recall"
	case TaskAttention:
		return "Attention"
	case TaskLanguage:
		return "Language"
	case TaskAbstraction:
		return "Abstraction"
	case TaskOrientation:
		return "Orientation"
	}
	return string(k)
}
