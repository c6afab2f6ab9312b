package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatterySpec describes an ordered battery of subtests to administer in
// one session.
type BatterySpec struct {
	SpecIdentity `yaml:",inline"`
	Version      string        `yaml:"version,omitempty" json:"version,omitempty"`
	Config       BatteryConfig `yaml:"config,omitempty" json:"config,omitempty"`
	Tasks        []TaskConfig  `yaml:"tasks" json:"tasks"`
}

type SpecIdentity struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// BatteryConfig controls pacing between subtests.
type BatteryConfig struct {
	// PauseSec is the rest inserted between consecutive tasks.
	PauseSec int `yaml:"pause_seconds,omitempty" json:"pause_sec,omitempty"`
}

// TaskConfig selects a task kind plus loose parameters the task factory
// decodes into its typed params.
type TaskConfig struct {
	Kind   TaskKind       `yaml:"type" json:"kind"`
	Params map[string]any `yaml:"config,omitempty" json:"params,omitempty"`
}

// LoadBatterySpec loads a battery from a YAML file.
func LoadBatterySpec(path string) (*BatterySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec BatterySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// Validate checks that the battery is runnable.
func (s *BatterySpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("battery name is required")
	}
	if len(s.Tasks) == 0 {
		return fmt.Errorf("battery must list at least one task")
	}
	for i, t := range s.Tasks {
		if !t.Kind.Valid() {
			return fmt.Errorf("tasks[%d]: unknown task type %q", i, t.Kind)
		}
	}
	if s.Config.PauseSec < 0 {
		return fmt.Errorf("pause_seconds must not be negative, got %d", s.Config.PauseSec)
	}
	return nil
}

// DefaultBattery returns the standard six-subtest battery. Delayed recall
// is deliberately separated from working memory by the intervening tasks.
func DefaultBattery() *BatterySpec {
	spec := &BatterySpec{
		SpecIdentity: SpecIdentity{
			Name:        "standard",
			Description: "Standard spoken cognitive battery",
		},
		Version: "1",
		Config:  BatteryConfig{PauseSec: 1},
	}
	for _, kind := range TaskKinds() {
		spec.Tasks = append(spec.Tasks, TaskConfig{Kind: kind})
	}
	return spec
}
