package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatteryFailureError(t *testing.T) {
	err := &BatteryFailureError{
		Message: "administration cancelled",
	}

	assert.Equal(t, "administration cancelled", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		isBattery bool
	}{
		{
			name:      "BatteryFailureError",
			err:       &BatteryFailureError{Message: "task aborted"},
			isBattery: true,
		},
		{
			name:      "regular error",
			err:       errors.New("config error"),
			isBattery: false,
		},
		{
			name:      "wrapped BatteryFailureError",
			err:       errors.Join(&BatteryFailureError{Message: "task aborted"}, errors.New("additional context")),
			isBattery: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var batteryErr *BatteryFailureError
			assert.Equal(t, tt.isBattery, errors.As(tt.err, &batteryErr))
		})
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()

	want := []string{"run", "tasks", "results", "sessions", "validate", "init"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}
