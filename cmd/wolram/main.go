package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // Battery completed
	ExitBatteryFailed  = 1 // Battery run failed or was cancelled
	ExitError          = 2 // Configuration or usage error
)

// BatteryFailureError indicates the battery started running but did not
// finish cleanly: a task aborted or the administration was cancelled.
type BatteryFailureError struct {
	Message string
}

func (e *BatteryFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var batteryErr *BatteryFailureError
		if errors.As(err, &batteryErr) {
			os.Exit(ExitBatteryFailed)
		}

		// All other errors are configuration/usage errors
		os.Exit(ExitError)
	}
}
