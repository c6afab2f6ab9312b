package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liamoiknine/wolram/internal/validation"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <battery.yaml>",
		Short: "Validate a battery file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			errs, err := validation.ValidateBatteryFile(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintf(w, "✓ %s is valid\n", args[0]) //nolint:errcheck
				return nil
			}

			fmt.Fprintf(w, "✗ %s has %d problem(s):\n", args[0], len(errs)) //nolint:errcheck
			for _, e := range errs {
				fmt.Fprintf(w, "  - %s\n", e) //nolint:errcheck
			}
			return fmt.Errorf("battery file is invalid")
		},
	}
}
