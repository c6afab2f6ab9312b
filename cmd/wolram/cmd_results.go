package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liamoiknine/wolram/internal/battery"
	"github.com/liamoiknine/wolram/internal/models"
)

func newResultsCommand() *cobra.Command {
	var (
		storeKind string
		dataDir   string
	)

	cmd := &cobra.Command{
		Use:   "results <session-id>",
		Short: "Show the scored responses for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(storeKind, dataDir)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			// Results assembly only needs the store and task order.
			conductor := battery.New(battery.Args{
				Store: st,
				Spec:  models.DefaultBattery(),
			})
			outcome, err := conductor.Results(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("assemble results: %w", err)
			}
			if outcome.Session.EndedAt != nil {
				outcome.DurationMs = outcome.Session.EndedAt.Sub(outcome.Session.StartedAt).Milliseconds()
			}

			printSummary(cmd, outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeKind, "store", "badger", "Response store backend: memory or badger")
	cmd.Flags().StringVar(&dataDir, "data-dir", defaultDataDir(), "Data directory for the badger store")

	return cmd
}
