package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/tasks"
)

func newTasksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the available subtests",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, kind := range models.TaskKinds() {
				task, err := tasks.Create(kind, nil)
				if err != nil {
					return err
				}
				audio := "spoken responses"
				if !task.ExpectsAudio() {
					audio = "no audio capture"
				}
				detail := audio
				if tc, ok := task.(interface{ Trials() int }); ok {
					detail = fmt.Sprintf("%d trials, %s", tc.Trials(), audio)
				}
				fmt.Fprintf(w, " %s %s (%s)\n", padRight(string(kind), 16), task.Title(), detail) //nolint:errcheck
			}
			return nil
		},
	}
}
