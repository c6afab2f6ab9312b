package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Scaffold a battery file",
		Long: `Scaffold a battery YAML file.

By default the standard six-subtest battery is written. Use
--interactive to run a guided wizard that picks the subtests and
pacing instead.

If no file is specified, battery.yaml in the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided battery wizard")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	path := "battery.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	spec := models.DefaultBattery()
	if interactive {
		var err error
		spec, err = wizard.RunBatteryWizard(cmd.InOrStdin(), cmd.OutOrStdout(), "")
		if err != nil {
			return err
		}
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshal battery: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write battery: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d tasks)\n", path, len(spec.Tasks)) //nolint:errcheck
	return nil
}
