// Package wizard collects a battery definition interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/liamoiknine/wolram/internal/models"
)

// RunBatteryWizard runs an interactive huh form that assembles a
// battery spec. If initialName is non-empty, it pre-populates the name
// field.
func RunBatteryWizard(in io.Reader, out io.Writer, initialName string) (*models.BatterySpec, error) {
	var (
		name        = initialName
		description string
		kinds       []string
		pauseRaw    = "1"
	)

	var taskOptions []huh.Option[string]
	for _, kind := range models.TaskKinds() {
		taskOptions = append(taskOptions,
			huh.NewOption(kind.Title(), string(kind)).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Battery name").
				Description("A short name for this battery").
				Placeholder("standard").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("What is this battery for?").
				Placeholder("Standard spoken cognitive battery").
				Value(&description),
			huh.NewMultiSelect[string]().
				Title("Subtests").
				Description("The tasks to administer, in order").
				Options(taskOptions...).
				Value(&kinds).
				Validate(func(selected []string) error {
					if len(selected) == 0 {
						return fmt.Errorf("pick at least one task")
					}
					return nil
				}),
			huh.NewInput().
				Title("Pause between tasks (seconds)").
				Placeholder("1").
				Value(&pauseRaw).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 {
						return fmt.Errorf("enter a non-negative whole number")
					}
					return nil
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	pause := 0
	if s := strings.TrimSpace(pauseRaw); s != "" {
		pause, _ = strconv.Atoi(s) //nolint:errcheck // validated above
	}

	return buildSpec(name, description, kinds, pause), nil
}

// buildSpec assembles the battery spec from the collected answers.
func buildSpec(name, description string, kinds []string, pause int) *models.BatterySpec {
	spec := &models.BatterySpec{
		SpecIdentity: models.SpecIdentity{
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(description),
		},
		Version: "1",
		Config:  models.BatteryConfig{PauseSec: pause},
	}
	for _, k := range kinds {
		spec.Tasks = append(spec.Tasks, models.TaskConfig{Kind: models.TaskKind(k)})
	}
	return spec
}
