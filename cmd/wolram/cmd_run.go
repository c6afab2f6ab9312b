package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/liamoiknine/wolram/internal/battery"
	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/session"
	"github.com/liamoiknine/wolram/internal/speech"
	"github.com/liamoiknine/wolram/internal/store"
	"github.com/liamoiknine/wolram/internal/transcribe"
)

func newRunCommand() *cobra.Command {
	var (
		storeKind     string
		dataDir       string
		patientID     string
		audioDir      string
		transcriber   string
		logPath       string
		transcriptDir string
		wordDelayMs   int
		timeout       time.Duration
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "run [battery.yaml]",
		Short: "Administer a battery on this terminal",
		Long: `Administer a battery: prompts are printed, recording windows are
timed, and responses are scored as transcripts come back.

Without an argument the standard six-subtest battery is used. Ctrl-C
stops the administration gracefully; responses collected so far are
kept and the session is closed as cancelled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := loadSpec(args)
			if err != nil {
				return err
			}

			st, err := openStore(storeKind, dataDir)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			scribe, err := newTranscriber(transcriber)
			if err != nil {
				return err
			}

			device := speech.NewConsole(speech.ConsoleArgs{
				Out:       cmd.OutOrStdout(),
				In:        cmd.InOrStdin(),
				WordDelay: time.Duration(wordDelayMs) * time.Millisecond,
			})

			r := runner.New(runner.Args{
				Store:    st,
				Device:   device,
				Scribe:   scribe,
				AudioDir: audioDir,
			})

			var events session.Logger = session.NopLogger{}
			if logPath != "" {
				// A directory means "name the log for me".
				if fi, err := os.Stat(logPath); err == nil && fi.IsDir() {
					logPath = session.DefaultLogPath(logPath, "")
				}
				jl, err := session.NewJSONLogger(logPath)
				if err != nil {
					return fmt.Errorf("open session log: %w", err)
				}
				defer jl.Close() //nolint:errcheck
				events = jl
			}

			conductor := battery.New(battery.Args{
				Store:         st,
				Runner:        r,
				Spec:          spec,
				Events:        events,
				TranscriptDir: transcriptDir,
			})
			if verbose {
				conductor.OnProgress(verboseProgressListener(cmd))
			} else {
				conductor.OnProgress(simpleProgressListener(cmd))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			outcome, err := conductor.Run(ctx, patientID)
			if err != nil {
				return &BatteryFailureError{Message: err.Error()}
			}

			printSummary(cmd, outcome)

			if outcome.Session.Status == models.SessionCancelled {
				return &BatteryFailureError{Message: "administration cancelled"}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeKind, "store", "memory", "Response store backend: memory or badger")
	cmd.Flags().StringVar(&dataDir, "data-dir", defaultDataDir(), "Data directory for the badger store")
	cmd.Flags().StringVar(&patientID, "patient", "", "Patient ID to attach the session to")
	cmd.Flags().StringVar(&audioDir, "audio-dir", "", "Directory for captured audio (default: temp)")
	cmd.Flags().StringVar(&transcriber, "transcriber", "none", "Transcription service: none or openai")
	cmd.Flags().StringVar(&logPath, "log", "", "NDJSON session event log path (a directory picks a timestamped name)")
	cmd.Flags().StringVar(&transcriptDir, "transcript-dir", "", "Directory to save per-task transcript JSON files")
	cmd.Flags().IntVar(&wordDelayMs, "word-delay", 0, "Per-word speech pacing in milliseconds")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the administration after this long (0 = no limit)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with state changes")

	return cmd
}

// loadSpec loads the battery named on the command line, or the default
// battery when none is given.
func loadSpec(args []string) (*models.BatterySpec, error) {
	if len(args) == 0 {
		return models.DefaultBattery(), nil
	}
	spec, err := models.LoadBatterySpec(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load battery: %w", err)
	}
	return spec, nil
}

func openStore(kind, dataDir string) (*store.Store, error) {
	switch kind {
	case "memory":
		return store.New(store.NewMemory()), nil
	case "badger":
		backend, err := store.NewBadger(store.BadgerOptions{Dir: dataDir})
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return store.New(backend), nil
	default:
		return nil, fmt.Errorf("unknown store %q, expected memory or badger", kind)
	}
}

func newTranscriber(kind string) (transcribe.Service, error) {
	switch kind {
	case "none", "":
		return transcribe.NopService{}, nil
	case "openai":
		return transcribe.NewWhisper(transcribe.WhisperArgs{}), nil
	default:
		return nil, fmt.Errorf("unknown transcriber %q, expected none or openai", kind)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wolram"
	}
	return filepath.Join(home, ".wolram")
}

func simpleProgressListener(cmd *cobra.Command) battery.ProgressListener {
	return func(ev battery.ProgressEvent) {
		switch ev.Type {
		case battery.EventTaskStart:
			fmt.Fprintf(cmd.OutOrStdout(), "\n[%d/%d] %s\n", ev.TaskNum, ev.TotalTasks, ev.Title)
		case battery.EventTaskComplete:
			fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s done: %d responses (%s)\n",
				ev.TaskNum, ev.TotalTasks, ev.Title, ev.Responses, formatMs(ev.DurationMs))
		}
	}
}

func verboseProgressListener(cmd *cobra.Command) battery.ProgressListener {
	simple := simpleProgressListener(cmd)
	return func(ev battery.ProgressEvent) {
		if ev.Type == battery.EventStateChange {
			fmt.Fprintf(cmd.OutOrStdout(), "      state: %s\n", ev.State)
			return
		}
		simple(ev)
	}
}
