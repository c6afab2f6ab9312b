package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/liamoiknine/wolram/internal/battery"
	"github.com/liamoiknine/wolram/internal/models"
)

// formatMs formats a millisecond duration in a consistent,
// human-readable way.
func formatMs(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return fmt.Sprintf("%dms", ms)
	}
	return d.Round(100 * time.Millisecond).String()
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// truncateText shortens a string to maxLen runes, replacing the last
// rune with "…" if needed.
func truncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// printSummary renders the per-task result table for one administration.
//
//nolint:errcheck // display-only writes; errors are not actionable
func printSummary(cmd *cobra.Command, outcome *battery.Outcome) {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, " SESSION %s  [%s]\n", outcome.Session.ID, outcome.Session.Status)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")

	const (
		taskWidth     = 16
		responseWidth = 34
	)

	fmt.Fprintf(w, " %s %s %s\n",
		padRight("Task", taskWidth), padRight("Response", responseWidth), "Score")
	fmt.Fprintf(w, " %s %s %s\n",
		strings.Repeat("-", taskWidth), strings.Repeat("-", responseWidth), "-----")

	for _, result := range outcome.Results {
		if len(result.Responses) == 0 {
			fmt.Fprintf(w, " %s %s %s\n",
				padRight(result.Title, taskWidth), padRight("(no responses)", responseWidth), "-")
			continue
		}
		for i, resp := range result.Responses {
			title := ""
			if i == 0 {
				title = result.Title
			}
			fmt.Fprintf(w, " %s %s %s\n",
				padRight(title, taskWidth),
				padRight(truncateText(responseText(resp), responseWidth), responseWidth),
				scoreText(resp))
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 64))
	fmt.Fprintf(w, " Total score: %.2f  (%s)\n", outcome.Total, formatMs(outcome.DurationMs))
	fmt.Fprintln(w)
}

func responseText(resp models.ItemResponse) string {
	text := resp.Text()
	if text == "" {
		return "(no transcript)"
	}
	return text
}

func scoreText(resp models.ItemResponse) string {
	if !resp.Scored() {
		return "-"
	}
	return fmt.Sprintf("%.2f", resp.ScoreValue())
}
