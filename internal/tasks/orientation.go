package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liamoiknine/wolram/internal/models"
	"github.com/liamoiknine/wolram/internal/runner"
	"github.com/liamoiknine/wolram/internal/scoring"
)

const (
	orientationInstruction = "Now for the orientation task. I am going to ask you a few questions about today and about where we are. You'll have %d seconds to answer each one."
	orientationCompletion  = "That's it! You've completed the orientation task."
)

// citySpellings lists alternate spellings and short forms for cities
// whose names commonly come back differently from transcription.
var citySpellings = map[string][]string{
	"saint louis":  {"st louis"},
	"saint paul":   {"st paul"},
	"fort worth":   {"ft worth"},
	"mount vernon": {"mt vernon"},
	"pittsburgh":   {"pittsburg"},
	"philadelphia": {"philly"},
	"new york":     {"nyc"},
}

// OrientationParams configures the orientation task.
type OrientationParams struct {
	// Place is the expected answer to the place question. Default
	// "home".
	Place string `mapstructure:"place"`

	// PlaceAccept adds answers that also earn the place point.
	PlaceAccept []string `mapstructure:"place_accept"`

	// City is the expected answer to the city question. Default
	// "new york".
	City string `mapstructure:"city"`

	// CityAccept adds answers that also earn the city point, on top of
	// the known spelling variants.
	CityAccept []string `mapstructure:"city_accept"`

	// WindowSec is the response window per question. Default 5.
	WindowSec int `mapstructure:"window_seconds"`

	// WaitSec bounds the transcript wait per question. Default 3.
	WaitSec int `mapstructure:"wait_seconds"`
}

// orientation asks six questions about the current date and location.
type orientation struct {
	place       string
	placeAccept []string
	city        string
	cityAccept  []string
	// announceSecs is the response window as spoken in the
	// instruction, fixed at construction from the configured window.
	announceSecs int
	window       time.Duration
	wait         time.Duration

	// now supplies the date facts. Swapped out in tests.
	now func() time.Time
}

// NewOrientation builds the task from params.
func NewOrientation(p OrientationParams) (*orientation, error) {
	place := scoring.Normalize(p.Place)
	placeAccept := []string{"home", "house", "apartment"}
	if place != "" {
		placeAccept = []string{place}
	}
	placeAccept = append(placeAccept, p.PlaceAccept...)

	city := scoring.Normalize(p.City)
	if city == "" {
		city = "new york"
	}
	cityAccept := append(cityAccepted(city), p.CityAccept...)

	window := secondsOr(p.WindowSec, 5*time.Second)
	return &orientation{
		place:        place,
		placeAccept:  placeAccept,
		city:         city,
		cityAccept:   cityAccept,
		announceSecs: int(window / time.Second),
		window:       window,
		wait:         secondsOr(p.WaitSec, 3*time.Second),
		now:          time.Now,
	}, nil
}

// cityAccepted derives the accepted answers for a city: the name itself,
// any known alternate spellings, and the space-squashed form.
func cityAccepted(city string) []string {
	accept := []string{city}
	accept = append(accept, citySpellings[city]...)
	if squashed := strings.ReplaceAll(city, " ", ""); squashed != city {
		accept = append(accept, squashed)
	}
	return accept
}

func (t *orientation) Kind() models.TaskKind { return models.TaskOrientation }
func (t *orientation) Title() string         { return models.TaskOrientation.Title() }
func (t *orientation) ExpectsAudio() bool    { return true }
func (t *orientation) Trials() int           { return 6 }

func (t *orientation) Run(ctx context.Context, r *runner.Runner) error {
	now := t.now()

	type question struct {
		text string
		args scoring.OrientationArgs
	}
	questions := []question{
		{
			text: "What is today's date? Just the day of the month.",
			args: scoring.OrientationArgs{Name: "orientation-date", Field: scoring.FieldDate, Number: now.Day()},
		},
		{
			text: "What month is it?",
			args: scoring.OrientationArgs{Name: "orientation-month", Field: scoring.FieldMonth, Accept: []string{strings.ToLower(now.Month().String())}},
		},
		{
			text: "What year is it?",
			args: scoring.OrientationArgs{Name: "orientation-year", Field: scoring.FieldYear, Number: now.Year()},
		},
		{
			text: "What day of the week is it?",
			args: scoring.OrientationArgs{Name: "orientation-weekday", Field: scoring.FieldWeekday, Accept: []string{strings.ToLower(now.Weekday().String())}},
		},
		{
			text: "What is the name of the place we are in right now?",
			args: scoring.OrientationArgs{Name: "orientation-place", Field: scoring.FieldPlace, Accept: t.placeAccept},
		},
		{
			text: "And what city are we in?",
			args: scoring.OrientationArgs{Name: "orientation-city", Field: scoring.FieldCity, Accept: t.cityAccept},
		},
	}

	for i, q := range questions {
		scorer, err := scoring.NewOrientation(q.args)
		if err != nil {
			return fmt.Errorf("orientation: %w", err)
		}

		trial := Trial{
			Kind:   models.TaskOrientation,
			Window: t.window,
			Wait:   t.wait,
			Scorer: scorer,
		}
		if i == 0 {
			trial.Announce = fmt.Sprintf(orientationInstruction, t.announceSecs)
			text := q.text
			trial.Present = func(ctx context.Context, r *runner.Runner) error {
				r.Say(ctx, text)
				return ctx.Err()
			}
		} else {
			trial.Announce = q.text
		}
		if err := runTrial(ctx, r, trial); err != nil {
			return err
		}
	}

	return finishTask(ctx, r, orientationCompletion)
}
