package scoring

import (
	"fmt"
	"strings"
)

// OrientationField names which fact an orientation question asks for.
type OrientationField string

const (
	FieldDate    OrientationField = "date"
	FieldMonth   OrientationField = "month"
	FieldYear    OrientationField = "year"
	FieldWeekday OrientationField = "weekday"
	FieldPlace   OrientationField = "place"
	FieldCity    OrientationField = "city"
)

// OrientationArgs holds the arguments for creating an orientation
// question scorer.
type OrientationArgs struct {
	Name  string
	Field OrientationField `mapstructure:"field"`
	// Number is the expected value for date and year questions.
	Number int `mapstructure:"number"`
	// Accept lists accepted answers for the text questions, including
	// any known spelling variants for the city.
	Accept []string `mapstructure:"accept"`
}

// orientation checks a single orientation answer. Numeric facts (date,
// year) match by digit extraction or spelled-number containment; text
// facts match after leading articles are stripped.
type orientation struct {
	name   string
	field  OrientationField
	number int
	accept []string
}

// NewOrientation creates an [orientation] scorer.
func NewOrientation(args OrientationArgs) (*orientation, error) {
	s := &orientation{name: args.Name, field: args.Field, number: args.Number}
	switch args.Field {
	case FieldDate, FieldYear:
		if args.Number <= 0 {
			return nil, fmt.Errorf("scorer %q: %s question needs a positive expected number", args.Name, args.Field)
		}
	case FieldMonth, FieldWeekday, FieldPlace, FieldCity:
		accept, err := normalizeWordList(args.Accept)
		if err != nil {
			return nil, fmt.Errorf("scorer %q: %w", args.Name, err)
		}
		s.accept = accept
	default:
		return nil, fmt.Errorf("scorer %q: unknown orientation field %q", args.Name, args.Field)
	}
	return s, nil
}

func (s *orientation) Name() string { return s.name }
func (s *orientation) Kind() Kind   { return KindOrientation }

func (s *orientation) Score(transcript string) Result {
	switch s.field {
	case FieldDate, FieldYear:
		return s.scoreNumber(transcript)
	default:
		return s.scoreText(transcript)
	}
}

func (s *orientation) scoreNumber(transcript string) Result {
	expected := []string{fmt.Sprintf("%d", s.number)}
	if ContainsNumber(transcript, s.number) {
		return Result{
			Score:    1,
			Passed:   true,
			Correct:  expected,
			Expected: expected,
			Detail:   fmt.Sprintf("stated %d", s.number),
		}
	}
	return Result{
		Expected: expected,
		Detail:   fmt.Sprintf("did not state %d", s.number),
	}
}

func (s *orientation) scoreText(transcript string) Result {
	answer := StripArticles(Normalize(transcript))
	res := Result{
		Expected: s.accept,
		Detail:   "no accepted answer given",
	}
	if answer == "" {
		return res
	}
	for _, a := range s.accept {
		if answer == a || strings.Contains(answer, a) {
			res.Score = 1
			res.Passed = true
			res.Correct = []string{a}
			res.Detail = fmt.Sprintf("matched %q", a)
			return res
		}
	}
	return res
}
