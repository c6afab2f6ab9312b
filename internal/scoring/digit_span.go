package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// DigitSequenceArgs holds the arguments for creating a digit span scorer.
type DigitSequenceArgs struct {
	Name string
	// Digits is the exact sequence the subject must say back, already in
	// the expected answer order (reversed for backward span).
	Digits []int `mapstructure:"digits"`
}

// digitSequence passes only when the digits extracted from the
// transcript equal the expected sequence exactly, in length and order.
type digitSequence struct {
	name   string
	digits []int
}

// NewDigitSequence creates a [digitSequence] scorer.
func NewDigitSequence(args DigitSequenceArgs) (*digitSequence, error) {
	if len(args.Digits) == 0 {
		return nil, fmt.Errorf("scorer %q: digit sequence must not be empty", args.Name)
	}
	for _, d := range args.Digits {
		if d < 0 || d > 9 {
			return nil, fmt.Errorf("scorer %q: %d is not a digit", args.Name, d)
		}
	}
	return &digitSequence{name: args.Name, digits: args.Digits}, nil
}

func (s *digitSequence) Name() string { return s.name }
func (s *digitSequence) Kind() Kind   { return KindDigitSequence }

func (s *digitSequence) Score(transcript string) Result {
	heard := ExtractDigits(transcript)
	expected := digitStrings(s.digits)

	match := len(heard) == len(s.digits)
	if match {
		for i, d := range s.digits {
			if heard[i] != d {
				match = false
				break
			}
		}
	}

	res := Result{
		Expected: expected,
		Detail:   fmt.Sprintf("heard %s, expected %s", joinDigits(heard), strings.Join(expected, " ")),
	}
	if match {
		res.Score = 1
		res.Passed = true
		res.Correct = expected
	}
	return res
}

func digitStrings(digits []int) []string {
	out := make([]string, len(digits))
	for i, d := range digits {
		out[i] = strconv.Itoa(d)
	}
	return out
}

func joinDigits(digits []int) string {
	if len(digits) == 0 {
		return "nothing"
	}
	return strings.Join(digitStrings(digits), " ")
}
