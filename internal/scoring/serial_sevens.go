package scoring

import (
	"fmt"
	"strconv"
)

// SerialSevensArgs holds the arguments for creating a serial sevens
// scorer.
type SerialSevensArgs struct {
	Name string
	// Start is the number subtraction begins from. Default 100.
	Start int `mapstructure:"start"`
	// Steps is how many subtractions are expected. Default 5.
	Steps int `mapstructure:"steps"`
}

// serialSevens compares the numbers heard, in utterance order, against
// the expected differences (93, 86, 79, 72, 65 from 100) position by
// position, and converts the hit count to points: 3 for four or more, 2
// for two or three, 1 for exactly one, 0 otherwise. The point value is
// the score.
type serialSevens struct {
	name    string
	targets []int
}

// NewSerialSevens creates a [serialSevens] scorer.
func NewSerialSevens(args SerialSevensArgs) (*serialSevens, error) {
	start := args.Start
	if start == 0 {
		start = 100
	}
	steps := args.Steps
	if steps == 0 {
		steps = 5
	}
	if steps < 1 {
		return nil, fmt.Errorf("scorer %q: steps must be positive", args.Name)
	}
	targets := make([]int, steps)
	for i := range targets {
		start -= 7
		if start < 0 {
			return nil, fmt.Errorf("scorer %q: subtraction runs below zero", args.Name)
		}
		targets[i] = start
	}
	return &serialSevens{name: args.Name, targets: targets}, nil
}

func (s *serialSevens) Name() string { return s.name }
func (s *serialSevens) Kind() Kind   { return KindSerialSevens }

func (s *serialSevens) Score(transcript string) Result {
	heard := ExtractNumbers(transcript)

	var correct []string
	for i, n := range heard {
		if i >= len(s.targets) {
			break
		}
		if n == s.targets[i] {
			correct = append(correct, strconv.Itoa(n))
		}
	}

	points := serialSevenPoints(len(correct))
	expected := make([]string, len(s.targets))
	for i, t := range s.targets {
		expected[i] = strconv.Itoa(t)
	}

	return Result{
		Score:    float64(points),
		Passed:   points == 3,
		Correct:  correct,
		Expected: expected,
		Detail:   fmt.Sprintf("%d correct subtractions, %d points", len(correct), points),
	}
}

func serialSevenPoints(correct int) int {
	switch {
	case correct >= 4:
		return 3
	case correct >= 2:
		return 2
	case correct == 1:
		return 1
	}
	return 0
}
