package scoring

import (
	"fmt"
	"strings"
)

// CategoryMatchArgs holds the arguments for creating an abstraction
// scorer.
type CategoryMatchArgs struct {
	Name string
	// Accept lists the category answers that earn the point, e.g.
	// "fruit" for the banana/orange pair.
	Accept []string `mapstructure:"accept"`
}

// categoryMatch passes when the normalized transcript equals an accepted
// answer, contains one, or is contained in one (so both "fruit" and
// "they are both fruits" pass against "fruits").
type categoryMatch struct {
	name   string
	accept []string
}

// NewCategoryMatch creates a [categoryMatch] scorer.
func NewCategoryMatch(args CategoryMatchArgs) (*categoryMatch, error) {
	accept, err := normalizeWordList(args.Accept)
	if err != nil {
		return nil, fmt.Errorf("scorer %q: %w", args.Name, err)
	}
	return &categoryMatch{name: args.Name, accept: accept}, nil
}

func (s *categoryMatch) Name() string { return s.name }
func (s *categoryMatch) Kind() Kind   { return KindCategoryMatch }

func (s *categoryMatch) Score(transcript string) Result {
	answer := Normalize(transcript)
	res := Result{
		Expected: s.accept,
		Detail:   "no accepted category named",
	}
	if answer == "" {
		return res
	}
	for _, a := range s.accept {
		if answer == a || strings.Contains(answer, a) || strings.Contains(a, answer) {
			res.Score = 1
			res.Passed = true
			res.Correct = []string{a}
			res.Detail = fmt.Sprintf("matched %q", a)
			return res
		}
	}
	return res
}
