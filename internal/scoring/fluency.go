package scoring

import (
	"fmt"
	"strings"
)

// LetterFluencyArgs holds the arguments for creating a letter fluency
// scorer.
type LetterFluencyArgs struct {
	Name string
	// Letter is the initial letter words must start with. Default "f".
	Letter string `mapstructure:"letter"`
	// MinWords is the unique-word count that must be exceeded to pass.
	// Default 10.
	MinWords int `mapstructure:"min_words"`
}

// letterFluency counts unique transcript words starting with the target
// letter; strictly more than MinWords scores 1, anything else 0.
type letterFluency struct {
	name     string
	letter   string
	minWords int
}

// NewLetterFluency creates a [letterFluency] scorer.
func NewLetterFluency(args LetterFluencyArgs) (*letterFluency, error) {
	letter := Normalize(args.Letter)
	if letter == "" {
		letter = "f"
	}
	if len(letter) != 1 {
		return nil, fmt.Errorf("scorer %q: letter must be a single character, got %q", args.Name, args.Letter)
	}
	minWords := args.MinWords
	if minWords == 0 {
		minWords = 10
	}
	return &letterFluency{name: args.Name, letter: letter, minWords: minWords}, nil
}

func (s *letterFluency) Name() string { return s.name }
func (s *letterFluency) Kind() Kind   { return KindLetterFluency }

func (s *letterFluency) Score(transcript string) Result {
	seen := make(map[string]bool)
	var unique []string
	for _, tok := range Tokenize(transcript) {
		if !strings.HasPrefix(tok, s.letter) || seen[tok] {
			continue
		}
		seen[tok] = true
		unique = append(unique, tok)
	}

	res := Result{
		Correct: unique,
		Detail:  fmt.Sprintf("%d unique %q words, need more than %d", len(unique), s.letter, s.minWords),
	}
	if len(unique) > s.minWords {
		res.Score = 1
		res.Passed = true
	}
	return res
}
