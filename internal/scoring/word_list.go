package scoring

import (
	"fmt"
)

// OrderedWordsArgs holds the arguments for creating an ordered word list
// scorer.
type OrderedWordsArgs struct {
	// Name is the identifier for this scorer, used in results and logs.
	Name string
	// Words is the expected list, in the order it was read aloud.
	Words []string `mapstructure:"words"`
}

// orderedWords credits each position where the transcript token equals
// the expected word at that position. Used by working memory, where
// order matters.
type orderedWords struct {
	name  string
	words []string
}

// NewOrderedWords creates an [orderedWords] scorer over a non-empty list.
func NewOrderedWords(args OrderedWordsArgs) (*orderedWords, error) {
	words, err := normalizeWordList(args.Words)
	if err != nil {
		return nil, fmt.Errorf("scorer %q: %w", args.Name, err)
	}
	return &orderedWords{name: args.Name, words: words}, nil
}

func (s *orderedWords) Name() string { return s.name }
func (s *orderedWords) Kind() Kind   { return KindOrderedWords }

func (s *orderedWords) Score(transcript string) Result {
	tokens := Tokenize(transcript)
	var correct []string
	for i, w := range s.words {
		if i < len(tokens) && tokens[i] == w {
			correct = append(correct, w)
		}
	}
	score := float64(len(correct)) / float64(len(s.words))
	return Result{
		Score:    score,
		Passed:   len(correct) == len(s.words),
		Correct:  correct,
		Expected: s.words,
		Detail:   fmt.Sprintf("%d of %d words in position", len(correct), len(s.words)),
	}
}

// AnyOrderWordsArgs holds the arguments for creating an order-independent
// word list scorer.
type AnyOrderWordsArgs struct {
	Name string
	// Words is the expected list; recall order is irrelevant.
	Words []string `mapstructure:"words"`
}

// anyOrderWords credits each expected word found anywhere in the
// transcript, exactly or by fuzzy [WordMatch]. Used by delayed recall.
type anyOrderWords struct {
	name  string
	words []string
}

// NewAnyOrderWords creates an [anyOrderWords] scorer over a non-empty list.
func NewAnyOrderWords(args AnyOrderWordsArgs) (*anyOrderWords, error) {
	words, err := normalizeWordList(args.Words)
	if err != nil {
		return nil, fmt.Errorf("scorer %q: %w", args.Name, err)
	}
	return &anyOrderWords{name: args.Name, words: words}, nil
}

func (s *anyOrderWords) Name() string { return s.name }
func (s *anyOrderWords) Kind() Kind   { return KindAnyOrderWords }

func (s *anyOrderWords) Score(transcript string) Result {
	tokens := Tokenize(transcript)
	var correct []string
	for _, w := range s.words {
		for _, tok := range tokens {
			if WordMatch(w, tok) {
				correct = append(correct, w)
				break
			}
		}
	}
	score := float64(len(correct)) / float64(len(s.words))
	return Result{
		Score:    score,
		Passed:   len(correct) == len(s.words),
		Correct:  correct,
		Expected: s.words,
		Detail:   fmt.Sprintf("%d of %d words recalled", len(correct), len(s.words)),
	}
}

func normalizeWordList(words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("word list must not be empty")
	}
	out := make([]string, len(words))
	for i, w := range words {
		n := Normalize(w)
		if n == "" {
			return nil, fmt.Errorf("word %d normalizes to nothing", i)
		}
		out[i] = n
	}
	return out, nil
}
