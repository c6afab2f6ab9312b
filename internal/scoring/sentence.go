package scoring

import "fmt"

// SentenceEchoArgs holds the arguments for creating a sentence
// repetition scorer.
type SentenceEchoArgs struct {
	Name string
	// Sentence is the sentence read to the subject.
	Sentence string `mapstructure:"sentence"`
}

// sentenceEcho passes only on a verbatim repetition: same token count
// and an identical token at every position, after normalization.
type sentenceEcho struct {
	name     string
	expected []string
}

// NewSentenceEcho creates a [sentenceEcho] scorer.
func NewSentenceEcho(args SentenceEchoArgs) (*sentenceEcho, error) {
	expected := Tokenize(args.Sentence)
	if len(expected) == 0 {
		return nil, fmt.Errorf("scorer %q: sentence must not be empty", args.Name)
	}
	return &sentenceEcho{name: args.Name, expected: expected}, nil
}

func (s *sentenceEcho) Name() string { return s.name }
func (s *sentenceEcho) Kind() Kind   { return KindSentenceEcho }

func (s *sentenceEcho) Score(transcript string) Result {
	tokens := Tokenize(transcript)

	var correct []string
	for i, w := range s.expected {
		if i < len(tokens) && tokens[i] == w {
			correct = append(correct, w)
		}
	}

	exact := len(tokens) == len(s.expected) && len(correct) == len(s.expected)
	res := Result{
		Correct:  correct,
		Expected: s.expected,
		Detail:   fmt.Sprintf("%d of %d tokens in position", len(correct), len(s.expected)),
	}
	if exact {
		res.Score = 1
		res.Passed = true
		res.Detail = "verbatim repetition"
	}
	return res
}
