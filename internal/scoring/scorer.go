package scoring

// Kind identifies the type of scorer (e.g. ordered word list, digit
// sequence).
type Kind string

const (
	KindOrderedWords  Kind = "ordered_words"
	KindAnyOrderWords Kind = "any_order_words"
	KindDigitSequence Kind = "digit_sequence"
	KindSerialSevens  Kind = "serial_sevens"
	KindSentenceEcho  Kind = "sentence_echo"
	KindLetterFluency Kind = "letter_fluency"
	KindCategoryMatch Kind = "category_match"
	KindOrientation   Kind = "orientation"
)

// Result is the outcome of scoring one transcript.
type Result struct {
	// Score is the numeric result. Most scorers yield a fraction in
	// [0, 1]; serial sevens yields its point value (0–3).
	Score float64
	// Passed reports full marks.
	Passed bool
	// Correct lists the recalled items credited by the scorer.
	Correct []string
	// Expected lists what the scorer was listening for.
	Expected []string
	// Detail is a short human-readable account for logs and events.
	Detail string
}

// Scorer turns a transcript into a Result. Scorers are pure: the same
// transcript always yields the same result, and an empty transcript is
// legal input (it scores as nothing recalled).
type Scorer interface {
	// Name identifies this scorer instance in results and logs.
	Name() string

	// Kind returns the scorer type.
	Kind() Kind

	// Score evaluates a raw transcript.
	Score(transcript string) Result
}
