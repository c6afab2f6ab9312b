package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigitSequence_Score(t *testing.T) {
	s, err := NewDigitSequence(DigitSequenceArgs{Name: "forward span", Digits: []int{4, 7, 2, 9, 1}})
	require.NoError(t, err)
	require.Equal(t, KindDigitSequence, s.Kind())

	tests := []struct {
		name       string
		transcript string
		want       float64
	}{
		{"number words", "four seven two nine one", 1.0},
		{"bare digits", "4 7 2 9 1", 1.0},
		{"run of digits", "47291", 1.0},
		{"one digit missing", "four seven two nine", 0.0},
		{"one digit wrong", "four seven two nine two", 0.0},
		{"right digits wrong order", "four seven two one nine", 0.0},
		{"extra digit appended", "four seven two nine one one", 0.0},
		{"filler words tolerated", "okay four seven two nine one", 1.0},
		{"empty", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Score(tt.transcript)
			require.Equal(t, tt.want, res.Score)
			require.Equal(t, tt.want == 1.0, res.Passed)
		})
	}
}

func TestDigitSequence_Backward(t *testing.T) {
	// Backward span: the runner reverses the spoken digits before
	// building the scorer, so expected here is already reversed.
	s, err := NewDigitSequence(DigitSequenceArgs{Name: "backward span", Digits: []int{7, 4}})
	require.NoError(t, err)

	require.Equal(t, 1.0, s.Score("seven four").Score)
	require.Equal(t, 0.0, s.Score("four seven").Score)
}

func TestDigitSequence_Constructor(t *testing.T) {
	_, err := NewDigitSequence(DigitSequenceArgs{Name: "x"})
	require.Error(t, err)

	_, err = NewDigitSequence(DigitSequenceArgs{Name: "x", Digits: []int{12}})
	require.Error(t, err)
}
