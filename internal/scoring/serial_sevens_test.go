package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialSevens_Score(t *testing.T) {
	s, err := NewSerialSevens(SerialSevensArgs{Name: "serial sevens"})
	require.NoError(t, err)
	require.Equal(t, KindSerialSevens, s.Kind())
	require.Equal(t, []string{"93", "86", "79", "72", "65"}, s.Score("").Expected)

	tests := []struct {
		name       string
		transcript string
		wantScore  float64
	}{
		{"three spelled answers give two points", "ninety three eighty six seventy nine", 2.0},
		{"all five give three points", "93 86 79 72 65", 3.0},
		{"four give three points", "93 86 79 72", 3.0},
		{"two give two points", "93 86", 2.0},
		{"one gives one point", "ninety three", 1.0},
		{"none gives zero", "one hundred", 0.0},
		{"repeats earn no extra credit", "93 93 93", 1.0},
		{"out of order only positional hits count", "65 93 79", 1.0},
		{"stray leading number shifts every position", "one hundred ninety three eighty six", 0.0},
		{"digits and words mix", "93 then eighty six", 2.0},
		{"empty", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Score(tt.transcript)
			require.Equal(t, tt.wantScore, res.Score)
			require.Equal(t, tt.wantScore == 3.0, res.Passed)
		})
	}
}

func TestSerialSevens_CustomStart(t *testing.T) {
	s, err := NewSerialSevens(SerialSevensArgs{Name: "x", Start: 50, Steps: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"43", "36"}, s.Score("").Expected)

	_, err = NewSerialSevens(SerialSevensArgs{Name: "x", Start: 10, Steps: 3})
	require.Error(t, err)
}

func TestSerialSevenPoints(t *testing.T) {
	require.Equal(t, 3, serialSevenPoints(5))
	require.Equal(t, 3, serialSevenPoints(4))
	require.Equal(t, 2, serialSevenPoints(3))
	require.Equal(t, 2, serialSevenPoints(2))
	require.Equal(t, 1, serialSevenPoints(1))
	require.Equal(t, 0, serialSevenPoints(0))
}
