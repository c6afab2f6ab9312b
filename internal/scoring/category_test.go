package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryMatch_Score(t *testing.T) {
	s, err := NewCategoryMatch(CategoryMatchArgs{
		Name:   "train/bicycle",
		Accept: []string{"transportation", "transport", "vehicles", "ways to travel"},
	})
	require.NoError(t, err)
	require.Equal(t, KindCategoryMatch, s.Kind())

	tests := []struct {
		name       string
		transcript string
		want       float64
	}{
		{"exact answer", "transportation", 1.0},
		{"answer inside a sentence", "they are both ways to travel", 1.0},
		{"partial answer contained in accepted", "vehicle", 1.0},
		{"case and punctuation ignored", "Transport!", 1.0},
		{"wrong category", "they are both heavy", 0.0},
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

func TestCategoryMatch_FruitPair(t *testing.T) {
	s, err := NewCategoryMatch(CategoryMatchArgs{
		Name:   "banana/orange",
		Accept: []string{"fruit", "fruits", "food"},
	})
	require.NoError(t, err)

	require.Equal(t, 1.0, s.Score("both of them are fruits").Score)
	require.Equal(t, 1.0, s.Score("fruit").Score)
	require.Equal(t, 0.0, s.Score("yellow things").Score)
}
