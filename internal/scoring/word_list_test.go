package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var recallWords = []string{"chair", "book", "hand", "road", "cloud"}

func TestOrderedWords_Score(t *testing.T) {
	s, err := NewOrderedWords(OrderedWordsArgs{Name: "trial 1", Words: recallWords})
	require.NoError(t, err)
	require.Equal(t, KindOrderedWords, s.Kind())
	require.Equal(t, "trial 1", s.Name())

	t.Run("perfect recall", func(t *testing.T) {
		res := s.Score("chair book hand road cloud")
		require.Equal(t, 1.0, res.Score)
		require.True(t, res.Passed)
		require.Equal(t, recallWords, res.Correct)
	})

	t.Run("first two swapped", func(t *testing.T) {
		res := s.Score("book chair hand road cloud")
		require.InDelta(t, 0.6, res.Score, 1e-9)
		require.False(t, res.Passed)
		require.Equal(t, []string{"hand", "road", "cloud"}, res.Correct)
	})

	t.Run("a leading filler word shifts every position", func(t *testing.T) {
		res := s.Score("um chair book hand road cloud")
		require.Equal(t, 0.0, res.Score)
		require.Empty(t, res.Correct)
	})

	t.Run("punctuation and case ignored", func(t *testing.T) {
		res := s.Score("Chair, book, hand, road, cloud.")
		require.Equal(t, 1.0, res.Score)
	})

	t.Run("empty transcript", func(t *testing.T) {
		res := s.Score("")
		require.Equal(t, 0.0, res.Score)
		require.False(t, res.Passed)
		require.Equal(t, recallWords, res.Expected)
	})
}

func TestAnyOrderWords_Score(t *testing.T) {
	s, err := NewAnyOrderWords(AnyOrderWordsArgs{Name: "recall", Words: recallWords})
	require.NoError(t, err)
	require.Equal(t, KindAnyOrderWords, s.Kind())

	t.Run("partial recall inside a sentence", func(t *testing.T) {
		res := s.Score("I remember a book and a road")
		require.InDelta(t, 0.4, res.Score, 1e-9)
		require.Equal(t, []string{"book", "road"}, res.Correct)
	})

	t.Run("order does not matter", func(t *testing.T) {
		res := s.Score("cloud road hand book chair")
		require.Equal(t, 1.0, res.Score)
		require.True(t, res.Passed)
	})

	t.Run("plural counts as fuzzy match", func(t *testing.T) {
		res := s.Score("there were clouds")
		require.InDelta(t, 0.2, res.Score, 1e-9)
		require.Equal(t, []string{"cloud"}, res.Correct)
	})

	t.Run("each word counted once", func(t *testing.T) {
		res := s.Score("book book book book book")
		require.InDelta(t, 0.2, res.Score, 1e-9)
	})

	t.Run("empty transcript", func(t *testing.T) {
		res := s.Score("")
		require.Equal(t, 0.0, res.Score)
	})
}

func TestWordListConstructors(t *testing.T) {
	_, err := NewOrderedWords(OrderedWordsArgs{Name: "x"})
	require.Error(t, err)

	_, err = NewAnyOrderWords(AnyOrderWordsArgs{Name: "x", Words: []string{"?!"}})
	require.Error(t, err)

	// Expected words are normalized at construction.
	s, err := NewOrderedWords(OrderedWordsArgs{Name: "x", Words: []string{"Chair", "BOOK"}})
	require.NoError(t, err)
	res := s.Score("chair book")
	require.Equal(t, 1.0, res.Score)
}
