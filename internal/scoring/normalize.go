package scoring

import "strings"

// Normalize lowercases s, removes every character outside [a-z0-9 ],
// collapses runs of whitespace and trims the ends. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return NormalizeKeep(s, false)
}

// NormalizeKeep is Normalize with an optional allowance for '.' so
// decimal answers can survive normalization where a caller needs them.
func NormalizeKeep(s string, keepDot bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && keepDot:
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
		// Everything else (punctuation, accents) is dropped so
		// "don't" becomes "dont", not "don t".
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes s and splits it into words.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// WordMatch reports whether a spoken token counts as the expected word:
// an exact match, or one being a prefix of the other with a length
// difference of at most two. The prefix rule lets "clouds" claim "cloud"
// without letting "and" claim "hand".
func WordMatch(expected, token string) bool {
	if expected == token {
		return true
	}
	diff := len(expected) - len(token)
	if diff < -2 || diff > 2 {
		return false
	}
	return strings.HasPrefix(token, expected) || strings.HasPrefix(expected, token)
}

// StripArticles removes the standalone articles "the", "a" and "an" from
// an already-normalized phrase.
func StripArticles(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		switch f {
		case "the", "a", "an":
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
