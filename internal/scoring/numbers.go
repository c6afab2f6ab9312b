package scoring

import (
	"strconv"
	"strings"
)

var unitWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
}

var teenWords = map[string]int{
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var tensWords = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// Ordinal forms show up in date answers ("the twenty sixth").
var ordinalUnitWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9,
}

var ordinalWords = map[string]int{
	"tenth": 10, "eleventh": 11, "twelfth": 12, "thirteenth": 13,
	"fourteenth": 14, "fifteenth": 15, "sixteenth": 16, "seventeenth": 17,
	"eighteenth": 18, "nineteenth": 19, "twentieth": 20, "thirtieth": 30,
	"fortieth": 40, "fiftieth": 50, "sixtieth": 60, "seventieth": 70,
	"eightieth": 80, "ninetieth": 90,
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ExtractDigits returns the single digits spoken in s, in order. Numeric
// tokens contribute one digit per character ("47" yields 4 then 7);
// number words contribute for zero through nine only.
func ExtractDigits(s string) []int {
	var digits []int
	for _, tok := range Tokenize(s) {
		switch {
		case isAllDigits(tok):
			for _, r := range tok {
				digits = append(digits, int(r-'0'))
			}
		default:
			if v, ok := unitWords[tok]; ok {
				digits = append(digits, v)
			}
		}
	}
	return digits
}

// ExtractNumbers returns the integer values spoken in s, in order.
// Numeric tokens are taken whole ("93" yields 93, "26th" yields 26),
// spelled numbers and ordinals cover zero through ninety-nine, and a
// tens word directly followed by a unit or ordinal word compounds into
// one value ("ninety" "three" yields 93, "twenty" "sixth" yields 26).
func ExtractNumbers(s string) []int {
	tokens := Tokenize(s)
	var nums []int
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if v, ok := numericToken(tok); ok {
			nums = append(nums, v)
			continue
		}
		if v, ok := tensWords[tok]; ok {
			if i+1 < len(tokens) {
				if u, ok := unitValue(tokens[i+1]); ok && u > 0 && u < 10 {
					nums = append(nums, v+u)
					i++
					continue
				}
			}
			nums = append(nums, v)
			continue
		}
		if v, ok := wordValue(tok); ok {
			nums = append(nums, v)
		}
	}
	return nums
}

// numericToken parses "93" and ordinal digit forms like "26th".
func numericToken(tok string) (int, bool) {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if t, ok := strings.CutSuffix(tok, suffix); ok && isAllDigits(t) {
			tok = t
			break
		}
	}
	if !isAllDigits(tok) {
		return 0, false
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return v, true
}

func unitValue(tok string) (int, bool) {
	if v, ok := unitWords[tok]; ok {
		return v, true
	}
	if v, ok := ordinalUnitWords[tok]; ok {
		return v, true
	}
	return 0, false
}

func wordValue(tok string) (int, bool) {
	if v, ok := unitWords[tok]; ok {
		return v, true
	}
	if v, ok := teenWords[tok]; ok {
		return v, true
	}
	if v, ok := ordinalUnitWords[tok]; ok {
		return v, true
	}
	if v, ok := ordinalWords[tok]; ok {
		return v, true
	}
	return 0, false
}

// SpellNumber renders n (0..9999) as lowercase space-separated English.
func SpellNumber(n int) string {
	if n < 0 {
		return ""
	}
	switch {
	case n < 10:
		return spellUnit(n)
	case n < 20:
		return spellTeen(n)
	case n < 100:
		tens, unit := n/10*10, n%10
		t := spellTens(tens)
		if unit == 0 {
			return t
		}
		return t + " " + spellUnit(unit)
	case n < 1000:
		h := spellUnit(n/100) + " hundred"
		if rest := n % 100; rest != 0 {
			return h + " " + SpellNumber(rest)
		}
		return h
	case n < 10000:
		th := spellUnit(n/1000) + " thousand"
		if rest := n % 1000; rest != 0 {
			return th + " " + SpellNumber(rest)
		}
		return th
	}
	return strconv.Itoa(n)
}

var unitNames = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

var teenNames = [...]string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}

var tensNames = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

func spellUnit(n int) string { return unitNames[n] }
func spellTeen(n int) string { return teenNames[n-10] }
func spellTens(n int) string { return tensNames[n/10] }

// spellVariants lists the spoken forms of n that ContainsNumber accepts,
// including the year style ("twenty twenty six" for 2026).
func spellVariants(n int) []string {
	variants := []string{SpellNumber(n)}
	if n >= 1000 && n < 10000 {
		hi, lo := n/100, n%100
		if lo == 0 {
			variants = append(variants, SpellNumber(hi)+" hundred")
		} else {
			variants = append(variants, SpellNumber(hi)+" "+SpellNumber(lo))
		}
	}
	return variants
}

// ContainsNumber reports whether the transcript states the value n,
// either as digits ("26"), as consecutive number words ("twenty six"),
// or as a single squashed token ("twentysix", the normalized remains of
// "twenty-six").
func ContainsNumber(transcript string, n int) bool {
	for _, v := range ExtractNumbers(transcript) {
		if v == n {
			return true
		}
	}
	tokens := Tokenize(transcript)
	for _, variant := range spellVariants(n) {
		want := strings.Split(variant, " ")
		if containsSeq(tokens, want) {
			return true
		}
		squashed := strings.ReplaceAll(variant, " ", "")
		for _, tok := range tokens {
			if tok == squashed {
				return true
			}
		}
	}
	return false
}

func containsSeq(tokens, want []string) bool {
	if len(want) == 0 || len(tokens) < len(want) {
		return false
	}
	for i := 0; i+len(want) <= len(tokens); i++ {
		match := true
		for j := range want {
			if tokens[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
