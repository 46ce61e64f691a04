package ml

import (
	"strings"
	"unicode"
)

// markers are stripped from the lowercased text before tokenization; they
// tag every offer alike and carry no domain signal. Order matters: "h/f"
// runs before "(h/f)".
var markers = []string{
	"h/f", "h / f", "(h/f)", "(h / f)",
	" cdi ", " cdd ", " stage ", " alternance ",
	" france ", " hf ", " h f ",
}

// FrenchStopWords is the fixed stop-word list used for every vocabulary.
var FrenchStopWords = []string{
	"le", "la", "les", "de", "des", "du", "un", "une", "et", "en",
	"pour", "avec", "sur", "dans", "au", "aux", "par", "ou",
}

var stopSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(FrenchStopWords))
	for _, w := range FrenchStopWords {
		m[w] = struct{}{}
	}
	return m
}()

// CleanText lowercases s and blanks out the contract and gender markers.
// The text is padded so markers at either end are caught too.
func CleanText(s string) string {
	t := " " + strings.ToLower(s) + " "
	for _, m := range markers {
		t = strings.ReplaceAll(t, m, " ")
	}
	return strings.Join(strings.Fields(t), " ")
}

// Tokenize splits s into lowercase runs of letters and digits of at least
// two runes, dropping stop words.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := stopSet[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}
