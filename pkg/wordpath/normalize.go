package wordpath

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares a word for key lookup.
//
// Consecutive identical characters are collapsed on the raw input first.
// The result is then brought into NFC, so that "e" followed by a combining
// acute accent addresses the same key as "é", and only afterwards
// lowercased. The order matters: "Aa" keeps both characters, while "AA"
// collapses to "a". Repeats that survive ("hELlO" gives "hello") land on
// the same key and are merged by [Resolve].
func Normalize(word string) []rune {
	if word == "" {
		return nil
	}
	deduped := dedup([]rune(word))
	composed := norm.NFC.String(string(deduped))
	// cases.Caser is stateful; a fresh one keeps Normalize safe for
	// concurrent use.
	lower := cases.Lower(language.Und).String(composed)
	return []rune(lower)
}

func dedup(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if n := len(out); n > 0 && out[n-1] == r {
			continue
		}
		out = append(out, r)
	}
	return out
}
