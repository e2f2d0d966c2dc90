package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWordLength bounds the number of runes accepted from untrusted input.
const MaxWordLength = 256

// MaxKeyNameLength bounds layout key identifiers.
const MaxKeyNameLength = 64

// ValidateWord checks a word received from an untrusted source (HTTP, batch
// files). An empty word is valid here: it is a legitimate input that simply
// yields no path.
func ValidateWord(word string) error {
	if !utf8.ValidString(word) {
		return New(ErrCodeInvalidInput, "word is not valid UTF-8")
	}
	if utf8.RuneCountInString(word) > MaxWordLength {
		return New(ErrCodeInvalidInput, "word too long (max %d characters)", MaxWordLength)
	}
	for _, r := range word {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "word contains control characters")
		}
	}
	return nil
}

// ValidateKeyName checks a layout key identifier.
//
// Rules:
//   - Not empty
//   - At most MaxKeyNameLength runes
//   - No whitespace or control characters
func ValidateKeyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayout, "key name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxKeyNameLength {
		return New(ErrCodeInvalidLayout, "key name too long (max %d characters): %q", MaxKeyNameLength, name)
	}
	if strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return New(ErrCodeInvalidLayout, "key name contains whitespace or control characters: %q", name)
	}
	return nil
}
