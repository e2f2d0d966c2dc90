package errors

import (
	"strings"
	"testing"
)

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "hello", false},
		{"empty", "", false},
		{"unicode", "grüße", false},
		{"special key token", ":)", false},

		{"too long", strings.Repeat("a", MaxWordLength+1), true},
		{"invalid utf8", "\xff\xfe", true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateWord(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateKeyName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"letter", "q", false},
		{"named key", "BackSpace", false},
		{"symbol", ":)", false},

		{"empty", "", true},
		{"space inside", "back space", true},
		{"tab", "a\tb", true},
		{"too long", strings.Repeat("k", MaxKeyNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKeyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
