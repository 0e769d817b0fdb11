package language

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"hi_in", true},
		{"HI_IN", true},
		{"hi-IN", true},
		{"cmn_hans_cn", true},
		{"ast_es", true},
		{"all", false},
		{"", false},
		{"hindi", false},
		{"hi_in_extra", false},
		{"h_in", false},
	}

	for _, tt := range tests {
		err := Validate(tt.input)
		if tt.ok && err != nil {
			t.Errorf("Validate(%q) unexpected error: %v", tt.input, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("Validate(%q) expected error", tt.input)
			} else if !errors.Is(err, ErrInvalidCode) {
				t.Errorf("Validate(%q) error %v does not wrap ErrInvalidCode", tt.input, err)
			}
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hi_in", "Hindi (India)"},
		{"ta_in", "Tamil (India)"},
		{"fr_fr", "French (France)"},
		{"not a code", "not a code"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hi_in", "hin"},
		{"bn_in", "ben"},
		{"", "und"},
	}

	for _, tt := range tests {
		if got := ISO3(tt.input); got != tt.expected {
			t.Errorf("ISO3(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Hi-IN "); got != "hi_in" {
		t.Fatalf("Normalize = %q", got)
	}
}
