package models

import "testing"

func TestAccessionPattern(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"0001104659-24-012345", true},
		{"0000950123-99-000001", true},
		{"0001104659-24-12345", false},  // short sequence
		{"001104659-24-012345", false},  // short prefix
		{"0001104659-2024-012345", false},
		{"000110465924012345", false}, // dashless form
		{"", false},
	}
	for _, tt := range tests {
		if got := AccessionPattern.MatchString(tt.input); got != tt.valid {
			t.Errorf("AccessionPattern.MatchString(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}
