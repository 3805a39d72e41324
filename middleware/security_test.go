package middleware

import (
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid password", "Sunshine1", true},
		{"too short", "Ab1", false},
		{"no uppercase", "sunshine1", false},
		{"no lowercase", "SUNSHINE1", false},
		{"no digit", "Sunshineee", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, issues := ValidatePasswordStrength(tc.password)
			if ok != tc.want {
				t.Errorf("ValidatePasswordStrength(%q) = %v (%v), want %v", tc.password, ok, issues, tc.want)
			}
		})
	}
}

func TestSanitizeInputEscapesMarkup(t *testing.T) {
	got := SanitizeInput("  <b>Sara</b>  ")
	want := "&lt;b&gt;Sara&lt;/b&gt;"
	if got != want {
		t.Errorf("SanitizeInput = %q, want %q", got, want)
	}
}
