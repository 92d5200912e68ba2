package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "staff.user+tag@agency.example.org"}
	invalid := []string{"", "nope", "a@b", "@agency.org"}

	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("%q should be valid", e)
		}
	}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("%q should be invalid", e)
		}
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"gallatin", "big-horn", "agency-2"}
	invalid := []string{"", "Gallatin", "big horn", "-lead", "trail-", "a--b"}

	for _, s := range valid {
		if !ValidateSlug(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range invalid {
		if ValidateSlug(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"4065550100", "(406) 555-0100", "406-555-0100"}
	invalid := []string{"", "555-0100", "406-555-01000"}

	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("%q should be valid", p)
		}
	}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("%q should be invalid", p)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Fatalf("unexpected output: %q", got)
	}
}
