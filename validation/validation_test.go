package validation

import (
	"testing"
)

func TestValidator_NoErrors(t *testing.T) {
	v := New().
		Required("email", "a@test.com", "Email is required.").
		Email("email", "a@test.com", "Please provide a valid email address.")

	if v.HasErrors() {
		t.Fatalf("expected no errors, got %v", v.Errors())
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("expected nil AppError, got %v", err)
	}
}

func TestValidator_RequiredTrimsWhitespace(t *testing.T) {
	v := New().Required("email", "   ", "Email is required.")
	if !v.HasErrors() {
		t.Fatal("expected whitespace-only value to fail Required")
	}
}

func TestValidator_EmailPattern(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"  padded@example.com ", true},
		{"no-at-sign.com", false},
		{"user@nodot", false},
		{"spaces in@middle.com", false},
	}

	for _, tc := range cases {
		v := New().Email("email", tc.value, "bad email")
		if got := !v.HasErrors(); got != tc.valid {
			t.Errorf("Email(%q): expected valid=%v, got %v", tc.value, tc.valid, got)
		}
	}
}

func TestValidator_EmailSkipsEmpty(t *testing.T) {
	v := New().Email("email", "", "bad email")
	if v.HasErrors() {
		t.Fatal("Email should skip empty values")
	}
}

func TestValidator_ReportsFirstFailure(t *testing.T) {
	v := New().
		Required("email", "", "Email is required.").
		MinLength("password", "abc", 6, "Password must be at least 6 characters.")

	err := v.Validate()
	if err == nil {
		t.Fatal("expected an AppError")
	}
	if err.Message != "Email is required." {
		t.Errorf("expected first failure's message, got %q", err.Message)
	}
	if len(v.Errors()) != 2 {
		t.Errorf("expected both failures recorded, got %d", len(v.Errors()))
	}
}

func TestValidator_MinLength(t *testing.T) {
	v := New().MinLength("password", "12345", 6, "Password must be at least 6 characters.")
	if !v.HasErrors() {
		t.Fatal("expected 5-char password to fail a 6-char minimum")
	}

	v = New().MinLength("password", "123456", 6, "too short")
	if v.HasErrors() {
		t.Fatal("expected 6-char password to pass")
	}
}
