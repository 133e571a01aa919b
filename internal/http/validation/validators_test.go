package validation

import (
	"testing"
)

const errNameRequired = "Name is required."

func TestRequired(t *testing.T) {
	tests := []struct {
		name   string
		maxLen int
		value  string
		errMsg string
	}{
		{name: "valid input", maxLen: 10, value: "valid"},
		{name: "empty string", maxLen: 10, value: "", errMsg: errNameRequired},
		{name: "whitespace only", maxLen: 10, value: "   ", errMsg: errNameRequired},
		{name: "exceeds max length", maxLen: 5, value: "toolong", errMsg: "Name cannot exceed 5 characters."},
		{name: "exactly max length", maxLen: 5, value: "exact"},
		{name: "unicode characters within limit", maxLen: 5, value: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Required("Name", tt.maxLen)(tt.value)
			if got != tt.errMsg {
				t.Errorf("Required() = %q, want %q", got, tt.errMsg)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	if got := Optional("Bio", 3)(""); got != "" {
		t.Errorf("empty optional value should pass, got %q", got)
	}
	if got := Optional("Bio", 3)("abcd"); got != "Bio cannot exceed 3 characters." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestMinLength(t *testing.T) {
	if got := MinLength("Password", 8)("short"); got != "Password must be at least 8 characters." {
		t.Errorf("unexpected message %q", got)
	}
	if got := MinLength("Password", 8)("long enough"); got != "" {
		t.Errorf("expected no error, got %q", got)
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"ada@example.com", true},
		{" ada@example.com ", true},
		{"", false},
		{"not-an-address", false},
		{"Ada <ada@example.com>", false},
	}
	for _, tt := range tests {
		got := Email("Email")(tt.value)
		if (got == "") != tt.ok {
			t.Errorf("Email(%q) = %q, want ok=%v", tt.value, got, tt.ok)
		}
	}
}

func TestOptionalHTTPURL(t *testing.T) {
	v := OptionalHTTPURL("Image", 100)
	if got := v(""); got != "" {
		t.Errorf("empty should pass, got %q", got)
	}
	if got := v("https://cdn.example.com/a.png"); got != "" {
		t.Errorf("https URL should pass, got %q", got)
	}
	if got := v("javascript:alert(1)"); got == "" {
		t.Error("javascript URL should fail")
	}
	if got := v("/relative.png"); got == "" {
		t.Error("relative URL should fail")
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("Role", []string{"member", "admin"})
	if got := v("ADMIN"); got != "" {
		t.Errorf("expected match, got %q", got)
	}
	if got := v("owner"); got != "Role must be one of: member, admin" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestDateTime(t *testing.T) {
	v := DateTime("Start", "2006-01-02T15:04")
	if got := v("2026-05-01T18:00"); got != "" {
		t.Errorf("expected valid, got %q", got)
	}
	if got := v(""); got != "Start is required." {
		t.Errorf("unexpected message %q", got)
	}
	if got := v("01/05/2026"); got != "Start is not a valid date and time." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestFieldValidator(t *testing.T) {
	fv := New().
		Validate("name", "", Required("Name", 10)).
		Validate("email", "ada@example.com", Email("Email")).
		Add("name", "second error is ignored").
		Add("end", "End must be after start.")

	if fv.Valid() {
		t.Fatal("expected errors")
	}
	errs := fv.Errors()
	if errs["name"] != errNameRequired {
		t.Errorf("name error = %q", errs["name"])
	}
	if _, ok := errs["email"]; ok {
		t.Error("email should be valid")
	}
	if errs["end"] != "End must be after start." {
		t.Errorf("end error = %q", errs["end"])
	}
}
