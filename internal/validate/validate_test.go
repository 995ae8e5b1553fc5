package validate

import (
	"errors"
	"testing"
)

func TestRequired(t *testing.T) {
	if err := Required(map[string]string{"username": "alice", "password": "x"}); err != nil {
		t.Fatalf("expected nil for complete input, got %v", err)
	}

	err := Required(map[string]string{"username": "", "password": "  ", "email": "a@x.com"})
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if len(fieldErr.Fields) != 2 || fieldErr.Fields[0] != "password" || fieldErr.Fields[1] != "username" {
		t.Fatalf("unexpected missing fields: %v", fieldErr.Fields)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last@example.co", "u+tag@mail.example.org"}
	invalid := []string{"", "plain", "@x.com", "a@", "a@x", "a b@x.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Fatalf("expected %q to be invalid", e)
		}
	}
}

func TestIsPhoneShaped(t *testing.T) {
	valid := []string{"+84912345678", "0912345678", "84912345678"}
	invalid := []string{"", "alice", "+84 9123", "12ab34"}
	for _, p := range valid {
		if !IsPhoneShaped(p) {
			t.Fatalf("expected %q to be phone-shaped", p)
		}
	}
	for _, p := range invalid {
		if IsPhoneShaped(p) {
			t.Fatalf("expected %q not to be phone-shaped", p)
		}
	}
}

func TestStandardPhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		code string
		want string
	}{
		{in: "0912345678", code: "+84", want: "+84912345678"},
		{in: "912345678", code: "+84", want: "+84912345678"},
		{in: "+84912345678", code: "+84", want: "+84912345678"},
		{in: "84912345678", code: "84", want: "+84912345678"},
		{in: "0912345678", code: "", want: "+84912345678"},
		{in: "", code: "+84", want: ""},
	}
	for _, tc := range tests {
		if got := StandardPhoneNumber(tc.in, tc.code); got != tc.want {
			t.Fatalf("StandardPhoneNumber(%q, %q) = %q, want %q", tc.in, tc.code, got, tc.want)
		}
	}
}

func TestConvertRoleKey(t *testing.T) {
	tests := map[string]string{
		"super user":  "SUPER_USER",
		" Accountant": "ACCOUNTANT",
		"SUPER_USER":  "SUPER_USER",
		"a  b  c":     "A_B_C",
	}
	for in, want := range tests {
		if got := ConvertRoleKey(in); got != want {
			t.Fatalf("ConvertRoleKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateSKU(t *testing.T) {
	if got := GenerateSKU("Green Tea 50g", "Drinks & Tea"); got != "DRINKSTEA-GREENTEA50G" {
		t.Fatalf("unexpected SKU: %q", got)
	}
}
