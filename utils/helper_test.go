package utils

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in      string
		country string
		want    string
	}{
		{"(650) 253-0000", "US", "+16502530000"},
		{"+1 650-253-0000", CountryCode, "+16502530000"},
	}
	for _, tc := range cases {
		got, err := NormalizePhoneNumber(tc.in, tc.country)
		if err != nil {
			t.Fatalf("NormalizePhoneNumber(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizePhoneNumber(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}

	if _, err := NormalizePhoneNumber("12", CountryCode); err == nil {
		t.Fatal("want error for junk phone number")
	}
	if err := ValidatePhoneNumber("(650) 253-0000", "US"); err != nil {
		t.Fatalf("ValidatePhoneNumber: %v", err)
	}
	if err := ValidatePhoneNumber("12", CountryCode); err == nil {
		t.Fatal("want error for junk phone number")
	}
}

func TestIsValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "owner+tag@example.com"} {
		if !IsValidEmail(ok) {
			t.Fatalf("IsValidEmail(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "no-at", "a@b", "a @b.co"} {
		if IsValidEmail(bad) {
			t.Fatalf("IsValidEmail(%q) = true", bad)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal(" 12.5 ")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if d.String() != "12.5" {
		t.Fatalf("want 12.5, got %s", d.String())
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Fatal("want error for empty string")
	}
	if _, err := ParseDecimal("12x"); err == nil {
		t.Fatal("want error for junk string")
	}
}

func TestSliceAndPointerHelpers(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("UniqueSlice: got %v", got)
	}

	if DereferencePtr[int](nil) != 0 {
		t.Fatal("nil pointer should dereference to zero value")
	}
	if DereferencePtr(nil, 7) != 7 {
		t.Fatal("nil pointer should dereference to default")
	}
	n := 5
	if DereferencePtr(&n) != 5 {
		t.Fatal("pointer should dereference to its value")
	}

	if NilIfEmpty("") != nil {
		t.Fatal("empty string should map to nil")
	}
	if p := NilIfEmpty("x"); p == nil || *p != "x" {
		t.Fatal("non-empty string should map to pointer")
	}
}
