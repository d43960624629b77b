package cep

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"12345-678":    "12345678",
		"12.345-678":   "12345678",
		"abc123":       "123",
		"":             "",
		"123456789999": "123456789999",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"12345678":  "12345-678",
		"123":       "123",
		"12345":     "12345",
		"123456":    "12345-6",
		"12345-678": "12345-678",
		"123456789": "12345-678",
	}
	for input, want := range cases {
		if got := Format(input); got != want {
			t.Fatalf("Format(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	if !Valid("01310-100") {
		t.Fatal("expected formatted CEP to be valid")
	}
	if Valid("1310100") {
		t.Fatal("expected 7 digits to be invalid")
	}
	if Valid("123456789") {
		t.Fatal("expected 9 digits to be invalid")
	}
	if Valid("") {
		t.Fatal("expected empty CEP to be invalid")
	}
}
