package align

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"ascii", "HeLLo", "hello"},
		{"full fold", "Straße", "strasse"},
		{"greek", "ΣΊΣΥΦΟΣ", "σίσυφοσ"},
		{"katakana", "カタカナ", "かたかな"},
		{"katakana bounds", "ァヴ", "ぁゔ"},
		{"outside block", "ー・", "ー・"},
		{"mixed", "Tokyoトウキョウ", "tokyoとうきょう"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAlphanumericHelpers(t *testing.T) {
	if !IsAlphanumeric("") || !IsPunctuation("") {
		t.Fatal("empty string should count as both all-alphanumeric and punctuation")
	}
	if !IsAlphanumeric("abc123") {
		t.Fatal("expected abc123 to be alphanumeric")
	}
	if IsAlphanumeric("abc ") {
		t.Fatal("trailing space should not be alphanumeric")
	}
	if !IsPunctuation("...\n") {
		t.Fatal("expected punctuation")
	}
	if !HasAlphanumeric(" a ") {
		t.Fatal("expected a letter")
	}
}
