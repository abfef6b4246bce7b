package generator

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	g := New()
	s := DefaultSettings()

	passwords, err := g.Generate(s)
	if err != nil {
		t.Fatalf("Should not fail generating: %s", err)
	}
	if len(passwords) != s.Quantity {
		t.Fatalf("Should generate %d passwords, got %d", s.Quantity, len(passwords))
	}

	for _, pwd := range passwords {
		if len([]rune(pwd)) != s.Length {
			t.Errorf("Password %q should have %d characters", pwd, s.Length)
		}
		if !strings.ContainsAny(pwd, uppercase) || !strings.ContainsAny(pwd, lowercase) ||
			!strings.ContainsAny(pwd, digits) || !strings.ContainsAny(pwd, symbols) {
			t.Errorf("Password %q should contain every class", pwd)
		}
		if strings.ContainsAny(pwd, similar) {
			t.Errorf("Password %q should not contain similar characters", pwd)
		}
	}
}

func TestGenerate_SingleClass(t *testing.T) {
	s := Settings{Length: 32, Quantity: 3, Digits: true}

	passwords, err := New().Generate(s)
	if err != nil {
		t.Fatalf("Should not fail generating: %s", err)
	}
	for _, pwd := range passwords {
		if strings.Trim(pwd, digits) != "" {
			t.Errorf("Password %q should only contain digits", pwd)
		}
	}
}

func TestGenerate_ExcludeAmbiguous(t *testing.T) {
	s := Settings{Length: 64, Quantity: 10, Symbols: true, ExcludeAmbiguous: true}

	passwords, err := New().Generate(s)
	if err != nil {
		t.Fatalf("Should not fail generating: %s", err)
	}
	for _, pwd := range passwords {
		if strings.ContainsAny(pwd, ambiguous) {
			t.Errorf("Password %q should not contain ambiguous characters", pwd)
		}
	}
}

func TestSettings_Validate(t *testing.T) {
	cases := []struct {
		settings Settings
		want     error
	}{
		{DefaultSettings(), nil},
		{Settings{Length: 3, Quantity: 1, Lowercase: true}, ErrInvalidLength},
		{Settings{Length: 129, Quantity: 1, Lowercase: true}, ErrInvalidLength},
		{Settings{Length: 8, Quantity: 0, Lowercase: true}, ErrInvalidQuantity},
		{Settings{Length: 8, Quantity: 51, Lowercase: true}, ErrInvalidQuantity},
		{Settings{Length: 8, Quantity: 1}, ErrEmptyCharset},
	}

	for _, tc := range cases {
		if err := tc.settings.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("Validate(%+v): %v, want: %v", tc.settings, err, tc.want)
		}
	}

	if _, err := New().Generate(Settings{Length: 8, Quantity: 1}); !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("Generate should fail with an empty charset, got %v", err)
	}
}

func TestSettings_Entropy(t *testing.T) {
	s := Settings{Length: 10, Lowercase: true, Digits: true}
	if want := 10 * math.Log2(36); math.Abs(s.Entropy()-want) > 1e-9 {
		t.Errorf("Entropy: %f, want: %f", s.Entropy(), want)
	}

	s.ExcludeSimilar = true
	// i, l, o, 1, 0 are removed
	if got := len(s.Charset()); got != 31 {
		t.Errorf("Charset should have 31 characters, got %d", got)
	}

	if (Settings{Length: 10}).Entropy() != 0 {
		t.Errorf("Entropy of an empty charset should be 0")
	}
}
