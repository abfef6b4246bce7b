// Package generator creates random passwords from a configurable character set.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	similar   = "il1Lo0O"
	ambiguous = "{}[]()/\\'\"~,;:.<>"
)

const (
	MinLength   = 4
	MaxLength   = 128
	MaxQuantity = 50
)

var (
	ErrEmptyCharset    = errors.New("no character type selected")
	ErrInvalidLength   = fmt.Errorf("length must be between %d and %d", MinLength, MaxLength)
	ErrInvalidQuantity = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)
)

// Settings selects the characters a password is made of.
type Settings struct {
	Length           int  `json:"length" validate:"min=4,max=128"`
	Quantity         int  `json:"quantity" validate:"min=1,max=50"`
	Uppercase        bool `json:"uppercase"`
	Lowercase        bool `json:"lowercase"`
	Digits           bool `json:"numbers"`
	Symbols          bool `json:"symbols"`
	ExcludeSimilar   bool `json:"excludeSimilar"`
	ExcludeAmbiguous bool `json:"excludeAmbiguous"`
}

// DefaultSettings are 5 passwords of 16 characters of every class, without look-alikes.
func DefaultSettings() Settings {
	return Settings{
		Length:         16,
		Quantity:       5,
		Uppercase:      true,
		Lowercase:      true,
		Digits:         true,
		Symbols:        true,
		ExcludeSimilar: true,
	}
}

// classes returns the filtered alphabet of every enabled class.
func (s Settings) classes() []string {
	var out []string
	add := func(enabled bool, set string) {
		if !enabled {
			return
		}
		set = strings.Map(func(r rune) rune {
			if (s.ExcludeSimilar && strings.ContainsRune(similar, r)) ||
				(s.ExcludeAmbiguous && strings.ContainsRune(ambiguous, r)) {
				return -1
			}
			return r
		}, set)
		if set != "" {
			out = append(out, set)
		}
	}
	add(s.Lowercase, lowercase)
	add(s.Uppercase, uppercase)
	add(s.Digits, digits)
	add(s.Symbols, symbols)
	return out
}

// Charset is the full alphabet passwords are drawn from.
func (s Settings) Charset() string {
	return strings.Join(s.classes(), "")
}

// Entropy is the nominal entropy in bits of a password generated with these settings.
func (s Settings) Entropy() float64 {
	size := len(s.Charset())
	if size == 0 {
		return 0
	}
	return float64(s.Length) * math.Log2(float64(size))
}

// Validate checks the length, quantity and that at least one class is enabled.
func (s Settings) Validate() error {
	if s.Length < MinLength || s.Length > MaxLength {
		return ErrInvalidLength
	}
	if s.Quantity < 1 || s.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if len(s.classes()) == 0 {
		return ErrEmptyCharset
	}
	return nil
}

// Generator draws passwords from a random source.
type Generator struct {
	random io.Reader
}

// New returns a generator backed by crypto/rand.
func New() *Generator {
	return &Generator{random: rand.Reader}
}

// Generate returns s.Quantity passwords. Each contains at least one character of every
// enabled class.
func (g *Generator) Generate(s Settings) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	out := make([]string, 0, s.Quantity)
	for i := 0; i < s.Quantity; i++ {
		pwd, err := g.generate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, pwd)
	}
	return out, nil
}

func (g *Generator) generate(s Settings) (string, error) {
	classes := s.classes()
	charset := []rune(strings.Join(classes, ""))
	pwd := make([]rune, 0, s.Length)

	// one of each class first, the rest from the whole set, then shuffle
	for _, class := range classes {
		r, err := g.pick([]rune(class))
		if err != nil {
			return "", err
		}
		pwd = append(pwd, r)
	}
	for len(pwd) < s.Length {
		r, err := g.pick(charset)
		if err != nil {
			return "", err
		}
		pwd = append(pwd, r)
	}

	for i := len(pwd) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return "", err
		}
		pwd[i], pwd[j] = pwd[j], pwd[i]
	}

	return string(pwd), nil
}

func (g *Generator) pick(set []rune) (rune, error) {
	i, err := g.intn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}
