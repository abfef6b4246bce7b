package strength

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"unicode"
)

const (
	// DefaultGuessRate is an offline GPU cluster doing 100 billion guesses per second.
	DefaultGuessRate = 1e11
	// DefaultMaxInputLength is the number of runes analyzed before the input is truncated.
	DefaultMaxInputLength = 1024
	// DefaultSymbols are the 32 printable ASCII punctuation characters.
	DefaultSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Options configures an Engine. The zero value of every field selects its default.
type Options struct {
	// GuessRate is the attacker speed in guesses per second.
	GuessRate float64
	// CommonPasswords extends the built-in deny-list. Matching is case-insensitive.
	CommonPasswords []string
	// SymbolCharset defines the symbol class.
	SymbolCharset string
	// MaxInputLength is measured in runes.
	MaxInputLength int
	// SequenceRules replaces the default forward ascending run detection when not empty.
	SequenceRules []SequenceRule
	// Workers bounds the batch worker pool. Defaults to the number of logical CPUs.
	Workers int
}

// DefaultOptions returns the options used by New when none are given.
func DefaultOptions() Options {
	return Options{
		GuessRate:      DefaultGuessRate,
		SymbolCharset:  DefaultSymbols,
		MaxInputLength: DefaultMaxInputLength,
		SequenceRules:  []SequenceRule{AscendingRun{}},
		Workers:        runtime.NumCPU(),
	}
}

// withDefaults fills the unset fields. Invalid (negative) values are kept so Validate can
// report them.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.GuessRate == 0 {
		o.GuessRate = d.GuessRate
	}
	if o.SymbolCharset == "" {
		o.SymbolCharset = d.SymbolCharset
	}
	if o.MaxInputLength == 0 {
		o.MaxInputLength = d.MaxInputLength
	}
	if len(o.SequenceRules) == 0 {
		o.SequenceRules = d.SequenceRules
	}
	if o.Workers <= 0 {
		o.Workers = d.Workers
	}
	return o
}

// Validate reports every configuration problem at once.
func (o Options) Validate() error {
	var errs []error
	if !(o.GuessRate > 0) || math.IsInf(o.GuessRate, 1) {
		errs = append(errs, fmt.Errorf("guess rate must be a positive finite number, got %g", o.GuessRate))
	}
	if o.MaxInputLength < 0 {
		errs = append(errs, fmt.Errorf("max input length must not be negative, got %d", o.MaxInputLength))
	}
	if o.SymbolCharset == "" {
		errs = append(errs, errors.New("symbol character set is empty"))
	}
	for _, r := range o.SymbolCharset {
		if isUpper(r) || isLower(r) || isDigit(r) || unicode.IsSpace(r) {
			errs = append(errs, fmt.Errorf("symbol character set contains %q, only punctuation is allowed", r))
			break
		}
	}
	return errors.Join(errs...)
}
