// Package strength scores passwords with a deterministic, heuristic model: character class
// detection, pattern penalties, nominal entropy and an exhaustive-search crack time.
//
// Entropy and crack time are computed from the nominal size of the character classes present
// (26 lowercase, 26 uppercase, 10 digits, 32 symbols), not from how the password was actually
// chosen. "Password1!" and a random 10 character string of the same classes get the same
// entropy, so treat both numbers as upper bounds.
package strength

import (
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/thinhdanggroup/executor"
)

// Engine evaluates passwords. It holds only read-only configuration and is safe for
// concurrent use.
type Engine struct {
	opts    Options
	symbols map[rune]struct{}
	common  map[string]struct{}
	rules   []SequenceRule
	// invalid configuration degrades entropy and crack time to zero.
	invalid error
}

// New builds an engine. A configuration problem never prevents construction: it is logged
// once here, available through Err, and the engine then reports zero entropy and crack time.
func New(opts Options) *Engine {
	return newEngine(opts.withDefaults())
}

func newEngine(opts Options) *Engine {
	e := &Engine{
		opts:    opts,
		symbols: make(map[rune]struct{}, len(opts.SymbolCharset)),
		common:  commonSet(opts.CommonPasswords),
		rules:   opts.SequenceRules,
		invalid: opts.Validate(),
	}
	for _, r := range opts.SymbolCharset {
		e.symbols[r] = struct{}{}
	}

	if e.invalid != nil {
		log.Warn().Err(e.invalid).Msg("invalid password engine configuration, entropy and crack time will be reported as 0")
	}

	return e
}

// Default returns an engine with the default options.
func Default() *Engine {
	return New(Options{})
}

// Err returns the configuration problems found by New, if any.
func (e *Engine) Err() error {
	return e.invalid
}

// Options returns the effective options, defaults applied.
func (e *Engine) Options() Options {
	return e.opts
}

// WithGuessRate returns an engine with the same options and another attacker guess rate. A
// zero rate is not replaced by the default, it makes the configuration invalid.
func (e *Engine) WithGuessRate(rate float64) *Engine {
	opts := e.opts
	opts.GuessRate = rate
	return newEngine(opts)
}

// Classify computes the profile of a password. Inputs longer than the maximum length are
// truncated before analysis and the profile is flagged as truncated.
func (e *Engine) Classify(password string) Profile {
	prefix, truncated := e.truncate(password)
	return e.classify([]rune(prefix), truncated)
}

// Score computes the composite score, category, entropy, crack time and issues of a profile.
func (e *Engine) Score(p Profile) Result {
	score := compositeScore(p)
	res := Result{
		Profile:  p,
		Score:    score,
		Category: CategoryOf(score),
		Issues:   Suggest(p),
	}
	if e.invalid == nil {
		res.EntropyBits = entropyBits(p)
		res.CrackTimeSeconds = crackSeconds(p, e.opts.GuessRate)
	}
	return res
}

// Evaluate classifies and scores a password. It accepts any string, the empty one included.
func (e *Engine) Evaluate(password string) Result {
	return e.Score(e.Classify(password))
}

// EvaluateBatch evaluates every password on a bounded worker pool. The result at index i
// always belongs to passwords[i].
func (e *Engine) EvaluateBatch(passwords []string) []Result {
	results := make([]Result, len(passwords))
	evaluate := func(i int) {
		results[i] = e.Evaluate(passwords[i])
	}

	workers := min(e.opts.Workers, len(passwords))
	if workers <= 1 {
		for i := range passwords {
			evaluate(i)
		}
		return results
	}

	pool, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * workers,
		NumWorkers:    workers,
	})
	if err != nil {
		log.Warn().Err(err).Msg("could not start batch worker pool, evaluating sequentially")
		for i := range passwords {
			evaluate(i)
		}
		return results
	}
	defer pool.Close()

	for i := range passwords {
		if err = pool.Publish(evaluate, i); err != nil {
			log.Debug().Err(err).Msgf("could not queue batch item %d, evaluating inline", i)
			evaluate(i)
		}
	}
	pool.Wait()

	return results
}

// truncate cuts the password to the configured number of runes without decoding the rest.
func (e *Engine) truncate(password string) (string, bool) {
	limit := e.opts.MaxInputLength
	if limit <= 0 || len(password) <= limit {
		// a string of at most limit bytes has at most limit runes
		return password, false
	}

	count := 0
	for i := range password {
		if count == limit {
			return password[:i], true
		}
		count++
	}
	return password, false
}

// RuneCount is the length measure used by the engine.
func RuneCount(password string) int {
	return utf8.RuneCountInString(password)
}
