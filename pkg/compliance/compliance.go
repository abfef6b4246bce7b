// Package compliance maps a password onto the checks of common security standards. Checks that
// look at the password use the strength engine profile; organisational controls cannot be
// verified from a password and always pass.
package compliance

import (
	"math"
	"sort"

	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

// Rule decides whether a password profile satisfies a requirement.
type Rule interface {
	Passes(p strength.Profile) bool
}

// RuleFunc adapts a function to be used as a Rule.
type RuleFunc func(p strength.Profile) bool

// Passes executes the underlying rule function.
func (f RuleFunc) Passes(p strength.Profile) bool {
	return f(p)
}

// MinLength requires at least n characters.
func MinLength(n int) Rule {
	return RuleFunc(func(p strength.Profile) bool { return p.Length >= n })
}

// NotCommon rejects passwords on the deny-list.
func NotCommon() Rule {
	return RuleFunc(func(p strength.Profile) bool { return !p.IsCommonPassword })
}

// Letters requires at least one letter of either case.
func Letters() Rule {
	return RuleFunc(func(p strength.Profile) bool { return p.HasUppercase || p.HasLowercase })
}

func Uppercase() Rule {
	return RuleFunc(func(p strength.Profile) bool { return p.HasUppercase })
}

func Lowercase() Rule {
	return RuleFunc(func(p strength.Profile) bool { return p.HasLowercase })
}

func Digits() Rule {
	return RuleFunc(func(p strength.Profile) bool { return p.HasDigit })
}

func Symbols() Rule {
	return RuleFunc(func(p strength.Profile) bool { return p.HasSymbol })
}

// All passes when every rule passes.
func All(rules ...Rule) Rule {
	return RuleFunc(func(p strength.Profile) bool {
		for _, r := range rules {
			if !r.Passes(p) {
				return false
			}
		}
		return true
	})
}

// Organisational is a control that a password cannot prove or disprove.
func Organisational() Rule {
	return RuleFunc(func(strength.Profile) bool { return true })
}

// Check is a single weighted requirement of a standard.
type Check struct {
	ID          string
	Requirement string
	Description string
	Weight      int
	Rule        Rule
}

// Standard is a named list of checks. Weights of a standard add up to 100.
type Standard struct {
	Key         string
	Name        string
	Description string
	Checks      []Check
}

// Status of an evaluated check.
type Status string

const (
	Pass Status = "pass"
	Fail Status = "fail"
)

// CheckResult is the outcome of one check.
type CheckResult struct {
	ID          string `json:"id"`
	Requirement string `json:"requirement"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Score       int    `json:"score"`
}

// StandardResult is the outcome of one standard.
type StandardResult struct {
	Key    string        `json:"key"`
	Name   string        `json:"name"`
	Score  int           `json:"score"`
	Checks []CheckResult `json:"checks"`
}

// Report is the outcome of all standards for one password.
type Report struct {
	Standards []StandardResult `json:"standards"`
	// Overall is the rounded average of the standard scores.
	Overall int `json:"overall"`
}

// Checker evaluates passwords against a set of standards.
type Checker struct {
	engine    *strength.Engine
	standards []Standard
}

// NewChecker builds a checker for the given standards, or the built-in ones if none given.
func NewChecker(engine *strength.Engine, standards ...Standard) *Checker {
	if engine == nil {
		engine = strength.Default()
	}
	if len(standards) == 0 {
		standards = Standards()
	}
	return &Checker{engine: engine, standards: standards}
}

// Check classifies the password once and evaluates every standard against its profile.
func (c *Checker) Check(password string) Report {
	profile := c.engine.Classify(password)

	report := Report{Standards: make([]StandardResult, 0, len(c.standards))}
	total := 0
	for _, std := range c.standards {
		res := StandardResult{Key: std.Key, Name: std.Name, Checks: make([]CheckResult, 0, len(std.Checks))}
		for _, chk := range std.Checks {
			cr := CheckResult{ID: chk.ID, Requirement: chk.Requirement, Description: chk.Description, Status: Fail}
			if chk.Rule == nil || chk.Rule.Passes(profile) {
				cr.Status = Pass
				cr.Score = chk.Weight
			}
			res.Score += cr.Score
			res.Checks = append(res.Checks, cr)
		}
		total += res.Score
		report.Standards = append(report.Standards, res)
	}

	if len(report.Standards) > 0 {
		report.Overall = int(math.Round(float64(total) / float64(len(report.Standards))))
	}
	return report
}

// Standard returns the standard with the given key.
func (c *Checker) Standard(key string) (Standard, bool) {
	for _, s := range c.standards {
		if s.Key == key {
			return s, true
		}
	}
	return Standard{}, false
}

// Keys lists the configured standard keys in alphabetical order.
func (c *Checker) Keys() []string {
	keys := make([]string, 0, len(c.standards))
	for _, s := range c.standards {
		keys = append(keys, s.Key)
	}
	sort.Strings(keys)
	return keys
}

// Failed returns the failed checks of a standard result.
func (r StandardResult) Failed() []CheckResult {
	var failed []CheckResult
	for _, c := range r.Checks {
		if c.Status == Fail {
			failed = append(failed, c)
		}
	}
	return failed
}
