package strength

import "strings"

// runLength is the number of characters that form a sequential run.
const runLength = 3

// SequenceRule flags a password as containing a sequential pattern. Match receives the
// lower-cased runes of the analyzed input.
type SequenceRule interface {
	Name() string
	Match(lower []rune) bool
}

// AscendingRun matches forward alphabetic (abc … xyz) and numeric (012 … 789) runs.
type AscendingRun struct{}

func (AscendingRun) Name() string { return "ascending" }

func (AscendingRun) Match(lower []rune) bool {
	return hasStep(lower, 1)
}

// DescendingRun matches backward runs such as "cba" or "321". Not enabled by default.
type DescendingRun struct{}

func (DescendingRun) Name() string { return "descending" }

func (DescendingRun) Match(lower []rune) bool {
	return hasStep(lower, -1)
}

// keyboardRows are the QWERTY letter rows, left to right.
var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// KeyboardRun matches three adjacent keys of a QWERTY row ("qwe", "sdf", "bnm"). Not enabled
// by default.
type KeyboardRun struct{}

func (KeyboardRun) Name() string { return "keyboard" }

func (KeyboardRun) Match(lower []rune) bool {
	for i := 0; i+runLength <= len(lower); i++ {
		window := string(lower[i : i+runLength])
		for _, row := range keyboardRows {
			if strings.Contains(row, window) {
				return true
			}
		}
	}
	return false
}

// RuleByName resolves the names used in configuration files.
func RuleByName(name string) (SequenceRule, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascending":
		return AscendingRun{}, true
	case "descending":
		return DescendingRun{}, true
	case "keyboard":
		return KeyboardRun{}, true
	}
	return nil, false
}

// hasStep reports whether three consecutive runes of the same sequence (a–z or 0–9) each
// differ from the previous one by step.
func hasStep(lower []rune, step rune) bool {
	for i := 0; i+runLength <= len(lower); i++ {
		a, b, c := lower[i], lower[i+1], lower[i+2]
		if b-a != step || c-b != step {
			continue
		}
		if (isLower(a) && isLower(c)) || (isDigit(a) && isDigit(c)) {
			return true
		}
	}
	return false
}
