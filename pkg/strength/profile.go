package strength

import (
	"strings"
)

// Nominal alphabet sizes of each character class.
const (
	lowerSize  = 26
	upperSize  = 26
	digitSize  = 10
	symbolSize = 32
)

// Profile holds the character-class and pattern facts about a single password.
type Profile struct {
	Length           int  `json:"length"`
	HasUppercase     bool `json:"hasUppercase"`
	HasLowercase     bool `json:"hasLowercase"`
	HasDigit         bool `json:"hasDigit"`
	HasSymbol        bool `json:"hasSymbol"`
	CharsetSize      int  `json:"charsetSize"`
	HasSequentialRun bool `json:"hasSequentialRun"`
	HasRepeatedRun   bool `json:"hasRepeatedRun"`
	IsCommonPassword bool `json:"isCommonPassword"`
	// Truncated is set when the input was longer than the configured maximum and only its
	// prefix was analyzed.
	Truncated bool `json:"truncated"`
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// classify builds the profile of runes, already truncated by the caller.
func (e *Engine) classify(runes []rune, truncated bool) Profile {
	p := Profile{Length: len(runes), Truncated: truncated}

	for _, r := range runes {
		switch {
		case isUpper(r):
			p.HasUppercase = true
		case isLower(r):
			p.HasLowercase = true
		case isDigit(r):
			p.HasDigit = true
		default:
			if _, ok := e.symbols[r]; ok {
				p.HasSymbol = true
			}
		}
	}

	if p.HasLowercase {
		p.CharsetSize += lowerSize
	}
	if p.HasUppercase {
		p.CharsetSize += upperSize
	}
	if p.HasDigit {
		p.CharsetSize += digitSize
	}
	if p.HasSymbol {
		p.CharsetSize += symbolSize
	}

	lowered := strings.ToLower(string(runes))
	lower := []rune(lowered)
	for _, rule := range e.rules {
		if rule.Match(lower) {
			p.HasSequentialRun = true
			break
		}
	}

	p.HasRepeatedRun = hasRepeatedRun(runes)
	_, p.IsCommonPassword = e.common[lowered]

	return p
}

// hasRepeatedRun reports whether any rune appears three or more times in a row.
func hasRepeatedRun(runes []rune) bool {
	count := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			count++
			if count >= runLength {
				return true
			}
		} else {
			count = 1
		}
	}
	return false
}
