package strength

// Issue identifies a violated rule.
type Issue string

const (
	TooShort             Issue = "too_short"
	MissingUppercase     Issue = "missing_uppercase"
	MissingLowercase     Issue = "missing_lowercase"
	MissingDigit         Issue = "missing_digit"
	MissingSymbol        Issue = "missing_symbol"
	IsCommonPassword     Issue = "common_password"
	HasSequentialPattern Issue = "sequential_pattern"
	HasRepeatedPattern   Issue = "repeated_pattern"
	InputTruncated       Issue = "input_truncated"
	// SufficientlyStrong is returned alone when no rule is violated.
	SufficientlyStrong Issue = "sufficiently_strong"
)

// RecommendedLength is the length under which TooShort is reported and above which the
// length bonus is granted.
const RecommendedLength = 12

var suggestions = map[Issue]string{
	TooShort:             "Increase length to at least 12 characters",
	MissingUppercase:     "Add uppercase letters (A-Z)",
	MissingLowercase:     "Add lowercase letters (a-z)",
	MissingDigit:         "Include numbers (0-9)",
	MissingSymbol:        "Use special characters (!@#$%^&*)",
	IsCommonPassword:     "Avoid common words and passwords",
	HasSequentialPattern: "Avoid sequential patterns (abc, 123)",
	HasRepeatedPattern:   "Avoid repeated characters (aaa, 111)",
	InputTruncated:       "Only the first characters were analyzed, the input is too long",
	SufficientlyStrong:   "Excellent password! Consider using a password manager to securely store it.",
}

// Suggestion is the user facing advice for the issue.
func (i Issue) Suggestion() string {
	if s, ok := suggestions[i]; ok {
		return s
	}
	return string(i)
}

// Suggest evaluates the rules in a fixed order and returns every violated one. The order of
// the result is the order of evaluation.
func Suggest(p Profile) []Issue {
	issues := make([]Issue, 0, 4)
	if p.Length < RecommendedLength {
		issues = append(issues, TooShort)
	}
	if !p.HasUppercase {
		issues = append(issues, MissingUppercase)
	}
	if !p.HasLowercase {
		issues = append(issues, MissingLowercase)
	}
	if !p.HasDigit {
		issues = append(issues, MissingDigit)
	}
	if !p.HasSymbol {
		issues = append(issues, MissingSymbol)
	}
	if p.IsCommonPassword {
		issues = append(issues, IsCommonPassword)
	}
	if p.HasSequentialRun {
		issues = append(issues, HasSequentialPattern)
	}
	if p.HasRepeatedRun {
		issues = append(issues, HasRepeatedPattern)
	}
	if p.Truncated {
		issues = append(issues, InputTruncated)
	}

	if len(issues) == 0 {
		return []Issue{SufficientlyStrong}
	}
	return issues
}
