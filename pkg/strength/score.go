package strength

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Category is the strength bucket of a score. Categories are ordered, VeryWeak < VeryStrong.
type Category int

const (
	VeryWeak Category = iota
	Weak
	Moderate
	Strong
	VeryStrong
)

var categoryNames = [...]string{"very-weak", "weak", "moderate", "strong", "very-strong"}
var categoryLabels = [...]string{"Very Weak", "Weak", "Moderate", "Strong", "Very Strong"}

func (c Category) String() string {
	if c < VeryWeak || c > VeryStrong {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Label is the display name, e.g. "Very Strong".
func (c Category) Label() string {
	if c < VeryWeak || c > VeryStrong {
		return c.String()
	}
	return categoryLabels[c]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if strings.EqualFold(name, string(text)) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown strength category %q", text)
}

// Categories lists every category from weakest to strongest.
func Categories() []Category {
	return []Category{VeryWeak, Weak, Moderate, Strong, VeryStrong}
}

// CategoryOf maps a score to its category. Thresholds are inclusive on the lower bound.
func CategoryOf(score int) Category {
	switch {
	case score >= 80:
		return VeryStrong
	case score >= 60:
		return Strong
	case score >= 40:
		return Moderate
	case score >= 20:
		return Weak
	default:
		return VeryWeak
	}
}

// Score weights.
const (
	lengthWeight      = 4
	maxLengthPoints   = 40
	uppercasePoints   = 10
	lowercasePoints   = 10
	digitPoints       = 10
	symbolPoints      = 15
	longBonus         = 10
	sequentialPenalty = 10
	repeatedPenalty   = 10
	commonCeiling     = 20
	shortCeiling      = 30
	// ShortLength is the length under which the short-password ceiling applies.
	ShortLength = 8
)

// compositeScore implements the additive formula followed by the ceilings.
func compositeScore(p Profile) int {
	score := min(p.Length*lengthWeight, maxLengthPoints)
	if p.HasUppercase {
		score += uppercasePoints
	}
	if p.HasLowercase {
		score += lowercasePoints
	}
	if p.HasDigit {
		score += digitPoints
	}
	if p.HasSymbol {
		score += symbolPoints
	}
	if p.Length >= RecommendedLength {
		score += longBonus
	}
	if p.HasSequentialRun {
		score -= sequentialPenalty
	}
	if p.HasRepeatedRun {
		score -= repeatedPenalty
	}

	if p.IsCommonPassword {
		score = min(score, commonCeiling)
	}
	if p.Length < ShortLength {
		score = min(score, shortCeiling)
	}

	return max(0, min(score, 100))
}

// entropyBits is the nominal keyspace size in bits. It is an upper bound that ignores how
// the characters were actually chosen.
func entropyBits(p Profile) float64 {
	if p.CharsetSize == 0 {
		return 0
	}
	return float64(p.Length) * math.Log2(float64(p.CharsetSize))
}

// crackSeconds is the time to exhaust the nominal keyspace at guessRate. It saturates at
// math.MaxFloat64 so results stay JSON encodable.
func crackSeconds(p Profile, guessRate float64) float64 {
	charset := float64(p.CharsetSize)
	if charset == 0 {
		charset = 1
	}
	seconds := math.Pow(charset, float64(p.Length)) / guessRate
	if math.IsInf(seconds, 1) || math.IsNaN(seconds) {
		return math.MaxFloat64
	}
	return seconds
}

// Result is the outcome of evaluating one password.
type Result struct {
	Profile  Profile  `json:"profile"`
	Score    int      `json:"score"`
	Category Category `json:"strength"`
	// EntropyBits is length * log2(charset size).
	EntropyBits float64 `json:"entropy"`
	// CrackTimeSeconds is the exhaustive search time at the configured guess rate.
	CrackTimeSeconds float64 `json:"crackTimeSeconds"`
	Issues           []Issue `json:"issues"`
}

// CrackDuration converts CrackTimeSeconds to a time.Duration, saturating at the largest
// representable duration (about 292 years).
func (r Result) CrackDuration() time.Duration {
	if r.CrackTimeSeconds >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(r.CrackTimeSeconds * float64(time.Second))
}

// CrackBucket is the display bucket of the crack time.
func (r Result) CrackBucket() CrackBucket {
	return BucketOf(r.CrackTimeSeconds)
}

// Strong reports whether the password has no issue at all.
func (r Result) Strong() bool {
	return len(r.Issues) == 1 && r.Issues[0] == SufficientlyStrong
}
