package strength

import (
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestEvaluate_Scores(t *testing.T) {
	engine := Default()

	cases := []struct {
		password string
		score    int
		category Category
	}{
		{"", 0, VeryWeak},
		{"aaa", 12, VeryWeak},
		{"cba", 22, Weak},
		{"abcXYZ", 30, Weak},
		{"password", 20, Weak},
		{"PASSWORD", 20, Weak},
		{"Tr0ub4dor&3", 85, VeryStrong},
		{"Abcdefgh1!xyz", 85, VeryStrong},
		{"C0mplex!Passphrase#2025", 95, VeryStrong},
		{"horse", 30, Weak},
		{"horsebattery", 60, Strong},
	}

	for _, tc := range cases {
		res := engine.Evaluate(tc.password)
		if res.Score != tc.score {
			t.Errorf("Evaluate(%q).Score: %d, want: %d", tc.password, res.Score, tc.score)
		}
		if res.Category != tc.category {
			t.Errorf("Evaluate(%q).Category: %s, want: %s", tc.password, res.Category, tc.category)
		}
	}
}

func TestEvaluate_Empty(t *testing.T) {
	res := Default().Evaluate("")

	if res.Score != 0 {
		t.Errorf("Empty password should score 0, got %d", res.Score)
	}
	if res.EntropyBits != 0 {
		t.Errorf("Empty password should have 0 entropy, got %f", res.EntropyBits)
	}
	if res.CrackTimeSeconds != 1/DefaultGuessRate {
		t.Errorf("Empty password should take one guess, got %g seconds", res.CrackTimeSeconds)
	}

	want := []Issue{TooShort, MissingUppercase, MissingLowercase, MissingDigit, MissingSymbol}
	if !reflect.DeepEqual(res.Issues, want) {
		t.Errorf("Issues: %v, want: %v", res.Issues, want)
	}
}

func TestEvaluate_EntropyAndCrackTime(t *testing.T) {
	res := Default().Evaluate("Tr0ub4dor&3")

	if res.Profile.CharsetSize != 94 {
		t.Errorf("Charset size should be 94, got %d", res.Profile.CharsetSize)
	}

	entropy := 11 * math.Log2(94)
	if math.Abs(res.EntropyBits-entropy) > 1e-9 {
		t.Errorf("Entropy: %f, want: %f", res.EntropyBits, entropy)
	}

	seconds := math.Pow(94, 11) / DefaultGuessRate
	if res.CrackTimeSeconds != seconds {
		t.Errorf("Crack time: %g, want: %g", res.CrackTimeSeconds, seconds)
	}
	if res.CrackBucket() != Centuries {
		t.Errorf("Crack bucket: %s, want: %s", res.CrackBucket(), Centuries)
	}
	if !res.Strong() {
		t.Errorf("Password should have no issues, got %v", res.Issues)
	}
}

func TestEvaluate_CrackTimeSaturates(t *testing.T) {
	res := Default().Evaluate(strings.Repeat("aB3$", 250))

	if res.CrackTimeSeconds != math.MaxFloat64 {
		t.Errorf("Crack time should saturate, got %g", res.CrackTimeSeconds)
	}
	if res.CrackDuration() != math.MaxInt64 {
		t.Errorf("Crack duration should saturate, got %s", res.CrackDuration())
	}
}

func TestEvaluate_ScoreRange(t *testing.T) {
	engine := Default()
	rnd := rand.New(rand.NewSource(42))
	alphabet := []rune("abcxyzABCXYZ0123789!@#$ \tйё€")

	for i := 0; i < 2000; i++ {
		runes := make([]rune, rnd.Intn(40))
		for j := range runes {
			runes[j] = alphabet[rnd.Intn(len(alphabet))]
		}

		res := engine.Evaluate(string(runes))
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("Score of %q out of range: %d", string(runes), res.Score)
		}
		if res.Category != CategoryOf(res.Score) {
			t.Fatalf("Category of %q does not match its score", string(runes))
		}
	}
}

func TestEvaluate_Monotonic(t *testing.T) {
	engine := Default()
	bases := []string{"horse", "staple", "battery42", "correct!", "HORSE", "password", "Tr0ub4dor"}
	additions := []string{"Z", "7", "#", "q"}

	for _, base := range bases {
		before := engine.Evaluate(base)
		for _, add := range additions {
			p := engine.Classify(add)
			if (p.HasUppercase && before.Profile.HasUppercase) ||
				(p.HasLowercase && before.Profile.HasLowercase) ||
				(p.HasDigit && before.Profile.HasDigit) ||
				(p.HasSymbol && before.Profile.HasSymbol) {
				continue
			}

			after := engine.Evaluate(base + add)
			if after.Score < before.Score {
				t.Errorf("Appending %q to %q decreased the score: %d -> %d", add, base, before.Score, after.Score)
			}
		}
	}
}

func TestEvaluate_MonotonicCeilingExceptions(t *testing.T) {
	engine := Default()

	// "trustno" is short but not common. Adding a digit makes it a common password and the
	// common ceiling (20) is lower than the short ceiling (30).
	before := engine.Evaluate("trustno")
	after := engine.Evaluate("trustno1")
	if before.Score != 30 || after.Score != 20 {
		t.Errorf("Scores should go 30 -> 20, got %d -> %d", before.Score, after.Score)
	}

	// Common and short: the tighter ceiling wins.
	res := engine.Evaluate("abc123")
	if !res.Profile.IsCommonPassword || res.Score != 20 {
		t.Errorf("\"abc123\" should be common and score 20, got common=%v score=%d", res.Profile.IsCommonPassword, res.Score)
	}
}

func TestEvaluate_CommonCeiling(t *testing.T) {
	engine := Default()

	for _, pwd := range []string{"password", "Password", "LETMEIN", "123456789", "qwerty"} {
		if res := engine.Evaluate(pwd); res.Score > commonCeiling {
			t.Errorf("Evaluate(%q).Score should be at most %d, got %d", pwd, commonCeiling, res.Score)
		}
	}

	if Default().Classify("password!").IsCommonPassword {
		t.Errorf("Common password check should be an exact match")
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	engine := Default()

	for _, pwd := range []string{"", "a", "Tr0ub4dor&3", "password", strings.Repeat("x", 3000)} {
		if a, b := engine.Evaluate(pwd), engine.Evaluate(pwd); !reflect.DeepEqual(a, b) {
			t.Errorf("Evaluate(%q) should be deterministic: %+v != %+v", pwd, a, b)
		}
	}
}

func TestEvaluate_Truncation(t *testing.T) {
	engine := New(Options{MaxInputLength: 16})

	res := engine.Evaluate("Ab1!" + strings.Repeat("xq", 20))
	if !res.Profile.Truncated {
		t.Errorf("Input should be truncated")
	}
	if res.Profile.Length != 16 {
		t.Errorf("Length should be 16, got %d", res.Profile.Length)
	}
	if last := res.Issues[len(res.Issues)-1]; last != InputTruncated {
		t.Errorf("Last issue should be %s, got %s", InputTruncated, last)
	}

	res = engine.Evaluate(strings.Repeat("é", 16))
	if res.Profile.Truncated || res.Profile.Length != 16 {
		t.Errorf("16 runes should not be truncated, got length %d", res.Profile.Length)
	}

	res = Default().Evaluate(strings.Repeat("Ab1!", 1000))
	if res.Profile.Length != DefaultMaxInputLength {
		t.Errorf("Length should be capped at %d, got %d", DefaultMaxInputLength, res.Profile.Length)
	}
}

func TestNew_InvalidConfiguration(t *testing.T) {
	cases := []struct {
		name string
		opts Options
	}{
		{"negative guess rate", Options{GuessRate: -1}},
		{"NaN guess rate", Options{GuessRate: math.NaN()}},
		{"infinite guess rate", Options{GuessRate: math.Inf(1)}},
		{"alphanumeric symbols", Options{SymbolCharset: "!a"}},
		{"whitespace symbols", Options{SymbolCharset: "! "}},
		{"negative max length", Options{MaxInputLength: -5}},
	}

	for _, tc := range cases {
		engine := New(tc.opts)
		if engine.Err() == nil {
			t.Errorf("%s: should report a configuration error", tc.name)
		}

		res := engine.Evaluate("Tr0ub4dor&3")
		if res.EntropyBits != 0 || res.CrackTimeSeconds != 0 {
			t.Errorf("%s: should degrade entropy and crack time to 0, got %f and %g", tc.name, res.EntropyBits, res.CrackTimeSeconds)
		}
		if res.Score == 0 {
			t.Errorf("%s: should still score the password", tc.name)
		}
	}

	if err := Default().Err(); err != nil {
		t.Errorf("Default configuration should be valid: %s", err)
	}
}

func TestNew_CustomOptions(t *testing.T) {
	engine := New(Options{
		CommonPasswords: []string{" Acme2024! "},
		SymbolCharset:   "!",
		GuessRate:       1,
	})

	if !engine.Classify("ACME2024!").IsCommonPassword {
		t.Errorf("Extra common passwords should be matched case-insensitively")
	}
	if engine.Classify("#").HasSymbol {
		t.Errorf("'#' is not part of the configured symbol set")
	}
	if res := engine.Evaluate("ab"); res.CrackTimeSeconds != 26*26 {
		t.Errorf("Crack time at 1 guess/s should be 676, got %g", res.CrackTimeSeconds)
	}

	faster := engine.WithGuessRate(26)
	if res := faster.Evaluate("ab"); res.CrackTimeSeconds != 26 {
		t.Errorf("Crack time at 26 guesses/s should be 26, got %g", res.CrackTimeSeconds)
	}
	if !faster.Classify("acme2024!").IsCommonPassword {
		t.Errorf("WithGuessRate should keep the other options")
	}
}

func TestWithGuessRate_Invalid(t *testing.T) {
	engine := Default()

	for _, rate := range []float64{0, -10, math.NaN()} {
		invalid := engine.WithGuessRate(rate)
		if invalid.Err() == nil {
			t.Errorf("Guess rate %g should be reported as invalid", rate)
		}
		if res := invalid.Evaluate("Tr0ub4dor&3"); res.CrackTimeSeconds != 0 || res.EntropyBits != 0 {
			t.Errorf("Guess rate %g should degrade the estimate, got %f bits and %g s", rate, res.EntropyBits, res.CrackTimeSeconds)
		}
	}

	if err := engine.Err(); err != nil {
		t.Errorf("Original engine should stay valid: %s", err)
	}
}

func TestEvaluateBatch(t *testing.T) {
	engine := New(Options{Workers: 4})

	inputs := []string{"a", "bb", "ccc"}
	results := engine.EvaluateBatch(inputs)
	if len(results) != len(inputs) {
		t.Fatalf("Should return %d results, got %d", len(inputs), len(results))
	}

	for i := 0; i < 500; i++ {
		inputs = append(inputs, strings.Repeat("Ab1!", i%7)+string(rune('a'+i%26)))
	}
	results = engine.EvaluateBatch(inputs)
	for i, in := range inputs {
		if want := engine.Evaluate(in); !reflect.DeepEqual(results[i], want) {
			t.Errorf("Result %d does not belong to input %q", i, in)
		}
	}

	if got := engine.EvaluateBatch(nil); len(got) != 0 {
		t.Errorf("Empty batch should return no results")
	}
}
