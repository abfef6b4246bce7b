package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/api"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/compliance"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/generator"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

func noColor(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func TestReadPasswords(t *testing.T) {
	in := "password\r\n\r\n   \nhorse battery\n\tTr0ub4dor&3\n"

	passwords, err := readPasswords(strings.NewReader(in), strength.DefaultMaxInputLength)
	if err != nil {
		t.Fatalf("Should not fail reading passwords: %s", err)
	}

	want := []string{"password", "horse battery", "\tTr0ub4dor&3"}
	if len(passwords) != len(want) {
		t.Fatalf("Passwords: %q, want: %q", passwords, want)
	}
	for i := range want {
		if passwords[i] != want[i] {
			t.Errorf("Password %d: %q, want: %q", i, passwords[i], want[i])
		}
	}
}

func TestReadPasswords_LongLine(t *testing.T) {
	cases := []struct {
		name  string
		chunk string
	}{
		{"ascii", "x"},
		{"four byte runes", "😀"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			long := strings.Repeat(tc.chunk, 2<<20)
			in := "first\n" + long + "\nthird"

			passwords, err := readPasswords(strings.NewReader(in), strength.DefaultMaxInputLength)
			if err != nil {
				t.Fatalf("Should not fail reading a long line: %s", err)
			}
			if len(passwords) != 3 || passwords[0] != "first" || passwords[2] != "third" {
				t.Fatalf("Should keep the surrounding lines, got %d passwords", len(passwords))
			}
			if len(passwords[1]) >= len(long) || !strings.HasPrefix(long, passwords[1]) {
				t.Errorf("Long line should be cut to a prefix, got %d bytes", len(passwords[1]))
			}

			result := strength.Default().Evaluate(passwords[1])
			if !result.Profile.Truncated {
				t.Errorf("Long line should be reported as truncated")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	engine := strength.Default()
	results := engine.EvaluateBatch([]string{"aaa", "password", "horsebattery", "Tr0ub4dor&3"})

	summary := summarize(results)
	if summary.Total != 4 {
		t.Errorf("Total: %d, want: 4", summary.Total)
	}
	// 12, 20, 60, 85
	if summary.Median != 40 {
		t.Errorf("Median: %f, want: 40", summary.Median)
	}
	if summary.Average != 44.25 {
		t.Errorf("Average: %f, want: 44.25", summary.Average)
	}
	if summary.Categories["very-weak"] != 1 || summary.Categories["weak"] != 1 ||
		summary.Categories["strong"] != 1 || summary.Categories["very-strong"] != 1 {
		t.Errorf("Categories: %v", summary.Categories)
	}

	if empty := summarize(nil); empty.Total != 0 || empty.Median != 0 {
		t.Errorf("Empty summary should be zero, got %+v", empty)
	}
}

func TestWriteCSV(t *testing.T) {
	passwords := []string{"password", "horsebattery"}
	results := strength.Default().EvaluateBatch(passwords)

	var buf bytes.Buffer
	if err := writeCSV(&buf, passwords, results); err != nil {
		t.Fatalf("Should not fail writing CSV: %s", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Should write valid CSV: %s", err)
	}
	if len(records) != 3 {
		t.Fatalf("Records: %d, want: 3", len(records))
	}
	if strings.Join(records[0], ",") != "Password,Score,Strength,Entropy,Issues" {
		t.Errorf("Header: %v", records[0])
	}

	row := records[1]
	if row[0] != "pass***" || row[1] != "20" || row[2] != "Weak" {
		t.Errorf("Row: %v", row)
	}
	if !strings.Contains(row[4], string(strength.IsCommonPassword)) {
		t.Errorf("Issues should list common_password, got %q", row[4])
	}
	if strings.Contains(buf.String(), "horsebattery") {
		t.Errorf("CSV should not contain plain passwords")
	}
}

func TestWriteCSV_Escaping(t *testing.T) {
	passwords := []string{"=cmd|'/c calc'!A1", "+SUM(1;2)", "@here", "-2+3+cmd", "abc"}
	results := strength.Default().EvaluateBatch(passwords)

	var buf bytes.Buffer
	if err := writeCSV(&buf, passwords, results); err != nil {
		t.Fatalf("Should not fail writing CSV: %s", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Should write valid CSV: %s", err)
	}

	want := []string{"'=cmd***", "'+SUM***", "***", "'-2+3***", "***"}
	for i, w := range want {
		if got := records[i+1][0]; got != w {
			t.Errorf("Row %d password: %q, want: %q", i, got, w)
		}
	}
}

func TestPrintResult(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	printResult(&buf, strength.Default().Evaluate("Tr0ub4dor&3"), api.SecondOpinion{Score: 2, CrackTimeDisplay: "3 days"})
	out := buf.String()

	for _, want := range []string{"Score: 85/100 Very Strong", "Length:       11", strength.TooShort.Suggestion(), "zxcvbn:       2/4, cracked in 3 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output should contain %q, got %q", want, out)
		}
	}
}

func TestPrintReport(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	printReport(&buf, compliance.NewChecker(nil).Check("password"))
	out := buf.String()

	if !strings.Contains(out, "Overall compliance: 76/100") {
		t.Errorf("Output should contain the overall score, got %q", out)
	}
	if !strings.Contains(out, "[fail]") || !strings.Contains(out, "[pass]") {
		t.Errorf("Output should list passed and failed checks, got %q", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	var buf bytes.Buffer
	settings := generator.Settings{Length: 10, Quantity: 3, Lowercase: true}
	if err := generateCommand(&buf, settings); err != nil {
		t.Fatalf("Should not fail generating: %s", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Lines: %d, want: 3", len(lines))
	}
	for _, l := range lines {
		if len(l) != 10 || strings.Trim(l, "abcdefghijklmnopqrstuvwxyz") != "" {
			t.Errorf("Password %q should be 10 lowercase letters", l)
		}
	}

	if err := generateCommand(&buf, generator.Settings{Length: 10, Quantity: 1}); err == nil {
		t.Errorf("Should fail without character classes")
	}
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"analyze", "--json", "horsebattery"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		jsonOutput = false
	})

	if err := Execute(); err != nil {
		t.Fatalf("Should not fail executing: %s", err)
	}

	var result strength.Result
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Should print JSON: %s. %q", err, buf.String())
	}
	if result.Score != 60 || result.Category != strength.Strong {
		t.Errorf("Score: %d %s, want: 60 strong", result.Score, result.Category)
	}
}
