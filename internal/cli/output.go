package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/api"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/compliance"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

func formatCategory(c strength.Category) string {
	switch c {
	case strength.VeryWeak, strength.Weak:
		return colorError(c.Label())
	case strength.Moderate:
		return colorWarn(c.Label())
	case strength.Strong:
		return colorInfo(c.Label())
	default:
		return colorSuccess(c.Label())
	}
}

func check(ok bool) string {
	if ok {
		return colorSuccess("yes")
	}
	return colorError("no")
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResult(w io.Writer, r strength.Result, zxcvbn api.SecondOpinion) {
	p := r.Profile
	fmt.Fprintf(w, "%s %d/100 %s\n", colorBold("Score:"), r.Score, formatCategory(r.Category))
	fmt.Fprintf(w, "  Length:       %d\n", p.Length)
	fmt.Fprintf(w, "  Entropy:      %.1f bits (charset %d)\n", r.EntropyBits, p.CharsetSize)
	fmt.Fprintf(w, "  Crack time:   %s\n", strength.FormatCrackTime(r.CrackTimeSeconds))
	fmt.Fprintf(w, "  zxcvbn:       %d/4, cracked in %s\n", zxcvbn.Score, zxcvbn.CrackTimeDisplay)
	fmt.Fprintf(w, "  Uppercase: %s  Lowercase: %s  Digits: %s  Symbols: %s\n",
		check(p.HasUppercase), check(p.HasLowercase), check(p.HasDigit), check(p.HasSymbol))

	if r.Strong() {
		fmt.Fprintf(w, "%s %s\n", colorSuccess("✓"), strength.SufficientlyStrong.Suggestion())
		return
	}
	fmt.Fprintln(w, colorBold("Suggestions:"))
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s %s\n", colorWarn("-"), issue.Suggestion())
	}
}

func printReport(w io.Writer, report compliance.Report) {
	for _, std := range report.Standards {
		fmt.Fprintf(w, "%s %d/100\n", colorBold(std.Name), std.Score)
		for _, c := range std.Checks {
			status := colorSuccess(string(c.Status))
			if c.Status == compliance.Fail {
				status = colorError(string(c.Status))
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n", status, c.ID, c.Requirement)
		}
	}
	fmt.Fprintf(w, "%s %d/100\n", colorBold("Overall compliance:"), report.Overall)
}

func issueList(issues []strength.Issue) string {
	names := make([]string, len(issues))
	for i, issue := range issues {
		names[i] = string(issue)
	}
	return strings.Join(names, ";")
}
