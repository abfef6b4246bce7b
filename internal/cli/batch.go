package cli

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jfcg/sorty/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/api"
	"github.com/bhataakib02/cybersecurityCasestudy/internal/config"
	"github.com/bhataakib02/cybersecurityCasestudy/internal/util"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/client"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

var (
	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Score every password of a file, one password per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return batchCommand(cmd)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	batchCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Passwords input file path, one password per line (required)")
	batchCmd.MarkFlagRequired("in-file")
	batchCmd.Flags().StringVarP(&outFile, "out-file", "o", "", "CSV report output path. Passwords are masked")
	batchCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite any existing files while writing the results.")
	batchCmd.Flags().StringVar(&remoteURL, "remote", "", "Evaluate through a pwdcheck server at this URL instead of locally")
	batchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of parallel workers. Defaults to the number of CPUs")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")

	rootCmd.AddCommand(batchCmd)
}

// batchSummary aggregates the results of a batch.
type batchSummary struct {
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
	Average    float64        `json:"averageScore"`
	Median     float64        `json:"medianScore"`
	Strong     int            `json:"sufficientlyStrong"`
}

func batchCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)
	s := util.Stats()
	defer s()

	file, err := os.Open(inputFile)
	if err != nil {
		return err
	}

	defer func(file *os.File) {
		if err = file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing passwords file")
		}
	}(file)

	engine, err := loadEngine(func(cfg *config.Engine) {
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}
	})
	if err != nil {
		return err
	}

	passwords, err := readPasswords(file, engine.Options().MaxInputLength)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", inputFile, err)
	}
	if err = util.CheckRam(uint64(len(passwords))); err != nil {
		return err
	}

	var out io.Writer
	if outFile != "" {
		abs, err := filepath.Abs(outFile)
		if err != nil {
			return fmt.Errorf("could not get absolute path of file: %w", err)
		}

		if !overwrite {
			if _, err = os.Stat(abs); !os.IsNotExist(err) {
				return fmt.Errorf("file %s exists and overwrite flag is not set", outFile)
			}
		}

		f, err := os.Create(abs)
		if err != nil {
			return err
		}

		defer func(f *os.File) {
			if err = f.Close(); err != nil {
				log.Error().Err(err).Msg("error closing CSV report")
			}
		}(f)
		out = f
	}

	log.Info().Msgf("evaluating %d passwords from %s", len(passwords), inputFile)
	var results []strength.Result
	if remoteURL != "" {
		results, err = client.New(client.Config{BaseURL: remoteURL}).AnalyzeBatch(cmd.Context(), passwords)
		if err != nil {
			return err
		}
	} else {
		results = engine.EvaluateBatch(passwords)
	}

	if out != nil {
		if err = writeCSV(out, passwords, results); err != nil {
			return fmt.Errorf("error writing CSV report: %w", err)
		}
		log.Info().Msgf("report written to %s", outFile)
	}

	summary := summarize(results)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// readPasswords returns the lines of r without line endings. Blank lines are skipped. Only
// the first runes of each line are kept, enough for the engine to flag longer lines as
// truncated.
func readPasswords(r io.Reader, maxRunes int) ([]string, error) {
	limit := (maxRunes + 1) * utf8.UTFMax
	reader := bufio.NewReader(r)

	var passwords []string
	for {
		line, err := readLine(reader, limit)
		password := strings.TrimSuffix(strings.TrimSuffix(string(line), "\n"), "\r")
		if strings.TrimSpace(password) != "" {
			passwords = append(passwords, password)
		}
		if errors.Is(err, io.EOF) {
			return passwords, nil
		}
		if err != nil {
			return passwords, err
		}
	}
}

// readLine reads up to the next line feed and discards everything past limit bytes.
func readLine(r *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	for {
		chunk, err := r.ReadSlice('\n')
		if room := limit - len(line); room > 0 {
			line = append(line, chunk[:min(room, len(chunk))]...)
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return line, err
		}
	}
}

func summarize(results []strength.Result) batchSummary {
	summary := batchSummary{
		Total:      len(results),
		Categories: make(map[string]int),
	}
	if len(results) == 0 {
		return summary
	}

	scores := make([]float64, len(results))
	var total float64
	for i, r := range results {
		scores[i] = float64(r.Score)
		total += scores[i]
		summary.Categories[r.Category.String()]++
		if r.Strong() {
			summary.Strong++
		}
	}

	sorty.SortSlice(scores)
	if mid := len(scores) / 2; len(scores)%2 == 0 {
		summary.Median = (scores[mid-1] + scores[mid]) / 2
	} else {
		summary.Median = scores[mid]
	}
	summary.Average = total / float64(len(results))
	return summary
}

func printSummary(w io.Writer, summary batchSummary) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "%s %s passwords\n", colorBold("Evaluated"), p.Sprintf("%d", summary.Total))
	for _, c := range strength.Categories() {
		n := summary.Categories[c.String()]
		var pct float64
		if summary.Total > 0 {
			pct = float64(n*100) / float64(summary.Total)
		}
		fmt.Fprintf(w, "  %-22s %s (%.1f%%)\n", formatCategory(c), p.Sprintf("%d", n), pct)
	}
	fmt.Fprintf(w, "  Average score: %.1f, median: %.1f\n", summary.Average, summary.Median)
	fmt.Fprintf(w, "  Sufficiently strong: %s\n", p.Sprintf("%d", summary.Strong))
}

// csvSafe prefixes cells that spreadsheets would evaluate as formulas.
func csvSafe(cell string) string {
	if cell != "" && strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
		return "'" + cell
	}
	return cell
}

func writeCSV(w io.Writer, passwords []string, results []strength.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Password", "Score", "Strength", "Entropy", "Issues"}); err != nil {
		return err
	}
	for i, r := range results {
		record := []string{
			csvSafe(api.MaskPassword(passwords[i])),
			strconv.Itoa(r.Score),
			r.Category.Label(),
			strconv.FormatFloat(r.EntropyBits, 'f', 2, 64),
			issueList(r.Issues),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
