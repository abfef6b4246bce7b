package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/util"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/generator"
)

var (
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			util.ApplyCliSettings(verbose, profile, pprofPort)
			return generateCommand(cmd.OutOrStdout(), generatorSettings())
		},
	}
)

func init() {
	defaults := generator.DefaultSettings()
	generateCmd.Flags().IntVarP(&length, "length", "l", defaults.Length,
		fmt.Sprintf("Length of each password, between %d and %d", generator.MinLength, generator.MaxLength))
	generateCmd.Flags().IntVarP(&quantity, "quantity", "q", defaults.Quantity,
		fmt.Sprintf("Number of passwords to generate, at most %d", generator.MaxQuantity))
	generateCmd.Flags().BoolVar(&noUppercase, "no-uppercase", false, "Do not use uppercase letters")
	generateCmd.Flags().BoolVar(&noLowercase, "no-lowercase", false, "Do not use lowercase letters")
	generateCmd.Flags().BoolVar(&noDigits, "no-numbers", false, "Do not use numbers")
	generateCmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "Do not use symbols")
	generateCmd.Flags().BoolVar(&allowSimilar, "allow-similar", false, "Allow look-alike characters (il1Lo0O)")
	generateCmd.Flags().BoolVar(&excludeAmbiguous, "exclude-ambiguous", false, "Exclude brackets, quotes and punctuation")

	rootCmd.AddCommand(generateCmd)
}

func generatorSettings() generator.Settings {
	return generator.Settings{
		Length:           length,
		Quantity:         quantity,
		Uppercase:        !noUppercase,
		Lowercase:        !noLowercase,
		Digits:           !noDigits,
		Symbols:          !noSymbols,
		ExcludeSimilar:   !allowSimilar,
		ExcludeAmbiguous: excludeAmbiguous,
	}
}

func generateCommand(w io.Writer, settings generator.Settings) error {
	passwords, err := generator.New().Generate(settings)
	if err != nil {
		return err
	}

	log.Debug().Msgf("charset of %d characters, %.1f bits of entropy per password", len(settings.Charset()), settings.Entropy())
	for _, pwd := range passwords {
		fmt.Fprintln(w, pwd)
	}
	return nil
}
