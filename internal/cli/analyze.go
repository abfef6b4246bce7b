package cli

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/api"
	"github.com/bhataakib02/cybersecurityCasestudy/internal/util"
)

var (
	analyzeCmd = &cobra.Command{
		Use:   "analyze [PASSWORD]",
		Short: "Score a password and list how to improve it",
		Args:  passwordArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			util.ApplyCliSettings(verbose, profile, pprofPort)

			engine, err := loadEngine()
			if err != nil {
				return err
			}

			analyze := func(password string) error {
				result := engine.Evaluate(password)
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), result)
				}
				printResult(cmd.OutOrStdout(), result, api.Zxcvbn(password))
				return nil
			}

			if interactive {
				return runInteractiveSession(analyze)
			}
			return analyze(args[0])
		},
	}
)

func init() {
	analyzeCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode. The password is read from a masked prompt")
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

// passwordArgs requires the password argument unless the command runs interactively.
func passwordArgs(cmd *cobra.Command, args []string) error {
	if !interactive {
		if err := cobra.ExactArgs(1)(cmd, args); err != nil {
			return err
		}
	}

	return nil
}

func runInteractiveSession(process func(password string) error) error {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a password")
			}
			return nil
		},
	}

	log.Info().Msgf("Running interactive session. ^C to exit")
	for {
		password, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
				log.Info().Msgf("Goodbye")
			} else {
				log.Error().Err(err).Msgf("Error during interactive session")
			}
			// No return to avoid the default cobra error message
			return nil
		}

		if err = process(password); err != nil {
			log.Error().Err(err).Msg("Error processing input")
		}
	}
}
