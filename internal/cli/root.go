// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/config"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdcheck [COMMAND] [OPTIONS]",
		Short: "Estimate the strength of passwords",
		Long: "Score passwords from 0 to 100, estimate their entropy and the time needed to crack them, " +
			"check them against common compliance standards and generate new ones. " +
			"The serve command exposes the same features over HTTP",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
	rootCmd.PersistentFlags().Float64Var(&guessRate, "guess-rate", strength.DefaultGuessRate,
		"Attacker guesses per second used for the crack time estimate. Overrides GUESS_RATE")
	rootCmd.PersistentFlags().StringSliceVar(&rules, "rules", []string{"ascending"},
		"Sequence rules to detect: ascending, descending, keyboard. Overrides SEQUENCE_RULES")
}

func Execute() error {
	return rootCmd.Execute()
}

// engineConfig reads the environment and applies the root flags set by the user.
func engineConfig(cfg *config.Engine) {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("guess-rate") {
		cfg.GuessRate = guessRate
	}
	if flags.Changed("rules") {
		cfg.SequenceRules = rules
	}
}

func loadEngine(overrides ...func(cfg *config.Engine)) (*strength.Engine, error) {
	cfg, err := config.LoadEngine()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	engineConfig(&cfg)
	for _, override := range overrides {
		override(&cfg)
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}
	return strength.New(cfg.Options()), nil
}
