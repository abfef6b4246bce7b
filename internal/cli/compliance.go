package cli

import (
	"github.com/spf13/cobra"

	"github.com/bhataakib02/cybersecurityCasestudy/internal/util"
	"github.com/bhataakib02/cybersecurityCasestudy/pkg/compliance"
)

var (
	complianceCmd = &cobra.Command{
		Use:   "compliance [PASSWORD]",
		Short: "Check a password against NIST, PCI DSS, ISO 27001, HIPAA and SOC 2 password requirements",
		Args:  passwordArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			util.ApplyCliSettings(verbose, profile, pprofPort)

			engine, err := loadEngine()
			if err != nil {
				return err
			}
			checker := compliance.NewChecker(engine)

			check := func(password string) error {
				report := checker.Check(password)
				if jsonOutput {
					return printJSON(cmd.OutOrStdout(), report)
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			}

			if interactive {
				return runInteractiveSession(check)
			}
			return check(args[0])
		},
	}
)

func init() {
	complianceCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode. The password is read from a masked prompt")
	complianceCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	rootCmd.AddCommand(complianceCmd)
}
