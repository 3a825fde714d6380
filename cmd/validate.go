package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentops/ninebox/core"
	"github.com/talentops/ninebox/internal/contract"
)

// validateCmd checks the reporting structure.
var validateCmd = &cobra.Command{
	Use:   "validate [roster-path]",
	Short: "Check the reporting structure for cycles and orphans.",
	Long: `Validate the manager/report structure derived from the roster.

Reports:
- Roots (employees with no manager)
- Orphans (manager id that matches no employee)
- Self-links (employee listed as their own manager)
- Reporting cycles, each reported exactly once

Structural problems are data findings, not failures: the command exits
zero whenever the roster itself can be read.

Examples:
  # Validate a roster export
  ninebox validate roster.csv

  # Machine-readable report for CI
  ninebox validate roster.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteValidate(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot validate org structure", err)
		}
	},
}
