package cmd

import (
	"github.com/spf13/cobra"
	"github.com/talentops/ninebox/core"
	"github.com/talentops/ninebox/internal/contract"
)

// analyzeCmd runs the dimension analyses.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [roster-path]",
	Short: "Run chi-square analyses across org dimensions.",
	Long: `Run independent chi-square analyses over the talent roster to find
dimensions where high-performer ratings deviate from the org-wide rate.

Each dimension (location, function, level, tenure band, manager) is tested
for goodness of fit against the null hypothesis that high ratings are evenly
distributed, helping you:
- Spot locations or functions that are rated systematically high or low
- Find managers whose teams deviate from the org baseline
- Detect tenure bands with unusual rating patterns
- Separate statistical signal from small-sample noise

Dimensions are tiered red, yellow or green by p-value, and each category's
deviation carries a z-score against the expected high-performer count.
A failing dimension reports its error without stopping the others.

Examples:
  # Analyze all dimensions of a roster export
  ninebox analyze roster.csv

  # Restrict to two dimensions with stricter significance
  ninebox analyze roster.csv --dimensions location,manager --red-p 0.001

  # Export findings to CSV for tracking
  ninebox analyze roster.csv --output csv --output-file findings.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run dimension analysis", err)
		}
	},
}
